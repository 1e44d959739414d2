package repository

import (
	"context"
	"testing"
	"time"

	"github.com/sangkips/kasir-receipt/internal/domain/entity"
)

func TestMemoryIdempotencyRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryIdempotencyRepository()

	got, err := repo.GetByKey(ctx, "k1", "rina")
	if err != nil || got != nil {
		t.Fatalf("GetByKey(unknown) = %v, %v; want nil, nil", got, err)
	}

	key := &entity.IdempotencyKey{
		Key:          "k1",
		Subject:      "rina",
		Endpoint:     "POST /api/v1/receipts/print",
		ResponseCode: 200,
		ContentType:  "application/json; charset=utf-8",
		ResponseBody: []byte(`{"success":true}`),
		ExpiresAt:    time.Now().Add(time.Hour),
	}
	if err := repo.Create(ctx, key); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(ctx, key); err == nil {
		t.Error("Create() accepted a live duplicate")
	}

	got, _ = repo.GetByKey(ctx, "k1", "rina")
	if got == nil || string(got.ResponseBody) != `{"success":true}` {
		t.Fatalf("GetByKey() = %+v", got)
	}
	if other, _ := repo.GetByKey(ctx, "k1", "budi"); other != nil {
		t.Error("key leaked across subjects")
	}

	expired := &entity.IdempotencyKey{Key: "old", Subject: "rina", ExpiresAt: time.Now().Add(-time.Minute)}
	_ = repo.Create(ctx, expired)
	if err := repo.DeleteExpired(ctx); err != nil {
		t.Fatal(err)
	}
	if got, _ := repo.GetByKey(ctx, "old", "rina"); got != nil {
		t.Error("expired key survived cleanup")
	}
	if got, _ := repo.GetByKey(ctx, "k1", "rina"); got == nil {
		t.Error("live key removed by cleanup")
	}
}
