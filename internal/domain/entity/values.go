package entity

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/sangkips/kasir-receipt/pkg/coerce"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Number is a numeric record field. Decoding never fails: missing, null,
// non-numeric and non-finite values decode to 0.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*n = 0
		return nil
	}
	*n = Number(coerce.Number(raw))
	return nil
}

// Float returns n as a float64.
func (n Number) Float() float64 {
	return coerce.Number(float64(n))
}

// Decimal returns n as a decimal, taking the shortest decimal form of the
// float so 0.1 stays 0.1.
func (n Number) Decimal() decimal.Decimal {
	return decimal.NewFromFloat(n.Float())
}

// Timestamp is a date-valued record field. Unparseable input decodes to the
// zero value, which formats as the invalid-date marker.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps t.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

// Valid reports whether the timestamp holds a parsed date.
func (t Timestamp) Valid() bool {
	return !t.IsZero()
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Time = time.Time{}
		return nil
	}
	parsed, _ := coerce.Time(raw)
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Invalid timestamps marshal as null.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if !t.Valid() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time)
}

// ID identifies an order. JSON strings and numbers are both accepted.
type ID string

// UnmarshalJSON implements json.Unmarshaler.
func (i *ID) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		*i = ""
		return nil
	}
	if raw == nil {
		*i = ""
		return nil
	}
	*i = ID(strings.TrimSpace(cast.ToString(raw)))
	return nil
}

func (i ID) String() string {
	return string(i)
}
