package response

import (
	"github.com/sangkips/kasir-receipt/internal/application/service"
	"github.com/sangkips/kasir-receipt/internal/domain/entity"
)

// PrintResponse is returned by every print endpoint.
type PrintResponse struct {
	JobID   string `json:"job_id"`
	Printed bool   `json:"printed"`
}

// SummaryResponse is the totals of a report, without the rendered document.
type SummaryResponse struct {
	HasData     bool                `json:"has_data"`
	Aggregation *entity.Aggregation `json:"aggregation,omitempty"`
}

// NewPrintResponse converts a print result.
func NewPrintResponse(res *service.PrintResult) PrintResponse {
	if res == nil {
		return PrintResponse{}
	}
	return PrintResponse{JobID: res.JobID, Printed: res.Printed}
}
