package types

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Prediction sources.
const (
	SourceAPI = "api"
	SourceCSV = "csv"
)

// HistoryEntry is one served prediction.
type HistoryEntry struct {
	ID             uuid.UUID  `json:"id" validate:"required"`
	BatchID        uuid.UUID  `json:"batch_id" validate:"required"`
	ClientID       *uuid.UUID `json:"client_id"` // nil when auth is off
	Source         string     `json:"source" validate:"oneof=api csv"`
	RowIndex       int        `json:"row_index" validate:"min=0"`
	EmployeeName   *string    `json:"employee_name"`
	PredictedClass int        `json:"predicted_class" validate:"oneof=0 1"`
	Bertahan       float64    `json:"bertahan" validate:"min=0,max=100"`
	Resign         float64    `json:"resign" validate:"min=0,max=100"`
	CreatedAt      time.Time  `json:"created_at"`
}

// HistoryQuery holds the query parameters of GET /predictions.
type HistoryQuery struct {
	Limit  int    `validate:"min=1,max=500"`
	Source string `validate:"omitempty,oneof=api csv"`
}

// DefaultHistoryLimit is used when the request does not set a limit.
const DefaultHistoryLimit = 50

// HistoryResponse is the body of GET /predictions.
type HistoryResponse struct {
	Success     bool           `json:"success"`
	Predictions []HistoryEntry `json:"predictions"`
	Count       int            `json:"count"`
}

// validate caches struct metadata, so one instance is shared.
var validate = validator.New()

// Validate validates the HistoryEntry using the validator.
func (e *HistoryEntry) Validate() error {
	return validate.Struct(e)
}

// Validate validates the HistoryQuery using the validator.
func (q *HistoryQuery) Validate() error {
	return validate.Struct(q)
}
