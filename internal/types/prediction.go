// Package types provides the request and response shapes of the prediction API.
package types

import (
	"strconv"
	"strings"
)

// Verdicts returned by the single-record endpoint.
const (
	VerdictResign = "Karyawan Mungkin Resign"
	VerdictStay   = "Karyawan Bertahan"
)

// Verdicts returned for CSV rows.
const (
	BatchVerdictResign = "At Risk of Resignation"
	BatchVerdictStay   = "Retained"
)

// Probability holds per-class percentages: bertahan (retained) and resign.
type Probability struct {
	Bertahan float64 `json:"bertahan"`
	Resign   float64 `json:"resign"`
}

// PredictResponse is the success body of POST /predict_api.
type PredictResponse struct {
	Success        bool        `json:"success"`
	EmployeeName   *string     `json:"employee_name"`
	Prediction     string      `json:"prediction"`
	PredictedClass int         `json:"predicted_class"`
	Probability    Probability `json:"probability"`
	Confidence     string      `json:"confidence"`
}

// BatchRow is one result line of POST /predict_csv. Rows that failed carry an
// "Error: ..." prediction, zero probabilities and a "0%" confidence.
type BatchRow struct {
	Index        int         `json:"index"`
	EmployeeName *string     `json:"employee_name"`
	Prediction   string      `json:"prediction"`
	Probability  Probability `json:"probability"`
	Confidence   string      `json:"confidence"`

	// PredictedClass is -1 for failed rows. Not part of the wire format.
	PredictedClass int `json:"-"`
}

// Failed reports whether the row carries an error instead of a prediction.
func (r BatchRow) Failed() bool { return r.PredictedClass < 0 }

// BatchResponse is the success body of POST /predict_csv.
type BatchResponse struct {
	Success bool       `json:"success"`
	Results []BatchRow `json:"results"`
}

// FailureResponse is the body of every request-level failure.
type FailureResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Column  string `json:"column,omitempty"`
	Value   string `json:"value,omitempty"`
}

// FormatPercent renders a percentage the way the web client expects: always at least one
// fractional digit ("87.5%", "100.0%").
func FormatPercent(p float64) string {
	s := strconv.FormatFloat(p, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s + "%"
}
