package observability

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"

	"github.com/alfandoo/Attrition-Predict/internal/schemas"
	"github.com/alfandoo/Attrition-Predict/internal/types"
)

func strPtr(s string) *string { return &s }

func TestPrintPrediction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintPrediction(&types.PredictResponse{
		Success:        true,
		EmployeeName:   strPtr("Budi Santoso"),
		Prediction:     types.VerdictResign,
		PredictedClass: 1,
		Probability:    types.Probability{Bertahan: 33.33, Resign: 66.67},
		Confidence:     "66.67%",
	})
	output := buf.String()

	assert.Contains(t, output, "ATTRITION PREDICTION")
	assert.Contains(t, output, "Budi Santoso")
	assert.Contains(t, output, types.VerdictResign)
	assert.Contains(t, output, " 66.67%")
	assert.Contains(t, output, " 33.33%")
}

func TestPrintPrediction_Unnamed(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPrediction(&types.PredictResponse{Prediction: types.VerdictStay})
	assert.Contains(t, buf.String(), "(unnamed)")
}

func TestPrintPrediction_Nil(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintPrediction(nil)
	assert.Empty(t, buf.String())
}

func batchFixture() *types.BatchResponse {
	resp := &types.BatchResponse{Success: true}
	for i := 1; i <= 7; i++ {
		resp.Results = append(resp.Results, types.BatchRow{
			Index:          i,
			EmployeeName:   strPtr(fmt.Sprintf("emp-%d", i)),
			Prediction:     types.BatchVerdictResign,
			Probability:    types.Probability{Bertahan: float64(50 - i), Resign: float64(50 + i)},
			PredictedClass: 1,
		})
	}
	resp.Results = append(resp.Results,
		types.BatchRow{Index: 8, Prediction: types.BatchVerdictStay, Probability: types.Probability{Bertahan: 90, Resign: 10}},
		types.BatchRow{Index: 9, Prediction: "Error: column 'Age' is empty", Confidence: "0%", PredictedClass: -1},
	)
	return resp
}

func TestSummarize(t *testing.T) {
	assert.Equal(t, BatchSummary{Total: 9, AtRisk: 7, Retained: 1, Failed: 1}, Summarize(batchFixture()))
	assert.Equal(t, BatchSummary{}, Summarize(nil))
}

func TestPrintBatch(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatch(batchFixture())
	output := buf.String()

	assert.Contains(t, output, "BATCH PREDICTION")
	assert.Contains(t, output, "Rows: 9  At risk: 7  Retained: 1  Errors: 1")
	// highest risk first
	assert.Less(t, strings.Index(output, "emp-7"), strings.Index(output, "emp-6"))
	assert.Contains(t, output, "... and 2 more")
	assert.NotContains(t, output, "emp-1 ")
	assert.Contains(t, output, "#9 column 'Age' is empty")
}

func TestPrintBatch_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintBatch(&types.BatchResponse{Success: true})
	assert.Empty(t, buf.String())
}

func TestPrintModel(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintModel(ModelInfo{
		Path:       "models/forest.json",
		Trees:      3,
		Nodes:      11,
		Features:   []string{"Age", "BusinessTravel", "DailyRate", "Department", "DistanceFromHome", "Education"},
		NumClasses: 2,
	})
	output := buf.String()

	assert.Contains(t, output, "MODEL ARTIFACT")
	assert.Contains(t, output, "Trees:    3 (11 nodes)")
	assert.Contains(t, output, "• Age")
	assert.NotContains(t, output, "Education")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintSchemaViolations(t *testing.T) {
	var buf bytes.Buffer
	violations := []schemas.FieldError{
		{Field: "classes", Message: "Array must have at least 2 items"},
		{Field: "trees", Message: "Array must have at least 1 items"},
	}
	for i := 0; i < 5; i++ {
		violations = append(violations, schemas.FieldError{Field: "trees.0", Message: "extra"})
	}
	NewPrinter(&buf).PrintSchemaViolations("models/bad.json", violations)
	output := buf.String()

	assert.Contains(t, output, "SCHEMA VIOLATIONS")
	assert.Contains(t, output, "Problems: 7")
	assert.Contains(t, output, "1. classes: Array must have at least 2 items")
	assert.Contains(t, output, "2. trees: Array must have at least 1 items")
	assert.Contains(t, output, "... and 2 more")
}

func TestPrintBox_AlignsMultiByteAndTruncates(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.printBox("TITLE", "Señora Núñez\n"+strings.Repeat("x", 100))

	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		assert.Equal(t, boxWidth, utf8.RuneCountInString(line), "line %q", line)
	}
	assert.Contains(t, buf.String(), "...")
}
