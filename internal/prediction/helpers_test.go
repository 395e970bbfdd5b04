package prediction

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/model"
)

// retainedRow scores as class 0 with 58.33 / 41.67 on the test forest.
var retainedRow = map[string]string{
	"Age": "35", "DailyRate": "1102", "Department": "Sales", "DistanceFromHome": "2",
	"EnvironmentSatisfaction": "Satisfied", "JobInvolvement": "High", "JobLevel": "Level 2",
	"JobRole": "Sales Executive", "JobSatisfaction": "Very Satisfied", "MaritalStatus": "Single",
	"MonthlyIncome": "5,993", "OverTime": "Yes", "StockOptionLevel": "Level 0",
	"TotalWorkingYears": "8", "TrainingTimesLastYear": "0", "WorkLifeBalance": "Bad",
	"YearsAtCompany": "6", "YearsInCurrentRole": "4", "YearsWithCurrManager": "5",
}

// resignRow scores as class 1 with 33.33 / 66.67 on the test forest.
var resignRow = withOverrides(retainedRow, map[string]string{"Age": "25", "MonthlyIncome": "2000"})

func withOverrides(base, overrides map[string]string) map[string]string {
	out := make(map[string]string, len(base))
	for k, v := range base {
		out[k] = v
	}
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func toRecord(row map[string]string) features.Record {
	rec := make(features.Record, len(row))
	for k, v := range row {
		rec[k] = features.TextValue(v)
	}
	return rec
}

// buildCSV renders rows under header, quoting every cell.
func buildCSV(header []string, rows ...map[string]string) string {
	var sb strings.Builder
	sb.WriteString(strings.Join(header, ","))
	sb.WriteString("\n")
	for _, row := range rows {
		cells := make([]string, len(header))
		for i, h := range header {
			cells[i] = `"` + row[strings.TrimSpace(h)] + `"`
		}
		sb.WriteString(strings.Join(cells, ","))
		sb.WriteString("\n")
	}
	return sb.String()
}

func testForest(t *testing.T) *model.Forest {
	t.Helper()
	f, err := model.LoadForest(filepath.Join("..", "model", "testdata", "attrition_forest.json"))
	require.NoError(t, err)
	return f
}

func newTestService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	s, err := NewService(testForest(t), opts...)
	require.NoError(t, err)
	return s
}

// stubClassifier is a configurable Classifier for error paths.
type stubClassifier struct {
	width   int
	classes []int
	proba   []float64
	err     error
}

func (s *stubClassifier) PredictProba([]float64) ([]float64, error) { return s.proba, s.err }
func (s *stubClassifier) Predict([]float64) (int, error) {
	if s.err != nil {
		return 0, s.err
	}
	if s.proba[1] > s.proba[0] {
		return 1, nil
	}
	return 0, nil
}
func (s *stubClassifier) NumFeatures() int { return s.width }
func (s *stubClassifier) Classes() []int   { return s.classes }

var errStub = errors.New("stub failure")
