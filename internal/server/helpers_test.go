package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alfandoo/Attrition-Predict/internal/model"
	"github.com/alfandoo/Attrition-Predict/internal/prediction"
	"github.com/alfandoo/Attrition-Predict/internal/server/ratelimit"
)

// retainedPayload scores as class 0 with 58.33 / 41.67 on the test forest.
func retainedPayload() map[string]any {
	return map[string]any{
		"NamaKaryawan": "Budi",
		"Age":          35, "DailyRate": "1,102", "Department": "Sales", "DistanceFromHome": 2,
		"EnvironmentSatisfaction": "Satisfied", "JobInvolvement": "High", "JobLevel": "Level 2",
		"JobRole": "Sales Executive", "JobSatisfaction": "Very Satisfied", "MaritalStatus": "Single",
		"MonthlyIncome": 5993, "OverTime": "Yes", "StockOptionLevel": "Level 0",
		"TotalWorkingYears": 8, "TrainingTimesLastYear": 0, "WorkLifeBalance": "Bad",
		"YearsAtCompany": 6, "YearsInCurrentRole": 4, "YearsWithCurrManager": 5,
	}
}

// resignPayload scores as class 1 with 33.33 / 66.67.
func resignPayload() map[string]any {
	p := retainedPayload()
	p["Age"] = 25
	p["MonthlyIncome"] = "2000"
	delete(p, "NamaKaryawan")
	return p
}

var csvHeader = []string{
	"Nama", "Age", "DailyRate", "Department", "DistanceFromHome", "EnvironmentSatisfaction",
	"JobInvolvement", "JobLevel", "JobRole", "JobSatisfaction", "MaritalStatus", "MonthlyIncome",
	"OverTime", "StockOptionLevel", "TotalWorkingYears", "TrainingTimesLastYear",
	"WorkLifeBalance", "YearsAtCompany", "YearsInCurrentRole", "YearsWithCurrManager",
}

// csvRow renders payload p under csvHeader with name in the Nama column.
func csvRow(name string, p map[string]any) string {
	cells := make([]string, len(csvHeader))
	for i, h := range csvHeader {
		if h == "Nama" {
			cells[i] = `"` + name + `"`
			continue
		}
		v, _ := json.Marshal(p[h])
		cells[i] = `"` + strings.Trim(string(v), `"`) + `"`
	}
	return strings.Join(cells, ",")
}

func csvDocument(rows ...string) string {
	return strings.Join(csvHeader, ",") + "\n" + strings.Join(rows, "\n") + "\n"
}

func testService(t *testing.T) *prediction.Service {
	t.Helper()
	forest, err := model.LoadForest(filepath.Join("..", "model", "testdata", "attrition_forest.json"))
	require.NoError(t, err)
	svc, err := prediction.NewService(forest, prediction.WithWorkers(2))
	require.NoError(t, err)
	return svc
}

func newTestServer(t *testing.T, configure ...func(*Config)) *Server {
	t.Helper()
	cfg := Config{
		MaxUploadBytes: 1 << 20,
		Service:        testService(t),
		RateLimit:      &ratelimit.Config{Enabled: false},
	}
	for _, c := range configure {
		c(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func serve(s *Server, req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)
	return rr
}

func jsonRequest(t *testing.T, path string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

// uploadRequest builds a multipart POST carrying content as a file part named field.
func uploadRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = io.WriteString(fw, content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/predict_csv", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

// failingClassifier satisfies the schema but errors on every prediction.
type failingClassifier struct{}

func (failingClassifier) PredictProba([]float64) ([]float64, error) {
	return nil, errors.New("tree walk failed")
}
func (failingClassifier) Predict([]float64) (int, error) { return 0, errors.New("tree walk failed") }
func (failingClassifier) NumFeatures() int               { return 19 }
func (failingClassifier) Classes() []int                 { return []int{0, 1} }
