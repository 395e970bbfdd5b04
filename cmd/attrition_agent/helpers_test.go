package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testModelPath = filepath.Join("..", "..", "internal", "model", "testdata", "attrition_forest.json")

// isolateEnv blanks the variables the CLI reads so a developer's .env cannot leak in.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "MODEL_PATH", "DATABASE_URL", "HISTORY_DRIVER", "HISTORY_DSN", "BATCH_WORKERS",
		"MAX_UPLOAD_BYTES", "MAX_ROWS", "LOG_LEVEL", "JWT_SECRET", "JWT_EXPIRATION_HOURS",
		"RATE_LIMIT_ENABLED",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
}

// run executes the CLI with args and returns stdout.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const recordJSON = `{
  "Nama": "Budi",
  "Age": 35, "DailyRate": 1102, "Department": "Sales", "DistanceFromHome": 2,
  "EnvironmentSatisfaction": "Satisfied", "JobInvolvement": "High", "JobLevel": "Level 2",
  "JobRole": "Sales Executive", "JobSatisfaction": "Very Satisfied", "MaritalStatus": "Single",
  "MonthlyIncome": 5993, "OverTime": "Yes", "StockOptionLevel": "Level 0",
  "TotalWorkingYears": 8, "TrainingTimesLastYear": 0, "WorkLifeBalance": "Bad",
  "YearsAtCompany": 6, "YearsInCurrentRole": 4, "YearsWithCurrManager": 5
}`

var csvColumns = []string{
	"EmployeeName", "Age", "DailyRate", "Department", "DistanceFromHome", "EnvironmentSatisfaction",
	"JobInvolvement", "JobLevel", "JobRole", "JobSatisfaction", "MaritalStatus", "MonthlyIncome",
	"OverTime", "StockOptionLevel", "TotalWorkingYears", "TrainingTimesLastYear",
	"WorkLifeBalance", "YearsAtCompany", "YearsInCurrentRole", "YearsWithCurrManager",
}

// employeesCSV holds a retained row, a row with an unknown department and an at-risk row.
var employeesCSV = strings.Join(csvColumns, ",") + "\n" +
	"Budi,35,1102,Sales,2,Satisfied,High,Level 2,Sales Executive,Very Satisfied,Single,5993,Yes,Level 0,8,0,Bad,6,4,5\n" +
	"Siti,35,1102,Marketing,2,Satisfied,High,Level 2,Sales Executive,Very Satisfied,Single,5993,Yes,Level 0,8,0,Bad,6,4,5\n" +
	"Andi,25,1102,Sales,2,Satisfied,High,Level 2,Sales Executive,Very Satisfied,Single,2000,Yes,Level 0,8,0,Bad,6,4,5\n"
