package prediction

import (
	"context"
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alfandoo/Attrition-Predict/internal/features"
	"github.com/alfandoo/Attrition-Predict/internal/types"
)

func header(extra ...string) []string {
	return append(features.ColumnNames(), extra...)
}

func TestPredictCSV_AllRowsValid(t *testing.T) {
	s := newTestService(t)

	named := withOverrides(retainedRow, map[string]string{"Name": "Ani"})
	csvData := buildCSV(header("Name"), named, resignRow)

	resp, err := s.PredictCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.True(t, resp.Success)
	require.Len(t, resp.Results, 2)

	first := resp.Results[0]
	assert.Equal(t, 1, first.Index)
	require.NotNil(t, first.EmployeeName)
	assert.Equal(t, "Ani", *first.EmployeeName)
	assert.Equal(t, types.BatchVerdictStay, first.Prediction)
	assert.Equal(t, types.Probability{Bertahan: 58.33, Resign: 41.67}, first.Probability)
	assert.Equal(t, "58.33%", first.Confidence)

	second := resp.Results[1]
	assert.Equal(t, 2, second.Index)
	assert.Nil(t, second.EmployeeName)
	assert.Equal(t, types.BatchVerdictResign, second.Prediction)
	assert.Equal(t, "66.67%", second.Confidence)
}

func TestPredictCSV_IsolatesMalformedRow(t *testing.T) {
	s := newTestService(t, WithWorkers(3))

	bad := withOverrides(retainedRow, map[string]string{"Department": "Marketing", "NamaKaryawan": "Joko"})
	rows := []map[string]string{retainedRow, resignRow, bad, retainedRow, resignRow}
	csvData := buildCSV(header("NamaKaryawan"), rows...)

	resp, err := s.PredictCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, resp.Results, len(rows))

	failed := 0
	for i, r := range resp.Results {
		assert.Equal(t, i+1, r.Index)
		if r.Failed() {
			failed++
			assert.Equal(t, 3, r.Index)
			assert.True(t, strings.HasPrefix(r.Prediction, "Error: "))
			assert.Contains(t, r.Prediction, "Marketing")
			assert.Equal(t, types.Probability{}, r.Probability)
			assert.Equal(t, "0%", r.Confidence)
			require.NotNil(t, r.EmployeeName)
			assert.Equal(t, "Joko", *r.EmployeeName)
			continue
		}
		assert.InDelta(t, 100.0, r.Probability.Bertahan+r.Probability.Resign, 0.011)
	}
	assert.Equal(t, 1, failed)
}

func TestPredictCSV_BlankCellIsRowError(t *testing.T) {
	s := newTestService(t)

	blank := withOverrides(retainedRow, map[string]string{"Age": ""})
	resp, err := s.PredictCSV(context.Background(), strings.NewReader(buildCSV(header(), blank)))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Error: column 'Age' is empty", resp.Results[0].Prediction)
}

func TestPredictCSV_MissingColumn(t *testing.T) {
	s := newTestService(t)

	var cols []string
	for _, c := range features.ColumnNames() {
		if c != "OverTime" {
			cols = append(cols, c)
		}
	}

	_, err := s.PredictCSV(context.Background(), strings.NewReader(buildCSV(cols, retainedRow)))
	var mce *MissingColumnsError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, []string{"OverTime"}, mce.Missing)
	assert.Equal(t, features.ColumnNames(), mce.Required)
	assert.Contains(t, err.Error(), "required columns missing: ['OverTime']")
}

func TestPredictCSV_HeaderWhitespaceAndBOM(t *testing.T) {
	s := newTestService(t)

	padded := make([]string, 0, features.Width())
	for _, c := range features.ColumnNames() {
		padded = append(padded, "  "+c+" ")
	}
	csvData := "\ufeff" + buildCSV(padded, retainedRow)

	resp, err := s.PredictCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.False(t, resp.Results[0].Failed())
}

func TestPredictCSV_HeaderOnly(t *testing.T) {
	s := newTestService(t)

	resp, err := s.PredictCSV(context.Background(), strings.NewReader(buildCSV(header())))
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
}

func TestPredictCSV_UnreadableFile(t *testing.T) {
	s := newTestService(t)

	_, err := s.PredictCSV(context.Background(), strings.NewReader(""))
	var fpe *FileProcessingError
	require.True(t, errors.As(err, &fpe))
	assert.Contains(t, err.Error(), "no columns to parse")

	wide := buildCSV(header(), retainedRow)
	wide = strings.TrimSuffix(wide, "\n") + `,"extra"` + "\n"
	_, err = s.PredictCSV(context.Background(), strings.NewReader(wide))
	require.True(t, errors.As(err, &fpe))
	assert.Contains(t, err.Error(), "expected 19 fields in line 2, saw 20")

	tests := []struct {
		name string
		data string
		want error
	}{
		{
			name: "unterminated quote before another row",
			data: strings.Join(header(), ",") + "\n" +
				`"Siti,35,1102,Sales` + "\n" +
				strings.SplitN(buildCSV(header(), retainedRow), "\n", 2)[1],
			want: csv.ErrQuote,
		},
		{
			name: "unterminated quote at end of file",
			data: buildCSV(header(), retainedRow) + `"Siti,35,1102`,
			want: csv.ErrQuote,
		},
		{
			name: "stray quote inside a bare cell",
			data: buildCSV(header(), retainedRow) + `Si"ti,35,1102` + "\n",
			want: csv.ErrBareQuote,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := s.PredictCSV(context.Background(), strings.NewReader(tt.data))
			assert.Nil(t, resp)
			var fpe *FileProcessingError
			require.True(t, errors.As(err, &fpe))
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestPredictCSV_ShortRowIsRowError(t *testing.T) {
	s := newTestService(t)

	csvData := buildCSV(header(), retainedRow) + "35,1102\n"
	resp, err := s.PredictCSV(context.Background(), strings.NewReader(csvData))
	require.NoError(t, err)
	require.Len(t, resp.Results, 2)
	assert.False(t, resp.Results[0].Failed())
	assert.True(t, resp.Results[1].Failed())
	assert.Contains(t, resp.Results[1].Prediction, "Department")
}

func TestPredictCSV_MaxRows(t *testing.T) {
	s := newTestService(t, WithMaxRows(1))

	_, err := s.PredictCSV(context.Background(), strings.NewReader(buildCSV(header(), retainedRow, resignRow)))
	var fpe *FileProcessingError
	require.True(t, errors.As(err, &fpe))
	assert.Contains(t, err.Error(), "limit is 1")
}

func TestPredictCSV_ModelErrorIsolatedPerRow(t *testing.T) {
	s, err := NewService(&stubClassifier{width: 19, classes: []int{0, 1}, err: errStub})
	require.NoError(t, err)

	resp, err := s.PredictCSV(context.Background(), strings.NewReader(buildCSV(header(), retainedRow)))
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Error: model inference failed: stub failure", resp.Results[0].Prediction)
}

func TestPredictCSV_CanceledContext(t *testing.T) {
	s := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.PredictCSV(ctx, strings.NewReader(buildCSV(header(), retainedRow)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadTable_DetectsNameColumnAndNA(t *testing.T) {
	table, err := ReadTable(strings.NewReader("Age,Name,EmployeeName\n30,NA,Rina\n"))
	require.NoError(t, err)

	assert.Equal(t, "EmployeeName", table.NameColumn)
	require.Len(t, table.Rows, 1)
	assert.Equal(t, features.Missing, table.Rows[0].Get("Name").Kind())
	assert.Len(t, table.MissingColumns(), features.Width()-1)
}
