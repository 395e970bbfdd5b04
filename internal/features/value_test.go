package features

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_UnmarshalJSON(t *testing.T) {
	var rec Record
	err := json.Unmarshal([]byte(`{
		" Age ": 41,
		"Department": "Sales",
		"OverTime": true,
		"Name": null,
		"JobRole": {"nested": 1}
	}`), &rec)
	require.NoError(t, err)

	assert.Equal(t, NumberValue(41), rec.Get("Age"))
	assert.Equal(t, TextValue("Sales"), rec.Get("Department"))
	assert.Equal(t, NumberValue(1), rec.Get("OverTime"))
	assert.Equal(t, Missing, rec.Get("Name").Kind())
	assert.Equal(t, Text, rec.Get("JobRole").Kind())
	assert.Equal(t, Missing, rec.Get("Absent").Kind())
}

func TestRecord_UnmarshalJSON_RejectsNonObjects(t *testing.T) {
	for _, body := range []string{`[1,2]`, `"text"`, `null`, `42`} {
		var rec Record
		assert.Error(t, json.Unmarshal([]byte(body), &rec), body)
	}
}

func TestValue_String(t *testing.T) {
	assert.Equal(t, "2", NumberValue(2).String())
	assert.Equal(t, "2.5", NumberValue(2.5).String())
	assert.Equal(t, " x ", TextValue(" x ").String())
	assert.Equal(t, "", MissingValue().String())
}

func TestValue_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(map[string]Value{
		"a": TextValue("x"),
		"b": NumberValue(3),
		"c": MissingValue(),
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"a":"x","b":3,"c":null}`, string(out))
}

func TestCellValue(t *testing.T) {
	assert.Equal(t, TextValue("Sales"), CellValue("  Sales "))
	assert.Equal(t, Missing, CellValue("").Kind())
	assert.Equal(t, Missing, CellValue("  ").Kind())
	assert.Equal(t, Missing, CellValue("NA").Kind())
	assert.Equal(t, Missing, CellValue("nan").Kind())
	assert.Equal(t, Text, CellValue("Nan Ruiz").Kind())
}
