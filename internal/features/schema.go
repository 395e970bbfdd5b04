// Package features turns loosely typed employee records into the fixed-order numeric
// feature vectors the attrition model was trained on.
package features

import "slices"

// Kind tags a schema column as categorical or numeric.
type Kind int

const (
	// Numeric columns are coerced to integers.
	Numeric Kind = iota
	// Categorical columns are normalized to a category code.
	Categorical
)

// Category is one canonical label and the code the model saw during training.
type Category struct {
	Label string
	Code  int
}

// Column describes one feature column.
type Column struct {
	Name       string
	Kind       Kind
	Categories []Category // declaration order; empty for numeric columns
	LevelStyle bool       // accepts "Level <n>" input
}

var satisfaction = []Category{
	{"Very Dissatisfied", 1}, {"Dissatisfied", 2}, {"Satisfied", 3}, {"Very Satisfied", 4},
}

// schema is the training column order. It must never be reordered.
var schema = []Column{
	{Name: "Age"},
	{Name: "DailyRate"},
	{Name: "Department", Kind: Categorical, Categories: []Category{
		{"Human Resources", 0}, {"Research & Development", 1}, {"Sales", 2},
	}},
	{Name: "DistanceFromHome"},
	{Name: "EnvironmentSatisfaction", Kind: Categorical, Categories: satisfaction},
	{Name: "JobInvolvement", Kind: Categorical, Categories: []Category{
		{"Low", 1}, {"Medium", 2}, {"High", 3}, {"Very High", 4},
	}},
	{Name: "JobLevel", Kind: Categorical, LevelStyle: true, Categories: []Category{
		{"Level 1", 1}, {"Level 2", 2}, {"Level 3", 3}, {"Level 4", 4}, {"Level 5", 5},
	}},
	{Name: "JobRole", Kind: Categorical, Categories: []Category{
		{"Healthcare Representative", 0}, {"Human Resources", 1}, {"Laboratory Technician", 2},
		{"Manager", 3}, {"Manufacturing Director", 4}, {"Research Director", 5},
		{"Research Scientist", 6}, {"Sales Executive", 7}, {"Sales Representative", 8},
	}},
	{Name: "JobSatisfaction", Kind: Categorical, Categories: satisfaction},
	{Name: "MaritalStatus", Kind: Categorical, Categories: []Category{
		{"Married", 0}, {"Single", 1}, {"Divorced", 2},
	}},
	{Name: "MonthlyIncome"},
	{Name: "OverTime", Kind: Categorical, Categories: []Category{
		{"No", 0}, {"Yes", 1},
	}},
	{Name: "StockOptionLevel", Kind: Categorical, LevelStyle: true, Categories: []Category{
		{"Level 0", 0}, {"Level 1", 1}, {"Level 2", 2}, {"Level 3", 3},
	}},
	{Name: "TotalWorkingYears"},
	{Name: "TrainingTimesLastYear"},
	{Name: "WorkLifeBalance", Kind: Categorical, Categories: []Category{
		{"Bad", 1}, {"Good", 2}, {"Better", 3}, {"Best", 4},
	}},
	{Name: "YearsAtCompany"},
	{Name: "YearsInCurrentRole"},
	{Name: "YearsWithCurrManager"},
}

// NameCandidates lists the columns (or payload keys) that may carry the employee name,
// in priority order.
var NameCandidates = []string{"NamaKaryawan", "Nama", "EmployeeName", "Name"}

var columnIndex = func() map[string]int {
	idx := make(map[string]int, len(schema))
	for i, c := range schema {
		idx[c.Name] = i
	}
	return idx
}()

// Width is the length of every feature vector.
func Width() int { return len(schema) }

// Schema returns a copy of the ordered column list.
func Schema() []Column {
	return slices.Clone(schema)
}

// ColumnNames returns the required column names in training order.
func ColumnNames() []string {
	names := make([]string, len(schema))
	for i, c := range schema {
		names[i] = c.Name
	}
	return names
}

// Lookup returns the column definition for name.
func Lookup(name string) (Column, bool) {
	i, ok := columnIndex[name]
	if !ok {
		return Column{}, false
	}
	return schema[i], true
}

// Labels returns the canonical labels in declaration order.
func (c Column) Labels() []string {
	labels := make([]string, len(c.Categories))
	for i, cat := range c.Categories {
		labels[i] = cat.Label
	}
	return labels
}

// Codes returns the valid category codes in ascending order.
func (c Column) Codes() []int {
	codes := make([]int, 0, len(c.Categories))
	for _, cat := range c.Categories {
		if !slices.Contains(codes, cat.Code) {
			codes = append(codes, cat.Code)
		}
	}
	slices.Sort(codes)
	return codes
}

func (c Column) labelCode(label string) (int, bool) {
	for _, cat := range c.Categories {
		if cat.Label == label {
			return cat.Code, true
		}
	}
	return 0, false
}

func (c Column) validCode(code int) bool {
	for _, cat := range c.Categories {
		if cat.Code == code {
			return true
		}
	}
	return false
}
