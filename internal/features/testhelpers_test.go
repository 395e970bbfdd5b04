package features

// validRecord returns a fully populated record using canonical labels.
func validRecord() Record {
	return Record{
		"Age":                     TextValue("35"),
		"DailyRate":               TextValue("1,102"),
		"Department":              TextValue("Sales"),
		"DistanceFromHome":        TextValue("2"),
		"EnvironmentSatisfaction": TextValue("Satisfied"),
		"JobInvolvement":          TextValue("High"),
		"JobLevel":                TextValue("Level 2"),
		"JobRole":                 TextValue("Sales Executive"),
		"JobSatisfaction":         TextValue("Very Satisfied"),
		"MaritalStatus":           TextValue("Single"),
		"MonthlyIncome":           TextValue("5 993"),
		"OverTime":                TextValue("Yes"),
		"StockOptionLevel":        TextValue("Level 0"),
		"TotalWorkingYears":       NumberValue(8),
		"TrainingTimesLastYear":   NumberValue(0),
		"WorkLifeBalance":         TextValue("Bad"),
		"YearsAtCompany":          TextValue("6"),
		"YearsInCurrentRole":      TextValue("4.0"),
		"YearsWithCurrManager":    TextValue("5"),
	}
}
