package model

// FinancialSummary captures where the applicant applied, the program cost and
// class standing.
type FinancialSummary struct {
	AppliedTo     string `json:"appliedTo"`
	AcceptedTo    bool   `json:"acceptedTo"`
	ProgramCost   string `json:"programCost"`
	HighSchoolGPA string `json:"highSchoolGPA"`
}

// With returns a copy of f with field set to value.
func (f FinancialSummary) With(field string, value any) (FinancialSummary, error) {
	if field == "acceptedTo" {
		flag, err := asBool("financial", field, value)
		if err != nil {
			return f, err
		}
		f.AcceptedTo = flag
		return f, nil
	}

	str, err := asString("financial", field, value)
	if err != nil {
		return f, err
	}
	switch field {
	case "appliedTo":
		f.AppliedTo = str
	case "programCost":
		f.ProgramCost = str
	case "highSchoolGPA":
		f.HighSchoolGPA = str
	default:
		return f, unknownField("financial", field)
	}
	return f, nil
}

func (f FinancialSummary) Pairs() []Pair {
	return []Pair{
		{Key: "appliedTo", Label: "Applied To", Value: f.AppliedTo, Optional: true},
		{Key: "acceptedTo", Label: "Accepted", Value: f.AcceptedTo},
		{Key: "programCost", Label: "Program Cost", Value: f.ProgramCost, Optional: true},
		{Key: "highSchoolGPA", Label: "High School GPA", Value: f.HighSchoolGPA, Optional: true},
	}
}

func (f FinancialSummary) Rows() [][]Pair { return [][]Pair{f.Pairs()} }

func (FinancialSummary) Repeated() bool { return false }
