package model

// AcademicEntry is one school attended. ClassSize and ClassRank are optional.
type AcademicEntry struct {
	School    string `json:"school"`
	Dates     string `json:"dates"`
	ClassSize string `json:"classSize,omitempty"`
	ClassRank string `json:"classRank,omitempty"`
}

func (e AcademicEntry) With(field string, value any) (AcademicEntry, error) {
	str, err := asString("academic", field, value)
	if err != nil {
		return e, err
	}
	switch field {
	case "school":
		e.School = str
	case "dates":
		e.Dates = str
	case "classSize":
		e.ClassSize = str
	case "classRank":
		e.ClassRank = str
	default:
		return e, unknownField("academic", field)
	}
	return e, nil
}

func (e AcademicEntry) Pairs() []Pair {
	return []Pair{
		{Key: "school", Label: "School", Value: e.School},
		{Key: "dates", Label: "Dates", Value: e.Dates},
		{Key: "classSize", Label: "Class Size", Value: e.ClassSize, Optional: true},
		{Key: "classRank", Label: "Class Rank", Value: e.ClassRank, Optional: true},
	}
}

// EmploymentEntry is one job held by the applicant.
type EmploymentEntry struct {
	Employer     string `json:"employer"`
	Address      string `json:"address,omitempty"`
	Title        string `json:"title"`
	Supervisor   string `json:"supervisor,omitempty"`
	StartDate    string `json:"startDate"`
	EndDate      string `json:"endDate,omitempty"`
	AverageHours string `json:"averageHours,omitempty"`
}

func (e EmploymentEntry) With(field string, value any) (EmploymentEntry, error) {
	str, err := asString("employment", field, value)
	if err != nil {
		return e, err
	}
	switch field {
	case "employer":
		e.Employer = str
	case "address":
		e.Address = str
	case "title":
		e.Title = str
	case "supervisor":
		e.Supervisor = str
	case "startDate":
		e.StartDate = str
	case "endDate":
		e.EndDate = str
	case "averageHours":
		e.AverageHours = str
	default:
		return e, unknownField("employment", field)
	}
	return e, nil
}

func (e EmploymentEntry) Pairs() []Pair {
	return []Pair{
		{Key: "employer", Label: "Employer", Value: e.Employer},
		{Key: "address", Label: "Address", Value: e.Address, Optional: true},
		{Key: "title", Label: "Title", Value: e.Title},
		{Key: "supervisor", Label: "Supervisor", Value: e.Supervisor, Optional: true},
		{Key: "startDate", Label: "Start Date", Value: e.StartDate},
		{Key: "endDate", Label: "End Date", Value: e.EndDate, Optional: true},
		{Key: "averageHours", Label: "Average Hours", Value: e.AverageHours, Optional: true},
	}
}

// GuardianEntry is one parent or guardian.
type GuardianEntry struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship"`
	Address      string `json:"address,omitempty"`
	Mobile       string `json:"mobile,omitempty"`
	Email        string `json:"email,omitempty"`
	Occupation   string `json:"occupation,omitempty"`
	Employer     string `json:"employer,omitempty"`
}

func (e GuardianEntry) With(field string, value any) (GuardianEntry, error) {
	str, err := asString("guardians", field, value)
	if err != nil {
		return e, err
	}
	switch field {
	case "name":
		e.Name = str
	case "relationship":
		e.Relationship = str
	case "address":
		e.Address = str
	case "mobile":
		e.Mobile = str
	case "email":
		e.Email = str
	case "occupation":
		e.Occupation = str
	case "employer":
		e.Employer = str
	default:
		return e, unknownField("guardians", field)
	}
	return e, nil
}

func (e GuardianEntry) Pairs() []Pair {
	return []Pair{
		{Key: "name", Label: "Name", Value: e.Name},
		{Key: "relationship", Label: "Relationship", Value: e.Relationship},
		{Key: "address", Label: "Address", Value: e.Address, Optional: true},
		{Key: "mobile", Label: "Mobile", Value: e.Mobile, Optional: true},
		{Key: "email", Label: "Email", Value: e.Email, Optional: true},
		{Key: "occupation", Label: "Occupation", Value: e.Occupation, Optional: true},
		{Key: "employer", Label: "Employer", Value: e.Employer, Optional: true},
	}
}

// SiblingEntry is one sibling. SchoolName only applies while InSchool is set;
// clearing InSchool clears it.
type SiblingEntry struct {
	Name       string `json:"name"`
	Age        string `json:"age,omitempty"`
	InSchool   bool   `json:"inSchool"`
	SchoolName string `json:"schoolName,omitempty"`
}

func (e SiblingEntry) With(field string, value any) (SiblingEntry, error) {
	if field == "inSchool" {
		flag, err := asBool("siblings", field, value)
		if err != nil {
			return e, err
		}
		e.InSchool = flag
		if !flag {
			e.SchoolName = ""
		}
		return e, nil
	}

	str, err := asString("siblings", field, value)
	if err != nil {
		return e, err
	}
	switch field {
	case "name":
		e.Name = str
	case "age":
		e.Age = str
	case "schoolName":
		e.SchoolName = str
	default:
		return e, unknownField("siblings", field)
	}
	return e, nil
}

func (e SiblingEntry) Pairs() []Pair {
	return []Pair{
		{Key: "name", Label: "Name", Value: e.Name},
		{Key: "age", Label: "Age", Value: e.Age, Optional: true},
		{Key: "inSchool", Label: "In School", Value: e.InSchool},
		{Key: "schoolName", Label: "School Name", Value: e.SchoolName, Optional: true},
	}
}
