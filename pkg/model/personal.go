package model

// PersonalInfo holds the applicant's identity and contact details.
type PersonalInfo struct {
	FirstName      string `json:"firstName"`
	LastName       string `json:"lastName"`
	DateOfBirth    string `json:"dateOfBirth"`
	MailingAddress string `json:"mailingAddress"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
}

// With returns a copy of p with field set to value.
func (p PersonalInfo) With(field string, value any) (PersonalInfo, error) {
	str, err := asString("personal", field, value)
	if err != nil {
		return p, err
	}
	switch field {
	case "firstName":
		p.FirstName = str
	case "lastName":
		p.LastName = str
	case "dateOfBirth":
		p.DateOfBirth = str
	case "mailingAddress":
		p.MailingAddress = str
	case "phone":
		p.Phone = str
	case "email":
		p.Email = str
	default:
		return p, unknownField("personal", field)
	}
	return p, nil
}

// Pairs lists the fields in display order.
func (p PersonalInfo) Pairs() []Pair {
	return []Pair{
		{Key: "firstName", Label: "First Name", Value: p.FirstName},
		{Key: "lastName", Label: "Last Name", Value: p.LastName},
		{Key: "dateOfBirth", Label: "Date of Birth", Value: p.DateOfBirth},
		{Key: "mailingAddress", Label: "Mailing Address", Value: p.MailingAddress},
		{Key: "phone", Label: "Phone", Value: p.Phone},
		{Key: "email", Label: "Email", Value: p.Email},
	}
}

// Rows implements State.
func (p PersonalInfo) Rows() [][]Pair { return [][]Pair{p.Pairs()} }

// Repeated implements State.
func (PersonalInfo) Repeated() bool { return false }
