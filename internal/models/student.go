package models

// Student is a registered student record. Identity fields (ID, Email) are
// immutable after creation; demographic fields may change.
type Student struct {
	ID           string  `json:"Id"`
	FirstName    string  `json:"FirstName"`
	LastName     string  `json:"LastName"`
	Email        string  `json:"Email"`
	Password     string  `json:"Password"`
	Faculty      string  `json:"Faculty"`
	Major        string  `json:"Major"`
	Year         int     `json:"Year"`
	GPA          float64 `json:"Gpa"`
	ProfileImage string  `json:"ProfileImage"`
}

// FullName joins the student's name fields for display.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}
