package models

// CourseStatus is the offering state of a course section.
type CourseStatus string

const (
	CourseStatusOpen   CourseStatus = "open"
	CourseStatusClosed CourseStatus = "closed"
)

// Course is a course section offering. CourseID plus Section forms a unique
// offering. Schedule is a human-readable meeting-time string such as
// "Monday 9:00-12:00", with multiple meetings joined by commas or semicolons.
// CurrentStudents is a derived count mutated only by the enrollment service.
type Course struct {
	CourseID        string       `json:"CourseId"`
	Name            string       `json:"Name"`
	Credit          int          `json:"Credit"`
	Section         int          `json:"Section"`
	Instructor      string       `json:"Instructor"`
	Schedule        string       `json:"Schedule"`
	Room            string       `json:"Room"`
	MaxStudents     int          `json:"MaxStudents"`
	CurrentStudents int          `json:"CurrentStudents"`
	Faculty         string       `json:"Faculty"`
	Term            string       `json:"Term"`
	Prerequisites   []string     `json:"Prerequisites,omitempty"`
	Description     string       `json:"Description,omitempty"`
	Status          CourseStatus `json:"Status"`
}

// IsOpen reports whether the section accepts registrations.
func (c Course) IsOpen() bool {
	return c.Status == CourseStatusOpen
}

// IsFull reports whether the section has reached its capacity. Sections with
// no configured maximum never fill.
func (c Course) IsFull() bool {
	return c.MaxStudents > 0 && c.CurrentStudents >= c.MaxStudents
}
