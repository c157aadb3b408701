package dto

import (
	"time"

	"github.com/noah-isme/course-registration-api/internal/models"
)

// CourseItem is the course projection served by listing endpoints.
type CourseItem struct {
	CourseID        string   `json:"course_id"`
	Name            string   `json:"name"`
	Credit          int      `json:"credit"`
	Section         int      `json:"section"`
	Instructor      string   `json:"instructor"`
	Schedule        string   `json:"schedule"`
	Room            string   `json:"room"`
	MaxStudents     int      `json:"max_students"`
	CurrentStudents int      `json:"current_students"`
	Faculty         string   `json:"faculty"`
	Term            string   `json:"term"`
	Prerequisites   []string `json:"prerequisites,omitempty"`
	Status          string   `json:"status"`
}

// NewCourseItem maps a stored course onto the response projection.
func NewCourseItem(c models.Course) CourseItem {
	return CourseItem{
		CourseID:        c.CourseID,
		Name:            c.Name,
		Credit:          c.Credit,
		Section:         c.Section,
		Instructor:      c.Instructor,
		Schedule:        c.Schedule,
		Room:            c.Room,
		MaxStudents:     c.MaxStudents,
		CurrentStudents: c.CurrentStudents,
		Faculty:         c.Faculty,
		Term:            c.Term,
		Prerequisites:   c.Prerequisites,
		Status:          string(c.Status),
	}
}

// RegisteredCourseItem joins a registration with its course record.
type RegisteredCourseItem struct {
	CourseItem
	RegistrationStatus string     `json:"registration_status"`
	RegistrationDate   time.Time  `json:"registration_date"`
	WithdrawDate       *time.Time `json:"withdraw_date,omitempty"`
	Grade              *string    `json:"grade,omitempty"`
}

// NewRegisteredCourseItem joins a registration and the course it references.
func NewRegisteredCourseItem(c models.Course, r models.Registration) RegisteredCourseItem {
	return RegisteredCourseItem{
		CourseItem:         NewCourseItem(c),
		RegistrationStatus: string(r.Status),
		RegistrationDate:   r.RegistrationDate,
		WithdrawDate:       r.WithdrawDate,
		Grade:              r.Grade,
	}
}

// ProfileResponse is a student's full profile: the student record plus both
// joined registration lists.
type ProfileResponse struct {
	Student               StudentInfo            `json:"student"`
	CurrentRegistrations  []RegisteredCourseItem `json:"current_registrations"`
	PreviousRegistrations []RegisteredCourseItem `json:"previous_registrations"`
}

// TermItem is the term projection served by term endpoints.
type TermItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsCurrent bool   `json:"is_current"`
}

// NewTermItem maps a stored term onto the response projection.
func NewTermItem(t models.Term) TermItem {
	return TermItem{ID: t.ID, Name: t.Name, IsCurrent: t.IsCurrent}
}
