package dto

import (
	"time"

	"github.com/noah-isme/course-registration-api/internal/models"
)

// HistoryView selects which status class a history query returns.
type HistoryView string

const (
	// HistoryViewRegistrations covers registered and completed entries,
	// sorted by registration date.
	HistoryViewRegistrations HistoryView = "registrations"
	// HistoryViewWithdrawals covers withdrawn entries, sorted by withdraw
	// date.
	HistoryViewWithdrawals HistoryView = "withdrawals"
)

// HistoryFilter narrows a registration-history query.
type HistoryFilter struct {
	TermID string
	View   HistoryView
}

// HistoryItem is one row of a student's registration history.
type HistoryItem struct {
	CourseID         string     `json:"course_id"`
	CourseName       string     `json:"course_name"`
	Credit           int        `json:"credit"`
	Section          int        `json:"section"`
	Instructor       string     `json:"instructor"`
	Schedule         string     `json:"schedule"`
	Room             string     `json:"room"`
	Term             string     `json:"term"`
	Status           string     `json:"status"`
	Grade            *string    `json:"grade,omitempty"`
	RegistrationDate time.Time  `json:"registration_date"`
	WithdrawDate     *time.Time `json:"withdraw_date,omitempty"`
}

// NewHistoryItem joins a registration and its course into a history row.
func NewHistoryItem(c models.Course, r models.Registration) HistoryItem {
	return HistoryItem{
		CourseID:         c.CourseID,
		CourseName:       c.Name,
		Credit:           c.Credit,
		Section:          c.Section,
		Instructor:       c.Instructor,
		Schedule:         c.Schedule,
		Room:             c.Room,
		Term:             r.Term,
		Status:           string(r.Status),
		Grade:            r.Grade,
		RegistrationDate: r.RegistrationDate,
		WithdrawDate:     r.WithdrawDate,
	}
}
