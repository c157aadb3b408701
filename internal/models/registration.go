package models

import "time"

// RegistrationStatus is the lifecycle state of a registration.
type RegistrationStatus string

const (
	RegistrationStatusRegistered RegistrationStatus = "registered"
	RegistrationStatusWithdrawn  RegistrationStatus = "withdrawn"
	RegistrationStatusCompleted  RegistrationStatus = "completed"
)

// Registration ties a student to a course for a term. It is created in the
// registered state and moves to withdrawn on withdrawal. Completed entries
// carry a grade and come from historical imports, not from the engine.
type Registration struct {
	CourseID         string             `json:"CourseId"`
	Term             string             `json:"Term"`
	Status           RegistrationStatus `json:"Status"`
	RegistrationDate time.Time          `json:"RegistrationDate"`
	WithdrawDate     *time.Time         `json:"WithdrawDate,omitempty"`
	Grade            *string            `json:"Grade,omitempty"`
}
