package models

import "time"

// Term is an academic term. IDs follow the "<session>/<year>" format,
// e.g. "1/2567".
type Term struct {
	ID                 string     `json:"Id"`
	Name               string     `json:"Name"`
	IsCurrent          bool       `json:"IsCurrent"`
	StartDate          time.Time  `json:"StartDate,omitempty"`
	EndDate            time.Time  `json:"EndDate,omitempty"`
	RegistrationPeriod TermPeriod `json:"RegistrationPeriod,omitempty"`
	AddDropPeriod      TermPeriod `json:"AddDropPeriod,omitempty"`
	WithdrawDeadline   time.Time  `json:"WithdrawDeadline,omitempty"`
}

// TermPeriod is a date window within a term.
type TermPeriod struct {
	Start time.Time `json:"Start,omitempty"`
	End   time.Time `json:"End,omitempty"`
}
