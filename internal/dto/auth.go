package dto

import (
	"time"

	"github.com/noah-isme/course-registration-api/internal/models"
)

// LoginRequest carries the credentials for a login attempt. Identifier is a
// student email when it contains '@', otherwise a student id.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// LoginResponse returns the issued token and student info.
type LoginResponse struct {
	AccessToken string      `json:"access_token"`
	ExpiresIn   int64       `json:"expires_in"`
	IssuedAt    time.Time   `json:"issued_at"`
	Student     StudentInfo `json:"student"`
}

// StudentInfo is the student projection returned to clients. The password
// never leaves the service layer.
type StudentInfo struct {
	ID           string  `json:"id"`
	FullName     string  `json:"full_name"`
	Email        string  `json:"email"`
	Faculty      string  `json:"faculty"`
	Major        string  `json:"major"`
	Year         int     `json:"year"`
	GPA          float64 `json:"gpa"`
	ProfileImage string  `json:"profile_image"`
}

// NewStudentInfo maps a stored student onto the response projection.
func NewStudentInfo(s models.Student) StudentInfo {
	return StudentInfo{
		ID:           s.ID,
		FullName:     s.FullName(),
		Email:        s.Email,
		Faculty:      s.Faculty,
		Major:        s.Major,
		Year:         s.Year,
		GPA:          s.GPA,
		ProfileImage: s.ProfileImage,
	}
}
