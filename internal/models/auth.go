package models

import "github.com/golang-jwt/jwt/v5"

// JWTClaims is the access-token payload for an authenticated student.
type JWTClaims struct {
	StudentID string `json:"student_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	jwt.RegisteredClaims
}
