package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/internal/models"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

// documentReader is the read-only slice of the store the auth flow needs.
type documentReader interface {
	Load() (*models.Document, error)
}

// AuthTokenConfig defines access-token issuance parameters.
type AuthTokenConfig struct {
	Secret     string
	Expiration time.Duration
	Issuer     string
}

// AuthService authenticates students against the document's student list and
// issues access tokens for the HTTP surface.
type AuthService struct {
	store     documentReader
	sessions  *SessionService
	verifier  CredentialVerifier
	validator *validator.Validate
	logger    *zap.Logger
	config    AuthTokenConfig
}

// NewAuthService constructs an AuthService.
func NewAuthService(store documentReader, sessions *SessionService, verifier CredentialVerifier, validate *validator.Validate, logger *zap.Logger, config AuthTokenConfig) *AuthService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	return &AuthService{store: store, sessions: sessions, verifier: verifier, validator: validate, logger: logger, config: config}
}

// Authenticate matches the identifier against email when it contains '@' and
// against the student id otherwise, then compares credentials.
func (s *AuthService) Authenticate(ctx context.Context, identifier, password string) (*models.Student, error) {
	if strings.TrimSpace(identifier) == "" || password == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "identifier and password are required")
	}

	doc, err := s.store.Load()
	if err != nil {
		s.logger.Warn("authenticating against a degraded store", zap.Error(err))
	}

	var student *models.Student
	if strings.Contains(identifier, "@") {
		student = doc.FindStudentByEmail(identifier)
	} else {
		student = doc.FindStudent(identifier)
	}

	if student == nil || !s.verifier.Verify(student.Password, password) {
		return nil, appErrors.Clone(appErrors.ErrInvalidCredentials, "invalid identifier or password")
	}
	return student, nil
}

// Login authenticates and, on success, issues a token and starts the session.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid login payload")
	}

	student, err := s.Authenticate(ctx, req.Identifier, req.Password)
	if err != nil {
		return nil, err
	}

	token, issuedAt, err := s.generateAccessToken(student)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access token")
	}

	if s.sessions != nil {
		s.sessions.Start(student.ID)
	}

	return &dto.LoginResponse{
		AccessToken: token,
		ExpiresIn:   int64(s.config.Expiration.Seconds()),
		IssuedAt:    issuedAt,
		Student:     dto.NewStudentInfo(*student),
	}, nil
}

// Logout clears the session and the cached document together.
func (s *AuthService) Logout(ctx context.Context) {
	if s.sessions != nil {
		s.sessions.Clear()
	}
}

// ValidateToken parses and validates an access token returning the claims.
func (s *AuthService) ValidateToken(tokenString string) (*models.JWTClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &models.JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.JWTClaims)
	if !ok || !token.Valid {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}

	return claims, nil
}

func (s *AuthService) generateAccessToken(student *models.Student) (string, time.Time, error) {
	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.config.Expiration)
	claims := &models.JWTClaims{
		StudentID: student.ID,
		Email:     student.Email,
		FullName:  student.FullName(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.config.Issuer,
			Subject:   student.ID,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			NotBefore: jwt.NewNumericDate(issuedAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.config.Secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, issuedAt, nil
}
