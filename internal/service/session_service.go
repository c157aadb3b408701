package service

import (
	"sync"

	"go.uber.org/zap"
)

// documentInvalidator is the slice of the store the session layer needs:
// logout tears down the cached document together with the session state.
type documentInvalidator interface {
	Invalidate()
}

// SessionService tracks the logged-in student. The two flags it holds (is
// logged in, current student id) live outside the document and are cleared
// together on logout.
type SessionService struct {
	store  documentInvalidator
	logger *zap.Logger

	mu        sync.Mutex
	loggedIn  bool
	studentID string
}

// NewSessionService constructs a SessionService.
func NewSessionService(store documentInvalidator, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{store: store, logger: logger}
}

// Start records a successful login.
func (s *SessionService) Start(studentID string) {
	s.mu.Lock()
	s.loggedIn = true
	s.studentID = studentID
	s.mu.Unlock()
	s.logger.Info("session started", zap.String("student_id", studentID))
}

// Current returns the logged-in student id. The second return value is false
// when no session is active.
func (s *SessionService) Current() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loggedIn {
		return "", false
	}
	return s.studentID, true
}

// Clear ends the session and invalidates the document cache so the next
// login observes fresh state.
func (s *SessionService) Clear() {
	s.mu.Lock()
	studentID := s.studentID
	s.loggedIn = false
	s.studentID = ""
	s.mu.Unlock()

	if s.store != nil {
		s.store.Invalidate()
	}
	s.logger.Info("session cleared", zap.String("student_id", studentID))
}
