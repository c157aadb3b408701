package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/internal/models"
	"github.com/noah-isme/course-registration-api/internal/schedule"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

// documentMutator is the slice of the store the enrollment engine needs.
// Mutate serializes the whole load-mutate-save cycle.
type documentMutator interface {
	Load() (*models.Document, error)
	Mutate(fn func(*models.Document) error) error
}

// EnrollmentConfig tunes registration invariants.
type EnrollmentConfig struct {
	// EnforceCapacity gates registration on MaxStudents and keeps the
	// CurrentStudents counter symmetric (incremented on registration,
	// decremented on withdrawal). Off, the legacy behavior applies: the
	// counter only ever decrements.
	EnforceCapacity bool
}

// EnrollmentService executes registration and withdrawal against the
// document, enforcing capacity, duplicate and schedule-conflict invariants.
type EnrollmentService struct {
	store  documentMutator
	logger *zap.Logger
	config EnrollmentConfig
	now    func() time.Time
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(store documentMutator, logger *zap.Logger, config EnrollmentConfig) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{store: store, logger: logger, config: config, now: func() time.Time { return time.Now().UTC() }}
}

// Register enrolls a student into a course section. The registration is
// appended to the student's Current bucket and the document is persisted
// atomically; on any invariant failure nothing is written.
func (s *EnrollmentService) Register(ctx context.Context, studentID, courseID string) (*dto.RegisteredCourseItem, error) {
	if studentID == "" || courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and course id are required")
	}

	var item dto.RegisteredCourseItem
	err := s.store.Mutate(func(doc *models.Document) error {
		course := doc.FindCourse(courseID)
		if course == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", courseID))
		}
		if doc.FindStudent(studentID) == nil {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", studentID))
		}
		if !course.IsOpen() {
			return appErrors.Clone(appErrors.ErrCourseClosed, fmt.Sprintf("course %s is not open for registration", courseID))
		}

		bucket, _ := doc.Bucket(studentID)
		for _, reg := range bucket.Current {
			if reg.Status != models.RegistrationStatusRegistered {
				continue
			}
			if reg.CourseID == courseID {
				return appErrors.Clone(appErrors.ErrDuplicateRegistration, fmt.Sprintf("already registered for course %s", courseID))
			}
			registered := doc.FindCourse(reg.CourseID)
			if registered == nil {
				continue
			}
			conflict, malformed := schedule.ConflictsChecked(registered.Schedule, course.Schedule)
			for _, entry := range malformed {
				s.logger.Warn("skipping malformed schedule entry",
					zap.String("entry", entry),
					zap.String("course_id", courseID),
					zap.String("against", registered.CourseID))
			}
			if conflict {
				return appErrors.Clone(appErrors.ErrScheduleConflict,
					fmt.Sprintf("schedule conflicts with %s (%s)", registered.CourseID, registered.Name))
			}
		}

		if s.config.EnforceCapacity {
			if course.IsFull() {
				return appErrors.Clone(appErrors.ErrCourseFull, fmt.Sprintf("course %s is full", courseID))
			}
			course.CurrentStudents++
		}

		registration := models.Registration{
			CourseID:         courseID,
			Term:             course.Term,
			Status:           models.RegistrationStatusRegistered,
			RegistrationDate: s.now(),
		}
		bucket = doc.EnsureBucket(studentID)
		bucket.Current = append(bucket.Current, registration)
		doc.Registrations[studentID] = bucket

		item = dto.NewRegisteredCourseItem(*course, registration)
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course registered",
		zap.String("student_id", studentID),
		zap.String("course_id", courseID))
	return &item, nil
}

// Withdraw flips a registered entry to withdrawn, stamps the withdraw date
// and releases the seat. The document is persisted atomically.
func (s *EnrollmentService) Withdraw(ctx context.Context, studentID, courseID string) (*dto.RegisteredCourseItem, error) {
	if studentID == "" || courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id and course id are required")
	}

	var item dto.RegisteredCourseItem
	err := s.store.Mutate(func(doc *models.Document) error {
		bucket, ok := doc.Bucket(studentID)
		if !ok {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no registrations for student %s", studentID))
		}

		idx := -1
		for i, reg := range bucket.Current {
			if reg.CourseID == courseID && reg.Status == models.RegistrationStatusRegistered {
				idx = i
				break
			}
		}
		if idx < 0 {
			return appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("no active registration for course %s", courseID))
		}

		withdrawnAt := s.now()
		bucket.Current[idx].Status = models.RegistrationStatusWithdrawn
		bucket.Current[idx].WithdrawDate = &withdrawnAt
		doc.Registrations[studentID] = bucket

		course := doc.FindCourse(courseID)
		if course != nil && course.CurrentStudents > 0 {
			course.CurrentStudents--
		}

		if course != nil {
			item = dto.NewRegisteredCourseItem(*course, bucket.Current[idx])
		} else {
			item = dto.RegisteredCourseItem{
				CourseItem:         dto.CourseItem{CourseID: courseID},
				RegistrationStatus: string(models.RegistrationStatusWithdrawn),
				RegistrationDate:   bucket.Current[idx].RegistrationDate,
				WithdrawDate:       &withdrawnAt,
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("course withdrawn",
		zap.String("student_id", studentID),
		zap.String("course_id", courseID))
	return &item, nil
}
