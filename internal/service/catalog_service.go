package service

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/course-registration-api/internal/dto"
	"github.com/noah-isme/course-registration-api/internal/models"
	appErrors "github.com/noah-isme/course-registration-api/pkg/errors"
)

// CatalogService serves read-only projections over the document: course
// listings, joined registrations, history and student profiles. Lookups
// degrade to empty results so read paths stay resilient; only a missing
// student on the profile endpoint is reported as not found.
type CatalogService struct {
	store  documentReader
	logger *zap.Logger
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(store documentReader, logger *zap.Logger) *CatalogService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CatalogService{store: store, logger: logger}
}

// AvailableCourses returns all open course sections. When studentID is
// non-empty, sections the student is already registered for are excluded.
func (s *CatalogService) AvailableCourses(ctx context.Context, studentID string) ([]dto.CourseItem, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	registered := map[string]struct{}{}
	if studentID != "" {
		if bucket, ok := doc.Bucket(studentID); ok {
			for _, reg := range bucket.Current {
				if reg.Status == models.RegistrationStatusRegistered {
					registered[reg.CourseID] = struct{}{}
				}
			}
		}
	}

	items := make([]dto.CourseItem, 0, len(doc.Courses))
	for _, course := range doc.Courses {
		if !course.IsOpen() {
			continue
		}
		if _, ok := registered[course.CourseID]; ok {
			continue
		}
		items = append(items, dto.NewCourseItem(course))
	}
	return items, nil
}

// RegisteredCourses returns the student's currently registered courses joined
// to their course records. An absent bucket yields an empty slice.
func (s *CatalogService) RegisteredCourses(ctx context.Context, studentID string) ([]dto.RegisteredCourseItem, error) {
	return s.currentByStatus(studentID, models.RegistrationStatusRegistered)
}

// WithdrawnCourses returns the student's withdrawn courses for the active
// term.
func (s *CatalogService) WithdrawnCourses(ctx context.Context, studentID string) ([]dto.RegisteredCourseItem, error) {
	return s.currentByStatus(studentID, models.RegistrationStatusWithdrawn)
}

// History returns the union of the student's current and previous
// registrations, optionally filtered by term, restricted to the view's
// status class and sorted newest first by the view's date field.
func (s *CatalogService) History(ctx context.Context, studentID string, filter dto.HistoryFilter) ([]dto.HistoryItem, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	bucket, ok := doc.Bucket(studentID)
	if !ok {
		return []dto.HistoryItem{}, nil
	}

	view := filter.View
	if view == "" {
		view = dto.HistoryViewRegistrations
	}

	items := make([]dto.HistoryItem, 0, len(bucket.Current)+len(bucket.Previous))
	for _, reg := range append(append([]models.Registration{}, bucket.Current...), bucket.Previous...) {
		if filter.TermID != "" && reg.Term != filter.TermID {
			continue
		}
		if !viewMatches(view, reg.Status) {
			continue
		}
		course := doc.FindCourse(reg.CourseID)
		if course == nil {
			s.logger.Warn("registration references unknown course",
				zap.String("student_id", studentID),
				zap.String("course_id", reg.CourseID))
			continue
		}
		items = append(items, dto.NewHistoryItem(*course, reg))
	}

	sort.SliceStable(items, func(i, j int) bool {
		if view == dto.HistoryViewWithdrawals {
			return withdrawTime(items[i]).After(withdrawTime(items[j]))
		}
		return items[i].RegistrationDate.After(items[j].RegistrationDate)
	})
	return items, nil
}

// StudentFullProfile returns the student record plus both joined
// registration lists.
func (s *CatalogService) StudentFullProfile(ctx context.Context, studentID string) (*dto.ProfileResponse, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	student := doc.FindStudent(studentID)
	if student == nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", studentID))
	}

	profile := &dto.ProfileResponse{
		Student:               dto.NewStudentInfo(*student),
		CurrentRegistrations:  []dto.RegisteredCourseItem{},
		PreviousRegistrations: []dto.RegisteredCourseItem{},
	}

	bucket, ok := doc.Bucket(studentID)
	if !ok {
		return profile, nil
	}
	profile.CurrentRegistrations = s.join(doc, bucket.Current)
	profile.PreviousRegistrations = s.join(doc, bucket.Previous)
	return profile, nil
}

// Terms returns the stored terms, or terms synthesized from the distinct
// term ids found across all registrations when the store has none. Synthetic
// terms are ordered newest first with the newest marked current.
func (s *CatalogService) Terms(ctx context.Context) ([]dto.TermItem, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	if len(doc.Terms) > 0 {
		items := make([]dto.TermItem, 0, len(doc.Terms))
		for _, term := range doc.Terms {
			items = append(items, dto.NewTermItem(term))
		}
		return items, nil
	}

	seen := map[string]struct{}{}
	ids := []string{}
	for _, bucket := range doc.Registrations {
		for _, reg := range append(append([]models.Registration{}, bucket.Current...), bucket.Previous...) {
			if reg.Term == "" {
				continue
			}
			if _, ok := seen[reg.Term]; !ok {
				seen[reg.Term] = struct{}{}
				ids = append(ids, reg.Term)
			}
		}
	}
	sort.Slice(ids, func(i, j int) bool {
		return termOrdinal(ids[i]) > termOrdinal(ids[j])
	})

	items := make([]dto.TermItem, 0, len(ids))
	for i, id := range ids {
		items = append(items, dto.TermItem{ID: id, Name: id, IsCurrent: i == 0})
	}
	return items, nil
}

// CurrentTerm returns the term flagged as current.
func (s *CatalogService) CurrentTerm(ctx context.Context) (*dto.TermItem, error) {
	terms, err := s.Terms(ctx)
	if err != nil {
		return nil, err
	}
	for i := range terms {
		if terms[i].IsCurrent {
			return &terms[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "no current term")
}

func (s *CatalogService) currentByStatus(studentID string, status models.RegistrationStatus) ([]dto.RegisteredCourseItem, error) {
	doc, err := s.load()
	if err != nil {
		return nil, err
	}

	bucket, ok := doc.Bucket(studentID)
	if !ok {
		return []dto.RegisteredCourseItem{}, nil
	}

	items := make([]dto.RegisteredCourseItem, 0, len(bucket.Current))
	for _, reg := range bucket.Current {
		if reg.Status != status {
			continue
		}
		course := doc.FindCourse(reg.CourseID)
		if course == nil {
			continue
		}
		items = append(items, dto.NewRegisteredCourseItem(*course, reg))
	}
	return items, nil
}

func (s *CatalogService) join(doc *models.Document, regs []models.Registration) []dto.RegisteredCourseItem {
	items := make([]dto.RegisteredCourseItem, 0, len(regs))
	for _, reg := range regs {
		course := doc.FindCourse(reg.CourseID)
		if course == nil {
			continue
		}
		items = append(items, dto.NewRegisteredCourseItem(*course, reg))
	}
	return items
}

// viewMatches maps a history view onto its status class: registrations cover
// registered and completed entries, withdrawals cover withdrawn ones.
func viewMatches(view dto.HistoryView, status models.RegistrationStatus) bool {
	if view == dto.HistoryViewWithdrawals {
		return status == models.RegistrationStatusWithdrawn
	}
	return status == models.RegistrationStatusRegistered || status == models.RegistrationStatusCompleted
}

// termOrdinal maps a "<session>/<year>" id onto a sortable number, year
// first. Ids that do not match the format sort last.
func termOrdinal(id string) int {
	session, year, ok := strings.Cut(id, "/")
	if !ok {
		return -1
	}
	s, err := strconv.Atoi(session)
	if err != nil {
		return -1
	}
	y, err := strconv.Atoi(year)
	if err != nil {
		return -1
	}
	return y*10 + s
}

func withdrawTime(item dto.HistoryItem) time.Time {
	if item.WithdrawDate != nil {
		return *item.WithdrawDate
	}
	return time.Time{}
}

// load tolerates a degraded store on read paths: a parse failure is logged
// and the query proceeds over the empty document.
func (s *CatalogService) load() (*models.Document, error) {
	doc, err := s.store.Load()
	if err != nil {
		s.logger.Warn("reading from a degraded store", zap.Error(err))
	}
	return doc, nil
}
