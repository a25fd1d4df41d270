package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/leopardweb/registrar-api/internal/models"
	"github.com/leopardweb/registrar-api/internal/repository"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

type courseRepository interface {
	FindByCRN(ctx context.Context, crn int) (*models.Course, error)
	List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error)
	ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error)
	Create(ctx context.Context, course *models.Course) error
	Delete(ctx context.Context, crn int) error
}

type instructorResolver interface {
	FindInstructorIDByEmail(ctx context.Context, email string) (string, error)
}

type courseCatalogCache interface {
	Get(ctx context.Context) ([]models.Course, bool)
	Set(ctx context.Context, courses []models.Course)
	Invalidate(ctx context.Context)
}

// CreateCourseRequest holds payload for adding catalog courses.
type CreateCourseRequest struct {
	CRN             int    `json:"crn" validate:"required,gt=0"`
	Title           string `json:"title" validate:"required"`
	Department      string `json:"department" validate:"required"`
	TimeSlot        string `json:"time_slot" validate:"required"`
	Days            string `json:"days"`
	Semester        string `json:"semester" validate:"required"`
	Year            int    `json:"year" validate:"required"`
	Credits         int    `json:"credits" validate:"required,gt=0"`
	InstructorEmail string `json:"instructor_email"`
}

// CourseService handles catalog use-cases.
type CourseService struct {
	repo        courseRepository
	instructors instructorResolver
	cache       courseCatalogCache
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewCourseService constructs the course service. cache may be nil when the
// catalog cache is disabled.
func NewCourseService(repo courseRepository, instructors instructorResolver, cache courseCatalogCache, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CourseService{repo: repo, instructors: instructors, cache: cache, validator: validate, logger: logger}
}

// Add inserts a new course. An instructor email that does not resolve leaves
// the course unassigned rather than failing the insert.
func (s *CourseService) Add(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{
		CRN:        req.CRN,
		Title:      req.Title,
		Department: req.Department,
		TimeSlot:   req.TimeSlot,
		Days:       req.Days,
		Semester:   req.Semester,
		Year:       req.Year,
		Credits:    req.Credits,
	}

	if req.InstructorEmail != "" {
		id, err := s.instructors.FindInstructorIDByEmail(ctx, req.InstructorEmail)
		switch {
		case err == nil:
			course.InstructorID = &id
		case errors.Is(err, sql.ErrNoRows):
			s.logger.Warn("instructor email did not resolve, inserting unassigned course",
				zap.Int("crn", req.CRN), zap.String("email", req.InstructorEmail))
		default:
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve instructor")
		}
	}

	if err := s.repo.Create(ctx, course); err != nil {
		if appErrors.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "crn already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return course, nil
}

// Remove deletes a course and its registrations; a missing CRN is a no-op.
func (s *CourseService) Remove(ctx context.Context, crn int) error {
	if err := s.repo.Delete(ctx, crn); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to remove course")
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx)
	}
	return nil
}

// Get returns a single course by CRN.
func (s *CourseService) Get(ctx context.Context, crn int) (*models.Course, error) {
	course, err := s.repo.FindByCRN(ctx, crn)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// List returns catalog courses, optionally filtered by a field/value contains
// match. Unknown filter fields are rejected before any query is built.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.Course, error) {
	if filter.Field != "" {
		if _, ok := repository.FilterColumn(filter.Field); !ok {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown filter field")
		}
	}

	unfiltered := filter.Field == "" && filter.Value == ""
	if unfiltered && s.cache != nil {
		if courses, hit := s.cache.Get(ctx); hit {
			return courses, nil
		}
	}

	courses, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}

	if unfiltered && s.cache != nil {
		s.cache.Set(ctx, courses)
	}
	return courses, nil
}

// ListByInstructor returns the courses taught by an instructor account.
func (s *CourseService) ListByInstructor(ctx context.Context, instructorID string) ([]models.Course, error) {
	courses, err := s.repo.ListByInstructor(ctx, instructorID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list instructor courses")
	}
	return courses, nil
}
