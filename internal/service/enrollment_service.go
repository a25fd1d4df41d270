package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/leopardweb/registrar-api/internal/models"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

type registrationRepository interface {
	Register(ctx context.Context, studentID string, crn int) error
	Drop(ctx context.Context, studentID string, crn int) error
	Schedule(ctx context.Context, studentID string) ([]models.ScheduleEntry, error)
	Roster(ctx context.Context, crn int) ([]models.RosterEntry, error)
}

type studentResolver interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
}

// EnrollmentService handles registration and roster use-cases.
type EnrollmentService struct {
	repo     registrationRepository
	accounts studentResolver
	logger   *zap.Logger
}

// NewEnrollmentService constructs the enrollment service.
func NewEnrollmentService(repo registrationRepository, accounts studentResolver, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{repo: repo, accounts: accounts, logger: logger}
}

// Register enrolls a student in a course by CRN.
func (s *EnrollmentService) Register(ctx context.Context, studentUsername string, crn int) error {
	student, err := s.resolveStudent(ctx, studentUsername)
	if err != nil {
		return err
	}

	if err := s.repo.Register(ctx, student.ID, crn); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		if appErrors.IsUniqueViolation(err) {
			return appErrors.Clone(appErrors.ErrDuplicateKey, "student already registered for course")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to register student")
	}

	s.logger.Info("registered", zap.String("student", studentUsername), zap.Int("crn", crn))
	return nil
}

// Drop removes the registration for (student, crn). Dropping a course the
// student is not registered for is a no-op, as is an unknown username.
func (s *EnrollmentService) Drop(ctx context.Context, studentUsername string, crn int) error {
	student, err := s.accounts.FindByUsername(ctx, studentUsername)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}

	if err := s.repo.Drop(ctx, student.ID, crn); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to drop registration")
	}
	return nil
}

// Schedule returns the student's enrolled courses with instructor context.
func (s *EnrollmentService) Schedule(ctx context.Context, studentUsername string) ([]models.ScheduleEntry, error) {
	student, err := s.resolveStudent(ctx, studentUsername)
	if err != nil {
		return nil, err
	}

	entries, err := s.repo.Schedule(ctx, student.ID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load schedule")
	}
	return entries, nil
}

// Roster returns the students registered for a course. A CRN with no
// registrations yields an empty roster.
func (s *EnrollmentService) Roster(ctx context.Context, crn int) ([]models.RosterEntry, error) {
	entries, err := s.repo.Roster(ctx, crn)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	return entries, nil
}

func (s *EnrollmentService) resolveStudent(ctx context.Context, username string) (*models.Account, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve student")
	}
	if account.Role != models.RoleStudent {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}
	return account, nil
}
