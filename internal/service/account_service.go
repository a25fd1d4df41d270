package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leopardweb/registrar-api/internal/models"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

type accountRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.Account, error)
	List(ctx context.Context, role *models.AccountRole) ([]models.Account, error)
	FindStudentProfile(ctx context.Context, accountID string) (*models.StudentProfile, error)
	FindInstructorProfile(ctx context.Context, accountID string) (*models.InstructorProfile, error)
	FindAdminProfile(ctx context.Context, accountID string) (*models.AdminProfile, error)
	CreateStudent(ctx context.Context, account *models.Account, profile *models.StudentProfile) error
	CreateInstructor(ctx context.Context, account *models.Account, profile *models.InstructorProfile) error
	CreateAdmin(ctx context.Context, account *models.Account, profile *models.AdminProfile) error
	DeleteByUsername(ctx context.Context, username string) error
}

// ProfileFields carries the union of role-specific profile attributes handed
// to account creation. Presence is validated per role.
type ProfileFields struct {
	Name       string `json:"name" validate:"required"`
	Surname    string `json:"surname" validate:"required"`
	Email      string `json:"email"`
	GradYear   int    `json:"grad_year"`
	Major      string `json:"major"`
	Title      string `json:"title"`
	HireYear   int    `json:"hire_year"`
	Department string `json:"department"`
	Office     string `json:"office"`
}

// CreateAccountRequest holds payload for provisioning accounts.
type CreateAccountRequest struct {
	Username string             `json:"username" validate:"required"`
	Password string             `json:"password" validate:"required,min=6"`
	Role     models.AccountRole `json:"role" validate:"required"`
	Profile  ProfileFields      `json:"profile"`
}

// AccountService handles account lifecycle use-cases.
type AccountService struct {
	repo      accountRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAccountService constructs the account service.
func NewAccountService(repo accountRepository, validate *validator.Validate, logger *zap.Logger) *AccountService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{repo: repo, validator: validate, logger: logger}
}

// Create provisions an account and its role profile as one atomic unit.
func (s *AccountService) Create(ctx context.Context, req CreateAccountRequest) (*models.AccountDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid account payload")
	}
	if !req.Role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported role")
	}
	if err := validateProfile(req.Role, req.Profile); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to hash password")
	}

	account := &models.Account{
		Username:     req.Username,
		PasswordHash: string(hash),
		Role:         req.Role,
	}

	detail := &models.AccountDetail{}
	switch req.Role {
	case models.RoleStudent:
		profile := &models.StudentProfile{
			Name:     req.Profile.Name,
			Surname:  req.Profile.Surname,
			GradYear: req.Profile.GradYear,
			Major:    req.Profile.Major,
			Email:    req.Profile.Email,
		}
		err = s.repo.CreateStudent(ctx, account, profile)
		detail.Student = profile
	case models.RoleInstructor:
		profile := &models.InstructorProfile{
			Name:       req.Profile.Name,
			Surname:    req.Profile.Surname,
			Title:      req.Profile.Title,
			HireYear:   req.Profile.HireYear,
			Department: req.Profile.Department,
			Email:      req.Profile.Email,
		}
		err = s.repo.CreateInstructor(ctx, account, profile)
		detail.Instructor = profile
	case models.RoleAdmin:
		profile := &models.AdminProfile{
			Name:    req.Profile.Name,
			Surname: req.Profile.Surname,
			Title:   req.Profile.Title,
			Office:  req.Profile.Office,
			Email:   req.Profile.Email,
		}
		err = s.repo.CreateAdmin(ctx, account, profile)
		detail.Admin = profile
	}
	if err != nil {
		if appErrors.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrDuplicateKey, "username or email already exists")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create account")
	}

	detail.Account = *account
	s.logger.Info("account created", zap.String("username", account.Username), zap.String("role", string(account.Role)))
	return detail, nil
}

// Delete removes an account with its profile and registrations. A missing
// username is a silent no-op.
func (s *AccountService) Delete(ctx context.Context, username string) error {
	if err := s.repo.DeleteByUsername(ctx, username); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete account")
	}
	return nil
}

// Get returns an account with its role profile attached.
func (s *AccountService) Get(ctx context.Context, username string) (*models.AccountDetail, error) {
	account, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "account not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load account")
	}

	detail := &models.AccountDetail{Account: *account}
	switch account.Role {
	case models.RoleStudent:
		detail.Student, err = s.repo.FindStudentProfile(ctx, account.ID)
	case models.RoleInstructor:
		detail.Instructor, err = s.repo.FindInstructorProfile(ctx, account.ID)
	case models.RoleAdmin:
		detail.Admin, err = s.repo.FindAdminProfile(ctx, account.ID)
	}
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load profile")
	}
	return detail, nil
}

// List returns accounts, optionally restricted to one role.
func (s *AccountService) List(ctx context.Context, role *models.AccountRole) ([]models.Account, error) {
	if role != nil && !role.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported role")
	}
	accounts, err := s.repo.List(ctx, role)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list accounts")
	}
	return accounts, nil
}

func validateProfile(role models.AccountRole, profile ProfileFields) error {
	switch role {
	case models.RoleStudent:
		if profile.GradYear == 0 || profile.Major == "" || profile.Email == "" {
			return appErrors.Clone(appErrors.ErrValidation, "student profile requires grad_year, major and email")
		}
	case models.RoleInstructor:
		if profile.Title == "" || profile.HireYear == 0 || profile.Department == "" || profile.Email == "" {
			return appErrors.Clone(appErrors.ErrValidation, "instructor profile requires title, hire_year, department and email")
		}
	case models.RoleAdmin:
		if profile.Title == "" || profile.Office == "" || profile.Email == "" {
			return appErrors.Clone(appErrors.ErrValidation, "admin profile requires title, office and email")
		}
	}
	return nil
}
