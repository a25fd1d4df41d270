package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/leopardweb/registrar-api/internal/models"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

type mockAccountRepo struct {
	accounts    map[string]models.Account
	students    map[string]models.StudentProfile
	instructors map[string]models.InstructorProfile
	admins      map[string]models.AdminProfile
	deleted     []string
	createErr   error
}

func newMockAccountRepo() *mockAccountRepo {
	return &mockAccountRepo{
		accounts:    make(map[string]models.Account),
		students:    make(map[string]models.StudentProfile),
		instructors: make(map[string]models.InstructorProfile),
		admins:      make(map[string]models.AdminProfile),
	}
}

func (m *mockAccountRepo) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	if account, ok := m.accounts[username]; ok {
		return &account, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) List(ctx context.Context, role *models.AccountRole) ([]models.Account, error) {
	var out []models.Account
	for _, account := range m.accounts {
		if role == nil || account.Role == *role {
			out = append(out, account)
		}
	}
	return out, nil
}

func (m *mockAccountRepo) FindStudentProfile(ctx context.Context, accountID string) (*models.StudentProfile, error) {
	if p, ok := m.students[accountID]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) FindInstructorProfile(ctx context.Context, accountID string) (*models.InstructorProfile, error) {
	if p, ok := m.instructors[accountID]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) FindAdminProfile(ctx context.Context, accountID string) (*models.AdminProfile, error) {
	if p, ok := m.admins[accountID]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockAccountRepo) CreateStudent(ctx context.Context, account *models.Account, profile *models.StudentProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if account.ID == "" {
		account.ID = "generated"
	}
	m.accounts[account.Username] = *account
	profile.AccountID = account.ID
	m.students[account.ID] = *profile
	return nil
}

func (m *mockAccountRepo) CreateInstructor(ctx context.Context, account *models.Account, profile *models.InstructorProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if account.ID == "" {
		account.ID = "generated"
	}
	m.accounts[account.Username] = *account
	profile.AccountID = account.ID
	m.instructors[account.ID] = *profile
	return nil
}

func (m *mockAccountRepo) CreateAdmin(ctx context.Context, account *models.Account, profile *models.AdminProfile) error {
	if m.createErr != nil {
		return m.createErr
	}
	if account.ID == "" {
		account.ID = "generated"
	}
	m.accounts[account.Username] = *account
	profile.AccountID = account.ID
	m.admins[account.ID] = *profile
	return nil
}

func (m *mockAccountRepo) DeleteByUsername(ctx context.Context, username string) error {
	m.deleted = append(m.deleted, username)
	if account, ok := m.accounts[username]; ok {
		delete(m.students, account.ID)
		delete(m.instructors, account.ID)
		delete(m.admins, account.ID)
		delete(m.accounts, username)
	}
	return nil
}

func studentRequest() CreateAccountRequest {
	return CreateAccountRequest{
		Username: "newtoni",
		Password: "s3cret",
		Role:     models.RoleStudent,
		Profile: ProfileFields{
			Name:     "Isaac",
			Surname:  "Newton",
			GradYear: 1668,
			Major:    "Mathematics",
			Email:    "newtoni@leopardweb.edu",
		},
	}
}

func TestAccountServiceCreateStudent(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	detail, err := svc.Create(context.Background(), studentRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, detail.ID)
	assert.Equal(t, models.RoleStudent, detail.Role)
	require.NotNil(t, detail.Student)
	assert.Equal(t, "Newton", detail.Student.Surname)

	// stored hash must verify against the original password
	stored := repo.accounts["newtoni"]
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("s3cret")))
}

func TestAccountServiceCreateDuplicateUsername(t *testing.T) {
	repo := newMockAccountRepo()
	repo.createErr = fmt.Errorf("create account: %w", &pq.Error{Code: "23505"})
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), studentRequest())
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErr.Code)
	assert.Empty(t, repo.accounts)
}

func TestAccountServiceCreateUnsupportedRole(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	req := studentRequest()
	req.Role = "JANITOR"
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAccountServiceCreateInstructorRequiresProfileFields(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), CreateAccountRequest{
		Username: "galileig",
		Password: "s3cret",
		Role:     models.RoleInstructor,
		Profile:  ProfileFields{Name: "Galileo", Surname: "Galilei"},
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAccountServiceCreateInstructor(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	detail, err := svc.Create(context.Background(), CreateAccountRequest{
		Username: "galileig",
		Password: "s3cret",
		Role:     models.RoleInstructor,
		Profile: ProfileFields{
			Name:       "Galileo",
			Surname:    "Galilei",
			Title:      "Professor",
			HireYear:   1600,
			Department: "BSAS",
			Email:      "galileig@leopardweb.edu",
		},
	})
	require.NoError(t, err)
	require.NotNil(t, detail.Instructor)
	assert.Equal(t, 1600, detail.Instructor.HireYear)
	assert.Equal(t, "BSAS", detail.Instructor.Department)
}

func TestAccountServiceDeleteMissingIsNoop(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	err := svc.Delete(context.Background(), "ghost")
	require.NoError(t, err)
	assert.Contains(t, repo.deleted, "ghost")
}

func TestAccountServiceGetNotFound(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	_, err := svc.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestAccountServiceGetAttachesProfile(t *testing.T) {
	repo := newMockAccountRepo()
	svc := NewAccountService(repo, validator.New(), zap.NewNop())

	_, err := svc.Create(context.Background(), studentRequest())
	require.NoError(t, err)

	detail, err := svc.Get(context.Background(), "newtoni")
	require.NoError(t, err)
	require.NotNil(t, detail.Student)
	assert.Equal(t, "Mathematics", detail.Student.Major)
}
