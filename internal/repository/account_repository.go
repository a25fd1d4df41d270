package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/leopardweb/registrar-api/internal/models"
)

// AccountRepository provides database access for accounts and their
// role-specific profiles.
type AccountRepository struct {
	db *sqlx.DB
}

// NewAccountRepository creates a new instance of AccountRepository.
func NewAccountRepository(db *sqlx.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// FindByUsername returns an account by username.
func (r *AccountRepository) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	const query = `SELECT id, username, password_hash, role, created_at, updated_at FROM accounts WHERE username = $1 LIMIT 1`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, username); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by username: %w", err)
	}
	return &account, nil
}

// FindByID returns an account by identifier.
func (r *AccountRepository) FindByID(ctx context.Context, id string) (*models.Account, error) {
	const query = `SELECT id, username, password_hash, role, created_at, updated_at FROM accounts WHERE id = $1 LIMIT 1`
	var account models.Account
	if err := r.db.GetContext(ctx, &account, query, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find account by id: %w", err)
	}
	return &account, nil
}

// List returns accounts, optionally restricted to a role, ordered by username.
func (r *AccountRepository) List(ctx context.Context, role *models.AccountRole) ([]models.Account, error) {
	query := `SELECT id, username, password_hash, role, created_at, updated_at FROM accounts`
	var args []interface{}
	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY username`

	var accounts []models.Account
	if err := r.db.SelectContext(ctx, &accounts, query, args...); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// FindInstructorIDByEmail resolves an instructor email to its account id.
func (r *AccountRepository) FindInstructorIDByEmail(ctx context.Context, email string) (string, error) {
	const query = `SELECT account_id FROM instructor_profiles WHERE email = $1 LIMIT 1`
	var id string
	if err := r.db.GetContext(ctx, &id, query, email); err != nil {
		if err == sql.ErrNoRows {
			return "", err
		}
		return "", fmt.Errorf("find instructor by email: %w", err)
	}
	return id, nil
}

// FindStudentProfile returns the student profile for an account id.
func (r *AccountRepository) FindStudentProfile(ctx context.Context, accountID string) (*models.StudentProfile, error) {
	const query = `SELECT account_id, name, surname, username, grad_year, major, email FROM student_profiles WHERE account_id = $1 LIMIT 1`
	var profile models.StudentProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find student profile: %w", err)
	}
	return &profile, nil
}

// FindInstructorProfile returns the instructor profile for an account id.
func (r *AccountRepository) FindInstructorProfile(ctx context.Context, accountID string) (*models.InstructorProfile, error) {
	const query = `SELECT account_id, name, surname, title, hire_year, department, email FROM instructor_profiles WHERE account_id = $1 LIMIT 1`
	var profile models.InstructorProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find instructor profile: %w", err)
	}
	return &profile, nil
}

// FindAdminProfile returns the admin profile for an account id.
func (r *AccountRepository) FindAdminProfile(ctx context.Context, accountID string) (*models.AdminProfile, error) {
	const query = `SELECT account_id, name, surname, title, office, email FROM admin_profiles WHERE account_id = $1 LIMIT 1`
	var profile models.AdminProfile
	if err := r.db.GetContext(ctx, &profile, query, accountID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find admin profile: %w", err)
	}
	return &profile, nil
}

// CreateStudent inserts the account row and its student profile in one
// transaction; the account insert is rolled back when the profile insert fails.
func (r *AccountRepository) CreateStudent(ctx context.Context, account *models.Account, profile *models.StudentProfile) error {
	return r.createWithProfile(ctx, account, func(tx *sqlx.Tx) error {
		profile.AccountID = account.ID
		profile.Username = account.Username
		const query = `INSERT INTO student_profiles (account_id, name, surname, username, grad_year, major, email)
        VALUES (:account_id, :name, :surname, :username, :grad_year, :major, :email)`
		if _, err := tx.NamedExecContext(ctx, query, profile); err != nil {
			return fmt.Errorf("create student profile: %w", err)
		}
		return nil
	})
}

// CreateInstructor inserts the account row and its instructor profile in one
// transaction.
func (r *AccountRepository) CreateInstructor(ctx context.Context, account *models.Account, profile *models.InstructorProfile) error {
	return r.createWithProfile(ctx, account, func(tx *sqlx.Tx) error {
		profile.AccountID = account.ID
		const query = `INSERT INTO instructor_profiles (account_id, name, surname, title, hire_year, department, email)
        VALUES (:account_id, :name, :surname, :title, :hire_year, :department, :email)`
		if _, err := tx.NamedExecContext(ctx, query, profile); err != nil {
			return fmt.Errorf("create instructor profile: %w", err)
		}
		return nil
	})
}

// CreateAdmin inserts the account row and its admin profile in one transaction.
func (r *AccountRepository) CreateAdmin(ctx context.Context, account *models.Account, profile *models.AdminProfile) error {
	return r.createWithProfile(ctx, account, func(tx *sqlx.Tx) error {
		profile.AccountID = account.ID
		const query = `INSERT INTO admin_profiles (account_id, name, surname, title, office, email)
        VALUES (:account_id, :name, :surname, :title, :office, :email)`
		if _, err := tx.NamedExecContext(ctx, query, profile); err != nil {
			return fmt.Errorf("create admin profile: %w", err)
		}
		return nil
	})
}

func (r *AccountRepository) createWithProfile(ctx context.Context, account *models.Account, insertProfile func(tx *sqlx.Tx) error) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if account.CreatedAt.IsZero() {
		account.CreatedAt = now
	}
	account.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create account: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	const query = `INSERT INTO accounts (id, username, password_hash, role, created_at, updated_at)
        VALUES (:id, :username, :password_hash, :role, :created_at, :updated_at)`
	if _, err := tx.NamedExecContext(ctx, query, account); err != nil {
		return fmt.Errorf("create account: %w", err)
	}

	if err := insertProfile(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit create account: %w", err)
	}
	return nil
}

// DeleteByUsername removes an account, its profile row and every registration
// referencing it, all in one transaction. A missing username is a no-op.
func (r *AccountRepository) DeleteByUsername(ctx context.Context, username string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete account: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var account models.Account
	if err := tx.GetContext(ctx, &account, `SELECT id, username, password_hash, role, created_at, updated_at FROM accounts WHERE username = $1 LIMIT 1`, username); err != nil {
		if err == sql.ErrNoRows {
			return nil
		}
		return fmt.Errorf("resolve account for delete: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM registrations WHERE student_id = $1`, account.ID); err != nil {
		return fmt.Errorf("delete account registrations: %w", err)
	}

	switch account.Role {
	case models.RoleStudent:
		if _, err := tx.ExecContext(ctx, `DELETE FROM student_profiles WHERE account_id = $1`, account.ID); err != nil {
			return fmt.Errorf("delete student profile: %w", err)
		}
	case models.RoleInstructor:
		if _, err := tx.ExecContext(ctx, `UPDATE courses SET instructor_id = NULL WHERE instructor_id = $1`, account.ID); err != nil {
			return fmt.Errorf("detach instructor courses: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM instructor_profiles WHERE account_id = $1`, account.ID); err != nil {
			return fmt.Errorf("delete instructor profile: %w", err)
		}
	case models.RoleAdmin:
		if _, err := tx.ExecContext(ctx, `DELETE FROM admin_profiles WHERE account_id = $1`, account.ID); err != nil {
			return fmt.Errorf("delete admin profile: %w", err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, account.ID); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete account: %w", err)
	}
	return nil
}
