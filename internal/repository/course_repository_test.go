package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/leopardweb/registrar-api/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseColumns() []string {
	return []string{"crn", "title", "department", "time_slot", "days", "semester", "year", "credits", "instructor_id", "created_at"}
}

func TestCourseRepositoryListUnfiltered(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows(courseColumns()).
		AddRow(33173, "Physics I", "BSAS", "10:00-11:30", "MWF", "Fall", 2024, 4, nil, time.Now()).
		AddRow(40001, "Calculus II", "MATH", "13:00-14:30", "TR", "Fall", 2024, 4, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT crn, title, department, time_slot, days, semester, year, credits, instructor_id, created_at FROM courses ORDER BY crn")).
		WillReturnRows(rows)

	courses, err := repo.List(context.Background(), models.CourseFilter{})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, 33173, courses[0].CRN)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListFiltered(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := sqlmock.NewRows(courseColumns()).
		AddRow(40001, "Discrete Math", "MATH", "13:00-14:30", "TR", "Fall", 2024, 4, nil, time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT crn, title, department, time_slot, days, semester, year, credits, instructor_id, created_at FROM courses WHERE CAST(title AS TEXT) ILIKE $1 ORDER BY crn")).
		WithArgs("%Math%").
		WillReturnRows(rows)

	courses, err := repo.List(context.Background(), models.CourseFilter{Field: "title", Value: "Math"})
	require.NoError(t, err)
	require.Len(t, courses, 1)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryListRejectsUnknownField(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	_, err := repo.List(context.Background(), models.CourseFilter{Field: "drop table", Value: "x"})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryDeleteCascadesRegistrations(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM registrations WHERE crn = $1")).
		WithArgs(33173).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM courses WHERE crn = $1")).
		WithArgs(33173).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(context.Background(), 33173)
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFilterColumnAllowList(t *testing.T) {
	for field, want := range map[string]string{
		"crn":      "crn",
		"title":    "title",
		"time":     "time_slot",
		"semester": "semester",
	} {
		column, ok := FilterColumn(field)
		require.True(t, ok, field)
		require.Equal(t, want, column)
	}

	_, ok := FilterColumn("password_hash")
	require.False(t, ok)
	_, ok = FilterColumn("title; DROP TABLE courses")
	require.False(t, ok)
}
