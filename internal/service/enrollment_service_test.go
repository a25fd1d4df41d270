package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/leopardweb/registrar-api/internal/models"
	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

type pairKey struct {
	studentID string
	crn       int
}

type mockRegistrationRepo struct {
	courses       map[int]models.Course
	registrations map[pairKey]time.Time
	rosterNames   map[string]models.RosterEntry
}

func newMockRegistrationRepo() *mockRegistrationRepo {
	return &mockRegistrationRepo{
		courses:       make(map[int]models.Course),
		registrations: make(map[pairKey]time.Time),
		rosterNames:   make(map[string]models.RosterEntry),
	}
}

func (m *mockRegistrationRepo) Register(ctx context.Context, studentID string, crn int) error {
	if _, ok := m.courses[crn]; !ok {
		return sql.ErrNoRows
	}
	key := pairKey{studentID, crn}
	if _, ok := m.registrations[key]; ok {
		return fmt.Errorf("create registration: %w", &pq.Error{Code: "23505"})
	}
	m.registrations[key] = time.Now().UTC()
	return nil
}

func (m *mockRegistrationRepo) Drop(ctx context.Context, studentID string, crn int) error {
	delete(m.registrations, pairKey{studentID, crn})
	return nil
}

func (m *mockRegistrationRepo) Schedule(ctx context.Context, studentID string) ([]models.ScheduleEntry, error) {
	var entries []models.ScheduleEntry
	for key := range m.registrations {
		if key.studentID != studentID {
			continue
		}
		course := m.courses[key.crn]
		entries = append(entries, models.ScheduleEntry{
			CRN:      course.CRN,
			Title:    course.Title,
			TimeSlot: course.TimeSlot,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].CRN < entries[j].CRN })
	return entries, nil
}

func (m *mockRegistrationRepo) Roster(ctx context.Context, crn int) ([]models.RosterEntry, error) {
	var entries []models.RosterEntry
	for key := range m.registrations {
		if key.crn != crn {
			continue
		}
		if entry, ok := m.rosterNames[key.studentID]; ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type mockStudentResolver struct {
	accounts map[string]models.Account
}

func (m *mockStudentResolver) FindByUsername(ctx context.Context, username string) (*models.Account, error) {
	if account, ok := m.accounts[username]; ok {
		return &account, nil
	}
	return nil, sql.ErrNoRows
}

func newEnrollmentFixture() (*EnrollmentService, *mockRegistrationRepo) {
	repo := newMockRegistrationRepo()
	repo.courses[33173] = models.Course{CRN: 33173, Title: "Physics I", TimeSlot: "10:00-11:30"}
	repo.rosterNames["stu-1"] = models.RosterEntry{Name: "Isaac", Surname: "Newton"}
	resolver := &mockStudentResolver{accounts: map[string]models.Account{
		"newtoni":  {ID: "stu-1", Username: "newtoni", Role: models.RoleStudent},
		"galileig": {ID: "inst-1", Username: "galileig", Role: models.RoleInstructor},
	}}
	return NewEnrollmentService(repo, resolver, zap.NewNop()), repo
}

func TestEnrollmentServiceRegister(t *testing.T) {
	svc, repo := newEnrollmentFixture()

	err := svc.Register(context.Background(), "newtoni", 33173)
	require.NoError(t, err)
	assert.Len(t, repo.registrations, 1)
}

func TestEnrollmentServiceRegisterTwiceIsDuplicate(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	require.NoError(t, svc.Register(context.Background(), "newtoni", 33173))
	err := svc.Register(context.Background(), "newtoni", 33173)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDuplicateKey.Code, appErrors.FromError(err).Code)

	// the schedule lists the course exactly once
	entries, err := svc.Schedule(context.Background(), "newtoni")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, 33173, entries[0].CRN)
}

func TestEnrollmentServiceRegisterMissingCourse(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	err := svc.Register(context.Background(), "newtoni", 99999)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceRegisterNonStudent(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	err := svc.Register(context.Background(), "galileig", 33173)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestEnrollmentServiceRegisterDropRoundTrip(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	require.NoError(t, svc.Register(context.Background(), "newtoni", 33173))
	require.NoError(t, svc.Drop(context.Background(), "newtoni", 33173))

	entries, err := svc.Schedule(context.Background(), "newtoni")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestEnrollmentServiceDropAbsentIsNoop(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	require.NoError(t, svc.Drop(context.Background(), "newtoni", 33173))
	require.NoError(t, svc.Drop(context.Background(), "ghost", 33173))
}

func TestEnrollmentServiceRoster(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	require.NoError(t, svc.Register(context.Background(), "newtoni", 33173))

	roster, err := svc.Roster(context.Background(), 33173)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, "Isaac", roster[0].Name)
	assert.Equal(t, "Newton", roster[0].Surname)
}

func TestEnrollmentServiceScheduleUnknownStudent(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.Schedule(context.Background(), "ghost")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
