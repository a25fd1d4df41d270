package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	appErrors "github.com/leopardweb/registrar-api/pkg/errors"
)

func TestExportServiceRenderScheduleCSV(t *testing.T) {
	enrollments, _ := newEnrollmentFixture()
	require.NoError(t, enrollments.Register(context.Background(), "newtoni", 33173))
	svc := NewExportService(enrollments, zap.NewNop())

	result, err := svc.RenderSchedule(context.Background(), "newtoni", FormatCSV)
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Equal(t, "schedule-newtoni.csv", result.Filename)
	assert.True(t, bytes.Contains(result.Content, []byte("33173")))
	assert.True(t, bytes.Contains(result.Content, []byte("Physics I")))
}

func TestExportServiceRenderRosterPDF(t *testing.T) {
	enrollments, _ := newEnrollmentFixture()
	require.NoError(t, enrollments.Register(context.Background(), "newtoni", 33173))
	svc := NewExportService(enrollments, zap.NewNop())

	result, err := svc.RenderRoster(context.Background(), 33173, FormatPDF)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.Equal(t, "roster-33173.pdf", result.Filename)
	assert.True(t, bytes.HasPrefix(result.Content, []byte("%PDF")))
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	enrollments, _ := newEnrollmentFixture()
	svc := NewExportService(enrollments, zap.NewNop())

	_, err := svc.RenderSchedule(context.Background(), "newtoni", "xlsx")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}
