package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusway/campus-events-api/internal/domain"
)

func TestExportRegistrations(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
	)
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 1,
		Status:             domain.EventPublished,
		CreatedByID:        2,
		RegistrationMethod: domain.RegistrationForm,
	})
	formRepo := newFakeFormRepo()
	regRepo := newFakeRegistrationRepo()
	svc := NewRegistrationService(regRepo, formRepo, eventRepo, userRepo)

	questions, err := formRepo.ReplaceForEvent(context.Background(), 1, []domain.Question{
		{QuestionKey: "full_name", QuestionText: "Full Name", QuestionType: domain.QuestionText, DisplayOrder: 0},
		{QuestionKey: "dietary_needs", QuestionText: "Dietary Needs", QuestionType: domain.QuestionMultiSelect, Options: []string{"Vegetarian", "Vegan"}, DisplayOrder: 1},
		{QuestionKey: "motivation", QuestionText: "Why, exactly?", QuestionType: domain.QuestionTextarea, DisplayOrder: 2},
	})
	require.NoError(t, err)

	registeredAt := time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC)
	regRepo.details = []domain.RegistrationDetail{
		{
			Registration: domain.Registration{
				ID:               1,
				EventID:          1,
				UserID:           10,
				RegistrationType: domain.RegistrationForm,
				Status:           domain.RegistrationApproved,
				CreatedAt:        registeredAt,
			},
			UserName:  "Asha Rao",
			UserEmail: "asha@college.edu",
			Responses: []domain.ResponseDetail{
				{QuestionID: questions[0].ID, QuestionText: "Full Name", Answer: "Asha Rao"},
				{QuestionID: questions[2].ID, QuestionText: "Why, exactly?", Answer: `I love "hands-on" workshops, truly`},
			},
		},
		{
			// EXTERNAL registrations carry no form data and are skipped.
			Registration: domain.Registration{
				ID:               2,
				EventID:          1,
				UserID:           11,
				RegistrationType: domain.RegistrationExternal,
				Status:           domain.RegistrationPending,
				CreatedAt:        registeredAt,
			},
			UserName:  "Walk In",
			UserEmail: "walkin@college.edu",
		},
	}

	data, err := svc.ExportRegistrations(context.Background(), 1, 2)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Name", "Email", "Status", "Registered At", "Full Name", "Dietary Needs", "Why, exactly?"}, records[0])

	row := records[1]
	assert.Equal(t, "Asha Rao", row[0])
	assert.Equal(t, "asha@college.edu", row[1])
	assert.Equal(t, "APPROVED", row[2])
	assert.Equal(t, "2026-03-14 10:30:00", row[3])
	assert.Equal(t, "Asha Rao", row[4])
	// The unanswered optional question exports as an empty cell.
	assert.Equal(t, "", row[5])
	// Quotes and commas survive the round trip.
	assert.Equal(t, `I love "hands-on" workshops, truly`, row[6])
}

func TestExportRegistrations_HostOnly(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 1, Role: domain.RoleStandardUser},
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
		domain.User{ID: 3, Role: domain.RoleUltimateAdmin},
	)
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 1,
		Status:             domain.EventPublished,
		CreatedByID:        2,
		RegistrationMethod: domain.RegistrationForm,
	})
	svc := NewRegistrationService(newFakeRegistrationRepo(), newFakeFormRepo(), eventRepo, userRepo)

	_, err := svc.ExportRegistrations(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrNotEventHost)

	_, err = svc.ExportRegistrations(context.Background(), 1, 3)
	assert.NoError(t, err)
}
