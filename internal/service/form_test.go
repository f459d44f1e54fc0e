package service

import (
	"context"
	"strings"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusway/campus-events-api/internal/domain"
)

func newFormService(formRepo *fakeFormRepo, eventRepo *fakeEventRepo, userRepo *fakeUserRepo) *FormService {
	return NewFormService(formRepo, eventRepo, userRepo)
}

func TestDefineForm_AssignsOrderAndKeys(t *testing.T) {
	userRepo := newFakeUserRepo(domain.User{ID: 2, Role: domain.RoleEventAdmin})
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 1,
		CreatedByID:        2,
		RegistrationMethod: domain.RegistrationForm,
	})
	svc := newFormService(newFakeFormRepo(), eventRepo, userRepo)

	questions := []domain.Question{
		{QuestionKey: "full_name", QuestionText: "Full Name", QuestionType: domain.QuestionText, QuestionCategory: "Basic Participant Information", IsRequired: true},
		{QuestionText: "Favourite snack?", QuestionType: domain.QuestionText, IsCustom: true},
		{QuestionKey: "skill_level", QuestionText: "Skill Level", QuestionType: domain.QuestionDropdown, Options: []string{"Beginner", "Advanced"}},
	}

	defined, err := svc.DefineForm(context.Background(), 1, questions, 2)
	require.NoError(t, err)
	require.Len(t, defined, 3)

	for i, q := range defined {
		assert.Equal(t, i, q.DisplayOrder)
		assert.Equal(t, uint(1), q.EventID)
	}

	assert.Equal(t, "full_name", defined[0].QuestionKey)
	assert.True(t, strings.HasPrefix(defined[1].QuestionKey, "custom_"))
	assert.True(t, defined[1].IsCustom)
	assert.Equal(t, "Custom", defined[1].QuestionCategory)
	assert.Equal(t, []string{"Beginner", "Advanced"}, defined[2].Options)
}

func TestDefineForm_AccumulatesViolations(t *testing.T) {
	userRepo := newFakeUserRepo(domain.User{ID: 2, Role: domain.RoleEventAdmin})
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 1,
		CreatedByID:        2,
		RegistrationMethod: domain.RegistrationForm,
	})
	formRepo := newFakeFormRepo()
	svc := newFormService(formRepo, eventRepo, userRepo)

	questions := []domain.Question{
		{QuestionText: "", QuestionType: domain.QuestionText},
		{QuestionText: "Pick one", QuestionType: "slider"},
		{QuestionText: "Choices", QuestionType: domain.QuestionDropdown},
	}

	_, err := svc.DefineForm(context.Background(), 1, questions, 2)
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "questions.0")
	assert.Contains(t, errs, "questions.1")
	assert.Contains(t, errs, "questions.2")

	// Nothing was written.
	stored, _ := formRepo.ListByEvent(context.Background(), 1)
	assert.Empty(t, stored)
}

func TestDefineForm_Permissions(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
		domain.User{ID: 5, Role: domain.RoleEventAdmin},
		domain.User{ID: 3, Role: domain.RoleUltimateAdmin},
	)
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 1,
		CreatedByID:        2,
		RegistrationMethod: domain.RegistrationForm,
	})
	svc := newFormService(newFakeFormRepo(), eventRepo, userRepo)

	questions := []domain.Question{
		{QuestionText: "Full Name", QuestionType: domain.QuestionText},
	}

	_, err := svc.DefineForm(context.Background(), 1, questions, 5)
	assert.ErrorIs(t, err, ErrNotEventHost)

	// The ultimate admin can edit any event's form.
	_, err = svc.DefineForm(context.Background(), 1, questions, 3)
	assert.NoError(t, err)
}

func TestDefineForm_RejectsExternalEvents(t *testing.T) {
	userRepo := newFakeUserRepo(domain.User{ID: 2, Role: domain.RoleEventAdmin})
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 1,
		CreatedByID:        2,
		RegistrationMethod: domain.RegistrationExternal,
	})
	svc := newFormService(newFakeFormRepo(), eventRepo, userRepo)

	_, err := svc.DefineForm(context.Background(), 1, []domain.Question{
		{QuestionText: "Full Name", QuestionType: domain.QuestionText},
	}, 2)
	assert.ErrorIs(t, err, ErrFormNotSupported)
}

func TestGetForm_EmptyIsNotAnError(t *testing.T) {
	eventRepo := newFakeEventRepo(domain.Event{ID: 1, RegistrationMethod: domain.RegistrationExternal})
	svc := newFormService(newFakeFormRepo(), eventRepo, newFakeUserRepo())

	questions, err := svc.GetForm(context.Background(), 1)
	require.NoError(t, err)
	assert.NotNil(t, questions)
	assert.Empty(t, questions)

	_, err = svc.GetForm(context.Background(), 99)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestPresets_CoverAllCategories(t *testing.T) {
	svc := newFormService(newFakeFormRepo(), newFakeEventRepo(), newFakeUserRepo())

	presets := svc.Presets()
	require.NotEmpty(t, presets)

	categories := map[string]bool{}
	for _, p := range presets {
		categories[p.QuestionCategory] = true
	}
	assert.Contains(t, categories, "Basic Participant Information")
	assert.Contains(t, categories, "Experience & Skill-Level")
	assert.Contains(t, categories, "Event Logistics")
	assert.Contains(t, categories, "Workshop/Hands-On")
}
