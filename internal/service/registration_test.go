package service

import (
	"context"
	"testing"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusway/campus-events-api/internal/domain"
)

func registrationFixture(t *testing.T, method domain.RegistrationMethod) (*RegistrationService, *fakeRegistrationRepo, *fakeFormRepo) {
	t.Helper()

	userRepo := newFakeUserRepo(
		domain.User{ID: 1, Role: domain.RoleStandardUser, FullName: "Asha Rao", Email: "asha@college.edu"},
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
		domain.User{ID: 3, Role: domain.RoleUltimateAdmin},
	)
	eventRepo := newFakeEventRepo(
		domain.Event{ID: 1, Status: domain.EventPublished, CreatedByID: 2, RegistrationMethod: method},
		domain.Event{ID: 2, Status: domain.EventDraft, CreatedByID: 2, RegistrationMethod: method},
	)
	formRepo := newFakeFormRepo()
	regRepo := newFakeRegistrationRepo()

	svc := NewRegistrationService(regRepo, formRepo, eventRepo, userRepo)
	return svc, regRepo, formRepo
}

func TestRegister_Idempotent(t *testing.T) {
	svc, regRepo, _ := registrationFixture(t, domain.RegistrationExternal)

	first, already, err := svc.Register(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.False(t, already)
	assert.Equal(t, domain.RegistrationPending, first.Status)

	second, already, err := svc.Register(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, already)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, regRepo.registrations, 1)
}

func TestRegister_RejectsUnpublishedAndWrongMethod(t *testing.T) {
	svc, _, _ := registrationFixture(t, domain.RegistrationExternal)

	_, _, err := svc.Register(context.Background(), 2, 1)
	assert.ErrorIs(t, err, ErrEventNotPublished)

	formSvc, _, _ := registrationFixture(t, domain.RegistrationForm)
	_, _, err = formSvc.Register(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrWrongRegistrationMethod)
}

func TestRegisterWithForm_AccumulatesViolations(t *testing.T) {
	svc, regRepo, formRepo := registrationFixture(t, domain.RegistrationForm)

	questions, err := formRepo.ReplaceForEvent(context.Background(), 1, []domain.Question{
		{QuestionKey: "full_name", QuestionText: "Full Name", QuestionType: domain.QuestionText, IsRequired: true},
		{QuestionKey: "email", QuestionText: "Email Address", QuestionType: domain.QuestionEmail, IsRequired: true},
	})
	require.NoError(t, err)

	answers := []domain.Answer{
		{QuestionID: questions[1].ID, Value: "not-an-email"},
		{QuestionID: 999, Value: "stray"},
	}

	_, err = svc.RegisterWithForm(context.Background(), 1, 1, answers)
	require.Error(t, err)

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.Contains(t, errs, "full_name")
	assert.Contains(t, errs, "email")
	assert.Contains(t, errs, "question_999")

	// Nothing persisted on validation failure.
	assert.Empty(t, regRepo.registrations)
}

func TestRegisterWithForm_Success(t *testing.T) {
	svc, regRepo, formRepo := registrationFixture(t, domain.RegistrationForm)

	questions, err := formRepo.ReplaceForEvent(context.Background(), 1, []domain.Question{
		{QuestionKey: "full_name", QuestionText: "Full Name", QuestionType: domain.QuestionText, IsRequired: true},
		{QuestionKey: "dietary_needs", QuestionText: "Dietary Needs", QuestionType: domain.QuestionMultiSelect, Options: []string{"Vegetarian", "Vegan", "None"}},
		{QuestionKey: "nickname", QuestionText: "Nickname", QuestionType: domain.QuestionText},
	})
	require.NoError(t, err)

	answers := []domain.Answer{
		{QuestionID: questions[0].ID, Value: "Asha Rao"},
		{QuestionID: questions[1].ID, Values: []string{"Vegetarian", "Vegan"}},
	}

	created, err := svc.RegisterWithForm(context.Background(), 1, 1, answers)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationPending, created.Status)
	assert.Equal(t, domain.RegistrationForm, created.RegistrationType)

	responses := regRepo.responses[created.ID]
	// The skipped optional question produces no stored response.
	require.Len(t, responses, 2)
	assert.Equal(t, "Asha Rao", responses[0].Answer)
	assert.Equal(t, "Vegetarian; Vegan", responses[1].Answer)
}

func TestRegisterWithForm_DuplicateConflicts(t *testing.T) {
	svc, _, formRepo := registrationFixture(t, domain.RegistrationForm)

	questions, err := formRepo.ReplaceForEvent(context.Background(), 1, []domain.Question{
		{QuestionKey: "full_name", QuestionText: "Full Name", QuestionType: domain.QuestionText, IsRequired: true},
	})
	require.NoError(t, err)

	answers := []domain.Answer{{QuestionID: questions[0].ID, Value: "Asha Rao"}}

	_, err = svc.RegisterWithForm(context.Background(), 1, 1, answers)
	require.NoError(t, err)

	_, err = svc.RegisterWithForm(context.Background(), 1, 1, answers)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestUnregister_Idempotent(t *testing.T) {
	svc, _, _ := registrationFixture(t, domain.RegistrationExternal)

	_, _, err := svc.Register(context.Background(), 1, 1)
	require.NoError(t, err)

	deleted, err := svc.Unregister(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.Unregister(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestReviewRegistration(t *testing.T) {
	svc, _, _ := registrationFixture(t, domain.RegistrationExternal)

	created, _, err := svc.Register(context.Background(), 1, 1)
	require.NoError(t, err)

	// Only the host or the ultimate admin may review.
	_, err = svc.ReviewRegistration(context.Background(), created.ID, domain.RegistrationApproved, 1)
	assert.ErrorIs(t, err, ErrNotEventHost)

	_, err = svc.ReviewRegistration(context.Background(), created.ID, "MAYBE", 2)
	assert.ErrorIs(t, err, ErrInvalidReviewStatus)

	approved, err := svc.ReviewRegistration(context.Background(), created.ID, domain.RegistrationApproved, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationApproved, approved.Status)

	// Re-reviewing a resolved registration is a conflict.
	_, err = svc.ReviewRegistration(context.Background(), created.ID, domain.RegistrationRejected, 2)
	assert.ErrorIs(t, err, ErrRegistrationResolved)

	// The ultimate admin can review events they do not host.
	second, _, err := svc.Register(context.Background(), 1, 3)
	require.NoError(t, err)
	rejected, err := svc.ReviewRegistration(context.Background(), second.ID, domain.RegistrationRejected, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.RegistrationRejected, rejected.Status)
}

func TestListRegistrations_HostOnly(t *testing.T) {
	svc, regRepo, _ := registrationFixture(t, domain.RegistrationExternal)

	regRepo.details = []domain.RegistrationDetail{
		{Registration: domain.Registration{ID: 1, EventID: 1, UserID: 1}, UserName: "Asha Rao", UserEmail: "asha@college.edu"},
	}

	_, err := svc.ListRegistrations(context.Background(), 1, 1)
	assert.ErrorIs(t, err, ErrNotEventHost)

	details, err := svc.ListRegistrations(context.Background(), 1, 2)
	require.NoError(t, err)
	require.Len(t, details, 1)
	assert.Equal(t, "Asha Rao", details[0].UserName)
}
