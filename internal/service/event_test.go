package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusway/campus-events-api/internal/domain"
)

var testCategories = []domain.EventCategory{
	{ID: 1, Name: "Technology", Slug: "technology"},
	{ID: 2, Name: "Cultural", Slug: "cultural"},
	{ID: 3, Name: "Sports", Slug: "sports"},
}

func newEventService(eventRepo *fakeEventRepo, userRepo *fakeUserRepo) *EventService {
	return NewEventService(eventRepo, &fakeCategoryRepo{categories: testCategories}, userRepo)
}

func TestCreateEvent_StatusDependsOnRole(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 1, Role: domain.RoleStandardUser},
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
		domain.User{ID: 3, Role: domain.RoleUltimateAdmin},
	)
	eventRepo := newFakeEventRepo()
	svc := newEventService(eventRepo, userRepo)

	event := domain.Event{Title: "Hack Night", PrimaryCategoryID: 1}

	_, err := svc.CreateEvent(context.Background(), event, 1)
	assert.ErrorIs(t, err, ErrHostRoleRequired)

	hosted, err := svc.CreateEvent(context.Background(), event, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPendingApproval, hosted.Status)
	assert.Equal(t, uint(2), hosted.CreatedByID)
	assert.Nil(t, hosted.PublishedBy)

	direct, err := svc.CreateEvent(context.Background(), event, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPublished, direct.Status)
	require.NotNil(t, direct.PublishedBy)
	assert.Equal(t, uint(3), *direct.PublishedBy)
}

func TestCreateEvent_CategoryValidation(t *testing.T) {
	userRepo := newFakeUserRepo(domain.User{ID: 2, Role: domain.RoleEventAdmin})
	svc := newEventService(newFakeEventRepo(), userRepo)

	_, err := svc.CreateEvent(context.Background(), domain.Event{Title: "No Category"}, 2)
	assert.Error(t, err)

	_, err = svc.CreateEvent(context.Background(), domain.Event{Title: "Unknown", PrimaryCategoryID: 99}, 2)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	// The primary category is dropped from the additional set.
	created, err := svc.CreateEvent(context.Background(), domain.Event{
		Title:                 "Tech Fest",
		PrimaryCategoryID:     1,
		AdditionalCategoryIDs: []uint{1, 2, 2, 3},
	}, 2)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3}, created.AdditionalCategoryIDs)
}

func TestUpdateEvent_PreservesLifecycleFields(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
		domain.User{ID: 9, Role: domain.RoleEventAdmin},
	)
	eventRepo := newFakeEventRepo(domain.Event{
		ID:                 10,
		Title:              "Old Title",
		Status:             domain.EventPublished,
		IsFeatured:         true,
		CreatedByID:        2,
		PrimaryCategoryID:  1,
		RegistrationCount:  42,
		RegistrationMethod: domain.RegistrationForm,
	})
	svc := newEventService(eventRepo, userRepo)

	_, err := svc.UpdateEvent(context.Background(), domain.Event{ID: 10, Title: "X", PrimaryCategoryID: 1}, 9)
	assert.ErrorIs(t, err, ErrNotEventHost)

	updated, err := svc.UpdateEvent(context.Background(), domain.Event{ID: 10, Title: "New Title", PrimaryCategoryID: 2}, 2)
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, domain.EventPublished, updated.Status)
	assert.True(t, updated.IsFeatured)
	assert.Equal(t, 42, updated.RegistrationCount)
	assert.Equal(t, domain.RegistrationForm, updated.RegistrationMethod)
}

func TestGetPublishedEvent_HidesUnpublished(t *testing.T) {
	eventRepo := newFakeEventRepo(
		domain.Event{ID: 1, Status: domain.EventPublished},
		domain.Event{ID: 2, Status: domain.EventPendingApproval},
	)
	svc := newEventService(eventRepo, newFakeUserRepo())

	_, err := svc.GetPublishedEvent(context.Background(), 1)
	assert.NoError(t, err)

	_, err = svc.GetPublishedEvent(context.Background(), 2)
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestLifecycleTransitions_AdminGated(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 2, Role: domain.RoleEventAdmin},
		domain.User{ID: 3, Role: domain.RoleUltimateAdmin},
	)
	eventRepo := newFakeEventRepo(domain.Event{ID: 1, Status: domain.EventPendingApproval, CreatedByID: 2})
	svc := newEventService(eventRepo, userRepo)

	// Even the event's own host cannot run lifecycle transitions.
	_, err := svc.ApproveEvent(context.Background(), 1, 2)
	assert.ErrorIs(t, err, ErrUltimateAdminOnly)

	approved, err := svc.ApproveEvent(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.EventPublished, approved.Status)

	// PENDING_APPROVAL is gone, a second approve conflicts.
	_, err = svc.ApproveEvent(context.Background(), 1, 3)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestSetEventFeatured_RequiresPublished(t *testing.T) {
	userRepo := newFakeUserRepo(domain.User{ID: 3, Role: domain.RoleUltimateAdmin})
	eventRepo := newFakeEventRepo(
		domain.Event{ID: 1, Status: domain.EventPublished},
		domain.Event{ID: 2, Status: domain.EventDraft},
	)
	svc := newEventService(eventRepo, userRepo)

	featured, err := svc.SetEventFeatured(context.Background(), 1, 3, true)
	require.NoError(t, err)
	assert.True(t, featured.IsFeatured)

	_, err = svc.SetEventFeatured(context.Background(), 2, 3, true)
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestArchiveClearsFeatured(t *testing.T) {
	userRepo := newFakeUserRepo(domain.User{ID: 3, Role: domain.RoleUltimateAdmin})
	eventRepo := newFakeEventRepo(domain.Event{ID: 1, Status: domain.EventPublished, IsFeatured: true})
	svc := newEventService(eventRepo, userRepo)

	archived, err := svc.ArchiveEvent(context.Background(), 1, 3)
	require.NoError(t, err)
	assert.Equal(t, domain.EventArchived, archived.Status)
	assert.False(t, archived.IsFeatured)

	featuredList, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)
	assert.Empty(t, featuredList)
}

func TestLikeEvent_Idempotent(t *testing.T) {
	eventRepo := newFakeEventRepo(
		domain.Event{ID: 1, Status: domain.EventPublished},
		domain.Event{ID: 2, Status: domain.EventDraft},
	)
	svc := newEventService(eventRepo, newFakeUserRepo())

	require.NoError(t, svc.LikeEvent(context.Background(), 1, 7))
	require.NoError(t, svc.LikeEvent(context.Background(), 1, 7))

	count, err := eventRepo.CountLikes(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	assert.ErrorIs(t, svc.LikeEvent(context.Background(), 2, 7), ErrEventNotPublished)

	// Unliking twice is fine as well.
	require.NoError(t, svc.UnlikeEvent(context.Background(), 1, 7))
	require.NoError(t, svc.UnlikeEvent(context.Background(), 1, 7))
}

func TestListAllEvents_AdminGated(t *testing.T) {
	userRepo := newFakeUserRepo(
		domain.User{ID: 1, Role: domain.RoleStandardUser},
		domain.User{ID: 3, Role: domain.RoleUltimateAdmin},
	)
	eventRepo := newFakeEventRepo(
		domain.Event{ID: 1, Status: domain.EventPublished},
		domain.Event{ID: 2, Status: domain.EventPendingApproval},
	)
	svc := newEventService(eventRepo, userRepo)

	_, err := svc.ListAllEvents(context.Background(), 1, "")
	assert.ErrorIs(t, err, ErrUltimateAdminOnly)

	all, err := svc.ListAllEvents(context.Background(), 3, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	pending, err := svc.ListAllEvents(context.Background(), 3, domain.EventPendingApproval)
	require.NoError(t, err)
	assert.Len(t, pending, 1)
}
