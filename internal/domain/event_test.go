package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitialStatus(t *testing.T) {
	assert.Equal(t, EventPendingApproval, InitialStatus(RoleStandardUser))
	assert.Equal(t, EventPendingApproval, InitialStatus(RoleEventAdmin))
	assert.Equal(t, EventPublished, InitialStatus(RoleUltimateAdmin))
}

func TestEventApprove(t *testing.T) {
	now := time.Now()

	event := Event{Status: EventPendingApproval}
	require.NoError(t, event.Approve(7, now))
	assert.Equal(t, EventPublished, event.Status)
	assert.Equal(t, uint(7), *event.ReviewedBy)
	assert.Equal(t, uint(7), *event.PublishedBy)
	assert.Nil(t, event.RejectionReason)

	for _, status := range []EventStatus{EventDraft, EventPublished, EventRejected, EventArchived} {
		event := Event{Status: status}
		assert.ErrorIs(t, event.Approve(7, now), ErrInvalidTransition, "approve from %v", status)
	}
}

func TestEventReject(t *testing.T) {
	now := time.Now()
	reason := "duplicate submission"

	event := Event{Status: EventPendingApproval}
	require.NoError(t, event.Reject(3, &reason, now))
	assert.Equal(t, EventRejected, event.Status)
	assert.Equal(t, &reason, event.RejectionReason)

	resubmitted := Event{Status: EventRejected}
	assert.ErrorIs(t, resubmitted.Reject(3, nil, now), ErrInvalidTransition)
}

func TestEventPublish(t *testing.T) {
	now := time.Now()

	for _, status := range []EventStatus{EventDraft, EventRejected} {
		event := Event{Status: status}
		require.NoError(t, event.Publish(1, now), "publish from %v", status)
		assert.Equal(t, EventPublished, event.Status)
		assert.Nil(t, event.RejectionReason)
	}

	for _, status := range []EventStatus{EventPendingApproval, EventPublished, EventArchived} {
		event := Event{Status: status}
		assert.ErrorIs(t, event.Publish(1, now), ErrInvalidTransition, "publish from %v", status)
	}
}

func TestEventUnpublishClearsFeatured(t *testing.T) {
	now := time.Now()
	actor := uint(2)

	event := Event{Status: EventPublished, IsFeatured: true, FeaturedBy: &actor, FeaturedAt: &now}
	require.NoError(t, event.Unpublish(actor, now))
	assert.Equal(t, EventDraft, event.Status)
	assert.False(t, event.IsFeatured)
	assert.Nil(t, event.FeaturedBy)
	assert.Nil(t, event.FeaturedAt)

	draft := Event{Status: EventDraft}
	assert.ErrorIs(t, draft.Unpublish(actor, now), ErrInvalidTransition)
}

func TestEventArchive(t *testing.T) {
	now := time.Now()

	for _, status := range []EventStatus{EventDraft, EventPendingApproval, EventPublished, EventRejected} {
		event := Event{Status: status, IsFeatured: status == EventPublished}
		require.NoError(t, event.Archive(1, now), "archive from %v", status)
		assert.Equal(t, EventArchived, event.Status)
		assert.False(t, event.IsFeatured)
	}

	archived := Event{Status: EventArchived}
	assert.ErrorIs(t, archived.Archive(1, now), ErrInvalidTransition)
}

func TestEventSetFeatured(t *testing.T) {
	now := time.Now()

	published := Event{Status: EventPublished}
	require.NoError(t, published.SetFeatured(true, 5, now))
	assert.True(t, published.IsFeatured)
	assert.Equal(t, uint(5), *published.FeaturedBy)

	draft := Event{Status: EventDraft}
	assert.ErrorIs(t, draft.SetFeatured(true, 5, now), ErrInvalidTransition)

	// Unfeaturing works regardless of status.
	require.NoError(t, draft.SetFeatured(false, 5, now))
	assert.False(t, draft.IsFeatured)
}
