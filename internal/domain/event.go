package domain

import (
	"errors"
	"time"
)

type EventStatus string

const (
	EventDraft           EventStatus = "DRAFT"
	EventPendingApproval EventStatus = "PENDING_APPROVAL"
	EventPublished       EventStatus = "PUBLISHED"
	EventRejected        EventStatus = "REJECTED"
	EventArchived        EventStatus = "ARCHIVED"
)

type RegistrationMethod string

const (
	RegistrationExternal RegistrationMethod = "EXTERNAL"
	RegistrationForm     RegistrationMethod = "FORM"
)

var ErrInvalidTransition = errors.New("invalid event status transition")

type Event struct {
	ID                    uint               `json:"id"`
	Title                 string             `json:"title"`
	Description           string             `json:"description"`
	Date                  time.Time          `json:"date"`
	StartTime             string             `json:"start_time"`
	EndTime               string             `json:"end_time"`
	Location              string             `json:"location"`
	District              string             `json:"district"`
	BannerURL             string             `json:"banner_url"`
	PosterURL             string             `json:"poster_url"`
	BrochureURL           string             `json:"brochure_url"`
	ExternalLink          string             `json:"external_link"`
	RegistrationMethod    RegistrationMethod `json:"registration_method"`
	Status                EventStatus        `json:"status"`
	IsFeatured            bool               `json:"is_featured"`
	PrimaryCategoryID     uint               `json:"primary_category_id"`
	AdditionalCategoryIDs []uint             `json:"additional_category_ids"`
	CreatedByID           uint               `json:"created_by_id"`
	RegistrationCount     int                `json:"registration_count"`
	LikeCount             int                `json:"like_count"`

	ReviewedBy      *uint      `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time `json:"reviewed_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	PublishedBy     *uint      `json:"published_by,omitempty"`
	PublishedAt     *time.Time `json:"published_at,omitempty"`
	UnpublishedBy   *uint      `json:"unpublished_by,omitempty"`
	UnpublishedAt   *time.Time `json:"unpublished_at,omitempty"`
	ArchivedBy      *uint      `json:"archived_by,omitempty"`
	ArchivedAt      *time.Time `json:"archived_at,omitempty"`
	FeaturedBy      *uint      `json:"featured_by,omitempty"`
	FeaturedAt      *time.Time `json:"featured_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// InitialStatus depends on who authors the event: ultimate admins go
// straight to PUBLISHED, everyone else waits for review.
func InitialStatus(role Role) EventStatus {
	if role.IsUltimateAdmin() {
		return EventPublished
	}
	return EventPendingApproval
}

func (e *Event) Approve(reviewerID uint, at time.Time) error {
	if e.Status != EventPendingApproval {
		return ErrInvalidTransition
	}

	e.Status = EventPublished
	e.ReviewedBy = &reviewerID
	e.ReviewedAt = &at
	e.RejectionReason = nil
	e.PublishedBy = &reviewerID
	e.PublishedAt = &at

	return nil
}

func (e *Event) Reject(reviewerID uint, reason *string, at time.Time) error {
	if e.Status != EventPendingApproval {
		return ErrInvalidTransition
	}

	e.Status = EventRejected
	e.ReviewedBy = &reviewerID
	e.ReviewedAt = &at
	e.RejectionReason = reason

	return nil
}

func (e *Event) Publish(publisherID uint, at time.Time) error {
	if e.Status != EventDraft && e.Status != EventRejected {
		return ErrInvalidTransition
	}

	e.Status = EventPublished
	e.RejectionReason = nil
	e.PublishedBy = &publisherID
	e.PublishedAt = &at

	return nil
}

// Unpublish moves a published event back to DRAFT and drops it from the
// featured set. Invariant: only PUBLISHED events can be featured.
func (e *Event) Unpublish(actorID uint, at time.Time) error {
	if e.Status != EventPublished {
		return ErrInvalidTransition
	}

	e.Status = EventDraft
	e.UnpublishedBy = &actorID
	e.UnpublishedAt = &at
	e.clearFeatured()

	return nil
}

// Archive is the soft-delete path and is valid from any status.
func (e *Event) Archive(actorID uint, at time.Time) error {
	if e.Status == EventArchived {
		return ErrInvalidTransition
	}

	e.Status = EventArchived
	e.ArchivedBy = &actorID
	e.ArchivedAt = &at
	e.clearFeatured()

	return nil
}

func (e *Event) SetFeatured(featured bool, actorID uint, at time.Time) error {
	if featured {
		if e.Status != EventPublished {
			return ErrInvalidTransition
		}
		e.IsFeatured = true
		e.FeaturedBy = &actorID
		e.FeaturedAt = &at

		return nil
	}

	e.clearFeatured()

	return nil
}

func (e *Event) clearFeatured() {
	e.IsFeatured = false
	e.FeaturedBy = nil
	e.FeaturedAt = nil
}
