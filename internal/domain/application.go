package domain

import (
	"errors"
	"time"
)

type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "PENDING"
	ApplicationApproved ApplicationStatus = "APPROVED"
	ApplicationRejected ApplicationStatus = "REJECTED"
)

var ErrApplicationResolved = errors.New("application has already been reviewed")

// HostApplication is a request by a standard user to become an event admin.
// Approval is the only path that mutates a user's role.
type HostApplication struct {
	ID               uint              `json:"id"`
	UserID           uint              `json:"user_id"`
	OrganizationName string            `json:"organization_name"`
	Motivation       string            `json:"motivation"`
	Status           ApplicationStatus `json:"status"`
	ReviewedBy       *uint             `json:"reviewed_by,omitempty"`
	ReviewedAt       *time.Time        `json:"reviewed_at,omitempty"`
	CreatedAt        time.Time         `json:"created_at"`
}

func (a *HostApplication) Approve(reviewerID uint, at time.Time) error {
	if a.Status != ApplicationPending {
		return ErrApplicationResolved
	}
	a.Status = ApplicationApproved
	a.ReviewedBy = &reviewerID
	a.ReviewedAt = &at
	return nil
}

func (a *HostApplication) Reject(reviewerID uint, at time.Time) error {
	if a.Status != ApplicationPending {
		return ErrApplicationResolved
	}
	a.Status = ApplicationRejected
	a.ReviewedBy = &reviewerID
	a.ReviewedAt = &at
	return nil
}
