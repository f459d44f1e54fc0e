package domain

import (
	"errors"
	"time"
)

type RegistrationStatus string

const (
	RegistrationPending  RegistrationStatus = "PENDING"
	RegistrationApproved RegistrationStatus = "APPROVED"
	RegistrationRejected RegistrationStatus = "REJECTED"
)

// ErrRegistrationResolved: approving or rejecting is only defined from
// PENDING. Re-reviewing a resolved registration is a conflict, not an
// overwrite.
var ErrRegistrationResolved = errors.New("registration has already been reviewed")

type Registration struct {
	ID               uint               `json:"id"`
	EventID          uint               `json:"event_id"`
	UserID           uint               `json:"user_id"`
	RegistrationType RegistrationMethod `json:"registration_type"`
	Status           RegistrationStatus `json:"status"`
	CreatedAt        time.Time          `json:"created_at"`
}

func (r *Registration) Approve() error {
	if r.Status != RegistrationPending {
		return ErrRegistrationResolved
	}
	r.Status = RegistrationApproved
	return nil
}

func (r *Registration) Reject() error {
	if r.Status != RegistrationPending {
		return ErrRegistrationResolved
	}
	r.Status = RegistrationRejected
	return nil
}

// FormResponse is one stored answer. Multi-select answers are flattened
// with MultiSelectSeparator before storage.
type FormResponse struct {
	ID             uint   `json:"id"`
	RegistrationID uint   `json:"registration_id"`
	QuestionID     uint   `json:"question_id"`
	Answer         string `json:"answer"`
}

// ResponseDetail is a stored answer joined with its question text for the
// host review view.
type ResponseDetail struct {
	QuestionID   uint   `json:"question_id"`
	QuestionText string `json:"question_text"`
	Answer       string `json:"answer"`
}

// RegistrationDetail is a registration joined with the registrant's profile
// and, for FORM registrations, its answers.
type RegistrationDetail struct {
	Registration
	UserName  string           `json:"user_name"`
	UserEmail string           `json:"user_email"`
	Responses []ResponseDetail `json:"responses,omitempty"`
}
