package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"

	"github.com/campusway/campus-events-api/internal/domain"
)

// ExportRegistrations renders every FORM registration of the event as CSV.
// The first columns are fixed registrant data; one column per question
// follows, in display order. A registrant who skipped an optional question
// gets an empty cell for it.
func (s *RegistrationService) ExportRegistrations(ctx context.Context, eventID, actorID uint) ([]byte, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if event.CreatedByID != actor.ID && !actor.Role.IsUltimateAdmin() {
		return nil, ErrNotEventHost
	}

	questions, err := s.formRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.formRepo.ListByEvent -> %w", err)
	}

	details, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEvent -> %w", err)
	}

	header := []string{"Name", "Email", "Status", "Registered At"}
	for _, q := range questions {
		header = append(header, q.QuestionText)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("w.Write -> %w", err)
	}

	for _, d := range details {
		if d.RegistrationType != domain.RegistrationForm {
			continue
		}

		byQuestionID := make(map[uint]string, len(d.Responses))
		for _, resp := range d.Responses {
			byQuestionID[resp.QuestionID] = resp.Answer
		}

		row := []string{
			d.UserName,
			d.UserEmail,
			string(d.Status),
			d.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for _, q := range questions {
			row = append(row, byQuestionID[q.ID])
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("w.Write -> %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("w.Error -> %w", err)
	}

	return buf.Bytes(), nil
}
