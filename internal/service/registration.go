package service

import (
	"context"
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository"
)

var (
	ErrAlreadyRegistered    = repository.ErrAlreadyRegistered
	ErrRegistrationNotFound = repository.ErrRegistrationNotFound
	ErrRegistrationResolved = domain.ErrRegistrationResolved

	ErrWrongRegistrationMethod = errors.New("event uses a different registration method")
	ErrInvalidReviewStatus     = errors.New("review status must be APPROVED or REJECTED")
)

type RegistrationRepository interface {
	Create(ctx context.Context, registration domain.Registration) (domain.Registration, error)
	CreateWithResponses(ctx context.Context, registration domain.Registration, responses []domain.FormResponse) (domain.Registration, error)
	DeleteByEventAndUser(ctx context.Context, eventID, userID uint) (bool, error)
	FindByID(ctx context.Context, id uint) (domain.Registration, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Registration, error)
	UpdateStatus(ctx context.Context, id uint, status domain.RegistrationStatus) error
	ListByEvent(ctx context.Context, eventID uint) ([]domain.RegistrationDetail, error)
}

type RegistrationService struct {
	repo      RegistrationRepository
	formRepo  FormRepository
	eventRepo EventRepository
	userRepo  UserRepository
}

func NewRegistrationService(repo RegistrationRepository, formRepo FormRepository, eventRepo EventRepository, userRepo UserRepository) *RegistrationService {
	return &RegistrationService{
		repo:      repo,
		formRepo:  formRepo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

func (s *RegistrationService) publishedEvent(ctx context.Context, eventID uint) (domain.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}
	if event.Status != domain.EventPublished {
		return domain.Event{}, ErrEventNotPublished
	}

	return event, nil
}

// Register handles EXTERNAL-method events. A duplicate submission is an
// idempotent success: the existing registration comes back with
// alreadyRegistered = true and no second row is created.
func (s *RegistrationService) Register(ctx context.Context, eventID, userID uint) (domain.Registration, bool, error) {
	event, err := s.publishedEvent(ctx, eventID)
	if err != nil {
		return domain.Registration{}, false, err
	}
	if event.RegistrationMethod == domain.RegistrationForm {
		return domain.Registration{}, false, ErrWrongRegistrationMethod
	}

	created, err := s.repo.Create(ctx, domain.Registration{
		EventID:          eventID,
		UserID:           userID,
		RegistrationType: domain.RegistrationExternal,
		Status:           domain.RegistrationPending,
	})
	if err != nil {
		if errors.Is(err, ErrAlreadyRegistered) {
			existing, findErr := s.repo.FindByEventAndUser(ctx, eventID, userID)
			if findErr != nil {
				return domain.Registration{}, false, fmt.Errorf("s.repo.FindByEventAndUser -> %w", findErr)
			}

			return existing, true, nil
		}

		return domain.Registration{}, false, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, false, nil
}

// RegisterWithForm validates every answer against the event's form before
// writing anything. Violations are accumulated per question key rather
// than failing on the first one. The registration and its responses are
// created as one atomic unit.
func (s *RegistrationService) RegisterWithForm(ctx context.Context, eventID, userID uint, answers []domain.Answer) (domain.Registration, error) {
	event, err := s.publishedEvent(ctx, eventID)
	if err != nil {
		return domain.Registration{}, err
	}
	if event.RegistrationMethod != domain.RegistrationForm {
		return domain.Registration{}, ErrWrongRegistrationMethod
	}

	questions, err := s.formRepo.ListByEvent(ctx, eventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.formRepo.ListByEvent -> %w", err)
	}

	byQuestionID := make(map[uint]domain.Answer, len(answers))
	known := make(map[uint]bool, len(questions))
	for _, q := range questions {
		known[q.ID] = true
	}

	errs := validation.Errors{}
	for _, answer := range answers {
		if !known[answer.QuestionID] {
			errs[fmt.Sprintf("question_%d", answer.QuestionID)] = errors.New("question does not belong to this event")
			continue
		}
		byQuestionID[answer.QuestionID] = answer
	}

	var responses []domain.FormResponse
	for _, q := range questions {
		answer := byQuestionID[q.ID]
		if err := q.ValidateAnswer(answer); err != nil {
			errs[q.QuestionKey] = err
			continue
		}

		flattened := answer.Flatten()
		if flattened == "" {
			continue
		}
		responses = append(responses, domain.FormResponse{
			QuestionID: q.ID,
			Answer:     flattened,
		})
	}
	if len(errs) > 0 {
		return domain.Registration{}, errs
	}

	created, err := s.repo.CreateWithResponses(ctx, domain.Registration{
		EventID:          eventID,
		UserID:           userID,
		RegistrationType: domain.RegistrationForm,
		Status:           domain.RegistrationPending,
	}, responses)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.CreateWithResponses -> %w", err)
	}

	return created, nil
}

// Unregister deletes the (user, event) registration and its responses.
// It reports success whether or not a registration existed.
func (s *RegistrationService) Unregister(ctx context.Context, eventID, userID uint) (bool, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return false, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	deleted, err := s.repo.DeleteByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("s.repo.DeleteByEventAndUser -> %w", err)
	}

	return deleted, nil
}

// ReviewRegistration moves a PENDING registration to APPROVED or
// REJECTED. Reviewing an already-resolved registration is a conflict.
func (s *RegistrationService) ReviewRegistration(ctx context.Context, registrationID uint, status domain.RegistrationStatus, actorID uint) (domain.Registration, error) {
	registration, err := s.repo.FindByID(ctx, registrationID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	event, err := s.eventRepo.FindByID(ctx, registration.EventID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if event.CreatedByID != actor.ID && !actor.Role.IsUltimateAdmin() {
		return domain.Registration{}, ErrNotEventHost
	}

	switch status {
	case domain.RegistrationApproved:
		err = registration.Approve()
	case domain.RegistrationRejected:
		err = registration.Reject()
	default:
		return domain.Registration{}, ErrInvalidReviewStatus
	}
	if err != nil {
		return domain.Registration{}, err
	}

	if err := s.repo.UpdateStatus(ctx, registration.ID, registration.Status); err != nil {
		return domain.Registration{}, fmt.Errorf("s.repo.UpdateStatus -> %w", err)
	}

	return registration, nil
}

func (s *RegistrationService) ListRegistrations(ctx context.Context, eventID, actorID uint) ([]domain.RegistrationDetail, error) {
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

	details, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEvent -> %w", err)
	}

	return details, nil
}
