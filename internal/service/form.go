package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/google/uuid"

	"github.com/campusway/campus-events-api/internal/domain"
)

var ErrFormNotSupported = errors.New("event does not use form registration")

type FormRepository interface {
	ReplaceForEvent(ctx context.Context, eventID uint, questions []domain.Question) ([]domain.Question, error)
	ListByEvent(ctx context.Context, eventID uint) ([]domain.Question, error)
}

type FormService struct {
	repo      FormRepository
	eventRepo EventRepository
	userRepo  UserRepository
}

func NewFormService(repo FormRepository, eventRepo EventRepository, userRepo UserRepository) *FormService {
	return &FormService{
		repo:      repo,
		eventRepo: eventRepo,
		userRepo:  userRepo,
	}
}

// DefineForm replaces the event's whole question set. Partial updates are
// not supported; the caller submits the full form every time.
func (s *FormService) DefineForm(ctx context.Context, eventID uint, questions []domain.Question, actorID uint) ([]domain.Question, error) {
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

	if event.RegistrationMethod != domain.RegistrationForm {
		return nil, ErrFormNotSupported
	}

	errs := validation.Errors{}
	for i := range questions {
		q := &questions[i]
		key := "questions." + strconv.Itoa(i)

		if strings.TrimSpace(q.QuestionText) == "" {
			errs[key] = errors.New("question text must not be empty")
			continue
		}
		if !q.QuestionType.IsValid() {
			errs[key] = fmt.Errorf("unknown question type %q", q.QuestionType)
			continue
		}
		if q.QuestionType.NeedsOptions() {
			if len(q.Options) == 0 {
				errs[key] = fmt.Errorf("%s questions need at least one option", q.QuestionType)
				continue
			}
		} else {
			q.Options = nil
		}

		q.ID = 0
		q.EventID = eventID
		q.DisplayOrder = i
		if q.QuestionCategory == "" {
			q.QuestionCategory = "Custom"
		}
		if q.IsCustom || q.QuestionKey == "" {
			q.IsCustom = true
			q.QuestionKey = customQuestionKey()
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	replaced, err := s.repo.ReplaceForEvent(ctx, eventID, questions)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ReplaceForEvent -> %w", err)
	}

	return replaced, nil
}

func customQuestionKey() string {
	return "custom_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// GetForm returns the ordered question list. Events without a form (or
// with EXTERNAL registration) yield an empty list, not an error.
func (s *FormService) GetForm(ctx context.Context, eventID uint) ([]domain.Question, error) {
	if _, err := s.eventRepo.FindByID(ctx, eventID); err != nil {
		return nil, fmt.Errorf("s.eventRepo.FindByID -> %w", err)
	}

	questions, err := s.repo.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByEvent -> %w", err)
	}
	if questions == nil {
		questions = []domain.Question{}
	}

	return questions, nil
}

func (s *FormService) Presets() []domain.PresetQuestion {
	return domain.PresetCatalog
}
