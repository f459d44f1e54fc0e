package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository"
)

var (
	ErrEventNotFound     = repository.ErrEventNotFound
	ErrCategoryNotFound  = repository.ErrCategoryNotFound
	ErrInvalidTransition = domain.ErrInvalidTransition

	ErrHostRoleRequired  = errors.New("user is not allowed to host events")
	ErrNotEventHost      = errors.New("user is not the host of this event")
	ErrUltimateAdminOnly = errors.New("operation requires the ultimate admin role")
	ErrEventNotPublished = errors.New("event is not published")
)

type EventRepository interface {
	Create(ctx context.Context, event domain.Event) (domain.Event, error)
	Update(ctx context.Context, event domain.Event) (domain.Event, error)
	SaveLifecycle(ctx context.Context, event domain.Event) (domain.Event, error)
	FindByID(ctx context.Context, id uint) (domain.Event, error)
	ListPublished(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]domain.Event, error)
	ListAll(ctx context.Context, status domain.EventStatus) ([]domain.Event, error)
	RecountRegistrations(ctx context.Context, eventID uint) (int64, error)
	Like(ctx context.Context, eventID, userID uint) error
	Unlike(ctx context.Context, eventID, userID uint) error
	CountLikes(ctx context.Context, eventID uint) (int64, error)
}

type CategoryRepository interface {
	List(ctx context.Context) ([]domain.EventCategory, error)
	FindByIDs(ctx context.Context, ids []uint) ([]domain.EventCategory, error)
	FindBySlug(ctx context.Context, slug string) (domain.EventCategory, error)
}

type EventService struct {
	repo         EventRepository
	categoryRepo CategoryRepository
	userRepo     UserRepository
}

func NewEventService(repo EventRepository, categoryRepo CategoryRepository, userRepo UserRepository) *EventService {
	return &EventService{
		repo:         repo,
		categoryRepo: categoryRepo,
		userRepo:     userRepo,
	}
}

// resolveActor re-reads the acting user so role checks run against the
// persisted role, never one supplied by the caller.
func (s *EventService) resolveActor(ctx context.Context, actorID uint) (domain.User, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}

	return actor, nil
}

// validateCategories checks the primary and additional category references
// against the catalog and drops duplicates of the primary from the
// additional set, keeping "exactly one primary" intact.
func (s *EventService) validateCategories(ctx context.Context, event *domain.Event) error {
	if event.PrimaryCategoryID == 0 {
		return validation.Errors{"primary_category_id": errors.New("a primary category is required")}
	}

	ids := []uint{event.PrimaryCategoryID}
	deduped := make([]uint, 0, len(event.AdditionalCategoryIDs))
	seen := map[uint]bool{event.PrimaryCategoryID: true}
	for _, id := range event.AdditionalCategoryIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		deduped = append(deduped, id)
		ids = append(ids, id)
	}
	event.AdditionalCategoryIDs = deduped

	found, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("s.categoryRepo.FindByIDs -> %w", err)
	}
	if len(found) != len(ids) {
		return ErrCategoryNotFound
	}

	return nil
}

func (s *EventService) CreateEvent(ctx context.Context, event domain.Event, actorID uint) (domain.Event, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return domain.Event{}, err
	}
	if !actor.Role.CanHostEvents() {
		return domain.Event{}, ErrHostRoleRequired
	}

	if err := s.validateCategories(ctx, &event); err != nil {
		return domain.Event{}, err
	}

	event.CreatedByID = actor.ID
	event.Status = domain.InitialStatus(actor.Role)
	if event.Status == domain.EventPublished {
		now := time.Now()
		event.PublishedBy = &actor.ID
		event.PublishedAt = &now
	}

	created, err := s.repo.Create(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *EventService) UpdateEvent(ctx context.Context, event domain.Event, actorID uint) (domain.Event, error) {
	existing, err := s.repo.FindByID(ctx, event.ID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return domain.Event{}, err
	}
	if existing.CreatedByID != actor.ID && !actor.Role.IsUltimateAdmin() {
		return domain.Event{}, ErrNotEventHost
	}

	if err := s.validateCategories(ctx, &event); err != nil {
		return domain.Event{}, err
	}

	// Edits never touch lifecycle state or audit fields.
	event.CreatedByID = existing.CreatedByID
	event.Status = existing.Status
	event.IsFeatured = existing.IsFeatured
	event.RegistrationCount = existing.RegistrationCount
	event.RegistrationMethod = existing.RegistrationMethod
	event.ReviewedBy, event.ReviewedAt = existing.ReviewedBy, existing.ReviewedAt
	event.RejectionReason = existing.RejectionReason
	event.PublishedBy, event.PublishedAt = existing.PublishedBy, existing.PublishedAt
	event.UnpublishedBy, event.UnpublishedAt = existing.UnpublishedBy, existing.UnpublishedAt
	event.ArchivedBy, event.ArchivedAt = existing.ArchivedBy, existing.ArchivedAt
	event.FeaturedBy, event.FeaturedAt = existing.FeaturedBy, existing.FeaturedAt
	event.CreatedAt = existing.CreatedAt

	updated, err := s.repo.Update(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return updated, nil
}

// GetPublishedEvent is the public detail view; anything not PUBLISHED
// reads as not found.
func (s *EventService) GetPublishedEvent(ctx context.Context, id uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.Status != domain.EventPublished {
		return domain.Event{}, ErrEventNotFound
	}

	likes, err := s.repo.CountLikes(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.CountLikes -> %w", err)
	}
	event.LikeCount = int(likes)

	return event, nil
}

// GetEventForActor is the host/admin detail view, any status.
func (s *EventService) GetEventForActor(ctx context.Context, id, actorID uint) (domain.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return domain.Event{}, err
	}
	if event.CreatedByID != actor.ID && !actor.Role.IsUltimateAdmin() {
		return domain.Event{}, ErrNotEventHost
	}

	return event, nil
}

func (s *EventService) ListPublished(ctx context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	events, err := s.repo.ListPublished(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListPublished -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListFeatured(ctx context.Context) ([]domain.Event, error) {
	return s.ListPublished(ctx, repository.EventFilter{FeaturedOnly: true})
}

func (s *EventService) ListByCategorySlug(ctx context.Context, slug string) ([]domain.Event, error) {
	category, err := s.categoryRepo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("s.categoryRepo.FindBySlug -> %w", err)
	}

	return s.ListPublished(ctx, repository.EventFilter{CategoryID: category.ID})
}

func (s *EventService) ListCategories(ctx context.Context) ([]domain.EventCategory, error) {
	categories, err := s.categoryRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.categoryRepo.List -> %w", err)
	}

	return categories, nil
}

func (s *EventService) ListMyEvents(ctx context.Context, actorID uint) ([]domain.Event, error) {
	events, err := s.repo.ListByCreator(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListByCreator -> %w", err)
	}

	return events, nil
}

func (s *EventService) ListAllEvents(ctx context.Context, actorID uint, status domain.EventStatus) ([]domain.Event, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsUltimateAdmin() {
		return nil, ErrUltimateAdminOnly
	}

	events, err := s.repo.ListAll(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.ListAll -> %w", err)
	}

	return events, nil
}

// transition loads the event, applies a lifecycle mutation and persists
// it. Every lifecycle operation is ultimate-admin only.
func (s *EventService) transition(ctx context.Context, eventID, actorID uint, apply func(*domain.Event, uint, time.Time) error) (domain.Event, error) {
	actor, err := s.resolveActor(ctx, actorID)
	if err != nil {
		return domain.Event{}, err
	}
	if !actor.Role.IsUltimateAdmin() {
		return domain.Event{}, ErrUltimateAdminOnly
	}

	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if err := apply(&event, actor.ID, time.Now()); err != nil {
		return domain.Event{}, err
	}

	saved, err := s.repo.SaveLifecycle(ctx, event)
	if err != nil {
		return domain.Event{}, fmt.Errorf("s.repo.SaveLifecycle -> %w", err)
	}

	return saved, nil
}

func (s *EventService) ApproveEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error) {
	return s.transition(ctx, eventID, actorID, func(e *domain.Event, actor uint, at time.Time) error {
		return e.Approve(actor, at)
	})
}

func (s *EventService) RejectEvent(ctx context.Context, eventID, actorID uint, reason *string) (domain.Event, error) {
	return s.transition(ctx, eventID, actorID, func(e *domain.Event, actor uint, at time.Time) error {
		return e.Reject(actor, reason, at)
	})
}

func (s *EventService) PublishEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error) {
	return s.transition(ctx, eventID, actorID, func(e *domain.Event, actor uint, at time.Time) error {
		return e.Publish(actor, at)
	})
}

func (s *EventService) UnpublishEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error) {
	return s.transition(ctx, eventID, actorID, func(e *domain.Event, actor uint, at time.Time) error {
		return e.Unpublish(actor, at)
	})
}

func (s *EventService) ArchiveEvent(ctx context.Context, eventID, actorID uint) (domain.Event, error) {
	return s.transition(ctx, eventID, actorID, func(e *domain.Event, actor uint, at time.Time) error {
		return e.Archive(actor, at)
	})
}

func (s *EventService) SetEventFeatured(ctx context.Context, eventID, actorID uint, featured bool) (domain.Event, error) {
	return s.transition(ctx, eventID, actorID, func(e *domain.Event, actor uint, at time.Time) error {
		return e.SetFeatured(featured, actor, at)
	})
}

// LikeEvent is idempotent: liking an already-liked event succeeds.
func (s *EventService) LikeEvent(ctx context.Context, eventID, userID uint) error {
	event, err := s.repo.FindByID(ctx, eventID)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if event.Status != domain.EventPublished {
		return ErrEventNotPublished
	}

	if err := s.repo.Like(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return nil
		}

		return fmt.Errorf("s.repo.Like -> %w", err)
	}

	return nil
}

func (s *EventService) UnlikeEvent(ctx context.Context, eventID, userID uint) error {
	if err := s.repo.Unlike(ctx, eventID, userID); err != nil {
		if errors.Is(err, repository.ErrLikeNotFound) {
			return nil
		}

		return fmt.Errorf("s.repo.Unlike -> %w", err)
	}

	return nil
}
