package repository

import (
	"context"
	"fmt"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository/dao"
)

var (
	ErrEventNotFound = dao.ErrEventNotFound
	ErrAlreadyLiked  = dao.ErrAlreadyLiked
	ErrLikeNotFound  = dao.ErrLikeNotFound
)

// EventFilter mirrors dao.EventFilter for callers above the repository.
type EventFilter struct {
	Query        string
	CategoryID   uint
	District     string
	FeaturedOnly bool
}

type EventDAO interface {
	Insert(ctx context.Context, event dao.Event, additionalCategoryIDs []uint) (dao.Event, error)
	Update(ctx context.Context, event dao.Event, additionalCategoryIDs []uint) (dao.Event, error)
	SaveLifecycle(ctx context.Context, event dao.Event) (dao.Event, error)
	FindByID(ctx context.Context, id uint) (dao.Event, error)
	ListPublished(ctx context.Context, filter dao.EventFilter) ([]dao.Event, error)
	ListByCreator(ctx context.Context, creatorID uint) ([]dao.Event, error)
	ListAll(ctx context.Context, status string) ([]dao.Event, error)
	IncrementRegistrationCount(ctx context.Context, eventID uint, delta int) error
	RecountRegistrations(ctx context.Context, eventID uint) (int64, error)
	InsertLike(ctx context.Context, eventID, userID uint) error
	DeleteLike(ctx context.Context, eventID, userID uint) error
	CountLikes(ctx context.Context, eventID uint) (int64, error)
}

type EventRepository struct {
	dao EventDAO
}

func NewEventRepository(dao EventDAO) *EventRepository {
	return &EventRepository{
		dao: dao,
	}
}

func (r *EventRepository) domainToDao(e domain.Event) dao.Event {
	return dao.Event{
		ID:                 e.ID,
		Title:              e.Title,
		Description:        e.Description,
		Date:               e.Date,
		StartTime:          e.StartTime,
		EndTime:            e.EndTime,
		Location:           e.Location,
		District:           e.District,
		BannerURL:          e.BannerURL,
		PosterURL:          e.PosterURL,
		BrochureURL:        e.BrochureURL,
		ExternalLink:       e.ExternalLink,
		RegistrationMethod: string(e.RegistrationMethod),
		Status:             string(e.Status),
		IsFeatured:         e.IsFeatured,
		PrimaryCategoryID:  e.PrimaryCategoryID,
		CreatedByID:        e.CreatedByID,
		RegistrationCount:  e.RegistrationCount,
		ReviewedBy:         e.ReviewedBy,
		ReviewedAt:         e.ReviewedAt,
		RejectionReason:    e.RejectionReason,
		PublishedBy:        e.PublishedBy,
		PublishedAt:        e.PublishedAt,
		UnpublishedBy:      e.UnpublishedBy,
		UnpublishedAt:      e.UnpublishedAt,
		ArchivedBy:         e.ArchivedBy,
		ArchivedAt:         e.ArchivedAt,
		FeaturedBy:         e.FeaturedBy,
		FeaturedAt:         e.FeaturedAt,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func (r *EventRepository) daoToDomain(e dao.Event) domain.Event {
	additionalIDs := make([]uint, len(e.AdditionalCategories))
	for i, c := range e.AdditionalCategories {
		additionalIDs[i] = c.ID
	}

	return domain.Event{
		ID:                    e.ID,
		Title:                 e.Title,
		Description:           e.Description,
		Date:                  e.Date,
		StartTime:             e.StartTime,
		EndTime:               e.EndTime,
		Location:              e.Location,
		District:              e.District,
		BannerURL:             e.BannerURL,
		PosterURL:             e.PosterURL,
		BrochureURL:           e.BrochureURL,
		ExternalLink:          e.ExternalLink,
		RegistrationMethod:    domain.RegistrationMethod(e.RegistrationMethod),
		Status:                domain.EventStatus(e.Status),
		IsFeatured:            e.IsFeatured,
		PrimaryCategoryID:     e.PrimaryCategoryID,
		AdditionalCategoryIDs: additionalIDs,
		CreatedByID:           e.CreatedByID,
		RegistrationCount:     e.RegistrationCount,
		ReviewedBy:            e.ReviewedBy,
		ReviewedAt:            e.ReviewedAt,
		RejectionReason:       e.RejectionReason,
		PublishedBy:           e.PublishedBy,
		PublishedAt:           e.PublishedAt,
		UnpublishedBy:         e.UnpublishedBy,
		UnpublishedAt:         e.UnpublishedAt,
		ArchivedBy:            e.ArchivedBy,
		ArchivedAt:            e.ArchivedAt,
		FeaturedBy:            e.FeaturedBy,
		FeaturedAt:            e.FeaturedAt,
		CreatedAt:             e.CreatedAt,
		UpdatedAt:             e.UpdatedAt,
	}
}

func (r *EventRepository) daosToDomain(events []dao.Event) []domain.Event {
	converted := make([]domain.Event, len(events))
	for i, e := range events {
		converted[i] = r.daoToDomain(e)
	}
	return converted
}

func (r *EventRepository) Create(ctx context.Context, event domain.Event) (domain.Event, error) {
	created, err := r.dao.Insert(ctx, r.domainToDao(event), event.AdditionalCategoryIDs)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *EventRepository) Update(ctx context.Context, event domain.Event) (domain.Event, error) {
	updated, err := r.dao.Update(ctx, r.domainToDao(event), event.AdditionalCategoryIDs)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *EventRepository) SaveLifecycle(ctx context.Context, event domain.Event) (domain.Event, error) {
	saved, err := r.dao.SaveLifecycle(ctx, r.domainToDao(event))
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.SaveLifecycle -> %w", err)
	}

	return r.daoToDomain(saved), nil
}

func (r *EventRepository) FindByID(ctx context.Context, id uint) (domain.Event, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Event{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *EventRepository) ListPublished(ctx context.Context, filter EventFilter) ([]domain.Event, error) {
	found, err := r.dao.ListPublished(ctx, dao.EventFilter{
		Query:        filter.Query,
		CategoryID:   filter.CategoryID,
		District:     filter.District,
		FeaturedOnly: filter.FeaturedOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListPublished -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) ListByCreator(ctx context.Context, creatorID uint) ([]domain.Event, error) {
	found, err := r.dao.ListByCreator(ctx, creatorID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByCreator -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) ListAll(ctx context.Context, status domain.EventStatus) ([]domain.Event, error) {
	found, err := r.dao.ListAll(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *EventRepository) RecountRegistrations(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.RecountRegistrations(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.RecountRegistrations -> %w", err)
	}

	return count, nil
}

func (r *EventRepository) Like(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.InsertLike(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.InsertLike -> %w", err)
	}

	return nil
}

func (r *EventRepository) Unlike(ctx context.Context, eventID, userID uint) error {
	if err := r.dao.DeleteLike(ctx, eventID, userID); err != nil {
		return fmt.Errorf("r.dao.DeleteLike -> %w", err)
	}

	return nil
}

func (r *EventRepository) CountLikes(ctx context.Context, eventID uint) (int64, error) {
	count, err := r.dao.CountLikes(ctx, eventID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountLikes -> %w", err)
	}

	return count, nil
}
