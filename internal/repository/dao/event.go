package dao

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrAlreadyLiked  = errors.New("event already liked")
	ErrLikeNotFound  = errors.New("like not found")
)

type Event struct {
	ID uint `gorm:"primaryKey"`

	Title       string    `gorm:"not null"`
	Description string    `gorm:"type:text"`
	Date        time.Time `gorm:"not null;index"`
	StartTime   string
	EndTime     string
	Location    string `gorm:"not null"`
	District    string `gorm:"index"`

	BannerURL    string
	PosterURL    string
	BrochureURL  string
	ExternalLink string

	RegistrationMethod string `gorm:"not null;default:EXTERNAL"`
	Status             string `gorm:"not null;index"`
	IsFeatured         bool   `gorm:"not null;default:false"`

	PrimaryCategoryID    uint            `gorm:"not null;index"`
	PrimaryCategory      EventCategory   `gorm:"foreignKey:PrimaryCategoryID"`
	AdditionalCategories []EventCategory `gorm:"many2many:event_additional_categories;"`

	CreatedByID uint `gorm:"not null;index"`
	CreatedBy   User `gorm:"foreignKey:CreatedByID"`

	RegistrationCount int `gorm:"not null;default:0"`

	ReviewedBy      *uint
	ReviewedAt      *time.Time
	RejectionReason *string
	PublishedBy     *uint
	PublishedAt     *time.Time
	UnpublishedBy   *uint
	UnpublishedAt   *time.Time
	ArchivedBy      *uint
	ArchivedAt      *time.Time
	FeaturedBy      *uint
	FeaturedAt      *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type EventLike struct {
	ID        uint `gorm:"primaryKey"`
	EventID   uint `gorm:"not null;uniqueIndex:idx_event_likes_event_user"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_event_likes_event_user"`
	CreatedAt time.Time
	DeletedAt gorm.DeletedAt
}

// EventFilter narrows public listing queries. Zero values are ignored.
type EventFilter struct {
	Query        string
	CategoryID   uint
	District     string
	FeaturedOnly bool
}

type EventDAO struct {
	db *gorm.DB
}

func NewEventDAO(db *gorm.DB) *EventDAO {
	return &EventDAO{
		db: db,
	}
}

func (d *EventDAO) Insert(ctx context.Context, event Event, additionalCategoryIDs []uint) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AdditionalCategories").Create(&event).Error; err != nil {
			return err
		}

		return d.replaceAdditionalCategories(tx, &event, additionalCategoryIDs)
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) Update(ctx context.Context, event Event, additionalCategoryIDs []uint) (Event, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("AdditionalCategories", "PrimaryCategory", "CreatedBy").Save(&event).Error; err != nil {
			return err
		}

		return d.replaceAdditionalCategories(tx, &event, additionalCategoryIDs)
	})
	if err != nil {
		return Event{}, err
	}

	return event, nil
}

func (d *EventDAO) replaceAdditionalCategories(tx *gorm.DB, event *Event, categoryIDs []uint) error {
	categories := make([]EventCategory, len(categoryIDs))
	for i, id := range categoryIDs {
		categories[i] = EventCategory{ID: id}
	}

	return tx.Model(event).Association("AdditionalCategories").Replace(categories)
}

// SaveLifecycle persists the status and audit columns mutated by a
// lifecycle transition without touching associations.
func (d *EventDAO) SaveLifecycle(ctx context.Context, event Event) (Event, error) {
	result := d.db.WithContext(ctx).
		Model(&Event{ID: event.ID}).
		Select(
			"status", "is_featured",
			"reviewed_by", "reviewed_at", "rejection_reason",
			"published_by", "published_at",
			"unpublished_by", "unpublished_at",
			"archived_by", "archived_at",
			"featured_by", "featured_at",
		).
		Updates(&event)
	if result.Error != nil {
		return Event{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Event{}, ErrEventNotFound
	}

	return event, nil
}

func (d *EventDAO) FindByID(ctx context.Context, id uint) (Event, error) {
	var event Event

	result := d.db.WithContext(ctx).
		Preload("PrimaryCategory").
		Preload("AdditionalCategories").
		First(&event, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Event{}, ErrEventNotFound
		}

		return Event{}, result.Error
	}

	return event, nil
}

// ListPublished drives every public listing. Archived and other
// non-published rows never appear here.
func (d *EventDAO) ListPublished(ctx context.Context, filter EventFilter) ([]Event, error) {
	query := d.db.WithContext(ctx).
		Preload("PrimaryCategory").
		Preload("AdditionalCategories").
		Where("status = ?", "PUBLISHED")

	if filter.Query != "" {
		pattern := "%" + filter.Query + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
	}
	if filter.CategoryID != 0 {
		query = query.Where(
			"primary_category_id = ? OR id IN (SELECT event_id FROM event_additional_categories WHERE event_category_id = ?)",
			filter.CategoryID, filter.CategoryID,
		)
	}
	if filter.District != "" {
		query = query.Where("district = ?", filter.District)
	}
	if filter.FeaturedOnly {
		query = query.Where("is_featured = ?", true)
	}

	var events []Event
	result := query.Order("date").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) ListByCreator(ctx context.Context, creatorID uint) ([]Event, error) {
	var events []Event

	result := d.db.WithContext(ctx).
		Preload("PrimaryCategory").
		Preload("AdditionalCategories").
		Where("created_by_id = ?", creatorID).
		Order("created_at DESC").
		Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

func (d *EventDAO) ListAll(ctx context.Context, status string) ([]Event, error) {
	query := d.db.WithContext(ctx).
		Preload("PrimaryCategory").
		Preload("AdditionalCategories")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var events []Event
	result := query.Order("created_at DESC").Find(&events)
	if result.Error != nil {
		return nil, result.Error
	}

	return events, nil
}

// IncrementRegistrationCount applies the delta as a single atomic update
// so concurrent registrations never lose a count.
func (d *EventDAO) IncrementRegistrationCount(ctx context.Context, eventID uint, delta int) error {
	return d.db.WithContext(ctx).
		Model(&Event{}).
		Where("id = ?", eventID).
		UpdateColumn("registration_count", gorm.Expr("registration_count + ?", delta)).
		Error
}

// RecountRegistrations recomputes the cached counter from source of truth.
func (d *EventDAO) RecountRegistrations(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("event_id = ?", eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

func (d *EventDAO) InsertLike(ctx context.Context, eventID, userID uint) error {
	// Revive a soft-deleted like so the pair stays unique.
	var existing EventLike
	err := d.db.WithContext(ctx).Unscoped().
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&existing).Error
	if err == nil {
		if !existing.DeletedAt.Valid {
			return ErrAlreadyLiked
		}

		return d.db.WithContext(ctx).Unscoped().
			Model(&existing).
			Update("deleted_at", nil).
			Error
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	like := EventLike{EventID: eventID, UserID: userID}
	if err := d.db.WithContext(ctx).Create(&like).Error; err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return ErrAlreadyLiked
		}

		return err
	}

	return nil
}

func (d *EventDAO) DeleteLike(ctx context.Context, eventID, userID uint) error {
	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Delete(&EventLike{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLikeNotFound
	}

	return nil
}

func (d *EventDAO) CountLikes(ctx context.Context, eventID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&EventLike{}).
		Where("event_id = ?", eventID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}
