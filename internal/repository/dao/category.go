package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrCategoryNotFound = errors.New("event category not found")

type EventCategory struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"not null"`
	Slug        string `gorm:"unique;not null"`
	Description string
}

type CategoryDAO struct {
	db *gorm.DB
}

func NewCategoryDAO(db *gorm.DB) *CategoryDAO {
	return &CategoryDAO{
		db: db,
	}
}

func (d *CategoryDAO) List(ctx context.Context) ([]EventCategory, error) {
	var categories []EventCategory

	result := d.db.WithContext(ctx).Order("name").Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *CategoryDAO) FindByIDs(ctx context.Context, ids []uint) ([]EventCategory, error) {
	var categories []EventCategory

	result := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&categories)
	if result.Error != nil {
		return nil, result.Error
	}

	return categories, nil
}

func (d *CategoryDAO) FindBySlug(ctx context.Context, slug string) (EventCategory, error) {
	var category EventCategory

	result := d.db.WithContext(ctx).First(&category, "slug = ?", slug)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return EventCategory{}, ErrCategoryNotFound
		}

		return EventCategory{}, result.Error
	}

	return category, nil
}

// Seed inserts the category catalog if missing. Slugs are stable, so the
// seed is idempotent across restarts.
func Seed(db *gorm.DB) error {
	categories := []EventCategory{
		{Name: "Technology", Slug: "technology", Description: "Hackathons, tech talks and coding workshops"},
		{Name: "Cultural", Slug: "cultural", Description: "Music, dance, theatre and art festivals"},
		{Name: "Sports", Slug: "sports", Description: "Tournaments, matches and fitness meets"},
		{Name: "Academic", Slug: "academic", Description: "Seminars, conferences and guest lectures"},
		{Name: "Social", Slug: "social", Description: "Volunteering drives and community meetups"},
		{Name: "Career", Slug: "career", Description: "Job fairs, recruitment drives and mentorship"},
	}

	for _, category := range categories {
		result := db.Where(EventCategory{Slug: category.Slug}).FirstOrCreate(&category)
		if result.Error != nil {
			return result.Error
		}
	}

	return nil
}
