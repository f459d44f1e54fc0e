package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrApplicationNotFound = errors.New("host application not found")
	ErrApplicationPending  = errors.New("user already has a pending application")
)

type AdminApplication struct {
	ID uint `gorm:"primaryKey"`

	UserID uint `gorm:"not null;index"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	OrganizationName string `gorm:"not null"`
	Motivation       string `gorm:"type:text"`
	Status           string `gorm:"not null;default:PENDING"`

	ReviewedBy *uint
	ReviewedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

type ApplicationDAO struct {
	db *gorm.DB
}

func NewApplicationDAO(db *gorm.DB) *ApplicationDAO {
	return &ApplicationDAO{
		db: db,
	}
}

func (d *ApplicationDAO) Insert(ctx context.Context, application AdminApplication) (AdminApplication, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&AdminApplication{}).
			Where("user_id = ? AND status = ?", application.UserID, "PENDING").
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			return ErrApplicationPending
		}

		return tx.Create(&application).Error
	})
	if err != nil {
		return AdminApplication{}, err
	}

	return application, nil
}

func (d *ApplicationDAO) FindByID(ctx context.Context, id uint) (AdminApplication, error) {
	var application AdminApplication

	result := d.db.WithContext(ctx).Preload("User").First(&application, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return AdminApplication{}, ErrApplicationNotFound
		}

		return AdminApplication{}, result.Error
	}

	return application, nil
}

func (d *ApplicationDAO) List(ctx context.Context, status string) ([]AdminApplication, error) {
	query := d.db.WithContext(ctx).Preload("User")

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var applications []AdminApplication
	result := query.Order("created_at").Find(&applications)
	if result.Error != nil {
		return nil, result.Error
	}

	return applications, nil
}

// UpdateReview persists a review decision together with the role change,
// so an approved application can never leave the user un-promoted.
func (d *ApplicationDAO) UpdateReview(ctx context.Context, application AdminApplication, promoteRole string) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&AdminApplication{}).
			Where("id = ?", application.ID).
			Select("status", "reviewed_by", "reviewed_at").
			Updates(&application)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrApplicationNotFound
		}

		if promoteRole == "" {
			return nil
		}

		return tx.Model(&User{}).
			Where("id = ?", application.UserID).
			Update("role", promoteRole).
			Error
	})
}
