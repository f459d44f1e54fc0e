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
	ErrAlreadyRegistered    = errors.New("user already registered for event")
	ErrRegistrationNotFound = errors.New("registration not found")
)

// Registration uses a surrogate id; the unique index on (event_id, user_id)
// keeps "one registration per pair" without conflating identity with the
// business key, so re-registering after an unregister creates a fresh row.
type Registration struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;uniqueIndex:idx_registrations_event_user"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	UserID uint `gorm:"not null;uniqueIndex:idx_registrations_event_user"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`

	RegistrationType string `gorm:"not null"`
	Status           string `gorm:"not null;default:PENDING"`

	Responses []RegistrationFormResponse `gorm:"foreignKey:RegistrationID"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type RegistrationFormResponse struct {
	ID uint `gorm:"primaryKey"`

	RegistrationID uint         `gorm:"not null;index"`
	Registration   Registration `gorm:"foreignKey:RegistrationID;constraint:OnDelete:CASCADE"`

	QuestionID uint                     `gorm:"not null;index"`
	Question   RegistrationFormQuestion `gorm:"foreignKey:QuestionID;constraint:OnDelete:CASCADE"`

	Answer string `gorm:"type:text"`
}

type RegistrationDAO struct {
	db *gorm.DB
}

func NewRegistrationDAO(db *gorm.DB) *RegistrationDAO {
	return &RegistrationDAO{
		db: db,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// Insert creates an EXTERNAL registration and bumps the event's cached
// counter in the same transaction. Duplicate (event, user) pairs surface
// as ErrAlreadyRegistered via the unique index, so concurrent submissions
// cannot race past an existence check.
func (d *RegistrationDAO) Insert(ctx context.Context, registration Registration) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		return tx.Model(&Event{}).
			Where("id = ?", registration.EventID).
			UpdateColumn("registration_count", gorm.Expr("registration_count + ?", 1)).
			Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Registration{}, ErrAlreadyRegistered
		}

		return Registration{}, err
	}

	return registration, nil
}

// InsertWithResponses creates a FORM registration and its responses as one
// atomic unit. A failing response insert rolls back the registration row
// and the counter bump.
func (d *RegistrationDAO) InsertWithResponses(ctx context.Context, registration Registration, responses []RegistrationFormResponse) (Registration, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&registration).Error; err != nil {
			return err
		}

		for i := range responses {
			responses[i].RegistrationID = registration.ID
		}
		if len(responses) > 0 {
			if err := tx.Create(&responses).Error; err != nil {
				return err
			}
		}

		return tx.Model(&Event{}).
			Where("id = ?", registration.EventID).
			UpdateColumn("registration_count", gorm.Expr("registration_count + ?", 1)).
			Error
	})
	if err != nil {
		if isUniqueViolation(err) {
			return Registration{}, ErrAlreadyRegistered
		}

		return Registration{}, err
	}

	registration.Responses = responses

	return registration, nil
}

// DeleteByEventAndUser removes the registration and its responses. The
// bool reports whether a row actually existed; callers treat both
// outcomes as success.
func (d *RegistrationDAO) DeleteByEventAndUser(ctx context.Context, eventID, userID uint) (bool, error) {
	deleted := false

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var registration Registration
		err := tx.Where("event_id = ? AND user_id = ?", eventID, userID).
			First(&registration).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}

		if err := tx.Where("registration_id = ?", registration.ID).
			Delete(&RegistrationFormResponse{}).Error; err != nil {
			return err
		}
		if err := tx.Delete(&registration).Error; err != nil {
			return err
		}

		deleted = true

		return tx.Model(&Event{}).
			Where("id = ?", eventID).
			UpdateColumn("registration_count", gorm.Expr("registration_count - ?", 1)).
			Error
	})
	if err != nil {
		return false, err
	}

	return deleted, nil
}

func (d *RegistrationDAO) FindByID(ctx context.Context, id uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		Preload("User").
		First(&registration, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) FindByEventAndUser(ctx context.Context, eventID, userID uint) (Registration, error) {
	var registration Registration

	result := d.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		First(&registration)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Registration{}, ErrRegistrationNotFound
		}

		return Registration{}, result.Error
	}

	return registration, nil
}

func (d *RegistrationDAO) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := d.db.WithContext(ctx).
		Model(&Registration{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRegistrationNotFound
	}

	return nil
}

func (d *RegistrationDAO) ListByEvent(ctx context.Context, eventID uint) ([]Registration, error) {
	var registrations []Registration

	result := d.db.WithContext(ctx).
		Preload("User").
		Preload("Responses").
		Preload("Responses.Question").
		Where("event_id = ?", eventID).
		Order("created_at").
		Find(&registrations)
	if result.Error != nil {
		return nil, result.Error
	}

	return registrations, nil
}
