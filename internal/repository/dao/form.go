package dao

import (
	"context"
	"encoding/json"
	"errors"

	"gorm.io/gorm"
)

var ErrQuestionNotFound = errors.New("form question not found")

type RegistrationFormQuestion struct {
	ID uint `gorm:"primaryKey"`

	EventID uint  `gorm:"not null;index;uniqueIndex:idx_form_questions_event_category_key"`
	Event   Event `gorm:"foreignKey:EventID;constraint:OnDelete:CASCADE"`

	QuestionCategory string `gorm:"not null;uniqueIndex:idx_form_questions_event_category_key"`
	QuestionKey      string `gorm:"not null;uniqueIndex:idx_form_questions_event_category_key"`
	QuestionText     string `gorm:"not null"`
	QuestionType     string `gorm:"not null"`

	// Options holds the JSON-encoded option list for dropdown and
	// multi-select questions, empty otherwise.
	Options string `gorm:"type:text"`

	IsRequired   bool `gorm:"not null;default:false"`
	DisplayOrder int  `gorm:"not null;default:0"`
	IsCustom     bool `gorm:"not null;default:false"`
}

func (q RegistrationFormQuestion) DecodeOptions() ([]string, error) {
	if q.Options == "" {
		return nil, nil
	}

	var options []string
	if err := json.Unmarshal([]byte(q.Options), &options); err != nil {
		return nil, err
	}

	return options, nil
}

func EncodeOptions(options []string) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	encoded, err := json.Marshal(options)
	if err != nil {
		return "", err
	}

	return string(encoded), nil
}

type FormDAO struct {
	db *gorm.DB
}

func NewFormDAO(db *gorm.DB) *FormDAO {
	return &FormDAO{
		db: db,
	}
}

// ReplaceForEvent swaps the full question set in one transaction so a
// concurrent read never observes a half-replaced form. Responses tied to
// the removed questions are deleted with them.
func (d *FormDAO) ReplaceForEvent(ctx context.Context, eventID uint, questions []RegistrationFormQuestion) ([]RegistrationFormQuestion, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var oldIDs []uint
		if err := tx.Model(&RegistrationFormQuestion{}).
			Where("event_id = ?", eventID).
			Pluck("id", &oldIDs).Error; err != nil {
			return err
		}

		if len(oldIDs) > 0 {
			if err := tx.Where("question_id IN ?", oldIDs).
				Delete(&RegistrationFormResponse{}).Error; err != nil {
				return err
			}
			if err := tx.Where("event_id = ?", eventID).
				Delete(&RegistrationFormQuestion{}).Error; err != nil {
				return err
			}
		}

		if len(questions) == 0 {
			return nil
		}

		return tx.Create(&questions).Error
	})
	if err != nil {
		return nil, err
	}

	return questions, nil
}

func (d *FormDAO) ListByEvent(ctx context.Context, eventID uint) ([]RegistrationFormQuestion, error) {
	var questions []RegistrationFormQuestion

	result := d.db.WithContext(ctx).
		Where("event_id = ?", eventID).
		Order("display_order").
		Find(&questions)
	if result.Error != nil {
		return nil, result.Error
	}

	return questions, nil
}
