package repository

import (
	"context"
	"fmt"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository/dao"
)

var ErrQuestionNotFound = dao.ErrQuestionNotFound

type FormDAO interface {
	ReplaceForEvent(ctx context.Context, eventID uint, questions []dao.RegistrationFormQuestion) ([]dao.RegistrationFormQuestion, error)
	ListByEvent(ctx context.Context, eventID uint) ([]dao.RegistrationFormQuestion, error)
}

type FormRepository struct {
	dao FormDAO
}

func NewFormRepository(dao FormDAO) *FormRepository {
	return &FormRepository{
		dao: dao,
	}
}

func (r *FormRepository) domainToDao(q domain.Question) (dao.RegistrationFormQuestion, error) {
	options, err := dao.EncodeOptions(q.Options)
	if err != nil {
		return dao.RegistrationFormQuestion{}, err
	}

	return dao.RegistrationFormQuestion{
		ID:               q.ID,
		EventID:          q.EventID,
		QuestionCategory: q.QuestionCategory,
		QuestionKey:      q.QuestionKey,
		QuestionText:     q.QuestionText,
		QuestionType:     string(q.QuestionType),
		Options:          options,
		IsRequired:       q.IsRequired,
		DisplayOrder:     q.DisplayOrder,
		IsCustom:         q.IsCustom,
	}, nil
}

func (r *FormRepository) daoToDomain(q dao.RegistrationFormQuestion) (domain.Question, error) {
	options, err := q.DecodeOptions()
	if err != nil {
		return domain.Question{}, err
	}

	return domain.Question{
		ID:               q.ID,
		EventID:          q.EventID,
		QuestionCategory: q.QuestionCategory,
		QuestionKey:      q.QuestionKey,
		QuestionText:     q.QuestionText,
		QuestionType:     domain.QuestionType(q.QuestionType),
		Options:          options,
		IsRequired:       q.IsRequired,
		DisplayOrder:     q.DisplayOrder,
		IsCustom:         q.IsCustom,
	}, nil
}

func (r *FormRepository) daosToDomain(questions []dao.RegistrationFormQuestion) ([]domain.Question, error) {
	converted := make([]domain.Question, len(questions))
	for i, q := range questions {
		question, err := r.daoToDomain(q)
		if err != nil {
			return nil, err
		}
		converted[i] = question
	}
	return converted, nil
}

func (r *FormRepository) ReplaceForEvent(ctx context.Context, eventID uint, questions []domain.Question) ([]domain.Question, error) {
	daoQuestions := make([]dao.RegistrationFormQuestion, len(questions))
	for i, q := range questions {
		daoQuestion, err := r.domainToDao(q)
		if err != nil {
			return nil, fmt.Errorf("r.domainToDao -> %w", err)
		}
		daoQuestions[i] = daoQuestion
	}

	replaced, err := r.dao.ReplaceForEvent(ctx, eventID, daoQuestions)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ReplaceForEvent -> %w", err)
	}

	return r.daosToDomain(replaced)
}

func (r *FormRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.Question, error) {
	found, err := r.dao.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	return r.daosToDomain(found)
}
