package repository

import (
	"context"
	"fmt"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository/dao"
)

var (
	ErrAlreadyRegistered    = dao.ErrAlreadyRegistered
	ErrRegistrationNotFound = dao.ErrRegistrationNotFound
)

type RegistrationDAO interface {
	Insert(ctx context.Context, registration dao.Registration) (dao.Registration, error)
	InsertWithResponses(ctx context.Context, registration dao.Registration, responses []dao.RegistrationFormResponse) (dao.Registration, error)
	DeleteByEventAndUser(ctx context.Context, eventID, userID uint) (bool, error)
	FindByID(ctx context.Context, id uint) (dao.Registration, error)
	FindByEventAndUser(ctx context.Context, eventID, userID uint) (dao.Registration, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	ListByEvent(ctx context.Context, eventID uint) ([]dao.Registration, error)
}

type RegistrationRepository struct {
	dao RegistrationDAO
}

func NewRegistrationRepository(dao RegistrationDAO) *RegistrationRepository {
	return &RegistrationRepository{
		dao: dao,
	}
}

func (r *RegistrationRepository) daoToDomain(reg dao.Registration) domain.Registration {
	return domain.Registration{
		ID:               reg.ID,
		EventID:          reg.EventID,
		UserID:           reg.UserID,
		RegistrationType: domain.RegistrationMethod(reg.RegistrationType),
		Status:           domain.RegistrationStatus(reg.Status),
		CreatedAt:        reg.CreatedAt,
	}
}

func (r *RegistrationRepository) daoToDetail(reg dao.Registration) domain.RegistrationDetail {
	detail := domain.RegistrationDetail{
		Registration: r.daoToDomain(reg),
		UserName:     reg.User.FullName,
		UserEmail:    reg.User.Email,
	}

	for _, response := range reg.Responses {
		detail.Responses = append(detail.Responses, domain.ResponseDetail{
			QuestionID:   response.QuestionID,
			QuestionText: response.Question.QuestionText,
			Answer:       response.Answer,
		})
	}

	return detail
}

func (r *RegistrationRepository) Create(ctx context.Context, registration domain.Registration) (domain.Registration, error) {
	created, err := r.dao.Insert(ctx, dao.Registration{
		EventID:          registration.EventID,
		UserID:           registration.UserID,
		RegistrationType: string(registration.RegistrationType),
		Status:           string(registration.Status),
	})
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) CreateWithResponses(ctx context.Context, registration domain.Registration, responses []domain.FormResponse) (domain.Registration, error) {
	daoResponses := make([]dao.RegistrationFormResponse, len(responses))
	for i, response := range responses {
		daoResponses[i] = dao.RegistrationFormResponse{
			QuestionID: response.QuestionID,
			Answer:     response.Answer,
		}
	}

	created, err := r.dao.InsertWithResponses(ctx, dao.Registration{
		EventID:          registration.EventID,
		UserID:           registration.UserID,
		RegistrationType: string(registration.RegistrationType),
		Status:           string(registration.Status),
	}, daoResponses)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.InsertWithResponses -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *RegistrationRepository) DeleteByEventAndUser(ctx context.Context, eventID, userID uint) (bool, error) {
	deleted, err := r.dao.DeleteByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return false, fmt.Errorf("r.dao.DeleteByEventAndUser -> %w", err)
	}

	return deleted, nil
}

func (r *RegistrationRepository) FindByID(ctx context.Context, id uint) (domain.Registration, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) FindByEventAndUser(ctx context.Context, eventID, userID uint) (domain.Registration, error) {
	found, err := r.dao.FindByEventAndUser(ctx, eventID, userID)
	if err != nil {
		return domain.Registration{}, fmt.Errorf("r.dao.FindByEventAndUser -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *RegistrationRepository) UpdateStatus(ctx context.Context, id uint, status domain.RegistrationStatus) error {
	if err := r.dao.UpdateStatus(ctx, id, string(status)); err != nil {
		return fmt.Errorf("r.dao.UpdateStatus -> %w", err)
	}

	return nil
}

func (r *RegistrationRepository) ListByEvent(ctx context.Context, eventID uint) ([]domain.RegistrationDetail, error) {
	found, err := r.dao.ListByEvent(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.ListByEvent -> %w", err)
	}

	details := make([]domain.RegistrationDetail, len(found))
	for i, reg := range found {
		details[i] = r.daoToDetail(reg)
	}

	return details, nil
}
