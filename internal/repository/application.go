package repository

import (
	"context"
	"fmt"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository/dao"
)

var (
	ErrApplicationNotFound = dao.ErrApplicationNotFound
	ErrApplicationPending  = dao.ErrApplicationPending
)

type ApplicationDAO interface {
	Insert(ctx context.Context, application dao.AdminApplication) (dao.AdminApplication, error)
	FindByID(ctx context.Context, id uint) (dao.AdminApplication, error)
	List(ctx context.Context, status string) ([]dao.AdminApplication, error)
	UpdateReview(ctx context.Context, application dao.AdminApplication, promoteRole string) error
}

type ApplicationRepository struct {
	dao ApplicationDAO
}

func NewApplicationRepository(dao ApplicationDAO) *ApplicationRepository {
	return &ApplicationRepository{
		dao: dao,
	}
}

func (r *ApplicationRepository) daoToDomain(a dao.AdminApplication) domain.HostApplication {
	return domain.HostApplication{
		ID:               a.ID,
		UserID:           a.UserID,
		OrganizationName: a.OrganizationName,
		Motivation:       a.Motivation,
		Status:           domain.ApplicationStatus(a.Status),
		ReviewedBy:       a.ReviewedBy,
		ReviewedAt:       a.ReviewedAt,
		CreatedAt:        a.CreatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, application domain.HostApplication) (domain.HostApplication, error) {
	created, err := r.dao.Insert(ctx, dao.AdminApplication{
		UserID:           application.UserID,
		OrganizationName: application.OrganizationName,
		Motivation:       application.Motivation,
		Status:           string(application.Status),
	})
	if err != nil {
		return domain.HostApplication{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *ApplicationRepository) FindByID(ctx context.Context, id uint) (domain.HostApplication, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.HostApplication{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *ApplicationRepository) List(ctx context.Context, status domain.ApplicationStatus) ([]domain.HostApplication, error) {
	found, err := r.dao.List(ctx, string(status))
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	applications := make([]domain.HostApplication, len(found))
	for i, a := range found {
		applications[i] = r.daoToDomain(a)
	}

	return applications, nil
}

// SaveReview persists the review decision; when the application was
// approved the user's role is promoted in the same transaction.
func (r *ApplicationRepository) SaveReview(ctx context.Context, application domain.HostApplication) error {
	promoteRole := ""
	if application.Status == domain.ApplicationApproved {
		promoteRole = string(domain.RoleEventAdmin)
	}

	err := r.dao.UpdateReview(ctx, dao.AdminApplication{
		ID:         application.ID,
		UserID:     application.UserID,
		Status:     string(application.Status),
		ReviewedBy: application.ReviewedBy,
		ReviewedAt: application.ReviewedAt,
	}, promoteRole)
	if err != nil {
		return fmt.Errorf("r.dao.UpdateReview -> %w", err)
	}

	return nil
}
