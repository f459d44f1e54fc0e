package repository

import (
	"context"
	"fmt"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository/dao"
)

var ErrCategoryNotFound = dao.ErrCategoryNotFound

type CategoryDAO interface {
	List(ctx context.Context) ([]dao.EventCategory, error)
	FindByIDs(ctx context.Context, ids []uint) ([]dao.EventCategory, error)
	FindBySlug(ctx context.Context, slug string) (dao.EventCategory, error)
}

type CategoryRepository struct {
	dao CategoryDAO
}

func NewCategoryRepository(dao CategoryDAO) *CategoryRepository {
	return &CategoryRepository{
		dao: dao,
	}
}

func (r *CategoryRepository) daoToDomain(c dao.EventCategory) domain.EventCategory {
	return domain.EventCategory{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
	}
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.EventCategory, error) {
	found, err := r.dao.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.List -> %w", err)
	}

	categories := make([]domain.EventCategory, len(found))
	for i, c := range found {
		categories[i] = r.daoToDomain(c)
	}

	return categories, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []uint) ([]domain.EventCategory, error) {
	found, err := r.dao.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByIDs -> %w", err)
	}

	categories := make([]domain.EventCategory, len(found))
	for i, c := range found {
		categories[i] = r.daoToDomain(c)
	}

	return categories, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (domain.EventCategory, error) {
	found, err := r.dao.FindBySlug(ctx, slug)
	if err != nil {
		return domain.EventCategory{}, fmt.Errorf("r.dao.FindBySlug -> %w", err)
	}

	return r.daoToDomain(found), nil
}
