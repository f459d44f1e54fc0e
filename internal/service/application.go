package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository"
)

var (
	ErrApplicationNotFound = repository.ErrApplicationNotFound
	ErrApplicationPending  = repository.ErrApplicationPending
	ErrApplicationResolved = domain.ErrApplicationResolved

	ErrAlreadyHost              = errors.New("user already has hosting privileges")
	ErrInvalidApplicationStatus = errors.New("review status must be APPROVED or REJECTED")
)

type ApplicationRepository interface {
	Create(ctx context.Context, application domain.HostApplication) (domain.HostApplication, error)
	FindByID(ctx context.Context, id uint) (domain.HostApplication, error)
	List(ctx context.Context, status domain.ApplicationStatus) ([]domain.HostApplication, error)
	SaveReview(ctx context.Context, application domain.HostApplication) error
}

type ApplicationService struct {
	repo     ApplicationRepository
	userRepo UserRepository
}

func NewApplicationService(repo ApplicationRepository, userRepo UserRepository) *ApplicationService {
	return &ApplicationService{
		repo:     repo,
		userRepo: userRepo,
	}
}

// Apply files a host application for a standard user. Users who can
// already host events have nothing to apply for, and a user with a
// PENDING application cannot file a second one.
func (s *ApplicationService) Apply(ctx context.Context, userID uint, organizationName, motivation string) (domain.HostApplication, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return domain.HostApplication{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if user.Role.CanHostEvents() {
		return domain.HostApplication{}, ErrAlreadyHost
	}

	created, err := s.repo.Create(ctx, domain.HostApplication{
		UserID:           userID,
		OrganizationName: organizationName,
		Motivation:       motivation,
		Status:           domain.ApplicationPending,
	})
	if err != nil {
		if errors.Is(err, ErrApplicationPending) {
			return domain.HostApplication{}, ErrApplicationPending
		}

		return domain.HostApplication{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *ApplicationService) ListApplications(ctx context.Context, status domain.ApplicationStatus, actorID uint) ([]domain.HostApplication, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return nil, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !actor.Role.IsUltimateAdmin() {
		return nil, ErrUltimateAdminOnly
	}

	applications, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, fmt.Errorf("s.repo.List -> %w", err)
	}
	if applications == nil {
		applications = []domain.HostApplication{}
	}

	return applications, nil
}

// ReviewApplication resolves a PENDING application. Approval promotes
// the applicant to EVENT_ADMIN in the same transaction as the review.
func (s *ApplicationService) ReviewApplication(ctx context.Context, applicationID uint, status domain.ApplicationStatus, actorID uint) (domain.HostApplication, error) {
	actor, err := s.userRepo.FindByID(ctx, actorID)
	if err != nil {
		return domain.HostApplication{}, fmt.Errorf("s.userRepo.FindByID -> %w", err)
	}
	if !actor.Role.IsUltimateAdmin() {
		return domain.HostApplication{}, ErrUltimateAdminOnly
	}

	application, err := s.repo.FindByID(ctx, applicationID)
	if err != nil {
		return domain.HostApplication{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	now := time.Now()
	switch status {
	case domain.ApplicationApproved:
		err = application.Approve(actor.ID, now)
	case domain.ApplicationRejected:
		err = application.Reject(actor.ID, now)
	default:
		return domain.HostApplication{}, ErrInvalidApplicationStatus
	}
	if err != nil {
		return domain.HostApplication{}, err
	}

	if err := s.repo.SaveReview(ctx, application); err != nil {
		return domain.HostApplication{}, fmt.Errorf("s.repo.SaveReview -> %w", err)
	}

	return application, nil
}
