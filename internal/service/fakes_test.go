package service

import (
	"context"

	"github.com/campusway/campus-events-api/internal/domain"
	"github.com/campusway/campus-events-api/internal/repository"
)

type fakeUserRepo struct {
	users map[uint]domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[uint]domain.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func (r *fakeUserRepo) UpdateRole(_ context.Context, userID uint, role domain.Role) error {
	user, ok := r.users[userID]
	if !ok {
		return repository.ErrUserNotFound
	}
	user.Role = role
	r.users[userID] = user
	return nil
}

type likeKey struct {
	eventID uint
	userID  uint
}

type fakeEventRepo struct {
	events map[uint]domain.Event
	likes  map[likeKey]bool
	nextID uint
}

func newFakeEventRepo(events ...domain.Event) *fakeEventRepo {
	r := &fakeEventRepo{
		events: map[uint]domain.Event{},
		likes:  map[likeKey]bool{},
		nextID: 1,
	}
	for _, e := range events {
		r.events[e.ID] = e
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
	}
	return r
}

func (r *fakeEventRepo) Create(_ context.Context, event domain.Event) (domain.Event, error) {
	event.ID = r.nextID
	r.nextID++
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) Update(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) SaveLifecycle(_ context.Context, event domain.Event) (domain.Event, error) {
	if _, ok := r.events[event.ID]; !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	r.events[event.ID] = event
	return event, nil
}

func (r *fakeEventRepo) FindByID(_ context.Context, id uint) (domain.Event, error) {
	event, ok := r.events[id]
	if !ok {
		return domain.Event{}, repository.ErrEventNotFound
	}
	return event, nil
}

func (r *fakeEventRepo) ListPublished(_ context.Context, filter repository.EventFilter) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if e.Status != domain.EventPublished {
			continue
		}
		if filter.FeaturedOnly && !e.IsFeatured {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) ListByCreator(_ context.Context, creatorID uint) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if e.CreatedByID == creatorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) ListAll(_ context.Context, status domain.EventStatus) ([]domain.Event, error) {
	var out []domain.Event
	for _, e := range r.events {
		if status != "" && e.Status != status {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (r *fakeEventRepo) RecountRegistrations(_ context.Context, eventID uint) (int64, error) {
	return int64(r.events[eventID].RegistrationCount), nil
}

func (r *fakeEventRepo) Like(_ context.Context, eventID, userID uint) error {
	key := likeKey{eventID, userID}
	if r.likes[key] {
		return repository.ErrAlreadyLiked
	}
	r.likes[key] = true
	return nil
}

func (r *fakeEventRepo) Unlike(_ context.Context, eventID, userID uint) error {
	key := likeKey{eventID, userID}
	if !r.likes[key] {
		return repository.ErrLikeNotFound
	}
	delete(r.likes, key)
	return nil
}

func (r *fakeEventRepo) CountLikes(_ context.Context, eventID uint) (int64, error) {
	var n int64
	for key := range r.likes {
		if key.eventID == eventID {
			n++
		}
	}
	return n, nil
}

type fakeCategoryRepo struct {
	categories []domain.EventCategory
}

func (r *fakeCategoryRepo) List(_ context.Context) ([]domain.EventCategory, error) {
	return r.categories, nil
}

func (r *fakeCategoryRepo) FindByIDs(_ context.Context, ids []uint) ([]domain.EventCategory, error) {
	var found []domain.EventCategory
	for _, id := range ids {
		for _, c := range r.categories {
			if c.ID == id {
				found = append(found, c)
			}
		}
	}
	return found, nil
}

func (r *fakeCategoryRepo) FindBySlug(_ context.Context, slug string) (domain.EventCategory, error) {
	for _, c := range r.categories {
		if c.Slug == slug {
			return c, nil
		}
	}
	return domain.EventCategory{}, repository.ErrCategoryNotFound
}

type fakeFormRepo struct {
	questions map[uint][]domain.Question
	nextID    uint
}

func newFakeFormRepo() *fakeFormRepo {
	return &fakeFormRepo{questions: map[uint][]domain.Question{}, nextID: 1}
}

func (r *fakeFormRepo) ReplaceForEvent(_ context.Context, eventID uint, questions []domain.Question) ([]domain.Question, error) {
	stored := make([]domain.Question, len(questions))
	for i, q := range questions {
		q.ID = r.nextID
		r.nextID++
		stored[i] = q
	}
	r.questions[eventID] = stored
	return stored, nil
}

func (r *fakeFormRepo) ListByEvent(_ context.Context, eventID uint) ([]domain.Question, error) {
	return r.questions[eventID], nil
}

type regKey struct {
	eventID uint
	userID  uint
}

type fakeRegistrationRepo struct {
	registrations map[regKey]domain.Registration
	responses     map[uint][]domain.FormResponse
	details       []domain.RegistrationDetail
	nextID        uint
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{
		registrations: map[regKey]domain.Registration{},
		responses:     map[uint][]domain.FormResponse{},
		nextID:        1,
	}
}

func (r *fakeRegistrationRepo) Create(_ context.Context, registration domain.Registration) (domain.Registration, error) {
	key := regKey{registration.EventID, registration.UserID}
	if _, ok := r.registrations[key]; ok {
		return domain.Registration{}, repository.ErrAlreadyRegistered
	}
	registration.ID = r.nextID
	r.nextID++
	r.registrations[key] = registration
	return registration, nil
}

func (r *fakeRegistrationRepo) CreateWithResponses(ctx context.Context, registration domain.Registration, responses []domain.FormResponse) (domain.Registration, error) {
	created, err := r.Create(ctx, registration)
	if err != nil {
		return domain.Registration{}, err
	}
	r.responses[created.ID] = responses
	return created, nil
}

func (r *fakeRegistrationRepo) DeleteByEventAndUser(_ context.Context, eventID, userID uint) (bool, error) {
	key := regKey{eventID, userID}
	reg, ok := r.registrations[key]
	if !ok {
		return false, nil
	}
	delete(r.registrations, key)
	delete(r.responses, reg.ID)
	return true, nil
}

func (r *fakeRegistrationRepo) FindByID(_ context.Context, id uint) (domain.Registration, error) {
	for _, reg := range r.registrations {
		if reg.ID == id {
			return reg, nil
		}
	}
	return domain.Registration{}, repository.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) FindByEventAndUser(_ context.Context, eventID, userID uint) (domain.Registration, error) {
	reg, ok := r.registrations[regKey{eventID, userID}]
	if !ok {
		return domain.Registration{}, repository.ErrRegistrationNotFound
	}
	return reg, nil
}

func (r *fakeRegistrationRepo) UpdateStatus(_ context.Context, id uint, status domain.RegistrationStatus) error {
	for key, reg := range r.registrations {
		if reg.ID == id {
			reg.Status = status
			r.registrations[key] = reg
			return nil
		}
	}
	return repository.ErrRegistrationNotFound
}

func (r *fakeRegistrationRepo) ListByEvent(_ context.Context, eventID uint) ([]domain.RegistrationDetail, error) {
	var out []domain.RegistrationDetail
	for _, d := range r.details {
		if d.EventID == eventID {
			out = append(out, d)
		}
	}
	return out, nil
}

type fakeApplicationRepo struct {
	applications map[uint]domain.HostApplication
	userRepo     *fakeUserRepo
	nextID       uint
}

func newFakeApplicationRepo(userRepo *fakeUserRepo) *fakeApplicationRepo {
	return &fakeApplicationRepo{
		applications: map[uint]domain.HostApplication{},
		userRepo:     userRepo,
		nextID:       1,
	}
}

func (r *fakeApplicationRepo) Create(_ context.Context, application domain.HostApplication) (domain.HostApplication, error) {
	for _, a := range r.applications {
		if a.UserID == application.UserID && a.Status == domain.ApplicationPending {
			return domain.HostApplication{}, repository.ErrApplicationPending
		}
	}
	application.ID = r.nextID
	r.nextID++
	r.applications[application.ID] = application
	return application, nil
}

func (r *fakeApplicationRepo) FindByID(_ context.Context, id uint) (domain.HostApplication, error) {
	application, ok := r.applications[id]
	if !ok {
		return domain.HostApplication{}, repository.ErrApplicationNotFound
	}
	return application, nil
}

func (r *fakeApplicationRepo) List(_ context.Context, status domain.ApplicationStatus) ([]domain.HostApplication, error) {
	var out []domain.HostApplication
	for _, a := range r.applications {
		if status != "" && a.Status != status {
			continue
		}
		out = append(out, a)
	}
	return out, nil
}

func (r *fakeApplicationRepo) SaveReview(ctx context.Context, application domain.HostApplication) error {
	if _, ok := r.applications[application.ID]; !ok {
		return repository.ErrApplicationNotFound
	}
	r.applications[application.ID] = application

	if application.Status == domain.ApplicationApproved {
		return r.userRepo.UpdateRole(ctx, application.UserID, domain.RoleEventAdmin)
	}
	return nil
}
