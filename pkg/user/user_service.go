package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const (
	defaultViewPastWeeks   = 4
	defaultViewFutureWeeks = 2
)

type Service interface {
	CreateUser(ctx context.Context, user User) (User, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	GetCurrentUser(ctx context.Context) (User, error)
	UpdateCurrentSettings(ctx context.Context, settings Settings) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
}

type ServiceImpl struct {
	repo Repo
}

func NewUserService(repo Repo) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	user.Uid = uuid.NewString()
	if user.Settings.CalendarId == "" {
		user.Settings.CalendarId = "primary"
	}
	if user.Settings.ViewPastWeeks == 0 {
		user.Settings.ViewPastWeeks = defaultViewPastWeeks
	}
	if user.Settings.ViewFutureWeeks == 0 {
		user.Settings.ViewFutureWeeks = defaultViewFutureWeeks
	}
	id, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return User{}, fmt.Errorf("failed to create user: %w", err)
	}
	user.Id = id
	return user, nil
}

func (s *ServiceImpl) GetUser(ctx context.Context, id int) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	return s.repo.GetUserByUid(ctx, uid)
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	return CurrentUser(ctx)
}

func (s *ServiceImpl) UpdateCurrentSettings(ctx context.Context, settings Settings) (User, error) {
	current, err := CurrentUser(ctx)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.UpdateSettings(ctx, current.Id, settings); err != nil {
		return User{}, fmt.Errorf("failed to update settings: %w", err)
	}
	current.Settings = settings
	return current, nil
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAllUsers(ctx)
}
