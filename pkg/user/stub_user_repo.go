package user

import "context"

// StubRepo is an in-memory Repo implementation for tests.
type StubRepo struct {
	users  map[int]User
	nextId int
}

func NewStubRepo() *StubRepo {
	return &StubRepo{users: map[int]User{}, nextId: 1}
}

func (s *StubRepo) CreateUser(_ context.Context, user User) (int, error) {
	user.Id = s.nextId
	s.nextId++
	s.users[user.Id] = user
	return user.Id, nil
}

func (s *StubRepo) GetUser(_ context.Context, id int) (User, error) {
	user, ok := s.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (s *StubRepo) GetUserByUid(_ context.Context, uid string) (User, error) {
	for _, user := range s.users {
		if user.Uid == uid {
			return user, nil
		}
	}
	return User{}, ErrUserNotFound
}

func (s *StubRepo) UpdateSettings(_ context.Context, userId int, settings Settings) error {
	user, ok := s.users[userId]
	if !ok {
		return ErrUserNotFound
	}
	user.Settings = settings
	s.users[userId] = user
	return nil
}

func (s *StubRepo) GetAllUsers(_ context.Context) ([]User, error) {
	users := make([]User, 0, len(s.users))
	for id := 1; id < s.nextId; id++ {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}
