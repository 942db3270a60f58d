package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

var ErrUserNotFound = errors.New("user not found")

type Repo interface {
	CreateUser(ctx context.Context, user User) (int, error)
	GetUser(ctx context.Context, id int) (User, error)
	GetUserByUid(ctx context.Context, uid string) (User, error)
	UpdateSettings(ctx context.Context, userId int, settings Settings) error
	GetAllUsers(ctx context.Context) ([]User, error)
}

type RepoImpl struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *RepoImpl {
	return &RepoImpl{db: db}
}

func (u *RepoImpl) CreateUser(ctx context.Context, user User) (int, error) {
	query := `INSERT INTO users (uid, username, display_name, timezone, calendar_id, view_past_weeks, view_future_weeks)
				VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	var id int
	err := u.db.QueryRow(ctx, query,
		user.Uid,
		user.Username,
		user.DisplayName,
		user.Settings.Timezone,
		user.Settings.CalendarId,
		user.Settings.ViewPastWeeks,
		user.Settings.ViewFutureWeeks,
	).Scan(&id)
	if err != nil {
		log.Errorf("failed to create user: %v", err)
		return 0, err
	}
	return id, nil
}

func (u *RepoImpl) GetUser(ctx context.Context, id int) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, calendar_id, view_past_weeks, view_future_weeks
				FROM users WHERE id = $1`
	return u.queryOne(ctx, query, id)
}

func (u *RepoImpl) GetUserByUid(ctx context.Context, uid string) (User, error) {
	query := `SELECT id, uid, username, display_name, timezone, calendar_id, view_past_weeks, view_future_weeks
				FROM users WHERE uid = $1`
	return u.queryOne(ctx, query, uid)
}

func (u *RepoImpl) queryOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := u.db.QueryRow(ctx, query, arg).
		Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Settings.Timezone,
			&user.Settings.CalendarId,
			&user.Settings.ViewPastWeeks,
			&user.Settings.ViewFutureWeeks,
		)
	if errors.Is(err, pgx.ErrNoRows) {
		return User{}, ErrUserNotFound
	} else if err != nil {
		log.Errorf("failed to get user: %v", err)
		return User{}, err
	}
	return user, nil
}

func (u *RepoImpl) UpdateSettings(ctx context.Context, userId int, settings Settings) error {
	query := `UPDATE users SET timezone = $1, calendar_id = $2, view_past_weeks = $3, view_future_weeks = $4
				WHERE id = $5`
	tag, err := u.db.Exec(ctx, query,
		settings.Timezone,
		settings.CalendarId,
		settings.ViewPastWeeks,
		settings.ViewFutureWeeks,
		userId,
	)
	if err != nil {
		log.Errorf("failed to update settings for user %d: %v", userId, err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (u *RepoImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	query := `SELECT id, uid, username, display_name, timezone, calendar_id, view_past_weeks, view_future_weeks
				FROM users ORDER BY id`
	rows, err := u.db.Query(ctx, query)
	if err != nil {
		log.Errorf("failed to list users: %v", err)
		return nil, err
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		var user User
		if err := rows.Scan(
			&user.Id,
			&user.Uid,
			&user.Username,
			&user.DisplayName,
			&user.Settings.Timezone,
			&user.Settings.CalendarId,
			&user.Settings.ViewPastWeeks,
			&user.Settings.ViewFutureWeeks,
		); err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
