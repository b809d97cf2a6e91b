package store

import (
	"fmt"
	"strings"

	"github.com/bookwell/bookwell/log"
	"github.com/bookwell/bookwell/model"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func (s *Store) GetUser(find *model.FindUser) (*model.User, error) {
	if find.ID != nil {
		if cache, ok := s.UserCache.Load(*find.ID); ok {
			return cache.(*model.User), nil
		}
	}

	list, err := s.ListUsers(find)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}

	user := list[0]
	s.UserCache.Store(user.ID, user)
	return user, nil
}

func (s *Store) ListUsers(find *model.FindUser) ([]*model.User, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = ?"), append(args, *v)
	}
	if v := find.Username; v != nil {
		where, args = append(where, "username = ?"), append(args, *v)
	}
	if v := find.Role; v != nil {
		where, args = append(where, "role = ?"), append(args, *v)
	}
	if v := find.Email; v != nil {
		where, args = append(where, "email = ?"), append(args, *v)
	}
	if v := find.RowStatus; v != nil {
		where, args = append(where, "row_status = ?"), append(args, *v)
	}

	// Here will return password_hash, so need to be careful.
	// If need to response to client, use response.UserResponse to remove it.
	query := `
		SELECT
			id,
			row_status,
			created_ts,
			updated_ts,
			username,
			role,
			email,
			nickname,
			password_hash,
			avatar_url,
			last_login_ts
		FROM user
		WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_ts DESC`
	if v := find.Limit; v != nil {
		query += fmt.Sprintf(" LIMIT %d", *v)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		log.Debug("Error querying users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	list := make([]*model.User, 0)
	for rows.Next() {
		var user model.User
		if err := rows.Scan(
			&user.ID,
			&user.RowStatus,
			&user.CreatedTs,
			&user.UpdatedTs,
			&user.Username,
			&user.Role,
			&user.Email,
			&user.Nickname,
			&user.PasswordHash,
			&user.AvatarURL,
			&user.LastLoginTs,
		); err != nil {
			return nil, err
		}
		list = append(list, &user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return list, nil
}

func (s *Store) CreateUser(create *model.User) (*model.User, error) {
	fields := []string{"`username`", "`role`", "`email`", "`nickname`", "`password_hash`", "`avatar_url`"}
	placeholder := []string{"?", "?", "?", "?", "?", "?"}
	args := []any{create.Username, create.Role, create.Email, create.Nickname, create.PasswordHash, create.AvatarURL}
	stmt := "INSERT INTO user (" + strings.Join(fields, ", ") + ") VALUES (" + strings.Join(placeholder, ", ") +
		") RETURNING id, row_status, created_ts, updated_ts, username, role, email, nickname, avatar_url, last_login_ts"

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var user model.User
	if err := tx.QueryRow(stmt, args...).Scan(
		&user.ID,
		&user.RowStatus,
		&user.CreatedTs,
		&user.UpdatedTs,
		&user.Username,
		&user.Role,
		&user.Email,
		&user.Nickname,
		&user.AvatarURL,
		&user.LastLoginTs,
	); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	user.PasswordHash = create.PasswordHash
	return &user, nil
}

func (s *Store) SetLastLogin(userID int) error {
	stmt := `UPDATE user SET last_login_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, userID); err != nil {
		return errors.Wrap(err, "store: unable to update last login date")
	}
	return nil
}

// UpdateUserProfile updates nickname and avatar; nil fields stay untouched.
func (s *Store) UpdateUserProfile(userID int, update *model.UserProfileUpdateRequest) (*model.User, error) {
	set, args := []string{}, []any{}
	if v := update.Nickname; v != nil {
		set, args = append(set, "nickname = ?"), append(args, *v)
	}
	if v := update.AvatarURL; v != nil {
		set, args = append(set, "avatar_url = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return s.GetUser(&model.FindUser{ID: &userID})
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, userID)

	stmt := `UPDATE user SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, err
	}

	s.UserCache.Delete(userID)
	return s.GetUser(&model.FindUser{ID: &userID})
}

// UpdateUser applies the admin-side changes: role and row status.
func (s *Store) UpdateUser(userID int, update *model.UserUpdateRequest) (*model.User, error) {
	set, args := []string{}, []any{}
	if v := update.Role; v != nil {
		set, args = append(set, "role = ?"), append(args, *v)
	}
	if v := update.RowStatus; v != nil {
		set, args = append(set, "row_status = ?"), append(args, *v)
	}
	if len(set) == 0 {
		return s.GetUser(&model.FindUser{ID: &userID})
	}
	set = append(set, "updated_ts = strftime('%s', 'now')")
	args = append(args, userID)

	stmt := `UPDATE user SET ` + strings.Join(set, ", ") + ` WHERE id = ?`
	if _, err := s.db.Exec(stmt, args...); err != nil {
		return nil, err
	}

	s.UserCache.Delete(userID)
	return s.GetUser(&model.FindUser{ID: &userID})
}

func (s *Store) UpdateUserPassword(userID int, passwordHash string) error {
	stmt := `UPDATE user SET password_hash = ?, updated_ts = strftime('%s', 'now') WHERE id = ?`
	if _, err := s.db.Exec(stmt, passwordHash, userID); err != nil {
		return errors.Wrap(err, "store: unable to update password")
	}
	s.UserCache.Delete(userID)
	return nil
}
