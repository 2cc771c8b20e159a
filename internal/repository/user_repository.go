package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/solvely-pub/internal/model"
)

const mysqlDuplicateEntry = 1062

const selectUser = "SELECT id,username,pwd,salt,email,createdAt,updatedAt,deletedAt FROM `user`"

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// FindByUsername fetches the live user with the given username.  A miss
// yields ErrNotFound.
func (r *UserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	row := r.DB.QueryRowContext(ctx,
		selectUser+" WHERE username=? AND deletedAt IS NULL LIMIT 1", username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("find user %q: %w", username, err)
	}
	return u, nil
}

// Create inserts a user and returns its ID.  Pwd and Salt must already be
// computed by the caller.
func (r *UserRepo) Create(ctx context.Context, u model.User) (uint64, error) {
	now := time.Now().UTC()
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO `user` (username,pwd,salt,email,createdAt,updatedAt) VALUES (?,?,?,?,?,?)",
		u.Username, u.Pwd, u.Salt, u.Email, now, now)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
			return 0, ErrUsernameExists
		}
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// UpdatePassword replaces the stored ciphertext and salt of a live user.
func (r *UserRepo) UpdatePassword(ctx context.Context, username, pwd, salt string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE `user` SET pwd=?, salt=?, updatedAt=? WHERE username=? AND deletedAt IS NULL",
		pwd, salt, time.Now().UTC(), username)
	if err != nil {
		return fmt.Errorf("update password %q: %w", username, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u       model.User
		deleted sql.NullTime
	)
	err := row.Scan(&u.ID, &u.Username, &u.Pwd, &u.Salt, &u.Email, &u.CreatedAt, &u.UpdatedAt, &deleted)
	if err != nil {
		return model.User{}, err
	}
	if deleted.Valid {
		t := deleted.Time
		u.DeletedAt = &t
	}
	return u, nil
}
