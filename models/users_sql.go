package models

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"ewaste/utils"
)

type sqlUserRepo struct{ db *sql.DB }

func NewSQLUserRepository(db *sql.DB) UserRepository { return &sqlUserRepo{db} }

func (r *sqlUserRepo) Create(u *User) error {
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed

	err = r.db.QueryRow(
		`INSERT INTO users(email, password, is_admin) VALUES ($1,$2,$3) RETURNING id`,
		u.Email, u.Password, u.IsAdmin,
	).Scan(&u.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// ValidateCredentials fails identically for an unknown email and a wrong
// password, so login responses never reveal whether an account exists.
func (r *sqlUserRepo) ValidateCredentials(email, plain string) (User, error) {
	var u User
	err := r.db.QueryRow(
		`SELECT id, email, password, rewards, is_admin FROM users WHERE email=$1`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.Rewards, &u.IsAdmin)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}
	if !utils.CheckPasswordHash(plain, u.Password) {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

func (r *sqlUserRepo) GetByID(id int64) (User, error) {
	var u User
	err := r.db.QueryRow(
		`SELECT id, email, rewards, is_admin FROM users WHERE id=$1`, id).
		Scan(&u.ID, &u.Email, &u.Rewards, &u.IsAdmin)
	if errors.Is(err, sql.ErrNoRows) {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}
