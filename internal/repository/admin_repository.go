package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pumpcare/connect/internal/model"
)

type AdminRepo struct{ DB *sql.DB }

func NewAdminRepo(db *sql.DB) *AdminRepo { return &AdminRepo{DB: db} }

// Create inserts an admin and returns its ID. The password must already be
// hashed by the caller.
func (r *AdminRepo) Create(ctx context.Context, name, email, passwordHash string) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO admin (admin_name, admin_email, admin_password) VALUES (?,?,?)",
		name, email, passwordHash)
	if err != nil {
		if isDuplicate(err) {
			return 0, ErrDuplicate
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// GetByEmail fetches an admin by normalized email.
func (r *AdminRepo) GetByEmail(ctx context.Context, email string) (model.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var a model.Admin
	err := r.DB.QueryRowContext(ctx,
		"SELECT admin_id, admin_name, admin_email, admin_password FROM admin WHERE admin_email=? LIMIT 1",
		email).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash)
	if err == sql.ErrNoRows {
		return model.Admin{}, ErrNotFound
	}
	return a, err
}
