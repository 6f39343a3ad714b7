package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pumpcare/connect/internal/model"
)

type OperatorRepo struct{ DB *sql.DB }

func NewOperatorRepo(db *sql.DB) *OperatorRepo { return &OperatorRepo{DB: db} }

// Create inserts a pump operator and returns its ID.
func (r *OperatorRepo) Create(ctx context.Context, o model.Operator) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO pump_operator (pump_operator_name, contact_no, po_email, po_password, no_of_lines) VALUES (?,?,?,?,?)",
		o.Name, o.ContactNo, strings.ToLower(strings.TrimSpace(o.Email)), o.PasswordHash, o.NoOfLines)
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

// GetByEmail fetches an operator by normalized email.
func (r *OperatorRepo) GetByEmail(ctx context.Context, email string) (model.Operator, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var o model.Operator
	err := r.DB.QueryRowContext(ctx,
		"SELECT pump_operator_id, pump_operator_name, contact_no, po_email, po_password, no_of_lines FROM pump_operator WHERE po_email=? LIMIT 1",
		email).Scan(&o.ID, &o.Name, &o.ContactNo, &o.Email, &o.PasswordHash, &o.NoOfLines)
	if err == sql.ErrNoRows {
		return model.Operator{}, ErrNotFound
	}
	return o, err
}

// GetByID fetches an operator by id.
func (r *OperatorRepo) GetByID(ctx context.Context, id uint64) (model.Operator, error) {
	var o model.Operator
	err := r.DB.QueryRowContext(ctx,
		"SELECT pump_operator_id, pump_operator_name, contact_no, po_email, po_password, no_of_lines FROM pump_operator WHERE pump_operator_id=? LIMIT 1",
		id).Scan(&o.ID, &o.Name, &o.ContactNo, &o.Email, &o.PasswordHash, &o.NoOfLines)
	if err == sql.ErrNoRows {
		return model.Operator{}, ErrNotFound
	}
	return o, err
}

// Update rewrites the mutable columns; the password hash is replaced only
// when supplied.
func (r *OperatorRepo) Update(ctx context.Context, o model.Operator) error {
	var (
		res sql.Result
		err error
	)
	if o.PasswordHash != "" {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE pump_operator SET pump_operator_name=?, contact_no=?, po_email=?, po_password=?, no_of_lines=? WHERE pump_operator_id=?",
			o.Name, o.ContactNo, strings.ToLower(strings.TrimSpace(o.Email)), o.PasswordHash, o.NoOfLines, o.ID)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE pump_operator SET pump_operator_name=?, contact_no=?, po_email=?, no_of_lines=? WHERE pump_operator_id=?",
			o.Name, o.ContactNo, strings.ToLower(strings.TrimSpace(o.Email)), o.NoOfLines, o.ID)
	}
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRows(res)
}

// Delete removes an operator by id.
func (r *OperatorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM pump_operator WHERE pump_operator_id=?", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// List returns all operators without password hashes.
func (r *OperatorRepo) List(ctx context.Context) ([]model.Operator, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT pump_operator_id, pump_operator_name, contact_no, po_email, no_of_lines FROM pump_operator")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Operator{}
	for rows.Next() {
		var o model.Operator
		if err := rows.Scan(&o.ID, &o.Name, &o.ContactNo, &o.Email, &o.NoOfLines); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
