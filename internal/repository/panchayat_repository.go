package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pumpcare/connect/internal/model"
)

type PanchayatRepo struct{ DB *sql.DB }

func NewPanchayatRepo(db *sql.DB) *PanchayatRepo { return &PanchayatRepo{DB: db} }

// Create inserts a panchayat and returns its ID.
func (r *PanchayatRepo) Create(ctx context.Context, p model.Panchayat) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO panchayat (panchayat_name, panchayat_loc, pdo_name, contact_no, p_email, p_password) VALUES (?,?,?,?,?,?)",
		p.Name, p.Location, p.PDOName, p.ContactNo, strings.ToLower(strings.TrimSpace(p.Email)), p.PasswordHash)
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

// GetByEmail fetches a panchayat by normalized email.
func (r *PanchayatRepo) GetByEmail(ctx context.Context, email string) (model.Panchayat, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var p model.Panchayat
	err := r.DB.QueryRowContext(ctx,
		"SELECT panchayat_id, panchayat_name, panchayat_loc, pdo_name, contact_no, p_email, p_password FROM panchayat WHERE p_email=? LIMIT 1",
		email).Scan(&p.ID, &p.Name, &p.Location, &p.PDOName, &p.ContactNo, &p.Email, &p.PasswordHash)
	if err == sql.ErrNoRows {
		return model.Panchayat{}, ErrNotFound
	}
	return p, err
}

// GetByID fetches a panchayat by id.
func (r *PanchayatRepo) GetByID(ctx context.Context, id uint64) (model.Panchayat, error) {
	var p model.Panchayat
	err := r.DB.QueryRowContext(ctx,
		"SELECT panchayat_id, panchayat_name, panchayat_loc, pdo_name, contact_no, p_email, p_password FROM panchayat WHERE panchayat_id=? LIMIT 1",
		id).Scan(&p.ID, &p.Name, &p.Location, &p.PDOName, &p.ContactNo, &p.Email, &p.PasswordHash)
	if err == sql.ErrNoRows {
		return model.Panchayat{}, ErrNotFound
	}
	return p, err
}

// Update rewrites the mutable columns. The stored password hash is replaced
// only when a new one is supplied.
func (r *PanchayatRepo) Update(ctx context.Context, p model.Panchayat) error {
	var (
		res sql.Result
		err error
	)
	if p.PasswordHash != "" {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE panchayat SET panchayat_name=?, panchayat_loc=?, pdo_name=?, contact_no=?, p_email=?, p_password=? WHERE panchayat_id=?",
			p.Name, p.Location, p.PDOName, p.ContactNo, strings.ToLower(strings.TrimSpace(p.Email)), p.PasswordHash, p.ID)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE panchayat SET panchayat_name=?, panchayat_loc=?, pdo_name=?, contact_no=?, p_email=? WHERE panchayat_id=?",
			p.Name, p.Location, p.PDOName, p.ContactNo, strings.ToLower(strings.TrimSpace(p.Email)), p.ID)
	}
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRows(res)
}

// Delete removes a panchayat by id.
func (r *PanchayatRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM panchayat WHERE panchayat_id=?", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// List returns all panchayats without password hashes.
func (r *PanchayatRepo) List(ctx context.Context) ([]model.Panchayat, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT panchayat_id, panchayat_name, panchayat_loc, pdo_name, contact_no, p_email FROM panchayat")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Panchayat{}
	for rows.Next() {
		var p model.Panchayat
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.PDOName, &p.ContactNo, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Search runs a LIKE substring match over the descriptive panchayat columns.
func (r *PanchayatRepo) Search(ctx context.Context, query string) ([]model.Panchayat, error) {
	pat := "%" + query + "%"
	rows, err := r.DB.QueryContext(ctx,
		"SELECT panchayat_id, panchayat_name, panchayat_loc, pdo_name, contact_no, p_email FROM panchayat "+
			"WHERE panchayat_name LIKE ? OR panchayat_loc LIKE ? OR pdo_name LIKE ? OR contact_no LIKE ? OR p_email LIKE ?",
		pat, pat, pat, pat, pat)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Panchayat{}
	for rows.Next() {
		var p model.Panchayat
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.PDOName, &p.ContactNo, &p.Email); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// requireRows converts a zero-rows-affected result into ErrNotFound so
// updates and deletes on missing ids surface as 404 instead of silent
// success.
func requireRows(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
