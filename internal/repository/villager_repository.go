package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/pumpcare/connect/internal/model"
)

type VillagerRepo struct{ DB *sql.DB }

func NewVillagerRepo(db *sql.DB) *VillagerRepo { return &VillagerRepo{DB: db} }

// Create inserts a villager. The house number is the primary key and must be
// provided by the caller.
func (r *VillagerRepo) Create(ctx context.Context, v model.Villager) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO villager (house_no, villager_name, contact_no, v_pump_operator_id, v_email, v_password) VALUES (?,?,?,?,?,?)",
		v.HouseNo, v.Name, v.ContactNo, v.OperatorID, strings.ToLower(strings.TrimSpace(v.Email)), v.PasswordHash)
	if isDuplicate(err) {
		return ErrDuplicate
	}
	return err
}

// GetByEmail fetches a villager by normalized email.
func (r *VillagerRepo) GetByEmail(ctx context.Context, email string) (model.Villager, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	var v model.Villager
	err := r.DB.QueryRowContext(ctx,
		"SELECT house_no, villager_name, contact_no, v_pump_operator_id, v_email, v_password FROM villager WHERE v_email=? LIMIT 1",
		email).Scan(&v.HouseNo, &v.Name, &v.ContactNo, &v.OperatorID, &v.Email, &v.PasswordHash)
	if err == sql.ErrNoRows {
		return model.Villager{}, ErrNotFound
	}
	return v, err
}

// GetByHouseNo fetches a villager by house number.
func (r *VillagerRepo) GetByHouseNo(ctx context.Context, houseNo uint64) (model.Villager, error) {
	var v model.Villager
	err := r.DB.QueryRowContext(ctx,
		"SELECT house_no, villager_name, contact_no, v_pump_operator_id, v_email, v_password FROM villager WHERE house_no=? LIMIT 1",
		houseNo).Scan(&v.HouseNo, &v.Name, &v.ContactNo, &v.OperatorID, &v.Email, &v.PasswordHash)
	if err == sql.ErrNoRows {
		return model.Villager{}, ErrNotFound
	}
	return v, err
}

// Update rewrites the mutable columns; the password hash is replaced only
// when supplied.
func (r *VillagerRepo) Update(ctx context.Context, v model.Villager) error {
	var (
		res sql.Result
		err error
	)
	if v.PasswordHash != "" {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE villager SET villager_name=?, contact_no=?, v_pump_operator_id=?, v_email=?, v_password=? WHERE house_no=?",
			v.Name, v.ContactNo, v.OperatorID, strings.ToLower(strings.TrimSpace(v.Email)), v.PasswordHash, v.HouseNo)
	} else {
		res, err = r.DB.ExecContext(ctx,
			"UPDATE villager SET villager_name=?, contact_no=?, v_pump_operator_id=?, v_email=? WHERE house_no=?",
			v.Name, v.ContactNo, v.OperatorID, strings.ToLower(strings.TrimSpace(v.Email)), v.HouseNo)
	}
	if err != nil {
		if isDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return requireRows(res)
}

// Delete removes a villager by house number.
func (r *VillagerRepo) Delete(ctx context.Context, houseNo uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM villager WHERE house_no=?", houseNo)
	if err != nil {
		return err
	}
	return requireRows(res)
}
