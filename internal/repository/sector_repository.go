package repository

import (
	"context"
	"database/sql"

	"github.com/pumpcare/connect/internal/model"
)

type SectorRepo struct{ DB *sql.DB }

func NewSectorRepo(db *sql.DB) *SectorRepo { return &SectorRepo{DB: db} }

// Create inserts a sector and returns its ID. The owning panchayat comes
// from the authenticated principal, never from client input.
func (r *SectorRepo) Create(ctx context.Context, s model.Sector) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO sector (sector_name, panchayat_id, pump_operator_id, no_of_tanks) VALUES (?,?,?,?)",
		s.Name, s.PanchayatID, s.OperatorID, s.NoOfTanks)
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

// GetByID fetches a sector by id.
func (r *SectorRepo) GetByID(ctx context.Context, id uint64) (model.Sector, error) {
	var s model.Sector
	err := r.DB.QueryRowContext(ctx,
		"SELECT sector_id, sector_name, panchayat_id, pump_operator_id, no_of_tanks FROM sector WHERE sector_id=? LIMIT 1",
		id).Scan(&s.ID, &s.Name, &s.PanchayatID, &s.OperatorID, &s.NoOfTanks)
	if err == sql.ErrNoRows {
		return model.Sector{}, ErrNotFound
	}
	return s, err
}

// Update rewrites a sector's name, operator and tank count. Ownership never
// moves between panchayats here; handlers enforce that the caller owns the
// row before calling.
func (r *SectorRepo) Update(ctx context.Context, s model.Sector) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE sector SET sector_name=?, pump_operator_id=?, no_of_tanks=? WHERE sector_id=?",
		s.Name, s.OperatorID, s.NoOfTanks, s.ID)
	if err != nil {
		return err
	}
	return requireRows(res)
}

// Delete removes a sector by id.
func (r *SectorRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.DB.ExecContext(ctx, "DELETE FROM sector WHERE sector_id=?", id)
	if err != nil {
		return err
	}
	return requireRows(res)
}
