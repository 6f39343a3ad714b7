package repository

import (
	"context"
	"database/sql"

	"github.com/pumpcare/connect/internal/model"
)

type FeedbackRepo struct{ DB *sql.DB }

func NewFeedbackRepo(db *sql.DB) *FeedbackRepo { return &FeedbackRepo{DB: db} }

// Create inserts a feedback row with OPEN status and returns its ID.
func (r *FeedbackRepo) Create(ctx context.Context, f model.Feedback) (uint64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO feedback (f_house_no, description, date_issued, f_pump_operator_id, feedback_status) VALUES (?,?,?,?,?)",
		f.HouseNo, f.Description, f.DateIssued, f.OperatorID, f.Status)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// ListRecent returns the newest feedback rows, most recent first.
func (r *FeedbackRepo) ListRecent(ctx context.Context, limit int) ([]model.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT feedback_id, f_house_no, description, date_issued, f_pump_operator_id, feedback_status FROM feedback ORDER BY date_issued DESC LIMIT ?",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

// ListByHouse returns every complaint filed from one house.
func (r *FeedbackRepo) ListByHouse(ctx context.Context, houseNo uint64) ([]model.Feedback, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT feedback_id, f_house_no, description, date_issued, f_pump_operator_id, feedback_status FROM feedback WHERE f_house_no=? ORDER BY date_issued DESC",
		houseNo)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanFeedback(rows)
}

// UpdateStatus moves a complaint to a new status.
func (r *FeedbackRepo) UpdateStatus(ctx context.Context, id uint64, status string) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE feedback SET feedback_status=? WHERE feedback_id=?", status, id)
	if err != nil {
		return err
	}
	return requireRows(res)
}

func scanFeedback(rows *sql.Rows) ([]model.Feedback, error) {
	out := []model.Feedback{}
	for rows.Next() {
		var f model.Feedback
		if err := rows.Scan(&f.ID, &f.HouseNo, &f.Description, &f.DateIssued, &f.OperatorID, &f.Status); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}
