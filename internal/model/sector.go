package model

import "time"

// Sector groups water tanks and lines under one panchayat and one operator.
type Sector struct {
	ID          uint64 `json:"sector_id"`
	Name        string `json:"sector_name"`
	PanchayatID uint64 `json:"panchayat_id"`
	OperatorID  uint64 `json:"pump_operator_id"`
	NoOfTanks   int    `json:"no_of_tanks"`
}

// Feedback is a villager-filed complaint tracked by status.
type Feedback struct {
	ID          uint64    `json:"feedback_id"`
	HouseNo     uint64    `json:"f_house_no"`
	Description string    `json:"description"`
	DateIssued  time.Time `json:"date_issued"`
	OperatorID  uint64    `json:"f_pump_operator_id"`
	Status      string    `json:"feedback_status"`
}

// Feedback status values.
const (
	FeedbackOpen     = "OPEN"
	FeedbackResolved = "RESOLVED"
)
