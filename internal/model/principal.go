// Package model holds row structs for the water-network tables. JSON tags
// use the lowercase column names the API has always exposed; password hashes
// are never serialized.
package model

// Admin mirrors the `admin` table.
type Admin struct {
	ID           uint64 `json:"admin_id"`
	Name         string `json:"admin_name"`
	Email        string `json:"admin_email"`
	PasswordHash string `json:"-"`
}

// Panchayat mirrors the `panchayat` table. A panchayat owns sectors and
// registers pump operators and villagers.
type Panchayat struct {
	ID           uint64 `json:"panchayat_id"`
	Name         string `json:"panchayat_name"`
	Location     string `json:"panchayat_loc"`
	PDOName      string `json:"pdo_name"`
	ContactNo    string `json:"contact_no"`
	Email        string `json:"p_email"`
	PasswordHash string `json:"-"`
}

// Operator mirrors the `pump_operator` table.
type Operator struct {
	ID           uint64 `json:"pump_operator_id"`
	Name         string `json:"pump_operator_name"`
	ContactNo    string `json:"contact_no"`
	Email        string `json:"po_email"`
	PasswordHash string `json:"-"`
	NoOfLines    int    `json:"no_of_lines"`
}

// Villager mirrors the `villager` table. The house number is the primary key.
type Villager struct {
	HouseNo      uint64 `json:"house_no"`
	Name         string `json:"villager_name"`
	ContactNo    string `json:"contact_no"`
	OperatorID   uint64 `json:"v_pump_operator_id"`
	Email        string `json:"v_email"`
	PasswordHash string `json:"-"`
}
