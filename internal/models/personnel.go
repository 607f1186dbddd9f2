package models

import "time"

// Personnel is a roster entry from the plant master data.
type Personnel struct {
	ID        string    `db:"id" json:"id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Position  string    `db:"position" json:"position"`
	Crew      *Crew     `db:"crew" json:"crew,omitempty"`
	Eligible  bool      `db:"eligible" json:"eligible"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// PersonnelFilter scopes roster queries.
type PersonnelFilter struct {
	Crew         *Crew
	EligibleOnly bool
	Search       string
}
