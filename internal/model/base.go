package model

import (
	"time"
)

type (
	// A Record can be persisted by the database client, which stamps
	// identifiers and timestamps through these hooks on save.
	Record interface {
		// Key returns the record's UUID, empty until the first save.
		Key() string
		// Stamp assigns the record's UUID and creation time on the first save.
		Stamp(id string, t time.Time)
		// Touch renews the record's last update time.
		Touch(t time.Time)
	}

	// A Base carries the fields shared by every stored record.
	Base struct {
		ID        string     `json:"uuid"    msgpack:"uuid"    storm:"id"`
		CreatedAt *time.Time `json:"created" msgpack:"created" storm:"index"`
		UpdatedAt *time.Time `json:"updated" msgpack:"updated" storm:"index"`
	}
)

// Key returns the record's UUID, empty until the first save.
func (m *Base) Key() string {
	return m.ID
}

// Stamp assigns the record's UUID and creation time on the first save.
func (m *Base) Stamp(id string, t time.Time) {
	m.ID = id
	m.CreatedAt = &t
}

// Touch renews the record's last update time.
func (m *Base) Touch(t time.Time) {
	m.UpdatedAt = &t
}
