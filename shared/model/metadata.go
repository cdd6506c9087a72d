package model

import "time"

type Metadata struct {
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
	CreatedBy  string    `json:"created_by"`
	ModifiedBy string    `json:"modified_by"`
}

// NewMetadata stamps both creation and modification with the same actor and time.
func NewMetadata(user string, now time.Time) Metadata {
	return Metadata{
		CreatedAt:  now,
		ModifiedAt: now,
		CreatedBy:  user,
		ModifiedBy: user,
	}
}

// Touch records a modification.
func (m *Metadata) Touch(user string, now time.Time) {
	m.ModifiedAt = now
	m.ModifiedBy = user
}

// Modified reports whether anything was recorded after creation.
func (m Metadata) Modified() bool {
	return !m.ModifiedAt.Equal(m.CreatedAt) || m.ModifiedBy != m.CreatedBy
}
