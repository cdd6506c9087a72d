package dto

import (
	"roomify/shared/constant"
	"roomify/shared/model"
	"roomify/shared/timezone"
)

// Metadata is the audit trail as clients see it. Records never touched after
// creation carry no modification fields.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(source model.Metadata) {
	m.CreatedAt = timezone.Format(source.CreatedAt, constant.DateFormat)
	m.CreatedBy = source.CreatedBy

	if !source.Modified() {
		return
	}

	m.ModifiedAt = timezone.Format(source.ModifiedAt, constant.DateFormat)
	m.ModifiedBy = source.ModifiedBy
}
