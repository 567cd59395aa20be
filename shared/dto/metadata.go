package dto

import (
	"time"
	"venuebook/shared/constant"
	"venuebook/shared/model"
	"venuebook/shared/timezone"
)

// Metadata is the audit trail attached to responses. Zero timestamps render
// as empty strings.
type Metadata struct {
	CreatedAt  string `json:"created_at"`
	CreatedBy  string `json:"created_by"`
	ModifiedAt string `json:"modified_at,omitempty"`
	ModifiedBy string `json:"modified_by,omitempty"`
}

func (m *Metadata) FromModel(model model.Metadata) {
	m.CreatedAt = formatTimestamp(model.CreatedAt)
	m.CreatedBy = model.CreatedBy
	m.ModifiedAt = formatTimestamp(model.ModifiedAt)
	m.ModifiedBy = model.ModifiedBy
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return constant.Empty
	}

	return timezone.Format(t, constant.DateFormat)
}
