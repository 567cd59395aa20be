package model

import "venuebook/shared/model"

const (
	TableName  = "districts"
	EntityName = "district"

	FieldID   = "id"
	FieldName = "name"
)

type District struct {
	ID   string `db:"id"`
	Name string `db:"name"`
	model.Metadata
}
