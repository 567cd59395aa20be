package model

import "venuebook/shared/model"

const (
	TableName  = "images"
	EntityName = "image"

	FieldID       = "id"
	FieldVenueID  = "venue_id"
	FieldImageURL = "image_url"
)

type Image struct {
	ID       string `db:"id"`
	VenueID  string `db:"venue_id"`
	ImageURL string `db:"image_url"`
	model.Metadata
}
