package model

import (
	"time"
	"venuebook/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID              = "id"
	FieldVenueID         = "venue_id"
	FieldReservationDate = "reservation_date"
	FieldGuestCount      = "guest_count"
	FieldClientPhone     = "client_phone"
	FieldUserID          = "user_id"
	FieldStatus          = "status"
)

// Booking rows are read with a summary of the venue and of the booker.
type Booking struct {
	ID              string    `db:"id"`
	VenueID         string    `db:"venue_id"`
	ReservationDate time.Time `db:"reservation_date"`
	GuestCount      int       `db:"guest_count"`
	ClientPhone     string    `db:"client_phone"`
	UserID          string    `db:"user_id"`
	Status          string    `db:"status"`
	VenueName       *string   `column:"name"      db:"venue_name"      table:"venues"`
	VenueAddress    *string   `column:"address"   db:"venue_address"   table:"venues"`
	VenueOwnerID    *string   `column:"owner_id"  db:"venue_owner_id"  table:"venues"`
	UserFirstname   *string   `column:"firstname" db:"user_firstname"  table:"users"`
	UserLastname    *string   `column:"lastname"  db:"user_lastname"   table:"users"`
	UserUsername    *string   `column:"username"  db:"user_username"   table:"users"`
	model.Metadata
}

func (Booking) GetJoinQuery() string {
	return `LEFT JOIN venues ON venues.id = bookings.venue_id
		LEFT JOIN users ON users.id = bookings.user_id`
}
