package model

import (
	"venuebook/shared/model"
)

const (
	TableName  = "venues"
	EntityName = "venue"

	FieldID          = "id"
	FieldName        = "name"
	FieldDistrictID  = "district_id"
	FieldAddress     = "address"
	FieldCapacity    = "capacity"
	FieldPrice       = "price"
	FieldPhoneNumber = "phone_number"
	FieldStatus      = "status"
	FieldOwnerID     = "owner_id"
)

// Venue rows are read together with the district name and the owner summary.
// The joined columns are nil when the referenced row no longer exists.
type Venue struct {
	ID             string  `db:"id"`
	Name           string  `db:"name"`
	DistrictID     string  `db:"district_id"`
	Address        string  `db:"address"`
	Capacity       int     `db:"capacity"`
	Price          float64 `db:"price"`
	PhoneNumber    string  `db:"phone_number"`
	Status         string  `db:"status"`
	OwnerID        string  `db:"owner_id"`
	DistrictName   *string `column:"name"      db:"district_name"   table:"districts"`
	OwnerFirstname *string `column:"firstname" db:"owner_firstname" table:"users"`
	OwnerLastname  *string `column:"lastname"  db:"owner_lastname"  table:"users"`
	OwnerUsername  *string `column:"username"  db:"owner_username"  table:"users"`
	model.Metadata
}

func (Venue) GetJoinQuery() string {
	return `LEFT JOIN districts ON districts.id = venues.district_id
		LEFT JOIN users ON users.id = venues.owner_id`
}
