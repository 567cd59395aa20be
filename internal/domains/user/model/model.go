package model

import "venuebook/shared/model"

const (
	TableName  = "users"
	EntityName = "user"

	FieldID        = "id"
	FieldFirstname = "firstname"
	FieldLastname  = "lastname"
	FieldUsername  = "username"
	FieldPassword  = "password"
	FieldRole      = "role"
)

type User struct {
	ID        string `db:"id"`
	Firstname string `db:"firstname"`
	Lastname  string `db:"lastname"`
	Username  string `db:"username"`
	Password  string `db:"password" sort:"-"`
	Role      string `db:"role"`
	model.Metadata
}
