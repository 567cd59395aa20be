package dto

import (
	"venuebook/internal/domains/user/model"
	venueModel "venuebook/internal/domains/venue/model"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gModel "venuebook/shared/model"
	"venuebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Firstname string `json:"firstname" validate:"required,max=50"`
	Lastname  string `json:"lastname"  validate:"required,max=50"`
	Username  string `json:"username"  validate:"required,min=3,max=50"`
	Password  string `json:"password"  validate:"required,min=6,max=72"`
	Role      string `json:"role"      validate:"omitempty,oneof=admin owner user"`
}

func (r *CreateUserRequest) ToModel(createdBy string, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	now := timezone.Now()

	return model.User{
		ID:        uuid.NewString(),
		Firstname: r.Firstname,
		Lastname:  r.Lastname,
		Username:  r.Username,
		Password:  hashedPassword,
		Role:      role,
		Metadata:  gModel.NewMetadata(createdBy, now),
	}
}

// UpdateUserRequest is a partial patch; nil fields are left untouched.
type UpdateUserRequest struct {
	Firstname *string `db:"firstname" json:"firstname,omitempty" validate:"omitempty,max=50"`
	Lastname  *string `db:"lastname"  json:"lastname,omitempty"  validate:"omitempty,max=50"`
	Username  *string `db:"username"  json:"username,omitempty"  validate:"omitempty,min=3,max=50"`
	Password  *string `db:"password"  json:"password,omitempty"  validate:"omitempty,min=6,max=72"`
	Role      *string `db:"role"      json:"role,omitempty"      validate:"omitempty,oneof=admin owner user"`
}

type UserResponse struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Firstname = model.Firstname
	r.Lastname = model.Lastname
	r.Username = model.Username
	r.Role = model.Role
	r.Metadata.FromModel(model.Metadata)
}

type OwnedVenue struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	DistrictID string  `json:"district_id"`
	Address    string  `json:"address"`
	Capacity   int     `json:"capacity"`
	Price      float64 `json:"price"`
	Status     string  `json:"status"`
}

// UserDetailResponse is the admin view of a user together with the venues they own.
type UserDetailResponse struct {
	UserResponse
	Venues []OwnedVenue `json:"venues"`
}

func (r *UserDetailResponse) FromModel(user model.User, venues []venueModel.Venue) {
	r.UserResponse.FromModel(user)

	r.Venues = make([]OwnedVenue, len(venues))
	for i, venue := range venues {
		r.Venues[i] = OwnedVenue{
			ID:         venue.ID,
			Name:       venue.Name,
			DistrictID: venue.DistrictID,
			Address:    venue.Address,
			Capacity:   venue.Capacity,
			Price:      venue.Price,
			Status:     venue.Status,
		}
	}
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
