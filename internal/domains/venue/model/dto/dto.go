package dto

import (
	"mime/multipart"

	bookingModel "venuebook/internal/domains/booking/model"
	imageModel "venuebook/internal/domains/image/model"
	"venuebook/internal/domains/venue/model"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gModel "venuebook/shared/model"
	"venuebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateVenueRequest struct {
	Name        string                  `form:"name"         json:"name"         validate:"required,max=100"`
	DistrictID  string                  `form:"district_id"  json:"district_id"  validate:"required"`
	Address     string                  `form:"address"      json:"address"      validate:"required,max=255"`
	Capacity    int                     `form:"capacity"     json:"capacity"     validate:"required,min=1"`
	Price       float64                 `form:"price"        json:"price"        validate:"gte=0"`
	PhoneNumber string                  `form:"phone_number" json:"phone_number" validate:"required,max=20"`
	Status      string                  `form:"status"       json:"status"       validate:"omitempty,oneof=approved pending"`
	Files       []*multipart.FileHeader `form:"files"        json:"-"            validate:"omitempty,max=10,dive,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

// ToModel always assigns the venue to ownerID. The requested status is kept
// only when allowStatus is set, otherwise the venue starts as pending.
func (r *CreateVenueRequest) ToModel(ownerID, createdBy string, allowStatus bool) model.Venue {
	status := constant.VenueStatusPending
	if allowStatus && r.Status != constant.Empty {
		status = r.Status
	}

	now := timezone.Now()

	return model.Venue{
		ID:          uuid.NewString(),
		Name:        r.Name,
		DistrictID:  r.DistrictID,
		Address:     r.Address,
		Capacity:    r.Capacity,
		Price:       r.Price,
		PhoneNumber: r.PhoneNumber,
		Status:      status,
		OwnerID:     ownerID,
		Metadata:    gModel.NewMetadata(createdBy, now),
	}
}

type UpdateVenueRequest struct {
	Name        *string  `db:"name"         json:"name,omitempty"         validate:"omitempty,max=100"`
	DistrictID  *string  `db:"district_id"  json:"district_id,omitempty"  validate:"omitempty,min=1"`
	Address     *string  `db:"address"      json:"address,omitempty"      validate:"omitempty,max=255"`
	Capacity    *int     `db:"capacity"     json:"capacity,omitempty"     validate:"omitempty,min=1"`
	Price       *float64 `db:"price"        json:"price,omitempty"        validate:"omitempty,gte=0"`
	PhoneNumber *string  `db:"phone_number" json:"phone_number,omitempty" validate:"omitempty,max=20"`
	Status      *string  `db:"status"       json:"status,omitempty"       validate:"omitempty,oneof=approved pending"`
}

// Filter narrows venue listings. Every set field is combined with AND.
type Filter struct {
	DistrictID  string
	Status      string
	OwnerID     string
	MinCapacity *int
	MaxCapacity *int
	MinPrice    *float64
	MaxPrice    *float64
}

func (f Filter) ToFilterGroup() gDto.FilterGroup {
	filters := []any{}

	eq := func(field string, value string) {
		if value == constant.Empty {
			return
		}

		filters = append(filters, gDto.Filter{Field: field, Value: value, Operator: gDto.FilterOperatorEq, Table: model.TableName})
	}

	eq(model.FieldDistrictID, f.DistrictID)
	eq(model.FieldStatus, f.Status)
	eq(model.FieldOwnerID, f.OwnerID)

	if f.MinCapacity != nil {
		filters = append(filters, gDto.Filter{ArgName: "min_capacity", Field: model.FieldCapacity, Value: *f.MinCapacity, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.MaxCapacity != nil {
		filters = append(filters, gDto.Filter{ArgName: "max_capacity", Field: model.FieldCapacity, Value: *f.MaxCapacity, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	if f.MinPrice != nil {
		filters = append(filters, gDto.Filter{ArgName: "min_price", Field: model.FieldPrice, Value: *f.MinPrice, Operator: gDto.FilterOperatorGreaterEq, Table: model.TableName})
	}

	if f.MaxPrice != nil {
		filters = append(filters, gDto.Filter{ArgName: "max_price", Field: model.FieldPrice, Value: *f.MaxPrice, Operator: gDto.FilterOperatorLessEq, Table: model.TableName})
	}

	return gDto.And(filters...)
}

type Owner struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
}

type Image struct {
	ID       string `json:"id"`
	ImageURL string `json:"image_url"`
}

type VenueResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	DistrictID   string  `json:"district_id"`
	DistrictName string  `json:"district_name"`
	Address      string  `json:"address"`
	Capacity     int     `json:"capacity"`
	Price        float64 `json:"price"`
	PhoneNumber  string  `json:"phone_number"`
	Status       string  `json:"status"`
	Owner        Owner   `json:"owner"`
	Images       []Image `json:"images"`
	gDto.Metadata
}

func (r *VenueResponse) FromModel(venue model.Venue, images []imageModel.Image) {
	r.ID = venue.ID
	r.Name = venue.Name
	r.DistrictID = venue.DistrictID
	r.DistrictName = deref(venue.DistrictName)
	r.Address = venue.Address
	r.Capacity = venue.Capacity
	r.Price = venue.Price
	r.PhoneNumber = venue.PhoneNumber
	r.Status = venue.Status
	r.Owner = Owner{
		ID:        venue.OwnerID,
		Firstname: deref(venue.OwnerFirstname),
		Lastname:  deref(venue.OwnerLastname),
		Username:  deref(venue.OwnerUsername),
	}
	r.Metadata.FromModel(venue.Metadata)

	r.Images = make([]Image, 0, len(images))
	for _, image := range images {
		if image.VenueID != venue.ID {
			continue
		}

		r.Images = append(r.Images, Image{ID: image.ID, ImageURL: image.ImageURL})
	}
}

type Booking struct {
	ID              string `json:"id"`
	ReservationDate string `json:"reservation_date"`
	GuestCount      int    `json:"guest_count"`
	Status          string `json:"status"`
}

// VenueDetailResponse carries the venue plus its upcoming bookings.
type VenueDetailResponse struct {
	VenueResponse
	Bookings []Booking `json:"bookings"`
}

func (r *VenueDetailResponse) FromModel(venue model.Venue, images []imageModel.Image, bookings []bookingModel.Booking) {
	r.VenueResponse.FromModel(venue, images)

	r.Bookings = make([]Booking, len(bookings))
	for i, booking := range bookings {
		r.Bookings[i] = Booking{
			ID:              booking.ID,
			ReservationDate: booking.ReservationDate.Format(constant.ReservationLayout),
			GuestCount:      booking.GuestCount,
			Status:          booking.Status,
		}
	}
}

type GetVenuesResponse struct {
	Venues    []VenueResponse `json:"venues"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetVenuesResponse) FromModels(models []model.Venue, images []imageModel.Image, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Venues = make([]VenueResponse, len(models))
	for i, mod := range models {
		r.Venues[i].FromModel(mod, images)
	}
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
