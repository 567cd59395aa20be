package dto

import (
	"strings"
	"time"
	"venuebook/internal/domains/booking/model"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gModel "venuebook/shared/model"
	"venuebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	VenueID         string `json:"venue_id"         validate:"required"`
	ReservationDate string `json:"reservation_date" validate:"required,isodate"`
	GuestCount      int    `json:"guest_count"      validate:"required,min=1"`
	ClientPhone     string `json:"client_phone"     validate:"required,max=20"`
}

func (r *CreateBookingRequest) ToModel(userID, createdBy string, reservationDate time.Time) model.Booking {
	now := timezone.Now()

	return model.Booking{
		ID:              uuid.NewString(),
		VenueID:         r.VenueID,
		ReservationDate: reservationDate,
		GuestCount:      r.GuestCount,
		ClientPhone:     r.ClientPhone,
		UserID:          userID,
		Status:          constant.BookingStatusUpcoming,
		Metadata:        gModel.NewMetadata(createdBy, now),
	}
}

// UpdateBookingRequest is a partial patch. The reservation date is converted
// by the service before it reaches the store.
type UpdateBookingRequest struct {
	ReservationDate *string `json:"reservation_date,omitempty" validate:"omitempty,isodate"`
	GuestCount      *int    `json:"guest_count,omitempty"      validate:"omitempty,min=1"`
	ClientPhone     *string `json:"client_phone,omitempty"     validate:"omitempty,max=20"`
}

type bookingPatch struct {
	ReservationDate *string `db:"reservation_date"`
	GuestCount      *int    `db:"guest_count"`
	ClientPhone     *string `db:"client_phone"`
}

// Fields returns the columns to write for the patch.
func (r *UpdateBookingRequest) Fields(reservationDate *time.Time, modifiedBy string) map[string]any {
	patch := bookingPatch{
		GuestCount:  r.GuestCount,
		ClientPhone: r.ClientPhone,
	}

	if reservationDate != nil {
		date := FormatDate(*reservationDate)
		patch.ReservationDate = &date
	}

	return shared.TransformFields(patch, modifiedBy)
}

type ChangeStatusRequest struct {
	Status string `db:"status" json:"status" validate:"required,oneof=upcoming past"`
}

func (r *ChangeStatusRequest) Fields(modifiedBy string) map[string]any {
	return shared.TransformFields(*r, modifiedBy)
}

// ParseDate reads a reservation date given as YYYY-MM-DD or an RFC 3339
// date-time and truncates it to the calendar day.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)

	if date, err := time.Parse(constant.ReservationLayout, value); err == nil {
		return date, nil
	}

	dateTime, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, err //nolint:wrapcheck
	}

	return time.Date(dateTime.Year(), dateTime.Month(), dateTime.Day(), 0, 0, 0, 0, time.UTC), nil
}

func FormatDate(date time.Time) string {
	return date.Format(constant.ReservationLayout)
}

type Venue struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	OwnerID string `json:"owner_id"`
}

type Booker struct {
	ID        string `json:"id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Username  string `json:"username"`
}

type BookingResponse struct {
	ID              string `json:"id"`
	VenueID         string `json:"venue_id"`
	ReservationDate string `json:"reservation_date"`
	GuestCount      int    `json:"guest_count"`
	ClientPhone     string `json:"client_phone"`
	UserID          string `json:"user_id"`
	Status          string `json:"status"`
	Venue           Venue  `json:"venue"`
	Booker          Booker `json:"user"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.ReservationDate = FormatDate(model.ReservationDate)
	r.GuestCount = model.GuestCount
	r.ClientPhone = model.ClientPhone
	r.UserID = model.UserID
	r.Status = model.Status
	r.Venue = Venue{
		ID:      model.VenueID,
		Name:    deref(model.VenueName),
		Address: deref(model.VenueAddress),
		OwnerID: deref(model.VenueOwnerID),
	}
	r.Booker = Booker{
		ID:        model.UserID,
		Firstname: deref(model.UserFirstname),
		Lastname:  deref(model.UserLastname),
		Username:  deref(model.UserUsername),
	}
	r.Metadata.FromModel(model.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// Event is the payload published for booking lifecycle changes.
type Event struct {
	Type            string `json:"type"`
	BookingID       string `json:"booking_id"`
	VenueID         string `json:"venue_id"`
	UserID          string `json:"user_id"`
	ReservationDate string `json:"reservation_date"`
	GuestCount      int    `json:"guest_count"`
	Status          string `json:"status"`
	ActorID         string `json:"actor_id"`
	OccurredAt      string `json:"occurred_at"`
}

func NewEvent(eventType string, booking model.Booking, actorID string) Event {
	return Event{
		Type:            eventType,
		BookingID:       booking.ID,
		VenueID:         booking.VenueID,
		UserID:          booking.UserID,
		ReservationDate: FormatDate(booking.ReservationDate),
		GuestCount:      booking.GuestCount,
		Status:          booking.Status,
		ActorID:         actorID,
		OccurredAt:      timezone.Format(timezone.Now(), constant.DateFormat),
	}
}

func deref(value *string) string {
	if value == nil {
		return constant.Empty
	}

	return *value
}
