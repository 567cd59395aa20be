package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	bookingModel "venuebook/internal/domains/booking/model"
	imageModel "venuebook/internal/domains/image/model"
	"venuebook/internal/domains/venue/model"
	"venuebook/internal/domains/venue/model/dto"
	"venuebook/shared/constant"
)

func TestCreateVenueRequest_ToModel(t *testing.T) {
	tests := []struct {
		name        string
		status      string
		allowStatus bool
		wantStatus  string
	}{
		{name: "owner request starts pending", status: constant.VenueStatusApproved, allowStatus: false, wantStatus: constant.VenueStatusPending},
		{name: "admin picks approved", status: constant.VenueStatusApproved, allowStatus: true, wantStatus: constant.VenueStatusApproved},
		{name: "admin without status", status: "", allowStatus: true, wantStatus: constant.VenueStatusPending},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := dto.CreateVenueRequest{Name: "Grand Hall", DistrictID: "district-id", Capacity: 200, Status: tt.status}

			venue := req.ToModel("owner-id", "admin", tt.allowStatus)

			assert.NotEmpty(t, venue.ID)
			assert.Equal(t, "owner-id", venue.OwnerID)
			assert.Equal(t, tt.wantStatus, venue.Status)
			assert.Equal(t, "admin", venue.CreatedBy)
		})
	}
}

func TestFilter_ToFilterGroup(t *testing.T) {
	minCapacity := 100
	maxPrice := 2500.0

	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "empty",
			filter:    dto.Filter{},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
		{
			name:      "district with ranges",
			filter:    dto.Filter{DistrictID: "district-id", MinCapacity: &minCapacity, MaxPrice: &maxPrice},
			wantWhere: "(venues.district_id = :district_id AND venues.capacity >= :min_capacity AND venues.price <= :max_price)",
			wantArgs:  map[string]any{"district_id": "district-id", "min_capacity": 100, "max_price": 2500.0},
		},
		{
			name:      "owner and status",
			filter:    dto.Filter{Status: constant.VenueStatusApproved, OwnerID: "owner-id"},
			wantWhere: "(venues.status = :status AND venues.owner_id = :owner_id)",
			wantArgs:  map[string]any{"status": constant.VenueStatusApproved, "owner_id": "owner-id"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			group := tt.filter.ToFilterGroup()

			where, args := group.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestVenueDetailResponse_FromModel(t *testing.T) {
	venue := model.Venue{ID: "venue-id", Name: "Grand Hall", OwnerID: "owner-id"}
	images := []imageModel.Image{
		{ID: "image-1", VenueID: "venue-id", ImageURL: "https://cdn.example.com/venues/venue-id/a.png"},
		{ID: "image-2", VenueID: "other-venue", ImageURL: "https://cdn.example.com/venues/other-venue/b.png"},
	}
	bookings := []bookingModel.Booking{
		{ID: "booking-id", ReservationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), GuestCount: 80, Status: constant.BookingStatusUpcoming},
	}

	var got dto.VenueDetailResponse
	got.FromModel(venue, images, bookings)

	assert.Equal(t, []dto.Image{{ID: "image-1", ImageURL: "https://cdn.example.com/venues/venue-id/a.png"}}, got.Images)
	assert.Equal(t, dto.Owner{ID: "owner-id"}, got.Owner)
	assert.Equal(t, []dto.Booking{{ID: "booking-id", ReservationDate: "2025-06-01", GuestCount: 80, Status: constant.BookingStatusUpcoming}}, got.Bookings)
}
