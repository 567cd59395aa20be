package repository_test

import (
	"testing"
	"time"

	"venuebook/internal/domains/booking/repository"

	"github.com/stretchr/testify/assert"
)

func TestReservationFilter(t *testing.T) {
	date := time.Date(2025, 6, 2, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name      string
		excludeID string
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "new booking",
			wantWhere: "(bookings.venue_id = :venue_id AND bookings.reservation_date = :reservation_date)",
			wantArgs: map[string]any{
				"venue_id":         "venue-id",
				"reservation_date": "2025-06-02",
			},
		},
		{
			name:      "rescheduled booking is left out",
			excludeID: "booking-id",
			wantWhere: "(bookings.venue_id = :venue_id AND bookings.reservation_date = :reservation_date AND bookings.id != :exclude_id)",
			wantArgs: map[string]any{
				"venue_id":         "venue-id",
				"reservation_date": "2025-06-02",
				"exclude_id":       "booking-id",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter := repository.ReservationFilter("venue-id", date, tt.excludeID)

			where, args := filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}
