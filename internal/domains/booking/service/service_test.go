package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"venuebook/config"
	kafkaMocks "venuebook/infras/kafka/mocks"
	"venuebook/infras/otel/mocks"
	s3Mocks "venuebook/infras/s3/mocks"
	bookingMocks "venuebook/internal/domains/booking/mocks"
	"venuebook/internal/domains/booking/model"
	"venuebook/internal/domains/booking/model/dto"
	"venuebook/internal/domains/booking/service"
	imageMocks "venuebook/internal/domains/image/mocks"
	venueMocks "venuebook/internal/domains/venue/mocks"
	venueModel "venuebook/internal/domains/venue/model"
	venueDto "venuebook/internal/domains/venue/model/dto"
	venueService "venuebook/internal/domains/venue/service"
	"venuebook/permissions"
	cacheMocks "venuebook/shared/cache/mocks"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
)

var (
	admin   = permissions.Principal{ID: "admin-id", Username: "admin", Role: constant.RoleAdmin}
	ownerA  = permissions.Principal{ID: "owner-a", Username: "owner_a", Role: constant.RoleOwner}
	ownerB  = permissions.Principal{ID: "owner-b", Username: "owner_b", Role: constant.RoleOwner}
	booker  = permissions.Principal{ID: "user-id", Username: "booker", Role: constant.RoleUser}
	another = permissions.Principal{ID: "other-id", Username: "other", Role: constant.RoleUser}
)

func asPrincipal(p permissions.Principal) context.Context {
	return permissions.NewContext(context.Background(), p)
}

func strPtr(value string) *string {
	return &value
}

func intPtr(value int) *int {
	return &value
}

func approvedVenue() venueModel.Venue {
	return venueModel.Venue{
		ID:       "venue-id",
		Name:     "Grand Hall",
		Capacity: 100,
		Status:   constant.VenueStatusApproved,
		OwnerID:  ownerA.ID,
	}
}

func existingBooking() model.Booking {
	return model.Booking{
		ID:              "booking-id",
		VenueID:         "venue-id",
		ReservationDate: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		GuestCount:      50,
		UserID:          booker.ID,
		Status:          constant.BookingStatusUpcoming,
		VenueOwnerID:    strPtr(ownerA.ID),
	}
}

func newService(t *testing.T) (service.Booking, *bookingMocks.MockBooking, *venueMocks.MockVenue) {
	t.Helper()

	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}

	return service.New(mockRepo, mockVenueRepo, cfg, mocks.NewOtel(), mockKafka), mockRepo, mockVenueRepo
}

func TestBookingService_Create(t *testing.T) {
	validReq := dto.CreateBookingRequest{
		VenueID:         "venue-id",
		ReservationDate: "2025-06-01",
		GuestCount:      50,
		ClientPhone:     "+998901234567",
	}

	tests := []struct {
		name        string
		ctx         context.Context
		req         dto.CreateBookingRequest
		setupMock   func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue)
		wantCode    int
		wantMessage string
	}{
		{
			name: "successful creation",
			ctx:  asPrincipal(booker),
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, booking model.Booking) error {
						assert.Equal(t, booker.ID, booking.UserID)
						assert.Equal(t, constant.BookingStatusUpcoming, booking.Status)
						assert.Equal(t, "2025-06-01", dto.FormatDate(booking.ReservationDate))

						return nil
					})
			},
		},
		{
			name:      "not authenticated",
			ctx:       context.Background(),
			req:       validReq,
			setupMock: func(_ *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "invalid reservation date",
			ctx:  asPrincipal(booker),
			req: dto.CreateBookingRequest{
				VenueID:         "venue-id",
				ReservationDate: "01/06/2025",
				GuestCount:      10,
			},
			setupMock: func(_ *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name: "venue not found",
			ctx:  asPrincipal(booker),
			req:  validReq,
			setupMock: func(_ *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueModel.Venue{}, nil)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name: "venue not approved",
			ctx:  asPrincipal(booker),
			req:  validReq,
			setupMock: func(_ *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venue := approvedVenue()
				venue.Status = constant.VenueStatusPending

				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venue, nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name: "guest count exceeds capacity",
			ctx:  asPrincipal(booker),
			req: dto.CreateBookingRequest{
				VenueID:         "venue-id",
				ReservationDate: "2025-06-01",
				GuestCount:      150,
				ClientPhone:     "+998901234567",
			},
			setupMock: func(_ *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "100",
		},
		{
			name: "date already booked",
			ctx:  asPrincipal(booker),
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "already booked",
		},
		{
			name: "duplicate rejected by the store",
			ctx:  asPrincipal(booker),
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(failure.Conflict("booking already exists"))
			},
			wantCode:    http.StatusBadRequest,
			wantMessage: "already booked",
		},
		{
			name: "repository error",
			ctx:  asPrincipal(booker),
			req:  validReq,
			setupMock: func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, venueRepo := newService(t)
			tt.setupMock(repo, venueRepo)

			res, err := svc.Create(tt.ctx, tt.req)

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, constant.BookingStatusUpcoming, res.Status)
				assert.Equal(t, "Grand Hall", res.Venue.Name)

				return
			}

			assert.Error(t, err)
			assert.Equal(t, tt.wantCode, failure.GetCode(err))

			if tt.wantMessage != "" {
				assert.Contains(t, err.Error(), tt.wantMessage)
			}
		})
	}
}

func TestBookingService_CreatePublishesEvent(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockRepo := bookingMocks.NewMockBooking(ctrl)
	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Kafka.Enable = true
	cfg.Kafka.Topic.BookingEvents = "booking-events"

	svc := service.New(mockRepo, mockVenueRepo, cfg, mocks.NewOtel(), mockKafka)

	published := make(chan struct{}, 1)

	mockVenueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
	mockRepo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	mockKafka.EXPECT().
		SendMessages(gomock.Any(), "booking-events", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ ...any) error {
			published <- struct{}{}

			return errors.New("broker unavailable")
		})

	_, err := svc.Create(asPrincipal(booker), dto.CreateBookingRequest{
		VenueID:         "venue-id",
		ReservationDate: "2025-06-01T18:30:00Z",
		GuestCount:      20,
		ClientPhone:     "+998901234567",
	})

	assert.NoError(t, err)

	select {
	case <-published:
	case <-time.After(time.Second):
		t.Fatal("booking event was not published")
	}
}

func TestBookingService_Get(t *testing.T) {
	tests := []struct {
		name      string
		principal permissions.Principal
		booking   model.Booking
		wantCode  int
	}{
		{name: "booker can read", principal: booker, booking: existingBooking()},
		{name: "venue owner can read", principal: ownerA, booking: existingBooking()},
		{name: "admin can read", principal: admin, booking: existingBooking()},
		{name: "stranger is forbidden", principal: another, booking: existingBooking(), wantCode: http.StatusForbidden},
		{name: "other owner is forbidden", principal: ownerB, booking: existingBooking(), wantCode: http.StatusForbidden},
		{name: "missing booking", principal: admin, booking: model.Booking{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			res, err := svc.Get(asPrincipal(tt.principal), "booking-id")

			if tt.wantCode == 0 {
				assert.NoError(t, err)
				assert.Equal(t, "2025-06-01", res.ReservationDate)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Update(t *testing.T) {
	tests := []struct {
		name      string
		principal permissions.Principal
		req       dto.UpdateBookingRequest
		setupMock func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue)
		wantCode  int
	}{
		{
			name:      "empty patch",
			principal: booker,
			req:       dto.UpdateBookingRequest{},
			setupMock: func(_ *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {},
			wantCode:  http.StatusBadRequest,
		},
		{
			name:      "venue owner cannot edit another user's booking",
			principal: ownerA,
			req:       dto.UpdateBookingRequest{ClientPhone: strPtr("+998900000000")},
			setupMock: func(repo *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)
			},
			wantCode: http.StatusForbidden,
		},
		{
			name:      "new date already taken",
			principal: booker,
			req:       dto.UpdateBookingRequest{ReservationDate: strPtr("2025-06-02")},
			setupMock: func(repo *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), "venue-id", gomock.Any(), "booking-id").
					DoAndReturn(func(_ context.Context, _ string, date time.Time, _ string) (bool, error) {
						assert.Equal(t, "2025-06-02", dto.FormatDate(date))

						return true, nil
					})
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "same date skips the conflict check",
			principal: booker,
			req:       dto.UpdateBookingRequest{ReservationDate: strPtr("2025-06-01T10:00:00Z")},
			setupMock: func(repo *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.NotContains(t, fields, model.FieldReservationDate)

						return nil
					})
			},
		},
		{
			name:      "guest count above capacity",
			principal: booker,
			req:       dto.UpdateBookingRequest{GuestCount: intPtr(101)},
			setupMock: func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
			},
			wantCode: http.StatusBadRequest,
		},
		{
			name:      "admin moves the booking",
			principal: admin,
			req:       dto.UpdateBookingRequest{ReservationDate: strPtr("2025-07-01"), GuestCount: intPtr(80)},
			setupMock: func(repo *bookingMocks.MockBooking, venueRepo *venueMocks.MockVenue) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						date, ok := fields[model.FieldReservationDate].(*string)
						assert.True(t, ok)
						assert.Equal(t, "2025-07-01", *date)
						assert.Equal(t, admin.Username, fields[constant.FieldModifiedBy])

						return nil
					})
			},
		},
		{
			name:      "store rejects duplicate date",
			principal: booker,
			req:       dto.UpdateBookingRequest{ReservationDate: strPtr("2025-06-03")},
			setupMock: func(repo *bookingMocks.MockBooking, _ *venueMocks.MockVenue) {
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)
				repo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(failure.Conflict("booking already exists"))
			},
			wantCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, venueRepo := newService(t)
			tt.setupMock(repo, venueRepo)

			err := svc.Update(asPrincipal(tt.principal), tt.req, "booking-id")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_ChangeStatus(t *testing.T) {
	tests := []struct {
		name      string
		principal permissions.Principal
		wantCode  int
	}{
		{name: "venue owner", principal: ownerA},
		{name: "admin", principal: admin},
		{name: "booker is not allowed", principal: booker, wantCode: http.StatusForbidden},
		{name: "other owner is not allowed", principal: ownerB, wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(existingBooking(), nil)

			if tt.wantCode == 0 {
				repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, constant.BookingStatusPast, fields[model.FieldStatus])

						return nil
					})
			}

			err := svc.ChangeStatus(asPrincipal(tt.principal), dto.ChangeStatusRequest{Status: constant.BookingStatusPast}, "booking-id")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		principal permissions.Principal
		booking   model.Booking
		wantCode  int
	}{
		{name: "booker deletes", principal: booker, booking: existingBooking()},
		{name: "admin deletes", principal: admin, booking: existingBooking()},
		{name: "venue owner cannot delete", principal: ownerA, booking: existingBooking(), wantCode: http.StatusForbidden},
		{name: "missing booking", principal: booker, booking: model.Booking{}, wantCode: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, _ := newService(t)
			repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(tt.booking, nil)

			if tt.wantCode == 0 {
				repo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
			}

			err := svc.Delete(asPrincipal(tt.principal), "booking-id")

			if tt.wantCode == 0 {
				assert.NoError(t, err)

				return
			}

			assert.Equal(t, tt.wantCode, failure.GetCode(err))
		})
	}
}

func TestBookingService_Lists(t *testing.T) {
	t.Run("user bookings are ordered by date descending", func(t *testing.T) {
		svc, repo, _ := newService(t)

		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, filter gDto.FilterGroup, _ ...string) ([]model.Booking, error) {
				_, args := filter.GetWhereClause()
				assert.Equal(t, booker.ID, args[model.FieldUserID])
				assert.Equal(t, "bookings.reservation_date", params.SortBy)
				assert.Equal(t, gDto.SortDirDesc, params.SortDir)

				return []model.Booking{existingBooking()}, nil
			})

		res, err := svc.GetByUser(asPrincipal(booker), gDto.QueryParams{})

		assert.NoError(t, err)
		assert.Equal(t, 1, res.TotalData)
		assert.Len(t, res.Bookings, 1)
	})

	t.Run("all bookings require admin", func(t *testing.T) {
		svc, _, _ := newService(t)

		_, err := svc.GetAll(asPrincipal(ownerA), gDto.QueryParams{})

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("venue bookings for a missing venue", func(t *testing.T) {
		svc, _, venueRepo := newService(t)
		venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(venueModel.Venue{}, nil)

		_, err := svc.GetByVenue(asPrincipal(ownerA), gDto.QueryParams{}, "venue-id")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("venue bookings for another owner's venue", func(t *testing.T) {
		svc, _, venueRepo := newService(t)
		venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)

		_, err := svc.GetByVenue(asPrincipal(ownerB), gDto.QueryParams{}, "venue-id")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("venue owner lists venue bookings", func(t *testing.T) {
		svc, repo, venueRepo := newService(t)
		venueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(approvedVenue(), nil)
		repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)
		repo.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil)

		res, err := svc.GetByVenue(asPrincipal(ownerA), gDto.QueryParams{}, "venue-id")

		assert.NoError(t, err)
		assert.Empty(t, res.Bookings)
	})
}

// A pending venue cannot be booked until an admin approves it. After that the
// first booking for a date wins and capacity is enforced.
func TestApproveThenBookScenario(t *testing.T) {
	ctrl := gomock.NewController(t)

	mockVenueRepo := venueMocks.NewMockVenue(ctrl)
	mockImageRepo := imageMocks.NewMockImage(ctrl)
	mockBookingRepo := bookingMocks.NewMockBooking(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockS3 := s3Mocks.NewMockS3(ctrl)
	mockKafka := kafkaMocks.NewMockClient(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 3600

	venues := venueService.New(mockVenueRepo, mockImageRepo, mockBookingRepo, cfg, mockCache, mocks.NewOtel(), mockS3)
	bookings := service.New(mockBookingRepo, mockVenueRepo, cfg, mocks.NewOtel(), mockKafka)

	var (
		stored   venueModel.Venue
		inserted []model.Booking
	)

	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	mockVenueRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, venue venueModel.Venue) error {
			stored = venue

			return nil
		})
	mockVenueRepo.EXPECT().Get(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ gDto.FilterGroup, _ ...string) (venueModel.Venue, error) {
			return stored, nil
		}).
		AnyTimes()
	mockVenueRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)
	mockVenueRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
			if status, ok := fields[venueModel.FieldStatus].(*string); ok {
				stored.Status = *status
			}

			return nil
		})

	mockBookingRepo.EXPECT().IsReserved(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, _ time.Time, _ string) (bool, error) {
			return len(inserted) > 0, nil
		}).
		AnyTimes()
	mockBookingRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, booking model.Booking) error {
			inserted = append(inserted, booking)

			return nil
		}).
		AnyTimes()

	created, err := venues.Create(asPrincipal(ownerA), venueDto.CreateVenueRequest{
		Name:        "Grand Hall",
		DistrictID:  "district-id",
		Address:     "Bunyodkor 1",
		Capacity:    100,
		Price:       25,
		PhoneNumber: "+998901234567",
		Status:      constant.VenueStatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, constant.VenueStatusPending, created.Status)

	request := dto.CreateBookingRequest{
		VenueID:         created.ID,
		ReservationDate: "2025-06-01",
		GuestCount:      50,
		ClientPhone:     "+998901234567",
	}

	_, err = bookings.Create(asPrincipal(booker), request)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "not approved")

	assert.Equal(t, http.StatusForbidden, failure.GetCode(venues.Approve(asPrincipal(ownerA), created.ID)))
	assert.NoError(t, venues.Approve(asPrincipal(admin), created.ID))

	booking, err := bookings.Create(asPrincipal(booker), request)
	assert.NoError(t, err)
	assert.Equal(t, constant.BookingStatusUpcoming, booking.Status)

	_, err = bookings.Create(asPrincipal(another), request)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "already booked")

	request.GuestCount = 150

	_, err = bookings.Create(asPrincipal(another), request)
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	assert.Contains(t, err.Error(), "100")

	assert.Len(t, inserted, 1)

	time.Sleep(10 * time.Millisecond)
}
