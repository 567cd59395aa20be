package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"net/http"
	"time"
	"venuebook/config"
	"venuebook/infras/kafka"
	"venuebook/infras/otel"
	"venuebook/internal/domains/booking/model"
	"venuebook/internal/domains/booking/model/dto"
	"venuebook/internal/domains/booking/repository"
	venueModel "venuebook/internal/domains/venue/model"
	venueRepo "venuebook/internal/domains/venue/repository"
	"venuebook/permissions"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"

	"github.com/rs/zerolog/log"
)

const fieldReservationDate = "reservation_date"

type Booking interface {
	Create(ctx context.Context, req dto.CreateBookingRequest) (dto.BookingResponse, error)
	GetAll(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetByUser(ctx context.Context, req gDto.QueryParams) (dto.GetBookingsResponse, error)
	GetByVenue(ctx context.Context, req gDto.QueryParams, venueID string) (dto.GetBookingsResponse, error)
	Get(ctx context.Context, id string) (dto.BookingResponse, error)
	Update(ctx context.Context, req dto.UpdateBookingRequest, id string) error
	ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.Booking
	venueRepo venueRepo.Venue
	cfg       *config.Config
	otel      otel.Otel
	kafka     kafka.Client
}

func New(repo repository.Booking, venueRepo venueRepo.Venue, cfg *config.Config, otel otel.Otel, kafka kafka.Client) Booking {
	return &serviceImpl{
		repo:      repo,
		venueRepo: venueRepo,
		cfg:       cfg,
		otel:      otel,
		kafka:     kafka,
	}
}

func alreadyBooked() error {
	return failure.Conflict("venue is already booked for this date")
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateBookingRequest) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	date, err := parseDate(req.ReservationDate)
	if err != nil {
		return res, err
	}

	venue, err := s.venue(ctx, req.VenueID)
	if err != nil {
		return res, err
	}

	if venue.Status != constant.VenueStatusApproved {
		return res, failure.Conflict("venue is not approved for booking")
	}

	if err = checkCapacity(venue, req.GuestCount); err != nil {
		return res, err
	}

	if err = s.checkAvailability(ctx, venue.ID, date, constant.Empty); err != nil {
		return res, err
	}

	booking := req.ToModel(principal.ID, principal.Username, date)

	if err = s.repo.Insert(ctx, booking); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return res, alreadyBooked()
		}

		log.Error().Err(err).Msg("failed to create booking")

		return res, fmt.Errorf("failed to create booking: %w", err)
	}

	booking.VenueName = &venue.Name
	booking.VenueAddress = &venue.Address
	booking.VenueOwnerID = &venue.OwnerID
	booking.UserUsername = &principal.Username

	res.FromModel(booking)

	s.publish(ctx, constant.BookingEventCreated, booking, principal.ID)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAdmin(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, req, gDto.FilterGroup{})
}

func (s *serviceImpl) GetByUser(ctx context.Context, req gDto.QueryParams) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, req, shared.FilterByID(principal.ID, model.FieldUserID, model.TableName))
}

func (s *serviceImpl) GetByVenue(ctx context.Context, req gDto.QueryParams, venueID string) (res dto.GetBookingsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetByVenue")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)

	venue, err := s.venue(ctx, venueID)
	if err != nil {
		return res, err
	}

	if err = permissions.RequireOwnerOrAdmin(principal, venue.OwnerID); err != nil {
		return res, err //nolint:wrapcheck
	}

	return s.list(ctx, req, shared.FilterByID(venueID, model.FieldVenueID, model.TableName))
}

// Get is visible to the booker, the owner of the booked venue and admins.
func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.BookingResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return res, err //nolint:wrapcheck
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if err = permissions.RequireAnyOf(principal, booking.UserID, venueOwner(booking)); err != nil {
		return res, err //nolint:wrapcheck
	}

	res.FromModel(booking)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateBookingRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateBookingRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return err //nolint:wrapcheck
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = permissions.RequireOwnerOrAdmin(principal, booking.UserID); err != nil {
		return err //nolint:wrapcheck
	}

	var newDate *time.Time

	if req.ReservationDate != nil {
		date, err := parseDate(*req.ReservationDate)
		if err != nil {
			return err
		}

		if dto.FormatDate(date) != dto.FormatDate(booking.ReservationDate) {
			if err = s.checkAvailability(ctx, booking.VenueID, date, booking.ID); err != nil {
				return err
			}

			newDate = &date
		}
	}

	if req.GuestCount != nil && *req.GuestCount != booking.GuestCount {
		venue, err := s.venue(ctx, booking.VenueID)
		if err != nil {
			return err
		}

		if err = checkCapacity(venue, *req.GuestCount); err != nil {
			return err
		}
	}

	updatedFields := req.Fields(newDate, principal.Username)
	if err = s.repo.Update(ctx, updatedFields, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		if failure.GetCode(err) == http.StatusBadRequest {
			return alreadyBooked()
		}

		log.Error().Err(err).Msg("failed to update booking")

		return fmt.Errorf("failed to update booking: %w", err)
	}

	if newDate != nil {
		booking.ReservationDate = *newDate
	}

	if req.GuestCount != nil {
		booking.GuestCount = *req.GuestCount
	}

	s.publish(ctx, constant.BookingEventUpdated, booking, principal.ID)

	return nil
}

// ChangeStatus is reserved for the owner of the booked venue and admins.
func (s *serviceImpl) ChangeStatus(ctx context.Context, req dto.ChangeStatusRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangeStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return err //nolint:wrapcheck
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = permissions.RequireOwnerOrAdmin(principal, venueOwner(booking)); err != nil {
		return err //nolint:wrapcheck
	}

	if err = s.repo.Update(ctx, req.Fields(principal.Username), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to change booking status")

		return fmt.Errorf("failed to change booking status: %w", err)
	}

	booking.Status = req.Status

	s.publish(ctx, constant.BookingEventStatusChanged, booking, principal.ID)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	principal, _ := permissions.PrincipalFromContext(ctx)
	if err = permissions.RequireAuthenticated(principal); err != nil {
		return err //nolint:wrapcheck
	}

	booking, err := s.get(ctx, id)
	if err != nil {
		return err
	}

	if err = permissions.RequireOwnerOrAdmin(principal, booking.UserID); err != nil {
		return err //nolint:wrapcheck
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete booking")

		return fmt.Errorf("failed to delete booking: %w", err)
	}

	s.publish(ctx, constant.BookingEventDeleted, booking, principal.ID)

	return nil
}

// list orders by reservation date, latest first, unless the caller asked for another order.
func (s *serviceImpl) list(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetBookingsResponse, err error) {
	if req.SortBy == constant.Empty {
		req.SortBy = model.TableName + "." + model.FieldReservationDate
		req.SortDir = gDto.SortDirDesc
	}

	if req.SortDir == constant.Empty {
		req.SortDir = gDto.SortDirDesc
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count bookings")

		return res, fmt.Errorf("failed to count bookings: %w", err)
	}

	bookings, err := s.repo.GetAll(ctx, req, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get bookings")

		return res, fmt.Errorf("failed to get bookings: %w", err)
	}

	res.FromModels(bookings, total, req.Limit)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Booking, error) {
	booking, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get booking")

		return booking, fmt.Errorf("failed to get booking: %w", err)
	}

	if booking.ID == constant.Empty {
		return booking, failure.NotFound("booking not found")
	}

	return booking, nil
}

func (s *serviceImpl) venue(ctx context.Context, id string) (venueModel.Venue, error) {
	venue, err := s.venueRepo.Get(ctx, shared.FilterByID(id, venueModel.FieldID, venueModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get venue")

		return venue, fmt.Errorf("failed to get venue: %w", err)
	}

	if venue.ID == constant.Empty {
		return venue, failure.NotFound("venue not found")
	}

	return venue, nil
}

// checkAvailability fails when another booking of the venue holds the date.
// excludeID leaves the booking being edited out of the search.
func (s *serviceImpl) checkAvailability(ctx context.Context, venueID string, date time.Time, excludeID string) error {
	exist, err := s.repo.IsReserved(ctx, venueID, date, excludeID)
	if err != nil {
		log.Error().Err(err).Msg("failed to check booking availability")

		return fmt.Errorf("failed to check booking availability: %w", err)
	}

	if exist {
		return alreadyBooked()
	}

	return nil
}

func (s *serviceImpl) publish(ctx context.Context, eventType string, booking model.Booking, actorID string) {
	if !s.cfg.Kafka.Enable {
		return
	}

	message := kafka.Message{
		Key:   booking.VenueID,
		Value: dto.NewEvent(eventType, booking, actorID),
	}

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.kafka.SendMessages(c, s.cfg.Kafka.Topic.BookingEvents, message); err != nil {
			log.Warn().Err(err).Str("event", eventType).Str("bookingID", booking.ID).Msg("failed to publish booking event")
		}
	}()
}

func checkCapacity(venue venueModel.Venue, guestCount int) error {
	if guestCount > venue.Capacity {
		return failure.Conflict(fmt.Sprintf("guest count exceeds venue capacity of %d", venue.Capacity))
	}

	return nil
}

func parseDate(value string) (time.Time, error) {
	date, err := dto.ParseDate(value)
	if err != nil {
		return date, failure.Validation([]failure.FieldError{{
			Field:   fieldReservationDate,
			Message: fieldReservationDate + " must be a valid ISO 8601 date",
		}})
	}

	return date, nil
}

func venueOwner(booking model.Booking) string {
	if booking.VenueOwnerID == nil {
		return constant.Empty
	}

	return *booking.VenueOwnerID
}
