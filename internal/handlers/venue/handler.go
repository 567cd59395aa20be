package venue

import (
	"net/http"
	"strings"
	"venuebook/infras/otel"
	bookingService "venuebook/internal/domains/booking/service"
	imageService "venuebook/internal/domains/image/service"
	"venuebook/internal/domains/venue/model/dto"
	"venuebook/internal/domains/venue/service"
	"venuebook/shared"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
	"venuebook/shared/validator"
	"venuebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service  service.Venue
	images   imageService.Image
	bookings bookingService.Booking
	otel     otel.Otel
}

func New(service service.Venue, images imageService.Image, bookings bookingService.Booking, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		images:   images,
		bookings: bookings,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/venues", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateVenue)
		routerGroup.Get("/", handler.GetVenues)
		routerGroup.Get("/{id}", handler.GetVenueByID)
		routerGroup.Patch("/{id}", handler.UpdateVenue)
		routerGroup.Delete("/{id}", handler.DeleteVenue)
		routerGroup.Patch("/{id}/approve", handler.ApproveVenue)
		routerGroup.Get("/{id}/images", handler.GetVenueImages)
		routerGroup.Get("/{id}/bookings", handler.GetVenueBookings)
	})
}

// CreateVenue handles the creation of a new venue.
// @Summary Create a new venue
// @Description Create a venue from a JSON body, or from a multipart form with up to ten image files.
// @Description Owners always create pending venues; admins may set the status.
// @Tags Venue
// @Accept json,multipart/form-data
// @Produce json
// @Param request body dto.CreateVenueRequest false "Create Venue Request"
// @Param files formData file false "Venue images"
// @Success 201 {object} response.Data[dto.VenueResponse] "Venue created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [post]
// @Security BearerAuth
func (handler *Handler) CreateVenue(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateVenue")
	defer scope.End()

	req, err := createRequest(request)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create venue")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Venue created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

func createRequest(request *http.Request) (dto.CreateVenueRequest, error) {
	req := dto.CreateVenueRequest{}

	if !strings.HasPrefix(request.Header.Get(constant.RequestHeaderContentType), constant.ContentTypeMultipartFormData) {
		return req, validator.Validate(request.Body, &req)
	}

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		return req, failure.BadRequestFromString("failed to parse multipart form")
	}

	req.Name = request.FormValue("name")
	req.DistrictID = request.FormValue("district_id")
	req.Address = request.FormValue("address")
	req.PhoneNumber = request.FormValue("phone_number")
	req.Status = request.FormValue("status")

	if capacity := request.FormValue("capacity"); capacity != constant.Empty {
		value, err := shared.ConvertStringToInt(capacity)
		if err != nil {
			return req, failure.BadRequestFromString("capacity must be a number")
		}

		req.Capacity = value
	}

	if price := request.FormValue("price"); price != constant.Empty {
		value, err := shared.ConvertStringToFloat(price)
		if err != nil {
			return req, failure.BadRequestFromString("price must be a number")
		}

		req.Price = value
	}

	if request.MultipartForm != nil {
		req.Files = request.MultipartForm.File[constant.FormFiles]
	}

	return req, validator.ValidateStruct(&req)
}

// GetVenues retrieves venues based on query parameters.
// @Summary Get all venues
// @Description Retrieve venues with optional filtering and pagination.
// @Tags Venue
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param district_id query string false "Filter by district"
// @Param status query string false "Filter by status" Enums(approved, pending)
// @Param min_capacity query integer false "Minimum capacity"
// @Param max_capacity query integer false "Maximum capacity"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {object} response.Data[[]dto.VenueResponse] "List of venues"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues [get]
func (handler *Handler) GetVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenues")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filter, err := filterFromRequest(r)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse venue filter")

		response.WithError(w, err)

		return
	}

	venues, err := handler.service.GetAll(ctx, queryParams, filter)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venues")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venues retrieved successfully")

	response.WithList(w, venues.Venues, venues.TotalData, venues.TotalPage)
}

func filterFromRequest(r *http.Request) (dto.Filter, error) {
	query := r.URL.Query()

	filter := dto.Filter{
		DistrictID: query.Get(constant.QueryParamDistrictID),
		Status:     query.Get(constant.QueryParamStatus),
	}

	if err := validator.ValidateVar(filter.Status, "omitempty,oneof=approved pending"); err != nil {
		return filter, err //nolint:wrapcheck
	}

	ints := map[string]**int{
		constant.QueryParamMinCapacity: &filter.MinCapacity,
		constant.QueryParamMaxCapacity: &filter.MaxCapacity,
	}

	for param, target := range ints {
		raw := query.Get(param)
		if raw == constant.Empty {
			continue
		}

		value, err := shared.ConvertStringToInt(raw)
		if err != nil {
			return filter, failure.BadRequestFromString(param + " must be a number")
		}

		*target = &value
	}

	floats := map[string]**float64{
		constant.QueryParamMinPrice: &filter.MinPrice,
		constant.QueryParamMaxPrice: &filter.MaxPrice,
	}

	for param, target := range floats {
		raw := query.Get(param)
		if raw == constant.Empty {
			continue
		}

		value, err := shared.ConvertStringToFloat(raw)
		if err != nil {
			return filter, failure.BadRequestFromString(param + " must be a number")
		}

		*target = &value
	}

	return filter, nil
}

// GetVenueByID retrieves a venue by its ID.
// @Summary Get a venue by ID
// @Description Retrieve a venue together with its images and upcoming bookings.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Data[dto.VenueDetailResponse] "Venue details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [get]
func (handler *Handler) GetVenueByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	venue, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue retrieved successfully")

	response.WithJSON(w, http.StatusOK, venue)
}

// UpdateVenue updates an existing venue.
// @Summary Update a venue
// @Description Update a venue. Only its owner or an admin may do so; only admins may change the status.
// @Tags Venue
// @Accept json
// @Produce json
// @Param id path string true "Venue ID"
// @Param request body dto.UpdateVenueRequest true "Update Venue Request"
// @Success 200 {object} response.Message "Venue updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateVenueRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue updated successfully")

	response.WithMessage(w, http.StatusOK, "Venue updated successfully")
}

// ApproveVenue marks a venue as approved.
// @Summary Approve a venue
// @Description Mark a venue as approved so that it accepts bookings.
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue approved successfully"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/approve [patch]
// @Security BearerAuth
func (handler *Handler) ApproveVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ApproveVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Approve(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to approve venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue approved successfully")

	response.WithMessage(w, http.StatusOK, "Venue approved successfully")
}

// DeleteVenue deletes a venue.
// @Summary Delete a venue
// @Description Delete a venue and its images. Bookings of the venue are kept.
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Success 200 {object} response.Message "Venue deleted successfully"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteVenue(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteVenue")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete venue")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Venue deleted successfully")

	response.WithMessage(w, http.StatusOK, "Venue deleted successfully")
}

// GetVenueImages lists the images of a venue.
// @Summary Get venue images
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[[]imageDto.ImageResponse] "List of images"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/images [get]
func (handler *Handler) GetVenueImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueImages")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	images, err := handler.images.GetByVenue(ctx, queryParams, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue images")

		response.WithError(w, err)

		return
	}

	response.WithList(w, images.Images, images.TotalData, images.TotalPage)
}

// GetVenueBookings lists the bookings of a venue.
// @Summary Get venue bookings
// @Description List the bookings of a venue. Only its owner or an admin may do so.
// @Tags Venue
// @Produce json
// @Param id path string true "Venue ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[[]bookingDto.BookingResponse] "List of bookings"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/venues/{id}/bookings [get]
// @Security BearerAuth
func (handler *Handler) GetVenueBookings(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetVenueBookings")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	bookings, err := handler.bookings.GetByVenue(ctx, queryParams, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get venue bookings")

		response.WithError(w, err)

		return
	}

	response.WithList(w, bookings.Bookings, bookings.TotalData, bookings.TotalPage)
}
