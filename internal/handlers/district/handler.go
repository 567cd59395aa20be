package district

import (
	"net/http"
	"venuebook/infras/otel"
	"venuebook/internal/domains/district/model/dto"
	"venuebook/internal/domains/district/service"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/validator"
	"venuebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.District
	otel    otel.Otel
}

func New(service service.District, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/districts", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateDistrict)
		routerGroup.Get("/", handler.GetDistricts)
		routerGroup.Get("/{id}", handler.GetDistrictByID)
		routerGroup.Patch("/{id}", handler.UpdateDistrict)
		routerGroup.Delete("/{id}", handler.DeleteDistrict)
		routerGroup.Get("/{id}/venues", handler.GetDistrictVenues)
	})
}

// CreateDistrict handles the creation of a new district.
// @Summary Create a new district
// @Tags District
// @Accept json
// @Produce json
// @Param request body dto.CreateDistrictRequest true "Create District Request"
// @Success 201 {object} response.Data[dto.DistrictResponse] "District created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts [post]
// @Security BearerAuth
func (handler *Handler) CreateDistrict(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateDistrict")
	defer scope.End()

	req := dto.CreateDistrictRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create district")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("District created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetDistricts retrieves all districts.
// @Summary Get all districts
// @Tags District
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[[]dto.DistrictResponse] "List of districts"
// @Failure 500 {object} response.Error
// @Router /v1/districts [get]
func (handler *Handler) GetDistricts(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistricts")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	districts, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get districts")

		response.WithError(w, err)

		return
	}

	response.WithList(w, districts.Districts, districts.TotalData, districts.TotalPage)
}

// GetDistrictByID retrieves a district with its venues.
// @Summary Get a district by ID
// @Tags District
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Data[dto.DistrictDetailResponse] "District details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id} [get]
func (handler *Handler) GetDistrictByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistrictByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	district, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get district")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, district)
}

// GetDistrictVenues lists the approved venues of a district.
// @Summary Get district venues
// @Tags District
// @Produce json
// @Param id path string true "District ID"
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[[]venueDto.VenueResponse] "List of venues"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id}/venues [get]
func (handler *Handler) GetDistrictVenues(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetDistrictVenues")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	venues, err := handler.service.GetVenues(ctx, queryParams, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get district venues")

		response.WithError(w, err)

		return
	}

	response.WithList(w, venues.Venues, venues.TotalData, venues.TotalPage)
}

// UpdateDistrict renames a district.
// @Summary Update a district
// @Tags District
// @Accept json
// @Produce json
// @Param id path string true "District ID"
// @Param request body dto.UpdateDistrictRequest true "Update District Request"
// @Success 200 {object} response.Message "District updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDistrict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDistrict")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateDistrictRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update district")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("District updated successfully")

	response.WithMessage(w, http.StatusOK, "District updated successfully")
}

// DeleteDistrict deletes a district. Its venues are kept.
// @Summary Delete a district
// @Tags District
// @Produce json
// @Param id path string true "District ID"
// @Success 200 {object} response.Message "District deleted successfully"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/districts/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteDistrict(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteDistrict")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete district")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("District deleted successfully")

	response.WithMessage(w, http.StatusOK, "District deleted successfully")
}
