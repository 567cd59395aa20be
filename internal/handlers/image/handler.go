package image

import (
	"net/http"
	"venuebook/infras/otel"
	"venuebook/internal/domains/image/model/dto"
	"venuebook/internal/domains/image/service"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	"venuebook/shared/failure"
	"venuebook/shared/validator"
	"venuebook/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Image
	otel    otel.Otel
}

func New(service service.Image, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/images", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateImage)
		routerGroup.Post("/upload", handler.UploadImage)
		routerGroup.Get("/", handler.GetImages)
		routerGroup.Get("/{id}", handler.GetImageByID)
		routerGroup.Patch("/{id}", handler.UpdateImage)
		routerGroup.Delete("/{id}", handler.DeleteImage)
	})
}

// CreateImage registers an already hosted image for a venue.
// @Summary Add an image by URL
// @Tags Image
// @Accept json
// @Produce json
// @Param request body dto.CreateImageRequest true "Create Image Request"
// @Success 201 {object} response.Data[dto.ImageResponse] "Image created successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images [post]
// @Security BearerAuth
func (handler *Handler) CreateImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateImage")
	defer scope.End()

	req := dto.CreateImageRequest{}
	if err := validator.Validate(request.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Image created successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// UploadImage stores an image file and attaches it to a venue.
// @Summary Upload an image
// @Tags Image
// @Accept multipart/form-data
// @Produce json
// @Param venue_id formData string true "Venue ID"
// @Param file formData file true "Image file (png, jpg, jpeg, webp; up to 5 MB)"
// @Success 201 {object} response.Data[dto.ImageResponse] "Image uploaded successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/upload [post]
// @Security BearerAuth
func (handler *Handler) UploadImage(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UploadImage")
	defer scope.End()

	if err := request.ParseMultipartForm(constant.RequestMaxMemory); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to parse multipart form")
		response.WithError(writer, failure.BadRequestFromString("failed to parse multipart form"))

		return
	}

	req := dto.UploadImageRequest{
		VenueID: request.FormValue("venue_id"),
	}

	if files := request.MultipartForm.File[constant.FormFile]; len(files) > 0 {
		req.Image = files[0]
	}

	if err := validator.ValidateStruct(&req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(writer, err)

		return
	}

	res, err := handler.service.Upload(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upload image")

		response.WithError(writer, err)

		return
	}

	scope.AddEvent("Image uploaded successfully")

	response.WithJSON(writer, http.StatusCreated, res)
}

// GetImages retrieves every image.
// @Summary Get all images
// @Tags Image
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[[]dto.ImageResponse] "List of images"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images [get]
// @Security BearerAuth
func (handler *Handler) GetImages(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImages")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	images, err := handler.service.GetAll(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get images")

		response.WithError(w, err)

		return
	}

	response.WithList(w, images.Images, images.TotalData, images.TotalPage)
}

// GetImageByID retrieves an image by its ID.
// @Summary Get an image by ID
// @Tags Image
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Data[dto.ImageResponse] "Image details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id} [get]
func (handler *Handler) GetImageByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetImageByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	image, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get image")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, image)
}

// UpdateImage updates an image.
// @Summary Update an image
// @Description Change the URL of an image or move it to another venue owned by the caller.
// @Tags Image
// @Accept json
// @Produce json
// @Param id path string true "Image ID"
// @Param request body dto.UpdateImageRequest true "Update Image Request"
// @Success 200 {object} response.Message "Image updated successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateImageRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image updated successfully")

	response.WithMessage(w, http.StatusOK, "Image updated successfully")
}

// DeleteImage deletes an image.
// @Summary Delete an image
// @Tags Image
// @Produce json
// @Param id path string true "Image ID"
// @Success 200 {object} response.Message "Image deleted successfully"
// @Failure 401 {object} response.Error
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/images/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteImage(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteImage")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete image")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Image deleted successfully")

	response.WithMessage(w, http.StatusOK, "Image deleted successfully")
}
