package dto

import (
	"mime/multipart"

	"venuebook/internal/domains/image/model"
	"venuebook/shared"
	gDto "venuebook/shared/dto"
	gModel "venuebook/shared/model"
	"venuebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateImageRequest struct {
	VenueID  string `json:"venue_id"  validate:"required"`
	ImageURL string `json:"image_url" validate:"required,url,max=2048"`
}

func (r *CreateImageRequest) ToModel(createdBy string) model.Image {
	return NewImage(r.VenueID, r.ImageURL, createdBy)
}

// NewImage builds an image row for venueID pointing at url.
func NewImage(venueID, url, createdBy string) model.Image {
	now := timezone.Now()

	return model.Image{
		ID:       uuid.NewString(),
		VenueID:  venueID,
		ImageURL: url,
		Metadata: gModel.NewMetadata(createdBy, now),
	}
}

type UploadImageRequest struct {
	VenueID string                `form:"venue_id" json:"venue_id" validate:"required"`
	Image   *multipart.FileHeader `form:"file"     json:"-"        validate:"required,mimetypes=image/png image/jpg image/jpeg image/webp,maxfilesize=5"`
}

type UpdateImageRequest struct {
	VenueID  *string `db:"venue_id"  json:"venue_id,omitempty"  validate:"omitempty,min=1"`
	ImageURL *string `db:"image_url" json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
}

type ImageResponse struct {
	ID       string `json:"id"`
	VenueID  string `json:"venue_id"`
	ImageURL string `json:"image_url"`
	gDto.Metadata
}

func (r *ImageResponse) FromModel(model model.Image) {
	r.ID = model.ID
	r.VenueID = model.VenueID
	r.ImageURL = model.ImageURL
	r.Metadata.FromModel(model.Metadata)
}

type GetImagesResponse struct {
	Images    []ImageResponse `json:"images"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetImagesResponse) FromModels(models []model.Image, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Images = make([]ImageResponse, len(models))
	for i, mod := range models {
		r.Images[i].FromModel(mod)
	}
}
