package dto

import (
	"venuebook/internal/domains/district/model"
	venueDto "venuebook/internal/domains/venue/model/dto"
	"venuebook/shared"
	gDto "venuebook/shared/dto"
	gModel "venuebook/shared/model"
	"venuebook/shared/timezone"

	"github.com/google/uuid"
)

type CreateDistrictRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

func (r *CreateDistrictRequest) ToModel(createdBy string) model.District {
	now := timezone.Now()

	return model.District{
		ID:       uuid.NewString(),
		Name:     r.Name,
		Metadata: gModel.NewMetadata(createdBy, now),
	}
}

type UpdateDistrictRequest struct {
	Name string `db:"name" json:"name" validate:"required,max=100"`
}

type DistrictResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	gDto.Metadata
}

func (r *DistrictResponse) FromModel(model model.District) {
	r.ID = model.ID
	r.Name = model.Name
	r.Metadata.FromModel(model.Metadata)
}

type DistrictDetailResponse struct {
	DistrictResponse
	Venues []venueDto.VenueResponse `json:"venues"`
}

type GetDistrictsResponse struct {
	Districts []DistrictResponse `json:"districts"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetDistrictsResponse) FromModels(models []model.District, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Districts = make([]DistrictResponse, len(models))
	for i, mod := range models {
		r.Districts[i].FromModel(mod)
	}
}
