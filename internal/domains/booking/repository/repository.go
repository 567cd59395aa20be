package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"time"
	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/booking/model"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gRepo "venuebook/shared/repository"
)

const excludeIDArg = "exclude_id"

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	IsReserved(ctx context.Context, venueID string, date time.Time, excludeID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// IsReserved reports whether a booking of the venue already holds the day.
// A non-empty excludeID leaves that booking out, so rescheduling it onto its
// own date is not a conflict.
func (r *repositoryImpl) IsReserved(ctx context.Context, venueID string, date time.Time, excludeID string) (bool, error) {
	return r.Exist(ctx, ReservationFilter(venueID, date, excludeID))
}

func ReservationFilter(venueID string, date time.Time, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldVenueID, Value: venueID, Operator: gDto.FilterOperatorEq, Table: model.TableName},
		gDto.Filter{
			Field:    model.FieldReservationDate,
			Value:    date.Format(constant.ReservationLayout),
			Operator: gDto.FilterOperatorEq,
			Table:    model.TableName,
		},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  excludeIDArg,
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.And(filters...)
}
