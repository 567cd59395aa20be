package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/district/model"
	gDto "venuebook/shared/dto"
	gRepo "venuebook/shared/repository"
)

type District interface {
	Insert(ctx context.Context, model model.District) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.District, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.District, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.District]
}

func New(db *postgres.Connection, otel otel.Otel) District {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.District](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}
