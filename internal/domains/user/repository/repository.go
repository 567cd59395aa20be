package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"venuebook/infras/otel"
	"venuebook/infras/postgres"
	"venuebook/internal/domains/user/model"
	"venuebook/shared/constant"
	gDto "venuebook/shared/dto"
	gRepo "venuebook/shared/repository"
)

type User interface {
	Insert(ctx context.Context, model model.User) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.User, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.User, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
	UsernameTaken(ctx context.Context, username, excludeID string) (bool, error)
}

type repositoryImpl struct {
	gRepo.Repository[model.User]
}

func New(db *postgres.Connection, otel otel.Otel) User {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.User](model.EntityName, model.TableName, model.FieldID, db, otel),
	}
}

// UsernameTaken reports whether any user other than excludeID already uses
// the username.
func (r *repositoryImpl) UsernameTaken(ctx context.Context, username, excludeID string) (bool, error) {
	return r.Exist(ctx, UsernameFilter(username, excludeID))
}

// UsernameFilter matches users with the given username other than excludeID.
func UsernameFilter(username, excludeID string) gDto.FilterGroup {
	filters := []any{
		gDto.Filter{Field: model.FieldUsername, Value: username, Operator: gDto.FilterOperatorEq, Table: model.TableName},
	}

	if excludeID != constant.Empty {
		filters = append(filters, gDto.Filter{
			ArgName:  "exclude_id",
			Field:    model.FieldID,
			Value:    excludeID,
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		})
	}

	return gDto.And(filters...)
}
