package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"

	"shuttle/infras/otel"
	"shuttle/infras/postgres"
	"shuttle/internal/domains/court/model"
	gDto "shuttle/shared/dto"
	gRepo "shuttle/shared/repository"
)

type Court interface {
	Insert(ctx context.Context, model model.Court) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Court, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Court, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Court]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Court {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Court](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
