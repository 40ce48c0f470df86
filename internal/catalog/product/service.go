// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package product

import (
	"context"
	"log/slog"

	"github.com/narkhlab/narkh/internal/platform/validate"
	"github.com/narkhlab/narkh/pkg/slug"
	"github.com/narkhlab/narkh/pkg/uuidv7"
)

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

func (service *Service) ListProducts(context context.Context, filter Filter, limit, offset int) ([]*Product, int, error) {
	return service.repo.ListProducts(context, filter, limit, offset)
}

func (service *Service) GetProduct(context context.Context, id string) (*Product, error) {
	return service.repo.GetProduct(context, id)
}

func (service *Service) CreateProduct(context context.Context, product *Product) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, product.Name).MaxLen(FieldName, product.Name, 200)
	validator.Required(FieldCategory, product.Category).MaxLen(FieldCategory, product.Category, 80)
	validator.Required(FieldUnit, product.Unit).MaxLen(FieldUnit, product.Unit, 20)

	if err := validator.Err(); err != nil {
		return err
	}

	product.ID = uuidv7.New()
	product.Slug = slug.From(product.Name)

	if err := service.repo.CreateProduct(context, product); err != nil {
		return err
	}

	service.logger.Info("product_created", slog.String("name", product.Name))
	return nil
}

func (service *Service) UpdateProduct(context context.Context, id string, product *Product) error {
	product.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldName, product.Name).MaxLen(FieldName, product.Name, 200)
	validator.Required(FieldCategory, product.Category).MaxLen(FieldCategory, product.Category, 80)
	validator.Required(FieldUnit, product.Unit).MaxLen(FieldUnit, product.Unit, 20)

	if err := validator.Err(); err != nil {
		return err
	}

	product.Slug = slug.From(product.Name)

	if err := service.repo.UpdateProduct(context, product); err != nil {
		return err
	}

	service.logger.Info("product_updated", slog.String("product_id", product.ID))
	return nil
}

func (service *Service) DeleteProduct(context context.Context, id string) error {
	if err := service.repo.DeleteProduct(context, id); err != nil {
		return err
	}

	service.logger.Warn("product_deleted", slog.String("product_id", id))
	return nil
}
