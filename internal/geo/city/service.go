// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package city

import (
	"context"
	"log/slog"

	"github.com/narkhlab/narkh/internal/platform/validate"
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

func (service *Service) ListCities(context context.Context, filter Filter, limit, offset int) ([]*City, int, error) {
	return service.repo.ListCities(context, filter, limit, offset)
}

func (service *Service) GetCity(context context.Context, id string) (*City, error) {
	return service.repo.GetCity(context, id)
}

func (service *Service) CreateCity(context context.Context, city *City) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, city.Name).MaxLen(FieldName, city.Name, 120)
	validator.Required(FieldProvinceID, city.ProvinceID).UUID(FieldProvinceID, city.ProvinceID)

	if err := validator.Err(); err != nil {
		return err
	}

	city.ID = uuidv7.New()
	if err := service.repo.CreateCity(context, city); err != nil {
		return err
	}

	service.logger.Info("city_created", slog.String("name", city.Name))
	return nil
}

func (service *Service) UpdateCity(context context.Context, id string, city *City) error {
	city.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldName, city.Name).MaxLen(FieldName, city.Name, 120)
	validator.Required(FieldProvinceID, city.ProvinceID).UUID(FieldProvinceID, city.ProvinceID)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateCity(context, city); err != nil {
		return err
	}

	service.logger.Info("city_updated", slog.String("city_id", city.ID))
	return nil
}

func (service *Service) DeleteCity(context context.Context, id string) error {
	if err := service.repo.DeleteCity(context, id); err != nil {
		return err
	}

	service.logger.Warn("city_deleted", slog.String("city_id", id))
	return nil
}
