// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package province

import (
	"context"
	"log/slog"
	"strings"

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

func (service *Service) ListProvinces(context context.Context, filter Filter, limit, offset int) ([]*Province, int, error) {
	return service.repo.ListProvinces(context, filter, limit, offset)
}

func (service *Service) GetProvince(context context.Context, id string) (*Province, error) {
	return service.repo.GetProvince(context, id)
}

func (service *Service) CreateProvince(context context.Context, province *Province) error {
	province.Code = strings.ToUpper(strings.TrimSpace(province.Code))

	validator := &validate.Validator{}
	validator.Required(FieldName, province.Name).MaxLen(FieldName, province.Name, 120)
	validator.Required(FieldCode, province.Code).MaxLen(FieldCode, province.Code, 10)

	if err := validator.Err(); err != nil {
		return err
	}

	province.ID = uuidv7.New()
	if err := service.repo.CreateProvince(context, province); err != nil {
		return err
	}

	service.logger.Info("province_created", slog.String("name", province.Name))
	return nil
}

func (service *Service) UpdateProvince(context context.Context, id string, province *Province) error {
	province.ID = id
	province.Code = strings.ToUpper(strings.TrimSpace(province.Code))

	validator := &validate.Validator{}
	validator.Required(FieldName, province.Name).MaxLen(FieldName, province.Name, 120)
	validator.Required(FieldCode, province.Code).MaxLen(FieldCode, province.Code, 10)

	if err := validator.Err(); err != nil {
		return err
	}

	if err := service.repo.UpdateProvince(context, province); err != nil {
		return err
	}

	service.logger.Info("province_updated", slog.String("province_id", province.ID))
	return nil
}

func (service *Service) DeleteProvince(context context.Context, id string) error {
	if err := service.repo.DeleteProvince(context, id); err != nil {
		return err
	}

	service.logger.Warn("province_deleted", slog.String("province_id", id))
	return nil
}
