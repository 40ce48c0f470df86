// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package market

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

func (service *Service) ListMarkets(context context.Context, filter Filter, limit, offset int) ([]*Market, int, error) {
	return service.repo.ListMarkets(context, filter, limit, offset)
}

func (service *Service) GetMarket(context context.Context, id string) (*Market, error) {
	return service.repo.GetMarket(context, id)
}

func (service *Service) CreateMarket(context context.Context, market *Market) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, market.Name).MaxLen(FieldName, market.Name, 120)
	validator.Required(FieldCityID, market.CityID).UUID(FieldCityID, market.CityID)
	validator.Required(FieldKind, market.Kind).OneOf(FieldKind, market.Kind, Kinds...)

	if err := validator.Err(); err != nil {
		return err
	}

	market.ID = uuidv7.New()
	market.Slug = slug.From(market.Name)

	if err := service.repo.CreateMarket(context, market); err != nil {
		return err
	}

	service.logger.Info("market_created",
		slog.String("name", market.Name),
		slog.String("kind", market.Kind),
	)
	return nil
}

func (service *Service) UpdateMarket(context context.Context, id string, market *Market) error {
	market.ID = id

	validator := &validate.Validator{}
	validator.Required(FieldName, market.Name).MaxLen(FieldName, market.Name, 120)
	validator.Required(FieldCityID, market.CityID).UUID(FieldCityID, market.CityID)
	validator.Required(FieldKind, market.Kind).OneOf(FieldKind, market.Kind, Kinds...)

	if err := validator.Err(); err != nil {
		return err
	}

	market.Slug = slug.From(market.Name)

	if err := service.repo.UpdateMarket(context, market); err != nil {
		return err
	}

	service.logger.Info("market_updated", slog.String("market_id", market.ID))
	return nil
}

func (service *Service) DeleteMarket(context context.Context, id string) error {
	if err := service.repo.DeleteMarket(context, id); err != nil {
		return err
	}

	service.logger.Warn("market_deleted", slog.String("market_id", id))
	return nil
}
