// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package exchange

import (
	"context"
	"log/slog"
	"time"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/sec"
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

// SubmitInput holds one buy/sell quote from the field.
type SubmitInput struct {
	MarketID      string
	BaseCurrency  string
	QuoteCurrency string
	Buy           int64
	Sell          int64
	RecordedAt    *time.Time
}

// Submit records a new pending exchange-rate quote. The same region
// restriction as price submissions applies to collectors.
func (service *Service) Submit(context context.Context, submitter *sec.Principal, input SubmitInput) (*ExchangeRate, error) {
	validator := &validate.Validator{}
	validator.Required(FieldMarketID, input.MarketID).UUID(FieldMarketID, input.MarketID)
	validator.Required(FieldBaseCurrency, input.BaseCurrency).Currency(FieldBaseCurrency, input.BaseCurrency)
	validator.Required(FieldQuoteCurrency, input.QuoteCurrency).Currency(FieldQuoteCurrency, input.QuoteCurrency)
	validator.Positive(FieldBuy, input.Buy)
	validator.Positive(FieldSell, input.Sell)
	validator.Custom(FieldQuoteCurrency, input.BaseCurrency == input.QuoteCurrency,
		"Base and quote currencies must differ")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	if !submitter.Role.AtLeast(sec.RoleModerator) {
		_, assignedMarket := submitter.Region()
		if assignedMarket != "" && assignedMarket != input.MarketID {
			return nil, apperr.Forbidden("Submissions are restricted to your assigned market")
		}
	}

	recordedAt := time.Now()
	if input.RecordedAt != nil {
		recordedAt = *input.RecordedAt
	}

	rate := &ExchangeRate{
		ID:            uuidv7.New(),
		MarketID:      input.MarketID,
		BaseCurrency:  input.BaseCurrency,
		QuoteCurrency: input.QuoteCurrency,
		Buy:           input.Buy,
		Sell:          input.Sell,
		Status:        StatusPending,
		SubmittedBy:   submitter.ID,
		RecordedAt:    recordedAt,
	}

	if err := service.repo.Create(context, rate); err != nil {
		return nil, err
	}

	service.logger.Info("exchange_rate_submitted",
		slog.String("rate_id", rate.ID),
		slog.String("pair", rate.BaseCurrency+"/"+rate.QuoteCurrency),
		slog.String("submitted_by", rate.SubmittedBy),
	)
	return rate, nil
}

func (service *Service) Get(context context.Context, id string) (*ExchangeRate, error) {
	return service.repo.Get(context, id)
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*ExchangeRate, int, error) {
	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, filter.Status, StatusPending, StatusApproved, StatusRejected)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(context, filter, limit, offset)
}

// Latest returns the public deduplicated latest-rate view: one most-recent
// approved quote per (base, quote, market) triple.
func (service *Service) Latest(context context.Context, filter LatestFilter) ([]*ExchangeRate, error) {
	ordered, err := service.repo.ListApprovedByRecency(context, filter)
	if err != nil {
		return nil, err
	}
	return Dedup(ordered), nil
}

// Approve publishes a pending quote.
func (service *Service) Approve(context context.Context, id string, moderator *sec.Principal) (*ExchangeRate, error) {
	return service.moderate(context, id, StatusApproved, moderator, nil)
}

// Reject refuses a pending quote with a mandatory reason.
func (service *Service) Reject(context context.Context, id string, moderator *sec.Principal, reason string) (*ExchangeRate, error) {
	validator := &validate.Validator{}
	validator.Required(FieldReason, reason).MaxLen(FieldReason, reason, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.moderate(context, id, StatusRejected, moderator, &reason)
}

func (service *Service) moderate(context context.Context, id, status string, moderator *sec.Principal, reason *string) (*ExchangeRate, error) {
	transitioned, err := service.repo.Moderate(context, id, status, moderator.ID, reason)
	if err != nil {
		return nil, err
	}

	rate, getErr := service.repo.Get(context, id)
	if getErr != nil {
		return nil, getErr
	}

	if !transitioned {
		return nil, apperr.Conflict("Submission has already been moderated")
	}

	service.logger.Info("exchange_rate_moderated",
		slog.String("rate_id", id),
		slog.String("status", status),
		slog.String("moderated_by", moderator.ID),
	)
	return rate, nil
}
