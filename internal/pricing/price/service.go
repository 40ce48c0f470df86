// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package price

import (
	"context"
	"log/slog"
	"time"

	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/platform/validate"
	"github.com/narkhlab/narkh/pkg/uuidv7"
)

// latestCacheTTL bounds staleness of the cached latest view between
// moderation-driven invalidations.
const latestCacheTTL = 5 * time.Minute

type Service struct {
	repo   Repository
	cache  Cache
	logger *slog.Logger
}

func NewService(repo Repository, cache Cache, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// SubmitInput holds one price observation from the field.
type SubmitInput struct {
	ProductID  string
	MarketID   string
	Amount     int64
	Currency   string
	Note       *string
	RecordedAt *time.Time
}

/*
Submit records a new pending price observation.

Description: Region restriction applies here: a collector carrying a market
assignment may only submit for that market. Moderators and admins submit
anywhere. The observation stays invisible to the public until approved.

Parameters:
  - context: context.Context
  - submitter: *sec.Principal (authenticated collector+)
  - input: SubmitInput

Returns:
  - *Price: Created pending submission
  - error: Validation, Forbidden (region), or storage failures
*/
func (service *Service) Submit(context context.Context, submitter *sec.Principal, input SubmitInput) (*Price, error) {
	validator := &validate.Validator{}
	validator.Required(FieldProductID, input.ProductID).UUID(FieldProductID, input.ProductID)
	validator.Required(FieldMarketID, input.MarketID).UUID(FieldMarketID, input.MarketID)
	validator.Positive(FieldAmount, input.Amount)
	validator.Required(FieldCurrency, input.Currency).Currency(FieldCurrency, input.Currency)

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

	price := &Price{
		ID:          uuidv7.New(),
		ProductID:   input.ProductID,
		MarketID:    input.MarketID,
		Amount:      input.Amount,
		Currency:    input.Currency,
		Status:      StatusPending,
		Note:        input.Note,
		SubmittedBy: submitter.ID,
		RecordedAt:  recordedAt,
	}

	if err := service.repo.Create(context, price); err != nil {
		return nil, err
	}

	service.logger.Info("price_submitted",
		slog.String("price_id", price.ID),
		slog.String("market_id", price.MarketID),
		slog.String("submitted_by", price.SubmittedBy),
	)
	return price, nil
}

// Get returns a single submission.
func (service *Service) Get(context context.Context, id string) (*Price, error) {
	return service.repo.Get(context, id)
}

// List returns the moderation listing, filterable by status/market/product.
func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Price, int, error) {
	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, filter.Status, StatusPending, StatusApproved, StatusRejected)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(context, filter, limit, offset)
}

/*
Latest returns the public deduplicated latest-price view.

Description: Approved observations are fetched newest first and collapsed to
one entry per (product, market) pair in request-scoped memory. Unfiltered and
market-only queries are served from the Redis cache when warm.

Parameters:
  - context: context.Context
  - filter: LatestFilter

Returns:
  - []*Price: One most-recent approved observation per composite key
  - error: Storage failures
*/
func (service *Service) Latest(context context.Context, filter LatestFilter) ([]*Price, error) {
	cacheKey := service.latestCacheKey(filter)

	if cacheKey != "" {
		if cached, ok := service.cache.GetLatest(context, cacheKey); ok {
			return cached, nil
		}
	}

	ordered, err := service.repo.ListApprovedByRecency(context, filter)
	if err != nil {
		return nil, err
	}

	latest := Dedup(ordered)

	if cacheKey != "" {
		service.cache.SetLatest(context, cacheKey, latest, latestCacheTTL)
	}

	return latest, nil
}

// latestCacheKey maps a filter to its cache slot, or "" when the combination
// is not cached (product- or province-filtered views are cheap and rare).
func (service *Service) latestCacheKey(filter LatestFilter) string {
	if filter.ProductID != "" || filter.ProvinceID != "" {
		return ""
	}
	if filter.MarketID != "" {
		return filter.MarketID
	}
	return allMarketsKey
}

/*
Approve publishes a pending submission.

Parameters:
  - context: context.Context
  - id: string
  - moderator: *sec.Principal

Returns:
  - *Price: Approved submission
  - error: NotFound, Conflict (already moderated), or storage failures
*/
func (service *Service) Approve(context context.Context, id string, moderator *sec.Principal) (*Price, error) {
	return service.moderate(context, id, StatusApproved, moderator, nil)
}

/*
Reject refuses a pending submission with a mandatory reason.

Parameters:
  - context: context.Context
  - id: string
  - moderator: *sec.Principal
  - reason: string

Returns:
  - *Price: Rejected submission
  - error: Validation (missing reason), NotFound, Conflict, or storage failures
*/
func (service *Service) Reject(context context.Context, id string, moderator *sec.Principal, reason string) (*Price, error) {
	validator := &validate.Validator{}
	validator.Required(FieldReason, reason).MaxLen(FieldReason, reason, 500)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	return service.moderate(context, id, StatusRejected, moderator, &reason)
}

func (service *Service) moderate(context context.Context, id, status string, moderator *sec.Principal, reason *string) (*Price, error) {
	transitioned, err := service.repo.Moderate(context, id, status, moderator.ID, reason)
	if err != nil {
		return nil, err
	}

	price, getErr := service.repo.Get(context, id)
	if getErr != nil {
		return nil, getErr
	}

	if !transitioned {
		// The row exists but was not pending.
		return nil, apperr.Conflict("Submission has already been moderated")
	}

	service.cache.InvalidateMarket(context, price.MarketID)

	service.logger.Info("price_moderated",
		slog.String("price_id", id),
		slog.String("status", status),
		slog.String("moderated_by", moderator.ID),
	)
	return price, nil
}
