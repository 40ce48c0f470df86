// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package price

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/narkhlab/narkh/internal/platform/middleware"
	requestutil "github.com/narkhlab/narkh/internal/platform/request"
	"github.com/narkhlab/narkh/internal/platform/respond"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/internal/platform/validate"
	"github.com/narkhlab/narkh/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public: the deduplicated latest view.
	router.Get("/latest", handler.latest)

	// Collector+: submission.
	router.With(middleware.RequirePermission(sec.ActionPriceSubmit)).Post("/", handler.submit)

	// Moderator: queue and decisions.
	router.Group(func(modRoute chi.Router) {
		modRoute.Use(middleware.RequirePermission(sec.ActionPriceModerate))

		modRoute.Get("/", handler.list)
		modRoute.Get("/{id}", handler.get)
		modRoute.Post("/{id}/approve", handler.approve)
		modRoute.Post("/{id}/reject", handler.reject)
	})
}

type submitRequest struct {
	ProductID  string     `json:"product_id"`
	MarketID   string     `json:"market_id"`
	Amount     int64      `json:"amount"`
	Currency   string     `json:"currency"`
	Note       *string    `json:"note"`
	RecordedAt *time.Time `json:"recorded_at"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

func (handler *Handler) submit(writer http.ResponseWriter, request *http.Request) {
	submitter, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input submitRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	price, err := handler.service.Submit(request.Context(), submitter, SubmitInput{
		ProductID:  input.ProductID,
		MarketID:   input.MarketID,
		Amount:     input.Amount,
		Currency:   input.Currency,
		Note:       input.Note,
		RecordedAt: input.RecordedAt,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, price)
}

func (handler *Handler) latest(writer http.ResponseWriter, request *http.Request) {
	filter := LatestFilter{
		ProvinceID: request.URL.Query().Get(FieldProvinceID),
		MarketID:   request.URL.Query().Get(FieldMarketID),
		ProductID:  request.URL.Query().Get(FieldProductID),
	}

	prices, err := handler.service.Latest(request.Context(), filter)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{"prices": prices})
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Status:    request.URL.Query().Get(FieldStatus),
		MarketID:  request.URL.Query().Get(FieldMarketID),
		ProductID: request.URL.Query().Get(FieldProductID),
	}

	prices, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, prices, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	price, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, price)
}

func (handler *Handler) approve(writer http.ResponseWriter, request *http.Request) {
	moderator, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	price, err := handler.service.Approve(request.Context(), requestutil.Param(request, "id"), moderator)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, price)
}

func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request) {
	moderator, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rejectRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	price, err := handler.service.Reject(request.Context(), requestutil.Param(request, "id"), moderator, input.Reason)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, price)
}
