// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package market

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/narkhlab/narkh/internal/platform/middleware"
	requestutil "github.com/narkhlab/narkh/internal/platform/request"
	"github.com/narkhlab/narkh/internal/platform/respond"
	"github.com/narkhlab/narkh/internal/platform/sec"
	"github.com/narkhlab/narkh/pkg/pagination"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public
	router.Get("/", handler.listMarkets)
	router.Get("/{id}", handler.getMarket)

	// Moderator writes, admin delete
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(middleware.RequirePermission(sec.ActionGeoWrite))

		writeRoute.Post("/", handler.createMarket)
		writeRoute.Patch("/{id}", handler.updateMarket)

		writeRoute.With(middleware.RequirePermission(sec.ActionGeoDelete)).Delete("/{id}", handler.deleteMarket)
	})
}

func (handler *Handler) listMarkets(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		CityID: request.URL.Query().Get(FieldCityID),
		Kind:   request.URL.Query().Get(FieldKind),
		Query:  request.URL.Query().Get("q"),
	}

	markets, total, err := handler.service.ListMarkets(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, markets, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getMarket(writer http.ResponseWriter, request *http.Request) {
	market, err := handler.service.GetMarket(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, market)
}

func (handler *Handler) createMarket(writer http.ResponseWriter, request *http.Request) {
	var input Market
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateMarket(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateMarket(writer http.ResponseWriter, request *http.Request) {
	var input Market
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateMarket(request.Context(), requestutil.Param(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteMarket(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteMarket(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
