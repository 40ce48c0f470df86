// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package city

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
	router.Get("/", handler.listCities)
	router.Get("/{id}", handler.getCity)

	// Moderator writes, admin delete
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(middleware.RequirePermission(sec.ActionGeoWrite))

		writeRoute.Post("/", handler.createCity)
		writeRoute.Patch("/{id}", handler.updateCity)

		writeRoute.With(middleware.RequirePermission(sec.ActionGeoDelete)).Delete("/{id}", handler.deleteCity)
	})
}

func (handler *Handler) listCities(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		ProvinceID: request.URL.Query().Get(FieldProvinceID),
		Query:      request.URL.Query().Get("q"),
	}

	cities, total, err := handler.service.ListCities(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, cities, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getCity(writer http.ResponseWriter, request *http.Request) {
	city, err := handler.service.GetCity(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, city)
}

func (handler *Handler) createCity(writer http.ResponseWriter, request *http.Request) {
	var input City
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateCity(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateCity(writer http.ResponseWriter, request *http.Request) {
	var input City
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateCity(request.Context(), requestutil.Param(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteCity(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteCity(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
