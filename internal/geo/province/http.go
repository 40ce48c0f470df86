// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package province

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
	router.Get("/", handler.listProvinces)
	router.Get("/{id}", handler.getProvince)

	// Moderator writes, admin delete
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(middleware.RequirePermission(sec.ActionGeoWrite))

		writeRoute.Post("/", handler.createProvince)
		writeRoute.Patch("/{id}", handler.updateProvince)

		writeRoute.With(middleware.RequirePermission(sec.ActionGeoDelete)).Delete("/{id}", handler.deleteProvince)
	})
}

func (handler *Handler) listProvinces(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Query: request.URL.Query().Get("q"),
	}

	provinces, total, err := handler.service.ListProvinces(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, provinces, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getProvince(writer http.ResponseWriter, request *http.Request) {
	province, err := handler.service.GetProvince(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, province)
}

func (handler *Handler) createProvince(writer http.ResponseWriter, request *http.Request) {
	var input Province
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateProvince(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateProvince(writer http.ResponseWriter, request *http.Request) {
	var input Province
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateProvince(request.Context(), requestutil.Param(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteProvince(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteProvince(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
