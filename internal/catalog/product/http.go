// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package product

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
	router.Get("/", handler.listProducts)
	router.Get("/{id}", handler.getProduct)

	// Moderator writes, admin delete
	router.Group(func(writeRoute chi.Router) {
		writeRoute.Use(middleware.RequirePermission(sec.ActionProductWrite))

		writeRoute.Post("/", handler.createProduct)
		writeRoute.Patch("/{id}", handler.updateProduct)

		writeRoute.With(middleware.RequirePermission(sec.ActionProductDelete)).Delete("/{id}", handler.deleteProduct)
	})
}

func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Category: request.URL.Query().Get(FieldCategory),
		Query:    request.URL.Query().Get("q"),
	}

	products, total, err := handler.service.ListProducts(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, products, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	product, err := handler.service.GetProduct(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, product)
}

func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var input Product
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.CreateProduct(request.Context(), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.Created(writer, input)
}

func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	var input Product
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.UpdateProduct(request.Context(), requestutil.Param(request, "id"), &input); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, input)
}

func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	if err := handler.service.DeleteProduct(request.Context(), requestutil.Param(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.NoContent(writer)
}
