// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package report

import (
	"net/http"

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
	// Any authenticated user may file a report.
	router.With(middleware.RequirePermission(sec.ActionReportCreate)).Post("/", handler.create)

	// Moderator: queue and outcomes.
	router.Group(func(modRoute chi.Router) {
		modRoute.Use(middleware.RequirePermission(sec.ActionReportResolve))

		modRoute.Get("/", handler.list)
		modRoute.Get("/{id}", handler.get)
		modRoute.Post("/{id}/resolve", handler.resolve)
		modRoute.Post("/{id}/dismiss", handler.dismiss)
	})
}

type createRequest struct {
	SubjectKind string `json:"subject_kind"`
	SubjectID   string `json:"subject_id"`
	Reason      string `json:"reason"`
}

func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	reporter, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	report, err := handler.service.Create(request.Context(), reporter, CreateInput{
		SubjectKind: input.SubjectKind,
		SubjectID:   input.SubjectID,
		Reason:      input.Reason,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, report)
}

func (handler *Handler) list(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	filter := Filter{
		Status:      request.URL.Query().Get(FieldStatus),
		SubjectKind: request.URL.Query().Get(FieldSubjectKind),
	}

	reports, total, err := handler.service.List(request.Context(), filter, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, reports, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

func (handler *Handler) get(writer http.ResponseWriter, request *http.Request) {
	report, err := handler.service.Get(request.Context(), requestutil.Param(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) resolve(writer http.ResponseWriter, request *http.Request) {
	resolver, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Resolve(request.Context(), requestutil.Param(request, "id"), resolver)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}

func (handler *Handler) dismiss(writer http.ResponseWriter, request *http.Request) {
	resolver, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	report, err := handler.service.Dismiss(request.Context(), requestutil.Param(request, "id"), resolver)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}
	respond.OK(writer, report)
}
