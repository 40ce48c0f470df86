// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package report

import (
	"context"
	"log/slog"

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

// CreateInput holds a new complaint.
type CreateInput struct {
	SubjectKind string
	SubjectID   string
	Reason      string
}

// Create files a new open report on behalf of the reporter.
func (service *Service) Create(context context.Context, reporter *sec.Principal, input CreateInput) (*Report, error) {
	validator := &validate.Validator{}
	validator.Required(FieldSubjectKind, input.SubjectKind).OneOf(FieldSubjectKind, input.SubjectKind, SubjectKinds...)
	validator.Required(FieldSubjectID, input.SubjectID).UUID(FieldSubjectID, input.SubjectID)
	validator.Required(FieldReason, input.Reason).MaxLen(FieldReason, input.Reason, 500)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:          uuidv7.New(),
		SubjectKind: input.SubjectKind,
		SubjectID:   input.SubjectID,
		ReporterID:  reporter.ID,
		Reason:      input.Reason,
		Status:      StatusOpen,
	}

	if err := service.repo.Create(context, report); err != nil {
		return nil, err
	}

	service.logger.Info("report_created",
		slog.String("report_id", report.ID),
		slog.String("subject_kind", report.SubjectKind),
		slog.String("subject_id", report.SubjectID),
	)
	return report, nil
}

func (service *Service) Get(context context.Context, id string) (*Report, error) {
	return service.repo.Get(context, id)
}

func (service *Service) List(context context.Context, filter Filter, limit, offset int) ([]*Report, int, error) {
	if filter.Status != "" {
		validator := &validate.Validator{}
		validator.OneOf(FieldStatus, filter.Status, StatusOpen, StatusResolved, StatusDismissed)
		if err := validator.Err(); err != nil {
			return nil, 0, err
		}
	}
	return service.repo.List(context, filter, limit, offset)
}

// Resolve closes an open report as acted upon.
func (service *Service) Resolve(context context.Context, id string, resolver *sec.Principal) (*Report, error) {
	return service.close(context, id, StatusResolved, resolver)
}

// Dismiss closes an open report as unfounded.
func (service *Service) Dismiss(context context.Context, id string, resolver *sec.Principal) (*Report, error) {
	return service.close(context, id, StatusDismissed, resolver)
}

func (service *Service) close(context context.Context, id, status string, resolver *sec.Principal) (*Report, error) {
	transitioned, err := service.repo.Close(context, id, status, resolver.ID)
	if err != nil {
		return nil, err
	}

	report, getErr := service.repo.Get(context, id)
	if getErr != nil {
		return nil, getErr
	}

	if !transitioned {
		return nil, apperr.Conflict("Report has already been closed")
	}

	service.logger.Info("report_closed",
		slog.String("report_id", id),
		slog.String("status", status),
		slog.String("resolved_by", resolver.ID),
	)
	return report, nil
}
