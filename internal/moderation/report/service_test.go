// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package report_test

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/narkhlab/narkh/internal/moderation/report"
	"github.com/narkhlab/narkh/internal/platform/apperr"
	"github.com/narkhlab/narkh/internal/platform/sec"
)

const subjectID = "0191d7a8-0000-7000-8000-00000000000a"

type fakeRepo struct {
	mu      sync.Mutex
	reports map[string]*report.Report
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reports: make(map[string]*report.Report)}
}

func (repo *fakeRepo) Create(_ context.Context, r *report.Report) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	r.CreatedAt = time.Now()
	r.UpdatedAt = r.CreatedAt
	repo.reports[r.ID] = r
	return nil
}

func (repo *fakeRepo) Get(_ context.Context, id string) (*report.Report, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if r, ok := repo.reports[id]; ok {
		copied := *r
		return &copied, nil
	}
	return nil, apperr.NotFound("Report")
}

func (repo *fakeRepo) List(_ context.Context, f report.Filter, limit, offset int) ([]*report.Report, int, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	matched := make([]*report.Report, 0, len(repo.reports))
	for _, r := range repo.reports {
		if f.Status != "" && r.Status != f.Status {
			continue
		}
		if f.SubjectKind != "" && r.SubjectKind != f.SubjectKind {
			continue
		}
		copied := *r
		matched = append(matched, &copied)
	}
	total := len(matched)
	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

func (repo *fakeRepo) Close(_ context.Context, id, status, resolverID string) (bool, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	r, ok := repo.reports[id]
	if !ok || r.Status != report.StatusOpen {
		return false, nil
	}
	r.Status = status
	r.ResolvedBy = &resolverID
	r.UpdatedAt = time.Now()
	return true, nil
}

func newService() *report.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return report.NewService(newFakeRepo(), logger)
}

func reporter() *sec.Principal {
	return &sec.Principal{ID: "user-1", Role: sec.RoleUser}
}

func moderator() *sec.Principal {
	return &sec.Principal{ID: "moderator-1", Role: sec.RoleModerator}
}

/*
TestService_Create opens a report against a price or rate subject.
*/
func TestService_Create(t *testing.T) {
	service := newService()

	created, err := service.Create(context.Background(), reporter(), report.CreateInput{
		SubjectKind: report.SubjectPrice,
		SubjectID:   subjectID,
		Reason:      "Amount looks off by a factor of ten",
	})
	require.NoError(t, err)

	assert.Equal(t, report.StatusOpen, created.Status)
	assert.Equal(t, "user-1", created.ReporterID)
	assert.Nil(t, created.ResolvedBy)
}

/*
TestService_Create_Validation rejects malformed reports.
*/
func TestService_Create_Validation(t *testing.T) {
	service := newService()

	tests := []struct {
		name  string
		input report.CreateInput
	}{
		{"unknown_subject_kind", report.CreateInput{SubjectKind: "comment", SubjectID: subjectID, Reason: "spam"}},
		{"bad_subject_id", report.CreateInput{SubjectKind: report.SubjectRate, SubjectID: "rate-1", Reason: "spam"}},
		{"empty_reason", report.CreateInput{SubjectKind: report.SubjectPrice, SubjectID: subjectID, Reason: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := service.Create(context.Background(), reporter(), tt.input)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		})
	}
}

/*
TestService_CloseFlow covers resolve, dismiss, and the open-only transition.
*/
func TestService_CloseFlow(t *testing.T) {
	service := newService()
	mod := moderator()

	open := func(t *testing.T) *report.Report {
		t.Helper()
		created, err := service.Create(context.Background(), reporter(), report.CreateInput{
			SubjectKind: report.SubjectRate,
			SubjectID:   subjectID,
			Reason:      "Buy and sell are inverted",
		})
		require.NoError(t, err)
		return created
	}

	t.Run("resolve_open", func(t *testing.T) {
		created := open(t)
		resolved, err := service.Resolve(context.Background(), created.ID, mod)
		require.NoError(t, err)
		assert.Equal(t, report.StatusResolved, resolved.Status)
		require.NotNil(t, resolved.ResolvedBy)
		assert.Equal(t, mod.ID, *resolved.ResolvedBy)
	})

	t.Run("dismiss_open", func(t *testing.T) {
		created := open(t)
		dismissed, err := service.Dismiss(context.Background(), created.ID, mod)
		require.NoError(t, err)
		assert.Equal(t, report.StatusDismissed, dismissed.Status)
	})

	t.Run("second_decision_conflicts", func(t *testing.T) {
		created := open(t)
		_, err := service.Resolve(context.Background(), created.ID, mod)
		require.NoError(t, err)

		_, err = service.Dismiss(context.Background(), created.ID, mod)
		require.Error(t, err)
		assert.Equal(t, "CONFLICT", apperr.As(err).Code)
	})

	t.Run("missing_report", func(t *testing.T) {
		_, err := service.Resolve(context.Background(), "0191d7a8-dead-7000-8000-000000000000", mod)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_List_StatusFilter validates the status filter values.
*/
func TestService_List_StatusFilter(t *testing.T) {
	service := newService()

	_, _, err := service.List(context.Background(), report.Filter{Status: "archived"}, 10, 0)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)

	_, _, err = service.List(context.Background(), report.Filter{Status: report.StatusOpen}, 10, 0)
	assert.NoError(t, err)
}
