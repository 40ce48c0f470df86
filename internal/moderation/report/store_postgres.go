// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package report

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/narkhlab/narkh/internal/platform/database/schema"
	"github.com/narkhlab/narkh/internal/platform/dberr"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func reportColumns() string {
	t := schema.ModerationReport
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s",
		t.ID, t.SubjectKind, t.SubjectID, t.ReporterID, t.Reason, t.Status,
		t.ResolvedBy, t.CreatedAt, t.UpdatedAt,
	)
}

func scanReport(row interface{ Scan(...any) error }, r *Report) error {
	return row.Scan(
		&r.ID, &r.SubjectKind, &r.SubjectID, &r.ReporterID, &r.Reason, &r.Status,
		&r.ResolvedBy, &r.CreatedAt, &r.UpdatedAt,
	)
}

func (repository *PostgresRepository) Create(context context.Context, r *Report) error {
	t := schema.ModerationReport
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.SubjectKind, t.SubjectID, t.ReporterID, t.Reason, t.Status,
		t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		r.ID, r.SubjectKind, r.SubjectID, r.ReporterID, r.Reason, r.Status,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	return dberr.Wrap(err, "create_report")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Report, error) {
	t := schema.ModerationReport
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`, reportColumns(), t.Table, t.ID)

	r := &Report{}
	err := scanReport(repository.db.QueryRow(context, query, id), r)
	return r, dberr.Wrap(err, "get_report")
}

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*Report, int, error) {
	t := schema.ModerationReport
	base := fmt.Sprintf(" FROM %s WHERE TRUE", t.Table)

	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		base += fmt.Sprintf(" AND %s = $%d", t.Status, len(args))
	}
	if f.SubjectKind != "" {
		args = append(args, f.SubjectKind)
		base += fmt.Sprintf(" AND %s = $%d", t.SubjectKind, len(args))
	}

	var total int
	if err := repository.db.QueryRow(context, "SELECT count(*)"+base, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_reports")
	}

	query := fmt.Sprintf("SELECT %s%s ORDER BY %s DESC LIMIT $%d OFFSET $%d",
		reportColumns(), base, t.CreatedAt, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_reports")
	}
	defer rows.Close()

	var reports []*Report
	for rows.Next() {
		r := &Report{}
		if err := scanReport(rows, r); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_report")
		}
		reports = append(reports, r)
	}

	return reports, total, nil
}

func (repository *PostgresRepository) Close(context context.Context, id, status, resolverID string) (bool, error) {
	t := schema.ModerationReport

	// Guarded transition: only open rows move.
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s = '%s'
	`,
		t.Table, t.Status, t.ResolvedBy, t.UpdatedAt,
		t.ID, t.Status, StatusOpen,
	)

	cmd, err := repository.db.Exec(context, query, id, status, resolverID)
	if err != nil {
		return false, dberr.Wrap(err, "close_report")
	}

	return cmd.RowsAffected() > 0, nil
}
