// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package exchange

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

func rateColumns(alias string) string {
	t := schema.PricingExchangeRate
	return fmt.Sprintf("%[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s",
		alias,
		t.ID, t.MarketID, t.BaseCurrency, t.QuoteCurrency, t.Buy, t.Sell,
		t.Status, t.RejectReason, t.SubmittedBy, t.ModeratedBy, t.RecordedAt,
		t.CreatedAt, t.UpdatedAt,
	)
}

func scanRate(row interface{ Scan(...any) error }, r *ExchangeRate, joined bool) error {
	dest := []any{
		&r.ID, &r.MarketID, &r.BaseCurrency, &r.QuoteCurrency, &r.Buy, &r.Sell,
		&r.Status, &r.RejectReason, &r.SubmittedBy, &r.ModeratedBy, &r.RecordedAt,
		&r.CreatedAt, &r.UpdatedAt,
	}
	if joined {
		dest = append(dest, &r.MarketName)
	}
	return row.Scan(dest...)
}

func (repository *PostgresRepository) Create(context context.Context, r *ExchangeRate) error {
	t := schema.PricingExchangeRate
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.MarketID, t.BaseCurrency, t.QuoteCurrency, t.Buy, t.Sell,
		t.Status, t.SubmittedBy, t.RecordedAt, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		r.ID, r.MarketID, r.BaseCurrency, r.QuoteCurrency, r.Buy, r.Sell,
		r.Status, r.SubmittedBy, r.RecordedAt,
	).Scan(&r.CreatedAt, &r.UpdatedAt)

	return dberr.Wrap(err, "create_exchange_rate")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*ExchangeRate, error) {
	t := schema.PricingExchangeRate
	query := fmt.Sprintf(`
		SELECT %s, m.%s
		FROM %s r
		JOIN %s m ON m.%s = r.%s
		WHERE r.%s = $1
	`,
		rateColumns("r"), schema.GeoMarket.Name,
		t.Table,
		schema.GeoMarket.Table, schema.GeoMarket.ID, t.MarketID,
		t.ID,
	)

	r := &ExchangeRate{}
	err := scanRate(repository.db.QueryRow(context, query, id), r, true)
	return r, dberr.Wrap(err, "get_exchange_rate")
}

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*ExchangeRate, int, error) {
	t := schema.PricingExchangeRate
	base := fmt.Sprintf(`
		FROM %s r
		JOIN %s m ON m.%s = r.%s
		WHERE TRUE
	`,
		t.Table,
		schema.GeoMarket.Table, schema.GeoMarket.ID, t.MarketID,
	)

	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		base += fmt.Sprintf(" AND r.%s = $%d", t.Status, len(args))
	}
	if f.MarketID != "" {
		args = append(args, f.MarketID)
		base += fmt.Sprintf(" AND r.%s = $%d", t.MarketID, len(args))
	}

	var total int
	if err := repository.db.QueryRow(context, "SELECT count(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_exchange_rates")
	}

	query := fmt.Sprintf("SELECT %s, m.%s %s ORDER BY r.%s DESC LIMIT $%d OFFSET $%d",
		rateColumns("r"), schema.GeoMarket.Name, base,
		t.RecordedAt, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_exchange_rates")
	}
	defer rows.Close()

	var rates []*ExchangeRate
	for rows.Next() {
		r := &ExchangeRate{}
		if err := scanRate(rows, r, true); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_exchange_rate")
		}
		rates = append(rates, r)
	}

	return rates, total, nil
}

func (repository *PostgresRepository) ListApprovedByRecency(context context.Context, f LatestFilter) ([]*ExchangeRate, error) {
	t := schema.PricingExchangeRate
	query := fmt.Sprintf(`
		SELECT %s, m.%s
		FROM %s r
		JOIN %s m ON m.%s = r.%s
		WHERE r.%s = '%s'
	`,
		rateColumns("r"), schema.GeoMarket.Name,
		t.Table,
		schema.GeoMarket.Table, schema.GeoMarket.ID, t.MarketID,
		t.Status, StatusApproved,
	)

	args := []any{}
	if f.MarketID != "" {
		args = append(args, f.MarketID)
		query += fmt.Sprintf(" AND r.%s = $%d", t.MarketID, len(args))
	}
	if f.BaseCurrency != "" {
		args = append(args, f.BaseCurrency)
		query += fmt.Sprintf(" AND r.%s = $%d", t.BaseCurrency, len(args))
	}
	if f.QuoteCurrency != "" {
		args = append(args, f.QuoteCurrency)
		query += fmt.Sprintf(" AND r.%s = $%d", t.QuoteCurrency, len(args))
	}

	query += fmt.Sprintf(" ORDER BY r.%s DESC", t.RecordedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_latest_exchange_rates")
	}
	defer rows.Close()

	var rates []*ExchangeRate
	for rows.Next() {
		r := &ExchangeRate{}
		if err := scanRate(rows, r, true); err != nil {
			return nil, dberr.Wrap(err, "scan_latest_exchange_rate")
		}
		rates = append(rates, r)
	}

	return rates, nil
}

func (repository *PostgresRepository) Moderate(context context.Context, id, status string, moderatorID string, rejectReason *string) (bool, error) {
	t := schema.PricingExchangeRate

	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = NOW()
		WHERE %s = $1 AND %s = '%s'
	`,
		t.Table, t.Status, t.ModeratedBy, t.RejectReason, t.UpdatedAt,
		t.ID, t.Status, StatusPending,
	)

	cmd, err := repository.db.Exec(context, query, id, status, moderatorID, rejectReason)
	if err != nil {
		return false, dberr.Wrap(err, "moderate_exchange_rate")
	}

	return cmd.RowsAffected() > 0, nil
}
