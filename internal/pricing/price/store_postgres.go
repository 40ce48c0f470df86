// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package price

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

func priceColumns(alias string) string {
	t := schema.PricingPrice
	return fmt.Sprintf("%[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s, %[1]s.%s",
		alias,
		t.ID, t.ProductID, t.MarketID, t.Amount, t.Currency, t.Status,
		t.Note, t.RejectReason, t.SubmittedBy, t.ModeratedBy, t.RecordedAt,
		t.CreatedAt, t.UpdatedAt,
	)
}

func scanPrice(row interface{ Scan(...any) error }, p *Price, joined bool) error {
	dest := []any{
		&p.ID, &p.ProductID, &p.MarketID, &p.Amount, &p.Currency, &p.Status,
		&p.Note, &p.RejectReason, &p.SubmittedBy, &p.ModeratedBy, &p.RecordedAt,
		&p.CreatedAt, &p.UpdatedAt,
	}
	if joined {
		dest = append(dest, &p.ProductName, &p.MarketName)
	}
	return row.Scan(dest...)
}

func (repository *PostgresRepository) Create(context context.Context, p *Price) error {
	t := schema.PricingPrice
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
		RETURNING %s, %s
	`,
		t.Table, t.ID, t.ProductID, t.MarketID, t.Amount, t.Currency, t.Status,
		t.Note, t.SubmittedBy, t.RecordedAt, t.CreatedAt, t.UpdatedAt,
		t.CreatedAt, t.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query,
		p.ID, p.ProductID, p.MarketID, p.Amount, p.Currency, p.Status,
		p.Note, p.SubmittedBy, p.RecordedAt,
	).Scan(&p.CreatedAt, &p.UpdatedAt)

	return dberr.Wrap(err, "create_price")
}

func (repository *PostgresRepository) Get(context context.Context, id string) (*Price, error) {
	t := schema.PricingPrice
	query := fmt.Sprintf(`
		SELECT %s, pr.%s, m.%s
		FROM %s p
		JOIN %s pr ON pr.%s = p.%s
		JOIN %s m ON m.%s = p.%s
		WHERE p.%s = $1
	`,
		priceColumns("p"), schema.CatalogProduct.Name, schema.GeoMarket.Name,
		t.Table,
		schema.CatalogProduct.Table, schema.CatalogProduct.ID, t.ProductID,
		schema.GeoMarket.Table, schema.GeoMarket.ID, t.MarketID,
		t.ID,
	)

	p := &Price{}
	err := scanPrice(repository.db.QueryRow(context, query, id), p, true)
	return p, dberr.Wrap(err, "get_price")
}

func (repository *PostgresRepository) List(context context.Context, f Filter, limit, offset int) ([]*Price, int, error) {
	t := schema.PricingPrice
	base := fmt.Sprintf(`
		FROM %s p
		JOIN %s pr ON pr.%s = p.%s
		JOIN %s m ON m.%s = p.%s
		WHERE TRUE
	`,
		t.Table,
		schema.CatalogProduct.Table, schema.CatalogProduct.ID, t.ProductID,
		schema.GeoMarket.Table, schema.GeoMarket.ID, t.MarketID,
	)

	args := []any{}
	if f.Status != "" {
		args = append(args, f.Status)
		base += fmt.Sprintf(" AND p.%s = $%d", t.Status, len(args))
	}
	if f.MarketID != "" {
		args = append(args, f.MarketID)
		base += fmt.Sprintf(" AND p.%s = $%d", t.MarketID, len(args))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		base += fmt.Sprintf(" AND p.%s = $%d", t.ProductID, len(args))
	}

	var total int
	if err := repository.db.QueryRow(context, "SELECT count(*) "+base, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_prices")
	}

	query := fmt.Sprintf("SELECT %s, pr.%s, m.%s %s ORDER BY p.%s DESC LIMIT $%d OFFSET $%d",
		priceColumns("p"), schema.CatalogProduct.Name, schema.GeoMarket.Name, base,
		t.RecordedAt, len(args)+1, len(args)+2,
	)
	args = append(args, limit, offset)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_prices")
	}
	defer rows.Close()

	var prices []*Price
	for rows.Next() {
		p := &Price{}
		if err := scanPrice(rows, p, true); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_price")
		}
		prices = append(prices, p)
	}

	return prices, total, nil
}

func (repository *PostgresRepository) ListApprovedByRecency(context context.Context, f LatestFilter) ([]*Price, error) {
	t := schema.PricingPrice
	query := fmt.Sprintf(`
		SELECT %s, pr.%s, m.%s
		FROM %s p
		JOIN %s pr ON pr.%s = p.%s
		JOIN %s m ON m.%s = p.%s
		JOIN %s c ON c.%s = m.%s
		WHERE p.%s = '%s'
	`,
		priceColumns("p"), schema.CatalogProduct.Name, schema.GeoMarket.Name,
		t.Table,
		schema.CatalogProduct.Table, schema.CatalogProduct.ID, t.ProductID,
		schema.GeoMarket.Table, schema.GeoMarket.ID, t.MarketID,
		schema.GeoCity.Table, schema.GeoCity.ID, schema.GeoMarket.CityID,
		t.Status, StatusApproved,
	)

	args := []any{}
	if f.ProvinceID != "" {
		args = append(args, f.ProvinceID)
		query += fmt.Sprintf(" AND c.%s = $%d", schema.GeoCity.ProvinceID, len(args))
	}
	if f.MarketID != "" {
		args = append(args, f.MarketID)
		query += fmt.Sprintf(" AND p.%s = $%d", t.MarketID, len(args))
	}
	if f.ProductID != "" {
		args = append(args, f.ProductID)
		query += fmt.Sprintf(" AND p.%s = $%d", t.ProductID, len(args))
	}

	// Newest first so the dedup pass keeps the most recent observation.
	query += fmt.Sprintf(" ORDER BY p.%s DESC", t.RecordedAt)

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "list_latest_prices")
	}
	defer rows.Close()

	var prices []*Price
	for rows.Next() {
		p := &Price{}
		if err := scanPrice(rows, p, true); err != nil {
			return nil, dberr.Wrap(err, "scan_latest_price")
		}
		prices = append(prices, p)
	}

	return prices, nil
}

func (repository *PostgresRepository) Moderate(context context.Context, id, status string, moderatorID string, rejectReason *string) (bool, error) {
	t := schema.PricingPrice

	// Guarded transition: only pending rows move.
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
		return false, dberr.Wrap(err, "moderate_price")
	}

	return cmd.RowsAffected() > 0, nil
}
