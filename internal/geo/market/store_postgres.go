// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package market

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

func (repository *PostgresRepository) ListMarkets(context context.Context, f Filter, limit, offset int) ([]*Market, int, error) {
	query := fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s, m.%s, c.%s, m.%s, m.%s
		FROM %s m
		JOIN %s c ON c.%s = m.%s
		WHERE m.%s IS NULL AND c.%s IS NULL
	`,
		schema.GeoMarket.ID, schema.GeoMarket.CityID, schema.GeoMarket.Name, schema.GeoMarket.Slug,
		schema.GeoMarket.Kind, schema.GeoCity.Name,
		schema.GeoMarket.CreatedAt, schema.GeoMarket.UpdatedAt,
		schema.GeoMarket.Table,
		schema.GeoCity.Table, schema.GeoCity.ID, schema.GeoMarket.CityID,
		schema.GeoMarket.DeletedAt, schema.GeoCity.DeletedAt,
	)
	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM %s m
		JOIN %s c ON c.%s = m.%s
		WHERE m.%s IS NULL AND c.%s IS NULL
	`,
		schema.GeoMarket.Table,
		schema.GeoCity.Table, schema.GeoCity.ID, schema.GeoMarket.CityID,
		schema.GeoMarket.DeletedAt, schema.GeoCity.DeletedAt,
	)

	args := []any{}
	countArgs := []any{}

	if f.CityID != "" {
		clause := fmt.Sprintf(" AND m.%s = $%d", schema.GeoMarket.CityID, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.CityID)
		countArgs = append(countArgs, f.CityID)
	}
	if f.Kind != "" {
		clause := fmt.Sprintf(" AND m.%s = $%d", schema.GeoMarket.Kind, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.Kind)
		countArgs = append(countArgs, f.Kind)
	}
	if f.Query != "" {
		clause := fmt.Sprintf(" AND m.%s ILIKE $%d", schema.GeoMarket.Name, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, "%"+f.Query+"%")
		countArgs = append(countArgs, "%"+f.Query+"%")
	}

	query += fmt.Sprintf(" ORDER BY m.%s ASC LIMIT $%d OFFSET $%d", schema.GeoMarket.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_markets")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_markets")
	}
	defer rows.Close()

	var markets []*Market
	for rows.Next() {
		m := &Market{}
		if err := rows.Scan(&m.ID, &m.CityID, &m.Name, &m.Slug, &m.Kind, &m.CityName, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_market")
		}
		markets = append(markets, m)
	}

	return markets, total, nil
}

func (repository *PostgresRepository) GetMarket(context context.Context, id string) (*Market, error) {
	query := fmt.Sprintf(`
		SELECT m.%s, m.%s, m.%s, m.%s, m.%s, c.%s, m.%s, m.%s
		FROM %s m
		JOIN %s c ON c.%s = m.%s
		WHERE m.%s = $1 AND m.%s IS NULL
	`,
		schema.GeoMarket.ID, schema.GeoMarket.CityID, schema.GeoMarket.Name, schema.GeoMarket.Slug,
		schema.GeoMarket.Kind, schema.GeoCity.Name,
		schema.GeoMarket.CreatedAt, schema.GeoMarket.UpdatedAt,
		schema.GeoMarket.Table,
		schema.GeoCity.Table, schema.GeoCity.ID, schema.GeoMarket.CityID,
		schema.GeoMarket.ID, schema.GeoMarket.DeletedAt,
	)
	m := &Market{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&m.ID, &m.CityID, &m.Name, &m.Slug, &m.Kind, &m.CityName, &m.CreatedAt, &m.UpdatedAt,
	)

	return m, dberr.Wrap(err, "get_market")
}

func (repository *PostgresRepository) CreateMarket(context context.Context, m *Market) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.GeoMarket.Table, schema.GeoMarket.ID, schema.GeoMarket.CityID, schema.GeoMarket.Name,
		schema.GeoMarket.Slug, schema.GeoMarket.Kind,
		schema.GeoMarket.CreatedAt, schema.GeoMarket.UpdatedAt,
		schema.GeoMarket.CreatedAt, schema.GeoMarket.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, m.ID, m.CityID, m.Name, m.Slug, m.Kind).Scan(&m.CreatedAt, &m.UpdatedAt)
	return dberr.Wrap(err, "create_market")
}

func (repository *PostgresRepository) UpdateMarket(context context.Context, m *Market) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.GeoMarket.Table, schema.GeoMarket.CityID, schema.GeoMarket.Name, schema.GeoMarket.Slug,
		schema.GeoMarket.Kind, schema.GeoMarket.UpdatedAt,
		schema.GeoMarket.ID, schema.GeoMarket.DeletedAt,
		schema.GeoMarket.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, m.ID, m.CityID, m.Name, m.Slug, m.Kind).Scan(&m.UpdatedAt)
	return dberr.Wrap(err, "update_market")
}

func (repository *PostgresRepository) DeleteMarket(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.GeoMarket.Table, schema.GeoMarket.DeletedAt, schema.GeoMarket.ID, schema.GeoMarket.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_market")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
