// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package city

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

func (repository *PostgresRepository) ListCities(context context.Context, f Filter, limit, offset int) ([]*City, int, error) {
	// Joined with geo.province for the parent name.
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, p.%s, c.%s, c.%s
		FROM %s c
		JOIN %s p ON p.%s = c.%s
		WHERE c.%s IS NULL AND p.%s IS NULL
	`,
		schema.GeoCity.ID, schema.GeoCity.ProvinceID, schema.GeoCity.Name, schema.GeoProvince.Name,
		schema.GeoCity.CreatedAt, schema.GeoCity.UpdatedAt,
		schema.GeoCity.Table,
		schema.GeoProvince.Table, schema.GeoProvince.ID, schema.GeoCity.ProvinceID,
		schema.GeoCity.DeletedAt, schema.GeoProvince.DeletedAt,
	)
	countQuery := fmt.Sprintf(`
		SELECT count(*)
		FROM %s c
		JOIN %s p ON p.%s = c.%s
		WHERE c.%s IS NULL AND p.%s IS NULL
	`,
		schema.GeoCity.Table,
		schema.GeoProvince.Table, schema.GeoProvince.ID, schema.GeoCity.ProvinceID,
		schema.GeoCity.DeletedAt, schema.GeoProvince.DeletedAt,
	)

	args := []any{}
	countArgs := []any{}

	if f.ProvinceID != "" {
		clause := fmt.Sprintf(" AND c.%s = $%d", schema.GeoCity.ProvinceID, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, f.ProvinceID)
		countArgs = append(countArgs, f.ProvinceID)
	}
	if f.Query != "" {
		clause := fmt.Sprintf(" AND c.%s ILIKE $%d", schema.GeoCity.Name, len(args)+1)
		query += clause
		countQuery += clause
		args = append(args, "%"+f.Query+"%")
		countArgs = append(countArgs, "%"+f.Query+"%")
	}

	query += fmt.Sprintf(" ORDER BY c.%s ASC LIMIT $%d OFFSET $%d", schema.GeoCity.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_cities")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_cities")
	}
	defer rows.Close()

	var cities []*City
	for rows.Next() {
		c := &City{}
		if err := rows.Scan(&c.ID, &c.ProvinceID, &c.Name, &c.ProvinceName, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_city")
		}
		cities = append(cities, c)
	}

	return cities, total, nil
}

func (repository *PostgresRepository) GetCity(context context.Context, id string) (*City, error) {
	query := fmt.Sprintf(`
		SELECT c.%s, c.%s, c.%s, p.%s, c.%s, c.%s
		FROM %s c
		JOIN %s p ON p.%s = c.%s
		WHERE c.%s = $1 AND c.%s IS NULL
	`,
		schema.GeoCity.ID, schema.GeoCity.ProvinceID, schema.GeoCity.Name, schema.GeoProvince.Name,
		schema.GeoCity.CreatedAt, schema.GeoCity.UpdatedAt,
		schema.GeoCity.Table,
		schema.GeoProvince.Table, schema.GeoProvince.ID, schema.GeoCity.ProvinceID,
		schema.GeoCity.ID, schema.GeoCity.DeletedAt,
	)
	c := &City{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&c.ID, &c.ProvinceID, &c.Name, &c.ProvinceName, &c.CreatedAt, &c.UpdatedAt,
	)

	return c, dberr.Wrap(err, "get_city")
}

func (repository *PostgresRepository) CreateCity(context context.Context, c *City) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.GeoCity.Table, schema.GeoCity.ID, schema.GeoCity.ProvinceID, schema.GeoCity.Name,
		schema.GeoCity.CreatedAt, schema.GeoCity.UpdatedAt,
		schema.GeoCity.CreatedAt, schema.GeoCity.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.ProvinceID, c.Name).Scan(&c.CreatedAt, &c.UpdatedAt)
	return dberr.Wrap(err, "create_city")
}

func (repository *PostgresRepository) UpdateCity(context context.Context, c *City) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.GeoCity.Table, schema.GeoCity.ProvinceID, schema.GeoCity.Name, schema.GeoCity.UpdatedAt,
		schema.GeoCity.ID, schema.GeoCity.DeletedAt,
		schema.GeoCity.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, c.ID, c.ProvinceID, c.Name).Scan(&c.UpdatedAt)
	return dberr.Wrap(err, "update_city")
}

func (repository *PostgresRepository) DeleteCity(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.GeoCity.Table, schema.GeoCity.DeletedAt, schema.GeoCity.ID, schema.GeoCity.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_city")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
