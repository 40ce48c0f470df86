// Copyright (c) 2026 Narkh. All rights reserved.
// Author: dev@narkh.app

package province

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

func (repository *PostgresRepository) ListProvinces(context context.Context, f Filter, limit, offset int) ([]*Province, int, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s IS NULL
	`,
		schema.GeoProvince.ID, schema.GeoProvince.Name, schema.GeoProvince.Code,
		schema.GeoProvince.CreatedAt, schema.GeoProvince.UpdatedAt,
		schema.GeoProvince.Table, schema.GeoProvince.DeletedAt,
	)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s WHERE %s IS NULL`,
		schema.GeoProvince.Table, schema.GeoProvince.DeletedAt)

	args := []any{}
	countArgs := []any{}

	if f.Query != "" {
		searchTerm := "%" + f.Query + "%"
		clause := fmt.Sprintf(" AND (%s ILIKE $1 OR %s ILIKE $1)", schema.GeoProvince.Name, schema.GeoProvince.Code)
		query += clause
		countQuery += clause
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(" ORDER BY %s ASC LIMIT $%d OFFSET $%d", schema.GeoProvince.Name, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.db.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, "count_provinces")
	}

	rows, err := repository.db.Query(context, query, args...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, "list_provinces")
	}
	defer rows.Close()

	var provinces []*Province
	for rows.Next() {
		p := &Province{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Code, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, "scan_province")
		}
		provinces = append(provinces, p)
	}

	return provinces, total, nil
}

func (repository *PostgresRepository) GetProvince(context context.Context, id string) (*Province, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s IS NULL
	`,
		schema.GeoProvince.ID, schema.GeoProvince.Name, schema.GeoProvince.Code,
		schema.GeoProvince.CreatedAt, schema.GeoProvince.UpdatedAt,
		schema.GeoProvince.Table, schema.GeoProvince.ID, schema.GeoProvince.DeletedAt,
	)
	p := &Province{}

	err := repository.db.QueryRow(context, query, id).Scan(
		&p.ID, &p.Name, &p.Code, &p.CreatedAt, &p.UpdatedAt,
	)

	return p, dberr.Wrap(err, "get_province")
}

func (repository *PostgresRepository) CreateProvince(context context.Context, p *Province) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING %s, %s
	`,
		schema.GeoProvince.Table, schema.GeoProvince.ID, schema.GeoProvince.Name, schema.GeoProvince.Code,
		schema.GeoProvince.CreatedAt, schema.GeoProvince.UpdatedAt,
		schema.GeoProvince.CreatedAt, schema.GeoProvince.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, p.ID, p.Name, p.Code).Scan(&p.CreatedAt, &p.UpdatedAt)
	return dberr.Wrap(err, "create_province")
}

func (repository *PostgresRepository) UpdateProvince(context context.Context, p *Province) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = NOW()
		WHERE %s = $1 AND %s IS NULL
		RETURNING %s
	`,
		schema.GeoProvince.Table, schema.GeoProvince.Name, schema.GeoProvince.Code, schema.GeoProvince.UpdatedAt,
		schema.GeoProvince.ID, schema.GeoProvince.DeletedAt,
		schema.GeoProvince.UpdatedAt,
	)

	err := repository.db.QueryRow(context, query, p.ID, p.Name, p.Code).Scan(&p.UpdatedAt)
	return dberr.Wrap(err, "update_province")
}

func (repository *PostgresRepository) DeleteProvince(context context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NOW() WHERE %s = $1 AND %s IS NULL`,
		schema.GeoProvince.Table, schema.GeoProvince.DeletedAt, schema.GeoProvince.ID, schema.GeoProvince.DeletedAt,
	)

	cmd, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_province")
	}

	if cmd.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}
