package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/category"
)

// PostgresCategoryRepository is the Postgres category repository.
type PostgresCategoryRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresCategoryRepository creates a new Postgres category repository.
func NewPostgresCategoryRepository(conn postgres.GenericConn) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List returns all categories ordered by rubro name, then category name.
func (r *PostgresCategoryRepository) List(ctx context.Context) ([]category.Category, error) {
	sql, args, err := r.sb.
		Select("c.id", "c.rubro_id", "c.name", "c.slug").
		From("categories c").
		Join("rubros r ON r.id = c.rubro_id").
		OrderBy("r.name", "c.name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var result []category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.RubroID, &c.Name, &c.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		result = append(result, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
