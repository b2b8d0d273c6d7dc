package postgresrepo

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/manfeltor/dadsproject/internal/dal/postgres"
	"github.com/manfeltor/dadsproject/internal/service/models/rubro"
)

// PostgresRubroRepository is the Postgres rubro repository.
type PostgresRubroRepository struct {
	conn postgres.GenericConn
	sb   sq.StatementBuilderType
}

// NewPostgresRubroRepository creates a new Postgres rubro repository.
func NewPostgresRubroRepository(conn postgres.GenericConn) *PostgresRubroRepository {
	return &PostgresRubroRepository{
		conn: conn,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

// List returns all rubros ordered by name.
func (r *PostgresRubroRepository) List(ctx context.Context) ([]rubro.Rubro, error) {
	sql, args, err := r.sb.
		Select("id", "name", "slug").
		From("rubros").
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build query: %w", err)
	}

	rows, err := r.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query rubros: %w", err)
	}
	defer rows.Close()

	var result []rubro.Rubro
	for rows.Next() {
		var ru rubro.Rubro
		if err := rows.Scan(&ru.ID, &ru.Name, &ru.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan rubro: %w", err)
		}
		result = append(result, ru)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return result, nil
}
