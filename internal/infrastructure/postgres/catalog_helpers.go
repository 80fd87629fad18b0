package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/inventory-manager/internal/domain"
)

// table debe ser una constante del paquete; nunca entrada del usuario.

func lockByID(ctx context.Context, q Querier, table, id string) (bool, error) {
	var got string
	err := q.QueryRow(ctx, `SELECT id FROM `+table+` WHERE id = $1 FOR UPDATE`, id).Scan(&got)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("lock %s: %w", table, err)
	}
	return true, nil
}

func deleteByID(ctx context.Context, q Querier, table, id string) error {
	cmd, err := q.Exec(ctx, `DELETE FROM `+table+` WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrInUse
		}
		return fmt.Errorf("delete %s: %w", table, err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func countQuery(ctx context.Context, q Querier, query, id string) (int, error) {
	var n int
	if err := q.QueryRow(ctx, query, id).Scan(&n); err != nil {
		return 0, fmt.Errorf("count usage: %w", err)
	}
	return n, nil
}
