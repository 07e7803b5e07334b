package repo

import (
	"context"
	"database/sql"
	"fmt"

	"weddingdesk/internal/model"
	"weddingdesk/internal/seating"
)

func (r *repository) ListTableConfigs(ctx context.Context) ([]model.TableConfig, error) {
	query := `
		SELECT table_number, capacity, display_order, updated_at
		FROM table_configs
		ORDER BY display_order ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list table configs: %w", err)
	}
	defer rows.Close()

	var configs []model.TableConfig
	for rows.Next() {
		var c model.TableConfig
		if err := rows.Scan(&c.TableNumber, &c.Capacity, &c.DisplayOrder, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan table config: %w", err)
		}
		configs = append(configs, c)
	}
	return configs, rows.Err()
}

// lockTableConfig reads one table's config under FOR UPDATE so the
// decide-then-write gap of a seating mutation is closed at the store.
func lockTableConfig(ctx context.Context, tx *sql.Tx, tableNumber int) (seating.Table, error) {
	var tbl seating.Table
	err := tx.QueryRowContext(ctx, `
		SELECT table_number, capacity
		FROM table_configs
		WHERE table_number = $1
		FOR UPDATE
	`, tableNumber).Scan(&tbl.Number, &tbl.Capacity)
	if err != nil {
		return seating.Table{}, seating.ErrTableNotFound
	}
	return tbl, nil
}

// UpdateTableCapacityTx applies a capacity change, rejecting reductions that
// would evict currently seated people. Seat positions above a reduced
// capacity stay as they are; they just become unreachable for new
// allocations.
func (r *repository) UpdateTableCapacityTx(ctx context.Context, tableNumber, capacity int) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if _, err := lockTableConfig(ctx, tx, tableNumber); err != nil {
		_ = tx.Rollback()
		return err
	}

	var occupants int
	err = tx.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM seat_assignments WHERE table_number = $1
	`, tableNumber).Scan(&occupants)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to count occupants: %w", err)
	}

	if err := seating.ValidateCapacity(capacity, occupants); err != nil {
		_ = tx.Rollback()
		return err
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE table_configs SET capacity = $1, updated_at = NOW() WHERE table_number = $2
	`, capacity, tableNumber); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update capacity: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit capacity change: %w", err)
	}
	return nil
}

// ReorderTablesTx rewrites every display_order as the dense 1..N index that
// results from reinserting the dragged table before or after the target.
func (r *repository) ReorderTablesTx(ctx context.Context, dragged, target int, before bool) error {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	rows, err := tx.QueryContext(ctx, `
		SELECT table_number, capacity, display_order, updated_at
		FROM table_configs
		ORDER BY display_order ASC
		FOR UPDATE
	`)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to lock table configs: %w", err)
	}

	var configs []model.TableConfig
	for rows.Next() {
		var c model.TableConfig
		if err := rows.Scan(&c.TableNumber, &c.Capacity, &c.DisplayOrder, &c.UpdatedAt); err != nil {
			rows.Close()
			_ = tx.Rollback()
			return fmt.Errorf("failed to scan table config: %w", err)
		}
		configs = append(configs, c)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to read table configs: %w", err)
	}

	reordered, err := seating.PlanReorder(configs, dragged, target, before)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	for _, c := range reordered {
		if _, err := tx.ExecContext(ctx, `
			UPDATE table_configs SET display_order = $1, updated_at = NOW() WHERE table_number = $2
		`, c.DisplayOrder, c.TableNumber); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update display order: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit reorder: %w", err)
	}
	return nil
}
