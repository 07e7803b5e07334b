package repo

import (
	"context"
	"fmt"

	"weddingdesk/internal/model"
)

const contributionColumns = `
	id, product_id, contributor_name, email, amount_cents, status, reference, created_at, updated_at
`

func scanContribution(row interface{ Scan(...any) error }) (*model.Contribution, error) {
	var c model.Contribution
	if err := row.Scan(
		&c.ID, &c.ProductID, &c.ContributorName, &c.Email, &c.AmountCents,
		&c.Status, &c.Reference, &c.CreatedAt, &c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *repository) CreateProduct(ctx context.Context, p *model.Product) (int64, error) {
	query := `
		INSERT INTO products (name, description, price_cents, active)
		VALUES ($1, NULLIF($2, ''), $3, $4)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query, p.Name, p.Description, p.PriceCents, p.Active).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert product: %w", err)
	}
	return id, nil
}

func (r *repository) ListProducts(ctx context.Context) ([]model.Product, error) {
	query := `
		SELECT id, name, COALESCE(description, ''), price_cents, active, created_at, updated_at
		FROM products
		ORDER BY id ASC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.Active, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

func (r *repository) CreateContribution(ctx context.Context, c *model.Contribution) (int64, error) {
	var active bool
	if err := r.db.QueryRowContext(ctx, `SELECT active FROM products WHERE id = $1`, c.ProductID).Scan(&active); err != nil || !active {
		return 0, ErrProductNotFound
	}

	query := `
		INSERT INTO contributions (product_id, contributor_name, email, amount_cents, status, reference)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query,
		c.ProductID, c.ContributorName, c.Email, c.AmountCents, c.Status, c.Reference,
	).Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert contribution: %w", err)
	}
	return id, nil
}

func (r *repository) GetContributionByReference(ctx context.Context, reference string) (*model.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE reference = $1`
	c, err := scanContribution(r.db.QueryRowContext(ctx, query, reference))
	if err != nil {
		return nil, ErrContributionNotFound
	}
	return c, nil
}

func (r *repository) GetContributionByID(ctx context.Context, id int64) (*model.Contribution, error) {
	query := `SELECT ` + contributionColumns + ` FROM contributions WHERE id = $1`
	c, err := scanContribution(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, ErrContributionNotFound
	}
	return c, nil
}

func (r *repository) UpdateContributionStatusTx(ctx context.Context, contributionID int64, newStatus string) error {
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

	query := `
		UPDATE contributions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING id
	`

	var id int64
	if err := tx.QueryRowContext(ctx, query, newStatus, contributionID).Scan(&id); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to update contribution status: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// ExpireIfPendingTx marks a contribution expired unless the payment already
// came through. Returns whether the contribution was expired by this call.
func (r *repository) ExpireIfPendingTx(ctx context.Context, contributionID int64) (bool, error) {
	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	var currentStatus string
	err = tx.QueryRowContext(ctx, `
		SELECT status
		FROM contributions
		WHERE id = $1
		FOR UPDATE
	`, contributionID).Scan(&currentStatus)
	if err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("failed to select contribution for expiry: %w", err)
	}

	if currentStatus != "pending" {
		_ = tx.Rollback()
		return false, nil
	}

	if _, err := tx.ExecContext(ctx, `
		UPDATE contributions
		SET status = 'expired', updated_at = NOW()
		WHERE id = $1
	`, contributionID); err != nil {
		_ = tx.Rollback()
		return false, fmt.Errorf("failed to expire contribution: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit expiry transaction: %w", err)
	}
	return true, nil
}
