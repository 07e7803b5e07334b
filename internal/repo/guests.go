package repo

import (
	"context"
	"fmt"

	"weddingdesk/internal/model"
)

const guestColumns = `
	id, person1_name, COALESCE(person2_name, ''), attendance1, COALESCE(attendance2, ''),
	COALESCE(dietary_restriction1, ''), COALESCE(dietary_restriction2, ''),
	COALESCE(host_tag, ''), created_at, updated_at
`

func scanGuest(row interface{ Scan(...any) error }) (*model.Guest, error) {
	var g model.Guest
	if err := row.Scan(
		&g.ID, &g.Person1Name, &g.Person2Name, &g.Attendance1, &g.Attendance2,
		&g.DietaryRestriction1, &g.DietaryRestriction2, &g.HostTag,
		&g.CreatedAt, &g.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *repository) CreateGuest(ctx context.Context, g *model.Guest) (int64, error) {
	query := `
		INSERT INTO guests (person1_name, person2_name, attendance1, attendance2,
		                    dietary_restriction1, dietary_restriction2, host_tag)
		VALUES ($1, NULLIF($2, ''), $3, NULLIF($4, ''), NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
		RETURNING id
	`

	row := r.db.QueryRowContext(ctx, query,
		g.Person1Name, g.Person2Name, g.Attendance1, g.Attendance2,
		g.DietaryRestriction1, g.DietaryRestriction2, g.HostTag,
	)

	var id int64
	if err := row.Scan(&id); err != nil {
		return 0, fmt.Errorf("failed to insert guest: %w", err)
	}
	return id, nil
}

func (r *repository) GetGuestByID(ctx context.Context, id int64) (*model.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests WHERE id = $1`
	g, err := scanGuest(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, ErrGuestNotFound
	}
	return g, nil
}

func (r *repository) ListGuests(ctx context.Context) ([]model.Guest, error) {
	query := `SELECT ` + guestColumns + ` FROM guests ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list guests: %w", err)
	}
	defer rows.Close()

	var guests []model.Guest
	for rows.Next() {
		g, err := scanGuest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan guest: %w", err)
		}
		guests = append(guests, *g)
	}
	return guests, rows.Err()
}

func (r *repository) UpdateGuest(ctx context.Context, g *model.Guest) error {
	query := `
		UPDATE guests
		SET person1_name = $1, person2_name = NULLIF($2, ''),
		    attendance1 = $3, attendance2 = NULLIF($4, ''),
		    dietary_restriction1 = NULLIF($5, ''), dietary_restriction2 = NULLIF($6, ''),
		    host_tag = NULLIF($7, ''), updated_at = NOW()
		WHERE id = $8
		RETURNING id
	`

	var id int64
	if err := r.db.QueryRowContext(ctx, query,
		g.Person1Name, g.Person2Name, g.Attendance1, g.Attendance2,
		g.DietaryRestriction1, g.DietaryRestriction2, g.HostTag, g.ID,
	).Scan(&id); err != nil {
		return ErrGuestNotFound
	}
	return nil
}

// UpdateAttendanceTx sets one attendee's attendance status. Declining an
// attendee removes their seat assignment and unlinks the companion, so the
// chart never shows a withdrawn guest.
func (r *repository) UpdateAttendanceTx(ctx context.Context, guestID int64, personIndex int, status string) error {
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

	column := "attendance1"
	if personIndex == 2 {
		column = "attendance2"
	}

	var id int64
	query := fmt.Sprintf(`UPDATE guests SET %s = $1, updated_at = NOW() WHERE id = $2 RETURNING id`, column)
	if err := tx.QueryRowContext(ctx, query, status, guestID).Scan(&id); err != nil {
		_ = tx.Rollback()
		return ErrGuestNotFound
	}

	if status == model.AttendanceDeclined {
		if err := unseatAttendee(ctx, tx, guestID, personIndex); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit attendance update: %w", err)
	}
	return nil
}

// DeleteGuestTx removes a guest together with any seat assignments of its
// attendees.
func (r *repository) DeleteGuestTx(ctx context.Context, guestID int64) error {
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

	if _, err := tx.ExecContext(ctx, `DELETE FROM seat_assignments WHERE guest_id = $1`, guestID); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete guest assignments: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM guests WHERE id = $1`, guestID)
	if err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to delete guest: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		_ = tx.Rollback()
		return ErrGuestNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit guest deletion: %w", err)
	}
	return nil
}
