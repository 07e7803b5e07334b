package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"weddingdesk/internal/model"
	"weddingdesk/internal/seating"
)

const assignmentColumns = `
	id, guest_id, table_number, seat_position, person_index, person_name,
	COALESCE(dietary_restriction, ''), companion_assignment_id,
	COALESCE(couple_color_tag, ''), created_at, updated_at
`

func scanAssignment(row interface{ Scan(...any) error }) (*model.SeatAssignment, error) {
	var a model.SeatAssignment
	if err := row.Scan(
		&a.ID, &a.GuestID, &a.TableNumber, &a.SeatPosition, &a.PersonIndex,
		&a.PersonName, &a.DietaryRestriction, &a.CompanionAssignmentID,
		&a.CoupleColorTag, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *repository) ListAssignments(ctx context.Context) ([]model.SeatAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM seat_assignments ORDER BY table_number ASC, seat_position ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.SeatAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Swaps relocate rows through the staging table inside one transaction,
	// so a row found here means a broken invariant that needs operator
	// attention, not silent tolerance.
	for _, a := range assignments {
		if a.TableNumber == seating.StagingTable {
			r.log.Error().
				Int64("assignment_id", a.ID).
				Str("person", a.PersonName).
				Msg("assignment stranded at staging table; a swap did not complete")
		}
	}

	return assignments, nil
}

func (r *repository) GetAssignmentByID(ctx context.Context, id int64) (*model.SeatAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM seat_assignments WHERE id = $1`
	a, err := scanAssignment(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, seating.ErrAssignmentNotFound
	}
	return a, nil
}

func lockAssignment(ctx context.Context, tx *sql.Tx, id int64) (*model.SeatAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM seat_assignments WHERE id = $1 FOR UPDATE`
	a, err := scanAssignment(tx.QueryRowContext(ctx, query, id))
	if err != nil {
		return nil, seating.ErrAssignmentNotFound
	}
	return a, nil
}

func tableAssignments(ctx context.Context, tx *sql.Tx, tableNumber int) ([]model.SeatAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM seat_assignments WHERE table_number = $1 ORDER BY seat_position ASC`

	rows, err := tx.QueryContext(ctx, query, tableNumber)
	if err != nil {
		return nil, fmt.Errorf("failed to read table assignments: %w", err)
	}
	defer rows.Close()

	var assignments []model.SeatAssignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}

func applyRelocation(ctx context.Context, tx *sql.Tx, rel seating.Relocation) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE seat_assignments
		SET table_number = $1, seat_position = $2, couple_color_tag = NULLIF($3, ''), updated_at = NOW()
		WHERE id = $4
	`, rel.TableNumber, rel.SeatPosition, rel.ColorTag, rel.AssignmentID)
	if err != nil {
		return fmt.Errorf("failed to relocate assignment %d: %w", rel.AssignmentID, err)
	}
	return nil
}

// stageRelocations parks every affected row at the staging table first, so
// rows trading positions never collide on the seat uniqueness constraint.
func stageRelocations(ctx context.Context, tx *sql.Tx, rels []seating.Relocation) error {
	for i, rel := range rels {
		if _, err := tx.ExecContext(ctx, `
			UPDATE seat_assignments
			SET table_number = $1, seat_position = $2, updated_at = NOW()
			WHERE id = $3
		`, seating.StagingTable, i+1, rel.AssignmentID); err != nil {
			return fmt.Errorf("failed to stage assignment %d: %w", rel.AssignmentID, err)
		}
	}
	return nil
}

// AllocateSeatsTx seats one attendee or a couple at a table, validating
// capacity and adjacency against state read under the table config lock.
// Couple rows are inserted first and then linked symmetrically; everything
// happens in one transaction so either both rows land or neither does.
func (r *repository) AllocateSeatsTx(ctx context.Context, guestID int64, personIndexes []int, tableNumber, targetSeat int) ([]model.SeatAssignment, error) {
	if len(personIndexes) < 1 || len(personIndexes) > 2 {
		return nil, seating.ErrInvalidParty
	}

	tx, err := r.db.Master.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to start transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	tbl, err := lockTableConfig(ctx, tx, tableNumber)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	guest, err := scanGuest(tx.QueryRowContext(ctx, `SELECT `+guestColumns+` FROM guests WHERE id = $1`, guestID))
	if err != nil {
		_ = tx.Rollback()
		return nil, ErrGuestNotFound
	}

	for _, idx := range personIndexes {
		if guest.AttendeeName(idx) == "" {
			_ = tx.Rollback()
			return nil, ErrGuestNotFound
		}
		var seatedCount int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM seat_assignments WHERE guest_id = $1 AND person_index = $2
		`, guestID, idx).Scan(&seatedCount); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to check existing seat: %w", err)
		}
		if seatedCount > 0 {
			_ = tx.Rollback()
			return nil, ErrAlreadySeated
		}
	}

	existing, err := tableAssignments(ctx, tx, tableNumber)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	plan, err := seating.PlanAllocation(tbl, existing, len(personIndexes), targetSeat)
	if err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	created := make([]model.SeatAssignment, 0, len(personIndexes))
	for i, idx := range personIndexes {
		a := model.SeatAssignment{
			GuestID:            guestID,
			TableNumber:        plan.TableNumber,
			SeatPosition:       plan.Seats[i],
			PersonIndex:        idx,
			PersonName:         guest.AttendeeName(idx),
			DietaryRestriction: guest.DietaryRestriction(idx),
			CoupleColorTag:     plan.ColorTag,
		}
		err := tx.QueryRowContext(ctx, `
			INSERT INTO seat_assignments
				(guest_id, table_number, seat_position, person_index, person_name, dietary_restriction, couple_color_tag)
			VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''))
			RETURNING id, created_at, updated_at
		`, a.GuestID, a.TableNumber, a.SeatPosition, a.PersonIndex, a.PersonName, a.DietaryRestriction, a.CoupleColorTag).
			Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
		if err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to insert assignment: %w", err)
		}
		created = append(created, a)
	}

	if len(created) == 2 {
		link := func(id, companion int64) error {
			_, err := tx.ExecContext(ctx, `
				UPDATE seat_assignments SET companion_assignment_id = $1 WHERE id = $2
			`, companion, id)
			return err
		}
		if err := link(created[0].ID, created[1].ID); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to link companions: %w", err)
		}
		if err := link(created[1].ID, created[0].ID); err != nil {
			_ = tx.Rollback()
			return nil, fmt.Errorf("failed to link companions: %w", err)
		}
		created[0].CompanionAssignmentID = &created[1].ID
		created[1].CompanionAssignmentID = &created[0].ID
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit allocation: %w", err)
	}
	return created, nil
}

// MoveAssignmentTx relocates an occupant, dragging the companion along when
// one exists. Nothing is written when validation fails.
func (r *repository) MoveAssignmentTx(ctx context.Context, assignmentID int64, tableNumber, targetSeat int) error {
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

	primary, err := lockAssignment(ctx, tx, assignmentID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	party := []model.SeatAssignment{*primary}
	if primary.HasCompanion() {
		companion, err := lockAssignment(ctx, tx, *primary.CompanionAssignmentID)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		party = append(party, *companion)
	}

	dest, err := lockTableConfig(ctx, tx, tableNumber)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	destRows, err := tableAssignments(ctx, tx, tableNumber)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	plan, err := seating.PlanMove(dest, destRows, party, targetSeat)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if plan.Staged {
		if err := stageRelocations(ctx, tx, plan.Relocations); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	for _, rel := range plan.Relocations {
		if err := applyRelocation(ctx, tx, rel); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit move: %w", err)
	}
	return nil
}

// SwapAssignmentsTx atomically exchanges two occupants or two couples.
// Validation, staging and final placement all run under one transaction, so
// a failure at any step leaves the chart untouched.
func (r *repository) SwapAssignmentsTx(ctx context.Context, firstID, secondID int64) error {
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

	// Lock in id order so two admins swapping the same pair cannot deadlock.
	lockOrder := []int64{firstID, secondID}
	if lockOrder[0] > lockOrder[1] {
		lockOrder[0], lockOrder[1] = lockOrder[1], lockOrder[0]
	}
	locked := make(map[int64]*model.SeatAssignment, 2)
	for _, id := range lockOrder {
		a, err := lockAssignment(ctx, tx, id)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		locked[id] = a
	}
	first, second := locked[firstID], locked[secondID]

	if first.HasCompanion() && *first.CompanionAssignmentID == second.ID {
		_ = tx.Rollback()
		return seating.ErrSelfSwap
	}

	partyA, err := lockParty(ctx, tx, first)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	partyB, err := lockParty(ctx, tx, second)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	tableNumbers := []int{first.TableNumber, second.TableNumber}
	if tableNumbers[0] > tableNumbers[1] {
		tableNumbers[0], tableNumbers[1] = tableNumbers[1], tableNumbers[0]
	}
	tables := make(map[int]seating.Table, 2)
	for _, n := range tableNumbers {
		if _, ok := tables[n]; ok {
			continue
		}
		tbl, err := lockTableConfig(ctx, tx, n)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
		tables[n] = tbl
	}

	rowsA, err := tableAssignments(ctx, tx, first.TableNumber)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	rowsB := rowsA
	if second.TableNumber != first.TableNumber {
		rowsB, err = tableAssignments(ctx, tx, second.TableNumber)
		if err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	plan, err := seating.PlanSwap(
		tables[first.TableNumber], rowsA, partyA,
		tables[second.TableNumber], rowsB, partyB,
	)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := stageRelocations(ctx, tx, plan.Relocations); err != nil {
		_ = tx.Rollback()
		return err
	}
	for _, rel := range plan.Relocations {
		if err := applyRelocation(ctx, tx, rel); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit swap: %w", err)
	}
	return nil
}

func lockParty(ctx context.Context, tx *sql.Tx, primary *model.SeatAssignment) ([]model.SeatAssignment, error) {
	party := []model.SeatAssignment{*primary}
	if primary.HasCompanion() {
		companion, err := lockAssignment(ctx, tx, *primary.CompanionAssignmentID)
		if err != nil {
			return nil, err
		}
		party = append(party, *companion)
	}
	return party, nil
}

// DeleteAssignmentTx removes one occupant. A linked companion stays seated
// but is unlinked and loses the couple color.
func (r *repository) DeleteAssignmentTx(ctx context.Context, assignmentID int64) error {
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

	a, err := lockAssignment(ctx, tx, assignmentID)
	if err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := deleteAssignment(ctx, tx, a); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit assignment deletion: %w", err)
	}
	return nil
}

func deleteAssignment(ctx context.Context, tx *sql.Tx, a *model.SeatAssignment) error {
	if a.HasCompanion() {
		if _, err := tx.ExecContext(ctx, `
			UPDATE seat_assignments
			SET companion_assignment_id = NULL, couple_color_tag = NULL, updated_at = NOW()
			WHERE id = $1
		`, *a.CompanionAssignmentID); err != nil {
			return fmt.Errorf("failed to unlink companion: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM seat_assignments WHERE id = $1`, a.ID); err != nil {
		return fmt.Errorf("failed to delete assignment: %w", err)
	}
	return nil
}

// unseatAttendee drops the seat of one attendee when their RSVP is
// withdrawn. Missing assignment is fine; the attendee simply was not seated.
func unseatAttendee(ctx context.Context, tx *sql.Tx, guestID int64, personIndex int) error {
	query := `SELECT ` + assignmentColumns + ` FROM seat_assignments WHERE guest_id = $1 AND person_index = $2 FOR UPDATE`
	a, err := scanAssignment(tx.QueryRowContext(ctx, query, guestID, personIndex))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		return fmt.Errorf("failed to read attendee assignment: %w", err)
	}
	return deleteAssignment(ctx, tx, a)
}
