// Package export flattens a seating snapshot into the two tabular views the
// planners hand to the venue: alphabetical by person and table-by-table.
// Pure data transform over the core's output.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"

	"weddingdesk/internal/model"
)

var header = []string{"Name", "Table", "Seat", "Dietary Restriction", "Couple Color"}

// Alphabetical returns one row per seated person, sorted by display name
// (case-insensitive, id as tiebreaker so the output is stable).
func Alphabetical(assignments []model.SeatAssignment) [][]string {
	sorted := make([]model.SeatAssignment, len(assignments))
	copy(sorted, assignments)
	sort.Slice(sorted, func(i, j int) bool {
		a, b := strings.ToLower(sorted[i].PersonName), strings.ToLower(sorted[j].PersonName)
		if a != b {
			return a < b
		}
		return sorted[i].ID < sorted[j].ID
	})

	rows := [][]string{header}
	for _, a := range sorted {
		rows = append(rows, row(a))
	}
	return rows
}

// ByTable returns rows grouped by table in display order, then by seat.
// Assignments referencing an unknown table (stranded rows) are appended
// last so they stay visible rather than silently dropped.
func ByTable(configs []model.TableConfig, assignments []model.SeatAssignment) [][]string {
	byTable := make(map[int][]model.SeatAssignment)
	for _, a := range assignments {
		byTable[a.TableNumber] = append(byTable[a.TableNumber], a)
	}
	for _, group := range byTable {
		sort.Slice(group, func(i, j int) bool { return group[i].SeatPosition < group[j].SeatPosition })
	}

	rows := [][]string{header}
	known := make(map[int]bool, len(configs))
	for _, c := range configs {
		known[c.TableNumber] = true
		for _, a := range byTable[c.TableNumber] {
			rows = append(rows, row(a))
		}
	}

	var orphanTables []int
	for n := range byTable {
		if !known[n] {
			orphanTables = append(orphanTables, n)
		}
	}
	sort.Ints(orphanTables)
	for _, n := range orphanTables {
		for _, a := range byTable[n] {
			rows = append(rows, row(a))
		}
	}
	return rows
}

// CSV renders rows as a CSV document.
func CSV(rows [][]string) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("failed to write csv: %w", err)
	}
	return buf.Bytes(), nil
}

func row(a model.SeatAssignment) []string {
	return []string{
		a.PersonName,
		fmt.Sprintf("%d", a.TableNumber),
		fmt.Sprintf("%d", a.SeatPosition),
		a.DietaryRestriction,
		a.CoupleColorTag,
	}
}
