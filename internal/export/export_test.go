package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingdesk/internal/model"
)

func seat(id int64, name string, table, position int) model.SeatAssignment {
	return model.SeatAssignment{ID: id, GuestID: id, PersonName: name, TableNumber: table, SeatPosition: position, PersonIndex: 1}
}

func names(rows [][]string) []string {
	out := make([]string, 0, len(rows)-1)
	for _, r := range rows[1:] {
		out = append(out, r[0])
	}
	return out
}

func TestAlphabeticalSortsCaseInsensitive(t *testing.T) {
	rows := Alphabetical([]model.SeatAssignment{
		seat(1, "boris", 1, 2),
		seat(2, "Anna", 2, 5),
		seat(3, "clara", 1, 1),
		seat(4, "Boris", 3, 3),
	})

	require.Len(t, rows, 5)
	assert.Equal(t, header, rows[0])
	assert.Equal(t, []string{"Anna", "boris", "Boris", "clara"}, names(rows),
		"equal names fall back to id order")
}

func TestByTableFollowsDisplayOrderThenSeat(t *testing.T) {
	configs := []model.TableConfig{
		{TableNumber: 2, Capacity: 10, DisplayOrder: 1},
		{TableNumber: 1, Capacity: 10, DisplayOrder: 2},
	}
	rows := ByTable(configs, []model.SeatAssignment{
		seat(1, "Anna", 1, 4),
		seat(2, "Boris", 2, 7),
		seat(3, "Clara", 2, 1),
		seat(4, "Dmitry", 1, 2),
	})

	assert.Equal(t, []string{"Clara", "Boris", "Dmitry", "Anna"}, names(rows))
}

func TestByTableAppendsStrandedRows(t *testing.T) {
	configs := []model.TableConfig{{TableNumber: 1, Capacity: 10, DisplayOrder: 1}}
	rows := ByTable(configs, []model.SeatAssignment{
		seat(1, "Anna", 1, 1),
		seat(2, "Stranded", 99, 2),
	})

	assert.Equal(t, []string{"Anna", "Stranded"}, names(rows))
}

func TestCSVRendersAllColumns(t *testing.T) {
	a := seat(1, "Anna", 3, 5)
	a.DietaryRestriction = "vegan"
	a.CoupleColorTag = "blue"

	out, err := CSV(Alphabetical([]model.SeatAssignment{a}))
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Anna,3,5,vegan,blue", lines[1])
}
