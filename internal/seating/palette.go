package seating

import "weddingdesk/internal/model"

// Palette is the fixed set of couple color tags, tried in order.
var Palette = []string{"blue", "green", "purple", "pink"}

// usedColors collects the couple color tags present at a table, skipping
// excluded rows (couples that are leaving).
func usedColors(rows []model.SeatAssignment, exclude map[int64]bool) map[string]bool {
	used := make(map[string]bool)
	for _, r := range rows {
		if exclude[r.ID] || r.CoupleColorTag == "" {
			continue
		}
		used[r.CoupleColorTag] = true
	}
	return used
}

// PickColor returns the first palette color not in use at the table. When
// all four are taken the first color is reused; the collision is cosmetic.
func PickColor(used map[string]bool) string {
	for _, c := range Palette {
		if !used[c] {
			return c
		}
	}
	return Palette[0]
}
