package seating

import "weddingdesk/internal/model"

// PlanReorder recomputes display orders after dragging one table before or
// after another. configs must be sorted by current display order. The
// dragged entry is removed, reinserted relative to the target, and every
// entry gets its 1-based index as the new order, so the sequence stays
// dense after every reorder.
func PlanReorder(configs []model.TableConfig, dragged, target int, before bool) ([]model.TableConfig, error) {
	var draggedCfg *model.TableConfig
	rest := make([]model.TableConfig, 0, len(configs))
	for i := range configs {
		if configs[i].TableNumber == dragged {
			c := configs[i]
			draggedCfg = &c
			continue
		}
		rest = append(rest, configs[i])
	}
	if draggedCfg == nil {
		return nil, ErrTableNotFound
	}
	if dragged == target {
		return renumber(configs), nil
	}

	out := make([]model.TableConfig, 0, len(configs))
	found := false
	for _, c := range rest {
		if c.TableNumber == target {
			found = true
			if before {
				out = append(out, *draggedCfg, c)
			} else {
				out = append(out, c, *draggedCfg)
			}
			continue
		}
		out = append(out, c)
	}
	if !found {
		return nil, ErrTableNotFound
	}
	return renumber(out), nil
}

func renumber(configs []model.TableConfig) []model.TableConfig {
	out := make([]model.TableConfig, len(configs))
	copy(out, configs)
	for i := range out {
		out[i].DisplayOrder = i + 1
	}
	return out
}
