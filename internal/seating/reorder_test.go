package seating

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weddingdesk/internal/model"
)

func configs(numbers ...int) []model.TableConfig {
	out := make([]model.TableConfig, 0, len(numbers))
	for i, n := range numbers {
		out = append(out, model.TableConfig{TableNumber: n, Capacity: 10, DisplayOrder: i + 1})
	}
	return out
}

func orderOf(cfgs []model.TableConfig) []int {
	out := make([]int, 0, len(cfgs))
	for _, c := range cfgs {
		out = append(out, c.TableNumber)
	}
	return out
}

func TestPlanReorderDragBefore(t *testing.T) {
	// Table 3 dragged before table 1: orders come out dense 1..N.
	out, err := PlanReorder(configs(1, 2, 3, 4), 3, 1, true)
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 2, 4}, orderOf(out))
	for i, c := range out {
		assert.Equal(t, i+1, c.DisplayOrder)
	}
}

func TestPlanReorderDragAfter(t *testing.T) {
	out, err := PlanReorder(configs(1, 2, 3, 4), 1, 3, false)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 1, 4}, orderOf(out))
}

func TestPlanReorderOntoItself(t *testing.T) {
	out, err := PlanReorder(configs(1, 2, 3), 2, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, orderOf(out))
}

func TestPlanReorderRepairsSparseOrders(t *testing.T) {
	cfgs := configs(1, 2, 3)
	cfgs[1].DisplayOrder = 5
	cfgs[2].DisplayOrder = 9

	out, err := PlanReorder(cfgs, 3, 2, true)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 2}, orderOf(out))
	assert.Equal(t, []int{1, 2, 3}, []int{out[0].DisplayOrder, out[1].DisplayOrder, out[2].DisplayOrder})
}

func TestPlanReorderUnknownTables(t *testing.T) {
	_, err := PlanReorder(configs(1, 2, 3), 7, 1, true)
	require.ErrorIs(t, err, ErrTableNotFound)

	_, err = PlanReorder(configs(1, 2, 3), 1, 7, true)
	require.ErrorIs(t, err, ErrTableNotFound)
}
