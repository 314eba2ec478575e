package service

import (
	"testing"

	"fiscaltrack/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func obligationsWithPeriods(periods ...string) []model.Obligation {
	list := make([]model.Obligation, 0, len(periods))
	for i, p := range periods {
		list = append(list, model.Obligation{ID: uint(i + 1), Period: p})
	}
	return list
}

func TestSortByDueDate(t *testing.T) {
	list := []model.Obligation{
		{ID: 1, DueDate: dateP("2025-03-15")},
		{ID: 2, DueDate: nil},
		{ID: 3, DueDate: dateP("2025-01-10")},
		{ID: 4, DueDate: dateP("2025-02-20")},
		{ID: 5, DueDate: nil},
	}

	SortByDueDate(list)

	ids := make([]uint, len(list))
	for i, o := range list {
		ids[i] = o.ID
	}
	// Ascending by due date; the undated ones keep their relative order at
	// the end.
	assert.Equal(t, []uint{3, 4, 1, 2, 5}, ids)

	// Sorting an already-sorted list changes nothing.
	SortByDueDate(list)
	for i, o := range list {
		assert.Equal(t, ids[i], o.ID)
	}
}

func TestSortByDueDateStable(t *testing.T) {
	list := []model.Obligation{
		{ID: 1, DueDate: dateP("2025-03-15")},
		{ID: 2, DueDate: dateP("2025-03-15")},
		{ID: 3, DueDate: dateP("2025-03-15")},
	}

	SortByDueDate(list)

	assert.Equal(t, uint(1), list[0].ID)
	assert.Equal(t, uint(2), list[1].ID)
	assert.Equal(t, uint(3), list[2].ID)
}

func TestSortByDueDateEmpty(t *testing.T) {
	var list []model.Obligation
	SortByDueDate(list) // must not panic
	assert.Empty(t, list)
}

func TestSortByPeriodAndSearch(t *testing.T) {
	tests := []struct {
		name    string
		periods []string
		target  string
		found   bool
	}{
		{"middle element", []string{"2025-01", "2025-03", "2025-02"}, "2025-02", true},
		{"first element", []string{"2025-01", "2025-03", "2025-02"}, "2025-01", true},
		{"last element", []string{"2025-01", "2025-03", "2025-02"}, "2025-03", true},
		{"absent period", []string{"2025-01", "2025-03", "2025-02"}, "2025-07", false},
		{"single hit", []string{"2025-06"}, "2025-06", true},
		{"single miss", []string{"2025-06"}, "2025-05", false},
		{"empty list", nil, "2025-01", false},
		{"empty period", []string{"2025-01"}, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list := obligationsWithPeriods(tt.periods...)
			idx := SortByPeriodAndSearch(list, tt.target)
			if !tt.found {
				assert.Equal(t, -1, idx)
				return
			}
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, len(list))
			assert.Equal(t, tt.target, list[idx].Period)
		})
	}
}

func TestSortByPeriodAndSearchSortsInPlace(t *testing.T) {
	list := obligationsWithPeriods("2025-03", "2025-01", "2025-02")
	idx := SortByPeriodAndSearch(list, "2025-02")

	require.NotEqual(t, -1, idx)
	assert.Equal(t, "2025-01", list[0].Period)
	assert.Equal(t, "2025-02", list[1].Period)
	assert.Equal(t, "2025-03", list[2].Period)
	assert.Equal(t, 1, idx)
}
