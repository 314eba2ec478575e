package service

import (
	"sort"

	"fiscaltrack/internal/model"
)

// In-memory ordering helpers over obligation collections. Both operate on
// the slice in place; callers keep using the re-sorted slice.

// SortByDueDate sorts ascending by due date, stably, so obligations sharing
// a due date keep their relative order. Obligations without a due date sort
// last.
func SortByDueDate(list []model.Obligation) {
	sort.SliceStable(list, func(i, j int) bool {
		a, b := list[i].DueDate, list[j].DueDate
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return model.DateOnly(*a).Before(model.DateOnly(*b))
		}
	})
}

// SortByPeriodAndSearch sorts the list ascending by period key and runs a
// classic binary search for an exact match. Lexicographic order on the
// fixed-width "YYYY-MM" format is chronological order. Returns an index into
// the re-sorted list, or -1 when the period is absent. When several
// obligations share the period, any matching index may be returned.
func SortByPeriodAndSearch(list []model.Obligation, period string) int {
	if period == "" {
		return -1
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Period < list[j].Period
	})

	lo, hi := 0, len(list)-1
	for lo <= hi {
		mid := int(uint(lo+hi) >> 1)
		switch p := list[mid].Period; {
		case p == period:
			return mid
		case p < period:
			lo = mid + 1
		default:
			hi = mid - 1
		}
	}
	return -1
}
