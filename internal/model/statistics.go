package model

// StatusBreakdown is one row of the obligations dashboard: how many
// obligations are in a status and how much money they represent.
type StatusBreakdown struct {
	Status      string `json:"status"`
	Count       int64  `json:"count"`
	TotalAmount string `json:"total_amount"`
}

// ObligationStatistics aggregates the obligation book as of a reference
// date. Display-only: computed from the same engine state, never persisted.
type ObligationStatistics struct {
	ReferenceDate     string            `json:"reference_date"`
	TotalObligations  int64             `json:"total_obligations"`
	ByStatus          []StatusBreakdown `json:"by_status"`
	OverdueCount      int64             `json:"overdue_count"`
	OutstandingAmount string            `json:"outstanding_amount"`
	AccruedInterest   string            `json:"accrued_interest"`
}
