package service

import (
	"context"
	"time"

	"fiscaltrack/internal/apperror"
	"fiscaltrack/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type StatisticsService interface {
	GetObligationStatistics(ctx context.Context, referenceDate time.Time) (model.ObligationStatistics, error)
}

type statisticsService struct {
	db *gorm.DB
}

func NewStatisticsService(db *gorm.DB) StatisticsService {
	return &statisticsService{db: db}
}

// GetObligationStatistics aggregates the obligation book: per-status counts
// and sums from SQL, accrued interest computed in Go so the decimal rounding
// matches the interest engine exactly.
func (s *statisticsService) GetObligationStatistics(ctx context.Context, referenceDate time.Time) (model.ObligationStatistics, error) {
	ref := model.DateOnly(referenceDate)
	stats := model.ObligationStatistics{ReferenceDate: ref.Format(dateLayout)}

	var rows []struct {
		Status string
		Count  int64
		Total  decimal.Decimal
	}
	err := s.db.WithContext(ctx).Model(&model.Obligation{}).
		Select("status, COUNT(*) as count, COALESCE(SUM(amount), 0) as total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return model.ObligationStatistics{}, apperror.Storage("aggregate obligations", err)
	}

	outstanding := decimal.Zero
	for _, row := range rows {
		stats.TotalObligations += row.Count
		stats.ByStatus = append(stats.ByStatus, model.StatusBreakdown{
			Status:      row.Status,
			Count:       row.Count,
			TotalAmount: row.Total.StringFixed(2),
		})
		if row.Status != model.StatusSettled {
			outstanding = outstanding.Add(row.Total)
		}
	}
	stats.OutstandingAmount = outstanding.StringFixed(2)

	var unsettled []model.Obligation
	err = s.db.WithContext(ctx).
		Where("status <> ?", model.StatusSettled).
		Find(&unsettled).Error
	if err != nil {
		return model.ObligationStatistics{}, apperror.Storage("load unsettled obligations", err)
	}

	interest := decimal.Zero
	for i := range unsettled {
		if unsettled[i].IsOverdue(ref) {
			stats.OverdueCount++
			interest = interest.Add(unsettled[i].AccruedInterest(ref))
		}
	}
	stats.AccruedInterest = interest.StringFixed(2)

	return stats, nil
}
