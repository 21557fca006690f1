package services

import (
	"time"

	"gorm.io/gorm"

	"fiscus/internal/engine"
	apperrors "fiscus/internal/errors"
	"fiscus/internal/models"
	"fiscus/internal/period"
)

// projectionService assembles the transaction history the projection
// engine needs and turns its output into chart series.
type projectionService struct {
	db *gorm.DB
}

// NewProjectionService creates a new ProjectionServicer.
func NewProjectionService(db *gorm.DB) ProjectionServicer {
	return &projectionService{db: db}
}

// GetMonthlyChart builds the day-by-day income/expense chart for the given
// month: actuals through today, projected remainder for future days.
func (s *projectionService) GetMonthlyChart(year int, month time.Month, now time.Time) (*engine.MonthlyChart, error) {
	window := period.Month(year, month)

	var historical []models.Transaction
	if err := s.db.Where("date < ?", window.Start).Find(&historical).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var current []models.Transaction
	if err := s.db.Where("date BETWEEN ? AND ?", window.Start, window.End).Find(&current).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	daysInMonth := period.DaysIn(year, month)

	// Viewing a past month leaves nothing to project; a future month has
	// no actuals yet.
	today := daysInMonth
	if period.SameMonth(now, window.Start) {
		today = now.Day()
	} else if now.Before(window.Start) {
		today = 0
	}

	incomeProj := engine.ProjectIncome(historical, current, daysInMonth, today)
	expenseProj := engine.ProjectExpenses(historical, current, daysInMonth, today)

	chart := engine.BuildMonthlyChart(current, incomeProj, expenseProj, daysInMonth, today)
	return &chart, nil
}
