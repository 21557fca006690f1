package engine

import (
	"fiscus/internal/models"
	"fiscus/internal/period"
)

// SettlementInfo annotates a transaction whose incurred and settled dates
// straddle a period boundary (incurred Jan 31, paid Feb 2). It is display
// metadata only and never alters the totals in BudgetStats.
type SettlementInfo struct {
	IsCrossPeriod  bool   `json:"is_cross_period"`
	BucketName     string `json:"bucket_name,omitempty"`
	OriginalPeriod string `json:"original_period,omitempty"`
}

// DetectCrossPeriod classifies a transaction against a viewing month.
// A transaction is cross-period iff its incurred and paid dates fall in
// different calendar months AND it is attributed to a custom budget whose
// window contains one of the two dates but not the other.
func DetectCrossPeriod(tx models.Transaction, window period.Window, customBudgets []models.CustomBudget) SettlementInfo {
	if !tx.IsPaid || tx.PaidDate == nil {
		return SettlementInfo{}
	}
	if period.SameMonth(tx.Date, *tx.PaidDate) {
		return SettlementInfo{}
	}
	if tx.CustomBudgetID == nil {
		return SettlementInfo{}
	}

	for _, cb := range customBudgets {
		if cb.ID != *tx.CustomBudgetID {
			continue
		}
		w := cb.Window()
		if w.Contains(tx.Date) != w.Contains(*tx.PaidDate) {
			return SettlementInfo{
				IsCrossPeriod:  true,
				BucketName:     cb.Name,
				OriginalPeriod: period.Label(tx.Date),
			}
		}
	}
	return SettlementInfo{}
}
