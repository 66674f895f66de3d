package dto

import (
	"github.com/goldify/goldify_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AddTransactionRequest defines the data needed to append a gold transaction
// to today's record.
type AddTransactionRequest struct {
	Type         string          `json:"type" binding:"required,oneof=add subtract"`
	Weight       decimal.Decimal `json:"weight" binding:"required"`
	CustomerName string          `json:"customerName"`
	Notes        string          `json:"notes"`
}

// UpdateTransactionRequest defines the editable fields of an existing
// transaction. Nil fields are left unchanged.
type UpdateTransactionRequest struct {
	Weight *decimal.Decimal `json:"weight"`
	Type   *string          `json:"type"`
}

// RangeQuery filters records by an inclusive YYYY-MM-DD date range.
type RangeQuery struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// DayTotals is the aggregate view of a single day's record.
type DayTotals struct {
	AddTotal         decimal.Decimal `json:"addTotal"`
	SubtractTotal    decimal.Decimal `json:"subtractTotal"`
	Balance          decimal.Decimal `json:"balance"`
	TransactionCount int             `json:"transactionCount"`
}

// ShopStatistics is the owner's dashboard summary: today plus the current
// month plus all time.
type ShopStatistics struct {
	Today        DayTotals                 `json:"today"`
	CurrentMonth domain.RecordRangeSummary `json:"currentMonth"`
	AllTime      domain.RecordRangeSummary `json:"allTime"`
}
