package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// KPI集計の期間。nilなら全期間。
type ReportPeriod struct {
	From *time.Time
	To   *time.Time
}

// 全体サマリー。
type ReportSummary struct {
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageBasket decimal.Decimal `json:"average_basket"`

	//ステータス別件数（キャンセル含む、状況把握用）
	CountByStatus map[string]int64 `json:"count_by_status"`
}

// 薬局別KPI。
type PharmacyKPIRow struct {
	PharmacyID    int64           `json:"pharmacy_id"`
	PharmacyName  string          `json:"pharmacy_name"`
	City          string          `json:"city"`
	TotalOrders   int64           `json:"total_orders"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	AverageBasket decimal.Decimal `json:"average_basket"`
	LastOrderDate *time.Time      `json:"last_order_date,omitempty"`
}

// 商品別KPI。
type ProductKPIRow struct {
	ProductID     int64           `json:"product_id"`
	ProductName   string          `json:"product_name"`
	ProductSKU    string          `json:"product_sku"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	OrderCount    int64           `json:"order_count"`
}

// コメルシアル別KPI。
type CommercialKPIRow struct {
	CommercialID int64           `json:"commercial_id"`
	FullName     string          `json:"full_name"`
	TotalOrders  int64           `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// KPI集計クエリの約束。売上系の集計はCANCELLEDを除いて行う。
type ReportRepository interface {
	Summary(ctx context.Context, p ReportPeriod) (ReportSummary, error)
	ByPharmacy(ctx context.Context, p ReportPeriod) ([]PharmacyKPIRow, error)
	ByProduct(ctx context.Context, p ReportPeriod) ([]ProductKPIRow, error)
	ByCommercial(ctx context.Context, p ReportPeriod) ([]CommercialKPIRow, error)
}
