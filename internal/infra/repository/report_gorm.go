package repository

import (
	"context"

	repo "oliveleos/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type reportGormRepository struct {
	db *gorm.DB
}

func NewReportGormRepository(db *gorm.DB) repo.ReportRepository {
	return &reportGormRepository{db: db}
}

// 期間条件を共通で適用する。売上集計はCANCELLEDを除く。
func (r *reportGormRepository) revenueBase(ctx context.Context, p repo.ReportPeriod) *gorm.DB {
	q := r.db.WithContext(ctx).Table("orders").
		Where("orders.status <> ?", "CANCELLED")
	if p.From != nil {
		q = q.Where("orders.order_date >= ?", *p.From)
	}
	if p.To != nil {
		q = q.Where("orders.order_date <= ?", *p.To)
	}
	return q
}

func (r *reportGormRepository) Summary(ctx context.Context, p repo.ReportPeriod) (repo.ReportSummary, error) {
	var row struct {
		TotalOrders  int64
		TotalRevenue decimal.Decimal
	}

	err := r.revenueBase(ctx, p).
		Select("COUNT(*) AS total_orders, COALESCE(SUM(total_amount), 0) AS total_revenue").
		Scan(&row).Error
	if err != nil {
		return repo.ReportSummary{}, err
	}

	avg := decimal.Zero
	if row.TotalOrders > 0 {
		avg = row.TotalRevenue.Div(decimal.NewFromInt(row.TotalOrders)).Round(2)
	}

	//ステータス別件数はキャンセルも含めて全部数える
	statusQ := r.db.WithContext(ctx).Table("orders").
		Select("status, COUNT(*) AS cnt").
		Group("status")
	if p.From != nil {
		statusQ = statusQ.Where("order_date >= ?", *p.From)
	}
	if p.To != nil {
		statusQ = statusQ.Where("order_date <= ?", *p.To)
	}

	var statusRows []struct {
		Status string
		Cnt    int64
	}
	if err := statusQ.Scan(&statusRows).Error; err != nil {
		return repo.ReportSummary{}, err
	}

	byStatus := make(map[string]int64, len(statusRows))
	for _, s := range statusRows {
		byStatus[s.Status] = s.Cnt
	}

	return repo.ReportSummary{
		TotalOrders:   row.TotalOrders,
		TotalRevenue:  row.TotalRevenue,
		AverageBasket: avg,
		CountByStatus: byStatus,
	}, nil
}

func (r *reportGormRepository) ByPharmacy(ctx context.Context, p repo.ReportPeriod) ([]repo.PharmacyKPIRow, error) {
	var rows []repo.PharmacyKPIRow

	err := r.revenueBase(ctx, p).
		Select(`orders.pharmacy_id,
			pharmacies.name AS pharmacy_name,
			pharmacies.city,
			COUNT(*) AS total_orders,
			COALESCE(SUM(orders.total_amount), 0) AS total_revenue,
			ROUND(COALESCE(AVG(orders.total_amount), 0), 2) AS average_basket,
			MAX(orders.order_date) AS last_order_date`).
		Joins("JOIN pharmacies ON pharmacies.id = orders.pharmacy_id").
		Group("orders.pharmacy_id, pharmacies.name, pharmacies.city").
		Order("total_revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportGormRepository) ByProduct(ctx context.Context, p repo.ReportPeriod) ([]repo.ProductKPIRow, error) {
	var rows []repo.ProductKPIRow

	err := r.revenueBase(ctx, p).
		Select(`order_lines.product_id,
			order_lines.product_name,
			order_lines.product_sku,
			COALESCE(SUM(order_lines.quantity), 0) AS total_quantity,
			COALESCE(SUM(order_lines.line_total_ht), 0) AS total_revenue,
			COUNT(DISTINCT orders.id) AS order_count`).
		Joins("JOIN order_lines ON order_lines.order_id = orders.id").
		Group("order_lines.product_id, order_lines.product_name, order_lines.product_sku").
		Order("total_quantity DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *reportGormRepository) ByCommercial(ctx context.Context, p repo.ReportPeriod) ([]repo.CommercialKPIRow, error) {
	var rows []repo.CommercialKPIRow

	err := r.revenueBase(ctx, p).
		Select(`orders.commercial_id,
			users.full_name,
			COUNT(*) AS total_orders,
			COALESCE(SUM(orders.total_amount), 0) AS total_revenue`).
		Joins("JOIN users ON users.id = orders.commercial_id").
		Group("orders.commercial_id, users.full_name").
		Order("total_revenue DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
