package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"oliveleos/internal/domain/model"
)

// 管理者用の注文一覧の絞り込み条件。
type AdminOrderListFilter struct {
	Page         int
	Limit        int
	Status       string
	PharmacyID   *int64
	CommercialID *int64
	From         *time.Time
	To           *time.Time
}

// 明細編集後に注文へ書き戻す金額一式。
type OrderTotalsUpdate struct {
	TotalBeforeDiscount decimal.Decimal
	DiscountAmount      decimal.Decimal
	ShippingAmount      decimal.Decimal
	TotalAmount         decimal.Decimal
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error

	//明細編集のトランザクション内で合計だけ更新する
	UpdateTotals(ctx context.Context, orderID int64, totals OrderTotalsUpdate) error

	//物理削除（明細は先にOrderLines側で削除する）
	Delete(ctx context.Context, orderID int64) error

	//コメルシアル自身の注文一覧
	ListByCommercialID(ctx context.Context, commercialID int64, page int, limit int) ([]model.Order, int64, error)

	//管理者用の注文一覧
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}

type OrderLineRepository interface {
	CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error
	ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error)

	//編集時の全入れ替え・物理削除用
	DeleteByOrderID(ctx context.Context, orderID int64) error
}
