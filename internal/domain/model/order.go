package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusValidated OrderStatus = "VALIDATED"
	OrderStatusShipped   OrderStatus = "SHIPPED"
	OrderStatusDelivered OrderStatus = "DELIVERED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

// IsValidOrderStatus は管理者ステータスセレクタ用の値チェック。
func IsValidOrderStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPending, OrderStatusValidated, OrderStatusShipped,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// 確定済みの注文。
// 金額はすべて確定時（または明細編集時）にPricingエンジンが計算した値。
// DiscountRateは確定時点の薬局割引率のスナップショット。薬局側を後から
// 変更しても、この注文の金額には影響しない。
// 不変条件: TotalAmount == (TotalBeforeDiscount - DiscountAmount) + ShippingAmount
type Order struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderNumber  string    `gorm:"type:varchar(50);not null;uniqueIndex" json:"order_number"`
	PharmacyID   int64     `gorm:"not null;index" json:"pharmacy_id"`
	CommercialID int64     `gorm:"not null;index" json:"commercial_id"`
	OrderDate    time.Time `gorm:"not null" json:"order_date"`
	OrderType    OrderType `gorm:"type:varchar(20);not null" json:"order_type"`

	Status OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`

	//割引前合計HT（グロス明細合計）
	TotalBeforeDiscount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_before_discount"`

	//確定時点の割引率スナップショット（%）
	DiscountRate decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"discount_rate"`

	DiscountAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"discount_amount"`
	ShippingAmount decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"shipping_amount"`
	TotalAmount    decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"total_amount"`

	Notes     string    `gorm:"type:text" json:"notes"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
