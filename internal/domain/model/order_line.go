package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。
// 商品名・SKU・EANは確定時（または編集時）に非正規化して保存する。
// カタログで商品が変更・削除されても過去の注文は壊れない。
// 単価は常にカタログのグロス価格（割引前）。割引は注文合計で一度だけ
// 適用するので、明細レベルには入れない。
type OrderLine struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   int64 `gorm:"not null;index" json:"order_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductSKU  string `gorm:"type:varchar(50);not null" json:"product_sku"`
	ProductEAN  string `gorm:"type:varchar(20)" json:"product_ean"`

	Quantity int64 `gorm:"not null" json:"quantity"`

	UnitPriceHT  decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_ht"`
	UnitPriceTTC decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_ttc"`

	//LineTotalHT == UnitPriceHT × Quantity（中間丸めなし）
	LineTotalHT  decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total_ht"`
	LineTotalTTC decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"line_total_ttc"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
