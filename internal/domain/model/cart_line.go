package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// カートの明細。
// 追加時点の商品情報（名前・SKU・EAN・単価）を必ずスナップショットする。
// 後からカタログ価格が変わっても、作成中の注文は勝手に変わらない。
type CartLine struct {
	ID        int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64 `gorm:"not null;index" json:"cart_id"`
	ProductID int64 `gorm:"not null;index" json:"product_id"`

	ProductName string `gorm:"type:varchar(255);not null" json:"product_name"`
	ProductSKU  string `gorm:"type:varchar(50);not null" json:"product_sku"`
	ProductEAN  string `gorm:"type:varchar(20)" json:"product_ean"`

	//追加時点の卸単価HT
	UnitPriceHT decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_ht"`

	//追加時点の小売単価TTC
	UnitPriceTTC decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"unit_price_ttc"`

	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
