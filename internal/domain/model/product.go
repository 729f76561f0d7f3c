package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// 商品カタログ。価格はすべてdecimal（numeric）で持つ。
// PcbPriceは卸価格HT（割引前）、RetailPriceは参考小売TTC。
type Product struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	SKU         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku"`
	EAN         string `gorm:"type:varchar(20)" json:"ean"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	Category    string `gorm:"type:varchar(100)" json:"category"`
	Description string `gorm:"type:text" json:"description"`

	//卸単価HT（割引前のグロス価格）
	PcbPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"pcb_price"`

	//参考小売単価TTC
	RetailPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"retail_price"`

	//TVA率（%）
	VatRate decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"vat_rate"`

	StockQuantity int64  `gorm:"not null;default:0" json:"stock_quantity"`
	IsActive      bool   `gorm:"not null;default:false" json:"is_active"`
	ImageURL      string `gorm:"type:varchar(500)" json:"image_url"`

	//最低注文数量（1以上）。明細のquantityはこれ以上でなければならない。
	MinimumOrderQuantity int64 `gorm:"not null;default:1" json:"minimum_order_quantity"`

	CreatedAt time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
