package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PharmacyStatus string

const (
	PharmacyStatusActive   PharmacyStatus = "ACTIVE"
	PharmacyStatusInactive PharmacyStatus = "INACTIVE"
	PharmacyStatusProspect PharmacyStatus = "PROSPECT"
)

// 顧客薬局。DiscountRateは交渉済みの割引率（0〜100%）。
// 注文確定時にスナップショットされるので、後から変えても過去の注文には影響しない。
type Pharmacy struct {
	ID          int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	ContactName string `gorm:"type:varchar(255)" json:"contact_name"`
	Address     string `gorm:"type:varchar(255);not null" json:"address"`
	PostalCode  string `gorm:"type:varchar(20);not null" json:"postal_code"`
	City        string `gorm:"type:varchar(255);not null" json:"city"`
	Phone       string `gorm:"type:varchar(30)" json:"phone"`
	Email       string `gorm:"type:varchar(255)" json:"email"`

	//営業セクター
	Sector string `gorm:"type:varchar(100);not null" json:"sector"`

	Status PharmacyStatus `gorm:"type:varchar(20);not null;default:'PROSPECT'" json:"status"`

	//担当コメルシアルのユーザーID（未割当はnull）
	AssignedCommercialID *int64 `gorm:"index" json:"assigned_commercial_id"`

	FirstContactDate *time.Time `json:"first_contact_date,omitempty"`

	//割引率（%）。0〜100。
	DiscountRate decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount_rate"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
