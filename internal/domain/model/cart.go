package model

import "time"

type CartStatus string

const (
	CartStatusActive    CartStatus = "ACTIVE"
	CartStatusSubmitted CartStatus = "SUBMITTED"
	CartStatusAbandoned CartStatus = "ABANDONED"
)

type OrderType string

const (
	//初回導入（スターターアソートメントを事前投入する）
	OrderTypeImplantation OrderType = "implantation"
	//補充注文（空のカートから始める）
	OrderTypeReassort OrderType = "reassort"
)

// 注文作成中のカート。コメルシアル×薬局×注文タイプごとに作る。
// SUBMITTEDになったカートは再提出できない。
type Cart struct {
	ID           int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	CommercialID int64      `gorm:"not null;index" json:"commercial_id"`
	PharmacyID   int64      `gorm:"not null;index" json:"pharmacy_id"`
	OrderType    OrderType  `gorm:"type:varchar(20);not null" json:"order_type"`
	Status       CartStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
