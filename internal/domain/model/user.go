package model

import "time"

type Role string

const (
	//営業担当（コメルシアル）。担当薬局の注文だけ扱える。
	RoleCommercial Role = "COMMERCIAL"
	//管理者。全薬局・全注文・ステータス変更・削除が可能。
	RoleAdmin Role = "ADMIN"
)

type User struct {
	ID           int64  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"column:password_hash;not null" json:"-"`
	FullName     string `gorm:"type:varchar(255);not null" json:"full_name"`
	Role         Role   `gorm:"type:varchar(20);not null;default:'COMMERCIAL'" json:"role"`

	//担当セクター（営業エリア）
	Sector string `gorm:"type:varchar(100)" json:"sector"`

	TokenVersion int        `gorm:"not null;default:0" json:"token_version"`
	IsActive     bool       `gorm:"not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
