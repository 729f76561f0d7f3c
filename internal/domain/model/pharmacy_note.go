package model

import "time"

// 薬局への訪問メモ・コメント履歴。
type PharmacyNote struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PharmacyID int64     `gorm:"not null;index" json:"pharmacy_id"`
	UserID     int64     `gorm:"not null;index" json:"user_id"`
	NoteText   string    `gorm:"type:text;not null" json:"note_text"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
