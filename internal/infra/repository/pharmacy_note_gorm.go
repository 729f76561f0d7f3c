package repository

import (
	"context"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"

	"gorm.io/gorm"
)

type pharmacyNoteGormRepository struct {
	db *gorm.DB
}

func NewPharmacyNoteGormRepository(db *gorm.DB) repo.PharmacyNoteRepository {
	return &pharmacyNoteGormRepository{db: db}
}

// 訪問メモを1件保存
func (r *pharmacyNoteGormRepository) Create(ctx context.Context, note model.PharmacyNote) (model.PharmacyNote, error) {
	if err := r.db.WithContext(ctx).Create(&note).Error; err != nil {
		return model.PharmacyNote{}, err
	}
	return note, nil
}

// 薬局のメモを新しい順で一覧
func (r *pharmacyNoteGormRepository) ListByPharmacyID(ctx context.Context, pharmacyID int64) ([]model.PharmacyNote, error) {
	var notes []model.PharmacyNote
	if err := r.db.WithContext(ctx).
		Where("pharmacy_id = ?", pharmacyID).
		Order("id desc").
		Find(&notes).Error; err != nil {
		return []model.PharmacyNote{}, err
	}
	return notes, nil
}
