package repository

import (
	"context"
	"errors"
	"strings"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"

	"gorm.io/gorm"
)

type PharmacyGormRepository struct {
	db *gorm.DB
}

// DI
func NewPharmacyGormRepository(db *gorm.DB) *PharmacyGormRepository {
	return &PharmacyGormRepository{db: db}
}

// 薬局一覧。コメルシアルはAssignedCommercialIDで自分の担当だけに絞る。
func (r *PharmacyGormRepository) List(ctx context.Context, q repo.PharmacyListQuery) ([]model.Pharmacy, int64, error) {
	var items []model.Pharmacy
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Pharmacy{})

	if q.AssignedCommercialID != nil {
		tx = tx.Where("assigned_commercial_id = ?", *q.AssignedCommercialID)
	}

	if strings.TrimSpace(q.Q) != "" {
		like := "%" + strings.TrimSpace(q.Q) + "%"
		tx = tx.Where("name ILIKE ? OR city ILIKE ?", like, like)
	}

	if q.Status != "" {
		tx = tx.Where("status = ?", q.Status)
	}

	if err := tx.Count(&total).Error; err != nil {
		return []model.Pharmacy{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.Order("name asc").Order("id asc").
		Offset(offset).Limit(q.Limit).
		Find(&items).Error; err != nil {
		return []model.Pharmacy{}, 0, err
	}

	return items, total, nil
}

// IDで薬局を取得
func (r *PharmacyGormRepository) FindByID(ctx context.Context, pharmacyID int64) (model.Pharmacy, error) {
	var ph model.Pharmacy
	err := r.db.WithContext(ctx).First(&ph, pharmacyID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Pharmacy{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Pharmacy{}, err
	}
	return ph, nil
}

// 薬局の作成
func (r *PharmacyGormRepository) Create(ctx context.Context, ph model.Pharmacy) (model.Pharmacy, error) {
	if err := r.db.WithContext(ctx).Create(&ph).Error; err != nil {
		return model.Pharmacy{}, err
	}
	return ph, nil
}

// 薬局の更新（割引率の変更もここを通る）
func (r *PharmacyGormRepository) Update(ctx context.Context, ph model.Pharmacy) error {
	res := r.db.WithContext(ctx).Model(&model.Pharmacy{}).Where("id = ?", ph.ID).Updates(map[string]interface{}{
		"name":                   ph.Name,
		"contact_name":           ph.ContactName,
		"address":                ph.Address,
		"postal_code":            ph.PostalCode,
		"city":                   ph.City,
		"phone":                  ph.Phone,
		"email":                  ph.Email,
		"sector":                 ph.Sector,
		"status":                 ph.Status,
		"assigned_commercial_id": ph.AssignedCommercialID,
		"first_contact_date":     ph.FirstContactDate,
		"discount_rate":          ph.DiscountRate,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
