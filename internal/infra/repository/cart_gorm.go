package repository

import (
	"context"
	"errors"
	"time"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// （コメルシアル×薬局×タイプ）のACTIVEカートを取得し、無ければ作成。
// 第2戻り値は「今作ったかどうか」。
func (r *CartGormRepository) GetOrCreateActive(ctx context.Context, commercialID int64, pharmacyID int64, orderType model.OrderType) (model.Cart, bool, error) {

	var cart model.Cart
	created := false

	//トランザクションで探す→無ければ作る
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		findErr := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("commercial_id = ? AND pharmacy_id = ? AND order_type = ? AND status = ?",
				commercialID, pharmacyID, orderType, model.CartStatusActive).
			Order("id desc").
			First(&cart).Error

		if findErr == nil {
			return nil
		}

		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return findErr
		}

		// 無ければ作る
		now := time.Now()
		newCart := model.Cart{
			CommercialID: commercialID,
			PharmacyID:   pharmacyID,
			OrderType:    orderType,
			Status:       model.CartStatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}

		if err := tx.Create(&newCart).Error; err != nil {
			retryErr := tx.
				Where("commercial_id = ? AND pharmacy_id = ? AND order_type = ? AND status = ?",
					commercialID, pharmacyID, orderType, model.CartStatusActive).
				Order("id desc").
				First(&cart).Error
			if retryErr == nil {
				return nil
			}
			return err
		}

		cart = newCart
		created = true
		return nil
	})

	if err != nil {
		return model.Cart{}, false, err
	}
	return cart, created, nil
}

// IDでカートを取得
func (r *CartGormRepository) FindByID(ctx context.Context, cartID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("id = ?", cartID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// carts.statusを更新（提出でSUBMITTEDにする）
func (r *CartGormRepository) UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error {
	res := r.db.WithContext(ctx).
		Model(&model.Cart{}).
		Where("id = ?", cartID).
		Update("status", status)

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
