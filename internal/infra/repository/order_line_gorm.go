package repository

import (
	"context"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"

	"gorm.io/gorm"
)

type orderLineGormRepository struct {
	db *gorm.DB
}

func NewOrderLineGormRepository(db *gorm.DB) repo.OrderLineRepository {
	return &orderLineGormRepository{db: db}
}

// 明細をまとめて作成（注文確定・明細編集で使う）
func (r *orderLineGormRepository) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	if len(lines) == 0 {
		return nil
	}
	for i := range lines {
		lines[i].OrderID = orderID
	}
	if err := r.db.WithContext(ctx).Create(&lines).Error; err != nil {
		return err
	}
	return nil
}

func (r *orderLineGormRepository) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	var lines []model.OrderLine
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id asc").
		Find(&lines).Error; err != nil {
		return []model.OrderLine{}, err
	}
	return lines, nil
}

// 明細の全入れ替え・注文削除用の物理削除
func (r *orderLineGormRepository) DeleteByOrderID(ctx context.Context, orderID int64) error {
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Delete(&model.OrderLine{}).Error; err != nil {
		return err
	}
	return nil
}
