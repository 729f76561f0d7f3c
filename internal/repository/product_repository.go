package repository

import (
	"context"
	"errors"

	"oliveleos/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// カタログの一覧検索
type ProductListQuery struct {
	Page     int
	Limit    int
	Q        string //名前・SKUの部分一致
	Category string
	Sort     string

	//trueなら公開中（is_active）のみ。履歴表示用にはfalseでIDから直接引く。
	ActiveOnly bool
}

// 商品の永続化（保存・取得）だけを約束。
type ProductRepository interface {
	List(ctx context.Context, q ProductListQuery) ([]model.Product, int64, error)

	//IDで1件取得。非公開商品も返す（過去注文の表示用）。
	FindByID(ctx context.Context, id int64) (model.Product, error)

	//SKUで1件取得（アソートメント事前投入用）。
	FindBySKU(ctx context.Context, sku string) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	SoftDelete(ctx context.Context, id int64) error

	//在庫の現在値を設定
	SetStock(ctx context.Context, productID int64, newStock int64) error
}
