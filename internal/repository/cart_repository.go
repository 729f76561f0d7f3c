package repository

import (
	"context"

	"oliveleos/internal/domain/model"
)

type CartRepository interface {
	//同じ（コメルシアル×薬局×タイプ）のACTIVEカートを返し、無ければ作る。
	//作成したかどうかを第2戻り値で返す（implantationの事前投入判定に使う）。
	GetOrCreateActive(ctx context.Context, commercialID int64, pharmacyID int64, orderType model.OrderType) (model.Cart, bool, error)

	FindByID(ctx context.Context, cartID int64) (model.Cart, error)
	UpdateStatus(ctx context.Context, cartID int64, status model.CartStatus) error
}

type CartLineRepository interface {
	ListByCartID(ctx context.Context, cartID int64) ([]model.CartLine, error)
	FindByCartAndProduct(ctx context.Context, cartID int64, productID int64) (model.CartLine, error)
	Create(ctx context.Context, line model.CartLine) (model.CartLine, error)
	UpdateQuantity(ctx context.Context, lineID int64, qty int64) error
	DeleteByID(ctx context.Context, lineID int64) error

	//提出後のクリア用
	DeleteByCartID(ctx context.Context, cartID int64) error
}
