package repository

import (
	"context"

	"oliveleos/internal/domain/model"
)

// 薬局一覧の絞り込み条件。
type PharmacyListQuery struct {
	Page  int
	Limit int
	Q     string //名前・市の部分一致

	//コメルシアルは自分の担当薬局だけ見える。adminはnilで全件。
	AssignedCommercialID *int64

	Status string
}

// 薬局（顧客アカウント）を保存・取得する窓口
type PharmacyRepository interface {
	List(ctx context.Context, q PharmacyListQuery) ([]model.Pharmacy, int64, error)
	FindByID(ctx context.Context, pharmacyID int64) (model.Pharmacy, error)
	Create(ctx context.Context, ph model.Pharmacy) (model.Pharmacy, error)
	Update(ctx context.Context, ph model.Pharmacy) error
}

// 薬局メモの保存・一覧。
type PharmacyNoteRepository interface {
	Create(ctx context.Context, note model.PharmacyNote) (model.PharmacyNote, error)
	ListByPharmacyID(ctx context.Context, pharmacyID int64) ([]model.PharmacyNote, error)
}
