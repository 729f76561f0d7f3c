package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"oliveleos/internal/domain/model"
	"oliveleos/internal/pricing"
	repo "oliveleos/internal/repository"

	"github.com/shopspring/decimal"
)

// OrderUsecase は注文の確定・参照・編集・キャンセル。
// nowは注文番号（CMD-<unixミリ秒>）とorder_dateに使う。テストで固定できる
// ようにmain.goから注入する。
type OrderUsecase struct {
	tx       repo.TransactionManager
	userRepo repo.UserRepository
	now      func() time.Time
}

func NewOrderUsecase(tx repo.TransactionManager, userRepo repo.UserRepository, now func() time.Time) *OrderUsecase {
	if now == nil {
		now = time.Now
	}
	return &OrderUsecase{tx: tx, userRepo: userRepo, now: now}
}

type SubmitOrderInput struct {
	CartID int64
	Notes  string
}

type OrderLineOutput struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSKU   string          `json:"product_sku"`
	ProductEAN   string          `json:"product_ean"`
	Quantity     int64           `json:"quantity"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	UnitPriceTTC decimal.Decimal `json:"unit_price_ttc"`
	LineTotalHT  decimal.Decimal `json:"line_total_ht"`
	LineTotalTTC decimal.Decimal `json:"line_total_ttc"`
}

type OrderOutput struct {
	ID           int64     `json:"id"`
	OrderNumber  string    `json:"order_number"`
	PharmacyID   int64     `json:"pharmacy_id"`
	CommercialID int64     `json:"commercial_id"`
	OrderDate    time.Time `json:"order_date"`
	OrderType    string    `json:"order_type"`
	Status       string    `json:"status"`

	TotalBeforeDiscount decimal.Decimal `json:"total_before_discount"`
	DiscountRate        decimal.Decimal `json:"discount_rate"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	ShippingAmount      decimal.Decimal `json:"shipping_amount"`
	TotalAmount         decimal.Decimal `json:"total_amount"`

	Notes string            `json:"notes,omitempty"`
	Lines []OrderLineOutput `json:"lines"`
}

// 注文詳細の解決済みビュー。注文＋明細＋薬局＋担当者を1レスポンスで返す。
// 金額は保存値そのまま（受け手側で再計算しない前提）。
type OrderDetailOutput struct {
	OrderOutput
	Pharmacy   *model.Pharmacy `json:"pharmacy,omitempty"`
	Commercial *UserDTO        `json:"commercial,omitempty"`
}

// Submit はACTIVEカートを確定済み注文に変換する。
// ゲート: カートがACTIVE・明細あり・MOQ違反ゼロ。違反は全件まとめて返す。
// 薬局の割引率をこの時点でスナップショットし、以後の変更は影響しない。
func (u *OrderUsecase) Submit(ctx context.Context, userID int64, role model.Role, in SubmitOrderInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.CartID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid cart_id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindByID(ctx, in.CartID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if cart.CommercialID != userID && role != model.RoleAdmin {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		//SUBMITTEDカートの二重提出は409
		if cart.Status != model.CartStatusActive {
			return NewHTTPError(http.StatusConflict, "cart already submitted")
		}

		lines, err := r.CartLines().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lines) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		//MOQ違反を全件集めてから弾く（1件ずつ直させない）
		violations := make([]MOQViolation, 0)
		for _, l := range lines {
			moq := int64(1)
			if p, err := r.Products().FindByID(ctx, l.ProductID); err == nil {
				moq = p.MinimumOrderQuantity
			}
			if l.Quantity < moq {
				violations = append(violations, MOQViolation{
					ProductID:       l.ProductID,
					ProductSKU:      l.ProductSKU,
					ProductName:     l.ProductName,
					Quantity:        l.Quantity,
					MinimumQuantity: moq,
				})
			}
		}
		if len(violations) > 0 {
			return NewHTTPErrorWithDetails(http.StatusBadRequest, "minimum order quantity not met", violations)
		}

		//割引率はこの時点の薬局設定をスナップショット
		ph, err := r.Pharmacies().FindByID(ctx, cart.PharmacyID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "pharmacy not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		priceLines := make([]pricing.Line, 0, len(lines))
		for _, l := range lines {
			priceLines = append(priceLines, pricing.Line{
				UnitPriceHT:  l.UnitPriceHT,
				UnitPriceTTC: l.UnitPriceTTC,
				Quantity:     l.Quantity,
			})
		}
		totals := pricing.Compute(priceLines, ph.DiscountRate)

		now := u.now()
		order := model.Order{
			OrderNumber:         fmt.Sprintf("CMD-%d", now.UnixMilli()),
			PharmacyID:          cart.PharmacyID,
			CommercialID:        cart.CommercialID,
			OrderDate:           now,
			OrderType:           cart.OrderType,
			Status:              model.OrderStatusPending,
			TotalBeforeDiscount: totals.TotalBeforeDiscount,
			DiscountRate:        ph.DiscountRate,
			DiscountAmount:      totals.DiscountAmount,
			ShippingAmount:      totals.ShippingAmount,
			TotalAmount:         totals.TotalAmount,
			Notes:               in.Notes,
			CreatedAt:           now,
			UpdatedAt:           now,
		}

		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		orderLines := make([]model.OrderLine, 0, len(lines))
		for _, l := range lines {
			pl := pricing.Line{UnitPriceHT: l.UnitPriceHT, UnitPriceTTC: l.UnitPriceTTC, Quantity: l.Quantity}
			orderLines = append(orderLines, model.OrderLine{
				ProductID:    l.ProductID,
				ProductName:  l.ProductName,
				ProductSKU:   l.ProductSKU,
				ProductEAN:   l.ProductEAN,
				Quantity:     l.Quantity,
				UnitPriceHT:  l.UnitPriceHT,
				UnitPriceTTC: l.UnitPriceTTC,
				LineTotalHT:  pricing.LineTotalHT(pl),
				LineTotalTTC: pricing.LineTotalTTC(pl),
				CreatedAt:    now,
			})
		}
		if err := r.OrderLines().CreateBulk(ctx, orderID, orderLines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//カートをSUBMITTEDにして再提出を防ぐ
		if err := r.Carts().UpdateStatus(ctx, cart.ID, model.CartStatusSubmitted); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		out = toOrderOutput(order, orderLines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders はコメルシアル自身の注文一覧。
func (u *OrderUsecase) ListMyOrders(ctx context.Context, userID int64, page int, limit int) ([]OrderOutput, int64, error) {
	if userID <= 0 {
		return []OrderOutput{}, 0, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 50
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, t, err := r.Orders().ListByCommercialID(ctx, userID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		total = t

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			lines, err := r.OrderLines().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, lines))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, 0, err
	}
	return outs, total, nil
}

// GetOrderDetail は解決済みビューを返す。
// コメルシアルは自分の注文のみ、adminは全注文。
func (u *OrderUsecase) GetOrderDetail(ctx context.Context, userID int64, role model.Role, orderID int64) (OrderDetailOutput, error) {
	if userID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderDetailOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderDetailOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.CommercialID != userID && role != model.RoleAdmin {
			//他人の注文は「存在しない扱い」にする
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		lines, err := r.OrderLines().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = OrderDetailOutput{OrderOutput: toOrderOutput(o, lines)}

		//薬局と担当者は参照情報。消えていても注文自体は返す。
		if ph, err := r.Pharmacies().FindByID(ctx, o.PharmacyID); err == nil {
			out.Pharmacy = &ph
		}
		return nil
	})

	if err != nil {
		return OrderDetailOutput{}, err
	}

	if user, err := u.userRepo.FindByID(ctx, out.CommercialID); err == nil && user != nil {
		dto := toUserDTO(user)
		out.Commercial = &dto
	}

	return out, nil
}

type EditLineInput struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int64           `json:"quantity"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	UnitPriceTTC decimal.Decimal `json:"unit_price_ttc"`
}

// EditLines はPENDING注文の明細を差し替える（全削除→全挿入）。
// 名前・SKU・EANはカタログから取り直すが、単価は編集セッションの値を使う。
// 金額は注文に保存済みの割引率で再計算する（薬局の現在率は見ない）。
// 途中で失敗したら全部ロールバック。
func (u *OrderUsecase) EditLines(ctx context.Context, userID int64, role model.Role, orderID int64, inputs []EditLineInput) (OrderOutput, error) {
	if userID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if len(inputs) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "lines required")
	}
	for _, in := range inputs {
		if in.ProductID <= 0 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
		}
		if in.Quantity < 1 {
			return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
		}
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.CommercialID != userID && role != model.RoleAdmin {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		//編集できるのはPENDINGだけ
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusPreconditionFailed, "order is not editable")
		}

		if err := r.OrderLines().DeleteByOrderID(ctx, orderID); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		now := u.now()
		newLines := make([]model.OrderLine, 0, len(inputs))
		priceLines := make([]pricing.Line, 0, len(inputs))

		for _, in := range inputs {
			//名前・SKU・EANは現在のカタログから取り直す
			p, err := r.Products().FindByID(ctx, in.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "unknown product")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}

			pl := pricing.Line{
				UnitPriceHT:  in.UnitPriceHT,
				UnitPriceTTC: in.UnitPriceTTC,
				Quantity:     in.Quantity,
			}
			priceLines = append(priceLines, pl)

			newLines = append(newLines, model.OrderLine{
				ProductID:    p.ID,
				ProductName:  p.Name,
				ProductSKU:   p.SKU,
				ProductEAN:   p.EAN,
				Quantity:     in.Quantity,
				UnitPriceHT:  in.UnitPriceHT,
				UnitPriceTTC: in.UnitPriceTTC,
				LineTotalHT:  pricing.LineTotalHT(pl),
				LineTotalTTC: pricing.LineTotalTTC(pl),
				CreatedAt:    now,
			})
		}

		if err := r.OrderLines().CreateBulk(ctx, orderID, newLines); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//保存済みの割引率で再計算（薬局の現在率は使わない）
		totals := pricing.Compute(priceLines, o.DiscountRate)

		if err := r.Orders().UpdateTotals(ctx, orderID, repo.OrderTotalsUpdate{
			TotalBeforeDiscount: totals.TotalBeforeDiscount,
			DiscountAmount:      totals.DiscountAmount,
			ShippingAmount:      totals.ShippingAmount,
			TotalAmount:         totals.TotalAmount,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.TotalBeforeDiscount = totals.TotalBeforeDiscount
		o.DiscountAmount = totals.DiscountAmount
		o.ShippingAmount = totals.ShippingAmount
		o.TotalAmount = totals.TotalAmount
		out = toOrderOutput(o, newLines)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Cancel はコメルシアル自身によるキャンセル。PENDINGの自分の注文のみ。
// それ以外のステータス変更は管理者のステータスセレクタで行う。
func (u *OrderUsecase) Cancel(ctx context.Context, userID int64, orderID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//所有者以外は不可（adminはステータスセレクタを使う）
		if o.CommercialID != userID {
			return NewHTTPError(http.StatusForbidden, "forbidden")
		}
		//PENDING以外は編集と同じ前提条件エラー（412）
		if o.Status != model.OrderStatusPending {
			return NewHTTPError(http.StatusPreconditionFailed, "order is not pending")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelled); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})
}

func toOrderOutput(o model.Order, lines []model.OrderLine) OrderOutput {
	outLines := make([]OrderLineOutput, 0, len(lines))
	for _, l := range lines {
		outLines = append(outLines, OrderLineOutput{
			ID:           l.ID,
			ProductID:    l.ProductID,
			ProductName:  l.ProductName,
			ProductSKU:   l.ProductSKU,
			ProductEAN:   l.ProductEAN,
			Quantity:     l.Quantity,
			UnitPriceHT:  l.UnitPriceHT,
			UnitPriceTTC: l.UnitPriceTTC,
			LineTotalHT:  l.LineTotalHT,
			LineTotalTTC: l.LineTotalTTC,
		})
	}

	return OrderOutput{
		ID:                  o.ID,
		OrderNumber:         o.OrderNumber,
		PharmacyID:          o.PharmacyID,
		CommercialID:        o.CommercialID,
		OrderDate:           o.OrderDate,
		OrderType:           string(o.OrderType),
		Status:              string(o.Status),
		TotalBeforeDiscount: o.TotalBeforeDiscount,
		DiscountRate:        o.DiscountRate,
		DiscountAmount:      o.DiscountAmount,
		ShippingAmount:      o.ShippingAmount,
		TotalAmount:         o.TotalAmount,
		Notes:               o.Notes,
		Lines:               outLines,
	}
}
