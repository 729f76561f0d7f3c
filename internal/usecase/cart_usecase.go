package usecase

import (
	"context"
	"net/http"
	"strings"

	"oliveleos/internal/domain/model"
	"oliveleos/internal/pricing"
	repo "oliveleos/internal/repository"

	"github.com/shopspring/decimal"
)

// 初回導入（implantation）カートに事前投入するスターターアソートメント。
// SKUと初期数量のリストで、main.goから注入する。
type AssortmentItem struct {
	SKU      string
	Quantity int64
}

type ImplantationAssortment []AssortmentItem

// CartUsecase は注文作成中のカートの業務ロジック。
// コメルシアルは自分のカート・担当薬局だけ、adminは全薬局を扱える。
type CartUsecase struct {
	cartRepo     repo.CartRepository
	cartLineRepo repo.CartLineRepository
	productRepo  repo.ProductRepository
	pharmacyRepo repo.PharmacyRepository
	assortment   ImplantationAssortment
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	cartLineRepo repo.CartLineRepository,
	productRepo repo.ProductRepository,
	pharmacyRepo repo.PharmacyRepository,
	assortment ImplantationAssortment,
) *CartUsecase {
	return &CartUsecase{
		cartRepo:     cartRepo,
		cartLineRepo: cartLineRepo,
		productRepo:  productRepo,
		pharmacyRepo: pharmacyRepo,
		assortment:   assortment,
	}
}

type OpenCartInput struct {
	PharmacyID int64
	OrderType  string
}

type CartLineResponse struct {
	ID           int64           `json:"id"`
	ProductID    int64           `json:"product_id"`
	ProductName  string          `json:"product_name"`
	ProductSKU   string          `json:"product_sku"`
	ProductEAN   string          `json:"product_ean"`
	UnitPriceHT  decimal.Decimal `json:"unit_price_ht"`
	UnitPriceTTC decimal.Decimal `json:"unit_price_ttc"`
	Quantity     int64           `json:"quantity"`
	LineTotalHT  decimal.Decimal `json:"line_total_ht"`

	//最低注文数量を下回っているか（自動補正はしない）
	BelowMinimum    bool  `json:"below_minimum"`
	MinimumQuantity int64 `json:"minimum_quantity"`
}

// 最低注文数量の違反。レスポンスとエラーDetailsの両方で使う。
type MOQViolation struct {
	ProductID       int64  `json:"product_id"`
	ProductSKU      string `json:"product_sku"`
	ProductName     string `json:"product_name"`
	Quantity        int64  `json:"quantity"`
	MinimumQuantity int64  `json:"minimum_quantity"`
}

type CartResponse struct {
	ID           int64              `json:"id"`
	PharmacyID   int64              `json:"pharmacy_id"`
	CommercialID int64              `json:"commercial_id"`
	OrderType    string             `json:"order_type"`
	Status       string             `json:"status"`
	Lines        []CartLineResponse `json:"lines"`

	//未解決のMOQ違反。空でなければ提出できない。
	Violations []MOQViolation `json:"violations"`

	//現時点の割引率でのプレビュー金額（確定値ではない）
	TotalBeforeDiscount decimal.Decimal `json:"total_before_discount"`
	DiscountRate        decimal.Decimal `json:"discount_rate"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	ShippingAmount      decimal.Decimal `json:"shipping_amount"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
}

// OpenCart は（コメルシアル×薬局×タイプ）のACTIVEカートを返す。無ければ作る。
// implantationで新規作成した場合はスターターアソートメントを事前投入する。
func (u *CartUsecase) OpenCart(ctx context.Context, userID int64, role model.Role, in OpenCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.PharmacyID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid pharmacy_id")
	}

	orderType := model.OrderType(strings.TrimSpace(in.OrderType))
	if orderType != model.OrderTypeImplantation && orderType != model.OrderTypeReassort {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid order_type")
	}

	//薬局の存在＋担当チェック
	ph, err := u.pharmacyRepo.FindByID(ctx, in.PharmacyID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "pharmacy not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !canAccessPharmacy(userID, role, ph) {
		return CartResponse{}, NewHTTPError(http.StatusForbidden, "forbidden")
	}

	cart, created, err := u.cartRepo.GetOrCreateActive(ctx, userID, in.PharmacyID, orderType)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//新規implantationカートだけ事前投入。既存カートには二重投入しない。
	if created && orderType == model.OrderTypeImplantation {
		if err := u.prefillAssortment(ctx, cart.ID); err != nil {
			return CartResponse{}, err
		}
	}

	return u.buildCartResponse(ctx, cart, ph)
}

type AddProductInput struct {
	ProductID int64
}

// AddProduct はカートに商品を追加する。
// 既存明細なら数量+1（常に有効）、新規明細なら数量=商品のMOQで作る。
func (u *CartUsecase) AddProduct(ctx context.Context, userID int64, role model.Role, cartID int64, in AddProductInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, ph, err := u.loadOwnedActiveCart(ctx, userID, role, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	//商品チェック（公開のみ追加できる）
	p, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !p.IsActive {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product")
	}

	existing, err := u.cartLineRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err == nil {
		//既存明細は+1。結果は常にMOQ以上のまま。
		if err := u.cartLineRepo.UpdateQuantity(ctx, existing.ID, existing.Quantity+1); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, cart, ph)
	}
	if err != repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	//新規明細はMOQで開始。追加時点の商品情報をスナップショット。
	qty := p.MinimumOrderQuantity
	if qty < 1 {
		qty = 1
	}
	line := model.CartLine{
		CartID:       cart.ID,
		ProductID:    p.ID,
		ProductName:  p.Name,
		ProductSKU:   p.SKU,
		ProductEAN:   p.EAN,
		UnitPriceHT:  p.PcbPrice,
		UnitPriceTTC: p.RetailPrice,
		Quantity:     qty,
	}
	if _, err := u.cartLineRepo.Create(ctx, line); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart, ph)
}

type SetQuantityInput struct {
	ProductID int64
	Quantity  int64
}

// SetQuantity は明細の数量を直接設定する。
// 0以下は明細削除。MOQ未満の値もそのまま保存し、レスポンスで違反として返す
// （勝手に補正しない。提出時にまとめて弾く）。
func (u *CartUsecase) SetQuantity(ctx context.Context, userID int64, role model.Role, cartID int64, in SetQuantityInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, ph, err := u.loadOwnedActiveCart(ctx, userID, role, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	line, err := u.cartLineRepo.FindByCartAndProduct(ctx, cart.ID, in.ProductID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "line not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if in.Quantity <= 0 {
		if err := u.cartLineRepo.DeleteByID(ctx, line.ID); err != nil {
			return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return u.buildCartResponse(ctx, cart, ph)
	}

	if err := u.cartLineRepo.UpdateQuantity(ctx, line.ID, in.Quantity); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart, ph)
}

// RemoveProduct は明細を無条件に削除する。
func (u *CartUsecase) RemoveProduct(ctx context.Context, userID int64, role model.Role, cartID int64, productID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if productID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}

	cart, ph, err := u.loadOwnedActiveCart(ctx, userID, role, cartID)
	if err != nil {
		return CartResponse{}, err
	}

	line, err := u.cartLineRepo.FindByCartAndProduct(ctx, cart.ID, productID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "line not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if err := u.cartLineRepo.DeleteByID(ctx, line.ID); err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return u.buildCartResponse(ctx, cart, ph)
}

// GetCart はカートの現状を返す。MOQ違反は全件まとめて返す。
func (u *CartUsecase) GetCart(ctx context.Context, userID int64, role model.Role, cartID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if err == repo.ErrNotFound {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if cart.CommercialID != userID && role != model.RoleAdmin {
		//他人のカートは「存在しない扱い」
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	ph, err := u.pharmacyRepo.FindByID(ctx, cart.PharmacyID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart, ph)
}

// カート取得＋所有チェック＋ACTIVEチェックをまとめる。
func (u *CartUsecase) loadOwnedActiveCart(ctx context.Context, userID int64, role model.Role, cartID int64) (model.Cart, model.Pharmacy, error) {
	if cartID <= 0 {
		return model.Cart{}, model.Pharmacy{}, NewHTTPError(http.StatusBadRequest, "invalid cart id")
	}

	cart, err := u.cartRepo.FindByID(ctx, cartID)
	if err == repo.ErrNotFound {
		return model.Cart{}, model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Cart{}, model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if cart.CommercialID != userID && role != model.RoleAdmin {
		return model.Cart{}, model.Pharmacy{}, NewHTTPError(http.StatusNotFound, "not found")
	}

	//提出済み・破棄済みのカートは編集不可
	if cart.Status != model.CartStatusActive {
		return model.Cart{}, model.Pharmacy{}, NewHTTPError(http.StatusConflict, "cart is not active")
	}

	ph, err := u.pharmacyRepo.FindByID(ctx, cart.PharmacyID)
	if err != nil {
		return model.Cart{}, model.Pharmacy{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return cart, ph, nil
}

// スターターアソートメントをカートに投入する。
// カタログに無いSKU・非公開SKUは黙ってスキップする（部分投入を許す）。
func (u *CartUsecase) prefillAssortment(ctx context.Context, cartID int64) error {
	for _, item := range u.assortment {
		p, err := u.productRepo.FindBySKU(ctx, item.SKU)
		if err == repo.ErrNotFound {
			continue
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !p.IsActive {
			continue
		}

		qty := item.Quantity
		if qty < p.MinimumOrderQuantity {
			qty = p.MinimumOrderQuantity
		}

		line := model.CartLine{
			CartID:       cartID,
			ProductID:    p.ID,
			ProductName:  p.Name,
			ProductSKU:   p.SKU,
			ProductEAN:   p.EAN,
			UnitPriceHT:  p.PcbPrice,
			UnitPriceTTC: p.RetailPrice,
			Quantity:     qty,
		}
		if _, err := u.cartLineRepo.Create(ctx, line); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}
	return nil
}

// 明細一覧からレスポンスを組み立てる。金額は現時点の薬局割引率でのプレビュー。
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart, ph model.Pharmacy) (CartResponse, error) {
	lines, err := u.cartLineRepo.ListByCartID(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respLines := make([]CartLineResponse, 0, len(lines))
	violations := make([]MOQViolation, 0)
	priceLines := make([]pricing.Line, 0, len(lines))

	for _, l := range lines {
		moq := int64(1)
		if p, err := u.productRepo.FindByID(ctx, l.ProductID); err == nil {
			moq = p.MinimumOrderQuantity
		}

		below := l.Quantity < moq
		if below {
			violations = append(violations, MOQViolation{
				ProductID:       l.ProductID,
				ProductSKU:      l.ProductSKU,
				ProductName:     l.ProductName,
				Quantity:        l.Quantity,
				MinimumQuantity: moq,
			})
		}

		pl := pricing.Line{
			UnitPriceHT:  l.UnitPriceHT,
			UnitPriceTTC: l.UnitPriceTTC,
			Quantity:     l.Quantity,
		}
		priceLines = append(priceLines, pl)

		respLines = append(respLines, CartLineResponse{
			ID:              l.ID,
			ProductID:       l.ProductID,
			ProductName:     l.ProductName,
			ProductSKU:      l.ProductSKU,
			ProductEAN:      l.ProductEAN,
			UnitPriceHT:     l.UnitPriceHT,
			UnitPriceTTC:    l.UnitPriceTTC,
			Quantity:        l.Quantity,
			LineTotalHT:     pricing.LineTotalHT(pl),
			BelowMinimum:    below,
			MinimumQuantity: moq,
		})
	}

	totals := pricing.Compute(priceLines, ph.DiscountRate)

	return CartResponse{
		ID:                  cart.ID,
		PharmacyID:          cart.PharmacyID,
		CommercialID:        cart.CommercialID,
		OrderType:           string(cart.OrderType),
		Status:              string(cart.Status),
		Lines:               respLines,
		Violations:          violations,
		TotalBeforeDiscount: totals.TotalBeforeDiscount,
		DiscountRate:        ph.DiscountRate,
		DiscountAmount:      totals.DiscountAmount,
		ShippingAmount:      totals.ShippingAmount,
		TotalAmount:         totals.TotalAmount,
	}, nil
}

// 担当薬局チェック。adminは全薬局OK。
func canAccessPharmacy(userID int64, role model.Role, ph model.Pharmacy) bool {
	if role == model.RoleAdmin {
		return true
	}
	return ph.AssignedCommercialID != nil && *ph.AssignedCommercialID == userID
}
