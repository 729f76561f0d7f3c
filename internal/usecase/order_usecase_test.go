package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// OrdTxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す。
// fnErr にコールバックの戻り値を記録する（gormはこのエラーでロールバックする）。
type OrdTxManagerMock struct {
	Repos repo.TxRepos
	fnErr error
}

func (m *OrdTxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	m.fnErr = fn(m.Repos)
	return m.fnErr
}

type OrdTxReposMock struct {
	orders     repo.OrderRepository
	orderLines repo.OrderLineRepository
	carts      repo.CartRepository
	cartLines  repo.CartLineRepository
	products   repo.ProductRepository
	pharmacies repo.PharmacyRepository
	auditLogs  repo.AuditLogRepository
}

func (r *OrdTxReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *OrdTxReposMock) OrderLines() repo.OrderLineRepository { return r.orderLines }
func (r *OrdTxReposMock) Carts() repo.CartRepository           { return r.carts }
func (r *OrdTxReposMock) CartLines() repo.CartLineRepository   { return r.cartLines }
func (r *OrdTxReposMock) Products() repo.ProductRepository     { return r.products }
func (r *OrdTxReposMock) Pharmacies() repo.PharmacyRepository  { return r.pharmacies }
func (r *OrdTxReposMock) AuditLogs() repo.AuditLogRepository   { return r.auditLogs }

// =====================
// Repository mocks（Order向け：衝突回避）
// =====================

type OrdOrderRepoMock struct{ mock.Mock }

func (m *OrdOrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrdOrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrdOrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrdOrderRepoMock) UpdateTotals(ctx context.Context, orderID int64, totals repo.OrderTotalsUpdate) error {
	args := m.Called(ctx, orderID, totals)
	return args.Error(0)
}

func (m *OrdOrderRepoMock) Delete(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrdOrderRepoMock) ListByCommercialID(ctx context.Context, commercialID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, commercialID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrdOrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrdOrderLineRepoMock struct{ mock.Mock }

func (m *OrdOrderLineRepoMock) CreateBulk(ctx context.Context, orderID int64, lines []model.OrderLine) error {
	args := m.Called(ctx, orderID, lines)
	return args.Error(0)
}

func (m *OrdOrderLineRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderLine, error) {
	args := m.Called(ctx, orderID)
	lines, _ := args.Get(0).([]model.OrderLine)
	return lines, args.Error(1)
}

func (m *OrdOrderLineRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

type OrdUserRepoMock struct{ mock.Mock }

func (m *OrdUserRepoMock) Create(ctx context.Context, user *model.User) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	args := m.Called(ctx, userID)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *OrdUserRepoMock) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) List(ctx context.Context) ([]model.User, error) {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) Update(ctx context.Context, user *model.User) error {
	panic("not used in OrderUsecase tests")
}

func (m *OrdUserRepoMock) IncrementTokenVersion(ctx context.Context, userID int64) error {
	panic("not used in OrderUsecase tests")
}

// =====================
// Fixtures
// =====================

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func ordTxRepos() (*OrdTxReposMock, *OrdOrderRepoMock, *OrdOrderLineRepoMock, *CartRepoMock, *CartLineRepoMock, *CartProductRepoMock, *CartPharmacyRepoMock) {
	orders := new(OrdOrderRepoMock)
	orderLines := new(OrdOrderLineRepoMock)
	carts := new(CartRepoMock)
	cartLines := new(CartLineRepoMock)
	products := new(CartProductRepoMock)
	pharmacies := new(CartPharmacyRepoMock)

	repos := &OrdTxReposMock{
		orders:     orders,
		orderLines: orderLines,
		carts:      carts,
		cartLines:  cartLines,
		products:   products,
		pharmacies: pharmacies,
		auditLogs:  new(OrdAuditRepoMock),
	}
	return repos, orders, orderLines, carts, cartLines, products, pharmacies
}

type OrdAuditRepoMock struct{ mock.Mock }

func (m *OrdAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *OrdAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in OrderUsecase tests")
}

// =====================
// Submit
// =====================

func TestOrderUsecase_Submit_Success_SnapshotsDiscountAndNumbersOrder(t *testing.T) {
	ctx := context.Background()
	commercialID := int64(1)
	at := time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

	repos, orders, orderLines, carts, cartLines, products, pharmacies := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), fixedClock(at))

	cart := model.Cart{ID: 7, CommercialID: commercialID, PharmacyID: 10, OrderType: model.OrderTypeReassort, Status: model.CartStatusActive}
	carts.On("FindByID", mock.Anything, int64(7)).Return(cart, nil)
	carts.On("UpdateStatus", mock.Anything, int64(7), model.CartStatusSubmitted).Return(nil)

	//10個 × 8.50 = 85.00 → 30%割引で59.50 → 300未満なので送料9.90
	cartLines.On("ListByCartID", mock.Anything, int64(7)).Return([]model.CartLine{
		{ID: 50, CartID: 7, ProductID: 1, ProductSKU: "HN100OL20", ProductName: "Miel",
			UnitPriceHT: dec("8.50"), UnitPriceTTC: dec("14.90"), Quantity: 10},
	}, nil)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, MinimumOrderQuantity: 3}, nil)
	pharmacies.On("FindByID", mock.Anything, int64(10)).Return(assignedPharmacy(commercialID), nil)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.OrderNumber == "CMD-1772443800000" &&
			o.Status == model.OrderStatusPending &&
			o.DiscountRate.Equal(dec("30")) &&
			o.TotalBeforeDiscount.Equal(dec("85.00")) &&
			o.DiscountAmount.Equal(dec("25.50")) &&
			o.ShippingAmount.Equal(dec("9.90")) &&
			o.TotalAmount.Equal(dec("69.40"))
	})).Return(int64(200), nil)
	orderLines.On("CreateBulk", mock.Anything, int64(200), mock.Anything).Return(nil)

	out, err := uc.Submit(ctx, commercialID, model.RoleCommercial, usecase.SubmitOrderInput{CartID: 7})
	assert.NoError(t, err)
	assert.Equal(t, "CMD-1772443800000", out.OrderNumber)
	assert.Equal(t, "PENDING", out.Status)
	assert.Len(t, out.Lines, 1)
	assert.True(t, out.Lines[0].LineTotalHT.Equal(dec("85.00")))

	carts.AssertCalled(t, "UpdateStatus", mock.Anything, int64(7), model.CartStatusSubmitted)
}

func TestOrderUsecase_Submit_FrancoReachedNoShipping(t *testing.T) {
	ctx := context.Background()
	commercialID := int64(1)

	repos, orders, orderLines, carts, cartLines, products, pharmacies := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), fixedClock(time.Unix(0, 0)))

	cart := model.Cart{ID: 7, CommercialID: commercialID, PharmacyID: 10, OrderType: model.OrderTypeReassort, Status: model.CartStatusActive}
	carts.On("FindByID", mock.Anything, int64(7)).Return(cart, nil)
	carts.On("UpdateStatus", mock.Anything, int64(7), model.CartStatusSubmitted).Return(nil)

	//100個 × 8.50 = 850.00 → 30%割引で595.00 ≥ 300 → 送料0
	cartLines.On("ListByCartID", mock.Anything, int64(7)).Return([]model.CartLine{
		{ID: 50, CartID: 7, ProductID: 1, UnitPriceHT: dec("8.50"), UnitPriceTTC: dec("14.90"), Quantity: 100},
	}, nil)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, MinimumOrderQuantity: 3}, nil)
	pharmacies.On("FindByID", mock.Anything, int64(10)).Return(assignedPharmacy(commercialID), nil)

	orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.ShippingAmount.IsZero() && o.TotalAmount.Equal(dec("595.00"))
	})).Return(int64(201), nil)
	orderLines.On("CreateBulk", mock.Anything, int64(201), mock.Anything).Return(nil)

	out, err := uc.Submit(ctx, commercialID, model.RoleCommercial, usecase.SubmitOrderInput{CartID: 7})
	assert.NoError(t, err)
	assert.True(t, out.ShippingAmount.IsZero())
}

func TestOrderUsecase_Submit_EmptyCart(t *testing.T) {
	commercialID := int64(1)

	repos, _, _, carts, cartLines, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	cart := model.Cart{ID: 7, CommercialID: commercialID, PharmacyID: 10, Status: model.CartStatusActive}
	carts.On("FindByID", mock.Anything, int64(7)).Return(cart, nil)
	cartLines.On("ListByCartID", mock.Anything, int64(7)).Return([]model.CartLine{}, nil)

	_, err := uc.Submit(context.Background(), commercialID, model.RoleCommercial, usecase.SubmitOrderInput{CartID: 7})
	assertErrContains(t, err, "cart empty")
}

func TestOrderUsecase_Submit_MOQViolationsReportedTogether(t *testing.T) {
	commercialID := int64(1)

	repos, orders, _, carts, cartLines, products, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	cart := model.Cart{ID: 7, CommercialID: commercialID, PharmacyID: 10, Status: model.CartStatusActive}
	carts.On("FindByID", mock.Anything, int64(7)).Return(cart, nil)

	cartLines.On("ListByCartID", mock.Anything, int64(7)).Return([]model.CartLine{
		{ID: 50, CartID: 7, ProductID: 1, ProductSKU: "HN100OL20", Quantity: 1},
		{ID: 51, CartID: 7, ProductID: 2, ProductSKU: "SS080OL25", Quantity: 2},
	}, nil)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{ID: 1, MinimumOrderQuantity: 3}, nil)
	products.On("FindByID", mock.Anything, int64(2)).Return(model.Product{ID: 2, MinimumOrderQuantity: 6}, nil)

	_, err := uc.Submit(context.Background(), commercialID, model.RoleCommercial, usecase.SubmitOrderInput{CartID: 7})
	assertErrContains(t, err, "minimum order quantity not met")

	//違反は2件まとめて返る
	he, _ := usecase.AsHTTPError(err)
	violations, ok := he.Details.([]usecase.MOQViolation)
	assert.True(t, ok)
	assert.Len(t, violations, 2)

	orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestOrderUsecase_Submit_AlreadySubmittedCart(t *testing.T) {
	commercialID := int64(1)

	repos, _, _, carts, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	cart := model.Cart{ID: 7, CommercialID: commercialID, PharmacyID: 10, Status: model.CartStatusSubmitted}
	carts.On("FindByID", mock.Anything, int64(7)).Return(cart, nil)

	_, err := uc.Submit(context.Background(), commercialID, model.RoleCommercial, usecase.SubmitOrderInput{CartID: 7})
	assertErrContains(t, err, "cart already submitted")
}

// =====================
// EditLines
// =====================

func TestOrderUsecase_EditLines_NotEditableWhenValidated(t *testing.T) {
	repos, orders, _, _, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, Status: model.OrderStatusValidated,
	}, nil)

	_, err := uc.EditLines(context.Background(), 1, model.RoleCommercial, 200, []usecase.EditLineInput{
		{ProductID: 1, Quantity: 3, UnitPriceHT: dec("8.50"), UnitPriceTTC: dec("14.90")},
	})
	assertErrStatus(t, err, http.StatusPreconditionFailed)
}

func TestOrderUsecase_EditLines_RecomputesWithStoredRate(t *testing.T) {
	repos, orders, orderLines, _, _, products, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	//注文は20%で確定済み。薬局側が今何%でも関係ない。
	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, Status: model.OrderStatusPending, DiscountRate: dec("20"),
	}, nil)
	orderLines.On("DeleteByOrderID", mock.Anything, int64(200)).Return(nil)

	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, SKU: "HN100OL20", Name: "Miel", EAN: "3701234500017",
	}, nil)

	orderLines.On("CreateBulk", mock.Anything, int64(200), mock.MatchedBy(func(lines []model.OrderLine) bool {
		//名前・SKUはカタログから取り直し、単価は編集セッションの値
		return len(lines) == 1 && lines[0].ProductName == "Miel" && lines[0].UnitPriceHT.Equal(dec("9.00"))
	})).Return(nil)

	//10 × 9.00 = 90.00 → 20%で18.00 → 72.00 + 送料9.90 = 81.90
	orders.On("UpdateTotals", mock.Anything, int64(200), mock.MatchedBy(func(tot repo.OrderTotalsUpdate) bool {
		return tot.TotalBeforeDiscount.Equal(dec("90.00")) &&
			tot.DiscountAmount.Equal(dec("18.00")) &&
			tot.ShippingAmount.Equal(dec("9.90")) &&
			tot.TotalAmount.Equal(dec("81.90"))
	})).Return(nil)

	out, err := uc.EditLines(context.Background(), 1, model.RoleCommercial, 200, []usecase.EditLineInput{
		{ProductID: 1, Quantity: 10, UnitPriceHT: dec("9.00"), UnitPriceTTC: dec("15.90")},
	})
	assert.NoError(t, err)
	assert.True(t, out.TotalAmount.Equal(dec("81.90")))
	assert.True(t, out.DiscountRate.Equal(dec("20")))
}

func TestOrderUsecase_EditLines_UnknownProduct(t *testing.T) {
	repos, orders, orderLines, _, _, products, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, Status: model.OrderStatusPending, DiscountRate: dec("20"),
	}, nil)
	orderLines.On("DeleteByOrderID", mock.Anything, int64(200)).Return(nil)
	products.On("FindByID", mock.Anything, int64(404)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.EditLines(context.Background(), 1, model.RoleCommercial, 200, []usecase.EditLineInput{
		{ProductID: 404, Quantity: 3, UnitPriceHT: dec("8.50"), UnitPriceTTC: dec("14.90")},
	})
	assertErrContains(t, err, "unknown product")
}

func TestOrderUsecase_EditLines_InsertFailureAbortsEdit(t *testing.T) {
	repos, orders, orderLines, _, _, products, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, Status: model.OrderStatusPending, DiscountRate: dec("20"),
	}, nil)
	orderLines.On("DeleteByOrderID", mock.Anything, int64(200)).Return(nil)
	products.On("FindByID", mock.Anything, int64(1)).Return(model.Product{
		ID: 1, SKU: "HN100OL20", Name: "Miel",
	}, nil)

	//挿入に失敗したら500で中断。合計の書き込みまで進まない。
	orderLines.On("CreateBulk", mock.Anything, int64(200), mock.Anything).Return(errors.New("insert failed"))

	_, err := uc.EditLines(context.Background(), 1, model.RoleCommercial, 200, []usecase.EditLineInput{
		{ProductID: 1, Quantity: 10, UnitPriceHT: dec("9.00"), UnitPriceTTC: dec("15.90")},
	})
	assertErrStatus(t, err, http.StatusInternalServerError)
	orders.AssertNotCalled(t, "UpdateTotals", mock.Anything, mock.Anything, mock.Anything)

	//コールバックのエラーがトランザクションまで伝わっている（＝ロールバックされる）
	assert.Error(t, tx.fnErr)
}

func TestOrderUsecase_EditLines_ZeroQuantityRejectedUpfront(t *testing.T) {
	repos, orders, _, _, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	_, err := uc.EditLines(context.Background(), 1, model.RoleCommercial, 200, []usecase.EditLineInput{
		{ProductID: 1, Quantity: 0, UnitPriceHT: dec("8.50"), UnitPriceTTC: dec("14.90")},
	})
	assertErrContains(t, err, "invalid quantity")
	orders.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
}

// =====================
// Cancel
// =====================

func TestOrderUsecase_Cancel_OwnerPending(t *testing.T) {
	repos, orders, _, _, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, Status: model.OrderStatusPending,
	}, nil)
	orders.On("UpdateStatus", mock.Anything, int64(200), model.OrderStatusCancelled).Return(nil)

	err := uc.Cancel(context.Background(), 1, 200)
	assert.NoError(t, err)
	orders.AssertCalled(t, "UpdateStatus", mock.Anything, int64(200), model.OrderStatusCancelled)
}

func TestOrderUsecase_Cancel_NotOwnerForbidden(t *testing.T) {
	repos, orders, _, _, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 2, Status: model.OrderStatusPending,
	}, nil)

	err := uc.Cancel(context.Background(), 1, 200)
	assertErrStatus(t, err, http.StatusForbidden)
}

func TestOrderUsecase_Cancel_NotPendingPreconditionFailed(t *testing.T) {
	repos, orders, _, _, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, Status: model.OrderStatusShipped,
	}, nil)

	//編集と同じ前提条件違反として412
	err := uc.Cancel(context.Background(), 1, 200)
	assertErrContains(t, err, "order is not pending")
	assertErrStatus(t, err, http.StatusPreconditionFailed)
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

// =====================
// GetOrderDetail
// =====================

func TestOrderUsecase_GetOrderDetail_OtherUsersOrderHidden(t *testing.T) {
	repos, orders, _, _, _, _, _ := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}
	uc := usecase.NewOrderUsecase(tx, new(OrdUserRepoMock), nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 2, Status: model.OrderStatusPending,
	}, nil)

	_, err := uc.GetOrderDetail(context.Background(), 1, model.RoleCommercial, 200)
	assertErrStatus(t, err, http.StatusNotFound)
}

func TestOrderUsecase_GetOrderDetail_ResolvesPharmacyAndCommercial(t *testing.T) {
	repos, orders, orderLines, _, _, _, pharmacies := ordTxRepos()
	tx := &OrdTxManagerMock{Repos: repos}

	userRepo := new(OrdUserRepoMock)
	userRepo.On("FindByID", mock.Anything, int64(1)).Return(&model.User{ID: 1, FullName: "Paul Martin", Role: model.RoleCommercial}, nil)

	uc := usecase.NewOrderUsecase(tx, userRepo, nil)

	orders.On("FindByID", mock.Anything, int64(200)).Return(model.Order{
		ID: 200, CommercialID: 1, PharmacyID: 10, Status: model.OrderStatusPending,
	}, nil)
	orderLines.On("ListByOrderID", mock.Anything, int64(200)).Return([]model.OrderLine{}, nil)
	pharmacies.On("FindByID", mock.Anything, int64(10)).Return(assignedPharmacy(1), nil)

	out, err := uc.GetOrderDetail(context.Background(), 1, model.RoleCommercial, 200)
	assert.NoError(t, err)
	assert.NotNil(t, out.Pharmacy)
	assert.NotNil(t, out.Commercial)
	assert.Equal(t, "Paul Martin", out.Commercial.FullName)
}
