package usecase_test

import (
	"context"
	"errors"
	"testing"

	"oliveleos/internal/domain/model"
	repo "oliveleos/internal/repository"
	"oliveleos/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type ProdProductRepoMock struct{ mock.Mock }

func (m *ProdProductRepoMock) List(ctx context.Context, q repo.ProductListQuery) ([]model.Product, int64, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProdProductRepoMock) FindByID(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProdProductRepoMock) FindBySKU(ctx context.Context, sku string) (model.Product, error) {
	panic("not used in ProductUsecase tests")
}

func (m *ProdProductRepoMock) Create(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProdProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *ProdProductRepoMock) SoftDelete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *ProdProductRepoMock) SetStock(ctx context.Context, productID int64, newStock int64) error {
	args := m.Called(ctx, productID, newStock)
	return args.Error(0)
}

type ProdAuditRepoMock struct{ mock.Mock }

func (m *ProdAuditRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

func (m *ProdAuditRepoMock) List(ctx context.Context, filter repo.AuditLogFilter) ([]model.AuditLog, error) {
	panic("not used in ProductUsecase tests")
}

// =====================
// List / Detail
// =====================

func TestProductUsecase_ListProducts_InvalidPage(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdAuditRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 0, Limit: 20})
	assertErrContains(t, err, "invalid page")
}

func TestProductUsecase_ListProducts_InvalidSort(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdAuditRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, Sort: "oldest"})
	assertErrContains(t, err, "invalid sort")
}

func TestProductUsecase_ListProducts_ActiveOnlyAlwaysSet(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdAuditRepoMock))

	q := repo.ProductListQuery{Page: 1, Limit: 20, Q: "miel", Sort: "price_asc", ActiveOnly: true}
	pRepo.On("List", mock.Anything, q).Return([]model.Product{{ID: 1, Name: "Miel", IsActive: true}}, int64(1), nil)

	out, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Page: 1, Limit: 20, Q: "miel", Sort: "price_asc"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Total)
	pRepo.AssertExpectations(t)
}

func TestProductUsecase_GetProductDetail_ReturnsInactiveProduct(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdAuditRepoMock))

	//過去注文の明細から参照できるように非公開でも返す
	pRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, IsActive: false}, nil)

	p, err := uc.GetProductDetail(context.Background(), 5)
	assert.NoError(t, err)
	assert.False(t, p.IsActive)
}

func TestProductUsecase_GetProductDetail_NotFound(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdAuditRepoMock))

	pRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProductDetail(context.Background(), 99)
	assertErrContains(t, err, "not found")
}

// =====================
// Admin CRUD
// =====================

func validAdminProductInput() usecase.AdminProductInput {
	return usecase.AdminProductInput{
		SKU:                  "HN100OL20",
		EAN:                  "3701234500017",
		Name:                 "Miel de Leos 100g",
		Category:             "alimentaire",
		PcbPrice:             dec("8.50"),
		RetailPrice:          dec("14.90"),
		VatRate:              dec("5.5"),
		IsActive:             true,
		MinimumOrderQuantity: 3,
	}
}

func TestProductUsecase_AdminCreateProduct_Success(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdAuditRepoMock))

	pRepo.On("Create", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.SKU == "HN100OL20" && p.MinimumOrderQuantity == 3
	})).Return(model.Product{ID: 1}, nil)

	id, err := uc.AdminCreateProduct(context.Background(), 100, validAdminProductInput())
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)
}

func TestProductUsecase_AdminCreateProduct_MissingSKU(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdAuditRepoMock))

	in := validAdminProductInput()
	in.SKU = "  "
	_, err := uc.AdminCreateProduct(context.Background(), 100, in)
	assertErrContains(t, err, "sku required")
}

func TestProductUsecase_AdminCreateProduct_MOQBelowOne(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdAuditRepoMock))

	in := validAdminProductInput()
	in.MinimumOrderQuantity = 0
	_, err := uc.AdminCreateProduct(context.Background(), 100, in)
	assertErrContains(t, err, "minimum_order_quantity")
}

func TestProductUsecase_AdminCreateProduct_DuplicateSKU(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	uc := usecase.NewProductUsecase(pRepo, new(ProdAuditRepoMock))

	pRepo.On("Create", mock.Anything, mock.Anything).Return(model.Product{}, errors.New("duplicate key"))

	_, err := uc.AdminCreateProduct(context.Background(), 100, validAdminProductInput())
	assertErrContains(t, err, "sku already exists")
}

// =====================
// Stock
// =====================

func TestProductUsecase_AdminUpdateStock_AuditsBeforeAfter(t *testing.T) {
	pRepo := new(ProdProductRepoMock)
	auditRepo := new(ProdAuditRepoMock)
	uc := usecase.NewProductUsecase(pRepo, auditRepo)

	pRepo.On("FindByID", mock.Anything, int64(5)).Return(model.Product{ID: 5, StockQuantity: 40}, nil)
	pRepo.On("SetStock", mock.Anything, int64(5), int64(120)).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateStock &&
			l.ResourceType == model.AuditResourceProduct &&
			l.ResourceID == 5 &&
			l.BeforeJSON == `{"stock_quantity":40}` &&
			l.AfterJSON == `{"stock_quantity":120}`
	})).Return(nil)

	err := uc.AdminUpdateStock(context.Background(), 100, 5, 120)
	assert.NoError(t, err)
	auditRepo.AssertExpectations(t)
}

func TestProductUsecase_AdminUpdateStock_NegativeRejected(t *testing.T) {
	uc := usecase.NewProductUsecase(new(ProdProductRepoMock), new(ProdAuditRepoMock))

	err := uc.AdminUpdateStock(context.Background(), 100, 5, -1)
	assertErrContains(t, err, "stock must be >= 0")
}
