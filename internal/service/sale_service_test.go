package service_test

import (
	"encoding/json"
	"errors"
	"testing"

	"go-pos-kasir/internal/apperr"
	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/service"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSaleFixture(products ...*model.Product) (service.SaleService, *fakeProductRepo, *fakeSaleRepo, *fakeAuditRepo) {
	productRepo := newFakeProductRepo(products...)
	saleRepo := &fakeSaleRepo{}
	auditRepo := &fakeAuditRepo{}
	svc := service.NewSaleService(productRepo, saleRepo, auditRepo, &fakeTxManager{}, nil, testLogger())
	return svc, productRepo, saleRepo, auditRepo
}

// testProduct: stock=5, customerSellPrice=100, resellerSellPrice=80
func testProduct() *model.Product {
	return &model.Product{
		Name:              "Kopi Bubuk 250g",
		Stock:             5,
		BuyPrice:          60,
		CustomerSellPrice: 100,
		ResellerSellPrice: 80,
	}
}

func TestRecordSale_Success(t *testing.T) {
	p := testProduct()
	svc, productRepo, saleRepo, auditRepo := newSaleFixture(p)
	cashier := uuid.New()

	sales, err := svc.RecordSale(cashier, &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 3, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		Total:         300,
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})
	require.NoError(t, err)
	require.Len(t, sales, 1)

	assert.Equal(t, int64(300), sales[0].TotalPrice)
	assert.Equal(t, 3, sales[0].Quantity)
	assert.Equal(t, model.CustomerRegular, sales[0].CustomerType)
	assert.Equal(t, "cash", sales[0].PaymentType)
	assert.Equal(t, cashier, sales[0].UserID)
	assert.Equal(t, 2, productRepo.stockOf(p.ID))
	assert.Len(t, saleRepo.created, 1)

	require.Len(t, auditRepo.entries, 1)
	entry := auditRepo.entries[0]
	assert.Equal(t, model.ActionSale, entry.Action)
	assert.Equal(t, cashier, entry.UserID)

	var details struct {
		SalesIDs      []uuid.UUID `json:"salesIds"`
		PaymentMethod string      `json:"paymentMethod"`
	}
	require.NoError(t, json.Unmarshal([]byte(entry.Details), &details))
	assert.Equal(t, []uuid.UUID{sales[0].ID}, details.SalesIDs)
	assert.Equal(t, "cash", details.PaymentMethod)
}

func TestRecordSale_ResellerTier(t *testing.T) {
	p := testProduct()
	svc, productRepo, _, _ := newSaleFixture(p)

	sales, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 2, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		PaymentMethod: "transfer",
		UserType:      model.CustomerReseller,
	})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, int64(160), sales[0].TotalPrice)
	assert.Equal(t, 3, productRepo.stockOf(p.ID))
}

func TestRecordSale_InsufficientStock(t *testing.T) {
	p := testProduct()
	svc, productRepo, saleRepo, auditRepo := newSaleFixture(p)

	_, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 6, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, p.ID, stockErr.ProductID)
	assert.Equal(t, 5, stockErr.Available)
	assert.Equal(t, 6, stockErr.Requested)

	// Tidak ada state berubah
	assert.Equal(t, 5, productRepo.stockOf(p.ID))
	assert.Empty(t, saleRepo.created)
	assert.Empty(t, auditRepo.entries)
}

func TestRecordSale_PriceMismatch(t *testing.T) {
	p := testProduct()
	svc, productRepo, saleRepo, auditRepo := newSaleFixture(p)

	// Client submits a tampered price of 90 for the regular tier
	_, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 3, CustomerSellPrice: 90, ResellerSellPrice: 80},
		},
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})

	var priceErr *apperr.PriceMismatchError
	require.ErrorAs(t, err, &priceErr)
	assert.Equal(t, p.ID, priceErr.ProductID)

	assert.Equal(t, 5, productRepo.stockOf(p.ID))
	assert.Empty(t, saleRepo.created)
	assert.Empty(t, auditRepo.entries)
}

func TestRecordSale_UnknownProduct(t *testing.T) {
	svc, _, _, _ := newSaleFixture(testProduct())
	ghost := uuid.New()

	_, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: ghost, Quantity: 1, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})

	var notFound *apperr.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, ghost.String(), notFound.ID)
}

func TestRecordSale_Validation(t *testing.T) {
	svc, _, _, _ := newSaleFixture()

	_, err := svc.RecordSale(uuid.New(), &service.SaleRequest{})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items")
	assert.Contains(t, ve.Fields, "paymentMethod")
	assert.Contains(t, ve.Fields, "userType")
}

func TestRecordSale_ZeroQuantityLine(t *testing.T) {
	p := testProduct()
	svc, _, _, _ := newSaleFixture(p)

	_, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 0, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})

	var ve *apperr.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Fields, "items[0].quantity")
}

// Cart dengan product yang sama dua kali: stok dicek terhadap total kumulatif.
func TestRecordSale_DuplicateLinesExceedStock(t *testing.T) {
	p := testProduct()
	svc, productRepo, _, _ := newSaleFixture(p)

	_, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 3, CustomerSellPrice: 100, ResellerSellPrice: 80},
			{ID: p.ID, Quantity: 3, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})

	var stockErr *apperr.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, 6, stockErr.Requested)
	assert.Equal(t, 5, productRepo.stockOf(p.ID))
}

func TestRecordSale_AuditFailureAbortsTransaction(t *testing.T) {
	p := testProduct()
	productRepo := newFakeProductRepo(p)
	saleRepo := &fakeSaleRepo{}
	auditRepo := &fakeAuditRepo{err: errors.New("audit insert failed")}
	svc := service.NewSaleService(productRepo, saleRepo, auditRepo, &fakeTxManager{}, nil, testLogger())

	sales, err := svc.RecordSale(uuid.New(), &service.SaleRequest{
		Items: []service.SaleItem{
			{ID: p.ID, Quantity: 1, CustomerSellPrice: 100, ResellerSellPrice: 80},
		},
		PaymentMethod: "cash",
		UserType:      model.CustomerRegular,
	})

	require.Error(t, err)
	assert.Nil(t, sales)
	assert.Equal(t, 500, apperr.Status(err))
}
