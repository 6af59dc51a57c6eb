package service

import (
	"errors"

	"go-pos-kasir/internal/apperr"
	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/repository"
	"go-pos-kasir/internal/ws"
	"go-pos-kasir/pkg/validator"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CatalogService interface {
	CreateCategory(category *model.Category) error
	ListCategories() ([]model.Category, error)
	CreateProduct(product *model.Product) error
	ListProducts() ([]model.Product, error)
	ProductsByCategory(categoryID uuid.UUID) ([]model.Product, error)
	SearchProducts(query string) ([]model.Product, error)
	GetStock(productID uuid.UUID) (int, error)
	AdjustStock(productID uuid.UUID, quantity int) (int, error)
}

type catalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	txm          repository.TxManager
	hub          *ws.Hub
}

func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	txm repository.TxManager,
	hub *ws.Hub,
) CatalogService {
	return &catalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		txm:          txm,
		hub:          hub,
	}
}

func (s *catalogService) CreateCategory(category *model.Category) error {
	if errs := validator.ValidateStruct(category); len(errs) > 0 {
		return apperr.NewValidation(validator.Fields(errs)...)
	}
	return s.categoryRepo.Create(category)
}

func (s *catalogService) ListCategories() ([]model.Category, error) {
	return s.categoryRepo.FindAll()
}

func (s *catalogService) CreateProduct(product *model.Product) error {
	// 1. Validasi struct dasar
	if errs := validator.ValidateStruct(product); len(errs) > 0 {
		return apperr.NewValidation(validator.Fields(errs)...)
	}

	// 2. Category harus ada (business logic validation)
	if _, err := s.categoryRepo.FindByID(product.CategoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &apperr.NotFoundError{Resource: "category", ID: product.CategoryID.String()}
		}
		return err
	}

	return s.productRepo.Create(product)
}

func (s *catalogService) ListProducts() ([]model.Product, error) {
	return s.productRepo.FindAll()
}

func (s *catalogService) ProductsByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	return s.productRepo.FindByCategory(categoryID)
}

func (s *catalogService) SearchProducts(query string) ([]model.Product, error) {
	return s.productRepo.SearchByName(query)
}

func (s *catalogService) GetStock(productID uuid.UUID) (int, error) {
	product, err := s.productRepo.FindByID(productID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, &apperr.NotFoundError{Resource: "product", ID: productID.String()}
		}
		return 0, err
	}
	return product.Stock, nil
}

// AdjustStock menurunkan stok secara manual, floor di nol. Berjalan di bawah
// disiplin lock yang sama dengan sale recorder supaya dua jalur decrement
// tidak saling balapan dan stok tidak pernah negatif.
func (s *catalogService) AdjustStock(productID uuid.UUID, quantity int) (int, error) {
	if quantity < 0 {
		return 0, apperr.NewValidation("quantity")
	}

	var newStock int
	var productName string

	err := s.txm.Transaction(func(tx *gorm.DB) error {
		product, err := s.productRepo.LockByID(tx, productID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &apperr.NotFoundError{Resource: "product", ID: productID.String()}
			}
			return err
		}

		newStock = product.Stock - quantity
		if newStock < 0 {
			newStock = 0
		}
		productName = product.Name

		return s.productRepo.UpdateStock(tx, productID, newStock)
	})
	if err != nil {
		return 0, err
	}

	if s.hub != nil {
		go s.hub.BroadcastEvent(ws.StockEvent{
			Type:        "stock_adjusted",
			ProductID:   productID.String(),
			ProductName: productName,
			Stock:       newStock,
		})
	}

	return newStock, nil
}
