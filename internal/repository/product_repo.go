package repository

import (
	"go-pos-kasir/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id uuid.UUID) (*model.Product, error)
	FindByCategory(categoryID uuid.UUID) ([]model.Product, error)
	SearchByName(query string) ([]model.Product, error)
	LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error)
	LockByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.Product, error)
	UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error
	DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error
}

type productRepo struct {
	db *gorm.DB
}

func NewProductRepo(db *gorm.DB) ProductRepository {
	return &productRepo{db}
}

func (r *productRepo) Create(product *model.Product) error {
	return r.db.Create(product).Error
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := r.db.Preload("Category").Find(&products).Error
	return products, err
}

func (r *productRepo) FindByID(id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := r.db.Preload("Category").First(&product, "id = ?", id).Error
	return &product, err
}

func (r *productRepo) FindByCategory(categoryID uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("category_id = ?", categoryID).Find(&products).Error
	return products, err
}

func (r *productRepo) SearchByName(query string) ([]model.Product, error) {
	var products []model.Product
	err := r.db.Where("name ILIKE ?", "%"+query+"%").Find(&products).Error
	return products, err
}

// LockByID membaca satu product dengan FOR UPDATE row lock di dalam tx.
func (r *productRepo) LockByID(tx *gorm.DB, id uuid.UUID) (*model.Product, error) {
	var product model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&product, "id = ?", id).Error
	return &product, err
}

// LockByIDs membaca semua product yang direferensikan cart dalam satu query,
// dengan FOR UPDATE row lock. Check stok/harga dan write stok berjalan di
// bawah lock yang sama, jadi sale yang konkuren terserialisasi per product.
func (r *productRepo) LockByIDs(tx *gorm.DB, ids []uuid.UUID) ([]model.Product, error) {
	var products []model.Product
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

// UpdateStock menerima tx agar berjalan dalam transaksi yang sama dengan check-nya
func (r *productRepo) UpdateStock(tx *gorm.DB, id uuid.UUID, newStock int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", newStock).Error
}

func (r *productRepo) DecrementStock(tx *gorm.DB, id uuid.UUID, quantity int) error {
	return tx.Model(&model.Product{}).
		Where("id = ?", id).
		Update("stock", gorm.Expr("stock - ?", quantity)).Error
}
