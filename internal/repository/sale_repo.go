package repository

import (
	"strings"
	"time"

	"go-pos-kasir/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReportFilter adalah predicate eksplisit untuk query laporan penjualan.
// CustomerType/PaymentType kosong berarti tanpa filter ("all").
type ReportFilter struct {
	StartDate    time.Time
	EndDate      time.Time
	CustomerType string
	PaymentType  string
	Search       string
}

// ReportRow adalah satu record laporan yang sudah di-flatten untuk frontend.
type ReportRow struct {
	ID           uuid.UUID `json:"id"`
	ProductName  string    `json:"productName"`
	Quantity     int       `json:"quantity"`
	TotalPrice   int64     `json:"totalPrice"`
	CustomerType string    `json:"customerType"`
	PaymentType  string    `json:"paymentType"`
	CashierName  string    `json:"cashierName"`
	CreatedAt    time.Time `json:"createdAt"`
}

type SaleRepository interface {
	Create(tx *gorm.DB, sale *model.Sale) error
	Report(filter ReportFilter) ([]ReportRow, error)
}

type saleRepo struct {
	db *gorm.DB
}

func NewSaleRepo(db *gorm.DB) SaleRepository {
	return &saleRepo{db}
}

// Create menerima tx agar baris sale commit bersama decrement stok dan audit log
func (r *saleRepo) Create(tx *gorm.DB, sale *model.Sale) error {
	return tx.Create(sale).Error
}

// Report menjalankan query laporan: join product + cashier, filter range
// tanggal (inklusif dua sisi), filter opsional, urut terbaru dulu.
func (r *saleRepo) Report(filter ReportFilter) ([]ReportRow, error) {
	q := r.db.Model(&model.Sale{}).
		Select(`sales.id,
			products.name AS product_name,
			sales.quantity,
			sales.total_price,
			sales.customer_type,
			sales.payment_type,
			COALESCE(NULLIF(users.name, ''), users.email) AS cashier_name,
			sales.created_at`).
		Joins("JOIN products ON products.id = sales.product_id").
		Joins("JOIN users ON users.id = sales.user_id").
		Where("sales.created_at BETWEEN ? AND ?", filter.StartDate, filter.EndDate)

	if filter.CustomerType != "" {
		q = q.Where("sales.customer_type = ?", filter.CustomerType)
	}
	if filter.PaymentType != "" {
		q = q.Where("sales.payment_type = ?", filter.PaymentType)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		q = q.Where("products.name ILIKE ?", "%"+search+"%")
	}

	rows := []ReportRow{}
	err := q.Order("sales.created_at DESC").Scan(&rows).Error
	return rows, err
}
