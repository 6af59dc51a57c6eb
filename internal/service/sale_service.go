package service

import (
	"encoding/json"
	"fmt"

	"go-pos-kasir/internal/apperr"
	"go-pos-kasir/internal/model"
	"go-pos-kasir/internal/repository"
	"go-pos-kasir/internal/ws"
	"go-pos-kasir/pkg/logger"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SaleItem adalah satu baris cart dari client. Harga yang dikirim client
// hanya dipakai untuk verifikasi; harga yang dipersist selalu harga server.
type SaleItem struct {
	ID                uuid.UUID `json:"id"`
	Quantity          int       `json:"quantity"`
	CustomerSellPrice int64     `json:"customerSellPrice"`
	ResellerSellPrice int64     `json:"resellerSellPrice"`
}

type SaleRequest struct {
	Items         []SaleItem         `json:"items"`
	Total         int64              `json:"total"`
	PaymentMethod string             `json:"paymentMethod"`
	UserType      model.CustomerType `json:"userType"`
}

type SaleService interface {
	RecordSale(userID uuid.UUID, req *SaleRequest) ([]model.Sale, error)
}

type saleService struct {
	productRepo repository.ProductRepository
	saleRepo    repository.SaleRepository
	auditRepo   repository.AuditLogRepository
	txm         repository.TxManager
	hub         *ws.Hub
	log         *logger.Logger
}

func NewSaleService(
	productRepo repository.ProductRepository,
	saleRepo repository.SaleRepository,
	auditRepo repository.AuditLogRepository,
	txm repository.TxManager,
	hub *ws.Hub,
	log *logger.Logger,
) SaleService {
	return &saleService{
		productRepo: productRepo,
		saleRepo:    saleRepo,
		auditRepo:   auditRepo,
		txm:         txm,
		hub:         hub,
		log:         log,
	}
}

type saleAuditDetails struct {
	Items         []SaleItem         `json:"items"`
	Total         int64              `json:"total"` // Client-reported, recorded for traceability only
	PaymentMethod string             `json:"paymentMethod"`
	UserType      model.CustomerType `json:"userType"`
	SalesIDs      []uuid.UUID        `json:"salesIds"`
}

// RecordSale memproses satu cart: validasi bentuk input, lalu di dalam SATU
// transaksi: lock + baca semua product, cek stok dan harga per baris, insert
// baris sale, decrement stok, dan tulis satu entry audit. Gagal di titik mana
// pun berarti semuanya rollback.
func (s *saleService) RecordSale(userID uuid.UUID, req *SaleRequest) ([]model.Sale, error) {
	if err := validateSaleRequest(req); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(req.Items))
	for i, item := range req.Items {
		ids[i] = item.ID
	}

	var sales []model.Sale
	var events []ws.StockEvent

	err := s.txm.Transaction(func(tx *gorm.DB) error {
		// Satu read untuk semua product yang direferensikan, dengan row lock.
		// Check stok/harga dan write stok berada di isolation boundary yang sama.
		products, err := s.productRepo.LockByIDs(tx, ids)
		if err != nil {
			return err
		}

		productMap := make(map[uuid.UUID]*model.Product, len(products))
		for i := range products {
			productMap[products[i].ID] = &products[i]
		}

		// Cart boleh memuat product yang sama lebih dari sekali; stok dicek
		// terhadap total kumulatif yang diminta.
		requested := make(map[uuid.UUID]int, len(req.Items))

		for _, item := range req.Items {
			product, ok := productMap[item.ID]
			if !ok {
				return &apperr.NotFoundError{Resource: "product", ID: item.ID.String()}
			}

			requested[item.ID] += item.Quantity
			if product.Stock < requested[item.ID] {
				return &apperr.InsufficientStockError{
					ProductID: item.ID,
					Available: product.Stock,
					Requested: requested[item.ID],
				}
			}

			// Verifikasi harga: harga client untuk tier yang dipilih harus sama
			// persis dengan harga server. Mencegah price tampering dari client.
			submitted := item.CustomerSellPrice
			if req.UserType == model.CustomerReseller {
				submitted = item.ResellerSellPrice
			}
			if product.SellPriceFor(req.UserType) != submitted {
				return &apperr.PriceMismatchError{ProductID: item.ID}
			}
		}

		// Semua baris lolos: tulis sale, decrement stok, lalu audit log.
		for _, item := range req.Items {
			product := productMap[item.ID]
			unitPrice := product.SellPriceFor(req.UserType)

			sale := model.Sale{
				ProductID:    item.ID,
				UserID:       userID,
				Quantity:     item.Quantity,
				TotalPrice:   unitPrice * int64(item.Quantity),
				CustomerType: req.UserType,
				PaymentType:  req.PaymentMethod,
			}
			if err := s.saleRepo.Create(tx, &sale); err != nil {
				return err
			}
			sales = append(sales, sale)

			if err := s.productRepo.DecrementStock(tx, item.ID, item.Quantity); err != nil {
				return err
			}
			product.Stock -= item.Quantity
		}

		saleIDs := make([]uuid.UUID, len(sales))
		for i, sale := range sales {
			saleIDs[i] = sale.ID
		}
		details, err := json.Marshal(saleAuditDetails{
			Items:         req.Items,
			Total:         req.Total,
			PaymentMethod: req.PaymentMethod,
			UserType:      req.UserType,
			SalesIDs:      saleIDs,
		})
		if err != nil {
			return err
		}
		if err := s.auditRepo.CreateTx(tx, &model.AuditLog{
			UserID:  userID,
			Action:  model.ActionSale,
			Details: string(details),
		}); err != nil {
			return err
		}

		for id, product := range productMap {
			events = append(events, ws.StockEvent{
				Type:        "sale_recorded",
				ProductID:   id.String(),
				ProductName: product.Name,
				Stock:       product.Stock,
				Actor:       userID.String(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Broadcast hanya setelah commit, agar client tidak melihat stok rollback
	if s.hub != nil {
		go func() {
			for _, ev := range events {
				s.hub.BroadcastEvent(ev)
			}
		}()
	}

	s.log.Info().
		Str("user_id", userID.String()).
		Int("lines", len(sales)).
		Str("payment", req.PaymentMethod).
		Msg("sale recorded")

	return sales, nil
}

func validateSaleRequest(req *SaleRequest) error {
	var fields []string
	if len(req.Items) == 0 {
		fields = append(fields, "items")
	}
	if req.PaymentMethod == "" {
		fields = append(fields, "paymentMethod")
	}
	if req.UserType != model.CustomerRegular && req.UserType != model.CustomerReseller {
		fields = append(fields, "userType")
	}
	for i, item := range req.Items {
		if item.ID == uuid.Nil {
			fields = append(fields, fmt.Sprintf("items[%d].id", i))
		}
		if item.Quantity <= 0 {
			fields = append(fields, fmt.Sprintf("items[%d].quantity", i))
		}
	}
	if len(fields) > 0 {
		return apperr.NewValidation(fields...)
	}
	return nil
}
