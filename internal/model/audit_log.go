package model

import "github.com/google/uuid"

// Audit actions
const (
	ActionSale            = "SALE"
	ActionViewSalesReport = "VIEW_SALES_REPORT"
)

// AuditLog mencatat aksi sensitif (penjualan, lihat laporan). Append-only.
type AuditLog struct {
	BaseModel
	UserID  uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	User    *User     `json:"user,omitempty"`
	Action  string    `gorm:"type:varchar(50);not null" json:"action"`
	Details string    `gorm:"type:text" json:"details"` // Serialized JSON payload
}
