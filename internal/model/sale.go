package model

import "github.com/google/uuid"

type CustomerType string

const (
	CustomerRegular  CustomerType = "regular"
	CustomerReseller CustomerType = "reseller"
)

// Sale adalah satu baris penjualan. Immutable setelah dibuat: tidak ada
// update atau delete untuk record ini.
type Sale struct {
	BaseModel
	ProductID uuid.UUID `gorm:"type:uuid;not null" json:"productId"`
	Product   *Product  `json:"product,omitempty"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"userId"`
	User      *User     `json:"user,omitempty"`

	Quantity     int          `gorm:"not null" json:"quantity"`
	TotalPrice   int64        `gorm:"not null" json:"totalPrice"` // Snapshot: tier price * quantity
	CustomerType CustomerType `gorm:"type:varchar(20);not null" json:"customerType"`
	PaymentType  string       `gorm:"type:varchar(20);not null" json:"paymentType"` // CASH, TRANSFER, dll
}
