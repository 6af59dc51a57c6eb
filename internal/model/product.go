package model

import "github.com/google/uuid"

// Product adalah item katalog. Stock tidak boleh negatif; satu-satunya jalur
// yang menurunkan stock adalah sale recorder dan endpoint stock adjustment.
type Product struct {
	BaseModel
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `json:"description"`
	Stock       int    `gorm:"default:0;check:stock >= 0" json:"stock" validate:"gte=0"`

	// Harga dalam rupiah (integer). Dua tier harga jual: customer dan reseller.
	BuyPrice          int64 `gorm:"default:0" json:"buyPrice"`
	CustomerSellPrice int64 `gorm:"default:0" json:"customerSellPrice" validate:"gte=0"`
	ResellerSellPrice int64 `gorm:"default:0" json:"resellerSellPrice" validate:"gte=0"`

	CategoryID uuid.UUID `gorm:"type:uuid;not null" json:"categoryId" validate:"uuid_required"`
	Category   *Category `json:"category,omitempty" validate:"-"`
}

// SellPriceFor returns the stored unit price for a pricing tier.
func (p *Product) SellPriceFor(ct CustomerType) int64 {
	if ct == CustomerReseller {
		return p.ResellerSellPrice
	}
	return p.CustomerSellPrice
}
