package model

type Category struct {
	BaseModel
	Name string `gorm:"type:varchar(255);uniqueIndex;not null" json:"name" validate:"required"`

	// Relasi
	Products []Product `json:"products,omitempty"`
}
