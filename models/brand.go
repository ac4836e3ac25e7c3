package models

type Brand struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"unique;not null" json:"name"`
	Slug        string    `gorm:"uniqueIndex" json:"slug"`
	Description string    `json:"description"`
	Logo        string    `json:"logo"`
	Products    []Product `gorm:"foreignKey:BrandID" json:"products,omitempty"`
}
