package models

import "time"

// Category is a node in the category tree. A nil ParentCategoryID marks a
// root category.
type Category struct {
	CategoryID       uint       `json:"category_id" gorm:"primaryKey"`
	CategoryName     string     `json:"category_name" gorm:"not null;type:varchar(100)" validate:"required,min=2,max=100"`
	Description      string     `json:"description" gorm:"type:text"`
	IsActive         bool       `json:"is_active" gorm:"default:true"`
	ParentCategoryID *uint      `json:"parent_category_id"`
	SubCategories    []Category `json:"sub_categories,omitempty" gorm:"foreignKey:ParentCategoryID"`
	Products         []Product  `json:"products,omitempty" gorm:"foreignKey:CategoryID"`
	CreatedAt        time.Time  `json:"created_at"`
}
