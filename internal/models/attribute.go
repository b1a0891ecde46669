package models

// Attribute is a named product characteristic (e.g. "metal", "finish").
type Attribute struct {
	AttributeID   uint             `json:"attribute_id" gorm:"primaryKey"`
	AttributeName string           `json:"attribute_name" gorm:"uniqueIndex;not null;type:varchar(100)" validate:"required,min=2,max=100"`
	Values        []AttributeValue `json:"values,omitempty" gorm:"foreignKey:AttributeID;constraint:OnDelete:CASCADE"`
}

// AttributeValue is one allowed value of an attribute.
type AttributeValue struct {
	AttributeValueID uint   `json:"attribute_value_id" gorm:"primaryKey"`
	AttributeID      uint   `json:"attribute_id" gorm:"not null;index"`
	Value            string `json:"value" gorm:"not null;type:varchar(100)"`
}
