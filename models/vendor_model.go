package models

import (
	"gorm.io/gorm"
)

// Vendor mirrors the upstream vendor directory; read here only to
// stamp GRN headers.
type Vendor struct {
	gorm.Model
	VendorCode string `json:"vendor_code" gorm:"unique" validate:"required"`
	VendorName string `json:"vendor_name" validate:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
	IsActive   bool   `json:"is_active" gorm:"default:true"`
	CreatedBy  int    `json:"-"`
	UpdatedBy  int    `json:"-"`
}

// Project segments stock balances; a GRN may optionally be tagged to
// one.
type Project struct {
	gorm.Model
	Code      string `json:"code" gorm:"unique" validate:"required"`
	Name      string `json:"name" validate:"required"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int    `json:"-"`
	UpdatedBy int    `json:"-"`
}
