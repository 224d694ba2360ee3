package models

import (
	"fmt"

	"gorm.io/gorm"
)

const (
	StoreKindMain = "main"
	StoreKindSub  = "sub"
)

// Store is the top level of the physical storage tree. A sub store
// always hangs off a main store; a main store has no parent.
type Store struct {
	gorm.Model
	Name      string `json:"name" validate:"required"`
	Code      string `json:"code" gorm:"index" validate:"required"`
	Kind      string `json:"kind" gorm:"default:'main'"`
	ParentID  *uint  `json:"parent_id"`
	IsActive  bool   `json:"is_active" gorm:"default:true"`
	CreatedBy int    `json:"-"`
	UpdatedBy int    `json:"-"`

	Racks []Rack `gorm:"foreignKey:StoreID;references:ID" json:"racks,omitempty"`
}

type Rack struct {
	gorm.Model
	StoreID     uint   `json:"store_id" gorm:"index"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	CreatedBy   int    `json:"-"`
	UpdatedBy   int    `json:"-"`

	Shelves []Shelf `gorm:"foreignKey:RackID;references:ID" json:"shelves,omitempty"`
}

type Shelf struct {
	gorm.Model
	RackID      uint   `json:"rack_id" gorm:"index"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	CreatedBy   int    `json:"-"`
	UpdatedBy   int    `json:"-"`

	Bins []Bin `gorm:"foreignKey:ShelfID;references:ID" json:"bins,omitempty"`
}

type Bin struct {
	gorm.Model
	ShelfID     uint   `json:"shelf_id" gorm:"index"`
	Code        string `json:"code" validate:"required"`
	Description string `json:"description"`
	IsActive    bool   `json:"is_active" gorm:"default:true"`
	CreatedBy   int    `json:"-"`
	UpdatedBy   int    `json:"-"`
}

// LocationPath is a validated store/rack/shelf/bin chain. Rack, shelf
// and bin are optional but each level requires its parent.
type LocationPath struct {
	Store *Store
	Rack  *Rack
	Shelf *Shelf
	Bin   *Bin
}

// Consistent verifies the ancestor chain hangs together and every node
// is active. It does not hit the database.
func (p *LocationPath) Consistent() error {
	if p.Store == nil {
		return fmt.Errorf("location path has no store")
	}
	if !p.Store.IsActive {
		return fmt.Errorf("store %s is deactivated", p.Store.Code)
	}
	if p.Rack == nil {
		if p.Shelf != nil || p.Bin != nil {
			return fmt.Errorf("shelf or bin given without a rack")
		}
		return nil
	}
	if !p.Rack.IsActive {
		return fmt.Errorf("rack %s is deactivated", p.Rack.Code)
	}
	if p.Rack.StoreID != p.Store.ID {
		return fmt.Errorf("rack %s does not belong to store %s", p.Rack.Code, p.Store.Code)
	}
	if p.Shelf == nil {
		if p.Bin != nil {
			return fmt.Errorf("bin given without a shelf")
		}
		return nil
	}
	if !p.Shelf.IsActive {
		return fmt.Errorf("shelf %s is deactivated", p.Shelf.Code)
	}
	if p.Shelf.RackID != p.Rack.ID {
		return fmt.Errorf("shelf %s does not belong to rack %s", p.Shelf.Code, p.Rack.Code)
	}
	if p.Bin == nil {
		return nil
	}
	if !p.Bin.IsActive {
		return fmt.Errorf("bin %s is deactivated", p.Bin.Code)
	}
	if p.Bin.ShelfID != p.Shelf.ID {
		return fmt.Errorf("bin %s does not belong to shelf %s", p.Bin.Code, p.Shelf.Code)
	}
	return nil
}

// FlatLocation is one row of the flattened tree used by cascading
// selectors; a single query per store instead of one per level.
type FlatLocation struct {
	RackID    uint   `json:"rack_id"`
	RackCode  string `json:"rack_code"`
	ShelfID   *uint  `json:"shelf_id"`
	ShelfCode string `json:"shelf_code"`
	BinID     *uint  `json:"bin_id"`
	BinCode   string `json:"bin_code"`
}
