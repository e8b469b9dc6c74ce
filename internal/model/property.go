package model

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Property Types
type PropertyType string

const (
	PropertyTypeGroupAsset    PropertyType = "group_asset"
	PropertyTypeCoInvestment  PropertyType = "co_investment"
	PropertyTypeExternalLease PropertyType = "external_lease"
	PropertyTypeManagedAsset  PropertyType = "managed_asset"
)

// Property Status
type PropertyStatus string

const (
	PropertyStatusHolding   PropertyStatus = "holding"
	PropertyStatusRenting   PropertyStatus = "renting"
	PropertyStatusSold      PropertyStatus = "sold"
	PropertyStatusSuspended PropertyStatus = "suspended"
)

// Land Use
type LandUse string

const (
	LandUseResidential    LandUse = "residential"
	LandUseCommercial     LandUse = "commercial"
	LandUseOffice         LandUse = "office"
	LandUseIndustrial     LandUse = "industrial"
	LandUseRetail         LandUse = "retail"
	LandUseAgricultural   LandUse = "agricultural"
	LandUseMixedUse       LandUse = "mixed_use"
	LandUsePublicFacility LandUse = "public_facility"
)

type Property struct {
	gorm.Model
	Name    string         `json:"name" gorm:"not null"`
	Code    string         `json:"code" gorm:"uniqueIndex;not null"`
	Address string         `json:"address" gorm:"type:text"`
	Type    PropertyType   `json:"type" gorm:"not null"`
	Status  PropertyStatus `json:"status" gorm:"not null"`
	LandUse LandUse        `json:"land_use"`

	// Lot registry fields
	LotIndex string  `json:"lot_index"`
	LotArea  float64 `json:"lot_area"`

	// Ownership references. OwnerID is the legacy single reference kept for
	// display compatibility; OwnerIDs carries the full co-ownership list and
	// its first element must match OwnerID when both are set.
	OwnerID  *uint          `json:"owner_id" gorm:"index"`
	OwnerIDs datatypes.JSON `json:"owner_ids"`
	TenantID *uint          `json:"tenant_id" gorm:"index"`

	// Map and survey attachments
	GeoMaps    datatypes.JSON `json:"geo_maps"`   // up to two survey map image URLs
	Coordinate datatypes.JSON `json:"coordinate"` // {"lat": ..., "lng": ...}

	PlanningNote string `json:"planning_note" gorm:"type:text"`
	Notes        string `json:"notes" gorm:"type:text"`

	CreatedBy uint `json:"created_by"`

	// İlişkiler
	Images []PropertyImage `json:"images" gorm:"foreignKey:PropertyID;constraint:OnDelete:CASCADE"`
}

type PropertyImage struct {
	gorm.Model
	PropertyID uint   `json:"property_id"`
	URL        string `json:"url" gorm:"not null"`
	IsCover    bool   `json:"is_cover" gorm:"default:false"`
	Order      int    `json:"order" gorm:"default:0"`

	Property Property `json:"-" gorm:"foreignKey:PropertyID"`
}

// BeforeCreate allocates the next property code when none was supplied.
func (p *Property) BeforeCreate(tx *gorm.DB) error {
	if p.Code == "" {
		var count int64
		if err := tx.Model(&Property{}).Count(&count).Error; err != nil {
			return err
		}
		p.Code = fmt.Sprintf("PRP%03d", count+1)
	}
	return nil
}

// OwnerIDList decodes the co-ownership list. A missing or malformed column
// decodes to an empty list rather than an error.
func (p *Property) OwnerIDList() []uint {
	if len(p.OwnerIDs) == 0 {
		return nil
	}
	var ids []uint
	if err := json.Unmarshal(p.OwnerIDs, &ids); err != nil {
		return nil
	}
	return ids
}

// OwnershipConsistent reports whether the legacy single owner reference agrees
// with the head of the co-ownership list. Historical rows were written before
// the list column existed, so an inconsistency is a data-quality warning, not
// a reason to reject the record.
func (p *Property) OwnershipConsistent() bool {
	ids := p.OwnerIDList()
	if len(ids) == 0 {
		return true
	}
	if p.OwnerID == nil {
		return false
	}
	return ids[0] == *p.OwnerID
}
