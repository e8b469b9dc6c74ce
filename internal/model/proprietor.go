package model

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Proprietor Types
type ProprietorType string

const (
	ProprietorTypeCompany    ProprietorType = "company"
	ProprietorTypeIndividual ProprietorType = "individual"
)

// Proprietor Categories
type ProprietorCategory string

const (
	CategoryGroupCompany      ProprietorCategory = "group_company"
	CategoryJointVenture      ProprietorCategory = "joint_venture"
	CategoryManagedIndividual ProprietorCategory = "managed_individual"
	CategoryExternalLandlord  ProprietorCategory = "external_landlord"
	CategoryExternalCustomer  ProprietorCategory = "external_customer"
)

// Code prefixes. The prefix of Proprietor.Code is the sole role discriminator:
// A-codes are asset owners / landlords, T-codes are tenants.
const (
	CodePrefixOwner  = "A"
	CodePrefixTenant = "T"
)

// Proprietor is the counterparty registry: owners, external landlords and
// tenants all live in the same table and are told apart by code prefix.
type Proprietor struct {
	gorm.Model
	Name        string             `json:"name" gorm:"not null"`
	Code        string             `json:"code" gorm:"uniqueIndex;not null"`
	Type        ProprietorType     `json:"type" gorm:"not null"`
	Category    ProprietorCategory `json:"category"`
	EnglishName string             `json:"english_name"`
	ShortName   string             `json:"short_name"`

	CreatedBy uint `json:"created_by"`
}

// IsTenant reports whether the registry entry carries a tenant code.
func (p *Proprietor) IsTenant() bool {
	return strings.HasPrefix(p.Code, CodePrefixTenant)
}

// RoleConsistent checks that the code prefix matches the category the entry
// was filed under. Like ownership consistency on Property this is a warning
// signal, not a constraint the database enforces.
func (p *Proprietor) RoleConsistent() bool {
	if p.IsTenant() {
		return p.Category == "" || p.Category == CategoryExternalCustomer
	}
	return p.Category != CategoryExternalCustomer
}

// NextProprietorCode allocates the next sequential code for a prefix,
// zero-padded to two digits while the sequence fits (A01, A02, ... A99, A100).
func NextProprietorCode(db *gorm.DB, prefix string) (string, error) {
	var count int64
	if err := db.Model(&Proprietor{}).
		Where("code LIKE ?", prefix+"%").
		Count(&count).Error; err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%02d", prefix, count+1), nil
}
