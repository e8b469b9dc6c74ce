// Package store is the storage boundary for the derivation core: raw rows in
// the persistence naming convention, plus the referential-integrity rules the
// registry depends on. Controllers talk to gorm directly for the usual CRUD;
// the export/import surface and the proprietor delete guard go through here.
package store

import (
	"fmt"
	"strconv"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"assetdesk_backend/internal/model"
)

type Kind string

const (
	KindProperty   Kind = "property"
	KindProprietor Kind = "proprietor"
	KindRent       Kind = "rent"
)

// Reference describes a record that still points at another one. It is the
// payload of a refused delete.
type Reference struct {
	Kind  Kind   `json:"kind"`
	ID    uint   `json:"id"`
	Label string `json:"label"`
}

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func tableFor(kind Kind) (string, error) {
	switch kind {
	case KindProperty:
		return "properties", nil
	case KindProprietor:
		return "proprietors", nil
	case KindRent:
		return "rents", nil
	}
	return "", fmt.Errorf("unknown entity kind: %s", kind)
}

// FetchAll returns every live row of the kind as a flat record in the storage
// naming convention. Soft-deleted rows are excluded.
func (s *Store) FetchAll(kind Kind) ([]map[string]interface{}, error) {
	table, err := tableFor(kind)
	if err != nil {
		return nil, err
	}

	var rows []map[string]interface{}
	if err := s.db.Table(table).Where("deleted_at IS NULL").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes a storage-form record, updating by id when one is present and
// inserting otherwise. Numeric columns that arrive as unparseable strings are
// dropped from the record before the write, per the legacy-import rule that a
// malformed number is treated as absent.
func (s *Store) Upsert(kind Kind, record map[string]interface{}) (uint, error) {
	table, err := tableFor(kind)
	if err != nil {
		return 0, err
	}

	rec := sanitizeNumerics(kind, record)

	if raw, ok := rec["id"]; ok {
		id, ok := coerceUint(raw)
		if !ok {
			return 0, fmt.Errorf("invalid id in %s record", kind)
		}
		delete(rec, "id")
		if err := s.db.Table(table).Where("id = ?", id).Updates(rec).Error; err != nil {
			return 0, err
		}
		return id, nil
	}

	if err := s.db.Table(table).
		Clauses(clause.Returning{Columns: []clause.Column{{Name: "id"}}}).
		Create(&rec).Error; err != nil {
		return 0, err
	}
	id, _ := coerceUint(rec["id"])
	return id, nil
}

// Delete removes a record, subject to each kind's lifecycle rule:
//   - proprietor: refused (false + the referencing records) while any property
//     or rent still points at it;
//   - rent: the row is kept and only unlinked from its property;
//   - property: removed; its leases are left orphaned on purpose.
func (s *Store) Delete(kind Kind, id uint) (bool, []Reference, error) {
	switch kind {
	case KindProprietor:
		refs, err := s.ProprietorReferences(id)
		if err != nil {
			return false, nil, err
		}
		if len(refs) > 0 {
			return false, refs, nil
		}
		if err := s.db.Delete(&model.Proprietor{}, id).Error; err != nil {
			return false, nil, err
		}
		return true, nil, nil

	case KindRent:
		err := s.db.Model(&model.Rent{}).Where("id = ?", id).
			Update("property_id", nil).Error
		if err != nil {
			return false, nil, err
		}
		return true, nil, nil

	case KindProperty:
		if err := s.db.Delete(&model.Property{}, id).Error; err != nil {
			return false, nil, err
		}
		return true, nil, nil
	}

	return false, nil, fmt.Errorf("unknown entity kind: %s", kind)
}

// ProprietorReferences lists every property and rent still referencing the
// proprietor, including co-ownership list entries.
func (s *Store) ProprietorReferences(id uint) ([]Reference, error) {
	var refs []Reference

	var properties []model.Property
	if err := s.db.Where("owner_id = ? OR tenant_id = ?", id, id).
		Or("owner_ids IS NOT NULL").
		Find(&properties).Error; err != nil {
		return nil, err
	}
	for _, p := range properties {
		if referencesProprietor(&p, id) {
			refs = append(refs, Reference{Kind: KindProperty, ID: p.ID, Label: p.Name})
		}
	}

	var rents []model.Rent
	if err := s.db.Where("rent_out_tenant_id = ? OR renting_landlord_id = ?", id, id).
		Find(&rents).Error; err != nil {
		return nil, err
	}
	for _, r := range rents {
		label := r.RentOutContractNo
		if r.Type == model.RentDirectionIn {
			label = r.RentingContractNo
		}
		refs = append(refs, Reference{Kind: KindRent, ID: r.ID, Label: label})
	}

	return refs, nil
}

func referencesProprietor(p *model.Property, id uint) bool {
	if p.OwnerID != nil && *p.OwnerID == id {
		return true
	}
	if p.TenantID != nil && *p.TenantID == id {
		return true
	}
	for _, owner := range p.OwnerIDList() {
		if owner == id {
			return true
		}
	}
	return false
}

// numericColumns are the lease columns the legacy importer must coerce.
var numericColumns = map[Kind][]string{
	KindRent: {
		"amount",
		"rent_out_monthly_rental", "rent_out_deposit_received", "rent_out_deposit_returned",
		"renting_monthly_rental", "renting_deposit_paid", "renting_deposit_returned",
	},
	KindProperty: {"lot_area"},
}

func sanitizeNumerics(kind Kind, record map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(record))
	for k, v := range record {
		out[k] = v
	}
	for _, col := range numericColumns[kind] {
		raw, ok := out[col]
		if !ok || raw == nil {
			continue
		}
		if f, ok := coerceFloat(raw); ok {
			out[col] = f
		} else {
			delete(out, col)
		}
	}
	return out
}

func coerceFloat(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func coerceUint(v interface{}) (uint, bool) {
	f, ok := coerceFloat(v)
	if !ok || f < 0 {
		return 0, false
	}
	return uint(f), true
}
