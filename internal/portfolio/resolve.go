package portfolio

import (
	"assetdesk_backend/internal/model"
)

// PropertyWithRelations is a property plus everything the back office shows
// next to it. Proprietor stays the conventional "primary" single owner for
// display compatibility; Proprietors carries the full co-ownership list.
type PropertyWithRelations struct {
	model.Property
	Proprietor  *model.Proprietor  `json:"proprietor"`
	Proprietors []model.Proprietor `json:"proprietors"`
	Tenant      *model.Proprietor  `json:"tenant"`
	Rents       []model.Rent       `json:"rents"`
}

// ResolveProperty joins one property to its proprietors, tenant and leases.
// A dangling reference resolves to nil / is skipped; rents keep the order of
// the source collection.
func ResolveProperty(p model.Property, proprietors []model.Proprietor, rents []model.Rent) PropertyWithRelations {
	byID := make(map[uint]model.Proprietor, len(proprietors))
	for _, pr := range proprietors {
		byID[pr.ID] = pr
	}

	out := PropertyWithRelations{Property: p}

	if p.OwnerID != nil {
		if pr, ok := byID[*p.OwnerID]; ok {
			out.Proprietor = &pr
		}
	}

	for _, id := range p.OwnerIDList() {
		if pr, ok := byID[id]; ok {
			out.Proprietors = append(out.Proprietors, pr)
		}
	}

	if p.TenantID != nil {
		if pr, ok := byID[*p.TenantID]; ok {
			out.Tenant = &pr
		}
	}

	for _, r := range rents {
		if r.PropertyID != nil && *r.PropertyID == p.ID {
			out.Rents = append(out.Rents, r)
		}
	}

	return out
}

// ResolveAll resolves every property in the slice, preserving order.
func ResolveAll(properties []model.Property, proprietors []model.Proprietor, rents []model.Rent) []PropertyWithRelations {
	out := make([]PropertyWithRelations, 0, len(properties))
	for _, p := range properties {
		out = append(out, ResolveProperty(p, proprietors, rents))
	}
	return out
}
