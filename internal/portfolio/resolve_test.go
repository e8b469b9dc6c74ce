package portfolio

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"assetdesk_backend/internal/model"
)

func makeProprietor(id uint, code, name string) model.Proprietor {
	return model.Proprietor{
		Model: gorm.Model{ID: id},
		Name:  name,
		Code:  code,
	}
}

func TestResolvePropertyScenario(t *testing.T) {
	// P1 owned by A01, rented to T01, one open-ended rent_out lease
	owner := makeProprietor(1, "A01", "Group Holdings")
	tenant := makeProprietor(2, "T01", "Corner Cafe")

	p1 := model.Property{
		Model:    gorm.Model{ID: 10},
		Name:     "P1",
		Code:     "PRP001",
		Status:   model.PropertyStatusRenting,
		OwnerID:  uptr(1),
		TenantID: uptr(2),
	}

	rent := model.Rent{
		Model:                gorm.Model{ID: 100},
		PropertyID:           uptr(10),
		Type:                 model.RentDirectionOut,
		RentOutMonthlyRental: f64(50000),
		RentOutPeriods:       iptr(12),
		RentOutTenantID:      uptr(2),
		RentOutStatus:        model.LeaseStatusActive,
	}

	got := ResolveProperty(p1, []model.Proprietor{owner, tenant}, []model.Rent{rent})

	require.NotNil(t, got.Proprietor)
	assert.Equal(t, "A01", got.Proprietor.Code)
	require.NotNil(t, got.Tenant)
	assert.Equal(t, "T01", got.Tenant.Code)
	require.Len(t, got.Rents, 1)

	view := ComputeLeaseView(&got.Rents[0])
	assert.Equal(t, 50000.0, view.EffectiveAmount)
	assert.Equal(t, 600000.0, view.TotalAmount)
	assert.False(t, view.IsExpired)
}

func TestResolvePropertyDanglingReferences(t *testing.T) {
	p := model.Property{
		Model:    gorm.Model{ID: 1},
		OwnerID:  uptr(99),
		TenantID: uptr(98),
	}

	got := ResolveProperty(p, nil, nil)

	assert.Nil(t, got.Proprietor)
	assert.Nil(t, got.Tenant)
	assert.Empty(t, got.Rents)
}

func TestResolvePropertyMultiOwner(t *testing.T) {
	a := makeProprietor(1, "A01", "First")
	b := makeProprietor(2, "A02", "Second")

	p := model.Property{
		Model:    gorm.Model{ID: 1},
		OwnerID:  uptr(1),
		OwnerIDs: datatypes.JSON([]byte(`[1,2,77]`)), // 77 dangles
	}

	got := ResolveProperty(p, []model.Proprietor{a, b}, nil)

	require.NotNil(t, got.Proprietor)
	assert.Equal(t, "A01", got.Proprietor.Code)
	require.Len(t, got.Proprietors, 2)
	assert.Equal(t, "A01", got.Proprietors[0].Code)
	assert.Equal(t, "A02", got.Proprietors[1].Code)
}

func TestResolvePropertyRentOrderPreserved(t *testing.T) {
	p := model.Property{Model: gorm.Model{ID: 1}}
	rents := []model.Rent{
		{Model: gorm.Model{ID: 3}, PropertyID: uptr(1)},
		{Model: gorm.Model{ID: 1}, PropertyID: uptr(1)},
		{Model: gorm.Model{ID: 2}, PropertyID: uptr(2)}, // other property
		{Model: gorm.Model{ID: 4}},                      // orphaned
	}

	got := ResolveProperty(p, nil, rents)

	require.Len(t, got.Rents, 2)
	assert.Equal(t, uint(3), got.Rents[0].ID)
	assert.Equal(t, uint(1), got.Rents[1].ID)
}

func TestResolveIsDeterministic(t *testing.T) {
	owner := makeProprietor(1, "A01", "Owner")
	p := model.Property{
		Model:   gorm.Model{ID: 5, CreatedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)},
		OwnerID: uptr(1),
	}
	rents := []model.Rent{{Model: gorm.Model{ID: 1}, PropertyID: uptr(5)}}

	first := ResolveProperty(p, []model.Proprietor{owner}, rents)
	second := ResolveProperty(p, []model.Proprietor{owner}, rents)

	assert.Equal(t, first, second)
}

func TestResolveAll(t *testing.T) {
	props := []model.Property{
		{Model: gorm.Model{ID: 1}},
		{Model: gorm.Model{ID: 2}},
	}
	rents := []model.Rent{{Model: gorm.Model{ID: 9}, PropertyID: uptr(2)}}

	got := ResolveAll(props, nil, rents)

	require.Len(t, got, 2)
	assert.Empty(t, got[0].Rents)
	require.Len(t, got[1].Rents, 1)
}
