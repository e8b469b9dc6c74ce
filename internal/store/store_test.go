package store

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"assetdesk_backend/internal/model"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	// unique name per test: shared cache keeps gorm's pool on one database
	// without leaking rows between tests
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.Property{},
		&model.PropertyImage{},
		&model.Proprietor{},
		&model.Rent{},
	))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func uptr(v uint) *uint { return &v }

func TestProprietorDeleteRefusedWhileReferenced(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	landlord := model.Proprietor{Name: "External Estates", Code: "A01", Type: model.ProprietorTypeCompany}
	require.NoError(t, db.Create(&landlord).Error)

	rent := model.Rent{
		Type:              model.RentDirectionIn,
		RentingContractNo: "RC-2024-001",
		RentingLandlordID: uptr(landlord.ID),
	}
	require.NoError(t, db.Create(&rent).Error)

	ok, refs, err := s.Delete(KindProprietor, landlord.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, refs, 1)
	assert.Equal(t, KindRent, refs[0].Kind)
	assert.Equal(t, rent.ID, refs[0].ID)
	assert.Equal(t, "RC-2024-001", refs[0].Label)

	// still there
	var count int64
	db.Model(&model.Proprietor{}).Count(&count)
	assert.EqualValues(t, 1, count)

	// unlink the lease, then the delete goes through
	require.NoError(t, db.Model(&model.Rent{}).Where("id = ?", rent.ID).
		Update("renting_landlord_id", nil).Error)

	ok, refs, err = s.Delete(KindProprietor, landlord.ID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, refs)
}

func TestProprietorDeleteSeesCoOwnershipList(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	coOwner := model.Proprietor{Name: "Second Owner", Code: "A02", Type: model.ProprietorTypeCompany}
	require.NoError(t, db.Create(&coOwner).Error)

	// referenced only through the co-ownership list, not the legacy column
	property := model.Property{
		Name:     "Warehouse 4",
		Code:     "PRP004",
		Type:     model.PropertyTypeCoInvestment,
		Status:   model.PropertyStatusHolding,
		OwnerID:  uptr(999),
		OwnerIDs: datatypes.JSON(fmt.Sprintf("[999, %d]", coOwner.ID)),
	}
	require.NoError(t, db.Create(&property).Error)

	ok, refs, err := s.Delete(KindProprietor, coOwner.ID)
	require.NoError(t, err)
	assert.False(t, ok)
	require.Len(t, refs, 1)
	assert.Equal(t, KindProperty, refs[0].Kind)
	assert.Equal(t, "Warehouse 4", refs[0].Label)
}

func TestRentDeleteUnlinksInsteadOfRemoving(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	rent := model.Rent{Type: model.RentDirectionOut, PropertyID: uptr(42)}
	require.NoError(t, db.Create(&rent).Error)

	ok, _, err := s.Delete(KindRent, rent.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	var got model.Rent
	require.NoError(t, db.First(&got, rent.ID).Error)
	assert.Nil(t, got.PropertyID)
}

func TestPropertyDeleteLeavesLeasesOrphaned(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	property := model.Property{
		Name:   "Shop 1",
		Code:   "PRP001",
		Type:   model.PropertyTypeGroupAsset,
		Status: model.PropertyStatusRenting,
	}
	require.NoError(t, db.Create(&property).Error)

	rent := model.Rent{Type: model.RentDirectionOut, PropertyID: uptr(property.ID)}
	require.NoError(t, db.Create(&rent).Error)

	ok, _, err := s.Delete(KindProperty, property.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	// the lease row survives, now pointing at a gone property
	var got model.Rent
	require.NoError(t, db.First(&got, rent.ID).Error)
	require.NotNil(t, got.PropertyID)
	assert.Equal(t, property.ID, *got.PropertyID)
}

func TestFetchAllStorageForm(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	require.NoError(t, db.Create(&model.Proprietor{
		Name: "Group Holdings", Code: "A01",
		Type: model.ProprietorTypeCompany, EnglishName: "Group Holdings Ltd",
	}).Error)

	rows, err := s.FetchAll(KindProprietor)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Contains(t, rows[0], "english_name")
	assert.Equal(t, "A01", rows[0]["code"])
}

func TestUpsertDropsMalformedNumerics(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	id, err := s.Upsert(KindRent, map[string]interface{}{
		"type":                    string(model.RentDirectionOut),
		"rent_out_monthly_rental": "not-a-number",
		"amount":                  "1000",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	var got model.Rent
	require.NoError(t, db.First(&got, id).Error)
	assert.Nil(t, got.RentOutMonthlyRental) // malformed value treated as absent
	require.NotNil(t, got.Amount)
	assert.Equal(t, 1000.0, *got.Amount)
}

func TestUpsertUpdatesById(t *testing.T) {
	db := newTestDB(t)
	s := New(db)

	property := model.Property{Name: "Old Name", Code: "PRP009",
		Type: model.PropertyTypeManagedAsset, Status: model.PropertyStatusHolding}
	require.NoError(t, db.Create(&property).Error)

	id, err := s.Upsert(KindProperty, map[string]interface{}{
		"id":   property.ID,
		"name": "New Name",
	})
	require.NoError(t, err)
	assert.Equal(t, property.ID, id)

	var got model.Property
	require.NoError(t, db.First(&got, property.ID).Error)
	assert.Equal(t, "New Name", got.Name)
}
