package model

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Proprietor{}))
	return db
}

func TestNextProprietorCode(t *testing.T) {
	db := newTestDB(t)

	code, err := NextProprietorCode(db, CodePrefixOwner)
	require.NoError(t, err)
	assert.Equal(t, "A01", code)

	require.NoError(t, db.Create(&Proprietor{Name: "First", Code: code, Type: ProprietorTypeCompany}).Error)

	code, err = NextProprietorCode(db, CodePrefixOwner)
	require.NoError(t, err)
	assert.Equal(t, "A02", code)

	// prefixes count independently
	code, err = NextProprietorCode(db, CodePrefixTenant)
	require.NoError(t, err)
	assert.Equal(t, "T01", code)
}

func TestOwnershipConsistent(t *testing.T) {
	one := uint(1)
	two := uint(2)

	cases := []struct {
		name string
		p    Property
		want bool
	}{
		{"no list", Property{OwnerID: &one}, true},
		{"agreeing", Property{OwnerID: &one, OwnerIDs: datatypes.JSON(`[1,2]`)}, true},
		{"disagreeing head", Property{OwnerID: &two, OwnerIDs: datatypes.JSON(`[1,2]`)}, false},
		{"list without legacy ref", Property{OwnerIDs: datatypes.JSON(`[1]`)}, false},
		{"malformed list ignored", Property{OwnerID: &one, OwnerIDs: datatypes.JSON(`{oops`)}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.p.OwnershipConsistent())
		})
	}
}

func TestProprietorRoles(t *testing.T) {
	tenant := Proprietor{Code: "T07", Category: CategoryExternalCustomer}
	assert.True(t, tenant.IsTenant())
	assert.True(t, tenant.RoleConsistent())

	owner := Proprietor{Code: "A01", Category: CategoryGroupCompany}
	assert.False(t, owner.IsTenant())
	assert.True(t, owner.RoleConsistent())

	// T-coded entry filed under an owner category is flagged
	odd := Proprietor{Code: "T02", Category: CategoryGroupCompany}
	assert.False(t, odd.RoleConsistent())
}
