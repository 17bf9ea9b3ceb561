package reconciler

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/gharbazaar/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fakeLister struct {
	properties []models.Property
	err        error
}

func (f *fakeLister) ListProperties(ctx context.Context) ([]models.Property, error) {
	return f.properties, f.err
}

var testDBID int

func openTestMirror(t *testing.T) *gorm.DB {
	t.Helper()
	testDBID++
	dsn := fmt.Sprintf("file:reconciler_test_%d?mode=memory&cache=shared", testDBID)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.PropertyRecord{}, &models.Shortlist{}))
	return db
}

func primaryProperty(id, status string) models.Property {
	return models.Property{
		ID:              id,
		Title:           "2 BHK near station",
		Content:         "Well ventilated flat",
		City:            "Pune",
		Area:            "Kothrud",
		Locality:        "Mayur Colony",
		Floor:           3,
		PropertyType:    "apartment",
		TransactionType: "freeHold",
		Option:          "sell",
		Price:           500000,
		AreaSqft:        900,
		OwnerName:       "Ravi Deshmukh",
		ContactNumber:   "9822012345",
		FacingDirection: "east",
		Status:          status,
		UserID:          "u1",
	}
}

func TestSweep_UpsertsMissingAndStaleRows(t *testing.T) {
	db := openTestMirror(t)

	// prop1 is stale in the mirror, prop2 is missing entirely.
	require.NoError(t, db.Create(&models.PropertyRecord{
		ID: "prop1", Title: "old title", Status: "underConstruction", UserID: "u1",
	}).Error)

	primary := &fakeLister{properties: []models.Property{
		primaryProperty("prop1", "readyToMove"),
		primaryProperty("prop2", "underConstruction"),
	}}

	r := New(primary, db, time.Minute)
	require.NoError(t, r.Sweep(context.Background()))

	var rec models.PropertyRecord
	require.NoError(t, db.First(&rec, "id = ?", "prop1").Error)
	assert.Equal(t, "2 BHK near station", rec.Title)
	assert.Equal(t, "readyToMove", rec.Status)

	rec = models.PropertyRecord{}
	require.NoError(t, db.First(&rec, "id = ?", "prop2").Error)
	assert.Equal(t, "underConstruction", rec.Status)
}

func TestSweep_RemovesOrphansAndTheirShortlists(t *testing.T) {
	db := openTestMirror(t)

	require.NoError(t, db.Create(&models.PropertyRecord{
		ID: "gone", Title: "deleted upstream", UserID: "u2",
	}).Error)
	require.NoError(t, db.Create(&models.Shortlist{
		UserID: "buyer1", PropertyID: "gone", IsShortlisted: true,
	}).Error)
	require.NoError(t, db.Create(&models.Shortlist{
		UserID: "buyer1", PropertyID: "prop1", IsShortlisted: true,
	}).Error)

	primary := &fakeLister{properties: []models.Property{
		primaryProperty("prop1", "readyToMove"),
	}}

	r := New(primary, db, time.Minute)
	require.NoError(t, r.Sweep(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.PropertyRecord{}).Where("id = ?", "gone").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, db.Model(&models.Shortlist{}).Where("property_id = ?", "gone").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The surviving property's shortlist is untouched.
	require.NoError(t, db.Model(&models.Shortlist{}).Where("property_id = ?", "prop1").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestSweep_EmptyPrimaryDrainsMirror(t *testing.T) {
	db := openTestMirror(t)

	require.NoError(t, db.Create(&models.PropertyRecord{ID: "prop1", UserID: "u1"}).Error)
	require.NoError(t, db.Create(&models.PropertyRecord{ID: "prop2", UserID: "u1"}).Error)

	r := New(&fakeLister{}, db, time.Minute)
	require.NoError(t, r.Sweep(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.PropertyRecord{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSweep_PrimaryErrorLeavesMirrorUntouched(t *testing.T) {
	db := openTestMirror(t)
	require.NoError(t, db.Create(&models.PropertyRecord{ID: "prop1", UserID: "u1"}).Error)

	r := New(&fakeLister{err: context.DeadlineExceeded}, db, time.Minute)
	assert.Error(t, r.Sweep(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.PropertyRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
