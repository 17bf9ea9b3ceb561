package controllers

import (
	"testing"

	"github.com/gharbazaar/backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testProperty(id string) models.Property {
	return models.Property{
		ID:              id,
		Title:           "2 BHK near station",
		Content:         "Well ventilated flat",
		Images:          []string{"http://storage/u1/front.jpg"},
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
		Status:          "readyToMove",
		UserID:          "u1",
	}
}

func TestMirrorUpsert_CreateThenUpdate(t *testing.T) {
	db := openTestMirror(t)

	p := testProperty("prop1")
	require.NoError(t, mirrorUpsert(p))

	var rec models.PropertyRecord
	require.NoError(t, db.First(&rec, "id = ?", "prop1").Error)
	assert.Equal(t, "prop1", rec.ID)
	assert.Equal(t, 500000, rec.Price)
	assert.Equal(t, "readyToMove", rec.Status)

	// Full-record replace with a single changed field.
	p.Status = "underConstruction"
	require.NoError(t, mirrorUpsert(p))

	require.NoError(t, db.First(&rec, "id = ?", "prop1").Error)
	assert.Equal(t, "underConstruction", rec.Status)
	assert.Equal(t, "2 BHK near station", rec.Title)
	assert.Equal(t, 500000, rec.Price)

	var count int64
	require.NoError(t, db.Model(&models.PropertyRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestMirrorDelete_RemovesRowAndShortlists(t *testing.T) {
	db := openTestMirror(t)

	require.NoError(t, mirrorUpsert(testProperty("prop1")))
	require.NoError(t, mirrorUpsert(testProperty("prop2")))
	require.NoError(t, db.Create(&models.Shortlist{
		UserID: "buyer1", PropertyID: "prop1", IsShortlisted: true,
	}).Error)

	require.NoError(t, mirrorDelete("prop1"))

	var count int64
	require.NoError(t, db.Model(&models.PropertyRecord{}).Where("id = ?", "prop1").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	require.NoError(t, db.Model(&models.Shortlist{}).Where("property_id = ?", "prop1").Count(&count).Error)
	assert.Equal(t, int64(0), count)

	// The other property is untouched.
	require.NoError(t, db.Model(&models.PropertyRecord{}).Where("id = ?", "prop2").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
