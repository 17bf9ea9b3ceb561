package controllers

import (
	"github.com/gharbazaar/backend/config"
	"github.com/gharbazaar/backend/models"
	"gorm.io/gorm/clause"
)

// mirrorUpsert writes the relational copy of a property, keyed by the
// primary-store id. Upserting means a row left stale by an earlier
// divergence is overwritten instead of duplicated.
func mirrorUpsert(p models.Property) error {
	rec := models.NewPropertyRecord(p)
	return config.MirrorDB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&rec).Error
}

// mirrorDelete removes a property's mirror row and any shortlists that
// reference it.
func mirrorDelete(id string) error {
	if err := config.MirrorDB.Where("property_id = ?", id).Delete(&models.Shortlist{}).Error; err != nil {
		return err
	}
	return config.MirrorDB.Where("id = ?", id).Delete(&models.PropertyRecord{}).Error
}
