package models

import "time"

// PropertyRecord is the relational mirror row for a Property. Its primary
// key is the id generated by the primary store, so the two stores join on
// the same identifier. Image URLs stay in the document store only; the
// mirror carries the queryable listing fields, as the original relational
// schema did.
type PropertyRecord struct {
	ID              string `gorm:"primaryKey" json:"id"`
	Title           string `json:"title"`
	Content         string `json:"content"`
	City            string `json:"city"`
	Area            string `json:"area"`
	Locality        string `json:"locality"`
	Floor           int    `json:"floor"`
	PropertyType    string `json:"propertyType"`
	TransactionType string `json:"transactionType"`
	Option          string `json:"option"`
	Price           int    `json:"price"`
	AreaSqft        int    `json:"areaSqft"`
	OwnerName       string `json:"ownerName"`
	ContactNumber   string `json:"contactNumber"`
	FacingDirection string `json:"facingDirection"`
	Status          string `json:"status"`
	UserID          string `gorm:"index" json:"userId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (PropertyRecord) TableName() string { return "properties" }

// Shortlist is a user's saved reference to a property. It exists only in
// the relational store. The composite unique index rejects a second
// shortlist of the same property by the same user.
type Shortlist struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        string         `gorm:"uniqueIndex:idx_shortlist_user_property" json:"userId"`
	PropertyID    string         `gorm:"uniqueIndex:idx_shortlist_user_property" json:"propertyId"`
	IsShortlisted bool           `json:"isShortlisted"`
	Property      PropertyRecord `gorm:"foreignKey:PropertyID" json:"property"`
	CreatedAt     time.Time      `json:"createdAt"`
}

func (Shortlist) TableName() string { return "shortlists" }

// NewPropertyRecord maps a primary-store document onto its mirror row.
func NewPropertyRecord(p Property) PropertyRecord {
	return PropertyRecord{
		ID:              p.ID,
		Title:           p.Title,
		Content:         p.Content,
		City:            p.City,
		Area:            p.Area,
		Locality:        p.Locality,
		Floor:           p.Floor,
		PropertyType:    p.PropertyType,
		TransactionType: p.TransactionType,
		Option:          p.Option,
		Price:           p.Price,
		AreaSqft:        p.AreaSqft,
		OwnerName:       p.OwnerName,
		ContactNumber:   p.ContactNumber,
		FacingDirection: p.FacingDirection,
		Status:          p.Status,
		UserID:          p.UserID,
	}
}
