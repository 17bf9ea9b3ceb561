package models

// Property is the listing document held in the primary store. The ID is
// assigned on create and reused verbatim as the primary key of the
// relational mirror row.
type Property struct {
	ID              string   `bson:"_id,omitempty" json:"id"`
	Title           string   `bson:"title" json:"title"`
	Content         string   `bson:"content" json:"content"`
	Images          []string `bson:"images" json:"images"`
	City            string   `bson:"city" json:"city"`
	Area            string   `bson:"area" json:"area"`
	Locality        string   `bson:"locality" json:"locality"`
	Floor           int      `bson:"floor" json:"floor"`
	PropertyType    string   `bson:"propertyType" json:"propertyType"`
	TransactionType string   `bson:"transactionType" json:"transactionType"`
	Option          string   `bson:"option" json:"option"`
	Price           int      `bson:"price" json:"price"`
	AreaSqft        int      `bson:"areaSqft" json:"areaSqft"`
	OwnerName       string   `bson:"ownerName" json:"ownerName"`
	ContactNumber   string   `bson:"contactNumber" json:"contactNumber"`
	FacingDirection string   `bson:"facingDirection" json:"facingDirection"`
	Status          string   `bson:"status" json:"status"`
	UserID          string   `bson:"userId" json:"userId"`
}

// MissingFields returns the names of required fields that are empty.
// Numeric fields count as missing when zero, matching the intake form's
// required-field contract. Enum-ish string fields are presence-checked
// only; any non-empty value is accepted.
func (p *Property) MissingFields() []string {
	var missing []string
	checks := []struct {
		name string
		ok   bool
	}{
		{"title", p.Title != ""},
		{"content", p.Content != ""},
		{"city", p.City != ""},
		{"area", p.Area != ""},
		{"locality", p.Locality != ""},
		{"floor", p.Floor != 0},
		{"propertyType", p.PropertyType != ""},
		{"transactionType", p.TransactionType != ""},
		{"option", p.Option != ""},
		{"price", p.Price != 0},
		{"areaSqft", p.AreaSqft != 0},
		{"ownerName", p.OwnerName != ""},
		{"contactNumber", p.ContactNumber != ""},
		{"facingDirection", p.FacingDirection != ""},
		{"status", p.Status != ""},
	}
	for _, c := range checks {
		if !c.ok {
			missing = append(missing, c.name)
		}
	}
	return missing
}
