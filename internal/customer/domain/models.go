package domain

// Customer is a source record, immutable once loaded.
//
// RegistrationDate is carried as the raw stored text; the fact builder owns
// timestamp parsing so malformed values surface as a data format error
// instead of a driver scan failure.
type Customer struct {
	ID               int64  `json:"customer_id" gorm:"column:customer_id;primaryKey"`
	FirstName        string `json:"first_name" gorm:"type:text;not null"`
	LastName         string `json:"last_name" gorm:"type:text;not null"`
	RegistrationDate string `json:"registration_date" gorm:"type:text;not null"`
}

func (Customer) TableName() string { return "customers" }
