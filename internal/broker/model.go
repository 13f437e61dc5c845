package broker

import (
	"gorm.io/gorm"

	"github.com/ovis-crm/api-brokerage/internal/deal"
)

// Broker is a person eligible to receive commission. The active flag gates
// eligibility for new commission splits only; existing splits are untouched
// when a broker is deactivated.
type Broker struct {
	gorm.Model
	FirstName string      `gorm:"size:100;not null" json:"firstName"`
	LastName  string      `gorm:"size:100;not null" json:"lastName"`
	Email     string      `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Phone     string      `gorm:"size:50" json:"phone"`
	Password  string      `json:"-"`
	Active    bool        `gorm:"not null;default:true;index" json:"active"`
	IsAdmin   bool        `gorm:"not null;default:false" json:"isAdmin"`
	Deals     []deal.Deal `gorm:"foreignKey:BrokerID" json:"deals,omitempty"`
}

// Migrate creates the table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&Broker{})
}
