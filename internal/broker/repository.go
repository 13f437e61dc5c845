// internal/broker/repository.go
package broker

import (
	"gorm.io/gorm"
)

// Repository encapsulates database access for brokers.
type Repository struct {
	DB *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{DB: db}
}

// Create inserts a new broker.
func (r *Repository) Create(b *Broker) error {
	return r.DB.Create(b).Error
}

// FindByID returns one broker.
func (r *Repository) FindByID(id uint) (*Broker, error) {
	var b Broker
	if err := r.DB.First(&b, id).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// FindByEmail returns the broker with the given login email.
func (r *Repository) FindByEmail(email string) (*Broker, error) {
	var b Broker
	if err := r.DB.Where("email = ?", email).First(&b).Error; err != nil {
		return nil, err
	}
	return &b, nil
}

// List returns every broker.
func (r *Repository) List() ([]Broker, error) {
	var list []Broker
	err := r.DB.Order("last_name ASC, first_name ASC").Find(&list).Error
	return list, err
}

// Update saves all fields of an existing broker.
func (r *Repository) Update(b *Broker) error {
	return r.DB.Save(b).Error
}

// SetActive toggles eligibility for new commission splits.
func (r *Repository) SetActive(id uint, active bool) error {
	res := r.DB.Model(&Broker{}).Where("id = ?", id).Update("active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a broker (soft delete).
func (r *Repository) Delete(b *Broker) error {
	return r.DB.Delete(b).Error
}
