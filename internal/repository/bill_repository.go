package repository

import (
	"pos_system/internal/models"

	"gorm.io/gorm"
)

type BillRepository interface {
	CreateWithItems(bill *models.Bill, items []models.BillItem) error
	GetByID(id uint) (*models.Bill, error)
	GetAll() ([]models.Bill, error)
	GetByStatus(status string) ([]models.Bill, error)
	UpdateStatus(id uint, status string) error
}

type billRepository struct {
	db *gorm.DB
}

func NewBillRepository(db *gorm.DB) BillRepository {
	return &billRepository{db: db}
}

// CreateWithItems persists the bill and all of its items as one unit. Each
// item's product is verified inside the transaction, so a bad reference in
// any line rolls back the bill row as well.
func (r *billRepository) CreateWithItems(bill *models.Bill, items []models.BillItem) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(bill).Error; err != nil {
			return err
		}
		for i := range items {
			var product models.Product
			if err := tx.First(&product, items[i].ProductID).Error; err != nil {
				return err
			}
			items[i].BillID = bill.ID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	// Reload with the full Items.Product graph for the response
	return r.db.Preload("Items.Product").First(bill, bill.ID).Error
}

func (r *billRepository) GetByID(id uint) (*models.Bill, error) {
	var bill models.Bill
	err := r.db.Preload("Items.Product").First(&bill, id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

func (r *billRepository) GetAll() ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.Preload("Items.Product").Order("id").Find(&bills).Error
	return bills, err
}

func (r *billRepository) GetByStatus(status string) ([]models.Bill, error) {
	var bills []models.Bill
	err := r.db.Preload("Items.Product").Where("status = ?", status).Order("table_number").Find(&bills).Error
	return bills, err
}

func (r *billRepository) UpdateStatus(id uint, status string) error {
	return r.db.Model(&models.Bill{}).Where("id = ?", id).Update("status", status).Error
}
