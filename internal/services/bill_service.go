package services

import (
	"errors"
	"fmt"
	"math"
	"pos_system/internal/models"
	"pos_system/internal/repository"

	"gorm.io/gorm"
)

// BillLine is one line of a bill submission: a product reference, a
// quantity, and the unit price snapshotted by the cart at add time.
type BillLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

// CreateBillInput is the submission payload for a new bill. Total is part
// of the wire format for compatibility but the service recomputes it from
// the lines; the client value is never trusted.
type CreateBillInput struct {
	TableNumber string     `json:"table_number"`
	Total       float64    `json:"total"`
	Items       []BillLine `json:"items"`
}

type BillService interface {
	CreateBill(input CreateBillInput) (*models.Bill, error)
	GetAllBills() ([]models.Bill, error)
	GetBillSummary() ([]models.Bill, error)
	CompleteBill(id uint) (*models.Bill, error)
}

type billService struct {
	billRepo repository.BillRepository
}

func NewBillService(billRepo repository.BillRepository) BillService {
	return &billService{billRepo: billRepo}
}

// CreateBill validates the payload, recomputes the total from the lines,
// and persists the bill together with all of its items in one transaction.
// The returned bill carries the full Items.Product graph.
func (s *billService) CreateBill(input CreateBillInput) (*models.Bill, error) {
	if input.TableNumber == "" {
		return nil, fmt.Errorf("%w: table_number is required", ErrValidation)
	}
	if len(input.Items) == 0 {
		return nil, fmt.Errorf("%w: items must not be empty", ErrValidation)
	}
	for _, line := range input.Items {
		if line.ProductID == 0 {
			return nil, fmt.Errorf("%w: item product_id is required", ErrValidation)
		}
		if line.Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be positive", ErrValidation)
		}
		if line.Price < 0 {
			return nil, fmt.Errorf("%w: item price must not be negative", ErrValidation)
		}
	}

	total := 0.0
	items := make([]models.BillItem, 0, len(input.Items))
	for _, line := range input.Items {
		total += line.Price * float64(line.Quantity)
		items = append(items, models.BillItem{
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
	}

	bill := &models.Bill{
		TableNumber: input.TableNumber,
		Total:       roundMoney(total),
		Status:      string(models.BillOpen),
	}

	if err := s.billRepo.CreateWithItems(bill, items); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown product in items", ErrValidation)
		}
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}
	return bill, nil
}

func (s *billService) GetAllBills() ([]models.Bill, error) {
	return s.billRepo.GetAll()
}

// GetBillSummary returns the open bills ordered by table, each with its
// items and products attached, for the per-table outstanding view.
func (s *billService) GetBillSummary() ([]models.Bill, error) {
	return s.billRepo.GetByStatus(string(models.BillOpen))
}

// CompleteBill transitions an open bill to completed. The transition is
// one-way; completing an already-completed bill is a no-op success.
func (s *billService) CompleteBill(id uint) (*models.Bill, error) {
	bill, err := s.billRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: bill %d", ErrNotFound, id)
		}
		return nil, err
	}
	if bill.Status == string(models.BillCompleted) {
		return bill, nil
	}
	if err := s.billRepo.UpdateStatus(bill.ID, string(models.BillCompleted)); err != nil {
		return nil, fmt.Errorf("failed to complete bill: %w", err)
	}
	bill.Status = string(models.BillCompleted)
	return bill, nil
}

func roundMoney(v float64) float64 {
	return math.Round(v*100) / 100
}
