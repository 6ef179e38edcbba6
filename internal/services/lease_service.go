package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/hivenest/hivenest-backend/internal/models"
)

type LeaseService struct {
	db *gorm.DB
}

func NewLeaseService(db *gorm.DB) *LeaseService {
	return &LeaseService{db: db}
}

// Payment is a derived schedule entry. There is no payment ledger; the
// schedule is recomputed from the lease term on every read.
type Payment struct {
	Amount        float64   `json:"amount"`
	DueDate       time.Time `json:"dueDate"`
	PaymentStatus string    `json:"paymentStatus"`
}

const (
	PaymentStatusPaid    = "Paid"
	PaymentStatusPending = "Pending"
)

func (s *LeaseService) ListLeases() ([]models.Lease, error) {
	var leases []models.Lease
	if err := s.db.Preload("Tenant").Preload("Property").
		Order("id").Find(&leases).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch leases: %w", err)
	}
	return leases, nil
}

// GetLeasePayments derives the monthly payment schedule for a lease:
// one rent payment per month anchored on the start date, through the
// end of the term. Anchors before today count as paid.
func (s *LeaseService) GetLeasePayments(leaseID int, today time.Time) ([]Payment, error) {
	var lease models.Lease
	if err := s.db.First(&lease, leaseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("lease %d: %w", leaseID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	payments := []Payment{}
	for due := lease.StartDate; !due.After(lease.EndDate); due = due.AddDate(0, 1, 0) {
		status := PaymentStatusPending
		if due.Before(today) {
			status = PaymentStatusPaid
		}
		payments = append(payments, Payment{
			Amount:        lease.Rent,
			DueDate:       due,
			PaymentStatus: status,
		})
	}
	return payments, nil
}
