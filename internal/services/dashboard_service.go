package services

import (
	"context"
	"fmt"

	"invoicehub/internal/models"
	"invoicehub/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const recentTransactionLimit = 10

// DashboardStats is the derived dashboard view. It is recomputed from source
// rows on every call; nothing here is cached.
type DashboardStats struct {
	TotalIncome        decimal.Decimal      `json:"total_income"`
	DueAmount          decimal.Decimal      `json:"due_amount"`
	DueCount           int                  `json:"due_count"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

type DashboardService interface {
	Stats(ctx context.Context, companyID uuid.UUID) (*DashboardStats, error)
}

type dashboardService struct {
	paymentRepo repositories.PaymentRepository
}

func NewDashboardService(paymentRepo repositories.PaymentRepository) DashboardService {
	return &dashboardService{paymentRepo: paymentRepo}
}

// Stats aggregates income, due amounts, and recent activity for one company.
// Due amount counts only sent invoices whose remainder is positive; paid
// invoices never contribute, even when overpaid rows leave the remainder
// negative.
func (s *dashboardService) Stats(ctx context.Context, companyID uuid.UUID) (*DashboardStats, error) {
	income, err := s.paymentRepo.TotalIncome(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("total income: %w", err)
	}

	balances, err := s.paymentRepo.OutstandingByCompany(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("outstanding invoices: %w", err)
	}

	due := decimal.Zero
	dueCount := 0
	for _, balance := range balances {
		remainder := balance.Total.Sub(balance.Paid)
		if remainder.Sign() > 0 {
			due = due.Add(remainder)
			dueCount++
		}
	}

	transactions, err := s.paymentRepo.RecentTransactions(ctx, companyID, recentTransactionLimit)
	if err != nil {
		return nil, fmt.Errorf("recent transactions: %w", err)
	}

	return &DashboardStats{
		TotalIncome:        income,
		DueAmount:          due,
		DueCount:           dueCount,
		RecentTransactions: transactions,
	}, nil
}
