package services

import (
	"crm/internal/repositories"
)

// ReportService produces the scalar aggregates exposed by the query
// layer: totalCustomers, totalOrders, totalRevenue.
type ReportService struct {
	customerRepo repositories.CustomerRepository
	orderRepo    repositories.OrderRepository
}

// NewReportService creates a new ReportService.
func NewReportService(customerRepo repositories.CustomerRepository, orderRepo repositories.OrderRepository) *ReportService {
	return &ReportService{
		customerRepo: customerRepo,
		orderRepo:    orderRepo,
	}
}

// TotalCustomers returns the total customer count.
func (s *ReportService) TotalCustomers() (int64, error) {
	return s.customerRepo.Count()
}

// TotalOrders returns the total order count.
func (s *ReportService) TotalOrders() (int64, error) {
	return s.orderRepo.Count()
}

// TotalRevenue returns the sum of all orders' total_amount, 0 when no
// orders exist.
func (s *ReportService) TotalRevenue() (float64, error) {
	return s.orderRepo.TotalRevenue()
}
