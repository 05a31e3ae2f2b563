package service

import (
	"github.com/shopspring/decimal"

	"go-pos-inventory/internal/model"
	"go-pos-inventory/internal/repository"
)

type DashboardStats struct {
	TotalProducts   int             `json:"totalProducts"`
	TotalVariants   int             `json:"totalVariants"`
	LowStockRows    int             `json:"lowStockRows"`
	OutOfStockRows  int             `json:"outOfStockRows"`
	StockValue      decimal.Decimal `json:"stockValue"`
	TotalWarehouses int             `json:"totalWarehouses"`
	TotalCustomers  int             `json:"totalCustomers"`
	TotalOrders     int             `json:"totalOrders"`
	Revenue         decimal.Decimal `json:"revenue"`
	OrdersToday     int             `json:"ordersToday"`
	RevenueToday    decimal.Decimal `json:"revenueToday"`
	PendingTransfer int             `json:"pendingTransfers"`
	UnreadAlerts    int             `json:"unreadNotifications"`
}

type DashboardService interface {
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	repos     *repository.Repositories
	threshold int
}

func NewDashboardService(repos *repository.Repositories, lowStockThreshold int) DashboardService {
	return &dashboardService{repos: repos, threshold: lowStockThreshold}
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{StockValue: decimal.Zero, Revenue: decimal.Zero, RevenueToday: decimal.Zero}

	products, err := s.repos.Products.FindAll()
	if err != nil {
		return nil, err
	}
	stats.TotalProducts = len(products)
	for _, p := range products {
		// Valuation and low stock are per inventory row.
		if !p.HasVariants() {
			s.countRow(stats, p.Stock)
			stats.StockValue = stats.StockValue.Add(p.Price.Mul(decimal.NewFromInt(int64(p.Stock))))
			continue
		}
		stats.TotalVariants += len(p.Variants)
		for _, v := range p.Variants {
			s.countRow(stats, v.Stock)
			price := v.Price
			if !price.IsPositive() {
				price = p.Price
			}
			stats.StockValue = stats.StockValue.Add(price.Mul(decimal.NewFromInt(int64(v.Stock))))
		}
	}

	warehouses, err := s.repos.Warehouses.FindAll()
	if err != nil {
		return nil, err
	}
	stats.TotalWarehouses = len(warehouses)

	customers, err := s.repos.Customers.FindAll()
	if err != nil {
		return nil, err
	}
	stats.TotalCustomers = len(customers)

	orders, err := s.repos.Orders.FindAll()
	if err != nil {
		return nil, err
	}
	today := now()
	y, m, d := today.Date()
	for _, o := range orders {
		stats.TotalOrders++
		stats.Revenue = stats.Revenue.Add(o.Amount)
		oy, om, od := o.CreatedAt.In(today.Location()).Date()
		if oy == y && om == m && od == d {
			stats.OrdersToday++
			stats.RevenueToday = stats.RevenueToday.Add(o.Amount)
		}
	}

	transfers, err := s.repos.Transfers.FindAll()
	if err != nil {
		return nil, err
	}
	for _, t := range transfers {
		if t.Status == model.TransferPending {
			stats.PendingTransfer++
		}
	}

	notifications, err := s.repos.Notifications.FindAll()
	if err != nil {
		return nil, err
	}
	for _, n := range notifications {
		if !n.Read {
			stats.UnreadAlerts++
		}
	}
	return stats, nil
}

func (s *dashboardService) countRow(stats *DashboardStats, stock int) {
	if stock <= 0 {
		stats.OutOfStockRows++
		return
	}
	if stock < s.threshold {
		stats.LowStockRows++
	}
}
