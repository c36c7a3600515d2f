package services

import (
	"context"
	"sort"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"bookstore/apperror"
	"bookstore/models"
)

type StatsService struct {
	books  BookStore
	orders OrderStore
}

func NewStatsService(books BookStore, orders OrderStore) *StatsService {
	return &StatsService{books: books, orders: orders}
}

// Admin builds the dashboard report. Money is summed in decimal and
// rounded to cents.
func (s *StatsService) Admin(ctx context.Context) (*models.AdminStats, error) {
	totals, err := s.orders.Totals(ctx)
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch admin stats", err)
	}
	totalBooks, err := s.books.Count(ctx, false)
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch admin stats", err)
	}
	trending, err := s.books.Count(ctx, true)
	if err != nil {
		return nil, apperror.NewInternal("Failed to fetch admin stats", err)
	}

	sum := decimal.Zero
	prices := make(stats.Float64Data, 0, len(totals))
	type bucket struct {
		sales decimal.Decimal
		count int
	}
	months := map[string]*bucket{}
	for _, t := range totals {
		price := decimal.NewFromFloat(t.TotalPrice)
		sum = sum.Add(price)
		prices = append(prices, t.TotalPrice)

		key := t.CreatedAt.UTC().Format("2006-01")
		b, ok := months[key]
		if !ok {
			b = &bucket{}
			months[key] = b
		}
		b.sales = b.sales.Add(price)
		b.count++
	}

	var avg float64
	if len(prices) > 0 {
		mean, err := prices.Mean()
		if err != nil {
			return nil, apperror.NewInternal("Failed to fetch admin stats", err)
		}
		avg, _ = decimal.NewFromFloat(mean).Round(2).Float64()
	}

	monthly := make([]models.MonthlySales, 0, len(months))
	for key, b := range months {
		sales, _ := b.sales.Round(2).Float64()
		monthly = append(monthly, models.MonthlySales{Month: key, TotalSales: sales, TotalOrders: b.count})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	totalSales, _ := sum.Round(2).Float64()
	return &models.AdminStats{
		TotalOrders:       len(totals),
		TotalSales:        totalSales,
		AverageOrderValue: avg,
		TrendingBooks:     trending,
		TotalBooks:        totalBooks,
		MonthlySales:      monthly,
	}, nil
}
