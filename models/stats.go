package models

type MonthlySales struct {
	Month       string  `json:"month"`
	TotalSales  float64 `json:"totalSales"`
	TotalOrders int     `json:"totalOrders"`
}

type AdminStats struct {
	TotalOrders       int            `json:"totalOrders"`
	TotalSales        float64        `json:"totalSales"`
	AverageOrderValue float64        `json:"averageOrderValue"`
	TrendingBooks     int64          `json:"trendingBooks"`
	TotalBooks        int64          `json:"totalBooks"`
	MonthlySales      []MonthlySales `json:"monthlySales"`
}
