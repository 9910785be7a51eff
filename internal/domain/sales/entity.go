package sales

// DailySummary aggregates one day of sales for a restaurant
type DailySummary struct {
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Covers  int     `json:"covers"`
}

// AvgTicket returns the average invoice value, zero when there are no orders
func (s *DailySummary) AvgTicket() float64 {
	if s.Orders == 0 {
		return 0
	}
	return s.Revenue / float64(s.Orders)
}

// ItemSales is the per-item quantity/revenue aggregation used for top sellers
type ItemSales struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Revenue  float64 `json:"revenue"`
}
