package services

import (
	"fmt"
	"sort"
	"time"

	"freshcart/internal/models"

	"github.com/shopspring/decimal"
)

// RecentOrdersLimit is the number of orders shown on the dashboard.
const RecentOrdersLimit = 10

// salesWindowStart is the first instant of the month five months before now.
func salesWindowStart(now time.Time) time.Time {
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return first.AddDate(0, -5, 0)
}

// SalesByMonth buckets paid orders created since the window start into
// calendar months, oldest first. Months without paid orders are absent.
func SalesByMonth(paid []models.Order, now time.Time) []models.MonthlySales {
	start := salesWindowStart(now)
	type key struct {
		year  int
		month time.Month
	}
	totals := make(map[key]decimal.Decimal)
	for _, o := range paid {
		if !o.IsPaid || o.CreatedAt.Before(start) {
			continue
		}
		created := o.CreatedAt.In(now.Location())
		k := key{created.Year(), created.Month()}
		totals[k] = totals[k].Add(decimal.NewFromFloat(o.TotalPrice))
	}

	sales := make([]models.MonthlySales, 0, len(totals))
	for k, total := range totals {
		sales = append(sales, models.MonthlySales{
			Month: fmt.Sprintf("%s %d", k.month, k.year),
			Year:  k.year,
			Index: int(k.month),
			Total: total.Round(2).InexactFloat64(),
		})
	}
	sort.Slice(sales, func(i, j int) bool {
		if sales[i].Year != sales[j].Year {
			return sales[i].Year < sales[j].Year
		}
		return sales[i].Index < sales[j].Index
	})
	return sales
}

// TotalSales sums totalPrice over paid orders.
func TotalSales(orders []models.Order) float64 {
	total := decimal.Zero
	for _, o := range orders {
		if o.IsPaid {
			total = total.Add(decimal.NewFromFloat(o.TotalPrice))
		}
	}
	return total.Round(2).InexactFloat64()
}
