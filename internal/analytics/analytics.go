// =============================================================================
// Sales Analytics - Aggregation Module
// =============================================================================
//
// Pure functions over a validated record set. Every function is
// independently callable and idempotent; aggregates are reduced into
// ordered slices with percentage/average fields computed in a second pass,
// after the totals are known. Nothing here mutates its input.
//
// =============================================================================

package analytics

import (
	"math"
	"sort"
	"time"

	"github.com/salesworks/sales-analytics/internal/types"
)

// =============================================================================
// AGGREGATE STRUCTURES
// =============================================================================

// RegionStat is the per-region summary.
type RegionStat struct {
	Region     string
	TotalSales float64
	Count      int
	// Percentage of grand total revenue. Defined as 0 when the grand total
	// is 0.
	Percentage float64
}

// ProductStat is the per-product summary, grouped by product name.
type ProductStat struct {
	Name     string
	Quantity int
	Revenue  float64
}

// CustomerStat is the per-customer summary.
type CustomerStat struct {
	CustomerID    string
	TotalSpent    float64
	PurchaseCount int
	AvgOrderValue float64
	// Products is the sorted set of distinct product names purchased.
	Products []string
}

// DailyStat is the per-day summary.
type DailyStat struct {
	Date            string
	Revenue         float64
	Count           int
	UniqueCustomers int
}

// PeakDay is the single day with maximum revenue.
type PeakDay struct {
	Date    string
	Revenue float64
	Count   int
}

// =============================================================================
// REVENUE
// =============================================================================

// TotalRevenue sums Quantity*UnitPrice over all records, rounded to two
// decimal places.
func TotalRevenue(transactions []types.Transaction) float64 {
	total := 0.0
	for _, tx := range transactions {
		total += tx.Amount()
	}
	return round2(total)
}

// RegionSummary aggregates sales per region, sorted descending by total
// sales. Percentages are computed against the grand total; a grand total of
// 0 yields 0 percentages rather than a division by zero.
func RegionSummary(transactions []types.Transaction) []RegionStat {
	totals := map[string]*RegionStat{}
	var order []string

	for _, tx := range transactions {
		stat, ok := totals[tx.Region]
		if !ok {
			stat = &RegionStat{Region: tx.Region}
			totals[tx.Region] = stat
			order = append(order, tx.Region)
		}
		stat.TotalSales += tx.Amount()
		stat.Count++
	}

	grandTotal := 0.0
	for _, region := range order {
		grandTotal += totals[region].TotalSales
	}

	stats := make([]RegionStat, 0, len(order))
	for _, region := range order {
		stat := *totals[region]
		stat.TotalSales = round2(stat.TotalSales)
		if grandTotal > 0 {
			stat.Percentage = round2(stat.TotalSales / grandTotal * 100)
		}
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSales > stats[j].TotalSales
	})
	return stats
}

// =============================================================================
// PRODUCTS
// =============================================================================

// productTotals reduces by product name, preserving first-encounter order.
func productTotals(transactions []types.Transaction) []ProductStat {
	totals := map[string]*ProductStat{}
	var order []string

	for _, tx := range transactions {
		stat, ok := totals[tx.ProductName]
		if !ok {
			stat = &ProductStat{Name: tx.ProductName}
			totals[tx.ProductName] = stat
			order = append(order, tx.ProductName)
		}
		stat.Quantity += tx.Quantity
		stat.Revenue += tx.Amount()
	}

	stats := make([]ProductStat, 0, len(order))
	for _, name := range order {
		stat := *totals[name]
		stat.Revenue = round2(stat.Revenue)
		stats = append(stats, stat)
	}
	return stats
}

// TopProducts returns the n best-selling products by quantity, descending.
// The sort is stable: quantity ties keep first-encounter order.
func TopProducts(transactions []types.Transaction, n int) []ProductStat {
	stats := productTotals(transactions)
	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].Quantity > stats[j].Quantity
	})
	if len(stats) > n {
		stats = stats[:n]
	}
	return stats
}

// LowPerformers returns products whose total quantity is strictly below
// threshold, sorted ascending by quantity.
func LowPerformers(transactions []types.Transaction, threshold int) []ProductStat {
	var low []ProductStat
	for _, stat := range productTotals(transactions) {
		if stat.Quantity < threshold {
			low = append(low, stat)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Quantity < low[j].Quantity
	})
	return low
}

// =============================================================================
// CUSTOMERS
// =============================================================================

// CustomerSummary aggregates spending per customer, sorted descending by
// total spent.
func CustomerSummary(transactions []types.Transaction) []CustomerStat {
	type bucket struct {
		stat     CustomerStat
		products map[string]bool
	}
	totals := map[string]*bucket{}
	var order []string

	for _, tx := range transactions {
		b, ok := totals[tx.CustomerID]
		if !ok {
			b = &bucket{
				stat:     CustomerStat{CustomerID: tx.CustomerID},
				products: make(map[string]bool),
			}
			totals[tx.CustomerID] = b
			order = append(order, tx.CustomerID)
		}
		b.stat.TotalSpent += tx.Amount()
		b.stat.PurchaseCount++
		b.products[tx.ProductName] = true
	}

	stats := make([]CustomerStat, 0, len(order))
	for _, id := range order {
		b := totals[id]
		stat := b.stat
		stat.TotalSpent = round2(stat.TotalSpent)
		stat.AvgOrderValue = round2(stat.TotalSpent / float64(stat.PurchaseCount))
		for name := range b.products {
			stat.Products = append(stat.Products, name)
		}
		sort.Strings(stat.Products)
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return stats[i].TotalSpent > stats[j].TotalSpent
	})
	return stats
}

// =============================================================================
// DATES
// =============================================================================

// DailyTrend aggregates revenue per date, sorted ascending by calendar
// date. Dates that fail to parse sort after valid ones, lexically.
func DailyTrend(transactions []types.Transaction) []DailyStat {
	type bucket struct {
		stat      DailyStat
		customers map[string]bool
	}
	totals := map[string]*bucket{}
	var order []string

	for _, tx := range transactions {
		b, ok := totals[tx.Date]
		if !ok {
			b = &bucket{
				stat:      DailyStat{Date: tx.Date},
				customers: make(map[string]bool),
			}
			totals[tx.Date] = b
			order = append(order, tx.Date)
		}
		b.stat.Revenue += tx.Amount()
		b.stat.Count++
		b.customers[tx.CustomerID] = true
	}

	stats := make([]DailyStat, 0, len(order))
	for _, date := range order {
		b := totals[date]
		stat := b.stat
		stat.Revenue = round2(stat.Revenue)
		stat.UniqueCustomers = len(b.customers)
		stats = append(stats, stat)
	}

	sort.SliceStable(stats, func(i, j int) bool {
		return dateLess(stats[i].Date, stats[j].Date)
	})
	return stats
}

// FindPeakDay returns the date with maximum revenue from the daily trend.
// Ties are broken by first occurrence in sorted-date order. ok is false for
// an empty record set.
func FindPeakDay(transactions []types.Transaction) (PeakDay, bool) {
	trend := DailyTrend(transactions)
	if len(trend) == 0 {
		return PeakDay{}, false
	}

	peak := trend[0]
	for _, day := range trend[1:] {
		if day.Revenue > peak.Revenue {
			peak = day
		}
	}

	return PeakDay{Date: peak.Date, Revenue: peak.Revenue, Count: peak.Count}, true
}

// DateRange returns the minimum and maximum date strings by calendar order,
// and false when the set is empty.
func DateRange(transactions []types.Transaction) (first, last string, ok bool) {
	if len(transactions) == 0 {
		return "", "", false
	}
	first, last = transactions[0].Date, transactions[0].Date
	for _, tx := range transactions[1:] {
		if dateLess(tx.Date, first) {
			first = tx.Date
		}
		if dateLess(last, tx.Date) {
			last = tx.Date
		}
	}
	return first, last, true
}

// dateLess compares two "YYYY-MM-DD" strings as calendar dates. For this
// format lexical and calendar order coincide, but parsing keeps the
// comparison honest if the format ever loosens.
func dateLess(a, b string) bool {
	ta, errA := time.Parse("2006-01-02", a)
	tb, errB := time.Parse("2006-01-02", b)
	if errA != nil || errB != nil {
		return a < b
	}
	return ta.Before(tb)
}

// round2 rounds to two decimal places.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
