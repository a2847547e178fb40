// =============================================================================
// Sales Analytics - XLSX Workbook Export
// =============================================================================
//
// This module writes the analytics workbook: one XLSX file with a sheet per
// aggregate, mirroring the text report tables in a spreadsheet-friendly
// form. Operators who used to re-key the report into a spreadsheet open
// this instead.
//
// SHEETS:
//   Summary   - totals, average order value, date range
//   Regions   - region performance table
//   Products  - full product ranking (not truncated to top N)
//   Customers - customer analysis table
//   Daily     - daily sales trend
//
// =============================================================================

package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/salesworks/sales-analytics/internal/analytics"
	"github.com/salesworks/sales-analytics/internal/types"
)

// WriteWorkbook builds the analytics workbook and writes it to path.
func WriteWorkbook(path string, transactions []types.Transaction) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create workbook directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := writeSummarySheet(f, transactions); err != nil {
		return err
	}
	if err := writeRegionsSheet(f, transactions); err != nil {
		return err
	}
	if err := writeProductsSheet(f, transactions); err != nil {
		return err
	}
	if err := writeCustomersSheet(f, transactions); err != nil {
		return err
	}
	if err := writeDailySheet(f, transactions); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by Summary.
	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, transactions []types.Transaction) error {
	const sheet = "Summary"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to rename summary sheet: %w", err)
	}

	totalRevenue := analytics.TotalRevenue(transactions)
	avgOrder := 0.0
	if len(transactions) > 0 {
		avgOrder = totalRevenue / float64(len(transactions))
	}

	rows := [][]interface{}{
		{"Metric", "Value"},
		{"Total Revenue", totalRevenue},
		{"Total Transactions", len(transactions)},
		{"Average Order Value", avgOrder},
	}
	if first, last, ok := analytics.DateRange(transactions); ok {
		rows = append(rows, []interface{}{"Date Range", first + " to " + last})
	}
	if peak, ok := analytics.FindPeakDay(transactions); ok {
		rows = append(rows, []interface{}{"Peak Sales Day", peak.Date})
		rows = append(rows, []interface{}{"Peak Day Revenue", peak.Revenue})
	}

	return writeRows(f, sheet, rows)
}

func writeRegionsSheet(f *excelize.File, transactions []types.Transaction) error {
	rows := [][]interface{}{{"Region", "Total Sales", "% of Total", "Transactions"}}
	for _, r := range analytics.RegionSummary(transactions) {
		rows = append(rows, []interface{}{r.Region, r.TotalSales, r.Percentage, r.Count})
	}
	return addSheet(f, "Regions", rows)
}

func writeProductsSheet(f *excelize.File, transactions []types.Transaction) error {
	rows := [][]interface{}{{"Rank", "Product", "Quantity", "Revenue"}}
	// Full ranking: the workbook is not truncated to the report's top N.
	products := analytics.TopProducts(transactions, len(transactions)+1)
	for i, p := range products {
		rows = append(rows, []interface{}{i + 1, p.Name, p.Quantity, p.Revenue})
	}
	return addSheet(f, "Products", rows)
}

func writeCustomersSheet(f *excelize.File, transactions []types.Transaction) error {
	rows := [][]interface{}{{"Customer", "Total Spent", "Orders", "Avg Order Value", "Products"}}
	for _, c := range analytics.CustomerSummary(transactions) {
		rows = append(rows, []interface{}{
			c.CustomerID, c.TotalSpent, c.PurchaseCount, c.AvgOrderValue,
			strings.Join(c.Products, ", "),
		})
	}
	return addSheet(f, "Customers", rows)
}

func writeDailySheet(f *excelize.File, transactions []types.Transaction) error {
	rows := [][]interface{}{{"Date", "Revenue", "Transactions", "Unique Customers"}}
	for _, d := range analytics.DailyTrend(transactions) {
		rows = append(rows, []interface{}{d.Date, d.Revenue, d.Count, d.UniqueCustomers})
	}
	return addSheet(f, "Daily", rows)
}

// addSheet creates a named sheet and fills it.
func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", name, err)
	}
	return writeRows(f, name, rows)
}

// writeRows writes rows starting at A1.
func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return fmt.Errorf("failed to compute cell for row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d on %s: %w", i+1, sheet, err)
		}
	}
	return nil
}
