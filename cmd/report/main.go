// Command report prints aggregate transaction statistics for an owner
// (or the whole store) and can render the monthly trend as a PNG chart.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"time"

	"github.com/joho/godotenv"
	"github.com/olekukonko/tablewriter"
	"github.com/wcharczuk/go-chart/v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finanalyst/pkg/csvexport"
	"finanalyst/pkg/report"
)

func mustDBFromEnv() *gorm.DB {
	_ = godotenv.Load()
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		log.Fatal("DB_DSN not set in env")
	}
	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	return gdb
}

func main() {
	user := flag.String("user", "", "owner id to report on (empty: all users)")
	chartOut := flag.String("chart", "", "write the monthly trend chart to this PNG file")
	flag.Parse()

	db := mustDBFromEnv()

	stats, err := report.GetStats(db, *user)
	if err != nil {
		log.Fatalf("stats: %v", err)
	}
	fmt.Println("=== Transaction Statistics ===")
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Transactions", "Total", "Average", "Min", "Max"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.TotalTransactions),
		csvexport.FormatCurrency(stats.TotalAmount),
		csvexport.FormatCurrency(stats.AvgAmount),
		csvexport.FormatCurrency(stats.MinAmount),
		csvexport.FormatCurrency(stats.MaxAmount),
	})
	table.Render()

	breakdown, err := report.GetCategoryBreakdown(db, *user, "")
	if err != nil {
		log.Fatalf("breakdown: %v", err)
	}
	fmt.Println("\n=== Category Breakdown ===")
	table = tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Category", "Count", "Total", "Average"})
	for _, row := range breakdown {
		table.Append([]string{
			row.Category,
			fmt.Sprintf("%d", row.Count),
			csvexport.FormatCurrency(row.Total),
			csvexport.FormatCurrency(row.Avg),
		})
	}
	table.Render()

	if *chartOut == "" {
		return
	}
	trends, err := report.GetMonthlyTrends(db, *user)
	if err != nil {
		log.Fatalf("trends: %v", err)
	}
	if len(trends) == 0 {
		log.Println("no trend data; skipping chart")
		return
	}
	if err := renderTrendChart(trends, *chartOut); err != nil {
		log.Fatalf("render chart: %v", err)
	}
	fmt.Printf("Monthly trend chart saved to: %s\n", *chartOut)
}

// renderTrendChart draws one time series per category over the monthly
// trend buckets.
func renderTrendChart(trends []report.MonthlyTrend, outFile string) error {
	byCategory := map[string][]report.MonthlyTrend{}
	for _, t := range trends {
		byCategory[t.Category] = append(byCategory[t.Category], t)
	}
	categories := make([]string, 0, len(byCategory))
	for cat := range byCategory {
		categories = append(categories, cat)
	}
	sort.Strings(categories)

	var series []chart.Series
	for _, cat := range categories {
		points := byCategory[cat]
		xs := make([]time.Time, 0, len(points))
		ys := make([]float64, 0, len(points))
		for _, p := range points {
			xs = append(xs, time.Date(p.Year, time.Month(p.Month), 1, 0, 0, 0, 0, time.UTC))
			ys = append(ys, p.Total.InexactFloat64())
		}
		series = append(series, chart.TimeSeries{Name: cat, XValues: xs, YValues: ys})
	}

	graph := chart.Chart{
		Title: "Monthly Trends by Category",
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20},
		},
		Width:  800,
		Height: 400,
		Series: series,
	}
	graph.YAxis.ValueFormatter = func(v interface{}) string {
		if vf, isFloat := v.(float64); isFloat {
			return fmt.Sprintf("$%.2f", vf)
		}
		return ""
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}
