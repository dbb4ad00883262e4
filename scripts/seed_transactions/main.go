// Seeds the transaction collection, either from a transactions.json
// export or from a built-in sample set, so the dashboard has data to
// render. Existing rows can be kept or wiped with -truncate.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finanalyst/models"
	"finanalyst/pkg/query"
	"finanalyst/pkg/report"
)

type record struct {
	Date     string          `json:"date"`
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
	Status   string          `json:"status"`
	UserID   string          `json:"user_id"`
}

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
	file := flag.String("file", "", "transactions.json to import (empty: built-in sample data)")
	truncate := flag.Bool("truncate", false, "delete existing transactions first")
	dry := flag.Bool("dry-run", false, "parse and report without writing to DB")
	flag.Parse()

	var records []record
	if *file != "" {
		raw, err := os.ReadFile(*file)
		if err != nil {
			log.Fatalf("read %s: %v", *file, err)
		}
		if err := json.Unmarshal(raw, &records); err != nil {
			log.Fatalf("parse %s: %v", *file, err)
		}
	} else {
		records = sampleRecords()
	}

	rows := make([]models.Transaction, 0, len(records))
	for i, r := range records {
		date, err := query.ParseDate(r.Date)
		if err != nil {
			log.Fatalf("record %d: %v", i, err)
		}
		if r.UserID == "" || r.Category == "" || r.Status == "" {
			log.Fatalf("record %d: user_id, category and status are required", i)
		}
		rows = append(rows, models.Transaction{
			UserID:   r.UserID,
			Date:     date,
			Amount:   r.Amount,
			Category: r.Category,
			Status:   r.Status,
		})
	}

	if *dry {
		fmt.Printf("DRY: would import %d transactions\n", len(rows))
		return
	}

	db := mustDBFromEnv()
	if *truncate {
		if err := db.Where("1 = 1").Delete(&models.Transaction{}).Error; err != nil {
			log.Fatalf("truncate: %v", err)
		}
		fmt.Println("cleared existing transactions")
	}
	if err := db.CreateInBatches(rows, 500).Error; err != nil {
		log.Fatalf("import: %v", err)
	}
	fmt.Printf("imported %d transactions\n", len(rows))

	stats, err := report.GetStats(db, "")
	if err != nil {
		log.Fatalf("stats: %v", err)
	}
	fmt.Printf("store now holds %d transactions totalling %s\n",
		stats.TotalTransactions, stats.TotalAmount.StringFixed(2))
}

func sampleRecords() []record {
	dec := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }
	return []record{
		{Date: "2024-01-15", Amount: dec("5000"), Category: "Salary", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-20", Amount: dec("1200"), Category: "Freelance", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-25", Amount: dec("500"), Category: "Investment", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-30", Amount: dec("800"), Category: "Rental", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-01", Amount: dec("-1200"), Category: "Housing", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-05", Amount: dec("-150"), Category: "Utilities", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-10", Amount: dec("-80"), Category: "Food & Dining", Status: "completed", UserID: "user_001"},
		{Date: "2024-01-12", Amount: dec("-45"), Category: "Transportation", Status: "pending", UserID: "user_001"},
		{Date: "2024-02-03", Amount: dec("5000"), Category: "Salary", Status: "completed", UserID: "user_002"},
		{Date: "2024-02-08", Amount: dec("-200"), Category: "Healthcare", Status: "completed", UserID: "user_002"},
		{Date: "2024-02-14", Amount: dec("-120"), Category: "Entertainment", Status: "pending", UserID: "user_002"},
	}
}
