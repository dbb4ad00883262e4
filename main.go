package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	// amounts serialize as JSON numbers, matching the dashboard client
	decimal.MarshalJSONWithoutQuotes = true

	// Support a lightweight migrate command: `./finanalyst migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		if _, err := openDB(cfg); err != nil {
			log.Fatal("failed to connect postgres database: ", err)
		}
		fmt.Println("migration and seeding completed")
		return
	}

	db, err := openDB(cfg)
	if err != nil {
		log.Fatal("failed to connect postgres database: ", err)
	}

	r := gin.Default()
	setupRoutes(r, newServer(cfg, db))

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
