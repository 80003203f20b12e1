// Offline weekly export: writes the Monday-Saturday three-sheet workbook to
// a file without going through the HTTP API.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"equipment-checklist-api/config"
	"equipment-checklist-api/services"
)

func main() {
	startFlag := flag.String("start", "", "start date (YYYY-MM-DD), defaults to this week's Monday")
	endFlag := flag.String("end", "", "end date (YYYY-MM-DD), defaults to this week's Saturday")
	outFlag := flag.String("out", "", "output file, defaults to report_<start>_to_<end>.xlsx")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	config.InitStore()
	defer config.Store.Close()

	start, end := services.WeekRange(time.Now())
	if *startFlag != "" {
		d, err := time.Parse("2006-01-02", *startFlag)
		if err != nil {
			log.Fatal("Invalid -start date:", err)
		}
		start = d
	}
	if *endFlag != "" {
		d, err := time.Parse("2006-01-02", *endFlag)
		if err != nil {
			log.Fatal("Invalid -end date:", err)
		}
		end = d
	}

	export := services.NewExportService(config.Store)
	data, err := export.ExportRange(start, end)
	if err != nil {
		log.Fatal("Export failed:", err)
	}

	out := *outFlag
	if out == "" {
		out = "report_" + start.Format("2006-01-02") + "_to_" + end.Format("2006-01-02") + ".xlsx"
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		log.Fatal("Failed to write export:", err)
	}

	log.Printf("Wrote %s (%d bytes)", out, len(data))
}
