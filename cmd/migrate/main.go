// Command migrate imports a legacy CSV detection log into the sqlite
// violation store. Rows are expected as:
//
//	Timestamp,Class,Confidence,Restricted Area Violation
//
// Only rows flagged as violations are imported.
package main

import (
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"zoneguard/internal/model"
	"zoneguard/internal/repository/sqlite"
)

func main() {
	csvPath := flag.String("csv", "detection_log.csv", "path to the legacy CSV log")
	dbPath := flag.String("db", "zoneguard.db", "path to the sqlite database")
	flag.Parse()

	file, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("Failed to open CSV: %v", err)
	}
	defer file.Close()

	db, err := sqlite.New(*dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	violations, skipped, err := parseRows(csv.NewReader(file))
	if err != nil {
		log.Fatalf("Failed to parse CSV: %v", err)
	}

	repo := sqlite.NewViolationRepository(db)
	if err := repo.InsertBatch(violations); err != nil {
		log.Fatalf("Failed to import rows: %v", err)
	}

	log.Printf("Imported %d violations (%d rows skipped)", len(violations), skipped)
}

func parseRows(reader *csv.Reader) ([]model.Violation, int, error) {
	reader.FieldsPerRecord = -1

	var violations []model.Violation
	skipped := 0
	first := true

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}

		// Header row
		if first {
			first = false
			if strings.EqualFold(record[0], "timestamp") {
				continue
			}
		}

		if len(record) < 4 {
			skipped++
			continue
		}

		if !strings.EqualFold(strings.TrimSpace(record[3]), "yes") {
			skipped++
			continue
		}

		timestamp, err := time.Parse("2006-01-02 15:04:05", strings.TrimSpace(record[0]))
		if err != nil {
			skipped++
			continue
		}

		confidence, err := strconv.ParseFloat(strings.TrimSpace(record[2]), 64)
		if err != nil {
			skipped++
			continue
		}

		violations = append(violations, model.Violation{
			Timestamp:  timestamp,
			Class:      strings.TrimSpace(record[1]),
			Confidence: confidence,
		})
	}

	return violations, skipped, nil
}
