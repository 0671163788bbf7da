package main

import (
	"encoding/csv"
	"strings"
	"testing"
)

func TestParseRows(t *testing.T) {
	input := strings.Join([]string{
		"Timestamp,Class,Confidence,Restricted Area Violation",
		"2026-08-30 12:00:00,person,0.92,Yes",
		"2026-08-30 12:00:05,car,0.81,No",
		"2026-08-30 12:01:00,dog,0.77,yes",
		"not-a-timestamp,person,0.9,Yes",
		"2026-08-30 12:02:00,person,not-a-number,Yes",
		"short,row",
	}, "\n")

	violations, skipped, err := parseRows(csv.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("parseRows() error: %v", err)
	}

	if len(violations) != 2 {
		t.Fatalf("parsed %d violations, want 2", len(violations))
	}
	if skipped != 4 {
		t.Errorf("skipped %d rows, want 4", skipped)
	}

	if violations[0].Class != "person" || violations[0].Confidence != 0.92 {
		t.Errorf("first violation = %+v, want person/0.92", violations[0])
	}
	if violations[1].Class != "dog" {
		t.Errorf("second violation class = %q, want dog", violations[1].Class)
	}
}

func TestParseRowsNoHeader(t *testing.T) {
	input := "2026-08-30 12:00:00,person,0.92,Yes\n"

	violations, _, err := parseRows(csv.NewReader(strings.NewReader(input)))
	if err != nil {
		t.Fatalf("parseRows() error: %v", err)
	}
	if len(violations) != 1 {
		t.Fatalf("parsed %d violations, want 1", len(violations))
	}
}
