// Command seedrefs converts a reference-data Excel workbook into a SQL seed
// file. It reads a Categories sheet (name, description, GL account) and a
// Vendors sheet (name, email, phone, website, address).
// Usage: go run ./cmd/seedrefs <workbook.xlsx> <company-uuid>
// Output: db/seeds/reference_data.sql
package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"
)

const outPath = "db/seeds/reference_data.sql"

type categoryRow struct {
	name        string
	description string
	glAccount   string
}

type vendorRow struct {
	name    string
	email   string
	phone   string
	website string
	address string
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	if len(os.Args) < 3 {
		return fmt.Errorf("usage: seedrefs <workbook.xlsx> <company-uuid>")
	}
	xlsxPath := os.Args[1]
	companyID, err := uuid.Parse(os.Args[2])
	if err != nil {
		return fmt.Errorf("invalid company uuid: %w", err)
	}

	f, err := excelize.OpenFile(xlsxPath)
	if err != nil {
		return fmt.Errorf("open Excel file: %w", err)
	}
	defer func() { _ = f.Close() }()

	categories, err := parseCategories(f)
	if err != nil {
		return fmt.Errorf("parse Categories sheet: %w", err)
	}
	log.Printf("Categories sheet: %d entries", len(categories))

	vendors, err := parseVendors(f)
	if err != nil {
		return fmt.Errorf("parse Vendors sheet: %w", err)
	}
	log.Printf("Vendors sheet: %d entries", len(vendors))

	if err := writeSeed(companyID, categories, vendors); err != nil {
		return err
	}
	log.Printf("wrote %s", outPath)
	return nil
}

func parseCategories(f *excelize.File) ([]categoryRow, error) {
	rows, err := f.GetRows("Categories")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []categoryRow
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue // header
		}
		name := strings.TrimSpace(cell(row, 0))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, categoryRow{
			name:        name,
			description: strings.TrimSpace(cell(row, 1)),
			glAccount:   strings.TrimSpace(cell(row, 2)),
		})
	}
	return out, nil
}

func parseVendors(f *excelize.File) ([]vendorRow, error) {
	rows, err := f.GetRows("Vendors")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var out []vendorRow
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue // header
		}
		name := strings.TrimSpace(cell(row, 0))
		if name == "" || seen[strings.ToLower(name)] {
			continue
		}
		seen[strings.ToLower(name)] = true
		out = append(out, vendorRow{
			name:    name,
			email:   strings.TrimSpace(cell(row, 1)),
			phone:   strings.TrimSpace(cell(row, 2)),
			website: strings.TrimSpace(cell(row, 3)),
			address: strings.TrimSpace(cell(row, 4)),
		})
	}
	return out, nil
}

func writeSeed(companyID uuid.UUID, categories []categoryRow, vendors []vendorRow) error {
	var b strings.Builder
	b.WriteString("-- Generated by cmd/seedrefs. Do not edit by hand.\n\n")

	for _, c := range categories {
		b.WriteString(fmt.Sprintf(
			"INSERT INTO categories (id, company_id, name, description, gl_account, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', %s, %s, %s, now(), now())\n"+
				"ON CONFLICT DO NOTHING;\n",
			uuid.New(), companyID, quote(c.name), quote(c.description), quote(c.glAccount)))
	}
	b.WriteString("\n")
	for _, v := range vendors {
		b.WriteString(fmt.Sprintf(
			"INSERT INTO vendors (id, company_id, name, email, phone, website, address, created_at, updated_at)\n"+
				"VALUES ('%s', '%s', %s, %s, %s, %s, %s, now(), now())\n"+
				"ON CONFLICT DO NOTHING;\n",
			uuid.New(), companyID, quote(v.name), quote(v.email), quote(v.phone), quote(v.website), quote(v.address)))
	}

	if err := os.MkdirAll("db/seeds", 0o755); err != nil {
		return err
	}
	return os.WriteFile(outPath, []byte(b.String()), 0o644)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
