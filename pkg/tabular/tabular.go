// Package tabular converts row/column tables into dense text passages
// that retrieve well under keyword and embedding-similarity search. Raw
// row dumps score poorly, so each table becomes one long-form document.
package tabular

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/yamato-dev/kura/internal/models"
)

// Table is an ordered set of rows under named columns. Rows may be
// shorter than the column list; missing cells read as empty.
type Table struct {
	Columns []string
	Rows    [][]string
}

// Cell returns the value at (row, col), or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if col < len(t.Rows[row]) {
		return t.Rows[row][col]
	}
	return ""
}

// present reports whether a cell holds a value: non-empty after trimming.
func present(cell string) bool {
	return strings.TrimSpace(cell) != ""
}

// ReadCSV loads a CSV file as a Table. The first record is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}

	table := &Table{}
	if len(records) == 0 {
		return table, nil
	}
	table.Columns = records[0]
	table.Rows = records[1:]
	return table, nil
}

// Config selects the roster variant and its column heuristics.
type Config struct {
	// RosterMarkers are filename substrings that signal personnel data.
	RosterMarkers []string
	// DepartmentColumns are candidate names for the department column.
	DepartmentColumns []string
	// PersonnelLabels are department values naming the HR department.
	PersonnelLabels []string
}

// Synthesizer turns tables into retrieval passages.
type Synthesizer struct {
	config Config
}

func NewSynthesizer(config Config) *Synthesizer {
	if len(config.RosterMarkers) == 0 {
		config.RosterMarkers = []string{"社員名簿", "従業員", "employee", "roster"}
	}
	if len(config.DepartmentColumns) == 0 {
		config.DepartmentColumns = []string{"従業員区分", "department", "部署"}
	}
	if len(config.PersonnelLabels) == 0 {
		config.PersonnelLabels = []string{"人事部", "HR"}
	}
	return &Synthesizer{config: config}
}

// Synthesize reads a CSV file and produces a single whole-table document.
// The result carries file_type "csv" and is never chunked downstream.
func (s *Synthesizer) Synthesize(path string) (models.Document, error) {
	table, err := ReadCSV(path)
	if err != nil {
		return models.Document{}, err
	}

	fileName := filepath.Base(path)

	var content string
	if s.isRoster(fileName) {
		content = s.rosterPassage(table, fileName)
	} else {
		content = genericPassage(table, fileName)
	}

	return models.New(content, map[string]interface{}{
		models.MetaSource:    path,
		models.MetaPage:      1,
		models.MetaFileType:  "csv",
		models.MetaTotalRows: len(table.Rows),
	}), nil
}

func (s *Synthesizer) isRoster(fileName string) bool {
	lower := strings.ToLower(fileName)
	for _, marker := range s.config.RosterMarkers {
		if strings.Contains(lower, strings.ToLower(marker)) {
			return true
		}
	}
	return false
}

// genericPassage renders any table: title, counts, column listing, then
// one numbered line per row listing its present cells. Fully empty rows
// contribute no line and do not break the numbering.
func genericPassage(table *Table, fileName string) string {
	var parts []string

	parts = append(parts, fmt.Sprintf("[%s]", fileName))
	parts = append(parts, fmt.Sprintf("Record count: %d", len(table.Rows)))
	parts = append(parts, fmt.Sprintf("Column count: %d", len(table.Columns)))
	parts = append(parts, "")

	parts = append(parts, "[Columns]")
	parts = append(parts, strings.Join(table.Columns, ", "))
	parts = append(parts, "")

	parts = append(parts, "[Data]")
	lineNo := 0
	for i := range table.Rows {
		var cells []string
		for j, col := range table.Columns {
			if cell := table.Cell(i, j); present(cell) {
				cells = append(cells, fmt.Sprintf("%s: %s", col, cell))
			}
		}
		if len(cells) > 0 {
			lineNo++
			parts = append(parts, fmt.Sprintf("%d. %s", lineNo, strings.Join(cells, ", ")))
		}
	}

	return strings.Join(parts, "\n")
}
