package tabular

import (
	"fmt"
	"sort"
	"strings"
)

// Base retrieval vocabulary for roster tables. Department names found in
// the data are appended with morphological variants.
var rosterKeywords = []string{
	"employee information", "employee roster", "HR department",
	"employee list", "staff list", "employee data", "personnel data",
	"staff information", "employee database", "employee directory",
	"staff directory", "personnel information", "staff register",
}

// rosterPassage renders a personnel table as one rich passage: header,
// per-department breakdown, HR extraction, flat listing, and a keyword
// footer. Sections are separated by blank lines.
func (s *Synthesizer) rosterPassage(table *Table, fileName string) string {
	var parts []string

	// Header with retrieval-boosting title.
	parts = append(parts, fmt.Sprintf("[%s - Employee Roster / Staff Directory / Personnel Database]", fileName))
	parts = append(parts, fmt.Sprintf("Total employees: %d", len(table.Rows)))
	parts = append(parts, "")

	deptCol := s.departmentColumn(table)

	if deptCol >= 0 {
		parts = append(parts, s.departmentSections(table, deptCol)...)
		parts = append(parts, s.personnelSection(table, deptCol)...)
	}

	// Flat listing of every row in original order, numbered by position.
	parts = append(parts, "[All employee records]")
	parts = append(parts, "Every employee in the company:")
	for i := range table.Rows {
		cells := rowCells(table, i, -1)
		if len(cells) > 0 {
			parts = append(parts, fmt.Sprintf("Employee %d: %s", i+1, strings.Join(cells, ", ")))
		}
	}

	// Keyword footer.
	parts = append(parts, "")
	parts = append(parts, "[Search keywords]")
	keywords := append([]string{}, rosterKeywords...)
	if deptCol >= 0 {
		for _, dept := range distinctDepartments(table, deptCol) {
			keywords = append(keywords,
				dept,
				fmt.Sprintf("%s department", dept),
				fmt.Sprintf("affiliated with %s", dept),
				fmt.Sprintf("employees of %s", dept),
			)
		}
	}
	parts = append(parts, fmt.Sprintf("Related keywords: %s", strings.Join(keywords, ", ")))

	return strings.Join(parts, "\n")
}

// departmentColumn returns the index of the department-classifying
// column, or -1 when none of the configured candidates exists.
func (s *Synthesizer) departmentColumn(table *Table) int {
	for i, col := range table.Columns {
		for _, candidate := range s.config.DepartmentColumns {
			if col == candidate {
				return i
			}
		}
	}
	return -1
}

// departmentSections renders the per-department breakdown, grouped by
// department value in ascending key order.
func (s *Synthesizer) departmentSections(table *Table, deptCol int) []string {
	groups := groupByDepartment(table, deptCol)
	depts := make([]string, 0, len(groups))
	for dept := range groups {
		depts = append(depts, dept)
	}
	sort.Strings(depts)

	parts := []string{"[Employees by department]"}
	for _, dept := range depts {
		rows := groups[dept]
		parts = append(parts, fmt.Sprintf("\n* %s (%d members)", dept, len(rows)))
		parts = append(parts, fmt.Sprintf("Employees affiliated with %s:", dept))

		for idx, row := range rows {
			cells := rowCells(table, row, deptCol)
			if len(cells) > 0 {
				parts = append(parts, fmt.Sprintf("  %d. %s", idx+1, strings.Join(cells, ", ")))
			}
		}
	}
	parts = append(parts, "")
	return parts
}

// personnelSection renders the dedicated HR listing when any row's
// department matches a configured personnel label exactly.
func (s *Synthesizer) personnelSection(table *Table, deptCol int) []string {
	var label string
	var rows []int
	for _, candidate := range s.config.PersonnelLabels {
		for i := range table.Rows {
			if table.Cell(i, deptCol) == candidate {
				rows = append(rows, i)
			}
		}
		if len(rows) > 0 {
			label = candidate
			break
		}
	}
	if len(rows) == 0 {
		return nil
	}

	parts := []string{
		fmt.Sprintf("[Complete list of %s employees]", label),
		fmt.Sprintf("%s has %d employees.", label, len(rows)),
		fmt.Sprintf("%s member details:", label),
	}
	for idx, row := range rows {
		cells := rowCells(table, row, -1)
		if len(cells) > 0 {
			parts = append(parts, fmt.Sprintf("%s member %d: %s", label, idx+1, strings.Join(cells, ", ")))
		}
	}
	parts = append(parts, "")
	return parts
}

// rowCells formats the present cells of a row as field:value pairs,
// skipping the column at skipCol (pass -1 to keep all columns).
func rowCells(table *Table, row, skipCol int) []string {
	var cells []string
	for j, col := range table.Columns {
		if j == skipCol {
			continue
		}
		if cell := table.Cell(row, j); present(cell) {
			cells = append(cells, fmt.Sprintf("%s:%s", col, cell))
		}
	}
	return cells
}

func groupByDepartment(table *Table, deptCol int) map[string][]int {
	groups := make(map[string][]int)
	for i := range table.Rows {
		dept := table.Cell(i, deptCol)
		if !present(dept) {
			continue
		}
		groups[dept] = append(groups[dept], i)
	}
	return groups
}

func distinctDepartments(table *Table, deptCol int) []string {
	groups := groupByDepartment(table, deptCol)
	depts := make([]string, 0, len(groups))
	for dept := range groups {
		depts = append(depts, dept)
	}
	sort.Strings(depts)
	return depts
}
