// Package importer reads door schedules from CSV and Excel files and inspects
// DXF face drawings. Schedule import supports automatic delimiter detection,
// flexible column mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/doorcut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Doors    []model.DoorSpec
	Errors   []string
	Warnings []string
}

// Schedule wraps the imported doors in a named schedule.
func (r ImportResult) Schedule(name string) model.Schedule {
	s := model.NewSchedule(name)
	for _, d := range r.Doors {
		s.Add(d)
	}
	return s
}

// ColumnMapping maps semantic column roles to their indices in the data.
// A negative index means the column is absent.
type ColumnMapping struct {
	Mark           int
	Type           int
	SOX            int
	SOY            int
	Quantity       int
	FrameThickness int
	LeafThickness  int
	ActiveX        int
}

// positionalMapping is used when the first row is not a header.
var positionalMapping = ColumnMapping{
	Mark:           0,
	Type:           1,
	SOX:            2,
	SOY:            3,
	Quantity:       4,
	FrameThickness: 5,
	LeafThickness:  6,
	ActiveX:        7,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"mark":            {"mark", "door", "door mark", "ref", "reference", "tag", "id", "label", "name"},
	"type":            {"type", "door type", "kind", "leaves"},
	"so_x":            {"so_x", "so x", "sox", "so width", "opening width", "structural opening width", "width", "w"},
	"so_y":            {"so_y", "so y", "soy", "so height", "opening height", "structural opening height", "height", "h"},
	"quantity":        {"quantity", "qty", "count", "num", "pcs"},
	"frame_thickness": {"frame_thickness", "frame thickness", "frame t", "frame"},
	"leaf_thickness":  {"leaf_thickness", "leaf thickness", "leaf t", "leaf", "thickness"},
	"active_x":        {"active_x", "active x", "active_leaf_x", "active leaf", "active leaf width", "active width"},
}

func (m *ColumnMapping) field(role string) *int {
	switch role {
	case "mark":
		return &m.Mark
	case "type":
		return &m.Type
	case "so_x":
		return &m.SOX
	case "so_y":
		return &m.SOY
	case "quantity":
		return &m.Quantity
	case "frame_thickness":
		return &m.FrameThickness
	case "leaf_thickness":
		return &m.LeafThickness
	case "active_x":
		return &m.ActiveX
	}
	return nil
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only delimiters that split the first row count
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against known aliases; the first column
// matching a role wins. Returns the mapping and true if a header was
// detected, or the positional mapping and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{-1, -1, -1, -1, -1, -1, -1, -1}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized != alias {
					continue
				}
				isHeader = true
				if f := mapping.field(role); *f == -1 {
					*f = i
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber parses an optional positive millimetre value. An empty cell
// yields 0.
func parseNumber(row []string, idx int, rowLabel, name string) (float64, string) {
	str := getCell(row, idx)
	if str == "" {
		return 0, ""
	}
	v, err := strconv.ParseFloat(strings.Replace(str, ",", ".", 1), 64)
	if err != nil {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, str)
	}
	if v <= 0 {
		return 0, fmt.Sprintf("%s: %s must be positive", rowLabel, name)
	}
	return v, ""
}

// parseRow extracts a DoorSpec from a row using the given column mapping.
// Returns the door, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, doorCount int) (model.DoorSpec, string, []string) {
	var warnings []string

	mark := getCell(row, mapping.Mark)
	if mark == "" {
		mark = fmt.Sprintf("D%02d", doorCount+1)
	}

	doorType := model.DoorSingle
	if typeStr := getCell(row, mapping.Type); typeStr != "" {
		t, err := model.ParseDoorType(typeStr)
		if err != nil {
			return model.DoorSpec{}, fmt.Sprintf("%s: Unknown door type '%s'", rowLabel, typeStr), nil
		}
		doorType = t
	}

	if getCell(row, mapping.SOX) == "" {
		return model.DoorSpec{}, fmt.Sprintf("%s: Missing SO width value", rowLabel), nil
	}
	soX, errMsg := parseNumber(row, mapping.SOX, rowLabel, "SO width")
	if errMsg != "" {
		return model.DoorSpec{}, errMsg, nil
	}
	if getCell(row, mapping.SOY) == "" {
		return model.DoorSpec{}, fmt.Sprintf("%s: Missing SO height value", rowLabel), nil
	}
	soY, errMsg := parseNumber(row, mapping.SOY, rowLabel, "SO height")
	if errMsg != "" {
		return model.DoorSpec{}, errMsg, nil
	}

	spec := model.NewDoorSpec(mark, doorType, soX, soY)

	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err := strconv.Atoi(qtyStr)
		if err != nil {
			return model.DoorSpec{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
		}
		if qty <= 0 {
			return model.DoorSpec{}, fmt.Sprintf("%s: Quantity must be positive", rowLabel), nil
		}
		spec.Quantity = qty
	}

	if spec.FrameThickness, errMsg = parseNumber(row, mapping.FrameThickness, rowLabel, "frame thickness"); errMsg != "" {
		return model.DoorSpec{}, errMsg, nil
	}
	if spec.LeafThickness, errMsg = parseNumber(row, mapping.LeafThickness, rowLabel, "leaf thickness"); errMsg != "" {
		return model.DoorSpec{}, errMsg, nil
	}

	activeX, errMsg := parseNumber(row, mapping.ActiveX, rowLabel, "active leaf width")
	if errMsg != "" {
		return model.DoorSpec{}, errMsg, nil
	}
	if activeX != 0 {
		if doorType == model.DoorDouble {
			spec.ActiveLeafX = activeX
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Active leaf width ignored for single door", rowLabel))
		}
	}

	// Reject splits that do not fit the opening now rather than at generate time.
	if _, err := spec.Geometry(); err != nil {
		return model.DoorSpec{}, fmt.Sprintf("%s: %v", rowLabel, err), nil
	}

	return spec, "", warnings
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports doors from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports doors from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports doors from an Excel (.xlsx, .xls) file.
// Reads the first sheet and auto-detects column mapping from headers.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into a door.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.SOX == -1 {
			missing = append(missing, "SO X")
		}
		if mapping.SOY == -1 {
			missing = append(missing, "SO Y")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) > positionalMapping.SOX {
			if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][positionalMapping.SOX]), 64); err != nil {
				// SO width is not numeric - probably an unrecognized header.
				// Skip it but keep the positional mapping.
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		door, errMsg, warnings := parseRow(row, mapping, rowLabel, len(result.Doors))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Doors = append(result.Doors, door)
	}

	return result
}
