package sheets

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mamadbah2/inumeshi/internal/domain/models"
)

// CalculationsRange is where calculation logs are appended, one row each:
// timestamp, id, name, age, weight, activity, feeding type, dry food amount,
// foods (JSON).
const CalculationsRange = "Calculations!A:I"

const calculationColumns = 9

// CalculationRow renders a log as a spreadsheet row.
func CalculationRow(record models.CalculationLog) []interface{} {
	foods, err := json.Marshal(record.Foods)
	if err != nil {
		foods = []byte("[]")
	}

	return []interface{}{
		record.Timestamp.UTC().Format(time.RFC3339),
		textCell(record.ID),
		textCell(record.Name),
		optionalNumber(record.Age),
		optionalNumber(record.Weight),
		textCell(record.Activity),
		textCell(record.FeedingType),
		record.DryFoodAmount,
		textCell(string(foods)),
	}
}

// textCell keeps caregiver text literal. Rows are appended with
// USER_ENTERED, so a leading apostrophe stops Sheets from evaluating the cell
// as a formula; the apostrophe itself is not stored.
func textCell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\'':
		return "'" + s
	}
	return s
}

// ParseCalculationRow is the inverse of CalculationRow. Header rows and rows
// with an unparseable timestamp return an error.
func ParseCalculationRow(row []interface{}) (models.CalculationLog, error) {
	if len(row) == 0 {
		return models.CalculationLog{}, fmt.Errorf("empty row")
	}
	cells := make([]string, calculationColumns)
	for i := 0; i < calculationColumns && i < len(row); i++ {
		cells[i] = strings.TrimSpace(fmt.Sprint(row[i]))
	}

	ts, err := time.Parse(time.RFC3339, cells[0])
	if err != nil {
		return models.CalculationLog{}, fmt.Errorf("parse timestamp %q: %w", cells[0], err)
	}

	record := models.CalculationLog{
		Timestamp:   ts,
		ID:          cells[1],
		Name:        cells[2],
		Age:         parseOptional(cells[3]),
		Weight:      parseOptional(cells[4]),
		Activity:    cells[5],
		FeedingType: cells[6],
	}
	if v := parseOptional(cells[7]); v != nil {
		record.DryFoodAmount = *v
	}
	if cells[8] != "" {
		if err := json.Unmarshal([]byte(cells[8]), &record.Foods); err != nil {
			return models.CalculationLog{}, fmt.Errorf("parse foods: %w", err)
		}
	}

	return record, nil
}

func optionalNumber(v *float64) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

func parseOptional(s string) *float64 {
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
