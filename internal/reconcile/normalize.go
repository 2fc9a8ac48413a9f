package reconcile

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"GstRecon/internal/tabular"
)

// CoercionPolicy decides what happens to amount cells that are not numbers.
type CoercionPolicy int

const (
	// Permissive treats malformed amounts as zero and counts them.
	Permissive CoercionPolicy = iota
	// Strict fails the run on the first malformed amount.
	Strict
)

func (p CoercionPolicy) String() string {
	if p == Strict {
		return "strict"
	}
	return "permissive"
}

func ParseCoercionPolicy(s string) (CoercionPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "permissive":
		return Permissive, nil
	case "strict":
		return Strict, nil
	default:
		return Permissive, fmt.Errorf("unknown coercion policy %q", s)
	}
}

// ParseAmount reads a decimal from cell text. Blank text is a true zero; ok
// is false only when non-blank text is not a number.
func ParseAmount(text string) (d decimal.Decimal, ok bool) {
	s := strings.TrimSpace(text)
	if s == "" {
		return decimal.Zero, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// Normalized is the typed view of one RawTable.
type Normalized struct {
	Records []Record
	// Coerced counts malformed amount cells that were read as zero.
	Coerced int
	// Dropped counts rows with neither GSTIN nor document number.
	Dropped int
	// Filtered counts rows removed by the note kind filter.
	Filtered int
}

// Normalize renames raw columns by position, drops footer and identity-less
// rows, applies the note filter and coerces the amount columns.
func Normalize(raw tabular.RawTable, schema Schema, policy CoercionPolicy) (Normalized, error) {
	if w := raw.Width(); w != len(schema.Columns) {
		return Normalized{}, &SchemaShapeError{Source: schema.Source, Sheet: raw.Sheet, Want: len(schema.Columns), Got: w}
	}

	rows := raw.Rows
	if schema.FooterRows > 0 {
		if schema.FooterRows >= len(rows) {
			rows = nil
		} else {
			rows = rows[:len(rows)-schema.FooterRows]
		}
	}

	idx := schema.index()
	text := func(row []string, column string) string {
		if column == "" {
			return ""
		}
		i := idx[column]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	out := Normalized{Records: make([]Record, 0, len(rows))}
	for i, row := range rows {
		rec := Record{
			Source:           schema.Source,
			SourceRow:        raw.SheetRow(i),
			SupplierTaxID:    text(row, schema.TaxID),
			DocumentNo:       text(row, schema.DocumentNo),
			CounterpartyName: text(row, schema.Name),
			NoteKind:         text(row, schema.NoteKind),
		}
		if rec.SupplierTaxID == "" && rec.DocumentNo == "" {
			out.Dropped++
			continue
		}
		if schema.NoteFilter != "" && !containsFold(rec.NoteKind, schema.NoteFilter) {
			out.Filtered++
			continue
		}

		amounts := make(map[string]decimal.Decimal, len(schema.numericColumns()))
		for _, col := range schema.numericColumns() {
			v := text(row, col)
			d, ok := ParseAmount(v)
			if !ok {
				if policy == Strict {
					return Normalized{}, &CoercionError{Source: schema.Source, Row: rec.SourceRow, Column: col, Value: v}
				}
				out.Coerced++
			}
			amounts[col] = d
		}

		rec.Gross = amounts[schema.Gross]
		rec.IGST = amounts[schema.IGST]
		rec.CGST = amounts[schema.CGST]
		rec.SGST = amounts[schema.SGST]
		if schema.Taxable != "" {
			rec.Taxable = amounts[schema.Taxable]
		} else {
			rec.Expenses = make(map[string]decimal.Decimal, len(schema.Expenses))
			total := decimal.Zero
			for _, col := range schema.Expenses {
				rec.Expenses[col] = amounts[col]
				total = total.Add(amounts[col])
			}
			rec.Taxable = total
		}

		out.Records = append(out.Records, rec)
	}
	return out, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
