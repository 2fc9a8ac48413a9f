package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"GstRecon/internal/tabular"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertDecimal(t *testing.T, want string, got interface{}, msgAndArgs ...interface{}) {
	t.Helper()
	d, ok := got.(decimal.Decimal)
	if !assert.True(t, ok, "expected decimal, got %T (%v)", got, got) {
		return
	}
	assert.True(t, dec(want).Equal(d), append([]interface{}{"want %s, got %s", want, d.String()}, msgAndArgs...)...)
}

func purchase(taxID, doc, name, gross, igst string) Record {
	return Record{
		Source:           LedgerPurchase,
		SupplierTaxID:    taxID,
		DocumentNo:       doc,
		CounterpartyName: name,
		Gross:            dec(gross),
		Taxable:          dec(gross).Sub(dec(igst)),
		IGST:             dec(igst),
	}
}

func statement(taxID, doc, name, gross, igst string) Record {
	r := purchase(taxID, doc, name, gross, igst)
	r.Source = StatementInvoice
	return r
}

func note(taxID, doc, kind, gross, igst string) Record {
	r := purchase(taxID, doc, "", gross, igst)
	r.Source = StatementNotes
	r.NoteKind = kind
	return r
}

// rawTable builds a RawTable for a schema from rows of cell text.
func rawTable(schema Schema, rows ...[]string) tabular.RawTable {
	return tabular.RawTable{Sheet: "Sheet1", HeaderRow: 1, Header: schema.Columns, Rows: rows}
}

// row fills a schema-wide row from column -> value pairs.
func row(schema Schema, kv map[string]string) []string {
	out := make([]string, len(schema.Columns))
	for i, c := range schema.Columns {
		out[i] = kv[c]
	}
	return out
}

// xlsx builds an in-memory workbook: each sheet gets skip banner rows, the
// schema header and the data rows.
type sheetFixture struct {
	name   string
	skip   int
	schema Schema
	rows   [][]string
}

func xlsx(t *testing.T, sheets ...sheetFixture) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, s := range sheets {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", s.name))
		} else {
			_, err := f.NewSheet(s.name)
			require.NoError(t, err)
		}
		r := 1
		for ; r <= s.skip; r++ {
			cell, _ := excelize.CoordinatesToCellName(1, r)
			require.NoError(t, f.SetCellValue(s.name, cell, "banner"))
		}
		all := append([][]string{s.schema.Columns}, s.rows...)
		for _, values := range all {
			cells := make([]interface{}, len(values))
			for j, v := range values {
				cells[j] = v
			}
			cell, _ := excelize.CoordinatesToCellName(1, r)
			require.NoError(t, f.SetSheetRow(s.name, cell, &cells))
			r++
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}
