package tabular

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// workbook builds an in-memory xlsx: sheet name -> rows.
func workbook(t *testing.T, sheets map[string][][]interface{}, order ...string) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			cell, err := excelize.CoordinatesToCellName(1, r+1)
			require.NoError(t, err)
			vals := row
			require.NoError(t, f.SetSheetRow(name, cell, &vals))
		}
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestReadTable_XLSXSkipsBannerRows(t *testing.T) {
	data := workbook(t, map[string][][]interface{}{
		"B2B": {
			{"Goods and Services Tax - GSTR 2B"},
			{"Taxpayer's Details"},
			{"GSTIN", "Trade Name", "Invoice Value"},
			{"27AAAA0000A1Z5", "Acme Traders", 1180.5},
			{"29BBBB1111B1Z2", "Beta Supplies", "n/a"},
		},
	}, "B2B")

	tbl, err := ReadTable("gstr2b.xlsx", data, ReadOptions{SkipRows: 2})
	require.NoError(t, err)

	assert.Equal(t, "B2B", tbl.Sheet)
	assert.Equal(t, 3, tbl.HeaderRow)
	assert.Equal(t, []string{"GSTIN", "Trade Name", "Invoice Value"}, tbl.Header)
	require.Len(t, tbl.Rows, 2)
	assert.Equal(t, "1180.5", tbl.Cell(0, 2))
	assert.Equal(t, "n/a", tbl.Cell(1, 2))
	assert.Equal(t, "", tbl.Cell(1, 7))
	assert.Equal(t, 5, tbl.SheetRow(1))
}

func TestReadTable_RawNumbersIgnoreDisplayFormat(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"Gross_Total"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 123456.75))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", style))
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	f.Close()

	tbl, err := ReadTable("ledger.xlsx", buf.Bytes(), ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "123456.75", tbl.Cell(0, 0))
}

func TestReadTable_NamedSheet(t *testing.T) {
	data := workbook(t, map[string][][]interface{}{
		"B2B":      {{"GSTIN"}, {"A"}},
		"B2B-CDNR": {{"banner"}, {"GSTIN", "Note type"}, {"27X", "Credit Note"}},
	}, "B2B", "B2B-CDNR")

	tbl, err := ReadTable("gstr2b.xlsx", data, ReadOptions{Sheet: "B2B-CDNR", SkipRows: 1})
	require.NoError(t, err)
	assert.Equal(t, "B2B-CDNR", tbl.Sheet)
	assert.Equal(t, "Credit Note", tbl.Cell(0, 1))

	_, err = ReadTable("gstr2b.xlsx", data, ReadOptions{Sheet: "B2BA"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrSheetNotFound))
	var re *ReadError
	assert.ErrorAs(t, err, &re)
}

func TestReadTable_NotEnoughRows(t *testing.T) {
	data := workbook(t, map[string][][]interface{}{"S": {{"only"}}}, "S")
	_, err := ReadTable("x.xlsx", data, ReadOptions{SkipRows: 4})
	var re *ReadError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, "x.xlsx", re.File)
}

func TestReadTable_CSV(t *testing.T) {
	csvData := "Purchase Register\n1-Apr-24 to 31-Mar-25\nDate,Particulars,GSTIN\n01-04-2024,\"Acme, Pune\",27X\n"
	tbl, err := ReadTable("register.CSV", []byte(csvData), ReadOptions{SkipRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 3, tbl.Width())
	assert.Equal(t, "Acme, Pune", tbl.Cell(0, 1))
}

func TestReadTable_Rejects(t *testing.T) {
	_, err := ReadTable("notes.pdf", []byte("%PDF"), ReadOptions{})
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = ReadTable("empty.xlsx", nil, ReadOptions{})
	assert.Error(t, err)
}

func TestWidthIgnoresTrailingBlankLabels(t *testing.T) {
	tbl := RawTable{Header: []string{"A", "", "C", " ", ""}, Rows: [][]string{{"1", "", "3", "", " "}}}
	assert.Equal(t, 3, tbl.Width())
}

func TestWidthCountsDataUnderBlankLabel(t *testing.T) {
	tbl := RawTable{
		Header: []string{"A", "B", ""},
		Rows:   [][]string{{"1", "2"}, {"1", "2", "2024-04-01"}},
	}
	assert.Equal(t, 3, tbl.Width())
}

func TestReadTable_CorruptXLS(t *testing.T) {
	_, err := ReadTable("ledger.xls", []byte("not a biff workbook"), ReadOptions{SkipRows: 9})
	var re *ReadError
	require.True(t, errors.As(err, &re))
	assert.Equal(t, "ledger.xls", re.File)
}

func TestRender_ValuesAndFills(t *testing.T) {
	rows := [][]interface{}{
		{"27X", decimal.RequireFromString("1000.50"), "Matched"},
		{"29Y", nil, "Mismatch"},
		{"30Z", decimal.RequireFromString("-12"), "Debit Note"},
	}
	highlights := []Highlight{
		{Row: 1, Col: WholeRow, Category: Mismatch},
		{Row: 2, Col: 1, Category: DebitNote},
	}

	out, err := Render("GSTR-2B", []string{"GSTIN", "Amount", "Status"}, rows, highlights)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("GSTR-2B")
	require.NoError(t, err)
	require.Len(t, got, 4)
	assert.Equal(t, []string{"GSTIN", "Amount", "Status"}, got[0])
	assert.Equal(t, "1000.5", got[1][1])
	assert.Equal(t, "-12", got[3][1])

	fill := func(cell string) string {
		id, err := f.GetCellStyle("GSTR-2B", cell)
		require.NoError(t, err)
		st, err := f.GetStyle(id)
		require.NoError(t, err)
		if len(st.Fill.Color) == 0 {
			return ""
		}
		return strings.ToUpper(st.Fill.Color[0])
	}
	assert.Contains(t, fill("A3"), "FF0000")
	assert.Contains(t, fill("C3"), "FF0000")
	assert.Contains(t, fill("B4"), "FFFF00")
	assert.Equal(t, "", fill("A4"))
	assert.Equal(t, "", fill("A2"))
}

func TestRender_LaterFillWins(t *testing.T) {
	rows := [][]interface{}{{"a", "b"}}
	out, err := Render("", []string{"x", "y"}, rows, []Highlight{
		{Row: 0, Col: WholeRow, Category: Mismatch},
		{Row: 0, Col: WholeRow, Category: DebitNote},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(out))
	require.NoError(t, err)
	defer f.Close()
	id, err := f.GetCellStyle("Sheet1", "B2")
	require.NoError(t, err)
	st, err := f.GetStyle(id)
	require.NoError(t, err)
	require.NotEmpty(t, st.Fill.Color)
	assert.Contains(t, strings.ToUpper(st.Fill.Color[0]), "FFFF00")
}

func TestRender_HighlightOutOfRange(t *testing.T) {
	_, err := Render("S", []string{"x"}, [][]interface{}{{"a"}}, []Highlight{{Row: 3, Col: 0, Category: Mismatch}})
	var re *RenderError
	assert.ErrorAs(t, err, &re)
}

func TestCategory(t *testing.T) {
	assert.Equal(t, "mismatch", Mismatch.String())
	assert.Equal(t, "debit_note", DebitNote.String())
	assert.Equal(t, "FFFF00", DebitNote.Color())
}
