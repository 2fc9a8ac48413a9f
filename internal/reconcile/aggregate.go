package reconcile

import (
	"sort"
	"strings"
)

// Aggregate rolls records up per GSTIN. Records without a GSTIN are left out,
// names are de-duplicated in first-seen order, and groups come back sorted by
// GSTIN so every run over the same input yields the same rows.
func Aggregate(records []Record) []AggregatedGroup {
	byTaxID := make(map[string]*AggregatedGroup)
	names := make(map[string][]string)
	seen := make(map[string]map[string]bool)

	for _, r := range records {
		if r.SupplierTaxID == "" {
			continue
		}
		g, ok := byTaxID[r.SupplierTaxID]
		if !ok {
			g = &AggregatedGroup{SupplierTaxID: r.SupplierTaxID}
			byTaxID[r.SupplierTaxID] = g
			seen[r.SupplierTaxID] = make(map[string]bool)
		}
		g.Records++
		g.Gross = g.Gross.Add(r.Gross)
		g.Taxable = g.Taxable.Add(r.Taxable)
		g.IGST = g.IGST.Add(r.IGST)
		g.CGST = g.CGST.Add(r.CGST)
		g.SGST = g.SGST.Add(r.SGST)

		if r.CounterpartyName != "" && !seen[r.SupplierTaxID][r.CounterpartyName] {
			seen[r.SupplierTaxID][r.CounterpartyName] = true
			names[r.SupplierTaxID] = append(names[r.SupplierTaxID], r.CounterpartyName)
		}
	}

	out := make([]AggregatedGroup, 0, len(byTaxID))
	for id, g := range byTaxID {
		g.Names = strings.Join(names[id], ", ")
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SupplierTaxID < out[j].SupplierTaxID })
	return out
}
