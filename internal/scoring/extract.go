package scoring

// Extract pulls the named column's values for the gene-set genes present in
// the table, preserving gene-set order. Genes absent from the table index
// are skipped, and each one reduces the matched signature length by one.
// An empty gene list yields an empty series and matched == 0.
func Extract(table *ExpressionTable, col Column, genes []string) (Series, int) {
	matched := len(genes)
	su := Series{}
	for _, g := range genes {
		v, ok := table.Value(g, col)
		if !ok {
			matched--
			continue
		}
		su.Genes = append(su.Genes, g)
		su.Values = append(su.Values, v)
	}
	return su, matched
}
