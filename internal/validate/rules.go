package validate

// DefaultRules returns the built-in rules keyed by family name or algorithm
// id. Family rules apply to every algorithm of the family and run first.
func DefaultRules() map[string][]Rule {
	array := []Rule{
		{Name: "non-empty", Expr: "len(array) > 0", Message: "array must not be empty"},
		{Name: "max-size", Expr: "len(array) <= 500", Message: "array must have at most 500 elements"},
		{Name: "positive", Expr: "all(array, # > 0)", Message: "array values must be positive integers"},
		{Name: "max-value", Expr: "all(array, # <= 1000000)", Message: "array values must be at most 1000000"},
	}
	sortedArray := append(append([]Rule(nil), array...), Rule{
		Name:    "ascending",
		Expr:    "ascending(array)",
		Message: "array must be sorted in ascending order",
	})

	start := Rule{Name: "start-node", Expr: "start in nodes", Message: "start must be a node of the graph"}
	end := Rule{Name: "end-node", Expr: "end in nodes", Message: "end must be a node of the graph"}
	value := Rule{Name: "value-range", Expr: "value >= 1 && value <= 100", Message: "value must be between 1 and 100"}

	return map[string][]Rule{
		"sorting":       array,
		"linear-search": array,
		"binary-search": sortedArray,
		"bfs":           {start},
		"dfs":           {start},
		"dijkstra":      {start, end},
		"bst-insert":    {value},
		"bst-search":    {value},
		"fibonacci":     {{Name: "n-range", Expr: "n >= 1 && n <= 20", Message: "n must be between 1 and 20"}},
		"knapsack":      {{Name: "capacity-range", Expr: "capacity >= 5 && capacity <= 15", Message: "capacity must be between 5 and 15"}},
		"matrix-chain":  {{Name: "matrices-range", Expr: "matrices >= 2 && matrices <= 5", Message: "matrices must be between 2 and 5"}},
		"n-queens":      {{Name: "queens-range", Expr: "queens >= 1 && queens <= 8", Message: "queens must be between 1 and 8"}},
	}
}
