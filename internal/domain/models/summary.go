package models

// CategoryStat is one row of the per-category dataset summary.
type CategoryStat struct {
	Count int
	// CountShare is Count over the total record count, in [0,1].
	CountShare float64
	// LossUSD is the summed resolved loss of the category's records.
	LossUSD float64
	// LossShare is LossUSD over the total loss, in [0,1].
	LossShare float64
}

// CategorySummary aggregates a labeled dataset into per-category counts and
// loss totals for reporting.
type CategorySummary struct {
	Stats        map[Category]CategoryStat
	TotalCount   int
	TotalLossUSD float64
}
