package analytics

import "github.com/shopspring/decimal"

// UnknownGroup labels rows whose grouping key is missing. Such rows are
// accumulated under this label, never dropped.
const UnknownGroup = "Unknown"

// Rated is one input row to the grouped aggregator: a rating tagged with the
// dimension value it should be bucketed under (e.g. a location's city).
type Rated struct {
	Key    string
	Rating float64
}

// GroupRow is one output bucket. A group only exists once it has absorbed at
// least one row, so ReviewCount is always >= 1 and AverageRating is always
// present.
type GroupRow struct {
	Key           string
	ReviewCount   int64
	AverageRating float64
}

type accumulator struct {
	count int64
	sum   decimal.Decimal
}

// AggregateByKey folds rows into one GroupRow per distinct key in a single
// pass. The accumulator map lives on this call's stack frame; there is no
// shared state between invocations. Averages are rounded half-to-even to two
// decimal places so equal inputs always produce bit-equal output.
//
// Rows come back in first-seen key order, but callers must not rely on it;
// ordering is not part of the contract.
func AggregateByKey(rows []Rated) []GroupRow {
	accs := make(map[string]*accumulator, 16)
	var order []string

	for _, row := range rows {
		key := row.Key
		if key == "" {
			key = UnknownGroup
		}
		acc, ok := accs[key]
		if !ok {
			acc = &accumulator{}
			accs[key] = acc
			order = append(order, key)
		}
		acc.count++
		acc.sum = acc.sum.Add(decimal.NewFromFloat(row.Rating))
	}

	out := make([]GroupRow, 0, len(order))
	for _, key := range order {
		acc := accs[key]
		avg, _ := acc.sum.Div(decimal.NewFromInt(acc.count)).RoundBank(2).Float64()
		out = append(out, GroupRow{Key: key, ReviewCount: acc.count, AverageRating: avg})
	}
	return out
}
