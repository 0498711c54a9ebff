package models

import (
	"strconv"
	"strings"

	"github.com/vaultrisk/calibration/pkg/constants"
)

// RawRow is one pre-normalization row from the source dataset. The source
// carries two alternative column names for the technique and target-type
// fields and two mutually exclusive amount representations (absolute dollars
// vs millions), so each aliased field keeps a presence flag alongside its
// value.
type RawRow struct {
	Name      string
	NameLower string
	Date      string

	Technique      string
	HasTechnique   bool
	Classification string

	TargetType    string // from the "targetType" column
	HasTargetType bool
	TargetTypeAlt string // from the "target_type" column

	Amount     string // absolute dollars, as text
	HasAmount  bool
	AmountM    string // millions of dollars, as text
	HasAmountM bool
}

// ExploitRecord is one historical incident in the canonical schema. All field
// aliasing and unit resolution happens once, in NewExploitRecord; downstream
// components never re-derive aliases.
type ExploitRecord struct {
	Name       string
	Date       string
	Technique  string
	TargetType string

	// AmountUSD is the resolved monetary loss in absolute dollars.
	// A malformed source amount resolves to zero, never to an error.
	AmountUSD float64

	// Primitive is unset until the classifier has processed the record and
	// immutable afterwards.
	Primitive Category
}

// NewExploitRecord normalizes a raw row into the canonical schema.
func NewExploitRecord(row RawRow) ExploitRecord {
	technique := row.Classification
	if row.HasTechnique {
		technique = row.Technique
	}

	targetType := row.TargetTypeAlt
	if row.HasTargetType {
		targetType = row.TargetType
	}

	name := row.Name
	if name == "" {
		name = row.NameLower
	}

	var amountUSD float64
	switch {
	case row.HasAmount:
		amountUSD = parseAmount(row.Amount)
	case row.HasAmountM:
		amountUSD = parseAmount(row.AmountM) * constants.MillionsToUSD
	}

	return ExploitRecord{
		Name:       name,
		Date:       row.Date,
		Technique:  technique,
		TargetType: targetType,
		AmountUSD:  amountUSD,
	}
}

// SetPrimitive assigns the root-cause category. The first assignment wins;
// later calls are no-ops, preserving the write-once invariant.
func (r *ExploitRecord) SetPrimitive(c Category) {
	if r.Primitive != "" {
		return
	}
	r.Primitive = c
}

// DedupKey identifies candidate duplicate rows: lower-cased, trimmed name
// joined with the raw date string. Dates are opaque; no parsing.
func (r *ExploitRecord) DedupKey() string {
	return strings.ToLower(strings.TrimSpace(r.Name)) + "|" + r.Date
}

// parseAmount converts a textual amount to a non-negative float. Malformed
// input is absorbed as zero so a bad row never aborts the batch.
func parseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}
