package models

import (
	"time"

	"github.com/google/uuid"
)

// CalibrationSnapshot is the persisted form of one computed BaseRateTable,
// reusable later without recomputation.
type CalibrationSnapshot struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	PopulationSize   int
	ObservationYears float64
	TotalExploits    int
	Source           string
	CreatedAt        time.Time
	Rates            []SnapshotRate `gorm:"foreignKey:SnapshotID"`
}

// SnapshotRate is one category's persisted rate tuple.
type SnapshotRate struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"`
	SnapshotID  uuid.UUID `gorm:"type:uuid;index"`
	Category    string
	Count       int
	Rate        float64
	RatePercent string
	RateBps     float64
}

// NewCalibrationSnapshot captures a BaseRateTable for persistence.
func NewCalibrationSnapshot(table *BaseRateTable, source string) *CalibrationSnapshot {
	snap := &CalibrationSnapshot{
		ID:               uuid.New(),
		PopulationSize:   table.PopulationSize,
		ObservationYears: table.ObservationYears,
		TotalExploits:    table.TotalExploits,
		Source:           source,
		CreatedAt:        time.Now().UTC(),
	}
	for _, c := range ReportOrder {
		est := table.Rate(c)
		snap.Rates = append(snap.Rates, SnapshotRate{
			SnapshotID:  snap.ID,
			Category:    c.String(),
			Count:       est.Count,
			Rate:        est.Rate,
			RatePercent: est.RatePercent,
			RateBps:     est.RateBps,
		})
	}
	return snap
}

// Table reconstructs the BaseRateTable this snapshot was taken from.
func (s *CalibrationSnapshot) Table() *BaseRateTable {
	table := &BaseRateTable{
		PopulationSize:   s.PopulationSize,
		ObservationYears: s.ObservationYears,
		TotalExploits:    s.TotalExploits,
		Rates:            make(map[Category]RateEstimate, len(s.Rates)),
	}
	for _, r := range s.Rates {
		table.Rates[Category(r.Category)] = RateEstimate{
			Count:       r.Count,
			Rate:        r.Rate,
			RatePercent: r.RatePercent,
			RateBps:     r.RateBps,
		}
	}
	return table
}
