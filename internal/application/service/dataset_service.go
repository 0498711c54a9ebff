// Package service implements the application use-cases of the calibration
// pipeline: dataset processing, base-rate estimation and risk combination.
package service

import (
	"context"
	"strings"

	"github.com/vaultrisk/calibration/internal/domain/models"
	domainservice "github.com/vaultrisk/calibration/internal/domain/service"
	"github.com/vaultrisk/calibration/pkg/constants"
	"github.com/vaultrisk/calibration/pkg/logger"
)

// DefaultCeFiKeywords flags centralized-exchange and custodian incidents.
// Pure custodial breaches are a different risk class and must not contaminate
// the base-rate denominator, which covers on-chain/DeFi root causes only.
var DefaultCeFiKeywords = []string{
	"cex",
	"centralized exchange",
	"custodial",
	"custodian",
	"exchange insolvency",
	"exchange breach",
	"withdrawal halt",
}

// DatasetService turns raw rows into a labeled dataset. In raw mode it first
// applies, in order, the de-minimis filter, the CeFi exclusion filter and
// deduplication; classification always runs last, on surviving rows only.
type DatasetService struct {
	classifier   *domainservice.Classifier
	cefiKeywords []string
	log          logger.Logger
}

// NewDatasetService creates a DatasetService with the default CeFi keyword
// list.
func NewDatasetService(classifier *domainservice.Classifier, log logger.Logger) *DatasetService {
	return NewDatasetServiceWithCeFiKeywords(classifier, DefaultCeFiKeywords, log)
}

// NewDatasetServiceWithCeFiKeywords creates a DatasetService with an explicit
// CeFi keyword list. The list is fixed configuration; it is not mutated after
// construction.
func NewDatasetServiceWithCeFiKeywords(classifier *domainservice.Classifier, cefiKeywords []string, log logger.Logger) *DatasetService {
	return &DatasetService{
		classifier:   classifier,
		cefiKeywords: cefiKeywords,
		log:          log.WithComponent(constants.ComponentDataset),
	}
}

// Process normalizes, optionally filters, and classifies the given rows.
//
// With rawMode false (pre-cleaned input, the default) every row yields one
// record and only classification runs. With rawMode true the de-minimis,
// CeFi-exclusion and dedup filters run first, in that order, so dedup only
// compares in-scope candidates.
func (s *DatasetService) Process(ctx context.Context, rows []models.RawRow, rawMode bool) []models.ExploitRecord {
	records := make([]models.ExploitRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, models.NewExploitRecord(row))
	}

	if rawMode {
		records = s.filterDeMinimis(ctx, records)
		records = s.filterCeFi(ctx, records)
		records = s.deduplicate(ctx, records)
	}

	for i := range records {
		records[i].SetPrimitive(s.classifier.Classify(records[i].Technique, records[i].TargetType))
	}

	s.log.Info(ctx, "dataset processed", logger.Fields{
		"rows_in":  len(rows),
		"rows_out": len(records),
		"raw_mode": rawMode,
	})

	return records
}

// filterDeMinimis drops records with a resolved loss below the materiality
// threshold. The boundary is inclusive on the keep side.
func (s *DatasetService) filterDeMinimis(ctx context.Context, records []models.ExploitRecord) []models.ExploitRecord {
	kept := records[:0]
	dropped := 0
	for _, r := range records {
		if r.AmountUSD < constants.DeMinimisUSD {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	s.log.Debug(ctx, "de-minimis filter applied", logger.Fields{"dropped": dropped})
	return kept
}

// filterCeFi drops records whose combined name, technique and target-type
// text mentions a centralized-custody keyword.
func (s *DatasetService) filterCeFi(ctx context.Context, records []models.ExploitRecord) []models.ExploitRecord {
	kept := records[:0]
	dropped := 0
	for _, r := range records {
		text := strings.ToLower(r.Name + " " + r.Technique + " " + r.TargetType)
		if s.matchesCeFi(text) {
			dropped++
			continue
		}
		kept = append(kept, r)
	}
	s.log.Debug(ctx, "cefi exclusion filter applied", logger.Fields{"dropped": dropped})
	return kept
}

func (s *DatasetService) matchesCeFi(text string) bool {
	for _, kw := range s.cefiKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// deduplicate collapses rows sharing a (lower-cased trimmed name, date) key,
// keeping the row with the strictly larger resolved amount. On exactly equal
// amounts the first-seen row survives; that tie-break is implementation-
// defined, not a guaranteed ordering contract. Output preserves first-seen
// order of the surviving keys.
func (s *DatasetService) deduplicate(ctx context.Context, records []models.ExploitRecord) []models.ExploitRecord {
	index := make(map[string]int, len(records))
	kept := make([]models.ExploitRecord, 0, len(records))
	for _, r := range records {
		key := r.DedupKey()
		if i, seen := index[key]; seen {
			if r.AmountUSD > kept[i].AmountUSD {
				kept[i] = r
			}
			continue
		}
		index[key] = len(kept)
		kept = append(kept, r)
	}
	s.log.Debug(ctx, "deduplication applied", logger.Fields{"collapsed": len(records) - len(kept)})
	return kept
}

// Summarize aggregates a labeled dataset into per-category counts, count
// shares, loss totals and loss shares.
func (s *DatasetService) Summarize(records []models.ExploitRecord) models.CategorySummary {
	summary := models.CategorySummary{
		Stats: make(map[models.Category]models.CategoryStat, len(models.ReportOrder)),
	}

	counts := make(map[models.Category]int)
	losses := make(map[models.Category]float64)
	for _, r := range records {
		counts[r.Primitive]++
		losses[r.Primitive] += r.AmountUSD
		summary.TotalCount++
		summary.TotalLossUSD += r.AmountUSD
	}

	for _, c := range models.ReportOrder {
		stat := models.CategoryStat{
			Count:   counts[c],
			LossUSD: losses[c],
		}
		if summary.TotalCount > 0 {
			stat.CountShare = float64(stat.Count) / float64(summary.TotalCount)
		}
		if summary.TotalLossUSD > 0 {
			stat.LossShare = stat.LossUSD / summary.TotalLossUSD
		}
		summary.Stats[c] = stat
	}

	return summary
}
