package safetyService

import (
	"math"
	"sort"

	"golang.org/x/net/context"

	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

// BuildSafetyReport combines per-type condition assessments and context
// coverage into the aggregate safety report.
func (s *safetyService) BuildSafetyReport(condition entity.ConditionReport, contextReport entity.ContextReport) (entity.SafetyReport, entity.ReportSummary) {
	conditionByType := make(map[string]entity.ConditionAssessment, len(condition.Assessments))
	for _, result := range condition.Assessments {
		conditionByType[result.EquipmentType] = result.Assessment
	}

	report := entity.SafetyReport{
		EquipmentStatus:          make(map[string]entity.EquipmentStatus, s.registry.Len()),
		MissingCriticalEquipment: make([]string, 0),
	}

	weightedSum := 0.0
	weightTotal := 0.0
	anyMissing := false

	for _, equipmentType := range s.registry.Types() {
		cfg, _ := s.registry.Lookup(equipmentType)
		assessment := conditionByType[equipmentType]

		status := s.deriveStatus(cfg, assessment)
		detectionRate := math.Min(1,
			float64(assessment.ConditionIndicators.ObservedQuantity)/float64(cfg.RequiredQuantity))

		report.EquipmentStatus[equipmentType] = entity.EquipmentStatus{
			Status:        status,
			DetectionRate: detectionRate,
		}

		if status == entity.EquipmentMissing {
			anyMissing = true
			if cfg.Criticality == entity.CriticalityCritical {
				report.MissingCriticalEquipment = append(report.MissingCriticalEquipment, equipmentType)
			}
		}

		if cfg.Criticality == entity.CriticalityCritical &&
			(status == entity.EquipmentMissing || status == entity.EquipmentCritical) {
			report.CriticalItems++
		}

		weight := cfg.Criticality.Weight()
		weightedSum += weight * assessment.ConditionScore
		weightTotal += weight
	}

	if weightTotal > 0 {
		report.OverallSafetyScore = int(math.Round(100 * weightedSum / weightTotal))
	}

	report.Recommendations = s.reportRecommendations(condition, contextReport, anyMissing, report.CriticalItems)

	summary := entity.ReportSummary{
		CriticalItems:        report.CriticalItems,
		TotalRecommendations: len(report.Recommendations),
	}

	return report, summary
}

func (s *safetyService) deriveStatus(cfg entity.EquipmentConfig, assessment entity.ConditionAssessment) entity.EquipmentState {
	if assessment.ConditionIndicators.ObservedQuantity == 0 {
		return entity.EquipmentMissing
	}

	score := assessment.ConditionScore
	switch {
	case cfg.Criticality == entity.CriticalityCritical && score < 0.5:
		return entity.EquipmentCritical
	case score >= 0.5 && score < 0.7:
		return entity.EquipmentConcerning
	case score < 0.5:
		return entity.EquipmentNeedsReview
	default:
		return entity.EquipmentAvailable
	}
}

// reportRecommendations merges per-type condition recommendations and the
// contextual ones, deduplicated and ordered by the criticality of the
// contributing equipment.
func (s *safetyService) reportRecommendations(condition entity.ConditionReport, contextReport entity.ContextReport, anyMissing bool, criticalItems int) []string {
	recommendations := make([]string, 0, 8)
	seen := make(map[string]bool)

	add := func(rec string) {
		if rec != "" && !seen[rec] {
			seen[rec] = true
			recommendations = append(recommendations, rec)
		}
	}

	if criticalItems > 0 {
		add("IMMEDIATE: Locate and verify critical safety equipment")
	}
	if anyMissing {
		add("PRIORITY: Conduct equipment inventory check")
	}

	ordered := make([]entity.ConditionResult, len(condition.Assessments))
	copy(ordered, condition.Assessments)
	sort.SliceStable(ordered, func(i, j int) bool {
		ci, _ := s.registry.Lookup(ordered[i].EquipmentType)
		cj, _ := s.registry.Lookup(ordered[j].EquipmentType)
		if ci.Criticality.Rank() != cj.Criticality.Rank() {
			return ci.Criticality.Rank() < cj.Criticality.Rank()
		}
		return ordered[i].EquipmentType < ordered[j].EquipmentType
	})

	for _, result := range ordered {
		for _, rec := range result.Assessment.Recommendations {
			add(rec)
		}
	}

	for _, rec := range contextReport.Recommendations {
		add(rec)
	}

	return recommendations
}

// GetLatestAssessment serves the most recent report, preferring the Redis
// cache and falling back to the database when the cache is cold.
func (s *safetyService) GetLatestAssessment(ctx context.Context) (*entity.FrameAssessment, error) {
	if cached, err := s.redis.GetLatestReport(ctx); err == nil && cached != nil {
		var assessment entity.FrameAssessment
		if err := deterministicJSON.Unmarshal(cached, &assessment); err == nil {
			return &assessment, nil
		}
		log.WithRequestID(ctx).Warn("Cached report payload unreadable, falling back to database")
	}

	client, err := s.safetyRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	record, err := client.Report.GetLatestAssessment(ctx)
	if err != nil {
		return nil, err
	}

	var assessment entity.FrameAssessment
	if err := deterministicJSON.Unmarshal(record.Payload, &assessment); err != nil {
		return nil, err
	}

	return &assessment, nil
}
