package analysisService

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/context"

	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

// InferContext predicts the likely station module from the equipment mix and
// computes safety coverage statistics for the frame.
func (s *analysisService) InferContext(ctx context.Context, frame entity.Frame) entity.ContextReport {
	report := entity.ContextReport{
		ModulePrediction:     s.predictModule(frame),
		SafetyAssessment:     s.assessSafetyCoverage(frame),
		ContextAnalysis:      entity.ContextAnalysis{EquipmentContext: s.equipmentContext(frame)},
		ConfidenceAssessment: s.assessConfidence(frame),
	}
	report.Recommendations = s.contextualRecommendations(report)

	log.WithRequestID(ctx).WithFields(log.Fields{
		"image_id":        frame.ImageID,
		"module":          report.ModulePrediction.Prediction,
		"safety_status":   report.SafetyAssessment.SafetyStatus,
		"safety_coverage": report.SafetyAssessment.SafetyCoverage,
	}).Debug("Context inference complete")

	return report
}

func (s *analysisService) predictModule(frame entity.Frame) entity.ModulePrediction {
	p := s.params.Context

	// Each distinct equipment type votes once regardless of count.
	present := make(map[string]bool)
	for _, d := range frame.Detections {
		present[d.Label] = true
	}

	scores := make(map[string]float64)
	contributorsByModule := make(map[string][]string)
	total := 0.0

	types := make([]string, 0, len(present))
	for t := range present {
		types = append(types, t)
	}
	sort.Strings(types)

	for _, equipmentType := range types {
		for module, weight := range p.ModuleVotes[equipmentType] {
			scores[module] += weight
			contributorsByModule[module] = append(contributorsByModule[module], equipmentType)
			total += weight
		}
	}

	if len(scores) == 0 {
		return entity.ModulePrediction{
			Prediction: "unknown",
			Confidence: 0,
			Reasoning:  "Insufficient context for module prediction",
		}
	}

	modules := make([]string, 0, len(scores))
	for m := range scores {
		modules = append(modules, m)
	}
	sort.Strings(modules)

	best := modules[0]
	for _, m := range modules[1:] {
		if scores[m] > scores[best] {
			best = m
		}
	}

	contributors := contributorsByModule[best]
	sort.Strings(contributors)

	return entity.ModulePrediction{
		Prediction: best,
		Confidence: scores[best] / total,
		Reasoning:  fmt.Sprintf("Based on detected equipment: %s", strings.Join(contributors, ", ")),
	}
}

func (s *analysisService) assessSafetyCoverage(frame entity.Frame) entity.SafetyCoverage {
	p := s.params.Context

	criticalTypes := s.registry.CriticalTypes()
	detected := make(map[string]bool)
	for _, d := range frame.Detections {
		if d.Confidence < p.MinCoverageConfidence {
			continue
		}
		if cfg, ok := s.registry.Lookup(d.Label); ok && cfg.Criticality == entity.CriticalityCritical {
			detected[d.Label] = true
		}
	}

	coverage := 0.0
	if len(criticalTypes) > 0 {
		coverage = float64(len(detected)) / float64(len(criticalTypes))
	}

	status := entity.SafetyStatusInsufficient
	if coverage >= p.GoodCoverage {
		status = entity.SafetyStatusGood
	} else if coverage >= p.AdequateCoverage {
		status = entity.SafetyStatusAdequate
	}

	missing := make([]string, 0)
	for _, t := range criticalTypes {
		if !detected[t] {
			missing = append(missing, t)
		}
	}

	return entity.SafetyCoverage{
		SafetyStatus:             status,
		SafetyCoverage:           coverage,
		MissingCriticalEquipment: missing,
	}
}

func (s *analysisService) equipmentContext(frame entity.Frame) entity.EquipmentContext {
	p := s.params.Context

	distinct := make(map[string]bool)
	totalConfidence := 0.0
	for _, d := range frame.Detections {
		distinct[d.Label] = true
		totalConfidence += d.Confidence
	}

	avg := 0.0
	if len(frame.Detections) > 0 {
		avg = totalConfidence / float64(len(frame.Detections))
	}

	density := "Low"
	if len(frame.Detections) > p.HighDensityAbove {
		density = "High"
	} else if len(frame.Detections) > p.MediumDensityAbove {
		density = "Medium"
	}

	return entity.EquipmentContext{
		TotalDetections:   len(frame.Detections),
		EquipmentTypes:    len(distinct),
		AverageConfidence: avg,
		EquipmentDensity:  density,
	}
}

func (s *analysisService) assessConfidence(frame entity.Frame) entity.ConfidenceAssessment {
	p := s.params.Context

	if len(frame.Detections) == 0 {
		return entity.ConfidenceAssessment{
			Level:       "NO_DETECTIONS",
			Reliability: "Cannot assess",
			Score:       0,
		}
	}

	var dist entity.ConfidenceDistribution
	sum := 0.0
	min := frame.Detections[0].Confidence
	for _, d := range frame.Detections {
		sum += d.Confidence
		if d.Confidence < min {
			min = d.Confidence
		}

		switch {
		case d.Confidence >= p.HighConfidence:
			dist.High++
		case d.Confidence >= p.MediumConfidence:
			dist.Medium++
		default:
			dist.Low++
		}
	}
	avg := sum / float64(len(frame.Detections))

	var level, reliability string
	switch {
	case avg >= p.HighConfidence && min >= 0.6:
		level = "HIGH"
		reliability = "Reliable detections - high confidence in results"
	case avg >= 0.6 && dist.Low <= 1:
		level = "MEDIUM"
		reliability = "Moderately reliable - some detections may need verification"
	default:
		level = "LOW"
		reliability = "Low reliability - manual verification strongly recommended"
	}

	return entity.ConfidenceAssessment{
		Level:                  level,
		Reliability:            reliability,
		Score:                  avg,
		ConfidenceDistribution: dist,
	}
}

func (s *analysisService) contextualRecommendations(report entity.ContextReport) []string {
	recommendations := make([]string, 0, 4)

	switch report.ConfidenceAssessment.Level {
	case "LOW":
		recommendations = append(recommendations,
			"Overall detection confidence is low - conduct manual equipment verification")
	case "MEDIUM":
		recommendations = append(recommendations,
			"Some detections have medium confidence - verify critical equipment visually")
	}

	switch report.SafetyAssessment.SafetyStatus {
	case entity.SafetyStatusInsufficient:
		recommendations = append(recommendations,
			"Critical safety equipment missing or undetected - immediate inspection required")
	case entity.SafetyStatusAdequate:
		recommendations = append(recommendations,
			"Safety equipment coverage is adequate but could be improved")
	}

	if report.ModulePrediction.Prediction != "unknown" {
		recommendations = append(recommendations, fmt.Sprintf(
			"Equipment configuration suggests %s module - verify module-specific safety protocols",
			strings.ToUpper(report.ModulePrediction.Prediction)))
	}

	if report.ContextAnalysis.EquipmentContext.EquipmentDensity == "Low" {
		recommendations = append(recommendations,
			"Low equipment density detected - ensure all required equipment is present in this area")
	}

	return recommendations
}
