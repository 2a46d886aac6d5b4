package analysisService

import (
	"fmt"

	"golang.org/x/net/context"

	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

// AssessCondition aggregates detections per registered equipment type into a
// condition judgment. Types absent from the frame still get an entry, and
// labels outside the registry are skipped here entirely.
func (s *analysisService) AssessCondition(ctx context.Context, frame entity.Frame) entity.ConditionReport {
	confidencesByType := make(map[string][]float64, s.registry.Len())
	for _, d := range frame.Detections {
		if _, ok := s.registry.Lookup(d.Label); ok {
			confidencesByType[d.Label] = append(confidencesByType[d.Label], d.Confidence)
		}
	}

	report := entity.ConditionReport{
		Assessments: make([]entity.ConditionResult, 0, s.registry.Len()),
	}

	seen := make(map[string]bool)
	for _, equipmentType := range s.registry.Types() {
		cfg, _ := s.registry.Lookup(equipmentType)
		assessment := s.assessType(cfg, confidencesByType[equipmentType])

		report.Assessments = append(report.Assessments, entity.ConditionResult{
			EquipmentType: equipmentType,
			Assessment:    assessment,
		})

		for _, flag := range assessment.ReliabilityFlags {
			if flag == entity.FlagVeryLowConfidence {
				report.RequiresInspection = true
			}
		}

		for _, rec := range assessment.Recommendations {
			if !seen[rec] {
				seen[rec] = true
				report.Recommendations = append(report.Recommendations, rec)
			}
		}
	}

	log.WithRequestID(ctx).WithFields(log.Fields{
		"image_id":            frame.ImageID,
		"requires_inspection": report.RequiresInspection,
	}).Debug("Condition assessment complete")

	return report
}

func (s *analysisService) assessType(cfg entity.EquipmentConfig, confidences []float64) entity.ConditionAssessment {
	p := s.params.Condition

	if len(confidences) == 0 {
		return entity.ConditionAssessment{
			ConditionScore:   0,
			ReliabilityFlags: []string{entity.FlagNoDetection},
			ConditionIndicators: entity.ConditionIndicators{
				SufficientQuantity: false,
				ObservedQuantity:   0,
				VisualClarity:      "Not observed",
			},
			Recommendations: []string{
				fmt.Sprintf("%s not observed - verify presence and visibility", cfg.Description),
			},
		}
	}

	// One clear sighting outweighs several ambiguous ones.
	best := confidences[0]
	for _, c := range confidences[1:] {
		if c > best {
			best = c
		}
	}

	score := best
	flags := make([]string, 0, 2)
	recommendations := make([]string, 0, 2)
	var clarity string

	switch {
	case best >= p.HighConfidence:
		flags = append(flags, entity.FlagHighConfidence)
		clarity = "Good"
	case best >= p.MediumConfidence:
		flags = append(flags, entity.FlagMediumConfidence)
		clarity = "Acceptable"
		recommendations = append(recommendations,
			"Visual confirmation suggested - moderate AI confidence")
	case best >= p.LowConfidence:
		flags = append(flags, entity.FlagLowConfidence)
		clarity = "Poor"
		recommendations = append(recommendations,
			"Manual verification recommended - AI confidence low")
	default:
		flags = append(flags, entity.FlagVeryLowConfidence)
		clarity = "Poor"
		recommendations = append(recommendations,
			"Immediate manual inspection required - AI confidence extremely low")
	}

	if len(confidences) > 1 && variance(confidences) > p.ConsistencyVariance {
		score = clamp01(score - p.ConsistencyPenalty)
		flags = append(flags, entity.FlagInconsistentDetections)
		recommendations = append(recommendations,
			"Detections of this equipment disagree - review recent frames")
	}

	sufficient := len(confidences) >= cfg.RequiredQuantity
	if !sufficient {
		recommendations = append(recommendations, "Verify additional units are stocked")
	}

	return entity.ConditionAssessment{
		ConditionScore:   score,
		ReliabilityFlags: flags,
		ConditionIndicators: entity.ConditionIndicators{
			SufficientQuantity: sufficient,
			ObservedQuantity:   len(confidences),
			VisualClarity:      clarity,
		},
		Recommendations: recommendations,
	}
}

// variance is the population variance of the observed confidences.
func variance(values []float64) float64 {
	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(len(values))

	sum := 0.0
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}
