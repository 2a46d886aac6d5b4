package analysisService

import (
	"fmt"

	"golang.org/x/net/context"

	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

// TriageLabels classifies every detection into accept/review tiers for the
// downstream human-in-the-loop labeling pipeline.
func (s *analysisService) TriageLabels(ctx context.Context, frame entity.Frame) entity.LabelingReport {
	p := s.params.Labeling

	report := entity.LabelingReport{
		AutoLabelSuggestions: make([]entity.LabelSuggestion, 0, len(frame.Detections)),
		ManualReviewRequired: make([]entity.LabelSuggestion, 0),
		QualityFlags:         make([]string, 0),
		LabelingPriority:     entity.LabelingPriorityLow,
	}

	seenFlags := make(map[string]bool)
	addFlag := func(flag string) {
		if !seenFlags[flag] {
			seenFlags[flag] = true
			report.QualityFlags = append(report.QualityFlags, flag)
		}
	}

	for i, d := range frame.Detections {
		suggestion := entity.LabelSuggestion{
			DetectionID: i,
			Label:       d.Label,
			Confidence:  d.Confidence,
			Reasons:     make([]string, 0, 2),
		}

		switch {
		case d.Confidence >= p.AutoAcceptAt:
			suggestion.Tier = entity.TierAutoAccept
			suggestion.Reasons = append(suggestion.Reasons, "high-confidence detection")
		case d.Confidence >= p.LowConfidenceBelow:
			suggestion.Tier = entity.TierNeedsReview
			suggestion.Reasons = append(suggestion.Reasons,
				"Medium confidence - manual verification recommended")
		default:
			suggestion.Tier = entity.TierNeedsReview
			suggestion.Reasons = append(suggestion.Reasons,
				"Low confidence - manual labeling required")
			addFlag(entity.FlagLowConfidenceDetection)
		}

		s.appendQualityChecks(&suggestion, d, addFlag)

		if suggestion.Tier == entity.TierAutoAccept {
			report.HighConfidenceCount++
			report.AutoLabelSuggestions = append(report.AutoLabelSuggestions, suggestion)
		} else {
			report.NeedsReviewCount++
			report.ManualReviewRequired = append(report.ManualReviewRequired, suggestion)
		}
	}

	if total := len(frame.Detections); total > 0 {
		reviewShare := float64(report.NeedsReviewCount) / float64(total)
		if reviewShare > p.HighPriorityShare {
			report.LabelingPriority = entity.LabelingPriorityHigh
		} else if reviewShare > p.MediumPriorityShare {
			report.LabelingPriority = entity.LabelingPriorityMedium
		}
	}

	log.WithRequestID(ctx).WithFields(log.Fields{
		"image_id":     frame.ImageID,
		"auto_accept":  report.HighConfidenceCount,
		"needs_review": report.NeedsReviewCount,
		"priority":     report.LabelingPriority,
	}).Debug("Labeling triage complete")

	return report
}

func (s *analysisService) appendQualityChecks(suggestion *entity.LabelSuggestion, d entity.Detection, addFlag func(string)) {
	p := s.params.Labeling

	w := d.BBox.Width()
	h := d.BBox.Height()
	if w <= 0 || h <= 0 {
		return
	}

	if w*h < p.MinDetectionArea {
		suggestion.Reasons = append(suggestion.Reasons,
			"Very small detection area - may be false positive")
		addFlag(fmt.Sprintf("Small detection area for %s", d.Label))
	}

	aspectRatio := w / h
	if aspectRatio < p.MinAspectRatio || aspectRatio > p.MaxAspectRatio {
		suggestion.Reasons = append(suggestion.Reasons,
			"Unusual aspect ratio - verify bounding box accuracy")
		addFlag(fmt.Sprintf("Unusual aspect ratio for %s", d.Label))
	}
}
