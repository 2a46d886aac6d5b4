package analysisService

import (
	"golang.org/x/net/context"

	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

// AnalyzePositioning scores placement quality and accessibility for every
// detection in the frame. A malformed bounding box degrades to a flagged
// zero-score result instead of failing the batch.
func (s *analysisService) AnalyzePositioning(ctx context.Context, frame entity.Frame) []entity.PositioningResult {
	results := make([]entity.PositioningResult, 0, len(frame.Detections))

	for _, d := range frame.Detections {
		results = append(results, entity.PositioningResult{
			Detection: entity.DetectionRef{
				Label:      d.Label,
				Confidence: d.Confidence,
			},
			Analysis: s.analyzePlacement(d),
		})
	}

	log.WithRequestID(ctx).WithFields(log.Fields{
		"image_id":   frame.ImageID,
		"detections": len(results),
	}).Debug("Positioning analysis complete")

	return results
}

func (s *analysisService) analyzePlacement(d entity.Detection) entity.PositioningAssessment {
	p := s.params.Positioning

	if !d.BBox.Valid(d.ImageWidth, d.ImageHeight) {
		return entity.PositioningAssessment{
			PlacementScore: 0,
			Accessibility: entity.Accessibility{
				EdgeDistance:          0,
				HeightAppropriateness: 0,
				Assessment:            entity.AssessmentPoor,
			},
			Flags:           []string{entity.FlagInvalidBBox},
			Recommendations: []string{"Bounding box data invalid - rerun detection for this item"},
		}
	}

	width := float64(d.ImageWidth)
	height := float64(d.ImageHeight)

	x1 := d.BBox.X1 / width
	y1 := d.BBox.Y1 / height
	x2 := d.BBox.X2 / width
	y2 := d.BBox.Y2 / height

	edgeDistance := minFloat(x1, y1, 1-x2, 1-y2)
	edgeScore := clamp01(edgeDistance / p.EdgeMargin)

	centerY := (y1 + y2) / 2
	heightScore := s.heightAppropriateness(centerY)

	placementScore := (edgeScore + heightScore) / 2

	assessment := entity.AssessmentPoor
	if placementScore > p.GoodAbove {
		assessment = entity.AssessmentGood
	} else if placementScore > p.FairAbove {
		assessment = entity.AssessmentNeedsImprovement
	}

	flags := make([]string, 0, 2)
	recommendations := make([]string, 0, 2)

	if edgeScore < p.EdgeFlagBelow {
		flags = append(flags, entity.FlagTooCloseToEdge)
		recommendations = append(recommendations,
			"Equipment too close to image edge - may indicate poor mounting location")
	}

	if heightScore < p.HeightFlagBelow {
		flags = append(flags, entity.FlagPoorHeightPlacement)
		if centerY < p.ReachBandLow {
			recommendations = append(recommendations,
				"Equipment positioned too high - consider lowering for better crew access")
		} else {
			recommendations = append(recommendations,
				"Equipment positioned too low - may be difficult to access in microgravity")
		}
	}

	return entity.PositioningAssessment{
		PlacementScore: placementScore,
		Accessibility: entity.Accessibility{
			EdgeDistance:          edgeScore,
			HeightAppropriateness: heightScore,
			Assessment:            assessment,
		},
		Flags:           flags,
		Recommendations: recommendations,
	}
}

// heightAppropriateness scores the vertical center against the reachable
// band, decaying linearly to zero at the frame top and bottom.
func (s *analysisService) heightAppropriateness(centerY float64) float64 {
	p := s.params.Positioning

	switch {
	case centerY >= p.ReachBandLow && centerY <= p.ReachBandHigh:
		return 1.0
	case centerY < p.ReachBandLow:
		return clamp01(centerY / p.ReachBandLow)
	default:
		return clamp01((1 - centerY) / (1 - p.ReachBandHigh))
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minFloat(values ...float64) float64 {
	min := values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}
