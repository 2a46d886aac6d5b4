package analysisService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"station-guard/internal/entity"
)

func conditionFor(t *testing.T, report entity.ConditionReport, equipmentType string) entity.ConditionAssessment {
	t.Helper()
	for _, result := range report.Assessments {
		if result.EquipmentType == equipmentType {
			return result.Assessment
		}
	}
	t.Fatalf("no assessment for %s", equipmentType)
	return entity.ConditionAssessment{}
}

func TestAssessConditionCoversEveryRegisteredType(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		ImageWidth:  640,
		ImageHeight: 480,
		Detections: []entity.Detection{
			{Label: "fire_extinguisher", Confidence: 0.9},
		},
	}

	report := s.AssessCondition(context.Background(), frame)
	require.Len(t, report.Assessments, 7)

	observed := conditionFor(t, report, "fire_extinguisher")
	assert.Equal(t, 0.9, observed.ConditionScore)
	assert.Equal(t, []string{entity.FlagHighConfidence}, observed.ReliabilityFlags)
	assert.Equal(t, "Good", observed.ConditionIndicators.VisualClarity)
	assert.Equal(t, 1, observed.ConditionIndicators.ObservedQuantity)
	assert.False(t, observed.ConditionIndicators.SufficientQuantity)
	assert.Contains(t, observed.Recommendations, "Verify additional units are stocked")

	absent := conditionFor(t, report, "oxygen_tank")
	assert.Equal(t, 0.0, absent.ConditionScore)
	assert.Equal(t, []string{entity.FlagNoDetection}, absent.ReliabilityFlags)
	assert.Equal(t, "Not observed", absent.ConditionIndicators.VisualClarity)
	assert.Contains(t, absent.Recommendations,
		"Life support oxygen supply not observed - verify presence and visibility")

	assert.False(t, report.RequiresInspection)
}

func TestAssessConditionConfidenceTiers(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name       string
		confidence float64
		flag       string
		clarity    string
	}{
		{"high confidence", 0.85, entity.FlagHighConfidence, "Good"},
		{"medium confidence", 0.65, entity.FlagMediumConfidence, "Acceptable"},
		{"low confidence", 0.55, entity.FlagLowConfidence, "Poor"},
		{"very low confidence", 0.3, entity.FlagVeryLowConfidence, "Poor"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := entity.Frame{
				Detections: []entity.Detection{
					{Label: "fire_alarm", Confidence: tt.confidence},
				},
			}

			report := s.AssessCondition(context.Background(), frame)
			assessment := conditionFor(t, report, "fire_alarm")

			assert.Equal(t, tt.confidence, assessment.ConditionScore)
			assert.Contains(t, assessment.ReliabilityFlags, tt.flag)
			assert.Equal(t, tt.clarity, assessment.ConditionIndicators.VisualClarity)
		})
	}
}

func TestAssessConditionVeryLowTriggersInspection(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "safety_switch_panel", Confidence: 0.3},
		},
	}

	report := s.AssessCondition(context.Background(), frame)
	assert.True(t, report.RequiresInspection)
	assert.Contains(t, report.Recommendations,
		"Immediate manual inspection required - AI confidence extremely low")
}

func TestAssessConditionInconsistentDetections(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "oxygen_tank", Confidence: 0.9},
			{Label: "oxygen_tank", Confidence: 0.4},
		},
	}

	report := s.AssessCondition(context.Background(), frame)
	assessment := conditionFor(t, report, "oxygen_tank")

	// Population variance of {0.9, 0.4} is 0.0625, above the 0.03 threshold.
	assert.InDelta(t, 0.85, assessment.ConditionScore, 1e-9)
	assert.Contains(t, assessment.ReliabilityFlags, entity.FlagHighConfidence)
	assert.Contains(t, assessment.ReliabilityFlags, entity.FlagInconsistentDetections)
	assert.Contains(t, assessment.Recommendations,
		"Detections of this equipment disagree - review recent frames")
	assert.True(t, assessment.ConditionIndicators.SufficientQuantity)
}

func TestAssessConditionConsistentDetectionsNotPenalized(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "oxygen_tank", Confidence: 0.88},
			{Label: "oxygen_tank", Confidence: 0.9},
		},
	}

	report := s.AssessCondition(context.Background(), frame)
	assessment := conditionFor(t, report, "oxygen_tank")

	assert.Equal(t, 0.9, assessment.ConditionScore)
	assert.NotContains(t, assessment.ReliabilityFlags, entity.FlagInconsistentDetections)
}

func TestAssessConditionIgnoresUnregisteredLabels(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "coffee_machine", Confidence: 0.99},
		},
	}

	report := s.AssessCondition(context.Background(), frame)
	require.Len(t, report.Assessments, 7)
	for _, result := range report.Assessments {
		assert.Equal(t, 0, result.Assessment.ConditionIndicators.ObservedQuantity)
	}
}

func TestVariance(t *testing.T) {
	assert.InDelta(t, 0.0625, variance([]float64{0.9, 0.4}), 1e-9)
	assert.Equal(t, 0.0, variance([]float64{0.7, 0.7, 0.7}))
}
