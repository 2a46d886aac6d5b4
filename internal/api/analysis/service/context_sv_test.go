package analysisService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"station-guard/internal/entity"
)

func TestInferContextEmptyFrame(t *testing.T) {
	s := newTestService()

	report := s.InferContext(context.Background(), entity.Frame{ImageID: "img-1"})

	assert.Equal(t, "unknown", report.ModulePrediction.Prediction)
	assert.Equal(t, 0.0, report.ModulePrediction.Confidence)
	assert.Equal(t, "Insufficient context for module prediction", report.ModulePrediction.Reasoning)

	assert.Equal(t, entity.SafetyStatusInsufficient, report.SafetyAssessment.SafetyStatus)
	assert.Equal(t, 0.0, report.SafetyAssessment.SafetyCoverage)
	assert.Equal(t, []string{
		"fire_alarm",
		"fire_extinguisher",
		"oxygen_tank",
		"safety_switch_panel",
	}, report.SafetyAssessment.MissingCriticalEquipment)

	assert.Equal(t, "NO_DETECTIONS", report.ConfidenceAssessment.Level)
	assert.Equal(t, "Cannot assess", report.ConfidenceAssessment.Reliability)
	assert.Equal(t, 0.0, report.ConfidenceAssessment.Score)

	assert.Equal(t, "Low", report.ContextAnalysis.EquipmentContext.EquipmentDensity)
	assert.Contains(t, report.Recommendations,
		"Critical safety equipment missing or undetected - immediate inspection required")
	assert.Contains(t, report.Recommendations,
		"Low equipment density detected - ensure all required equipment is present in this area")
}

func TestInferContextFullCriticalCoverage(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "fire_extinguisher", Confidence: 0.9},
			{Label: "fire_alarm", Confidence: 0.9},
			{Label: "oxygen_tank", Confidence: 0.9},
			{Label: "safety_switch_panel", Confidence: 0.9},
		},
	}

	report := s.InferContext(context.Background(), frame)

	assert.Equal(t, entity.SafetyStatusGood, report.SafetyAssessment.SafetyStatus)
	assert.Equal(t, 1.0, report.SafetyAssessment.SafetyCoverage)
	assert.Empty(t, report.SafetyAssessment.MissingCriticalEquipment)

	// fire_extinguisher and fire_alarm together put harmony ahead.
	assert.Equal(t, "harmony", report.ModulePrediction.Prediction)
	assert.InDelta(t, 0.8/2.5, report.ModulePrediction.Confidence, 1e-9)
	assert.Equal(t, "Based on detected equipment: fire_alarm, fire_extinguisher",
		report.ModulePrediction.Reasoning)

	assert.Equal(t, "HIGH", report.ConfidenceAssessment.Level)
	assert.Equal(t, 4, report.ConfidenceAssessment.ConfidenceDistribution.High)
	assert.Equal(t, "Medium", report.ContextAnalysis.EquipmentContext.EquipmentDensity)

	assert.Contains(t, report.Recommendations,
		"Equipment configuration suggests HARMONY module - verify module-specific safety protocols")
}

func TestInferContextLowConfidenceExcludedFromCoverage(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "oxygen_tank", Confidence: 0.4},
			{Label: "fire_extinguisher", Confidence: 0.9},
		},
	}

	report := s.InferContext(context.Background(), frame)

	assert.InDelta(t, 0.25, report.SafetyAssessment.SafetyCoverage, 1e-9)
	assert.Equal(t, entity.SafetyStatusInsufficient, report.SafetyAssessment.SafetyStatus)
	assert.Contains(t, report.SafetyAssessment.MissingCriticalEquipment, "oxygen_tank")
	assert.NotContains(t, report.SafetyAssessment.MissingCriticalEquipment, "fire_extinguisher")
}

func TestInferContextModuleVotesOncePerType(t *testing.T) {
	s := newTestService()

	// Three oxygen tanks count as one tranquility vote.
	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "oxygen_tank", Confidence: 0.9},
			{Label: "oxygen_tank", Confidence: 0.9},
			{Label: "oxygen_tank", Confidence: 0.9},
		},
	}

	report := s.InferContext(context.Background(), frame)

	assert.Equal(t, "tranquility", report.ModulePrediction.Prediction)
	assert.InDelta(t, 0.5/0.7, report.ModulePrediction.Confidence, 1e-9)
	assert.Equal(t, "Based on detected equipment: oxygen_tank", report.ModulePrediction.Reasoning)
}

func TestInferContextConfidenceLevels(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name        string
		confidences []float64
		level       string
	}{
		{"all high", []float64{0.9, 0.85}, "HIGH"},
		{"high average dragged by one low", []float64{0.95, 0.95, 0.3}, "MEDIUM"},
		{"mostly low", []float64{0.4, 0.3, 0.45}, "LOW"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frame := entity.Frame{}
			for _, c := range tt.confidences {
				frame.Detections = append(frame.Detections, entity.Detection{
					Label:      "fire_extinguisher",
					Confidence: c,
				})
			}

			report := s.InferContext(context.Background(), frame)
			assert.Equal(t, tt.level, report.ConfidenceAssessment.Level)
		})
	}
}

func TestInferContextDensityBuckets(t *testing.T) {
	s := newTestService()

	makeFrame := func(n int) entity.Frame {
		frame := entity.Frame{}
		for i := 0; i < n; i++ {
			frame.Detections = append(frame.Detections, entity.Detection{
				Label:      "fire_alarm",
				Confidence: 0.9,
			})
		}
		return frame
	}

	low := s.InferContext(context.Background(), makeFrame(2))
	assert.Equal(t, "Low", low.ContextAnalysis.EquipmentContext.EquipmentDensity)

	medium := s.InferContext(context.Background(), makeFrame(4))
	assert.Equal(t, "Medium", medium.ContextAnalysis.EquipmentContext.EquipmentDensity)

	high := s.InferContext(context.Background(), makeFrame(6))
	assert.Equal(t, "High", high.ContextAnalysis.EquipmentContext.EquipmentDensity)
}

func TestInferContextDeterministicTieBreak(t *testing.T) {
	s := newTestService()
	s.params.Context.ModuleVotes = map[string]map[string]float64{
		"fire_extinguisher": {"zarya": 0.4, "destiny": 0.4},
	}

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "fire_extinguisher", Confidence: 0.9},
		},
	}

	for i := 0; i < 5; i++ {
		report := s.InferContext(context.Background(), frame)
		assert.Equal(t, "destiny", report.ModulePrediction.Prediction)
	}
}

func TestInferContextAdequateCoverage(t *testing.T) {
	s := newTestService()

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "fire_extinguisher", Confidence: 0.9},
			{Label: "fire_alarm", Confidence: 0.9},
			{Label: "oxygen_tank", Confidence: 0.9},
		},
	}

	report := s.InferContext(context.Background(), frame)

	require.InDelta(t, 0.75, report.SafetyAssessment.SafetyCoverage, 1e-9)
	assert.Equal(t, entity.SafetyStatusAdequate, report.SafetyAssessment.SafetyStatus)
	assert.Contains(t, report.Recommendations,
		"Safety equipment coverage is adequate but could be improved")
}
