package safetyService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-guard/internal/entity"
)

func TestBuildSafetyReportAllMissing(t *testing.T) {
	s := newTestService()

	report, summary := s.BuildSafetyReport(entity.ConditionReport{}, entity.ContextReport{})

	require.Len(t, report.EquipmentStatus, 7)
	for equipmentType, status := range report.EquipmentStatus {
		assert.Equal(t, entity.EquipmentMissing, status.Status, equipmentType)
		assert.Equal(t, 0.0, status.DetectionRate, equipmentType)
	}

	assert.Equal(t, 0, report.OverallSafetyScore)
	assert.Equal(t, 4, report.CriticalItems)
	assert.Equal(t, []string{
		"fire_alarm",
		"fire_extinguisher",
		"oxygen_tank",
		"safety_switch_panel",
	}, report.MissingCriticalEquipment)

	require.NotEmpty(t, report.Recommendations)
	assert.Equal(t, "IMMEDIATE: Locate and verify critical safety equipment", report.Recommendations[0])
	assert.Equal(t, "PRIORITY: Conduct equipment inventory check", report.Recommendations[1])

	assert.Equal(t, 4, summary.CriticalItems)
	assert.Equal(t, len(report.Recommendations), summary.TotalRecommendations)
}

func TestBuildSafetyReportAllAvailable(t *testing.T) {
	s := newTestService()

	condition := fullCondition(s.registry, 0.9)
	report, summary := s.BuildSafetyReport(condition, entity.ContextReport{})

	for equipmentType, status := range report.EquipmentStatus {
		assert.Equal(t, entity.EquipmentAvailable, status.Status, equipmentType)
		assert.Equal(t, 1.0, status.DetectionRate, equipmentType)
	}

	assert.Equal(t, 90, report.OverallSafetyScore)
	assert.Equal(t, 0, report.CriticalItems)
	assert.Empty(t, report.MissingCriticalEquipment)
	assert.Equal(t, 0, summary.CriticalItems)
}

func TestBuildSafetyReportStatusBuckets(t *testing.T) {
	s := newTestService()

	condition := entity.ConditionReport{
		Assessments: []entity.ConditionResult{
			{EquipmentType: "oxygen_tank", Assessment: observed(0.4, 1)},
			{EquipmentType: "nitrogen_tank", Assessment: observed(0.4, 1)},
			{EquipmentType: "first_aid_box", Assessment: observed(0.6, 2)},
			{EquipmentType: "emergency_phone", Assessment: observed(0.75, 3)},
		},
	}

	report, _ := s.BuildSafetyReport(condition, entity.ContextReport{})

	assert.Equal(t, entity.EquipmentCritical, report.EquipmentStatus["oxygen_tank"].Status)
	assert.Equal(t, entity.EquipmentNeedsReview, report.EquipmentStatus["nitrogen_tank"].Status)
	assert.Equal(t, entity.EquipmentConcerning, report.EquipmentStatus["first_aid_box"].Status)
	assert.Equal(t, entity.EquipmentAvailable, report.EquipmentStatus["emergency_phone"].Status)
	assert.Equal(t, entity.EquipmentMissing, report.EquipmentStatus["fire_extinguisher"].Status)

	// oxygen_tank counts as a critical item even though it is not missing,
	// alongside the three missing critical types.
	assert.Equal(t, 4, report.CriticalItems)
	assert.NotContains(t, report.MissingCriticalEquipment, "oxygen_tank")
}

func TestBuildSafetyReportWeightsByCriticality(t *testing.T) {
	s := newTestService()

	condition := entity.ConditionReport{}
	for _, equipmentType := range s.registry.CriticalTypes() {
		cfg, _ := s.registry.Lookup(equipmentType)
		condition.Assessments = append(condition.Assessments, entity.ConditionResult{
			EquipmentType: equipmentType,
			Assessment:    observed(1.0, cfg.RequiredQuantity),
		})
	}

	report, _ := s.BuildSafetyReport(condition, entity.ContextReport{})

	// Four critical types at weight 3 and full score, three high types at
	// weight 2 and zero: 12 / 18 rounds to 67.
	assert.Equal(t, 67, report.OverallSafetyScore)
}

func TestBuildSafetyReportScoreMonotonicity(t *testing.T) {
	s := newTestService()

	lower, _ := s.BuildSafetyReport(fullCondition(s.registry, 0.6), entity.ContextReport{})
	higher, _ := s.BuildSafetyReport(fullCondition(s.registry, 0.8), entity.ContextReport{})

	assert.Greater(t, higher.OverallSafetyScore, lower.OverallSafetyScore)
}

func TestBuildSafetyReportDetectionRateCapped(t *testing.T) {
	s := newTestService()

	condition := entity.ConditionReport{
		Assessments: []entity.ConditionResult{
			{EquipmentType: "nitrogen_tank", Assessment: observed(0.9, 5)},
		},
	}

	report, _ := s.BuildSafetyReport(condition, entity.ContextReport{})
	assert.Equal(t, 1.0, report.EquipmentStatus["nitrogen_tank"].DetectionRate)
}

func TestBuildSafetyReportMergesRecommendations(t *testing.T) {
	s := newTestService()

	condition := fullCondition(s.registry, 0.9)
	for i := range condition.Assessments {
		if condition.Assessments[i].EquipmentType == "oxygen_tank" {
			condition.Assessments[i].Assessment.Recommendations = []string{
				"Visual confirmation suggested - moderate AI confidence",
			}
		}
		if condition.Assessments[i].EquipmentType == "emergency_phone" {
			condition.Assessments[i].Assessment.Recommendations = []string{
				"Visual confirmation suggested - moderate AI confidence",
				"Verify additional units are stocked",
			}
		}
	}

	contextReport := entity.ContextReport{
		Recommendations: []string{
			"Safety equipment coverage is adequate but could be improved",
		},
	}

	report, summary := s.BuildSafetyReport(condition, contextReport)

	// The duplicated condition recommendation appears once, with the critical
	// type's copy winning the ordering.
	count := 0
	for _, rec := range report.Recommendations {
		if rec == "Visual confirmation suggested - moderate AI confidence" {
			count++
		}
	}
	assert.Equal(t, 1, count)

	assert.Contains(t, report.Recommendations,
		"Safety equipment coverage is adequate but could be improved")
	assert.Equal(t, len(report.Recommendations), summary.TotalRecommendations)
}

func TestBuildSafetyReportDeterministicSerialization(t *testing.T) {
	s := newTestService()

	build := func() []byte {
		condition := fullCondition(s.registry, 0.7)
		report, summary := s.BuildSafetyReport(condition, entity.ContextReport{})
		assessment := entity.FrameAssessment{
			ImageID:       "img-1",
			Condition:     condition,
			Report:        report,
			ReportSummary: summary,
			AlertLevel:    s.ClassifyAlertLevel(report),
			Protocols:     s.GenerateProtocols(report),
		}
		payload, err := deterministicJSON.Marshal(assessment)
		require.NoError(t, err)
		return payload
	}

	assert.Equal(t, build(), build())
}
