package safetyService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"station-guard/internal/api/safety"
	"station-guard/internal/entity"
	"station-guard/pkg/checklist"
)

func TestClassifyAlertLevel(t *testing.T) {
	s := newTestService()

	tests := []struct {
		name   string
		report entity.SafetyReport
		level  entity.AlertLevel
	}{
		{
			name: "missing critical equipment",
			report: entity.SafetyReport{
				OverallSafetyScore:       95,
				MissingCriticalEquipment: []string{"oxygen_tank"},
			},
			level: entity.AlertLevelCritical,
		},
		{
			name:   "low score",
			report: entity.SafetyReport{OverallSafetyScore: 75},
			level:  entity.AlertLevelHigh,
		},
		{
			name:   "moderate score",
			report: entity.SafetyReport{OverallSafetyScore: 85},
			level:  entity.AlertLevelMedium,
		},
		{
			name:   "nominal score",
			report: entity.SafetyReport{OverallSafetyScore: 95},
			level:  entity.AlertLevelNominal,
		},
		{
			name:   "boundary at ninety",
			report: entity.SafetyReport{OverallSafetyScore: 90},
			level:  entity.AlertLevelNominal,
		},
		{
			name:   "boundary at eighty",
			report: entity.SafetyReport{OverallSafetyScore: 80},
			level:  entity.AlertLevelMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.level, s.ClassifyAlertLevel(tt.report))
		})
	}
}

func TestGenerateProtocolsAllMissing(t *testing.T) {
	s := newTestService()

	report, _ := s.BuildSafetyReport(entity.ConditionReport{}, entity.ContextReport{})
	protocols := s.GenerateProtocols(report)

	require.Len(t, protocols, 7)

	first := protocols[0]
	assert.Equal(t, "LOCATE_FIRE_ALARM", first.Action)
	assert.Equal(t, entity.PriorityImmediate, first.Priority)
	assert.Equal(t, "Locate and verify Fire detection and alert system", first.Description)
	assert.Equal(t, "5 seconds", first.MaxResponseTime)
	assert.Len(t, first.EmergencyChecklist, 6)

	// Critical types come first, then the high-criticality ones.
	for _, p := range protocols[:4] {
		assert.Equal(t, entity.PriorityImmediate, p.Priority)
	}
	for _, p := range protocols[4:] {
		assert.Equal(t, entity.PriorityHigh, p.Priority)
	}

	// Same priority and criticality sorts by type name.
	assert.Equal(t, "LOCATE_EMERGENCY_PHONE", protocols[4].Action)
	assert.Equal(t, "LOCATE_FIRST_AID_BOX", protocols[5].Action)
	assert.Equal(t, "LOCATE_NITROGEN_TANK", protocols[6].Action)
}

func TestGenerateProtocolsInspectDegradedCritical(t *testing.T) {
	s := newTestService()

	condition := fullCondition(s.registry, 0.9)
	for i := range condition.Assessments {
		if condition.Assessments[i].EquipmentType == "oxygen_tank" {
			condition.Assessments[i].Assessment = observed(0.4, 1)
		}
	}

	report, _ := s.BuildSafetyReport(condition, entity.ContextReport{})
	protocols := s.GenerateProtocols(report)

	require.Len(t, protocols, 1)
	assert.Equal(t, "INSPECT_OXYGEN_TANK", protocols[0].Action)
	assert.Equal(t, entity.PriorityCritical, protocols[0].Priority)
	assert.Equal(t, "Inspect Life support oxygen supply", protocols[0].Description)
	assert.Equal(t, "10 seconds", protocols[0].MaxResponseTime)
}

func TestGenerateProtocolsOmitChecklistWhenAbsent(t *testing.T) {
	s := newTestService()

	report, _ := s.BuildSafetyReport(entity.ConditionReport{}, entity.ContextReport{})
	protocols := s.GenerateProtocols(report)

	for _, p := range protocols {
		if p.Action == "LOCATE_EMERGENCY_PHONE" {
			assert.Empty(t, p.EmergencyChecklist)
			return
		}
	}
	t.Fatal("no protocol generated for emergency_phone")
}

func TestGenerateProtocolsEmptyWhenNominal(t *testing.T) {
	s := newTestService()

	report, _ := s.BuildSafetyReport(fullCondition(s.registry, 0.9), entity.ContextReport{})
	assert.Empty(t, s.GenerateProtocols(report))
}

func TestEquipmentCatalog(t *testing.T) {
	s := newTestService()

	catalog := s.EquipmentCatalog(context.Background())
	assert.Equal(t, 7, catalog.Total)
	require.Len(t, catalog.EquipmentTypes, 7)
	assert.Equal(t, "emergency_phone", catalog.EquipmentTypes[0].Type)
}

func TestGetChecklist(t *testing.T) {
	s := newTestService()

	resp, err := s.GetChecklist(context.Background(), "fire")
	require.NoError(t, err)
	assert.Equal(t, "fire", resp.EmergencyType)
	assert.Len(t, resp.Checklist, 6)
	assert.Equal(t, "1. ACTIVATE fire alarm system", resp.Checklist[0])

	// Lookup is case and whitespace tolerant.
	resp, err = s.GetChecklist(context.Background(), "  Fire ")
	require.NoError(t, err)
	assert.Equal(t, "fire", resp.EmergencyType)
}

func TestGetChecklistFallsBackToDefault(t *testing.T) {
	s := newTestService()

	resp, err := s.GetChecklist(context.Background(), "communication_failure")
	require.NoError(t, err)
	assert.Equal(t, checklist.Default(), resp.Checklist)
}

func TestGetChecklistUnknownType(t *testing.T) {
	s := newTestService()

	_, err := s.GetChecklist(context.Background(), "zombie_outbreak")
	assert.ErrorIs(t, err, safety.ErrUnknownEmergencyType)
}
