package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultEquipmentRegistry(t *testing.T) {
	registry := DefaultEquipmentRegistry()

	assert.Equal(t, 7, registry.Len())
	assert.Equal(t, []string{
		"emergency_phone",
		"fire_alarm",
		"fire_extinguisher",
		"first_aid_box",
		"nitrogen_tank",
		"oxygen_tank",
		"safety_switch_panel",
	}, registry.Types())

	assert.Equal(t, []string{
		"fire_alarm",
		"fire_extinguisher",
		"oxygen_tank",
		"safety_switch_panel",
	}, registry.CriticalTypes())

	cfg, ok := registry.Lookup("fire_extinguisher")
	require.True(t, ok)
	assert.Equal(t, CriticalityCritical, cfg.Criticality)
	assert.Equal(t, 3, cfg.RequiredQuantity)
	assert.Equal(t, 30, cfg.MaxResponseTimeSeconds)
	assert.Equal(t, EmergencyFire, cfg.EmergencyType)

	_, ok = registry.Lookup("coffee_machine")
	assert.False(t, ok)
}

func TestNewEquipmentRegistryNormalizesTypes(t *testing.T) {
	registry := NewEquipmentRegistry([]EquipmentConfig{
		{Type: "Fire Extinguisher", Criticality: CriticalityCritical, RequiredQuantity: 1},
	})

	cfg, ok := registry.Lookup("fire_extinguisher")
	require.True(t, ok)
	assert.Equal(t, "fire_extinguisher", cfg.Type)
}

func TestCriticalityWeightAndRank(t *testing.T) {
	assert.Equal(t, 3.0, CriticalityCritical.Weight())
	assert.Equal(t, 2.0, CriticalityHigh.Weight())
	assert.Equal(t, 1.0, CriticalityMedium.Weight())
	assert.Equal(t, 1.0, CriticalityLow.Weight())

	assert.Less(t, CriticalityCritical.Rank(), CriticalityHigh.Rank())
	assert.Less(t, CriticalityHigh.Rank(), CriticalityMedium.Rank())
	assert.Less(t, CriticalityMedium.Rank(), CriticalityLow.Rank())
}

func TestCatalogStableOrder(t *testing.T) {
	registry := DefaultEquipmentRegistry()

	catalog := registry.Catalog()
	require.Len(t, catalog, registry.Len())
	for i, equipmentType := range registry.Types() {
		assert.Equal(t, equipmentType, catalog[i].Type)
	}
}
