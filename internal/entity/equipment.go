package entity

import "sort"

type Criticality string

const (
	CriticalityCritical Criticality = "CRITICAL"
	CriticalityHigh     Criticality = "HIGH"
	CriticalityMedium   Criticality = "MEDIUM"
	CriticalityLow      Criticality = "LOW"
)

// Weight is the safety-score weight for equipment of this criticality.
func (c Criticality) Weight() float64 {
	switch c {
	case CriticalityCritical:
		return 3
	case CriticalityHigh:
		return 2
	default:
		return 1
	}
}

// Rank orders criticalities from most to least severe, for sorting.
func (c Criticality) Rank() int {
	switch c {
	case CriticalityCritical:
		return 0
	case CriticalityHigh:
		return 1
	case CriticalityMedium:
		return 2
	default:
		return 3
	}
}

type EmergencyType string

const (
	EmergencyFire                 EmergencyType = "fire"
	EmergencyOxygenCritical       EmergencyType = "oxygen_critical"
	EmergencyNitrogenLeak         EmergencyType = "nitrogen_leak"
	EmergencyMedical              EmergencyType = "medical_emergency"
	EmergencySafetySystemFailure  EmergencyType = "safety_system_failure"
	EmergencyCommunicationFailure EmergencyType = "communication_failure"
)

// EquipmentConfig describes one monitored equipment type. Entries are static
// for the life of the process.
type EquipmentConfig struct {
	Type                   string        `json:"type"`
	Criticality            Criticality   `json:"criticality"`
	RequiredQuantity       int           `json:"required_quantity"`
	MaxResponseTimeSeconds int           `json:"max_response_time_seconds"`
	EmergencyType          EmergencyType `json:"emergency_type"`
	Description            string        `json:"description"`
}

// EquipmentRegistry is the read-only catalog of monitored equipment types.
// It is built once at startup and shared by reference across requests.
type EquipmentRegistry struct {
	configs map[string]EquipmentConfig
	types   []string
}

func NewEquipmentRegistry(configs []EquipmentConfig) *EquipmentRegistry {
	r := &EquipmentRegistry{
		configs: make(map[string]EquipmentConfig, len(configs)),
		types:   make([]string, 0, len(configs)),
	}
	for _, cfg := range configs {
		key := NormalizeLabel(cfg.Type)
		cfg.Type = key
		if _, exists := r.configs[key]; !exists {
			r.types = append(r.types, key)
		}
		r.configs[key] = cfg
	}
	sort.Strings(r.types)
	return r
}

func (r *EquipmentRegistry) Lookup(equipmentType string) (EquipmentConfig, bool) {
	cfg, ok := r.configs[equipmentType]
	return cfg, ok
}

// Types returns registry keys in stable sorted order.
func (r *EquipmentRegistry) Types() []string {
	out := make([]string, len(r.types))
	copy(out, r.types)
	return out
}

// CriticalTypes returns the sorted subset of types with CRITICAL criticality.
func (r *EquipmentRegistry) CriticalTypes() []string {
	var out []string
	for _, t := range r.types {
		if r.configs[t].Criticality == CriticalityCritical {
			out = append(out, t)
		}
	}
	return out
}

func (r *EquipmentRegistry) Len() int { return len(r.types) }

// Catalog returns all entries in stable sorted order.
func (r *EquipmentRegistry) Catalog() []EquipmentConfig {
	out := make([]EquipmentConfig, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, r.configs[t])
	}
	return out
}

// DefaultEquipmentRegistry is the station safety equipment catalog.
func DefaultEquipmentRegistry() *EquipmentRegistry {
	return NewEquipmentRegistry([]EquipmentConfig{
		{
			Type:                   "fire_extinguisher",
			Criticality:            CriticalityCritical,
			RequiredQuantity:       3,
			MaxResponseTimeSeconds: 30,
			EmergencyType:          EmergencyFire,
			Description:            "CO2/Halon fire suppression system",
		},
		{
			Type:                   "oxygen_tank",
			Criticality:            CriticalityCritical,
			RequiredQuantity:       2,
			MaxResponseTimeSeconds: 10,
			EmergencyType:          EmergencyOxygenCritical,
			Description:            "Life support oxygen supply",
		},
		{
			Type:                   "nitrogen_tank",
			Criticality:            CriticalityHigh,
			RequiredQuantity:       1,
			MaxResponseTimeSeconds: 60,
			EmergencyType:          EmergencyNitrogenLeak,
			Description:            "Pressurization and fire suppression",
		},
		{
			Type:                   "first_aid_box",
			Criticality:            CriticalityHigh,
			RequiredQuantity:       2,
			MaxResponseTimeSeconds: 120,
			EmergencyType:          EmergencyMedical,
			Description:            "Medical emergency supplies",
		},
		{
			Type:                   "fire_alarm",
			Criticality:            CriticalityCritical,
			RequiredQuantity:       4,
			MaxResponseTimeSeconds: 5,
			EmergencyType:          EmergencyFire,
			Description:            "Fire detection and alert system",
		},
		{
			Type:                   "safety_switch_panel",
			Criticality:            CriticalityCritical,
			RequiredQuantity:       2,
			MaxResponseTimeSeconds: 15,
			EmergencyType:          EmergencySafetySystemFailure,
			Description:            "Emergency shutdown controls",
		},
		{
			Type:                   "emergency_phone",
			Criticality:            CriticalityHigh,
			RequiredQuantity:       3,
			MaxResponseTimeSeconds: 45,
			EmergencyType:          EmergencyCommunicationFailure,
			Description:            "Ground communication system",
		},
	})
}
