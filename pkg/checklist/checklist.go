// Package checklist holds the static emergency response checklists attached
// to generated protocols and served to operators.
package checklist

import (
	"sort"

	"station-guard/internal/entity"
)

var checklists = map[entity.EmergencyType][]string{
	entity.EmergencyFire: {
		"1. ACTIVATE fire alarm system",
		"2. LOCATE nearest CO2 fire extinguisher",
		"3. NOTIFY ground control immediately",
		"4. EVACUATE affected module if necessary",
		"5. ISOLATE oxygen supply to affected area",
		"6. MONITOR atmospheric conditions",
	},
	entity.EmergencyOxygenCritical: {
		"1. CHECK oxygen tank status immediately",
		"2. ACTIVATE backup oxygen supply",
		"3. NOTIFY ground control - PRIORITY 1",
		"4. LOCATE emergency oxygen masks",
		"5. PREPARE for potential evacuation",
		"6. MONITOR crew vital signs",
	},
	entity.EmergencyMedical: {
		"1. SECURE medical supplies immediately",
		"2. ASSESS crew member condition",
		"3. CONTACT medical officer on ground",
		"4. PREPARE medical equipment",
		"5. DOCUMENT all vital signs",
		"6. STANDBY for medical guidance",
	},
	entity.EmergencyNitrogenLeak: {
		"1. ISOLATE nitrogen supply lines",
		"2. CHECK for system pressure drops",
		"3. ACTIVATE atmospheric monitoring",
		"4. NOTIFY ground control",
		"5. PREPARE backup pressurization",
		"6. MONITOR for fire suppression impact",
	},
	entity.EmergencySafetySystemFailure: {
		"1. ACTIVATE manual safety controls",
		"2. VERIFY backup systems operational",
		"3. IMMEDIATE ground control contact",
		"4. ISOLATE affected systems",
		"5. PREPARE emergency shutdown",
		"6. DOCUMENT system status",
	},
}

// Lookup returns the response checklist for an emergency type. Not every
// emergency type carries one, in which case ok is false and protocols omit
// the checklist rather than failing.
func Lookup(emergencyType entity.EmergencyType) ([]string, bool) {
	steps, ok := checklists[emergencyType]
	if !ok {
		return nil, false
	}

	out := make([]string, len(steps))
	copy(out, steps)
	return out, true
}

// Default is the generic fallback procedure for emergency types without a
// dedicated checklist.
func Default() []string {
	return []string{
		"1. SECURE area immediately",
		"2. CONTACT ground control",
		"3. FOLLOW standard emergency procedures",
	}
}

func Types() []entity.EmergencyType {
	types := make([]entity.EmergencyType, 0, len(checklists))
	for t := range checklists {
		types = append(types, t)
	}

	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}
