package safetyService

import (
	"fmt"
	"sort"
	"strings"

	"golang.org/x/net/context"

	"station-guard/internal/api/safety"
	"station-guard/internal/entity"
	"station-guard/pkg/checklist"
)

// ClassifyAlertLevel assigns the station-wide alert tier for a safety report.
func (s *safetyService) ClassifyAlertLevel(report entity.SafetyReport) entity.AlertLevel {
	if len(report.MissingCriticalEquipment) > 0 {
		return entity.AlertLevelCritical
	}
	if report.OverallSafetyScore < 80 {
		return entity.AlertLevelHigh
	}
	if report.OverallSafetyScore < 90 {
		return entity.AlertLevelMedium
	}
	return entity.AlertLevelNominal
}

// GenerateProtocols emits one prioritized response protocol per missing or
// critically degraded equipment item. An empty list signals nominal state.
func (s *safetyService) GenerateProtocols(report entity.SafetyReport) []entity.AlertProtocol {
	type pending struct {
		protocol    entity.AlertProtocol
		criticality entity.Criticality
		equipment   string
	}

	items := make([]pending, 0, s.registry.Len())

	for _, equipmentType := range s.registry.Types() {
		status, ok := report.EquipmentStatus[equipmentType]
		if !ok {
			continue
		}
		if status.Status != entity.EquipmentMissing && status.Status != entity.EquipmentCritical {
			continue
		}

		cfg, _ := s.registry.Lookup(equipmentType)
		protocol := entity.AlertProtocol{
			Priority:        s.protocolPriority(cfg.Criticality, status.Status),
			MaxResponseTime: fmt.Sprintf("%d seconds", cfg.MaxResponseTimeSeconds),
		}

		if status.Status == entity.EquipmentMissing {
			protocol.Action = fmt.Sprintf("LOCATE_%s", strings.ToUpper(equipmentType))
			protocol.Description = fmt.Sprintf("Locate and verify %s", cfg.Description)
		} else {
			protocol.Action = fmt.Sprintf("INSPECT_%s", strings.ToUpper(equipmentType))
			protocol.Description = fmt.Sprintf("Inspect %s", cfg.Description)
		}

		// A missing checklist never blocks protocol emission.
		if steps, ok := checklist.Lookup(cfg.EmergencyType); ok {
			protocol.EmergencyChecklist = steps
		}

		items = append(items, pending{
			protocol:    protocol,
			criticality: cfg.Criticality,
			equipment:   equipmentType,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].protocol.Priority.Rank() != items[j].protocol.Priority.Rank() {
			return items[i].protocol.Priority.Rank() < items[j].protocol.Priority.Rank()
		}
		if items[i].criticality.Rank() != items[j].criticality.Rank() {
			return items[i].criticality.Rank() < items[j].criticality.Rank()
		}
		return items[i].equipment < items[j].equipment
	})

	protocols := make([]entity.AlertProtocol, 0, len(items))
	for _, item := range items {
		protocols = append(protocols, item.protocol)
	}

	return protocols
}

func (s *safetyService) protocolPriority(criticality entity.Criticality, status entity.EquipmentState) entity.ProtocolPriority {
	switch {
	case criticality == entity.CriticalityCritical && status == entity.EquipmentMissing:
		return entity.PriorityImmediate
	case criticality == entity.CriticalityCritical:
		return entity.PriorityCritical
	case criticality == entity.CriticalityHigh:
		return entity.PriorityHigh
	default:
		return entity.PriorityRoutine
	}
}

func (s *safetyService) EquipmentCatalog(ctx context.Context) safety.EquipmentCatalogResponse {
	catalog := s.registry.Catalog()
	return safety.EquipmentCatalogResponse{
		Total:          len(catalog),
		EquipmentTypes: catalog,
	}
}

// GetChecklist resolves an emergency checklist by type. Known emergency
// types without a dedicated checklist fall back to the generic procedure.
func (s *safetyService) GetChecklist(ctx context.Context, emergencyType string) (safety.ChecklistResponse, error) {
	normalized := entity.EmergencyType(entity.NormalizeLabel(emergencyType))

	known := false
	for _, cfg := range s.registry.Catalog() {
		if cfg.EmergencyType == normalized {
			known = true
			break
		}
	}
	for _, t := range checklist.Types() {
		if t == normalized {
			known = true
			break
		}
	}
	if !known {
		return safety.ChecklistResponse{}, safety.ErrUnknownEmergencyType
	}

	steps, ok := checklist.Lookup(normalized)
	if !ok {
		steps = checklist.Default()
	}

	return safety.ChecklistResponse{
		EmergencyType: string(normalized),
		Checklist:     steps,
	}, nil
}
