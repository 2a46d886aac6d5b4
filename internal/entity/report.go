package entity

type EquipmentState string

const (
	EquipmentAvailable   EquipmentState = "AVAILABLE"
	EquipmentConcerning  EquipmentState = "CONCERNING"
	EquipmentNeedsReview EquipmentState = "NEEDS_REVIEW"
	EquipmentMissing     EquipmentState = "MISSING"
	EquipmentCritical    EquipmentState = "CRITICAL"
)

type EquipmentStatus struct {
	Status        EquipmentState `json:"status"`
	DetectionRate float64        `json:"detection_rate"`
}

type SafetyReport struct {
	OverallSafetyScore       int                        `json:"overall_safety_score"`
	EquipmentStatus          map[string]EquipmentStatus `json:"equipment_status"`
	CriticalItems            int                        `json:"critical_items"`
	MissingCriticalEquipment []string                   `json:"missing_critical_equipment"`
	Recommendations          []string                   `json:"recommendations"`
}

type ReportSummary struct {
	CriticalItems        int `json:"critical_items"`
	TotalRecommendations int `json:"total_recommendations"`
}

type AlertLevel string

const (
	AlertLevelCritical AlertLevel = "CRITICAL"
	AlertLevelHigh     AlertLevel = "HIGH"
	AlertLevelMedium   AlertLevel = "MEDIUM"
	AlertLevelNominal  AlertLevel = "NOMINAL"
)

type ProtocolPriority string

const (
	PriorityImmediate ProtocolPriority = "IMMEDIATE"
	PriorityCritical  ProtocolPriority = "CRITICAL"
	PriorityHigh      ProtocolPriority = "HIGH"
	PriorityRoutine   ProtocolPriority = "ROUTINE"
)

// Rank orders protocol priorities from most to least urgent.
func (p ProtocolPriority) Rank() int {
	switch p {
	case PriorityImmediate:
		return 0
	case PriorityCritical:
		return 1
	case PriorityHigh:
		return 2
	default:
		return 3
	}
}

type AlertProtocol struct {
	Action             string           `json:"action"`
	Priority           ProtocolPriority `json:"priority"`
	Description        string           `json:"description"`
	MaxResponseTime    string           `json:"max_response_time"`
	EmergencyChecklist []string         `json:"emergency_checklist,omitempty"`
}

// FrameAssessment is the complete pipeline output for one image.
type FrameAssessment struct {
	ImageID         string              `json:"image_id"`
	TotalDetections int                 `json:"total_detections"`
	Positioning     []PositioningResult `json:"positioning_analysis"`
	Condition       ConditionReport     `json:"condition_assessment"`
	Labeling        LabelingReport      `json:"labeling_suggestions"`
	Context         ContextReport       `json:"context_analysis"`
	Report          SafetyReport        `json:"safety_report"`
	ReportSummary   ReportSummary       `json:"report_summary"`
	AlertLevel      AlertLevel          `json:"alert_level"`
	Protocols       []AlertProtocol     `json:"response_protocols"`
}
