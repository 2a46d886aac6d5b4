package entity

// Flags raised by the positioning analyzer.
const (
	FlagInvalidBBox         = "INVALID_BBOX"
	FlagTooCloseToEdge      = "TOO_CLOSE_TO_EDGE"
	FlagPoorHeightPlacement = "POOR_HEIGHT_PLACEMENT"
)

// Reliability flags raised by the condition assessor.
const (
	FlagNoDetection            = "NO_DETECTION"
	FlagHighConfidence         = "HIGH_CONFIDENCE"
	FlagMediumConfidence       = "MEDIUM_CONFIDENCE"
	FlagLowConfidence          = "LOW_CONFIDENCE"
	FlagVeryLowConfidence      = "VERY_LOW_CONFIDENCE"
	FlagInconsistentDetections = "INCONSISTENT_DETECTIONS"
)

// Batch-level quality flag raised by the auto-labeling triage.
const FlagLowConfidenceDetection = "LOW_CONFIDENCE_DETECTION"

// Placement and accessibility assessment buckets.
const (
	AssessmentGood             = "Good"
	AssessmentNeedsImprovement = "Needs Improvement"
	AssessmentPoor             = "Poor"
)

type Accessibility struct {
	EdgeDistance          float64 `json:"edge_distance"`
	HeightAppropriateness float64 `json:"height_appropriateness"`
	Assessment            string  `json:"assessment"`
}

type PositioningAssessment struct {
	PlacementScore  float64       `json:"placement_score"`
	Accessibility   Accessibility `json:"accessibility"`
	Flags           []string      `json:"flags"`
	Recommendations []string      `json:"recommendations"`
}

// PositioningResult pairs one detection with its placement analysis.
type PositioningResult struct {
	Detection DetectionRef          `json:"detection"`
	Analysis  PositioningAssessment `json:"analysis"`
}

// DetectionRef is the slim detection echo carried in result payloads.
type DetectionRef struct {
	Label      string  `json:"label"`
	Confidence float64 `json:"confidence"`
}

type ConditionIndicators struct {
	SufficientQuantity bool   `json:"sufficient_quantity"`
	ObservedQuantity   int    `json:"observed_quantity"`
	VisualClarity      string `json:"visual_clarity"`
}

type ConditionAssessment struct {
	ConditionScore      float64             `json:"condition_score"`
	ReliabilityFlags    []string            `json:"reliability_flags"`
	ConditionIndicators ConditionIndicators `json:"condition_indicators"`
	Recommendations     []string            `json:"recommendations"`
}

type ConditionResult struct {
	EquipmentType string              `json:"equipment_type"`
	Assessment    ConditionAssessment `json:"assessment"`
}

// ConditionReport covers every registered equipment type for one frame.
type ConditionReport struct {
	Assessments        []ConditionResult `json:"condition_assessments"`
	RequiresInspection bool              `json:"requires_inspection"`
	Recommendations    []string          `json:"recommendations"`
}

type LabelTier string

const (
	TierAutoAccept  LabelTier = "AUTO_ACCEPT"
	TierNeedsReview LabelTier = "NEEDS_REVIEW"
)

type LabelingPriority string

const (
	LabelingPriorityLow    LabelingPriority = "LOW"
	LabelingPriorityMedium LabelingPriority = "MEDIUM"
	LabelingPriorityHigh   LabelingPriority = "HIGH"
)

type LabelSuggestion struct {
	DetectionID int       `json:"detection_id"`
	Label       string    `json:"label"`
	Confidence  float64   `json:"confidence"`
	Tier        LabelTier `json:"tier"`
	Reasons     []string  `json:"reasons"`
}

// LabelingReport is the batch triage block handed to the labeling pipeline.
type LabelingReport struct {
	HighConfidenceCount  int               `json:"high_confidence_count"`
	NeedsReviewCount     int               `json:"needs_review_count"`
	LabelingPriority     LabelingPriority  `json:"labeling_priority"`
	AutoLabelSuggestions []LabelSuggestion `json:"auto_label_suggestions"`
	ManualReviewRequired []LabelSuggestion `json:"manual_review_required"`
	QualityFlags         []string          `json:"quality_flags"`
}

type ModulePrediction struct {
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
}

type SafetyStatus string

const (
	SafetyStatusGood         SafetyStatus = "GOOD"
	SafetyStatusAdequate     SafetyStatus = "ADEQUATE"
	SafetyStatusInsufficient SafetyStatus = "INSUFFICIENT"
)

type SafetyCoverage struct {
	SafetyStatus             SafetyStatus `json:"safety_status"`
	SafetyCoverage           float64      `json:"safety_coverage"`
	MissingCriticalEquipment []string     `json:"missing_critical_equipment"`
}

type EquipmentContext struct {
	TotalDetections   int     `json:"total_detections"`
	EquipmentTypes    int     `json:"equipment_types"`
	AverageConfidence float64 `json:"average_confidence"`
	EquipmentDensity  string  `json:"equipment_density"`
}

type ConfidenceDistribution struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

type ConfidenceAssessment struct {
	Level                  string                 `json:"level"`
	Reliability            string                 `json:"reliability"`
	Score                  float64                `json:"score"`
	ConfidenceDistribution ConfidenceDistribution `json:"confidence_distribution"`
}

type ContextAnalysis struct {
	EquipmentContext EquipmentContext `json:"equipment_context"`
}

// ContextReport is the full context inference output for one frame.
type ContextReport struct {
	ModulePrediction     ModulePrediction     `json:"module_prediction"`
	SafetyAssessment     SafetyCoverage       `json:"safety_assessment"`
	ContextAnalysis      ContextAnalysis      `json:"context_analysis"`
	ConfidenceAssessment ConfidenceAssessment `json:"confidence_assessment"`
	Recommendations      []string             `json:"recommendations"`
}
