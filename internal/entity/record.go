package entity

import "time"

// AssessmentRecord is the persisted form of a frame assessment. Payload holds
// the full serialized FrameAssessment; the scalar columns exist for querying.
type AssessmentRecord struct {
	ID            string
	ImageID       string
	SafetyScore   int
	AlertLevel    AlertLevel
	CriticalItems int
	Payload       []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// DetectionLog is one append-only detector observation row.
type DetectionLog struct {
	ID         string
	ImageID    string
	Label      string
	Confidence float64
	BBox       BBox
	CreatedAt  time.Time
}
