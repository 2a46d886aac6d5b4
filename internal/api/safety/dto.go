package safety

import "station-guard/internal/entity"

// DetectionPayload mirrors the detector wire format [x1, y1, x2, y2].
type DetectionPayload struct {
	Label      string    `json:"label" validate:"required"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox" validate:"required,len=4"`
}

// AssessRequest is one image's detector output submitted for the full
// assessment pipeline.
type AssessRequest struct {
	ImageID     string             `json:"image_id"`
	ImageWidth  int                `json:"image_width" validate:"required,gt=0"`
	ImageHeight int                `json:"image_height" validate:"required,gt=0"`
	Detections  []DetectionPayload `json:"detections" validate:"omitempty,dive"`
}

func (r AssessRequest) ToFrame() entity.Frame {
	detections := make([]entity.Detection, 0, len(r.Detections))
	for _, d := range r.Detections {
		detections = append(detections, entity.Detection{
			Label:      d.Label,
			Confidence: d.Confidence,
			BBox: entity.BBox{
				X1: d.BBox[0],
				Y1: d.BBox[1],
				X2: d.BBox[2],
				Y2: d.BBox[3],
			},
		})
	}

	return entity.Frame{
		ImageID:     r.ImageID,
		ImageWidth:  r.ImageWidth,
		ImageHeight: r.ImageHeight,
		Detections:  detections,
	}.Normalize()
}

type BatchAssessRequest struct {
	Images []AssessRequest `json:"images" validate:"required,min=1,dive"`
}

func (r BatchAssessRequest) ToFrames() []entity.Frame {
	frames := make([]entity.Frame, 0, len(r.Images))
	for _, image := range r.Images {
		frames = append(frames, image.ToFrame())
	}
	return frames
}

type BatchAssessResponse struct {
	TotalImages int                      `json:"total_images"`
	Assessments []entity.FrameAssessment `json:"assessments"`
}

type ChecklistResponse struct {
	EmergencyType string   `json:"emergency_type"`
	Checklist     []string `json:"checklist"`
}

type EquipmentCatalogResponse struct {
	Total          int                      `json:"total"`
	EquipmentTypes []entity.EquipmentConfig `json:"equipment_types"`
}

type FrameUploadResponse struct {
	ImageID    string                  `json:"image_id"`
	FrameURL   string                  `json:"frame_url,omitempty"`
	Assessment *entity.FrameAssessment `json:"assessment"`
}
