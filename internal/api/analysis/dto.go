package analysis

import "station-guard/internal/entity"

// DetectionPayload is one detector output row as submitted over HTTP. The
// bbox uses the detector wire format [x1, y1, x2, y2] in pixels.
type DetectionPayload struct {
	Label      string    `json:"label" validate:"required"`
	Confidence float64   `json:"confidence"`
	BBox       []float64 `json:"bbox" validate:"required,len=4"`
}

type AnalyzeRequest struct {
	ImageID     string             `json:"image_id"`
	ImageWidth  int                `json:"image_width" validate:"required,gt=0"`
	ImageHeight int                `json:"image_height" validate:"required,gt=0"`
	Detections  []DetectionPayload `json:"detections" validate:"omitempty,dive"`
}

// ToFrame converts the request into a normalized detection frame.
func (r AnalyzeRequest) ToFrame() entity.Frame {
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

type PositioningResponse struct {
	ImageID             string                     `json:"image_id"`
	TotalDetections     int                        `json:"total_detections"`
	PositioningAnalysis []entity.PositioningResult `json:"positioning_analysis"`
}

type ConditionResponse struct {
	ImageID             string                 `json:"image_id"`
	ConditionAssessment entity.ConditionReport `json:"condition_assessment"`
}

type LabelingResponse struct {
	ImageID             string                `json:"image_id"`
	TotalDetections     int                   `json:"total_detections"`
	LabelingSuggestions entity.LabelingReport `json:"labeling_suggestions"`
}

type ContextResponse struct {
	ImageID         string               `json:"image_id"`
	ContextAnalysis entity.ContextReport `json:"context_analysis"`
}

type LabelMappingsRequest struct {
	Mappings map[string]string `json:"mappings" validate:"required"`
}

type LabelMappingsResponse struct {
	Mappings map[string]string `json:"mappings"`
}
