package entity

import (
	"errors"
	"strings"

	jsoniter "github.com/json-iterator/go"
)

const UnknownLabel = "unknown"

// BBox is an axis-aligned box in pixel coordinates. It serializes as the
// detector wire format [x1, y1, x2, y2].
type BBox struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

func (b BBox) MarshalJSON() ([]byte, error) {
	return jsoniter.Marshal([4]float64{b.X1, b.Y1, b.X2, b.Y2})
}

func (b *BBox) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := jsoniter.Unmarshal(data, &coords); err != nil {
		return err
	}
	if len(coords) != 4 {
		return errors.New("bbox must contain exactly four coordinates")
	}
	b.X1, b.Y1, b.X2, b.Y2 = coords[0], coords[1], coords[2], coords[3]
	return nil
}

func (b BBox) Width() float64  { return b.X2 - b.X1 }
func (b BBox) Height() float64 { return b.Y2 - b.Y1 }

// Valid reports whether the box is well formed and fully inside a
// frameWidth x frameHeight frame.
func (b BBox) Valid(frameWidth, frameHeight int) bool {
	if b.X1 >= b.X2 || b.Y1 >= b.Y2 {
		return false
	}
	if b.X1 < 0 || b.Y1 < 0 {
		return false
	}
	return b.X2 <= float64(frameWidth) && b.Y2 <= float64(frameHeight)
}

// Detection is one object instance reported by the detector for an image.
type Detection struct {
	Label       string  `json:"label"`
	Confidence  float64 `json:"confidence"`
	BBox        BBox    `json:"bbox"`
	ImageWidth  int     `json:"image_width"`
	ImageHeight int     `json:"image_height"`
}

// Frame is the full detector output for one image, tagged with the request
// identifier that ties the input image to its assessment record.
type Frame struct {
	ImageID     string      `json:"image_id"`
	ImageWidth  int         `json:"image_width"`
	ImageHeight int         `json:"image_height"`
	Detections  []Detection `json:"detections"`
}

// NormalizeLabel maps raw detector labels onto registry keys.
func NormalizeLabel(label string) string {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(label)), " ", "_")
	if normalized == "" {
		return UnknownLabel
	}
	return normalized
}

// ClampConfidence forces out-of-range detector confidences back into [0, 1]
// instead of rejecting the detection.
func ClampConfidence(c float64) float64 {
	if c < 0 {
		return 0
	}
	if c > 1 {
		return 1
	}
	return c
}

// Normalize returns a copy of the frame with labels normalized, confidences
// clamped and per-detection frame dimensions filled in.
func (f Frame) Normalize() Frame {
	out := Frame{
		ImageID:     f.ImageID,
		ImageWidth:  f.ImageWidth,
		ImageHeight: f.ImageHeight,
		Detections:  make([]Detection, 0, len(f.Detections)),
	}
	for _, d := range f.Detections {
		d.Label = NormalizeLabel(d.Label)
		d.Confidence = ClampConfidence(d.Confidence)
		if d.ImageWidth == 0 {
			d.ImageWidth = f.ImageWidth
		}
		if d.ImageHeight == 0 {
			d.ImageHeight = f.ImageHeight
		}
		out.Detections = append(out.Detections, d)
	}
	return out
}

// Remap rewrites detection labels through operator-provided custom label
// mappings before assessment. Unmapped labels pass through unchanged.
func (f Frame) Remap(mappings map[string]string) Frame {
	if len(mappings) == 0 {
		return f
	}
	out := f
	out.Detections = make([]Detection, len(f.Detections))
	copy(out.Detections, f.Detections)
	for i, d := range out.Detections {
		if mapped, ok := mappings[d.Label]; ok && mapped != "" {
			out.Detections[i].Label = NormalizeLabel(mapped)
		}
	}
	return out
}
