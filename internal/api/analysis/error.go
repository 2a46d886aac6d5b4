package analysis

import "errors"

var (
	ErrInvalidFrameDimensions = errors.New("frame dimensions must be positive")
	ErrUnknownEquipmentType   = errors.New("unknown equipment type")
	ErrInvalidLabelMapping    = errors.New("invalid label mapping")
)
