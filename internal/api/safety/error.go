package safety

import "errors"

var (
	ErrReportNotFound       = errors.New("assessment report not found")
	ErrUnknownEmergencyType = errors.New("unknown emergency type")
	ErrDetectorUnavailable  = errors.New("detector service unavailable")
	ErrInvalidImageFile     = errors.New("uploaded file is not a valid image")
	ErrFileTooLarge         = errors.New("uploaded file exceeds size limit")
	ErrFailedToUploadFile   = errors.New("failed to upload file")
	ErrInternalServerError  = errors.New("internal server error")
)
