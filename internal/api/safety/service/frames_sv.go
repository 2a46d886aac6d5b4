package safetyService

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"station-guard/internal/api/safety"
	contextPkg "station-guard/pkg/context"
	"station-guard/pkg/utils"
)

// ProcessFrameUpload archives an uploaded frame, runs detection on it, and
// assesses the resulting detections.
func (s *safetyService) ProcessFrameUpload(c context.Context, file *multipart.FileHeader) (safety.FrameUploadResponse, error) {
	requestID := contextPkg.GetRequestID(c)

	if err := s.utils.ValidateImageFile(file); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Rejected frame upload")
		if errors.Is(err, utils.ErrFileSizeExceeded) {
			return safety.FrameUploadResponse{}, safety.ErrFileTooLarge
		}
		return safety.FrameUploadResponse{}, safety.ErrInvalidImageFile
	}

	fileContent, err := file.Open()
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open uploaded frame")
		return safety.FrameUploadResponse{}, safety.ErrInternalServerError
	}
	defer fileContent.Close()

	data, err := s.utils.ReadFileBytes(fileContent)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to read uploaded frame")
		return safety.FrameUploadResponse{}, safety.ErrInternalServerError
	}

	imageID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return safety.FrameUploadResponse{}, err
	}

	key, err := s.s3.UploadFrame(imageID, file.Filename, data, file.Header.Get("Content-Type"))
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   imageID,
			"error":      err.Error(),
		}).Error("Failed to archive frame to object storage")
		return safety.FrameUploadResponse{}, safety.ErrFailedToUploadFile
	}

	frameURL, err := s.s3.PresignUrl(key)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   imageID,
			"error":      err.Error(),
		}).Warn("Failed to presign frame URL")
	}

	frame, err := s.detector.ProcessFrame(imageID, data)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   imageID,
			"error":      err.Error(),
		}).Error("Detector did not return results for frame")
		return safety.FrameUploadResponse{}, safety.ErrDetectorUnavailable
	}

	assessment, err := s.AssessFrame(c, *frame)
	if err != nil {
		return safety.FrameUploadResponse{}, err
	}

	return safety.FrameUploadResponse{
		ImageID:    imageID,
		FrameURL:   frameURL,
		Assessment: assessment,
	}, nil
}
