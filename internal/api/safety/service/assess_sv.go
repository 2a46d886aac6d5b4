package safetyService

import (
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"golang.org/x/sync/errgroup"

	"station-guard/internal/entity"
	contextPkg "station-guard/pkg/context"
)

// deterministicJSON sorts map keys so two assessments of the same frame
// serialize to byte-identical payloads.
var deterministicJSON = jsoniter.ConfigCompatibleWithStandardLibrary

const latestReportTTL = time.Hour

// noDetectionLabel marks log rows for frames where the detector saw nothing.
const noDetectionLabel = "no_detection"

// AssessFrame runs the full analysis pipeline for a single frame and
// persists the resulting assessment.
func (s *safetyService) AssessFrame(c context.Context, frame entity.Frame) (*entity.FrameAssessment, error) {
	requestID := contextPkg.GetRequestID(c)

	if frame.ImageID == "" {
		imageID, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to generate image identifier")
			return nil, err
		}
		frame.ImageID = imageID
	}

	frame = s.analysisService.ApplyCustomLabels(c, frame)

	positioning := s.analysisService.AnalyzePositioning(c, frame)
	condition := s.analysisService.AssessCondition(c, frame)
	labeling := s.analysisService.TriageLabels(c, frame)
	contextReport := s.analysisService.InferContext(c, frame)

	report, summary := s.BuildSafetyReport(condition, contextReport)

	assessment := &entity.FrameAssessment{
		ImageID:         frame.ImageID,
		TotalDetections: len(frame.Detections),
		Positioning:     positioning,
		Condition:       condition,
		Labeling:        labeling,
		Context:         contextReport,
		Report:          report,
		ReportSummary:   summary,
		AlertLevel:      s.ClassifyAlertLevel(report),
	}
	assessment.Protocols = s.GenerateProtocols(report)

	if err := s.persistAssessment(c, frame, assessment); err != nil {
		return nil, err
	}

	return assessment, nil
}

func (s *safetyService) persistAssessment(c context.Context, frame entity.Frame, assessment *entity.FrameAssessment) error {
	requestID := contextPkg.GetRequestID(c)

	payload, err := deterministicJSON.Marshal(assessment)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to marshal assessment payload")
		return err
	}

	recordID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return err
	}

	client, err := s.safetyRepository.NewClient(true)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to open repository client")
		return err
	}

	record := entity.AssessmentRecord{
		ID:            recordID,
		ImageID:       assessment.ImageID,
		SafetyScore:   assessment.Report.OverallSafetyScore,
		AlertLevel:    assessment.AlertLevel,
		CriticalItems: assessment.Report.CriticalItems,
		Payload:       payload,
	}

	if err := client.Report.UpsertAssessment(c, record); err != nil {
		_ = client.Rollback()
		return err
	}

	detections := frame.Detections
	if len(detections) == 0 {
		// An empty frame still leaves a trace in the detection log.
		detections = []entity.Detection{{Label: noDetectionLabel}}
	}

	if err := client.Log.InsertDetections(c, frame.ImageID, detections); err != nil {
		_ = client.Rollback()
		return err
	}

	if err := client.Commit(); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to commit assessment transaction")
		return err
	}

	// Cache failures only cost the next reader a database round trip.
	if err := s.redis.SetLatestReport(c, payload, latestReportTTL); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Failed to cache latest report")
	}

	return nil
}

// AssessBatch assesses frames concurrently and returns results in the same
// order the frames were submitted.
func (s *safetyService) AssessBatch(c context.Context, frames []entity.Frame) ([]entity.FrameAssessment, error) {
	results := make([]entity.FrameAssessment, len(frames))

	g, gc := errgroup.WithContext(c)
	g.SetLimit(s.batchWorkers)

	for i, frame := range frames {
		i, frame := i, frame
		g.Go(func() error {
			assessment, err := s.AssessFrame(gc, frame)
			if err != nil {
				return err
			}
			results[i] = *assessment
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
