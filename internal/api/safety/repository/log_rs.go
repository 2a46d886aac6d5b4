package safetyRepository

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"station-guard/internal/entity"
	contextPkg "station-guard/pkg/context"
)

type DetectionLogDB struct {
	ID         sql.NullString  `db:"id"`
	ImageID    sql.NullString  `db:"image_id"`
	Label      sql.NullString  `db:"label"`
	Confidence sql.NullFloat64 `db:"confidence"`
	BBox       []byte          `db:"bbox"`
	CreatedAt  time.Time       `db:"created_at"`
}

// InsertDetections appends the raw detector observations for one frame.
func (r *logRepository) InsertDetections(c context.Context, imageID string, detections []entity.Detection) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()

	for _, d := range detections {
		bbox, err := jsoniter.Marshal(d.BBox)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("Failed to marshal bbox for detection log")
			return err
		}

		argsKV := map[string]interface{}{
			"id":         uuid.NewString(),
			"image_id":   imageID,
			"label":      d.Label,
			"confidence": d.Confidence,
			"bbox":       bbox,
			"created_at": now,
		}

		query, args, err := sqlx.Named(queryInsertDetectionLog, argsKV)
		if err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"error":      err.Error(),
			}).Error("InsertDetections named query preparation err")
			return err
		}
		query = r.q.Rebind(query)

		if _, err = r.q.ExecContext(c, query, args...); err != nil {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"image_id":   imageID,
				"error":      err.Error(),
			}).Error("Database error when inserting detection log")
			return err
		}
	}

	return nil
}

func (r *logRepository) GetDetectionsByImageID(c context.Context, imageID string) ([]entity.DetectionLog, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []DetectionLogDB

	argsKV := map[string]interface{}{
		"image_id": imageID,
	}

	query, args, err := sqlx.Named(queryGetDetectionsByImageID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDetectionsByImageID named query preparation err")
		return nil, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetDetectionsByImageID execution err")
		return nil, err
	}

	result := make([]entity.DetectionLog, 0, len(rows))
	for _, row := range rows {
		entry := entity.DetectionLog{
			ID:         row.ID.String,
			ImageID:    row.ImageID.String,
			Label:      row.Label.String,
			Confidence: row.Confidence.Float64,
			CreatedAt:  row.CreatedAt,
		}
		if len(row.BBox) > 0 {
			if err := jsoniter.Unmarshal(row.BBox, &entry.BBox); err != nil {
				r.log.WithFields(logrus.Fields{
					"request_id": requestID,
					"error":      err.Error(),
				}).Warn("Failed to unmarshal stored bbox, skipping coordinates")
			}
		}
		result = append(result, entry)
	}

	return result, nil
}
