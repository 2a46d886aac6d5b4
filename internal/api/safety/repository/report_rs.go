package safetyRepository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"

	"station-guard/internal/api/safety"
	"station-guard/internal/entity"
	contextPkg "station-guard/pkg/context"
)

type AssessmentRecordDB struct {
	ID            sql.NullString `db:"id"`
	ImageID       sql.NullString `db:"image_id"`
	SafetyScore   sql.NullInt64  `db:"safety_score"`
	AlertLevel    sql.NullString `db:"alert_level"`
	CriticalItems sql.NullInt64  `db:"critical_items"`
	Payload       []byte         `db:"payload"`
	CreatedAt     time.Time      `db:"created_at"`
	UpdatedAt     time.Time      `db:"updated_at"`
}

// UpsertAssessment writes a frame assessment keyed by image identifier, so
// redelivery of the same report overwrites rather than duplicates.
func (r *reportRepository) UpsertAssessment(c context.Context, record entity.AssessmentRecord) error {
	requestID := contextPkg.GetRequestID(c)
	now := time.Now()

	argsKV := map[string]interface{}{
		"id":             record.ID,
		"image_id":       record.ImageID,
		"safety_score":   record.SafetyScore,
		"alert_level":    string(record.AlertLevel),
		"critical_items": record.CriticalItems,
		"payload":        record.Payload,
		"created_at":     now,
		"updated_at":     now,
	}

	query, args, err := sqlx.Named(queryUpsertAssessment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpsertAssessment named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	if _, err = r.q.ExecContext(c, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"image_id":   record.ImageID,
			"error":      err.Error(),
		}).Error("Database error when upserting assessment")
		return err
	}

	return nil
}

func (r *reportRepository) GetAssessmentByImageID(c context.Context, imageID string) (entity.AssessmentRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var record AssessmentRecordDB

	argsKV := map[string]interface{}{
		"image_id": imageID,
	}

	query, args, err := sqlx.Named(queryGetAssessmentByImageID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAssessmentByImageID named query preparation err")
		return entity.AssessmentRecord{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.AssessmentRecord{}, safety.ErrReportNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAssessmentByImageID execution err")
		return entity.AssessmentRecord{}, err
	}

	return r.makeAssessmentRecord(record), nil
}

func (r *reportRepository) GetLatestAssessment(c context.Context) (entity.AssessmentRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var record AssessmentRecordDB

	query, args, err := sqlx.Named(queryGetLatestAssessment, map[string]interface{}{})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLatestAssessment named query preparation err")
		return entity.AssessmentRecord{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
			}).Warn("GetLatestAssessment no rows found")
			return entity.AssessmentRecord{}, safety.ErrReportNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLatestAssessment execution err")
		return entity.AssessmentRecord{}, err
	}

	return r.makeAssessmentRecord(record), nil
}

func (r *reportRepository) makeAssessmentRecord(record AssessmentRecordDB) entity.AssessmentRecord {
	return entity.AssessmentRecord{
		ID:            record.ID.String,
		ImageID:       record.ImageID.String,
		SafetyScore:   int(record.SafetyScore.Int64),
		AlertLevel:    entity.AlertLevel(record.AlertLevel.String),
		CriticalItems: int(record.CriticalItems.Int64),
		Payload:       record.Payload,
		CreatedAt:     record.CreatedAt,
		UpdatedAt:     record.UpdatedAt,
	}
}
