package safetyRepository

const (
	queryUpsertAssessment = `
		INSERT INTO assessment_reports (
			id,
			image_id,
			safety_score,
			alert_level,
			critical_items,
			payload,
			created_at,
			updated_at
		) VALUES (
			:id,
			:image_id,
			:safety_score,
			:alert_level,
			:critical_items,
			:payload,
			:created_at,
			:updated_at
		)
		ON CONFLICT (image_id) DO UPDATE SET
			safety_score = EXCLUDED.safety_score,
			alert_level = EXCLUDED.alert_level,
			critical_items = EXCLUDED.critical_items,
			payload = EXCLUDED.payload,
			updated_at = EXCLUDED.updated_at
	`

	queryGetAssessmentByImageID = `
		SELECT
			id,
			image_id,
			safety_score,
			alert_level,
			critical_items,
			payload,
			created_at,
			updated_at
		FROM assessment_reports
		WHERE image_id = :image_id
	`

	queryGetLatestAssessment = `
		SELECT
			id,
			image_id,
			safety_score,
			alert_level,
			critical_items,
			payload,
			created_at,
			updated_at
		FROM assessment_reports
		ORDER BY updated_at DESC
		LIMIT 1
	`

	queryInsertDetectionLog = `
		INSERT INTO detection_logs (
			id,
			image_id,
			label,
			confidence,
			bbox,
			created_at
		) VALUES (
			:id,
			:image_id,
			:label,
			:confidence,
			:bbox,
			:created_at
		)
	`

	queryGetDetectionsByImageID = `
		SELECT
			id,
			image_id,
			label,
			confidence,
			bbox,
			created_at
		FROM detection_logs
		WHERE image_id = :image_id
		ORDER BY created_at ASC, id ASC
	`
)
