package analysisService

import (
	"strings"

	"golang.org/x/net/context"

	"station-guard/internal/api/analysis"
	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

// ApplyCustomLabels rewrites detection labels through the operator mapping
// table before assessment. A store failure degrades to the raw labels so a
// Redis outage never blocks assessment.
func (s *analysisService) ApplyCustomLabels(ctx context.Context, frame entity.Frame) entity.Frame {
	mappings, err := s.redis.GetLabelMappings(ctx)
	if err != nil {
		log.WithRequestID(ctx).WithFields(log.Fields{
			"image_id": frame.ImageID,
			"error":    err.Error(),
		}).Warn("Failed to load custom labels, using raw detector labels")
		return frame
	}

	return frame.Remap(mappings)
}

func (s *analysisService) GetCustomLabels(ctx context.Context) (map[string]string, error) {
	mappings, err := s.redis.GetLabelMappings(ctx)
	if err != nil {
		return nil, err
	}
	if mappings == nil {
		mappings = map[string]string{}
	}
	return mappings, nil
}

// UpdateCustomLabels replaces the operator mapping table. Keys and values are
// normalized to registry form before storage.
func (s *analysisService) UpdateCustomLabels(ctx context.Context, mappings map[string]string) error {
	normalized := make(map[string]string, len(mappings))
	for from, to := range mappings {
		fromKey := entity.NormalizeLabel(from)
		toKey := entity.NormalizeLabel(to)
		if strings.TrimSpace(from) == "" || strings.TrimSpace(to) == "" {
			return analysis.ErrInvalidLabelMapping
		}
		normalized[fromKey] = toKey
	}

	if err := s.redis.SetLabelMappings(ctx, normalized); err != nil {
		return err
	}

	log.WithRequestID(ctx).WithFields(log.Fields{
		"mappings": len(normalized),
	}).Info("Custom label mappings updated")

	return nil
}
