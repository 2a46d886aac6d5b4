package analysisService

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/context"

	"station-guard/internal/api/analysis"
	"station-guard/internal/entity"
)

func TestApplyCustomLabelsRemapsDetections(t *testing.T) {
	s := newTestService()
	s.redis = &mockRedis{mappings: map[string]string{"extinguisher": "fire_extinguisher"}}

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "extinguisher", Confidence: 0.9},
			{Label: "oxygen_tank", Confidence: 0.8},
		},
	}

	remapped := s.ApplyCustomLabels(context.Background(), frame)

	assert.Equal(t, "fire_extinguisher", remapped.Detections[0].Label)
	assert.Equal(t, "oxygen_tank", remapped.Detections[1].Label)
}

func TestApplyCustomLabelsDegradesOnStoreFailure(t *testing.T) {
	s := newTestService()
	s.redis = &mockRedis{fail: true}

	frame := entity.Frame{
		Detections: []entity.Detection{
			{Label: "extinguisher", Confidence: 0.9},
		},
	}

	result := s.ApplyCustomLabels(context.Background(), frame)
	assert.Equal(t, "extinguisher", result.Detections[0].Label)
}

func TestUpdateCustomLabelsNormalizesEntries(t *testing.T) {
	s := newTestService()
	store := &mockRedis{}
	s.redis = store

	err := s.UpdateCustomLabels(context.Background(), map[string]string{
		"Extinguisher": "Fire Extinguisher",
	})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"extinguisher": "fire_extinguisher"}, store.mappings)
}

func TestUpdateCustomLabelsRejectsBlankEntries(t *testing.T) {
	s := newTestService()

	err := s.UpdateCustomLabels(context.Background(), map[string]string{
		"extinguisher": "   ",
	})
	assert.ErrorIs(t, err, analysis.ErrInvalidLabelMapping)

	err = s.UpdateCustomLabels(context.Background(), map[string]string{
		"": "fire_extinguisher",
	})
	assert.ErrorIs(t, err, analysis.ErrInvalidLabelMapping)
}

func TestGetCustomLabelsNeverReturnsNilMap(t *testing.T) {
	s := newTestService()
	s.redis = &mockRedis{}

	mappings, err := s.GetCustomLabels(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, mappings)
	assert.Empty(t, mappings)
}
