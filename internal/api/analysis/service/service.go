package analysisService

import (
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"station-guard/internal/entity"
	redisPkg "station-guard/pkg/redis"
)

type IAnalysisService interface {
	AnalyzePositioning(ctx context.Context, frame entity.Frame) []entity.PositioningResult
	AssessCondition(ctx context.Context, frame entity.Frame) entity.ConditionReport
	TriageLabels(ctx context.Context, frame entity.Frame) entity.LabelingReport
	InferContext(ctx context.Context, frame entity.Frame) entity.ContextReport
	ApplyCustomLabels(ctx context.Context, frame entity.Frame) entity.Frame
	GetCustomLabels(ctx context.Context) (map[string]string, error)
	UpdateCustomLabels(ctx context.Context, mappings map[string]string) error
}

// Params collects the tunable thresholds of every assessment stage so they
// can be tested and tuned independently of the scoring code.
type Params struct {
	Positioning PositioningParams
	Condition   ConditionParams
	Labeling    LabelingParams
	Context     ContextParams
}

type PositioningParams struct {
	// EdgeMargin is the normalized border distance beyond which an item
	// scores full marks for edge clearance.
	EdgeMargin float64

	// ReachBandLow and ReachBandHigh bound the vertical band considered
	// reachable. Centers inside the band score 1.0, decaying linearly to 0
	// at the frame top and bottom.
	ReachBandLow  float64
	ReachBandHigh float64

	EdgeFlagBelow   float64
	HeightFlagBelow float64

	GoodAbove float64
	FairAbove float64
}

type ConditionParams struct {
	HighConfidence   float64
	MediumConfidence float64
	LowConfidence    float64

	// ConsistencyVariance is the confidence variance above which multiple
	// sightings of one type are considered conflicting, costing
	// ConsistencyPenalty off the condition score.
	ConsistencyVariance float64
	ConsistencyPenalty  float64
}

type LabelingParams struct {
	AutoAcceptAt       float64
	LowConfidenceBelow float64

	HighPriorityShare   float64
	MediumPriorityShare float64

	MinDetectionArea float64
	MinAspectRatio   float64
	MaxAspectRatio   float64
}

type ContextParams struct {
	MinCoverageConfidence float64
	GoodCoverage          float64
	AdequateCoverage      float64

	HighDensityAbove   int
	MediumDensityAbove int

	HighConfidence   float64
	MediumConfidence float64

	// ModuleVotes maps equipment types to weighted station-module votes.
	ModuleVotes map[string]map[string]float64
}

func DefaultParams() Params {
	return Params{
		Positioning: PositioningParams{
			EdgeMargin:      0.10,
			ReachBandLow:    0.30,
			ReachBandHigh:   0.70,
			EdgeFlagBelow:   0.2,
			HeightFlagBelow: 0.4,
			GoodAbove:       0.75,
			FairAbove:       0.5,
		},
		Condition: ConditionParams{
			HighConfidence:      0.8,
			MediumConfidence:    0.6,
			LowConfidence:       0.5,
			ConsistencyVariance: 0.03,
			ConsistencyPenalty:  0.05,
		},
		Labeling: LabelingParams{
			AutoAcceptAt:        0.8,
			LowConfidenceBelow:  0.5,
			HighPriorityShare:   0.5,
			MediumPriorityShare: 0.2,
			MinDetectionArea:    100,
			MinAspectRatio:      0.2,
			MaxAspectRatio:      5.0,
		},
		Context: ContextParams{
			MinCoverageConfidence: 0.5,
			GoodCoverage:          0.9,
			AdequateCoverage:      0.7,
			HighDensityAbove:      5,
			MediumDensityAbove:    2,
			HighConfidence:        0.8,
			MediumConfidence:      0.5,
			ModuleVotes: map[string]map[string]float64{
				"fire_extinguisher":   {"harmony": 0.4, "unity": 0.3},
				"fire_alarm":          {"harmony": 0.4, "unity": 0.2},
				"emergency_phone":     {"harmony": 0.3, "tranquility": 0.2},
				"oxygen_tank":         {"tranquility": 0.5, "quest": 0.2},
				"nitrogen_tank":       {"tranquility": 0.4, "quest": 0.1},
				"first_aid_box":       {"destiny": 0.3, "columbus": 0.2},
				"safety_switch_panel": {"destiny": 0.3, "kibo": 0.2},
			},
		},
	}
}

type analysisService struct {
	log      *logrus.Logger
	registry *entity.EquipmentRegistry
	redis    redisPkg.IRedis
	params   Params
}

func NewAnalysisService(
	log *logrus.Logger,
	registry *entity.EquipmentRegistry,
	redis redisPkg.IRedis,
	params Params,
) IAnalysisService {
	return &analysisService{
		log:      log,
		registry: registry,
		redis:    redis,
		params:   params,
	}
}
