package safetyService

import (
	"mime/multipart"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	analysisService "station-guard/internal/api/analysis/service"
	"station-guard/internal/api/safety"
	safetyRepository "station-guard/internal/api/safety/repository"
	"station-guard/internal/entity"
	detectorPkg "station-guard/pkg/detector"
	redisPkg "station-guard/pkg/redis"
	s3Pkg "station-guard/pkg/s3"
	"station-guard/pkg/utils"
)

type ISafetyService interface {
	AssessFrame(ctx context.Context, frame entity.Frame) (*entity.FrameAssessment, error)
	AssessBatch(ctx context.Context, frames []entity.Frame) ([]entity.FrameAssessment, error)
	GetLatestAssessment(ctx context.Context) (*entity.FrameAssessment, error)
	ProcessFrameUpload(ctx context.Context, file *multipart.FileHeader) (safety.FrameUploadResponse, error)
	EquipmentCatalog(ctx context.Context) safety.EquipmentCatalogResponse
	GetChecklist(ctx context.Context, emergencyType string) (safety.ChecklistResponse, error)
}

type safetyService struct {
	log              *logrus.Logger
	safetyRepository safetyRepository.Repository
	analysisService  analysisService.IAnalysisService
	registry         *entity.EquipmentRegistry
	redis            redisPkg.IRedis
	s3               s3Pkg.ItfS3
	detector         detectorPkg.IDetector
	utils            utils.IUtils
	batchWorkers     int
}

func NewSafetyService(
	log *logrus.Logger,
	sr safetyRepository.Repository,
	as analysisService.IAnalysisService,
	registry *entity.EquipmentRegistry,
	redis redisPkg.IRedis,
	s3 s3Pkg.ItfS3,
	detector detectorPkg.IDetector,
	utils utils.IUtils,
	batchWorkers int,
) ISafetyService {
	if batchWorkers < 1 {
		batchWorkers = 1
	}
	return &safetyService{
		log:              log,
		safetyRepository: sr,
		analysisService:  as,
		registry:         registry,
		redis:            redis,
		s3:               s3,
		detector:         detector,
		utils:            utils,
		batchWorkers:     batchWorkers,
	}
}
