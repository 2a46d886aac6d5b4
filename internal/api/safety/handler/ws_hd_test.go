package safetyHandler

import (
	"context"
	"fmt"
	"mime/multipart"
	"net"
	"os"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	fiberws "github.com/gofiber/websocket/v2"
	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"station-guard/internal/api/safety"
	"station-guard/internal/entity"
	"station-guard/pkg/log"
)

func TestMain(m *testing.M) {
	os.Setenv("APP_ENV", "test")
	os.Setenv("LOG_LEVEL", "error")
	log.NewLogger()
	os.Exit(m.Run())
}

type stubAssessService struct{}

func (s *stubAssessService) AssessFrame(c context.Context, frame entity.Frame) (*entity.FrameAssessment, error) {
	return &entity.FrameAssessment{
		ImageID:         frame.ImageID,
		TotalDetections: len(frame.Detections),
	}, nil
}

func (s *stubAssessService) AssessBatch(c context.Context, frames []entity.Frame) ([]entity.FrameAssessment, error) {
	return nil, nil
}

func (s *stubAssessService) GetLatestAssessment(c context.Context) (*entity.FrameAssessment, error) {
	return nil, safety.ErrReportNotFound
}

func (s *stubAssessService) ProcessFrameUpload(c context.Context, file *multipart.FileHeader) (safety.FrameUploadResponse, error) {
	return safety.FrameUploadResponse{}, nil
}

func (s *stubAssessService) EquipmentCatalog(c context.Context) safety.EquipmentCatalogResponse {
	return safety.EquipmentCatalogResponse{}
}

func (s *stubAssessService) GetChecklist(c context.Context, emergencyType string) (safety.ChecklistResponse, error) {
	return safety.ChecklistResponse{}, safety.ErrUnknownEmergencyType
}

// Keepalive pings share the connection with assessment writes; a ping tick
// landing mid-write must not corrupt the stream or crash the handler.
func TestHandleWebSocketAssessmentsSurvivePingTraffic(t *testing.T) {
	origPingPeriod := wsPingPeriod
	wsPingPeriod = time.Millisecond
	defer func() { wsPingPeriod = origPingPeriod }()

	h := New(log.NewLogger(), validator.New(), nil, &stubAssessService{})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", h.upgradeWebSocket)
	app.Get("/ws", fiberws.New(h.handleWebSocket))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)
	defer app.Shutdown()

	var conn *gorillaws.Conn
	require.Eventually(t, func() bool {
		c, _, dialErr := gorillaws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
		if dialErr != nil {
			return false
		}
		conn = c
		return true
	}, 5*time.Second, 50*time.Millisecond)
	defer conn.Close()

	for i := 0; i < 50; i++ {
		req := safety.AssessRequest{
			ImageID:     fmt.Sprintf("ws-img-%d", i),
			ImageWidth:  640,
			ImageHeight: 480,
		}
		require.NoError(t, conn.WriteJSON(req))

		var assessment entity.FrameAssessment
		require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
		require.NoError(t, conn.ReadJSON(&assessment))
		assert.Equal(t, req.ImageID, assessment.ImageID)
	}
}

func TestHandleWebSocketRejectsInvalidFrame(t *testing.T) {
	h := New(log.NewLogger(), validator.New(), nil, &stubAssessService{})

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Use("/ws", h.upgradeWebSocket)
	app.Get("/ws", fiberws.New(h.handleWebSocket))

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go app.Listener(ln)
	defer app.Shutdown()

	var conn *gorillaws.Conn
	require.Eventually(t, func() bool {
		c, _, dialErr := gorillaws.DefaultDialer.Dial("ws://"+ln.Addr().String()+"/ws", nil)
		if dialErr != nil {
			return false
		}
		conn = c
		return true
	}, 5*time.Second, 50*time.Millisecond)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(safety.AssessRequest{ImageID: "ws-bad"}))

	var resp map[string]string
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, conn.ReadJSON(&resp))
	assert.Equal(t, "VALIDATION_ERROR", resp["code"])
}
