package captureService

import (
	"VirtualMirror/internal/api/capture"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/kv"
	websocketPkg "VirtualMirror/pkg/websocket"
	"context"

	"github.com/sirupsen/logrus"
)

type ICaptureService interface {
	CheckPosition(ctx context.Context, frame []byte) (*capture.PositionResponse, error)
	ProcessFrame(frame []byte) (*entity.PoseResult, error)

	SaveProfile(ctx context.Context, req capture.ProfileRequest) (entity.Profile, error)
	GetProfile(ctx context.Context) (entity.Profile, error)
}

type captureService struct {
	log        *logrus.Logger
	poseClient websocketPkg.IWebsocket
	store      kv.IStore
}

func New(log *logrus.Logger, poseClient websocketPkg.IWebsocket, store kv.IStore) ICaptureService {
	return &captureService{
		log:        log,
		poseClient: poseClient,
		store:      store,
	}
}
