package captureService

import (
	"VirtualMirror/internal/api/capture"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/kv"
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
)

const profileKey = kv.KeyPrefixProfile + "current"

func (s *captureService) CheckPosition(ctx context.Context, frame []byte) (*capture.PositionResponse, error) {
	if len(frame) == 0 {
		return nil, capture.ErrNoFrameProvided
	}

	result, err := s.ProcessFrame(frame)
	if err != nil {
		return nil, err
	}

	return &capture.PositionResponse{
		Status:       result.Status,
		Instructions: result.Instructions,
		XDeviation:   result.XDeviation,
		YDeviation:   result.YDeviation,
		BodyRatio:    result.BodyRatio,
	}, nil
}

func (s *captureService) ProcessFrame(frame []byte) (*entity.PoseResult, error) {
	result, err := s.poseClient.ProcessPoseFrame(frame)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"error": err.Error(),
		}).Warn("Pose detection call failed")
		return nil, capture.ErrPoseServiceUnavailable
	}

	return result, nil
}

func (s *captureService) SaveProfile(ctx context.Context, req capture.ProfileRequest) (entity.Profile, error) {
	profile := entity.Profile{
		DisplayName:  req.DisplayName,
		PhotoURL:     req.PhotoURL,
		Measurements: req.Measurements,
		UpdatedAt:    time.Now(),
	}

	raw, err := json.Marshal(profile)
	if err != nil {
		return entity.Profile{}, err
	}

	// Lives under the profile prefix, so the inactivity wipe removes it.
	if err := s.store.Set(ctx, profileKey, string(raw), 0); err != nil {
		return entity.Profile{}, err
	}

	return profile, nil
}

func (s *captureService) GetProfile(ctx context.Context) (entity.Profile, error) {
	raw, err := s.store.Get(ctx, profileKey)
	if errors.Is(err, kv.ErrNotFound) {
		return entity.Profile{}, capture.ErrProfileNotFound
	}
	if err != nil {
		return entity.Profile{}, err
	}

	var profile entity.Profile
	if err := json.Unmarshal([]byte(raw), &profile); err != nil {
		return entity.Profile{}, capture.ErrProfileNotFound
	}

	return profile, nil
}
