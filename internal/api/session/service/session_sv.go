package sessionService

import (
	"VirtualMirror/internal/api/session"
	"VirtualMirror/internal/entity"
	contextPkg "VirtualMirror/pkg/context"
	jwtPkg "VirtualMirror/pkg/jwt"
	"VirtualMirror/pkg/kv"
	"context"
	"errors"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

const accessTokenTTL = 12 * time.Hour

func (s *sessionService) Bootstrap(ctx context.Context) (session.BootstrapResponse, error) {
	flags := s.loadFlags(ctx)
	state := s.machine.Boot(flags)

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"state":      state.String(),
	}).Info("Session bootstrapped")

	return session.BootstrapResponse{
		State:         state.String(),
		TermsAccepted: flags.TermsAccepted,
		GDPRAccepted:  flags.GDPRAccepted,
		Authenticated: flags.Authenticated,
	}, nil
}

func (s *sessionService) AcceptTerms(ctx context.Context) (entity.SessionState, error) {
	if err := s.store.Set(ctx, kv.KeyTermsAccepted, "true", 0); err != nil {
		return s.machine.State(), err
	}

	s.machine.TermsAccepted()
	return s.machine.State(), nil
}

func (s *sessionService) GrantConsent(ctx context.Context, req session.ConsentRequest) (session.ConsentResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	// Terms come first; a signature alone does not open the gate.
	if !s.machine.Flags().TermsAccepted {
		return session.ConsentResponse{}, session.ErrTermsNotAccepted
	}

	if req.Signature == nil {
		return session.ConsentResponse{}, session.ErrSignatureRequired
	}

	if err := s.utils.ValidateImageFile(req.Signature); err != nil {
		return session.ConsentResponse{}, session.ErrSignatureRequired
	}

	signatureURL, err := s.s3Client.UploadFile(req.Signature)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to upload consent signature")
		return session.ConsentResponse{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return session.ConsentResponse{}, err
	}

	consentText, textErr := s.store.Get(ctx, kv.KeyGDPRConsentText)
	if textErr != nil && !errors.Is(textErr, kv.ErrNotFound) {
		return session.ConsentResponse{}, textErr
	}

	now := time.Now()
	record := entity.ConsentRecord{
		ID:              id,
		FullName:        req.FullName,
		Email:           req.Email,
		DocumentID:      req.DocumentID,
		SignatureURL:    signatureURL,
		ConsentText:     consentText,
		AcceptedTermsAt: now,
		SignedAt:        now,
	}

	repo, err := s.sessionRepo.NewClient(false)
	if err != nil {
		return session.ConsentResponse{}, err
	}

	if err := repo.Consents.CreateConsent(ctx, record); err != nil {
		return session.ConsentResponse{}, err
	}

	if err := s.store.Set(ctx, kv.KeyGDPRAccepted, "true", 0); err != nil {
		return session.ConsentResponse{}, err
	}

	s.machine.ConsentGranted()

	// Receipt delivery must not block nor fail the consent itself.
	go func(email, name string, signedAt time.Time) {
		if err := s.smtpClient.SendConsentReceipt(email, name, signedAt); err != nil {
			s.log.WithFields(logrus.Fields{
				"error": err.Error(),
			}).Warn("Failed to send consent receipt email")
		}
	}(record.Email, record.FullName, record.SignedAt)

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"consent_id": id,
	}).Info("GDPR consent recorded")

	return session.ConsentResponse{
		ID:           id,
		SignatureURL: signatureURL,
		SignedAt:     record.SignedAt.Format(time.RFC3339),
		State:        s.machine.State().String(),
	}, nil
}

func (s *sessionService) Login(ctx context.Context, req session.LoginRequest) (session.LoginResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	flags := s.machine.Flags()
	if !flags.TermsAccepted || !flags.GDPRAccepted {
		return session.LoginResponse{}, session.ErrConsentRequired
	}

	storedHash := os.Getenv("MIRROR_ACCESS_CODE_HASH")
	if storedHash == "" {
		s.log.Error("MIRROR_ACCESS_CODE_HASH is not configured")
		return session.LoginResponse{}, session.ErrInvalidCredentials
	}

	if err := s.bcrypt.ComparePassword(storedHash, req.AccessCode); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
		}).Warn("Rejected login with wrong access code")
		return session.LoginResponse{}, session.ErrInvalidCredentials
	}

	sessionID, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return session.LoginResponse{}, err
	}

	device := req.Device
	if device == "" {
		device = "mirror"
	}

	token, expiresAt, err := jwtPkg.Sign(map[string]interface{}{
		"id":     sessionID,
		"device": device,
	}, accessTokenTTL)
	if err != nil {
		return session.LoginResponse{}, err
	}

	if err := s.store.Set(ctx, kv.KeyAuthenticated, "true", 0); err != nil {
		return session.LoginResponse{}, err
	}

	s.machine.Authenticated()

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"session_id": sessionID,
	}).Info("Mirror session authenticated")

	return session.LoginResponse{
		AccessToken: token,
		ExpiresAt:   expiresAt,
		State:       s.machine.State().String(),
	}, nil
}

func (s *sessionService) ReportActivity(ctx context.Context) {
	s.machine.ReportActivity()
}

func (s *sessionService) EnterBackground(ctx context.Context) {
	s.machine.EnterBackground()
}

func (s *sessionService) EnterForeground(ctx context.Context) {
	s.machine.EnterForeground()
}

func (s *sessionService) State(ctx context.Context) session.StateResponse {
	flags := s.machine.Flags()
	return session.StateResponse{
		State:         s.machine.State().String(),
		TermsAccepted: flags.TermsAccepted,
		GDPRAccepted:  flags.GDPRAccepted,
		Authenticated: flags.Authenticated,
	}
}

func (s *sessionService) ForceWipe(ctx context.Context) {
	s.machine.ForceWipe()
}

func (s *sessionService) loadFlags(ctx context.Context) entity.SessionFlags {
	return entity.SessionFlags{
		TermsAccepted: s.flagSet(ctx, kv.KeyTermsAccepted),
		GDPRAccepted:  s.flagSet(ctx, kv.KeyGDPRAccepted),
		Authenticated: s.flagSet(ctx, kv.KeyAuthenticated),
	}
}

func (s *sessionService) flagSet(ctx context.Context, key string) bool {
	val, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.WithFields(logrus.Fields{
				"key":   key,
				"error": err.Error(),
			}).Warn("Failed to read session flag, assuming unset")
		}
		return false
	}
	return val == "true"
}
