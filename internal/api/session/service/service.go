package sessionService

import (
	"VirtualMirror/internal/api/session"
	sessionRepository "VirtualMirror/internal/api/session/repository"
	"VirtualMirror/internal/entity"
	"VirtualMirror/pkg/bcrypt"
	"VirtualMirror/pkg/kv"
	"VirtualMirror/pkg/lifecycle"
	"VirtualMirror/pkg/s3"
	"VirtualMirror/pkg/smtp"
	"VirtualMirror/pkg/utils"
	"context"

	"github.com/sirupsen/logrus"
)

type ISessionService interface {
	Bootstrap(ctx context.Context) (session.BootstrapResponse, error)
	AcceptTerms(ctx context.Context) (entity.SessionState, error)
	GrantConsent(ctx context.Context, req session.ConsentRequest) (session.ConsentResponse, error)
	Login(ctx context.Context, req session.LoginRequest) (session.LoginResponse, error)
	ReportActivity(ctx context.Context)
	EnterBackground(ctx context.Context)
	EnterForeground(ctx context.Context)
	State(ctx context.Context) session.StateResponse
	ForceWipe(ctx context.Context)
}

type sessionService struct {
	log         *logrus.Logger
	sessionRepo sessionRepository.Repository
	store       kv.IStore
	machine     *lifecycle.Machine
	s3Client    s3.ItfS3
	smtpClient  smtp.ItfSmtp
	bcrypt      bcrypt.IBcrypt
	utils       utils.IUtils
}

func New(
	log *logrus.Logger,
	sessionRepo sessionRepository.Repository,
	store kv.IStore,
	machine *lifecycle.Machine,
	s3Client s3.ItfS3,
	smtpClient smtp.ItfSmtp,
	bcryptService bcrypt.IBcrypt,
	utils utils.IUtils,
) ISessionService {
	return &sessionService{
		log:         log,
		sessionRepo: sessionRepo,
		store:       store,
		machine:     machine,
		s3Client:    s3Client,
		smtpClient:  smtpClient,
		bcrypt:      bcryptService,
		utils:       utils,
	}
}
