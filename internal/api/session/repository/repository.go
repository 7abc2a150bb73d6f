package sessionRepository

import (
	"VirtualMirror/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Consents: &consentRepository{q: sqlExecutor, log: r.log},
		UserData: &userDataRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Consents interface {
		CreateConsent(ctx context.Context, record entity.ConsentRecord) error
		GetLatestConsent(ctx context.Context) (entity.ConsentRecord, error)
	}

	// UserData gathers everything the inactivity wipe removes. Consent
	// records stay: they are the legal trail, not profile data.
	UserData interface {
		DeleteGenerationResults(ctx context.Context) error
		DeleteTryOns(ctx context.Context) error
	}

	Commit   func() error
	Rollback func() error
}

type consentRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type userDataRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
