package tryonRepository

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
		TryOns:      &tryonRepository{q: sqlExecutor, log: r.log},
		Generations: &generationRepository{q: sqlExecutor, log: r.log},
		Commit:      commitFunc,
		Rollback:    rollbackFunc,
	}, nil
}

type Client struct {
	TryOns interface {
		CreateTryOn(ctx context.Context, t entity.TryOn) error
		GetTryOnByID(ctx context.Context, id string) (entity.TryOn, error)
		GetAllTryOns(ctx context.Context) ([]entity.TryOn, error)
		GetFavoriteTryOns(ctx context.Context) ([]entity.TryOn, error)
		SetFavorite(ctx context.Context, id string, favorite bool) error
	}

	Generations interface {
		CreateGeneration(ctx context.Context, g entity.GenerationResult) error
		UpdateGeneration(ctx context.Context, g entity.GenerationResult) error
		GetGenerationByID(ctx context.Context, id string) (entity.GenerationResult, error)
		GetGenerationsByTryOnID(ctx context.Context, tryOnID string) ([]entity.GenerationResult, error)
	}

	Commit   func() error
	Rollback func() error
}

type tryonRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type generationRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
