package tryonRepository

import (
	"VirtualMirror/internal/api/tryon"
	"VirtualMirror/internal/entity"
	contextPkg "VirtualMirror/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type GenerationDB struct {
	ID             sql.NullString `db:"id"`
	TryOnID        sql.NullString `db:"tryon_id"`
	SourceImageRef sql.NullString `db:"source_image_ref"`
	Backend        sql.NullString `db:"backend"`
	VideoURL       sql.NullString `db:"video_url"`
	Status         sql.NullString `db:"status"`
	ErrorDetail    sql.NullString `db:"error_detail"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r *generationRepository) CreateGeneration(c context.Context, g entity.GenerationResult) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":               g.ID,
		"tryon_id":         g.TryOnID,
		"source_image_ref": g.SourceImageRef,
		"backend":          g.Backend,
		"video_url":        g.VideoURL,
		"status":           string(g.Status),
		"error_detail":     g.ErrorDetail,
		"created_at":       time.Now(),
		"updated_at":       time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateGeneration, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateGeneration")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating generation record")
		return err
	}

	return nil
}

func (r *generationRepository) UpdateGeneration(c context.Context, g entity.GenerationResult) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":           g.ID,
		"video_url":    g.VideoURL,
		"status":       string(g.Status),
		"error_detail": g.ErrorDetail,
		"updated_at":   time.Now(),
	}

	query, args, err := sqlx.Named(queryUpdateGeneration, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGeneration named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("UpdateGeneration execution err")
		return err
	}

	return nil
}

func (r *generationRepository) GetGenerationByID(c context.Context, id string) (entity.GenerationResult, error) {
	requestID := contextPkg.GetRequestID(c)
	var row GenerationDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetGenerationByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGenerationByID named query preparation err")
		return entity.GenerationResult{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.GenerationResult{}, tryon.ErrGenerationNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGenerationByID execution err")
		return entity.GenerationResult{}, err
	}

	return r.makeGeneration(row), nil
}

func (r *generationRepository) GetGenerationsByTryOnID(c context.Context, tryOnID string) ([]entity.GenerationResult, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []GenerationDB

	argsKV := map[string]interface{}{
		"tryon_id": tryOnID,
	}

	query, args, err := sqlx.Named(queryGetGenerationsByTryOnID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGenerationsByTryOnID named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGenerationsByTryOnID execution err")
		return nil, err
	}

	result := make([]entity.GenerationResult, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeGeneration(row))
	}

	return result, nil
}

func (r *generationRepository) makeGeneration(row GenerationDB) entity.GenerationResult {
	return entity.GenerationResult{
		ID:             row.ID.String,
		TryOnID:        row.TryOnID.String,
		SourceImageRef: row.SourceImageRef.String,
		Backend:        row.Backend.String,
		VideoURL:       row.VideoURL.String,
		Status:         entity.GenerationStatus(row.Status.String),
		ErrorDetail:    row.ErrorDetail.String,
		CreatedAt:      row.CreatedAt,
		UpdatedAt:      row.UpdatedAt,
	}
}
