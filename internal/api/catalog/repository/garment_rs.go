package catalogRepository

import (
	"VirtualMirror/internal/api/catalog"
	"VirtualMirror/internal/entity"
	contextPkg "VirtualMirror/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type GarmentDB struct {
	ID          sql.NullString `db:"id"`
	Name        sql.NullString `db:"name"`
	Brand       sql.NullString `db:"brand"`
	Category    sql.NullString `db:"category"`
	ImageURL    sql.NullString `db:"image_url"`
	Description sql.NullString `db:"description"`
	IsActive    sql.NullBool   `db:"is_active"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (r *garmentRepository) CreateGarment(c context.Context, garment entity.Garment) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          garment.ID,
		"name":        garment.Name,
		"brand":       garment.Brand,
		"category":    garment.Category,
		"image_url":   garment.ImageURL,
		"description": garment.Description,
		"is_active":   true,
		"created_at":  time.Now(),
		"updated_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateGarment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateGarment")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating garment")
		return err
	}

	return nil
}

func (r *garmentRepository) GetGarmentByID(c context.Context, id string) (entity.Garment, error) {
	requestID := contextPkg.GetRequestID(c)
	var garment GarmentDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetGarmentByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGarmentByID named query preparation err")
		return entity.Garment{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&garment); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			r.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"garment_id": id,
			}).Warn("GetGarmentByID no rows found")
			return entity.Garment{}, catalog.ErrGarmentNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGarmentByID execution err")
		return entity.Garment{}, err
	}

	return r.makeGarment(garment), nil
}

func (r *garmentRepository) GetAllGarments(c context.Context) ([]entity.Garment, error) {
	requestID := contextPkg.GetRequestID(c)
	var garments []GarmentDB

	query := r.q.Rebind(queryGetAllGarments)

	if err := r.q.SelectContext(c, &garments, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllGarments execution err")
		return nil, err
	}

	result := make([]entity.Garment, 0, len(garments))
	for _, g := range garments {
		result = append(result, r.makeGarment(g))
	}

	return result, nil
}

func (r *garmentRepository) GetGarmentsByCategory(c context.Context, category string) ([]entity.Garment, error) {
	requestID := contextPkg.GetRequestID(c)
	var garments []GarmentDB

	argsKV := map[string]interface{}{
		"category": category,
	}

	query, args, err := sqlx.Named(queryGetGarmentsByCategory, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGarmentsByCategory named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &garments, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetGarmentsByCategory execution err")
		return nil, err
	}

	result := make([]entity.Garment, 0, len(garments))
	for _, g := range garments {
		result = append(result, r.makeGarment(g))
	}

	return result, nil
}

func (r *garmentRepository) DeactivateGarment(c context.Context, id string) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryDeactivateGarment, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeactivateGarment named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("DeactivateGarment execution err")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return catalog.ErrGarmentNotFound
	}

	return nil
}

func (r *garmentRepository) makeGarment(g GarmentDB) entity.Garment {
	return entity.Garment{
		ID:          g.ID.String,
		Name:        g.Name.String,
		Brand:       g.Brand.String,
		Category:    g.Category.String,
		ImageURL:    g.ImageURL.String,
		Description: g.Description.String,
		IsActive:    g.IsActive.Bool,
		CreatedAt:   g.CreatedAt,
		UpdatedAt:   g.UpdatedAt,
	}
}
