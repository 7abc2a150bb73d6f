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

type TryOnDB struct {
	ID              sql.NullString `db:"id"`
	PersonImageURL  sql.NullString `db:"person_image_url"`
	GarmentID       sql.NullString `db:"garment_id"`
	GarmentImageURL sql.NullString `db:"garment_image_url"`
	Category        sql.NullString `db:"category"`
	CompositeURL    sql.NullString `db:"composite_url"`
	Favorite        sql.NullBool   `db:"favorite"`
	CreatedAt       time.Time      `db:"created_at"`
	UpdatedAt       time.Time      `db:"updated_at"`
}

func (r *tryonRepository) CreateTryOn(c context.Context, t entity.TryOn) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                t.ID,
		"person_image_url":  t.PersonImageURL,
		"garment_id":        t.GarmentID,
		"garment_image_url": t.GarmentImageURL,
		"category":          t.Category,
		"composite_url":     t.CompositeURL,
		"favorite":          t.Favorite,
		"created_at":        time.Now(),
		"updated_at":        time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateTryOn, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateTryOn")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating try-on")
		return err
	}

	return nil
}

func (r *tryonRepository) GetTryOnByID(c context.Context, id string) (entity.TryOn, error) {
	requestID := contextPkg.GetRequestID(c)
	var row TryOnDB

	argsKV := map[string]interface{}{
		"id": id,
	}

	query, args, err := sqlx.Named(queryGetTryOnByID, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTryOnByID named query preparation err")
		return entity.TryOn{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(c, query, args...).StructScan(&row); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.TryOn{}, tryon.ErrTryOnNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetTryOnByID execution err")
		return entity.TryOn{}, err
	}

	return r.makeTryOn(row), nil
}

func (r *tryonRepository) GetAllTryOns(c context.Context) ([]entity.TryOn, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TryOnDB

	query := r.q.Rebind(queryGetAllTryOns)

	if err := r.q.SelectContext(c, &rows, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllTryOns execution err")
		return nil, err
	}

	result := make([]entity.TryOn, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeTryOn(row))
	}

	return result, nil
}

func (r *tryonRepository) GetFavoriteTryOns(c context.Context) ([]entity.TryOn, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []TryOnDB

	query := r.q.Rebind(queryGetFavoriteTryOns)

	if err := r.q.SelectContext(c, &rows, query); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetFavoriteTryOns execution err")
		return nil, err
	}

	result := make([]entity.TryOn, 0, len(rows))
	for _, row := range rows {
		result = append(result, r.makeTryOn(row))
	}

	return result, nil
}

func (r *tryonRepository) SetFavorite(c context.Context, id string, favorite bool) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":         id,
		"favorite":   favorite,
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(querySetFavorite, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SetFavorite named query preparation err")
		return err
	}

	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("SetFavorite execution err")
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return tryon.ErrTryOnNotFound
	}

	return nil
}

func (r *tryonRepository) makeTryOn(row TryOnDB) entity.TryOn {
	return entity.TryOn{
		ID:              row.ID.String,
		PersonImageURL:  row.PersonImageURL.String,
		GarmentID:       row.GarmentID.String,
		GarmentImageURL: row.GarmentImageURL.String,
		Category:        row.Category.String,
		CompositeURL:    row.CompositeURL.String,
		Favorite:        row.Favorite.Bool,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}
}
