package sessionRepository

import (
	"VirtualMirror/internal/api/session"
	"VirtualMirror/internal/entity"
	contextPkg "VirtualMirror/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type ConsentRecordDB struct {
	ID              sql.NullString `db:"id"`
	FullName        sql.NullString `db:"full_name"`
	Email           sql.NullString `db:"email"`
	DocumentID      sql.NullString `db:"document_id"`
	SignatureURL    sql.NullString `db:"signature_url"`
	ConsentText     sql.NullString `db:"consent_text"`
	AcceptedTermsAt time.Time      `db:"accepted_terms_at"`
	SignedAt        time.Time      `db:"signed_at"`
}

func (r *consentRepository) CreateConsent(c context.Context, record entity.ConsentRecord) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":                record.ID,
		"full_name":         record.FullName,
		"email":             record.Email,
		"document_id":       record.DocumentID,
		"signature_url":     record.SignatureURL,
		"consent_text":      record.ConsentText,
		"accepted_terms_at": record.AcceptedTermsAt,
		"signed_at":         record.SignedAt,
	}

	query, args, err := sqlx.Named(queryCreateConsent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateConsent")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when storing consent record")
		return err
	}

	return nil
}

func (r *consentRepository) GetLatestConsent(c context.Context) (entity.ConsentRecord, error) {
	requestID := contextPkg.GetRequestID(c)
	var record ConsentRecordDB

	query := r.q.Rebind(queryGetLatestConsent)

	if err := r.q.QueryRowxContext(c, query).StructScan(&record); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.ConsentRecord{}, session.ErrConsentNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetLatestConsent execution err")
		return entity.ConsentRecord{}, err
	}

	return entity.ConsentRecord{
		ID:              record.ID.String,
		FullName:        record.FullName.String,
		Email:           record.Email.String,
		DocumentID:      record.DocumentID.String,
		SignatureURL:    record.SignatureURL.String,
		ConsentText:     record.ConsentText.String,
		AcceptedTermsAt: record.AcceptedTermsAt,
		SignedAt:        record.SignedAt,
	}, nil
}

func (r *userDataRepository) DeleteGenerationResults(c context.Context) error {
	requestID := contextPkg.GetRequestID(c)

	if _, err := r.q.ExecContext(c, r.q.Rebind(queryDeleteGenerationResults)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to delete generation results")
		return err
	}

	return nil
}

func (r *userDataRepository) DeleteTryOns(c context.Context) error {
	requestID := contextPkg.GetRequestID(c)

	if _, err := r.q.ExecContext(c, r.q.Rebind(queryDeleteTryOns)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to delete try-on rows")
		return err
	}

	return nil
}
