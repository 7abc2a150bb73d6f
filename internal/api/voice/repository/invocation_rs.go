package voiceRepository

import (
	"VirtualMirror/internal/api/voice"
	contextPkg "VirtualMirror/pkg/context"
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type InvocationDB struct {
	ID         sql.NullString `db:"id"`
	Utterance  sql.NullString `db:"utterance"`
	CommandID  sql.NullString `db:"command_id"`
	ActionType sql.NullString `db:"action_type"`
	Target     sql.NullString `db:"target"`
	Matched    sql.NullBool   `db:"matched"`
	CreatedAt  time.Time      `db:"created_at"`
}

func (r *invocationRepository) CreateInvocation(c context.Context, inv voice.InvocationHistory) error {
	requestID := contextPkg.GetRequestID(c)
	argsKV := map[string]interface{}{
		"id":          inv.ID,
		"utterance":   inv.Utterance,
		"command_id":  inv.CommandID,
		"action_type": inv.ActionType,
		"target":      inv.Target,
		"matched":     inv.Matched,
		"created_at":  time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateInvocation, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateInvocation")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when recording voice invocation")
		return err
	}

	return nil
}

func (r *invocationRepository) GetRecentInvocations(c context.Context, limit int) ([]voice.InvocationHistory, error) {
	requestID := contextPkg.GetRequestID(c)
	var rows []InvocationDB

	argsKV := map[string]interface{}{
		"limit": limit,
	}

	query, args, err := sqlx.Named(queryGetRecentInvocations, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecentInvocations named query preparation err")
		return nil, err
	}

	query = r.q.Rebind(query)

	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetRecentInvocations execution err")
		return nil, err
	}

	result := make([]voice.InvocationHistory, 0, len(rows))
	for _, row := range rows {
		result = append(result, voice.InvocationHistory{
			ID:         row.ID.String,
			Utterance:  row.Utterance.String,
			CommandID:  row.CommandID.String,
			ActionType: row.ActionType.String,
			Target:     row.Target.String,
			Matched:    row.Matched.Bool,
			CreatedAt:  row.CreatedAt,
		})
	}

	return result, nil
}
