package voiceRepository

import (
	"EnergyPalace/internal/api/voice"
	"EnergyPalace/internal/entity"
	contextPkg "EnergyPalace/pkg/context"
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type VoiceCommandDB struct {
	ID         sql.NullString  `db:"id"`
	Transcript sql.NullString  `db:"transcript"`
	Language   sql.NullString  `db:"language"`
	Intent     sql.NullString  `db:"intent"`
	Response   sql.NullString  `db:"response"`
	Confidence sql.NullFloat64 `db:"confidence"`
	Success    sql.NullBool    `db:"success"`
	Metadata   []byte          `db:"metadata"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

func (r *historyRepository) CreateCommand(c context.Context, cmd entity.VoiceCommand) error {
	requestID := contextPkg.GetRequestID(c)

	metadata, err := json.Marshal(cmd.Metadata)
	if err != nil {
		metadata = []byte("{}")
	}

	argsKV := map[string]interface{}{
		"id":         cmd.ID,
		"transcript": cmd.Transcript,
		"language":   cmd.Language,
		"intent":     cmd.Intent,
		"response":   cmd.Response,
		"confidence": cmd.Confidence,
		"success":    cmd.Success,
		"metadata":   metadata,
		"created_at": time.Now(),
		"updated_at": time.Now(),
	}

	query, args, err := sqlx.Named(queryCreateCommand, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCommand")
		return err
	}
	query = r.q.Rebind(query)

	_, err = r.q.ExecContext(c, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when recording voice command")

		return err
	}

	return nil
}

func (r *historyRepository) GetCommands(c context.Context, limit int, offset int) ([]entity.VoiceCommand, int, error) {
	requestID := contextPkg.GetRequestID(c)

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetCommands, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for GetCommands")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	var rows []VoiceCommandDB
	if err := r.q.SelectContext(c, &rows, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when fetching voice command history")
		return nil, 0, err
	}

	var total int
	if err := r.q.GetContext(c, &total, queryCountCommands); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when counting voice commands")
		return nil, 0, err
	}

	commands := make([]entity.VoiceCommand, 0, len(rows))
	for _, row := range rows {
		commands = append(commands, row.toEntity())
	}

	return commands, total, nil
}

func (r *historyRepository) GetIntentStats(c context.Context) ([]voice.IntentStat, error) {
	requestID := contextPkg.GetRequestID(c)

	var rows []struct {
		Intent    string `db:"intent"`
		Total     int    `db:"total"`
		Succeeded int    `db:"succeeded"`
	}

	if err := r.q.SelectContext(c, &rows, queryIntentStats); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when aggregating intent stats")
		return nil, err
	}

	stats := make([]voice.IntentStat, 0, len(rows))
	for _, row := range rows {
		stat := voice.IntentStat{
			Intent:    row.Intent,
			Total:     row.Total,
			Succeeded: row.Succeeded,
		}
		if row.Total > 0 {
			stat.Rate = float64(row.Succeeded) / float64(row.Total)
		}
		stats = append(stats, stat)
	}

	return stats, nil
}

func (r *historyRepository) GetLanguageStats(c context.Context) ([]voice.LanguageStat, error) {
	requestID := contextPkg.GetRequestID(c)

	var rows []struct {
		Language  string `db:"language"`
		Total     int    `db:"total"`
		Succeeded int    `db:"succeeded"`
	}

	if err := r.q.SelectContext(c, &rows, queryLanguageStats); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when aggregating language stats")
		return nil, err
	}

	stats := make([]voice.LanguageStat, 0, len(rows))
	for _, row := range rows {
		stat := voice.LanguageStat{
			Language:  row.Language,
			Total:     row.Total,
			Succeeded: row.Succeeded,
		}
		if row.Total > 0 {
			stat.Rate = float64(row.Succeeded) / float64(row.Total)
		}
		stats = append(stats, stat)
	}

	return stats, nil
}

func (row VoiceCommandDB) toEntity() entity.VoiceCommand {
	var metadata map[string]interface{}
	if len(row.Metadata) > 0 {
		_ = json.Unmarshal(row.Metadata, &metadata)
	}

	return entity.VoiceCommand{
		ID:         row.ID.String,
		Transcript: row.Transcript.String,
		Language:   row.Language.String,
		Intent:     row.Intent.String,
		Response:   row.Response.String,
		Confidence: row.Confidence.Float64,
		Success:    row.Success.Bool,
		Metadata:   metadata,
		CreatedAt:  row.CreatedAt,
		UpdatedAt:  row.UpdatedAt,
	}
}
