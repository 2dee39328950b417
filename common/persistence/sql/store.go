// Copyright (c) 2024 Stashbase, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package sql

import (
	"context"
	dbsql "database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/stashbase/stash/common/config"
	"github.com/stashbase/stash/common/log"
	"github.com/stashbase/stash/common/log/tag"
	"github.com/stashbase/stash/common/persistence"
)

const (
	fetchQuery  = `SELECT data, revision FROM stash_records WHERE record_id = ?`
	insertQuery = `INSERT INTO stash_records (record_id, data, revision) VALUES (?, ?, 1)`
	updateQuery = `UPDATE stash_records SET data = ?, revision = revision + 1 WHERE record_id = ? AND revision = ?`
)

type (
	store struct {
		pluginName string
		db         *sqlx.DB
		logger     log.Logger
	}

	session struct {
		id    string
		store *store
	}

	recordRow struct {
		Data     []byte `db:"data"`
		Revision int64  `db:"revision"`
	}
)

var _ persistence.Store = (*store)(nil)
var _ persistence.Session = (*session)(nil)

// NewStore connects to a SQL database through the configured plugin and
// returns a store over the stash_records table
func NewStore(cfg config.SQL, logger log.Logger) (persistence.Store, error) {
	plugin, err := lookupPlugin(cfg.PluginName)
	if err != nil {
		return nil, err
	}

	db, err := sqlx.Connect(plugin.DriverName(), plugin.BuildDSN(&cfg))
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxConnLifetime > 0 {
		db.SetConnMaxLifetime(cfg.MaxConnLifetime)
	}

	return &store{
		pluginName: cfg.PluginName,
		db:         db,
		logger: logger.WithTags(
			tag.StoreName(cfg.PluginName),
			tag.SQLPlugin(cfg.PluginName),
		),
	}, nil
}

func (s *store) GetName() string {
	return s.pluginName
}

func (s *store) OpenSession(
	ctx context.Context,
	request *persistence.OpenSessionRequest,
) (persistence.Session, error) {
	if err := s.db.PingContext(ctx); err != nil {
		return nil, convertError(err)
	}
	sessionID := request.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	s.logger.Debug("opened session", tag.SessionID(sessionID))
	return &session{
		id:    sessionID,
		store: s,
	}, nil
}

func (s *store) Close() {
	if err := s.db.Close(); err != nil {
		s.logger.Error("failed to close database", tag.Error(err))
	}
}

func (s *session) GetName() string {
	return s.id
}

func (s *session) Fetch(
	ctx context.Context,
	request *persistence.FetchRequest,
) (*persistence.FetchResponse, error) {
	var row recordRow
	query := s.store.db.Rebind(fetchQuery)
	err := s.store.db.GetContext(ctx, &row, query, request.RecordID)
	if err != nil {
		if errors.Is(err, dbsql.ErrNoRows) {
			return nil, persistence.NewEntityNotExistsError(request.RecordID)
		}
		return nil, convertError(err)
	}
	return &persistence.FetchResponse{
		Record: &persistence.Record{
			ID:       request.RecordID,
			Data:     row.Data,
			Revision: row.Revision,
		},
	}, nil
}

func (s *session) Save(
	ctx context.Context,
	request *persistence.SaveRequest,
) (*persistence.SaveResponse, error) {
	record := request.Record
	if record.Revision == 0 {
		query := s.store.db.Rebind(insertQuery)
		if _, err := s.store.db.ExecContext(ctx, query, record.ID, record.Data); err != nil {
			// the row exists already or the insert raced another writer,
			// either way the revision check failed
			if isContextError(err) {
				return nil, convertError(err)
			}
			return nil, persistence.NewConditionFailedError(record.ID, record.Revision)
		}
		return &persistence.SaveResponse{Revision: 1}, nil
	}

	query := s.store.db.Rebind(updateQuery)
	result, err := s.store.db.ExecContext(ctx, query, record.Data, record.ID, record.Revision)
	if err != nil {
		return nil, convertError(err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, convertError(err)
	}
	if rows == 0 {
		return nil, persistence.NewConditionFailedError(record.ID, record.Revision)
	}
	return &persistence.SaveResponse{Revision: record.Revision + 1}, nil
}

func (s *session) Close() {
	s.store.logger.Debug("closed session", tag.SessionID(s.id))
}

func isContextError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

func convertError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &persistence.TimeoutError{Msg: err.Error()}
	}
	return err
}
