package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/maildeck/mailsift/internal/db"
)

// MessageEntity is one processed message as persisted. Clean, quoted and
// extracted parts are stored separately so clients never re-run the
// pipeline to render a message.
type MessageEntity struct {
	ID          string     `db:"id" json:"id"`
	MessageID   string     `db:"message_id" json:"message_id"`
	ThreadID    string     `db:"thread_id" json:"thread_id"`
	Date        *time.Time `db:"date" json:"date"`
	CleanBody   string     `db:"clean_body" json:"clean_body"`
	Quoted      string     `db:"quoted_content" json:"quoted_content,omitempty"`
	Signatures  []string   `db:"signatures" json:"signatures,omitempty"`
	Banners     []string   `db:"banners" json:"banners,omitempty"`
	IsDuplicate bool       `db:"is_duplicate" json:"is_duplicate"`
	Language    string     `db:"language" json:"language,omitempty"`
	Confidence  float64    `db:"language_confidence" json:"language_confidence,omitempty"`
	Snippet     string     `db:"snippet" json:"snippet"`
	RawSize     int        `db:"raw_size" json:"raw_size"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type MessageRepository interface {
	Save(ctx context.Context, msg *MessageEntity) error
	GetByID(ctx context.Context, id string) (*MessageEntity, error)
	GetAll(ctx context.Context, limit, offset int) ([]*MessageEntity, error)
	GetByThread(ctx context.Context, threadID string) ([]*MessageEntity, error)
}

// dbExecutor captures the subset of pool API we use, to enable testing/mocking.
type dbExecutor interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

type PostgresMessageRepo struct {
	pool dbExecutor
}

func NewPostgresMessageRepo(pool *db.TimeoutPool) *PostgresMessageRepo {
	return &PostgresMessageRepo{pool: pool}
}

var ErrMessageNotFound = errors.New("message not found")

const upsertMessage = `
INSERT INTO messages (
  id, message_id, thread_id, date, clean_body, quoted_content,
  signatures, banners, is_duplicate, language, language_confidence,
  snippet, raw_size, created_at
) VALUES (
  $1,$2,$3,$4,$5,$6,
  $7,$8,$9,$10,$11,
  $12,$13,$14
)
ON CONFLICT (message_id) DO UPDATE SET
  thread_id = EXCLUDED.thread_id,
  date = EXCLUDED.date,
  clean_body = EXCLUDED.clean_body,
  quoted_content = EXCLUDED.quoted_content,
  signatures = EXCLUDED.signatures,
  banners = EXCLUDED.banners,
  is_duplicate = EXCLUDED.is_duplicate,
  language = EXCLUDED.language,
  language_confidence = EXCLUDED.language_confidence,
  snippet = EXCLUDED.snippet,
  raw_size = EXCLUDED.raw_size
`

const selectMessageByID = `
SELECT id, message_id, thread_id, date, clean_body, quoted_content,
       signatures, banners, is_duplicate, language, language_confidence,
       snippet, raw_size, created_at
FROM messages WHERE id = $1
`

const selectAllMessages = `
SELECT id, message_id, thread_id, date, clean_body, quoted_content,
       signatures, banners, is_duplicate, language, language_confidence,
       snippet, raw_size, created_at
FROM messages
ORDER BY created_at DESC
LIMIT $1 OFFSET $2
`

const selectMessagesByThread = `
SELECT id, message_id, thread_id, date, clean_body, quoted_content,
       signatures, banners, is_duplicate, language, language_confidence,
       snippet, raw_size, created_at
FROM messages
WHERE thread_id = $1
ORDER BY date ASC, created_at ASC
`

func (r *PostgresMessageRepo) Save(ctx context.Context, msg *MessageEntity) error {
	signaturesJSON, err := json.Marshal(msg.Signatures)
	if err != nil {
		return err
	}
	bannersJSON, err := json.Marshal(msg.Banners)
	if err != nil {
		return err
	}
	createdAt := msg.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	_, err = r.pool.Exec(ctx, upsertMessage,
		msg.ID, msg.MessageID, msg.ThreadID, msg.Date, msg.CleanBody, msg.Quoted,
		signaturesJSON, bannersJSON, msg.IsDuplicate, msg.Language, msg.Confidence,
		msg.Snippet, msg.RawSize, createdAt,
	)
	return err
}

func (r *PostgresMessageRepo) GetByID(ctx context.Context, id string) (*MessageEntity, error) {
	row := r.pool.QueryRow(ctx, selectMessageByID, id)

	msg, err := scanMessage(row.Scan)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}
	return msg, nil
}

func (r *PostgresMessageRepo) GetAll(ctx context.Context, limit, offset int) ([]*MessageEntity, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.pool.Query(ctx, selectAllMessages, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMessages(rows, limit)
}

func (r *PostgresMessageRepo) GetByThread(ctx context.Context, threadID string) ([]*MessageEntity, error) {
	rows, err := r.pool.Query(ctx, selectMessagesByThread, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectMessages(rows, 8)
}

func collectMessages(rows pgx.Rows, sizeHint int) ([]*MessageEntity, error) {
	out := make([]*MessageEntity, 0, sizeHint)
	for rows.Next() {
		msg, err := scanMessage(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, msg)
	}
	if rows.Err() != nil {
		return nil, rows.Err()
	}
	return out, nil
}

func scanMessage(scan func(dest ...interface{}) error) (*MessageEntity, error) {
	var msg MessageEntity
	var signaturesJSON, bannersJSON []byte
	var dateNT sql.NullTime
	var confNF sql.NullFloat64

	err := scan(
		&msg.ID, &msg.MessageID, &msg.ThreadID, &dateNT, &msg.CleanBody, &msg.Quoted,
		&signaturesJSON, &bannersJSON, &msg.IsDuplicate, &msg.Language, &confNF,
		&msg.Snippet, &msg.RawSize, &msg.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if dateNT.Valid {
		msg.Date = &dateNT.Time
	}
	if confNF.Valid {
		msg.Confidence = confNF.Float64
	}
	if len(signaturesJSON) > 0 {
		_ = json.Unmarshal(signaturesJSON, &msg.Signatures)
	}
	if len(bannersJSON) > 0 {
		_ = json.Unmarshal(bannersJSON, &msg.Banners)
	}
	return &msg, nil
}
