package sessions

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const keyPrefix = "session:"

// ErrNotFound is returned when a session id has no live record.
var ErrNotFound = errors.New("session not found")

// Options configures cookie handling and record lifetime.
type Options struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Store persists sessions in badger with a per-key TTL.
type Store struct {
	db   *badger.DB
	opts Options
	log  logrus.FieldLogger
}

// Open opens (or creates) a badger session store at path. An empty path
// keeps everything in memory.
func Open(path string, opts Options, log logrus.FieldLogger) (*Store, error) {
	log = orDiscard(log)
	var bopts badger.Options
	if path == "" {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("create session directory: %w", err)
		}
		bopts = badger.DefaultOptions(path)
	}
	bopts = bopts.WithLogger(badgerLogger{log.WithField("component", "badger")})

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return NewStore(db, opts, log), nil
}

// NewStore wraps an already opened badger database.
func NewStore(db *badger.DB, opts Options, log logrus.FieldLogger) *Store {
	if opts.CookieName == "" {
		opts.CookieName = "blog_session"
	}
	if opts.TTL <= 0 {
		opts.TTL = 24 * time.Hour
	}
	return &Store{db: db, opts: opts, log: orDiscard(log).WithField("component", "sessions")}
}

func orDiscard(log logrus.FieldLogger) logrus.FieldLogger {
	if log != nil {
		return log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// badgerLogger routes badger's chatter to logrus, demoting info to debug.
type badgerLogger struct {
	log logrus.FieldLogger
}

func (l badgerLogger) Errorf(format string, args ...interface{})   { l.log.Errorf(format, args...) }
func (l badgerLogger) Warningf(format string, args ...interface{}) { l.log.Warnf(format, args...) }
func (l badgerLogger) Infof(format string, args ...interface{})    { l.log.Debugf(format, args...) }
func (l badgerLogger) Debugf(format string, args ...interface{})   { l.log.Debugf(format, args...) }

// New returns a fresh unsaved session.
func (s *Store) New() *Session {
	return &Session{
		ID:        uuid.NewString(),
		ExpiresAt: time.Now().Add(s.opts.TTL),
		isNew:     true,
	}
}

// Get loads a session by id.
func (s *Store) Get(id string) (*Session, error) {
	var sess Session
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return unmarshalSession(val, &sess)
		})
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

// Load returns the session named by the request cookie, or a new one when
// the cookie is missing, unknown or expired.
func (s *Store) Load(r *http.Request) *Session {
	cookie, err := r.Cookie(s.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return s.New()
	}
	if _, err := uuid.Parse(cookie.Value); err != nil {
		return s.New()
	}
	sess, err := s.Get(cookie.Value)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.WithError(err).Warn("Failed to load session")
		}
		return s.New()
	}
	return sess
}

// Save writes the session record, refreshing its TTL, and sets the cookie.
func (s *Store) Save(w http.ResponseWriter, sess *Session) error {
	sess.ExpiresAt = time.Now().Add(s.opts.TTL)
	data, err := marshalSession(sess)
	if err != nil {
		return err
	}
	err = s.db.Update(func(txn *badger.Txn) error {
		e := badger.NewEntry([]byte(keyPrefix+sess.ID), data).WithTTL(s.opts.TTL)
		return txn.SetEntry(e)
	})
	if err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	sess.isNew = false

	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    sess.ID,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		MaxAge:   int(s.opts.TTL.Seconds()),
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Delete removes a session record without touching cookies.
func (s *Store) Delete(id string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyPrefix + id))
	})
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Destroy deletes the session record and expires the cookie.
func (s *Store) Destroy(w http.ResponseWriter, sess *Session) error {
	if sess != nil {
		if err := s.Delete(sess.ID); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     s.opts.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Count returns the number of live sessions.
func (s *Store) Count() (int, error) {
	count := 0
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		opts.Prefix = []byte(keyPrefix)
		it := txn.NewIterator(opts)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// RunGC reclaims value log space left by expired and deleted sessions.
func (s *Store) RunGC() error {
	if s.db.Opts().InMemory {
		return nil
	}
	for {
		err := s.db.RunValueLogGC(0.5)
		if errors.Is(err, badger.ErrNoRewrite) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("session gc: %w", err)
		}
	}
}

// Backup writes a full dump of the store to w.
func (s *Store) Backup(w io.Writer) error {
	if _, err := s.db.Backup(w, 0); err != nil {
		return fmt.Errorf("backup sessions: %w", err)
	}
	return nil
}

// Restore loads a dump produced by Backup.
func (s *Store) Restore(r io.Reader) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("restore sessions: panic: %v", p)
		}
	}()
	if err := s.db.Load(r, 4); err != nil {
		return fmt.Errorf("restore sessions: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func marshalSession(sess *Session) ([]byte, error) {
	data, err := json.Marshal(sess)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %v", err)
	}
	return data, nil
}

func unmarshalSession(data []byte, sess *Session) error {
	if err := json.Unmarshal(data, sess); err != nil {
		return fmt.Errorf("failed to unmarshal session: %v", err)
	}
	return nil
}
