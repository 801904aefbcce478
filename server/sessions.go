package server

import (
	"context"
	"crypto/rand"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/jellydator/ttlcache/v3"
	"go.uber.org/zap"

	"github.com/status-im/arcadia/gallery"
)

const (
	sessionName  = "arcadia-session"
	sessionIDKey = "id"
)

// ControllerFactory builds the controller of a new browser session.
type ControllerFactory func(sessionID string) *gallery.Controller

// SessionManager maps browser sessions to gallery controllers. Controllers
// expire after ttl without requests.
type SessionManager struct {
	store       *sessions.CookieStore
	controllers *ttlcache.Cache[string, *gallery.Controller]
	factory     ControllerFactory
	logger      *zap.Logger

	running sync.Once
	stopped sync.Once
	started bool
}

func makeCookieStore(secret string, ttl time.Duration) (*sessions.CookieStore, error) {
	var auth []byte
	if secret != "" {
		auth = []byte(secret)
	} else {
		auth = make([]byte, 64)
		if _, err := rand.Read(auth); err != nil {
			return nil, err
		}
	}

	store := sessions.NewCookieStore(auth)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store, nil
}

func NewSessionManager(secret string, ttl time.Duration, factory ControllerFactory, logger *zap.Logger) (*SessionManager, error) {
	store, err := makeCookieStore(secret, ttl)
	if err != nil {
		return nil, err
	}

	controllers := ttlcache.New[string, *gallery.Controller](
		ttlcache.WithTTL[string, *gallery.Controller](ttl),
	)
	controllers.OnEviction(func(_ context.Context, reason ttlcache.EvictionReason, item *ttlcache.Item[string, *gallery.Controller]) {
		logger.Debug("session evicted", zap.String("session", item.Key()), zap.Int("reason", int(reason)))
	})

	return &SessionManager{
		store:       store,
		controllers: controllers,
		factory:     factory,
		logger:      logger,
	}, nil
}

// Start runs the expiry loop until Stop is called.
func (m *SessionManager) Start() {
	m.running.Do(func() {
		m.started = true
		go m.controllers.Start()
	})
}

// Stop ends the expiry loop. It is a no-op when Start was never called.
func (m *SessionManager) Stop() {
	m.stopped.Do(func() {
		if m.started {
			m.controllers.Stop()
		}
	})
}

// Session returns the cookie session of r, with an id assigned.
func (m *SessionManager) Session(w http.ResponseWriter, r *http.Request) (*sessions.Session, string, error) {
	session, err := m.store.Get(r, sessionName)
	if err != nil {
		// An undecodable cookie gets a fresh session.
		m.logger.Debug("discarding session cookie", zap.Error(err))
	}

	id, _ := session.Values[sessionIDKey].(string)
	if id == "" {
		id = uuid.NewString()
		session.Values[sessionIDKey] = id
		if err := session.Save(r, w); err != nil {
			return nil, "", err
		}
	}
	return session, id, nil
}

// Controller returns the controller of session id. created is set when the
// controller did not exist yet, which is a fresh page load.
func (m *SessionManager) Controller(id string) (controller *gallery.Controller, created bool) {
	if item := m.controllers.Get(id); item != nil {
		return item.Value(), false
	}
	item, loaded := m.controllers.GetOrSet(id, m.factory(id))
	return item.Value(), !loaded
}

// Len returns the number of live sessions.
func (m *SessionManager) Len() int {
	return m.controllers.Len()
}
