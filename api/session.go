package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ckarrie/ha-netgear-plus/model"
	"github.com/ckarrie/ha-netgear-plus/parser"
	"go.uber.org/zap"
)

const defaultIdleLimit = 15 * time.Minute

// Session is the authenticated state against one device. A new session
// fully replaces the old one; there is no partial repair.
type Session struct {
	CookieName    string
	Token         string
	EstablishedAt time.Time
	LastUsedAt    time.Time
	Valid         bool
}

// SessionManager owns the session lifecycle: login with the model-specific
// password transform, token storage, idle expiry and eviction detection.
// It performs at most one login attempt per EnsureSession call so a device
// with a strict session cap is never hammered.
//
// SessionManager is not safe for concurrent use; the connector serializes
// access to it.
type SessionManager struct {
	fetcher   *Fetcher
	profile   model.Profile
	password  string
	idleLimit time.Duration
	log       *zap.Logger

	session Session
}

func NewSessionManager(fetcher *Fetcher, profile model.Profile, password string, idleLimit time.Duration, log *zap.Logger) *SessionManager {
	if idleLimit == 0 {
		idleLimit = defaultIdleLimit
	}
	return &SessionManager{
		fetcher:   fetcher,
		profile:   profile,
		password:  password,
		idleLimit: idleLimit,
		log:       log,
	}
}

// Session returns a copy of the current session state.
func (m *SessionManager) Session() Session { return m.session }

// Invalidate drops the current session without contacting the device.
func (m *SessionManager) Invalidate() { m.session.Valid = false }

// EnsureSession is a no-op while the session is valid and not idle-expired,
// and performs exactly one login attempt otherwise.
func (m *SessionManager) EnsureSession(ctx context.Context) error {
	if m.session.Valid {
		if m.idleLimit < 0 || time.Since(m.session.LastUsedAt) < m.idleLimit {
			return nil
		}
		m.log.Debug("session idle-expired, re-authenticating",
			zap.Time("last_used", m.session.LastUsedAt))
	}
	return m.login(ctx)
}

func (m *SessionManager) login(ctx context.Context) error {
	m.session = Session{}

	page, err := m.fetcher.Get(ctx, m.profile.LoginPath, nil, nil)
	if err != nil {
		return err
	}
	if !page.OK() {
		return fmt.Errorf("login page status %d: %w", page.StatusCode, model.ErrUnreachable)
	}

	var hash string
	switch m.profile.Crypt {
	case model.CryptHexHMACMD5:
		hash = HexHMACMD5(m.password)
	default:
		seed := parser.LoginSeed(page.Body)
		if seed == "" {
			// old firmwares render no seed and take the password verbatim
			hash = m.password
		} else {
			hash = MergeHash(m.password, seed)
		}
	}

	form := url.Values{m.profile.LoginField: {hash}}
	res, err := m.fetcher.Post(ctx, m.profile.LoginPath, form, nil)
	if err != nil {
		return err
	}

	// GS31x-style models return the token in a hidden form field
	if m.profile.GambitAuth {
		if token := parser.GambitToken(res.Body); token != "" {
			m.establish(m.profile.CookieNames[0], token)
			return nil
		}
	}
	for _, name := range m.profile.CookieNames {
		for _, c := range res.Cookies {
			if c.Name == name && c.Value != "" {
				m.establish(name, c.Value)
				return nil
			}
		}
	}

	text := strings.ToLower(string(res.Body))
	if strings.Contains(text, "maximum") && strings.Contains(text, "session") {
		return fmt.Errorf("%s: %w", m.fetcher.Host(), model.ErrSessionLimitReached)
	}
	if msg := parser.ErrorMessage(res.Body); msg != "" {
		return fmt.Errorf("%w: %s", model.ErrAuthenticationFailed, msg)
	}
	return fmt.Errorf("%s: %w", m.fetcher.Host(), model.ErrAuthenticationFailed)
}

func (m *SessionManager) establish(name, token string) {
	now := time.Now()
	m.session = Session{
		CookieName:    name,
		Token:         token,
		EstablishedAt: now,
		LastUsedAt:    now,
		Valid:         true,
	}
	m.log.Debug("session established", zap.String("cookie", name))
}

// Request performs an authenticated request. A response that turns out to
// be a login redirect means the device evicted the session: the session is
// marked invalid, the call fails with model.ErrSessionLost, and the next
// EnsureSession re-authenticates.
func (m *SessionManager) Request(ctx context.Context, method, path string, form url.Values) (*Response, error) {
	if !m.session.Valid {
		return nil, fmt.Errorf("%s %s: %w", method, path, model.ErrSessionLost)
	}

	cookie := &http.Cookie{Name: m.session.CookieName, Value: m.session.Token}

	var res *Response
	var err error
	if method == http.MethodPost {
		if form == nil {
			form = url.Values{}
		}
		if m.profile.GambitAuth {
			form.Set("Gambit", m.session.Token)
		}
		res, err = m.fetcher.Post(ctx, path, form, cookie)
	} else {
		query := form
		if m.profile.GambitAuth {
			if query == nil {
				query = url.Values{}
			}
			query.Set("Gambit", m.session.Token)
		}
		res, err = m.fetcher.Get(ctx, path, query, cookie)
	}
	if err != nil {
		return nil, err
	}

	m.session.LastUsedAt = time.Now()

	if parser.IsLoginRedirect(res.Body) {
		m.log.Info("session evicted by device", zap.String("path", path))
		m.session.Valid = false
		return nil, fmt.Errorf("%s %s: %w", method, path, model.ErrSessionLost)
	}
	return res, nil
}

// Logout releases the session on the device. Best effort: the session is
// dropped locally regardless of the outcome.
func (m *SessionManager) Logout(ctx context.Context) error {
	if !m.session.Valid {
		return nil
	}
	var lastErr error
	for _, path := range m.profile.LogoutPaths {
		res, err := m.Request(ctx, m.profile.LogoutMethod, path, nil)
		if err == nil && res.OK() {
			lastErr = nil
			break
		}
		if err != nil {
			lastErr = err
		}
	}
	m.session = Session{}
	return lastErr
}
