// Package connector ties the device-facing pieces together: one Connector
// owns the detected profile, the authenticated session and the retained
// statistics baseline for a single physical switch. All operations are
// serialized; distinct switches get distinct connectors and are fully
// independent.
package connector

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/ckarrie/ha-netgear-plus/api"
	"github.com/ckarrie/ha-netgear-plus/model"
	"github.com/ckarrie/ha-netgear-plus/parser"
	"github.com/ckarrie/ha-netgear-plus/stats"
	"go.uber.org/zap"
)

// autodetectPaths are probed in order until one serves a login page.
var autodetectPaths = []string{"/login.cgi", "/login.htm", "/"}

// Options tune a connector. The zero value picks sane defaults.
type Options struct {
	// Timeout bounds every single device request.
	Timeout time.Duration
	// IdleLimit re-authenticates sessions idle for longer; -1 disables.
	IdleLimit time.Duration
	// PollPoE disables PoE page polling when false even on PoE models.
	PollPoE *bool
	// PoEConfirmAttempts bounds the confirming re-reads after a PoE command.
	PoEConfirmAttempts int
	// PoEConfirmDelay is the pause between confirming re-reads.
	PoEConfirmDelay time.Duration
}

func (o *Options) pollPoE() bool { return o.PollPoE == nil || *o.PollPoE }

func (o *Options) confirmAttempts() int {
	if o.PoEConfirmAttempts <= 0 {
		return 3
	}
	return o.PoEConfirmAttempts
}

func (o *Options) confirmDelay() time.Duration {
	if o.PoEConfirmDelay <= 0 {
		return time.Second
	}
	return o.PoEConfirmDelay
}

// Connector is the stateful client for one switch. Safe for use by one
// caller at a time; the internal mutex guarantees at most one in-flight
// authenticated operation even if that contract is violated.
type Connector struct {
	mu sync.Mutex

	host     string
	password string
	opts     Options
	log      *zap.Logger

	fetcher *api.Fetcher
	session *api.SessionManager
	engine  *stats.Engine

	detected bool
	profile  model.Profile

	identity   model.Identity
	clientHash string
}

func New(host, password string, log *zap.Logger, opts Options) *Connector {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("host", host))
	return &Connector{
		host:     host,
		password: password,
		opts:     opts,
		log:      log,
		fetcher:  api.NewFetcher(host, opts.Timeout, log),
	}
}

// Host returns the device address.
func (c *Connector) Host() string { return c.host }

// Profile returns the detected capability profile. The bool is false until
// detection has run.
func (c *Connector) Profile() (model.Profile, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile, c.detected
}

// Detect fetches the login page and selects the capability profile. It is
// called implicitly by the first operation; an unknown model is fatal for
// this device, there is no best-guess fallback.
func (c *Connector) Detect(ctx context.Context) (model.Profile, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.ensureDetected(ctx); err != nil {
		return model.Profile{}, err
	}
	return c.profile, nil
}

func (c *Connector) ensureDetected(ctx context.Context) error {
	if c.detected {
		return nil
	}

	var lastErr error
	for _, path := range autodetectPaths {
		res, err := c.fetcher.Get(ctx, path, nil, nil)
		if err != nil {
			lastErr = err
			continue
		}
		if !res.OK() {
			continue
		}

		title := parser.LoginTitle(res.Body)
		banner := parser.LoginBanner(res.Body)
		matches := model.Match(title, banner)
		if len(matches) > 1 {
			names := make([]string, len(matches))
			for i, m := range matches {
				names[i] = m.ModelID
			}
			return fmt.Errorf("ambiguous detection %v: %w", names, model.ErrUnknownModel)
		}
		if len(matches) == 1 {
			c.profile = matches[0]
			c.detected = true
			c.engine = stats.NewEngine(c.profile)
			c.session = api.NewSessionManager(c.fetcher, c.profile, c.password, c.opts.IdleLimit, c.log)
			c.log.Info("detected switch model", zap.String("model", c.profile.ModelID))
			return nil
		}
		lastErr = fmt.Errorf("login page title %q matched no profile: %w", title, model.ErrUnknownModel)
	}

	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("%s: no login page found: %w", c.host, model.ErrUnknownModel)
}

// fetchFirst returns the first OK page from the candidate paths, POSTing
// the client hash where the firmware demands it. Transport and session
// errors abort immediately; non-200 answers try the next candidate.
func (c *Connector) fetchFirst(ctx context.Context, method string, paths []string) (*api.Response, error) {
	for _, path := range paths {
		var form url.Values
		if method == http.MethodPost && c.profile.HashGuarded && c.clientHash != "" {
			form = url.Values{"hash": {c.clientHash}}
		}
		res, err := c.session.Request(ctx, method, path, form)
		if err != nil {
			return nil, err
		}
		if res.OK() {
			return res, nil
		}
	}
	return nil, fmt.Errorf("no page of %v loaded: %w", paths, model.ErrMalformedPage)
}

// Refresh runs one poll cycle: ensure session, fetch and parse the status
// and statistics pages (plus PoE state on capable models) and fold the new
// sample against the retained baseline. A failed cycle leaves the baseline
// untouched, so the next successful cycle still computes a valid delta.
func (c *Connector) Refresh(ctx context.Context) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureDetected(ctx); err != nil {
		return nil, err
	}
	if err := c.session.EnsureSession(ctx); err != nil {
		return nil, err
	}

	if c.identity == (model.Identity{}) {
		if err := c.loadIdentity(ctx); err != nil {
			return nil, err
		}
	}

	statusRes, err := c.fetchFirst(ctx, c.profile.StatusMethod, c.profile.StatusPaths)
	if err != nil {
		return nil, err
	}
	status, err := parser.ParsePortStatus(c.profile, statusRes.Body)
	if err != nil {
		return nil, err
	}

	statsRes, err := c.fetchFirst(ctx, c.profile.StatsMethod, c.profile.StatsPaths)
	if err != nil {
		return nil, err
	}
	sample, err := parser.ParseStatistics(c.profile, statsRes.Body, time.Now())
	if err != nil {
		return nil, err
	}
	if sample.SkippedPorts > 0 {
		c.log.Warn("partial statistics parse", zap.Int("skipped_ports", sample.SkippedPorts))
	}

	agg, ports := c.engine.Fold(sample)
	for port, st := range status {
		ps := ports[port]
		ps.LinkSpeed = st.LinkSpeed
		ports[port] = ps
	}

	report := &Report{
		SwitchIP:  c.host,
		Identity:  c.identity,
		Aggregate: agg,
		Ports:     ports,
		Status:    status,
	}

	if c.profile.SupportsPoE() && c.opts.pollPoE() {
		report.PoE = c.pollPoE(ctx)
	}

	return report, nil
}

func (c *Connector) loadIdentity(ctx context.Context) error {
	res, err := c.fetchFirst(ctx, http.MethodGet, c.profile.InfoPaths)
	if err != nil {
		return err
	}
	identity, err := parser.ParseIdentity(c.profile, res.Body)
	if err != nil {
		return err
	}
	c.identity = identity
	if c.profile.HashGuarded {
		c.clientHash = parser.ClientHash(res.Body)
	}
	c.log.Debug("loaded switch identity",
		zap.String("name", identity.Name),
		zap.String("firmware", identity.Firmware),
		zap.String("serial", identity.Serial))
	return nil
}

// pollPoE merges the admin state from the config page with the delivered
// power from the status page. PoE page failures degrade the report instead
// of failing the cycle, matching the device's habit of serving these pages
// unreliably under load.
func (c *Connector) pollPoE(ctx context.Context) map[int]model.PoEStatus {
	poe := make(map[int]model.PoEStatus)

	res, err := c.session.Request(ctx, http.MethodGet, c.profile.PoEConfigPath, nil)
	if err == nil && res.OK() {
		admin, perr := parser.ParsePoEConfig(c.profile, res.Body)
		if perr != nil {
			c.log.Warn("skipping poe config", zap.Error(perr))
		} else {
			for port, enabled := range admin {
				st := poe[port]
				st.AdminEnabled = enabled
				poe[port] = st
			}
		}
	} else {
		c.log.Warn("skipping poe config page", zap.Error(err))
	}

	res, err = c.session.Request(ctx, http.MethodGet, c.profile.PoEStatusPath, nil)
	if err == nil && res.OK() {
		status, perr := parser.ParsePoEStatus(c.profile, res.Body)
		if perr != nil {
			c.log.Warn("skipping poe status", zap.Error(perr))
		} else {
			for port, st := range status {
				merged := poe[port]
				merged.PowerWatts = st.PowerWatts
				merged.Delivering = st.Delivering
				poe[port] = merged
			}
		}
	} else {
		c.log.Warn("skipping poe status page", zap.Error(err))
	}

	return poe
}

// Logout releases the device session, freeing a slot of the device's
// session cap for other clients.
func (c *Connector) Logout(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.detected || c.session == nil {
		return nil
	}
	return c.session.Logout(ctx)
}
