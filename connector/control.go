package connector

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ckarrie/ha-netgear-plus/model"
	"github.com/ckarrie/ha-netgear-plus/parser"
	"go.uber.org/zap"
)

// SetPoEPort switches PoE power delivery for one port on or off. The write
// is only reported as applied after a re-read of the PoE config page shows
// the requested state; an acknowledged but unconfirmed command fails with
// ErrCommandNotConfirmed. Capability checks run before any network I/O.
func (c *Connector) SetPoEPort(ctx context.Context, port int, enabled bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureDetected(ctx); err != nil {
		return err
	}
	if err := c.checkPoEPort(port); err != nil {
		return err
	}
	if err := c.session.EnsureSession(ctx); err != nil {
		return err
	}

	adminMode := "0"
	if enabled {
		adminMode = "1"
	}
	form := url.Values{
		"ACTION":         {"Apply"},
		"portID":         {strconv.Itoa(port - 1)},
		"ADMIN_MODE":     {adminMode},
		"PORT_PRIO":      {"0"},
		"POW_MOD":        {"3"},
		"POW_LIMT_TYP":   {strconv.Itoa(c.profile.PoEPowerLimitType)},
		"DETEC_TYP":      {"2"},
		"DISCONNECT_TYP": {"2"},
	}
	if err := c.postCommand(ctx, c.profile.PoEControlPath, form); err != nil {
		return err
	}
	c.log.Info("poe admin state command accepted",
		zap.Int("port", port), zap.Bool("enabled", enabled))

	return c.confirmPoEAdmin(ctx, port, enabled)
}

// PowerCyclePoEPort briefly cuts and restores PoE power on one port, which
// power-cycles the attached powered device.
func (c *Connector) PowerCyclePoEPort(ctx context.Context, port int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureDetected(ctx); err != nil {
		return err
	}
	if err := c.checkPoEPort(port); err != nil {
		return err
	}
	if err := c.session.EnsureSession(ctx); err != nil {
		return err
	}

	form := url.Values{
		"ACTION":                      {"Reset"},
		"port" + strconv.Itoa(port-1): {"checked"},
	}
	if err := c.postCommand(ctx, c.profile.PoEControlPath, form); err != nil {
		return err
	}
	c.log.Info("poe port power cycled", zap.Int("port", port))
	return nil
}

// Reboot restarts the switch. The device usually drops the connection
// mid-response while rebooting; that counts as success.
func (c *Connector) Reboot(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.ensureDetected(ctx); err != nil {
		return err
	}
	if !c.profile.SupportsReboot() {
		return fmt.Errorf("%s: reboot: %w", c.profile.ModelID, model.ErrUnsupportedOperation)
	}
	if err := c.session.EnsureSession(ctx); err != nil {
		return err
	}

	form := url.Values{"CBox": {"on"}}
	if c.profile.HashGuarded && c.clientHash != "" {
		form.Set("hash", c.clientHash)
	}
	res, err := c.session.Request(ctx, http.MethodPost, c.profile.RebootPath, form)
	if err != nil {
		if errors.Is(err, model.ErrUnreachable) {
			c.session.Invalidate()
			c.log.Info("switch rebooting, connection dropped")
			return nil
		}
		return err
	}
	if !res.OK() {
		return fmt.Errorf("reboot returned status %d: %w", res.StatusCode, model.ErrCommandNotConfirmed)
	}
	c.session.Invalidate()
	c.log.Info("switch reboot accepted")
	return nil
}

func (c *Connector) checkPoEPort(port int) error {
	if !c.profile.SupportsPoE() {
		return fmt.Errorf("%s has no poe ports: %w", c.profile.ModelID, model.ErrUnsupportedOperation)
	}
	if !c.profile.IsPoEPort(port) {
		return fmt.Errorf("port %d of %s is not poe capable: %w",
			port, c.profile.ModelID, model.ErrUnsupportedOperation)
	}
	return nil
}

// postCommand sends a control form and checks the firmware's plain-text
// acknowledgement body.
func (c *Connector) postCommand(ctx context.Context, path string, form url.Values) error {
	if c.profile.HashGuarded && c.clientHash != "" {
		form.Set("hash", c.clientHash)
	}
	res, err := c.session.Request(ctx, http.MethodPost, path, form)
	if err != nil {
		return err
	}
	if !res.OK() {
		return fmt.Errorf("command returned status %d: %w", res.StatusCode, model.ErrCommandNotConfirmed)
	}
	if body := strings.TrimSpace(string(res.Body)); body != "" && !strings.Contains(body, "SUCCESS") {
		return fmt.Errorf("command rejected by firmware: %w", model.ErrCommandNotConfirmed)
	}
	return nil
}

// confirmPoEAdmin re-reads the PoE config page until the requested admin
// state is visible or the attempt budget runs out.
func (c *Connector) confirmPoEAdmin(ctx context.Context, port int, enabled bool) error {
	attempts := c.opts.confirmAttempts()
	for attempt := 1; attempt <= attempts; attempt++ {
		res, err := c.session.Request(ctx, http.MethodGet, c.profile.PoEConfigPath, nil)
		if err == nil && res.OK() {
			admin, perr := parser.ParsePoEConfig(c.profile, res.Body)
			if perr == nil && admin[port] == enabled {
				c.log.Info("poe admin state confirmed",
					zap.Int("port", port), zap.Int("attempt", attempt))
				return nil
			}
		} else if err != nil {
			c.log.Warn("poe confirm read failed", zap.Error(err))
		}

		if attempt == attempts {
			break
		}
		timer := time.NewTimer(c.opts.confirmDelay())
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return fmt.Errorf("port %d admin state not confirmed after %d reads: %w",
		port, attempts, model.ErrCommandNotConfirmed)
}
