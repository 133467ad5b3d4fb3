package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/couplediaries/couplediaries/internal/client/client"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/couplediaries/couplediaries/internal/timex"
)

const (
	DefaultPollInterval   = 3 * time.Second
	DefaultResendCooldown = 60 * time.Second
)

// sessionReloader is the part of SessionService the poller needs.
type sessionReloader interface {
	Reload(ctx context.Context) (*models.Session, error)
	ResendVerification(ctx context.Context) error
}

// VerificationService drives the email verification screen: it polls the
// session until the address is verified and rate-limits resends.
type VerificationService struct {
	sessions sessionReloader
	interval time.Duration
	gate     *ResendGate
	logger   logging.Logger
}

// NewVerificationService constructs a verification service polling every
// interval; zero means DefaultPollInterval.
func NewVerificationService(sessions sessionReloader, interval time.Duration, gate *ResendGate, l logging.Logger) *VerificationService {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if gate == nil {
		gate = NewResendGate(DefaultResendCooldown, nil)
	}
	return &VerificationService{
		sessions: sessions,
		interval: interval,
		gate:     gate,
		logger:   l.With("module", "verification"),
	}
}

// Gate exposes the resend cooldown for display.
func (v *VerificationService) Gate() *ResendGate { return v.gate }

// Poll reloads the session every interval until it is verified, the user
// signs out, or ctx is done. Transient errors are logged and polling goes on.
func (v *VerificationService) Poll(ctx context.Context) error {
	t := time.NewTicker(v.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
		}

		sess, err := v.sessions.Reload(ctx)
		switch {
		case errors.Is(err, ErrNotSignedIn), errors.Is(err, client.ErrUnauthorized):
			return err
		case err != nil:
			v.logger.Warn(ctx, "session reload failed", "error", err)
		case sess.EmailVerified:
			v.logger.Info(ctx, "email verified", "user_id", sess.UserID)
			return nil
		}
	}
}

// ResendTooSoonError says how long to wait before the next resend.
type ResendTooSoonError struct {
	Wait time.Duration
}

func (e *ResendTooSoonError) Error() string {
	return fmt.Sprintf("please wait %d seconds before resending", seconds(e.Wait))
}

func (e *ResendTooSoonError) Unwrap() error { return client.ErrResendTooSoon }

// Resend asks the server for another verification email unless the local
// cooldown is still running.
func (v *VerificationService) Resend(ctx context.Context) error {
	if wait := v.gate.Remaining(); wait > 0 {
		return &ResendTooSoonError{Wait: wait}
	}

	err := v.sessions.ResendVerification(ctx)
	if errors.Is(err, client.ErrResendTooSoon) {
		v.gate.MarkSent()
		return &ResendTooSoonError{Wait: v.gate.Remaining()}
	}
	if err != nil {
		return err
	}

	v.gate.MarkSent()
	return nil
}

// ResendGate is a cooldown counter started by every sent email.
type ResendGate struct {
	cooldown time.Duration
	clock    timex.Clock

	mu     sync.Mutex
	sentAt time.Time
}

// NewResendGate returns an open gate. A nil clock means the wall clock.
func NewResendGate(cooldown time.Duration, clock timex.Clock) *ResendGate {
	if clock == nil {
		clock = timex.SystemClock
	}
	return &ResendGate{cooldown: cooldown, clock: clock}
}

func (g *ResendGate) MarkSent() {
	g.mu.Lock()
	g.sentAt = g.clock()
	g.mu.Unlock()
}

// Remaining is the time left until the next resend is allowed.
func (g *ResendGate) Remaining() time.Duration {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.sentAt.IsZero() {
		return 0
	}
	left := g.cooldown - g.clock().Sub(g.sentAt)
	if left < 0 {
		return 0
	}
	return left
}

// Seconds is Remaining rounded up to whole seconds, as shown on screen.
func (g *ResendGate) Seconds() int {
	return seconds(g.Remaining())
}

func seconds(d time.Duration) int {
	return int((d + time.Second - 1) / time.Second)
}
