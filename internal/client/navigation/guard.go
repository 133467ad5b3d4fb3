package navigation

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/couplediaries/couplediaries/internal/logging"
	"github.com/couplediaries/couplediaries/internal/timex"
)

// DefaultCooldown is how long a redirect to the same group stays suppressed.
const DefaultCooldown = 2 * time.Second

// Navigator moves the UI to a screen group.
type Navigator interface {
	Navigate(ctx context.Context, g Group)
}

// SetupLookup fetches whether the user finished onboarding.
type SetupLookup func(ctx context.Context, userID string) (bool, error)

// Inputs is what the guard evaluates. Setup may be SetupUnknown, in which
// case the guard uses what it already knows about the user or looks it up.
type Inputs struct {
	UserID  string
	Session SessionState
	Setup   SetupState
}

// Guard is safe for concurrent use.
type Guard struct {
	nav      Navigator
	lookup   SetupLookup
	cooldown time.Duration
	clock    timex.Clock
	logger   logging.Logger

	mu           sync.Mutex
	version      uint64
	current      Group
	lastTarget   Group
	lastRedirect time.Time
	known        map[string]SetupState

	lookups singleflight.Group
	wg      sync.WaitGroup
}

// NewGuard returns a guard that starts on Public. lookup resolves unknown
// setup states; zero cooldown means DefaultCooldown.
func NewGuard(nav Navigator, lookup SetupLookup, cooldown time.Duration, clock timex.Clock, l logging.Logger) *Guard {
	if cooldown <= 0 {
		cooldown = DefaultCooldown
	}
	if clock == nil {
		clock = timex.SystemClock
	}
	return &Guard{
		nav:      nav,
		lookup:   lookup,
		cooldown: cooldown,
		clock:    clock,
		logger:   l.With("module", "navigation"),
		current:  Public,
		known:    make(map[string]SetupState),
	}
}

// Current is the group the guard believes is on screen.
func (g *Guard) Current() Group {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.current
}

// setCurrent places the guard on c without navigating.
func (g *Guard) setCurrent(c Group) {
	g.mu.Lock()
	g.current = c
	g.mu.Unlock()
}

// RecordSetup stores a setup state learned elsewhere, e.g. when the wizard
// completes, so later evaluations need no lookup.
func (g *Guard) RecordSetup(userID string, done bool) {
	if userID == "" {
		return
	}
	g.mu.Lock()
	g.known[userID] = SetupStateOf(done)
	g.mu.Unlock()
}

// Evaluate runs one decision for in. It redirects at most once. When a setup
// lookup is needed it is started in the background and Evaluate returns
// immediately; the lookup result redirects only if no newer evaluation
// happened in the meantime.
func (g *Guard) Evaluate(ctx context.Context, in Inputs) {
	g.mu.Lock()
	g.version++
	v := g.version

	switch {
	case in.Session == SessionAbsent:
		clear(g.known)
	case in.Setup != SetupUnknown:
		g.known[in.UserID] = in.Setup
	default:
		if s, ok := g.known[in.UserID]; ok {
			in.Setup = s
		}
	}

	target, needsLookup := Decide(in.Session, in.Setup)
	if needsLookup {
		g.mu.Unlock()
		g.startLookup(ctx, in.UserID, v)
		return
	}

	redirect := g.redirectLocked(target)
	g.mu.Unlock()

	if redirect {
		g.navigate(ctx, target)
	}
}

// Wait blocks until every background lookup finished.
func (g *Guard) Wait() {
	g.wg.Wait()
}

func (g *Guard) startLookup(ctx context.Context, userID string, v uint64) {
	ch := g.lookups.DoChan(userID, func() (any, error) {
		return g.lookup(ctx, userID)
	})

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()

		var res singleflight.Result
		select {
		case res = <-ch:
		case <-ctx.Done():
			return
		}
		if ctx.Err() != nil {
			return
		}

		setup := SetupTrue
		if res.Err != nil {
			g.logger.Error(ctx, "setup lookup failed, assuming setup is complete", "user_id", userID, "error", res.Err)
		} else if done, _ := res.Val.(bool); !done {
			setup = SetupFalse
		}
		g.finishLookup(ctx, userID, v, setup)
	}()
}

func (g *Guard) finishLookup(ctx context.Context, userID string, v uint64, setup SetupState) {
	g.mu.Lock()
	if v != g.version {
		g.mu.Unlock()
		g.logger.Debug(ctx, "dropping stale setup lookup", "user_id", userID, "version", v)
		return
	}
	g.known[userID] = setup

	target, _ := Decide(SessionVerified, setup)
	redirect := g.redirectLocked(target)
	g.mu.Unlock()

	if redirect {
		g.navigate(ctx, target)
	}
}

// redirectLocked reports whether a redirect to target should be issued and,
// if so, records it. g.mu must be held.
func (g *Guard) redirectLocked(target Group) bool {
	if g.current == target {
		return false
	}
	now := g.clock()
	if target == g.lastTarget && !g.lastRedirect.IsZero() && now.Sub(g.lastRedirect) < g.cooldown {
		return false
	}
	g.current = target
	g.lastTarget = target
	g.lastRedirect = now
	return true
}

func (g *Guard) navigate(ctx context.Context, target Group) {
	g.logger.Info(ctx, "redirect", "to", target.String())
	g.nav.Navigate(ctx, target)
}
