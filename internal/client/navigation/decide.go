// Package navigation decides which screen group the client should show and
// redirects the screen router when the session or onboarding state changes.
package navigation

import "github.com/couplediaries/couplediaries/internal/client/models"

// Group is a set of screens that share an access rule.
type Group int

const (
	Public Group = iota
	EmailVerification
	Onboarding
	Home
)

func (g Group) String() string {
	switch g {
	case Public:
		return "public"
	case EmailVerification:
		return "email-verification"
	case Onboarding:
		return "onboarding"
	case Home:
		return "home"
	}
	return "unknown"
}

// SessionState is the authentication state the guard sees.
type SessionState int

const (
	SessionAbsent SessionState = iota
	SessionUnverified
	SessionVerified
)

func (s SessionState) String() string {
	switch s {
	case SessionAbsent:
		return "absent"
	case SessionUnverified:
		return "unverified"
	case SessionVerified:
		return "verified"
	}
	return "unknown"
}

// SessionStateOf classifies a session. A nil session or one without a user
// id is absent.
func SessionStateOf(s *models.Session) SessionState {
	switch {
	case s == nil || s.UserID == "":
		return SessionAbsent
	case !s.EmailVerified:
		return SessionUnverified
	default:
		return SessionVerified
	}
}

// SetupState is whether the user finished the get-started wizard.
type SetupState int

const (
	SetupUnknown SetupState = iota
	SetupFalse
	SetupTrue
)

func (s SetupState) String() string {
	switch s {
	case SetupFalse:
		return "false"
	case SetupTrue:
		return "true"
	}
	return "unknown"
}

// SetupStateOf converts a known setup flag.
func SetupStateOf(done bool) SetupState {
	if done {
		return SetupTrue
	}
	return SetupFalse
}

// Decide maps the inputs to the group that should be shown. When the user is
// verified but the setup state is not known yet, needsLookup is true and the
// returned group is meaningless.
func Decide(session SessionState, setup SetupState) (target Group, needsLookup bool) {
	switch session {
	case SessionUnverified:
		return EmailVerification, false
	case SessionVerified:
		switch setup {
		case SetupTrue:
			return Home, false
		case SetupFalse:
			return Onboarding, false
		default:
			return Public, true
		}
	default:
		return Public, false
	}
}
