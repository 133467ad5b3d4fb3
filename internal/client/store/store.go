// Package store holds the client's application state. Screens receive a
// *Store and change it only through its actions; every action notifies the
// subscribers with a copy of the new state.
package store

import (
	"strconv"
	"strings"
	"sync"

	"github.com/couplediaries/couplediaries/internal/client/countdown"
	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/timex"
)

// Content is the tab shown on the home screen.
type Content string

const (
	ContentDefault Content = "default"
	ContentCards   Content = "cards"
	ContentChat    Content = "chat"
	ContentProfile Content = "profile"
)

// ParseContent accepts a tab name, case-insensitively.
func ParseContent(s string) (Content, bool) {
	switch c := Content(strings.ToLower(strings.TrimSpace(s))); c {
	case ContentDefault, ContentCards, ContentChat, ContentProfile:
		return c, true
	}
	return "", false
}

// Message is a note sent to the partner. Messages are kept in memory only.
type Message struct {
	ID   string
	Text string
}

// State is a snapshot of the application. Slices in a snapshot are never
// shared with the store.
type State struct {
	Session   models.Session
	Profile   models.Profile
	Cards     []models.Card
	Content   Content
	Messages  []Message
	Countdown countdown.Result
}

func (s State) clone() State {
	c := s
	c.Cards = append([]models.Card(nil), s.Cards...)
	c.Messages = append([]Message(nil), s.Messages...)
	return c
}

// Store is the single owner of State. It is safe for concurrent use.
type Store struct {
	mu        sync.Mutex
	state     State
	lastID    int64
	lastMsgID int64
	clock     timex.Clock

	// notifyMu keeps deliveries in the order the actions were applied.
	notifyMu sync.Mutex

	subsMu sync.Mutex
	subs   map[int]func(State)
	nextID int
}

// New returns an empty store. A nil clock means the wall clock; it is used
// for card and message ids.
func New(clock timex.Clock) *Store {
	if clock == nil {
		clock = timex.SystemClock
	}
	return &Store{
		state: State{Content: ContentDefault},
		clock: clock,
		subs:  make(map[int]func(State)),
	}
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// Subscribe registers fn to be called after every action. Calls arrive in
// action order, one at a time; fn may read Snapshot but must not run another
// action. The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.subsMu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.subsMu.Unlock()

	return func() {
		s.subsMu.Lock()
		delete(s.subs, id)
		s.subsMu.Unlock()
	}
}

// update applies fn under mu. notifyMu is taken before mu is released so
// the snapshots reach subscribers in the order they were produced.
func (s *Store) update(fn func(*State)) State {
	s.mu.Lock()
	fn(&s.state)
	snap := s.state.clone()
	s.notifyMu.Lock()
	s.mu.Unlock()
	defer s.notifyMu.Unlock()

	s.subsMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, f := range s.subs {
		subs = append(subs, f)
	}
	s.subsMu.Unlock()

	for _, f := range subs {
		f(snap.clone())
	}
	return snap
}

// nextStamp returns max(now in ms, *last+1) and stores it in *last. It must
// be called with mu held.
func (s *Store) nextStamp(last *int64) string {
	id := s.clock().UnixMilli()
	if id <= *last {
		id = *last + 1
	}
	*last = id
	return strconv.FormatInt(id, 10)
}

// AppendCard adds c at the end of the list. The card gets a fresh id that is
// greater than any id the store has handed out or seen.
func (s *Store) AppendCard(c models.Card) models.Card {
	s.update(func(st *State) {
		c.ID = s.nextStamp(&s.lastID)
		st.Cards = append(st.Cards, c)
	})
	return c
}

// ReplaceCards swaps the whole list, e.g. after loading it from disk or the
// server.
func (s *Store) ReplaceCards(cards []models.Card) {
	s.update(func(st *State) {
		st.Cards = append([]models.Card(nil), cards...)
		for _, c := range cards {
			if n, err := strconv.ParseInt(c.ID, 10, 64); err == nil && n > s.lastID {
				s.lastID = n
			}
		}
	})
}

// RemoveCard drops the card with the given id. Ids are never reused.
func (s *Store) RemoveCard(id string) {
	s.update(func(st *State) {
		for i := range st.Cards {
			if st.Cards[i].ID == id {
				st.Cards = append(st.Cards[:i:i], st.Cards[i+1:]...)
				return
			}
		}
	})
}

// MarkSynced clears the pending flag of the given cards.
func (s *Store) MarkSynced(ids ...string) {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	s.update(func(st *State) {
		for i := range st.Cards {
			if _, ok := set[st.Cards[i].ID]; ok {
				st.Cards[i].Pending = false
			}
		}
	})
}

func (s *Store) SetSession(sess models.Session) {
	s.update(func(st *State) { st.Session = sess })
}

func (s *Store) SetProfile(p models.Profile) {
	s.update(func(st *State) { st.Profile = p })
}

func (s *Store) SetContent(c Content) {
	s.update(func(st *State) { st.Content = c })
}

// AppendMessage records a message for the partner. Blank text is ignored.
// Message ids are unique and increasing, like card ids.
func (s *Store) AppendMessage(text string) (Message, bool) {
	if strings.TrimSpace(text) == "" {
		return Message{}, false
	}
	var m Message
	s.update(func(st *State) {
		m = Message{ID: s.nextStamp(&s.lastMsgID), Text: text}
		st.Messages = append(st.Messages, m)
	})
	return m, true
}

func (s *Store) SetCountdown(r countdown.Result) {
	s.update(func(st *State) { st.Countdown = r })
}

// Reset drops everything tied to the signed-in user. Id counters survive so
// ids stay unique for the process lifetime.
func (s *Store) Reset() {
	s.update(func(st *State) {
		*st = State{Content: ContentDefault}
	})
}
