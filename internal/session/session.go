// Package session holds in-memory drafts for the multi-step styling flows.
// Nothing here is persisted: the drafts only exist so that switching between
// views mid-flow keeps selections, form state and the latest results. A
// process restart clears them.
package session

import (
	"sync"

	"github.com/noircloset/noir/internal/gateway"
)

// Travel packer modes.
const (
	ModeCloset      = "closet"
	ModeInspiration = "inspiration"
)

// StyleDraft is the state of the style-my-closet flow.
type StyleDraft struct {
	SelectedIDs []string                `json:"selectedIds"`
	Context     string                  `json:"context"`
	Height      string                  `json:"height"`
	Vibe        string                  `json:"vibe"`
	Analysis    *gateway.ClosetAnalysis `json:"analysis,omitempty"`
}

// TravelDraft is the state of the travel packer flow. Packed tracks which
// suggested pieces the user has checked off, keyed by item name.
type TravelDraft struct {
	Destination string               `json:"destination"`
	Days        int                  `json:"days"`
	TripType    string               `json:"tripType"`
	Vibe        string               `json:"vibe"`
	Mode        string               `json:"mode"`
	SelectedIDs []string             `json:"selectedIds"`
	Packed      map[string]bool      `json:"packed"`
	List        *gateway.PackingList `json:"list,omitempty"`
}

// BodyFitDraft is the state of the body-fit flow.
type BodyFitDraft struct {
	Image       string                   `json:"image,omitempty"`
	Description string                   `json:"description"`
	Result      *gateway.BodyFitAnalysis `json:"result,omitempty"`
}

// Session is the process-lifetime draft store. Safe for concurrent use.
type Session struct {
	mu      sync.RWMutex
	style   StyleDraft
	travel  TravelDraft
	bodyFit BodyFitDraft
	chat    []gateway.Message
}

// New returns a session with empty drafts and the chat thread seeded with
// the stylist's greeting.
func New() *Session {
	return &Session{
		travel: TravelDraft{Days: 3, Mode: ModeCloset, Packed: map[string]bool{}},
		chat:   []gateway.Message{{Role: gateway.RoleModel, Text: gateway.Greeting}},
	}
}

// Style returns a copy of the style draft.
func (s *Session) Style() StyleDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft := s.style
	draft.SelectedIDs = append([]string(nil), s.style.SelectedIDs...)
	return draft
}

// SetStyle replaces the style draft.
func (s *Session) SetStyle(draft StyleDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style = draft
}

// Travel returns a copy of the travel draft.
func (s *Session) Travel() TravelDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyTravel(s.travel)
}

// SetTravel replaces the travel draft. Days and mode fall back to their
// defaults when unset so a partial update from a client stays usable.
func (s *Session) SetTravel(draft TravelDraft) {
	if draft.Days <= 0 {
		draft.Days = 3
	}
	if draft.Mode != ModeInspiration {
		draft.Mode = ModeCloset
	}
	if draft.Packed == nil {
		draft.Packed = map[string]bool{}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.travel = draft
}

// SetPacked toggles a single packed checkbox on the travel draft.
func (s *Session) SetPacked(name string, packed bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.travel.Packed == nil {
		s.travel.Packed = map[string]bool{}
	}
	if packed {
		s.travel.Packed[name] = true
	} else {
		delete(s.travel.Packed, name)
	}
}

// BodyFit returns a copy of the body-fit draft.
func (s *Session) BodyFit() BodyFitDraft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bodyFit
}

// SetBodyFit replaces the body-fit draft.
func (s *Session) SetBodyFit(draft BodyFitDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodyFit = draft
}

// Chat returns a copy of the chat thread.
func (s *Session) Chat() []gateway.Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]gateway.Message(nil), s.chat...)
}

// AppendChat adds messages to the thread.
func (s *Session) AppendChat(msgs ...gateway.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = append(s.chat, msgs...)
}

// ResetChat restarts the thread with the greeting.
func (s *Session) ResetChat() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chat = []gateway.Message{{Role: gateway.RoleModel, Text: gateway.Greeting}}
}

// PruneSelections drops selected closet ids that no longer exist. Called on
// draft reads so deleting an item mid-flow never leaves a dangling pick.
func (s *Session) PruneSelections(exists func(id string) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.style.SelectedIDs = pruneIDs(s.style.SelectedIDs, exists)
	s.travel.SelectedIDs = pruneIDs(s.travel.SelectedIDs, exists)
}

func pruneIDs(ids []string, exists func(id string) bool) []string {
	kept := ids[:0]
	for _, id := range ids {
		if exists(id) {
			kept = append(kept, id)
		}
	}
	return kept
}

func copyTravel(draft TravelDraft) TravelDraft {
	out := draft
	out.SelectedIDs = append([]string(nil), draft.SelectedIDs...)
	out.Packed = make(map[string]bool, len(draft.Packed))
	for k, v := range draft.Packed {
		out.Packed[k] = v
	}
	return out
}
