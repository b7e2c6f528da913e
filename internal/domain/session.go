package domain

import "sync"

// SessionState holds the mutable per-session facts the dispatcher carries
// between commands: the active map layer, the last known start and destination
// coordinates, and the handle of the active journey watch. All state is
// session-lifetime only; nothing is persisted.
type SessionState struct {
	mu            sync.RWMutex
	lastLayer     string
	startCoords   *Coordinate
	destCoords    *Coordinate
	journeyHandle string
}

func NewSessionState() *SessionState {
	return &SessionState{lastLayer: DefaultLayer}
}

func (s *SessionState) Layer() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastLayer
}

func (s *SessionState) SetLayer(layer string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if layer == "" {
		layer = DefaultLayer
	}
	s.lastLayer = layer
}

func (s *SessionState) StartCoords() (Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.startCoords == nil {
		return Coordinate{}, false
	}
	return *s.startCoords, true
}

func (s *SessionState) SetStartCoords(c Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.startCoords = &c
}

func (s *SessionState) DestCoords() (Coordinate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.destCoords == nil {
		return Coordinate{}, false
	}
	return *s.destCoords, true
}

func (s *SessionState) SetDestCoords(c Coordinate) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.destCoords = &c
}

// JourneyHandle returns the id of the active journey watch, or "" when no
// journey is being tracked. At most one watch exists per session.
func (s *SessionState) JourneyHandle() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.journeyHandle
}

// ClaimJourney records handle as the active watch. It reports false without
// overwriting when a watch is already active.
func (s *SessionState) ClaimJourney(handle string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.journeyHandle != "" {
		return false
	}
	s.journeyHandle = handle
	return true
}

// ReleaseJourney clears the active watch and returns its handle, or "" when
// nothing was being tracked.
func (s *SessionState) ReleaseJourney() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	h := s.journeyHandle
	s.journeyHandle = ""
	return h
}
