package snapshot

import "sync"

// Store keeps the most recent pictures by ID. When full, the oldest picture
// is evicted.
type Store struct {
    mu    sync.RWMutex
    byID  map[string]*Picture
    order []string // oldest first
    keep  int
}

func NewStore(keep int) *Store {
    if keep <= 0 { keep = 16 }
    return &Store{byID: make(map[string]*Picture, keep), keep: keep}
}

func (s *Store) Put(p *Picture) {
    s.mu.Lock()
    defer s.mu.Unlock()
    if _, ok := s.byID[p.ID]; ok {
        s.byID[p.ID] = p
        return
    }
    if len(s.order) >= s.keep {
        delete(s.byID, s.order[0])
        s.order = s.order[1:]
    }
    s.byID[p.ID] = p
    s.order = append(s.order, p.ID)
}

func (s *Store) Get(id string) (*Picture, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    p, ok := s.byID[id]
    return p, ok
}

// Latest returns the most recently stored picture.
func (s *Store) Latest() (*Picture, bool) {
    s.mu.RLock()
    defer s.mu.RUnlock()
    if len(s.order) == 0 { return nil, false }
    return s.byID[s.order[len(s.order)-1]], true
}

func (s *Store) Len() int {
    s.mu.RLock()
    defer s.mu.RUnlock()
    return len(s.order)
}
