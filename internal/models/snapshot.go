package models

// Snapshot is the full set of boards, lists, cards and labels at a point
// in time. It is the only input the analytics engine reads.
type Snapshot struct {
	Boards []Board `json:"boards"`
	Lists  []List  `json:"lists"`
	Cards  []Card  `json:"cards"`
	Labels []Label `json:"labels"`
}

// Normalize replaces nil slices so the snapshot serializes consistently
func (s *Snapshot) Normalize() {
	if s.Boards == nil {
		s.Boards = []Board{}
	}
	if s.Lists == nil {
		s.Lists = []List{}
	}
	if s.Cards == nil {
		s.Cards = []Card{}
	}
	if s.Labels == nil {
		s.Labels = []Label{}
	}
	for i := range s.Cards {
		s.Cards[i].Normalize()
	}
}

// Clone deep-copies the snapshot
func (s *Snapshot) Clone() *Snapshot {
	out := &Snapshot{
		Boards: append([]Board(nil), s.Boards...),
		Lists:  append([]List(nil), s.Lists...),
		Cards:  make([]Card, 0, len(s.Cards)),
		Labels: append([]Label(nil), s.Labels...),
	}
	for i := range s.Cards {
		out.Cards = append(out.Cards, *s.Cards[i].Clone())
	}
	out.Normalize()
	return out
}

// ListIndex maps list id to list
func (s *Snapshot) ListIndex() map[string]*List {
	idx := make(map[string]*List, len(s.Lists))
	for i := range s.Lists {
		idx[s.Lists[i].ID] = &s.Lists[i]
	}
	return idx
}

// BoardIndex maps board id to board
func (s *Snapshot) BoardIndex() map[string]*Board {
	idx := make(map[string]*Board, len(s.Boards))
	for i := range s.Boards {
		idx[s.Boards[i].ID] = &s.Boards[i]
	}
	return idx
}
