package game

// ShareKind distinguishes the single controlling share from the nine
// ordinary ones.
type ShareKind int

const (
	NormalShare ShareKind = iota
	PresidentShare
)

// Share is one ownership token of a corporation. The token itself never
// changes after creation; ownership transfers by moving it between
// collections.
type Share struct {
	corporation *Corporation
	kind        ShareKind
}

// Corporation returns the corporation the share belongs to.
func (s *Share) Corporation() *Corporation {
	return s.corporation
}

// President reports whether this is the controlling share.
func (s *Share) President() bool {
	return s.kind == PresidentShare
}
