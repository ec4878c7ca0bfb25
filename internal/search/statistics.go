package search

type Statistics struct {
	DecisionCount  uint64
	SnapshotCount  uint64
	BacktrackCount uint64
	MaxDepth       int
}
