package models

type NoticeLevel int

const (
	NoticeNone NoticeLevel = iota
	NoticeInfo
	NoticeError
)

// Notice is the blocking notification shown above the current view. A
// notice raised by a failed load carries that resource in Failed and is
// withdrawn once the resource loads again.
type Notice struct {
	Level   NoticeLevel
	Message string
	Failed  *Resource
}

// ViewState is an immutable snapshot. Renderers only ever see copies of it.
type ViewState struct {
	Candidates  []Candidate
	HasVoted    bool
	VotedFor    int64
	Submitting  bool
	AdminActive bool
	Results     []Result
	VoteLog     []VoteRecord
	Notice      Notice
	Version     uint64
}

// VotingEnabled is false whenever no vote affordance may be offered.
func (vs ViewState) VotingEnabled() bool {
	return !vs.HasVoted && !vs.Submitting
}

func (vs ViewState) Candidate(id int64) (Candidate, bool) {
	for _, c := range vs.Candidates {
		if c.ID == id {
			return c, true
		}
	}
	return Candidate{}, false
}
