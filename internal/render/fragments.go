package render

import (
	"html/template"
	"livevote/internal/models"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
)

// Fragment is one fully rendered view. Rows and EnabledVotes describe what
// was emitted so callers can check the output without parsing HTML.
type Fragment struct {
	HTML         template.HTML
	Rows         int
	EnabledVotes int
}

const timestampLayout = "2006-01-02 15:04:05"

type ballotRow struct {
	ID          int64
	Position    int
	Name        string
	Description string
	VoteCount   int64
	Symbol      template.HTML
	Voted       bool
}

type ballotView struct {
	Rows      []ballotRow
	Enabled   bool
	Confirmed bool
}

// Ballot renders the voter-facing candidate list from scratch.
func Ballot(state models.ViewState) Fragment {
	view := ballotView{
		Enabled:   state.VotingEnabled(),
		Confirmed: state.HasVoted,
	}
	for i, c := range state.Candidates {
		view.Rows = append(view.Rows, ballotRow{
			ID:          c.ID,
			Position:    i + 1,
			Name:        c.Name,
			Description: c.Description,
			VoteCount:   c.VoteCount,
			Symbol:      Symbol(c.ImageURL),
			Voted:       state.VotedFor != 0 && c.ID == state.VotedFor,
		})
	}

	f := Fragment{HTML: template.HTML(execute("ballot", view)), Rows: len(view.Rows)}
	if view.Enabled {
		f.EnabledVotes = len(view.Rows)
	}
	return f
}

// Confirmation is the prompt shown between selecting and submitting a vote.
func Confirmation(c models.Candidate) Fragment {
	return Fragment{HTML: template.HTML(execute("confirmation", c))}
}

type adminCard struct {
	ID          int64
	Name        string
	Description string
	VoteCount   int64
	Symbol      template.HTML
}

func AdminCandidates(state models.ViewState) Fragment {
	cards := make([]adminCard, 0, len(state.Candidates))
	for _, c := range state.Candidates {
		cards = append(cards, adminCard{
			ID:          c.ID,
			Name:        c.Name,
			Description: c.Description,
			VoteCount:   c.VoteCount,
			Symbol:      symbolWithClass(c.ImageURL, "candidate-card-symbol"),
		})
	}
	return Fragment{HTML: template.HTML(execute("admin-candidates", cards)), Rows: len(cards)}
}

type ResultShare struct {
	Name      string
	VoteCount int64
	Percent   float64
	Label     string
}

// ComputeShares turns raw counts into percentages with one decimal place.
// A zero total yields 0.0 for every entry.
func ComputeShares(results []models.Result) ([]ResultShare, int64) {
	var total int64
	for _, r := range results {
		total += r.VoteCount
	}

	shares := make([]ResultShare, 0, len(results))
	for _, r := range results {
		var pct float64
		if total > 0 {
			pct = float64(r.VoteCount) / float64(total) * 100
		}
		label := strconv.FormatFloat(pct, 'f', 1, 64)
		rounded, _ := strconv.ParseFloat(label, 64)
		shares = append(shares, ResultShare{Name: r.Name, VoteCount: r.VoteCount, Percent: rounded, Label: label})
	}
	return shares, total
}

type resultBar struct {
	Name  string
	Count string
	Label string
}

type resultsView struct {
	Total  int64
	Shares []resultBar
}

func Results(state models.ViewState) Fragment {
	shares, total := ComputeShares(state.Results)
	view := resultsView{Total: total}
	for _, s := range shares {
		view.Shares = append(view.Shares, resultBar{Name: s.Name, Count: humanize.Comma(s.VoteCount), Label: s.Label})
	}

	f := Fragment{HTML: template.HTML(execute("results", view))}
	if total > 0 {
		f.Rows = len(view.Shares)
	}
	return f
}

type voteLogRow struct {
	IP        string
	Candidate string
	When      string
}

func VoteLog(state models.ViewState) Fragment {
	return voteLogIn(state, time.Local)
}

func voteLogIn(state models.ViewState, loc *time.Location) Fragment {
	rows := make([]voteLogRow, 0, len(state.VoteLog))
	for _, v := range state.VoteLog {
		ip := v.IPAddress
		if ip == "" {
			ip = "Unknown"
		}
		rows = append(rows, voteLogRow{IP: ip, Candidate: v.CandidateName, When: v.Timestamp.In(loc).Format(timestampLayout)})
	}
	return Fragment{HTML: template.HTML(execute("vote-log", rows)), Rows: len(rows)}
}

type noticeView struct {
	Level   string
	Message string
}

func Notice(n models.Notice) Fragment {
	level := "info"
	if n.Level == models.NoticeError {
		level = "error"
	}
	if n.Level == models.NoticeNone {
		return Fragment{}
	}
	return Fragment{HTML: template.HTML(execute("notice", noticeView{Level: level, Message: n.Message}))}
}
