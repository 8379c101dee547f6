// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package election

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/danielhkuo/house-vote/models"
)

type HouseStats struct {
	House          models.House `json:"house"`
	TotalVotes     int64        `json:"total_votes"`
	CandidateCount int          `json:"candidate_count"`
	Share          float64      `json:"share"`
}

type CandidateShare struct {
	Candidate models.Candidate `json:"candidate"`
	Share     float64          `json:"share"`
}

type Summary struct {
	TotalVotes      int64             `json:"total_votes"`
	TotalCandidates int               `json:"total_candidates"`
	Houses          []HouseStats      `json:"houses"`
	Leader          *models.Candidate `json:"leader"`
	Candidates      []CandidateShare  `json:"candidates"`
}

// Percentage returns part/total*100, or 0 when total is 0.
func Percentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// TotalVotes sums all tallies.
func TotalVotes(cands []models.Candidate) int64 {
	var total int64
	for _, c := range cands {
		total += c.Votes
	}
	return total
}

// Leader returns the candidate with the highest tally. Ties go to the
// first one in (house, name) order. Nil when cands is empty.
func Leader(cands []models.Candidate) *models.Candidate {
	if len(cands) == 0 {
		return nil
	}
	sorted := sortedByHouseName(cands)
	best := sorted[0]
	for _, c := range sorted[1:] {
		if c.Votes > best.Votes {
			best = c
		}
	}
	return &best
}

// Summarize derives the admin dashboard statistics from the candidate list.
func Summarize(cands []models.Candidate) Summary {
	total := TotalVotes(cands)

	byHouse := make(map[models.House]*HouseStats, len(models.Houses))
	houses := make([]HouseStats, len(models.Houses))
	for i, h := range models.Houses {
		houses[i].House = h
		byHouse[h] = &houses[i]
	}

	shares := make([]CandidateShare, 0, len(cands))
	for _, c := range sortedByHouseName(cands) {
		if hs, ok := byHouse[c.House]; ok {
			hs.TotalVotes += c.Votes
			hs.CandidateCount++
		}
		shares = append(shares, CandidateShare{Candidate: c, Share: Percentage(c.Votes, total)})
	}
	for i := range houses {
		houses[i].Share = Percentage(houses[i].TotalVotes, total)
	}

	return Summary{
		TotalVotes:      total,
		TotalCandidates: len(cands),
		Houses:          houses,
		Leader:          Leader(cands),
		Candidates:      shares,
	}
}

// Sort keys for FilterCandidates
const (
	SortVotes = "votes"
	SortName  = "name"
	SortHouse = "house"
)

type Filter struct {
	House  string // "" or "all" for every house
	Search string // case-insensitive name substring
	SortBy string // votes (default), name, house
	Desc   bool
}

// FilterCandidates applies the admin panel search, house filter and sort.
// The input is not modified. Sorting is stable over (house, name) order.
func FilterCandidates(cands []models.Candidate, f Filter) []models.Candidate {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]models.Candidate, 0, len(cands))
	for _, c := range sortedByHouseName(cands) {
		if f.House != "" && f.House != "all" && string(c.House) != f.House {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		out = append(out, c)
	}

	var cmp func(a, b models.Candidate) int
	switch f.SortBy {
	case SortName:
		cmp = func(a, b models.Candidate) int { return strings.Compare(a.Name, b.Name) }
	case SortHouse:
		cmp = func(a, b models.Candidate) int { return strings.Compare(string(a.House), string(b.House)) }
	default:
		cmp = func(a, b models.Candidate) int {
			switch {
			case a.Votes < b.Votes:
				return -1
			case a.Votes > b.Votes:
				return 1
			}
			return 0
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if f.Desc {
			return cmp(out[i], out[j]) > 0
		}
		return cmp(out[i], out[j]) < 0
	})
	return out
}

type ExportRow struct {
	Name       string       `json:"name"`
	House      models.House `json:"house"`
	Votes      int64        `json:"votes"`
	Percentage string       `json:"percentage"`
}

type Export struct {
	Timestamp       time.Time   `json:"timestamp"`
	TotalVotes      int64       `json:"totalVotes"`
	TotalCandidates int         `json:"totalCandidates"`
	Results         []ExportRow `json:"results"`
}

// ExportResults builds the downloadable results document.
func ExportResults(cands []models.Candidate, now time.Time) Export {
	total := TotalVotes(cands)
	rows := make([]ExportRow, 0, len(cands))
	for _, c := range sortedByHouseName(cands) {
		rows = append(rows, ExportRow{
			Name:       c.Name,
			House:      c.House,
			Votes:      c.Votes,
			Percentage: fmt.Sprintf("%.2f", Percentage(c.Votes, total)),
		})
	}
	return Export{
		Timestamp:       now.UTC(),
		TotalVotes:      total,
		TotalCandidates: len(cands),
		Results:         rows,
	}
}

type TallyMismatch struct {
	CandidateID string `json:"candidate_id"`
	Tally       int64  `json:"tally"`
	LedgerSum   int64  `json:"ledger_sum"`
}

// AuditTallies compares every candidate tally with the sum of ledger points
// for that candidate. Ledger entries for unknown candidates are reported
// with a zero tally.
func AuditTallies(cands []models.Candidate, votes []models.Vote) []TallyMismatch {
	sums := make(map[string]int64)
	for _, v := range votes {
		sums[v.CandidateID] += int64(v.Points)
	}

	var out []TallyMismatch
	known := make(map[string]bool, len(cands))
	for _, c := range sortedByHouseName(cands) {
		known[c.ID] = true
		if c.Votes != sums[c.ID] {
			out = append(out, TallyMismatch{CandidateID: c.ID, Tally: c.Votes, LedgerSum: sums[c.ID]})
		}
	}

	var orphans []string
	for id := range sums {
		if !known[id] {
			orphans = append(orphans, id)
		}
	}
	sort.Strings(orphans)
	for _, id := range orphans {
		out = append(out, TallyMismatch{CandidateID: id, LedgerSum: sums[id]})
	}
	return out
}

func sortedByHouseName(cands []models.Candidate) []models.Candidate {
	out := make([]models.Candidate, len(cands))
	copy(out, cands)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].House != out[j].House {
			return out[i].House < out[j].House
		}
		return out[i].Name < out[j].Name
	})
	return out
}
