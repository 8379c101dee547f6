// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package report renders election results for the terminal.
package report

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/house-vote/election"
	"github.com/danielhkuo/house-vote/models"
)

var houseColors = map[models.House]color.Attribute{
	models.HouseRed:    color.FgRed,
	models.HouseBlue:   color.FgBlue,
	models.HouseGreen:  color.FgGreen,
	models.HouseYellow: color.FgYellow,
}

// PrintResults writes the candidate table, the per-house totals and the
// current leader.
func PrintResults(w io.Writer, s election.Summary) {
	heading := color.New(color.FgCyan, color.Bold)

	heading.Fprintln(w, "\n=== House Election Results ===")
	fmt.Fprintf(w, "%s votes across %d candidates\n\n",
		humanize.Comma(s.TotalVotes), s.TotalCandidates)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"House", "Candidate", "Standard", "Votes", "Share"})
	for _, cs := range s.Candidates {
		c := cs.Candidate
		table.Append([]string{
			color.New(houseColors[c.House]).Sprint(string(c.House)),
			c.Name,
			c.Standard,
			humanize.Comma(c.Votes),
			fmt.Sprintf("%.1f%%", cs.Share),
		})
	}
	table.Render()

	heading.Fprintln(w, "\nBy House")
	houses := tablewriter.NewWriter(w)
	houses.SetHeader([]string{"House", "Candidates", "Votes", "Share"})
	for _, h := range s.Houses {
		houses.Append([]string{
			string(h.House),
			fmt.Sprintf("%d", h.CandidateCount),
			humanize.Comma(h.TotalVotes),
			fmt.Sprintf("%.1f%%", h.Share),
		})
	}
	houses.Render()

	if s.Leader == nil || s.TotalVotes == 0 {
		color.New(color.FgYellow).Fprintln(w, "\nNo votes cast yet")
		return
	}
	color.New(color.FgGreen).Fprintf(w, "\nLeading: %s (%s house) with %s votes\n",
		s.Leader.Name, s.Leader.House, humanize.Comma(s.Leader.Votes))
}

// PrintExport summarizes an export written to disk.
func PrintExport(w io.Writer, e election.Export, path string) {
	color.New(color.FgGreen).Fprintf(w, "Exported %d candidates (%s votes) to %s, generated %s\n",
		e.TotalCandidates, humanize.Comma(e.TotalVotes), path, humanize.Time(e.Timestamp))
}
