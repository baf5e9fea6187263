package runner

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"stashsync/internal/reconcile"
)

// summaryOrder fixes the row order of the bulk summary.
var summaryOrder = []reconcile.Outcome{
	reconcile.OutcomeSuccess,
	reconcile.OutcomeSkippedTag,
	reconcile.OutcomeNoExternalID,
	reconcile.OutcomeFailed,
}

// Summary tallies bulk outcomes.
type Summary struct {
	counts map[reconcile.Outcome]int
	total  int
}

func NewSummary() *Summary {
	return &Summary{counts: make(map[reconcile.Outcome]int)}
}

func (s *Summary) Add(outcome reconcile.Outcome) {
	s.counts[outcome]++
	s.total++
}

// Count reports how many scenes finished with the given outcome.
func (s *Summary) Count(outcome reconcile.Outcome) int {
	return s.counts[outcome]
}

// Total reports how many scenes were processed.
func (s *Summary) Total() int {
	return s.total
}

// Render writes the summary to w: a bordered table when w is a terminal,
// plain key=value lines otherwise so piped output stays parseable.
func (s *Summary) Render(w io.Writer) {
	if file, ok := w.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		s.renderTable(w)
		return
	}
	for _, outcome := range summaryOrder {
		fmt.Fprintf(w, "%s=%d\n", outcome, s.counts[outcome])
	}
	fmt.Fprintf(w, "total=%d\n", s.total)
}

func (s *Summary) renderTable(w io.Writer) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"Outcome", "Scenes"})
	for _, outcome := range summaryOrder {
		tw.AppendRow(table.Row{string(outcome), strconv.Itoa(s.counts[outcome])})
	}
	tw.AppendFooter(table.Row{"Total", strconv.Itoa(s.total)})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	tw.Render()
}
