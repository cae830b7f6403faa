package benchmark

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// PrintHeader writes the opening line of a run.
func PrintHeader(w io.Writer, iterations int) {
	fmt.Fprintf(w, "Analysing the speed of performing a action/distribution squashing operation for %d times...\n", iterations)
}

// PrintComparison writes the comparison header followed by one line per
// result, in the order given.
func PrintComparison(w io.Writer, cases []Case, results []Result) {
	titles := make([]string, 0, len(cases))
	for _, c := range cases {
		titles = append(titles, c.Title)
	}
	fmt.Fprintf(w, "Compare %s log_prob + squash method speed:\n", strings.Join(titles, "/"))

	for _, res := range results {
		fmt.Fprintf(w, "- %s log_prob squash time: %s s\n", res.Label, FormatSeconds(res.Seconds))
	}
}

// FormatSeconds renders seconds in the shortest form that round-trips.
func FormatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// Summary renders a short plain-text description of a run, used for
// notifications.
func Summary(run Run) string {
	var b strings.Builder
	fmt.Fprintf(&b, "squashbench: %d samples, batch %d", run.Samples, run.BatchSize)
	if run.Commit != "" {
		fmt.Fprintf(&b, " @ %s", run.Commit)
	}
	b.WriteString("\n")
	for _, res := range run.Results {
		fmt.Fprintf(&b, "- %s: %s s (%.0f ns/op)\n", res.Label, FormatSeconds(res.Seconds), res.NsPerOp)
	}
	return b.String()
}
