package benchmark

import "fmt"

// Status classifies a comparison against a percentage threshold.
type Status string

const (
	StatusUnchanged   Status = "unchanged"
	StatusRegression  Status = "regression"
	StatusImprovement Status = "improvement"
)

type Comparison struct {
	Name        string
	Label       string
	SecondsDiff float64 // Percentage change
	NsPerOpDiff float64 // Percentage change
	Prev        Result
	Curr        Result
}

// Compare runs comparison between two runs.
// It returns a list of comparisons for cases present in both runs, in the
// order of the current run.
func Compare(prev, curr Run) []Comparison {
	prevMap := make(map[string]Result)
	for _, r := range prev.Results {
		prevMap[r.Name] = r
	}

	var comparisons []Comparison
	for _, c := range curr.Results {
		p, ok := prevMap[c.Name]
		if !ok {
			continue
		}
		comp := Comparison{
			Name:  c.Name,
			Label: c.Label,
			Prev:  p,
			Curr:  c,
		}
		if p.Seconds > 0 {
			comp.SecondsDiff = (c.Seconds - p.Seconds) / p.Seconds * 100
		}
		if p.NsPerOp > 0 {
			comp.NsPerOpDiff = (c.NsPerOp - p.NsPerOp) / p.NsPerOp * 100
		}
		comparisons = append(comparisons, comp)
	}
	return comparisons
}

// Status reports whether the per-op cost moved by more than threshold
// percent. Slower is a regression, faster an improvement.
func (c Comparison) Status(threshold float64) Status {
	switch {
	case c.NsPerOpDiff > threshold:
		return StatusRegression
	case c.NsPerOpDiff < -threshold:
		return StatusImprovement
	default:
		return StatusUnchanged
	}
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s: %+.2f%% ns/op", c.Name, c.NsPerOpDiff)
}
