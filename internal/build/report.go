package build

import "time"

// Result holds the outcome of a single document.
type Result struct {
	Source     string // slash path relative to the site root
	OutputPath string // absolute output file, empty for drafts
	Layout     string // layout the page was rendered with
	Skipped    bool
	Reason     string // why a document was skipped
	Err        error
	Duration   time.Duration
}

// Report summarizes one build. A failing document does not stop the others,
// so a Report with Failed > 0 is still returned alongside a nil error.
type Report struct {
	Results  []Result
	Built    int
	Skipped  int
	Failed   int
	Pages    int // listing pages written
	Duration time.Duration
}

// tally counts results by outcome.
func (r *Report) tally() {
	r.Built, r.Skipped, r.Failed = 0, 0, 0
	for _, res := range r.Results {
		switch {
		case res.Err != nil:
			r.Failed++
		case res.Skipped:
			r.Skipped++
		default:
			r.Built++
		}
	}
}
