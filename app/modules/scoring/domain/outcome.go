package scoringdomain

// Classification labels attached to outcome metadata under the "result" key.
const (
	ResultExactMatch = "exact_match"
	ResultNearMatch  = "near_match"
	ResultMiss       = "miss"
	ResultDNF        = "dnf"
	ResultNoData     = "no_data"
)

// Outcome is the result of scoring one pick against one result. Margin is
// nil when no meaningful distance exists (missing data).
type Outcome struct {
	Points     int
	Margin     *float64
	ExactMatch bool
	Metadata   map[string]any
}

func marginOf(v float64) *float64 { return &v }
