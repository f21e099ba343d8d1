package domain

// Status is the evaluation service verdict.
type Status string

const (
	StatusAccepted Status = "accepted"
	StatusRejected Status = "rejected"
	StatusReview   Status = "review"
)

// Analysis is optional commentary attached to an evaluation.
type Analysis struct {
	FinancialImpact string `json:"financial_impact"`
	RosterImpact    string `json:"roster_impact"`
}

// Evaluation is the evaluate response.
type Evaluation struct {
	Grade    string    `json:"grade"`
	Reason   string    `json:"reason"`
	Status   Status    `json:"status"`
	Analysis *Analysis `json:"analysis,omitempty"`
}

// UnreachableReason is reported when the evaluation service cannot be reached.
const UnreachableReason = "Adversarial Engine unreachable. (Is the engine server running?)"

// ReviewEvaluation is the fallback used when evaluate fails.
func ReviewEvaluation(reason string) Evaluation {
	if reason == "" {
		reason = UnreachableReason
	}
	return Evaluation{Grade: "N/A", Reason: reason, Status: StatusReview}
}

// WinImpact is the projected change to a team's win total.
type WinImpact struct {
	DeltaWins          float64 `json:"delta_wins"`
	NewWinTotal        float64 `json:"new_win_total"`
	VegasVariance      float64 `json:"vegas_variance"`
	Ceiling            float64 `json:"ceiling"`
	Floor              float64 `json:"floor"`
	SuperBowlOddsDelta string  `json:"super_bowl_odds_delta"`
}

// ProposalConfig carries trade-wide options.
type ProposalConfig struct {
	PostJune1 bool `json:"post_june_1"`
}

// Proposal is the request body for every evaluation call.
type Proposal struct {
	TeamA       string         `json:"team_a"`
	TeamB       string         `json:"team_b"`
	TeamAAssets []Asset        `json:"team_a_assets"`
	TeamBAssets []Asset        `json:"team_b_assets"`
	Config      ProposalConfig `json:"config"`
}
