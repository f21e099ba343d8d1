package domain

// Scenario is a pre-built trade idea from the intelligence feed. The seller
// gives up Player to the buyer.
type Scenario struct {
	Buyer      string  `json:"buyer" yaml:"buyer"`
	Seller     string  `json:"seller" yaml:"seller"`
	Player     string  `json:"player" yaml:"player"`
	Cap        float64 `json:"cap" yaml:"cap"`
	Cost       string  `json:"cost" yaml:"cost"`
	BuyerGain  float64 `json:"buyer_gain" yaml:"buyer_gain"`
	SellerGain float64 `json:"seller_gain" yaml:"seller_gain"`
	Score      float64 `json:"score" yaml:"score"`
	Rationale  string  `json:"rationale" yaml:"rationale"`
}

// Involves reports whether team is the buyer or the seller.
func (s Scenario) Involves(team string) bool {
	return s.Buyer == team || s.Seller == team
}

// ScenarioLoad is a fully resolved staged trade ready to replace orchestrator state.
type ScenarioLoad struct {
	TeamA   string
	TeamB   string
	AssetsA []Asset
	AssetsB []Asset
}
