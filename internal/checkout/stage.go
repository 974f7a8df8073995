package checkout

// Stage is the checkout flow position. Failure is not a stage: a failed
// payment drops the session back to StageCheckout with an inline message.
type Stage string

const (
	StageBrowsing   Stage = "BROWSING"
	StageCartReview Stage = "CART_REVIEW"
	StageCheckout   Stage = "CHECKOUT"
	StagePaying     Stage = "PAYING"
	StageSuccess    Stage = "SUCCESS"
)

func (s Stage) IsTerminal() bool {
	return s == StageSuccess
}

func (s Stage) String() string {
	return string(s)
}

var transitions = map[Stage][]Stage{
	StageBrowsing:   {StageCartReview},
	StageCartReview: {StageBrowsing, StageCheckout},
	StageCheckout:   {StageCartReview, StageCheckout, StagePaying},
	StagePaying:     {StageCheckout, StageSuccess},
}

func canTransition(from, to Stage) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
