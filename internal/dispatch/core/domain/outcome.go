package domain

// Outcome is the terminal state of one dispatch. Suppressed outcomes are
// observable via metrics and logs only; they never surface as errors to a
// batch caller.
type Outcome string

const (
	OutcomeDelivered Outcome = "delivered"

	// OutcomeSuppressedNoRecipients marks the empty-recipient short-circuit:
	// nothing was rendered or delivered.
	OutcomeSuppressedNoRecipients Outcome = "suppressed_no_recipients"

	// OutcomeSuppressedDeliveryFailure marks a delivery failure that was
	// absorbed at the dispatch boundary.
	OutcomeSuppressedDeliveryFailure Outcome = "suppressed_delivery_failure"

	// OutcomeRenderFailed marks a template failure; unlike the suppressed
	// outcomes it is accompanied by an error.
	OutcomeRenderFailed Outcome = "render_failed"
)
