package structures

// Message is the cross-context message envelope accepted on the message
// endpoint. Fields beyond Action are action-specific and validated at the
// boundary, since the sending context is not trusted.
type Message struct {
	Action string          `json:"action"`
	Time   string          `json:"time,omitempty"`
	Data   *CompletionData `json:"data,omitempty"`
}

// CompletionData carries a confirmed daily-challenge completion.
type CompletionData struct {
	Streak   int    `json:"streak"`
	Username string `json:"username"`
	Avatar   string `json:"avatar"`
}

const (
	ActionUpdateBadge        = "updateBadge"
	ActionUpdateReminderTime = "updateReminderTime"
	ActionStartLoadingBlink  = "startLoadingBlink"
	ActionStopLoadingBlink   = "stopLoadingBlink"
	ActionProblemSolved      = "problemSolved"
)

// MutationReport is one observed DOM mutation batch posted by the page
// script: the concatenated HTML of nodes added since the last report.
type MutationReport struct {
	HTML string `json:"html"`
}
