package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionPing    Action = "ping"
	ActionRefresh Action = "refresh"
)

// RequestEnvelope is used to peek at the action before full parsing.
type RequestEnvelope struct {
	Action Action `json:"action"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventError      Event = "error"
	EventPong       Event = "pong"
	EventSubmission Event = "submission"
	EventStats      Event = "stats"
)

// SubmissionNotice tells the dashboard a new response arrived.
type SubmissionNotice struct {
	Event       Event  `json:"event"`
	SurveyID    string `json:"survey_id"`
	SubmittedAt string `json:"submitted_at"`
}

// StatsResponse carries a full statistics payload, sent on connect, on
// explicit refresh, and after each submission notice.
type StatsResponse struct {
	Event Event       `json:"event"`
	Stats interface{} `json:"stats"`
}

type ErrorResponse struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongResponse struct {
	Event Event `json:"event"`
}
