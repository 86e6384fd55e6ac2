package entity

// FlightStatus is the lifecycle state of a ferry flight. The string values
// are wire values and must not change.
type FlightStatus string

const (
	StatusDraft              FlightStatus = "draft"
	StatusInspectionPending  FlightStatus = "inspection_pending"
	StatusInspectionComplete FlightStatus = "inspection_complete"
	StatusFAASubmitted       FlightStatus = "faa_submitted"
	StatusFAAQuestions       FlightStatus = "faa_questions"
	StatusPermitIssued       FlightStatus = "permit_issued"
	StatusScheduled          FlightStatus = "scheduled"
	StatusInProgress         FlightStatus = "in_progress"
	StatusCompleted          FlightStatus = "completed"
	StatusAborted            FlightStatus = "aborted"
	StatusDenied             FlightStatus = "denied"
)

// AllStatuses lists every status in lifecycle order.
var AllStatuses = []FlightStatus{
	StatusDraft,
	StatusInspectionPending,
	StatusInspectionComplete,
	StatusFAASubmitted,
	StatusFAAQuestions,
	StatusPermitIssued,
	StatusScheduled,
	StatusInProgress,
	StatusCompleted,
	StatusAborted,
	StatusDenied,
}

// statusTransitions is the adjacency table of the flight state machine.
// completed and aborted are terminal; there is no admin escape hatch.
var statusTransitions = map[FlightStatus][]FlightStatus{
	StatusDraft:              {StatusInspectionPending, StatusDenied},
	StatusInspectionPending:  {StatusInspectionComplete, StatusDraft},
	StatusInspectionComplete: {StatusFAASubmitted, StatusDraft},
	StatusFAASubmitted:       {StatusFAAQuestions, StatusPermitIssued, StatusDenied, StatusDraft},
	StatusFAAQuestions:       {StatusFAASubmitted, StatusPermitIssued, StatusDenied, StatusDraft},
	StatusPermitIssued:       {StatusScheduled, StatusDraft},
	StatusScheduled:          {StatusInProgress, StatusAborted, StatusDraft},
	StatusInProgress:         {StatusCompleted, StatusAborted},
	StatusCompleted:          {},
	StatusAborted:            {},
	StatusDenied:             {StatusDraft},
}

var statusLabels = map[FlightStatus]string{
	StatusDraft:              "Draft",
	StatusInspectionPending:  "Inspection Pending",
	StatusInspectionComplete: "Inspection Complete",
	StatusFAASubmitted:       "Submitted to FAA",
	StatusFAAQuestions:       "FAA Questions",
	StatusPermitIssued:       "Permit Issued",
	StatusScheduled:          "Scheduled",
	StatusInProgress:         "In Progress",
	StatusCompleted:          "Completed",
	StatusAborted:            "Aborted",
	StatusDenied:             "Denied",
}

// IsKnownStatus reports whether s is one of the defined statuses.
func IsKnownStatus(s FlightStatus) bool {
	_, ok := statusTransitions[s]
	return ok
}

// IsValidTransition reports whether the flight may move from one status to
// another. A same-status transition is always valid (idempotent no-op).
func IsValidTransition(from, to FlightStatus) bool {
	if from == to {
		return IsKnownStatus(from)
	}
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidNextStatuses returns the statuses reachable from the given status, in
// table order. Terminal statuses return an empty slice.
func ValidNextStatuses(from FlightStatus) []FlightStatus {
	next := statusTransitions[from]
	out := make([]FlightStatus, len(next))
	copy(out, next)
	return out
}

// IsTerminalStatus reports whether the status has no outgoing transitions.
func IsTerminalStatus(s FlightStatus) bool {
	return IsKnownStatus(s) && len(statusTransitions[s]) == 0
}

// StatusLabel returns the display label for a status, or "unknown" for any
// value not in the table.
func StatusLabel(s FlightStatus) string {
	if label, ok := statusLabels[s]; ok {
		return label
	}
	return "unknown"
}
