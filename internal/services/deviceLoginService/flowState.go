package deviceloginservice

type FlowState int

const (
	NotStarted FlowState = iota
	AwaitingCode
	Polling
	Succeeded
	TimedOut
	TransportFailed
	SchemaFailed
	Cancelled
)

func (s FlowState) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case AwaitingCode:
		return "awaiting_code"
	case Polling:
		return "polling"
	case Succeeded:
		return "succeeded"
	case TimedOut:
		return "timed_out"
	case TransportFailed:
		return "transport_failed"
	case SchemaFailed:
		return "schema_failed"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s FlowState) Terminal() bool {
	switch s {
	case Succeeded, TimedOut, TransportFailed, SchemaFailed, Cancelled:
		return true
	default:
		return false
	}
}
