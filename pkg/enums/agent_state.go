package enums

import "strings"

// ScheduledState is what the schedule says an agent should be doing now.
type ScheduledState string

const (
	ScheduledWorking ScheduledState = "Working"
	ScheduledBreak   ScheduledState = "Break"
	ScheduledOff     ScheduledState = "Off"
)

// String implements fmt.Stringer.
func (s ScheduledState) String() string {
	return string(s)
}

// LiveState is the label reported by the telephony platform for an agent.
// The set is open; comparisons normalize to upper case.
type LiveState string

const (
	LiveReady   LiveState = "Ready"
	LiveTalking LiveState = "Talking"
	LiveOnCall  LiveState = "On Call"
	LiveBreak   LiveState = "Break"
	LiveAux     LiveState = "Aux"
	LivePause   LiveState = "Pause"
	LiveOffline LiveState = "Offline"
)

// String implements fmt.Stringer.
func (l LiveState) String() string {
	return string(l)
}

// Normalized returns the upper-cased label used in adherence comparisons.
func (l LiveState) Normalized() string {
	return strings.ToUpper(string(l))
}
