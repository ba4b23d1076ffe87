// SPDX-License-Identifier: EPL-2.0

package capture

import "fmt"

// State is the lifecycle state of a Session.
//
//	Idle --Start--> Capturing --Pause--> Paused --Resume--> Capturing
//	Capturing|Paused --Stop--> Stopped --Start--> Capturing
//	any --Reset--> Idle
type State int

const (
	Idle State = iota
	Capturing
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Capturing:
		return "capturing"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}
