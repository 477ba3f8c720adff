package state

import (
	"github.com/cristianoliveira/camtray/internal/controller"
)

// actionDoneMsg is sent when a controller action finishes.
type actionDoneMsg struct {
	action controller.Action
	err    error
	// captured is the number of photos a multi-capture produced.
	captured int
}
