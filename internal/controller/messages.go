package controller

import (
	"errors"

	"github.com/cristianoliveira/camtray/internal/capture"
)

// Action names a user-triggered operation.
type Action string

const (
	ActionCapture Action = "capture"
	ActionSelect  Action = "select"
	ActionToggle  Action = "toggle"
	ActionMulti   Action = "multi"
)

var fallbackMessages = map[Action]string{
	ActionCapture: "Failed to capture photo",
	ActionSelect:  "Failed to select from gallery",
	ActionToggle:  "Failed to switch camera",
	ActionMulti:   "Failed to take multiple photos",
}

// Message turns an action failure into the text shown to the user.
func Message(action Action, err error) string {
	if err == nil {
		return ""
	}
	switch capture.KindOf(err) {
	case capture.KindPermissionDenied:
		if action == ActionSelect {
			return "Photo library permission denied. Allow access to your photos in the system settings."
		}
		return "Camera permission denied. Allow camera access in the system settings."
	case capture.KindCancelled:
		if action == ActionSelect {
			return "Image selection was cancelled."
		}
		return "Image capture was cancelled."
	case capture.KindTimeout:
		return "Timed out waiting for the camera. Please try again."
	case capture.KindNoImageData:
		return "Could not get the image path."
	}
	var ce *capture.Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return fallback(action)
}

func fallback(action Action) string {
	if msg, ok := fallbackMessages[action]; ok {
		return msg
	}
	return "Something went wrong. Please try again."
}
