package platform

import (
	"strings"
	"time"
)

// DefaultAppName identifies the sender when Options.AppName is empty.
const DefaultAppName = "PinchCrop"

// Options configures how a notification is displayed on the host platform.
type Options struct {
	// AppName is shown as the sending application where supported.
	AppName string
	// IconPath, when non-empty, points to an image file the notification center
	// should display with the notification if supported by the platform.
	IconPath string
	// Timeout is how long the notification stays up; zero leaves it to the
	// notification server.
	Timeout time.Duration
}

func (o Options) appName() string {
	if name := strings.TrimSpace(o.AppName); name != "" {
		return name
	}
	return DefaultAppName
}

// expireMillis converts Timeout to the freedesktop expire_timeout value,
// where -1 means the server default.
func (o Options) expireMillis() int32 {
	if o.Timeout <= 0 {
		return -1
	}
	ms := o.Timeout.Milliseconds()
	if ms > 1<<31-1 {
		ms = 1<<31 - 1
	}
	return int32(ms)
}
