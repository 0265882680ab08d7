package mqtt

import "errors"

// ErrPublishFailed is returned when a plan could not be delivered after all retries.
var ErrPublishFailed = errors.New("plan publish failed")
