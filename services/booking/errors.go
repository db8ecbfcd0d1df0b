package booking

import "errors"

// ErrDateInPast is returned for a parseable date/time earlier than now.
var ErrDateInPast = errors.New("date is in the past")
