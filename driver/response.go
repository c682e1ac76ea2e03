package driver

import "fmt"

// Response is the uniform contract every client call returns. For any
// terminal state exactly one of Data and Err is meaningfully populated.
// Status is always set; 0 is reserved for a pure network failure where no
// HTTP status was obtained.
type Response[T any] struct {
	Data   *T
	Err    string
	Status int
}

// OK reports whether the call produced a usable payload.
func (r Response[T]) OK() bool {
	return r.Err == "" && r.Data != nil
}

// RequestError converts a failed Response into a Go error for callers that
// want error returns instead of the envelope.
type RequestError struct {
	Status int
	Detail string
}

func (e *RequestError) Error() string {
	if e.Status == 0 {
		return e.Detail
	}
	return fmt.Sprintf("%s (status %d)", e.Detail, e.Status)
}
