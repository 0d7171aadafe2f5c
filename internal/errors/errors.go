package errors

// ErrorWithStatusCode carries the HTTP status a handler should answer with.
// Services return it when the default 500 is wrong; Message is the machine
// error code written into the JSON envelope.
type ErrorWithStatusCode struct {
	Message    string
	StatusCode int
}

func (e *ErrorWithStatusCode) Error() string {
	return e.Message
}
