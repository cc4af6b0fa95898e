package api

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated reports that the API rejected the session credential
// with a 401. The gateway has already cleared the session store by the time
// a caller sees this; the page layer translates it into a redirect to the
// login page and never renders it as a message.
var ErrUnauthenticated = errors.New("credential rejected by API")

// Error is the error envelope the blog API returns for non-2xx responses.
type Error struct {
	Timestamp        string            `json:"timestamp"`
	Status           int               `json:"status"`
	ErrorText        string            `json:"error"`
	Message          string            `json:"message"`
	Path             string            `json:"path"`
	ValidationErrors map[string]string `json:"validationErrors,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("api: %d %s: %s", e.Status, e.ErrorText, e.Message)
}
