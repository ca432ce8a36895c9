package request

import (
	"fmt"
	"io"
	"net/http"
	"strings"
)

const (
	userAgent   = "User-Agent"
	accept      = "Accept"
	contentType = "Content-Type"

	// MIMEApplicationJSON is the only media type the exchange speaks
	MIMEApplicationJSON = "application/json"
)

// Sender performs a single HTTP round trip
type Sender func(*http.Request) (*http.Response, error)

// Middleware wraps a Sender with additional behaviour. A middleware may send
// the request more than once but must return exactly one response.
type Middleware func(next Sender) Sender

// Requester struct for the request client
type Requester struct {
	HTTPClient *http.Client
	Name       string
	userAgent  string
	middleware []Middleware
	send       Sender
}

// RequesterOption is a function option that can be applied to configure a
// Requester when creating it.
type RequesterOption func(*Requester)

// Item is a temp item for requests
type Item struct {
	Method         string
	Path           string
	Headers        map[string]string
	Body           io.Reader
	Result         interface{}
	Verbose        bool
	HTTPDebugging  bool
	HeaderResponse *http.Header
}

// Generate defines a closure for functionality outside of the requester to
// generate a new *http.Request.
type Generate func() (*Item, error)

// NotFoundError is returned when the exchange responds with 404 Not Found
type NotFoundError struct {
	Endpoint string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%v: %s", ErrResourceNotFound, e.Endpoint)
}

// Is allows errors.Is(err, ErrResourceNotFound) to match
func (e *NotFoundError) Is(target error) bool {
	return target == ErrResourceNotFound
}

// HTTPError is returned for any other unsuccessful status code. Messages
// holds the error strings extracted from the response body when present.
type HTTPError struct {
	Name       string
	StatusCode int
	Status     string
	Endpoint   string
	Body       []byte
	Messages   []string
}

func (e *HTTPError) Error() string {
	if len(e.Messages) > 0 {
		return fmt.Sprintf("%s unsuccessful HTTP status code: %d %s: %s",
			e.Name, e.StatusCode, e.Endpoint, strings.Join(e.Messages, ", "))
	}
	return fmt.Sprintf("%s unsuccessful HTTP status code: %d %s raw response: %s",
		e.Name, e.StatusCode, e.Endpoint, e.Body)
}
