package request

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/buger/jsonparser"
	"github.com/gofrs/uuid"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
	"github.com/thrasher-corp/coinbasev1/log"
)

var (
	// ErrResourceNotFound is matched by NotFoundError
	ErrResourceNotFound = errors.New("resource not found")

	errRequestSystemIsNil   = errors.New("request system is nil")
	errRequestFunctionIsNil = errors.New("request function is nil")
	errServiceNameUnset     = errors.New("service name unset")
	errHTTPClientIsNil      = errors.New("http client is nil")
	errRequestItemNil       = errors.New("request item is nil")
	errInvalidPath          = errors.New("invalid path")
	errHeaderResponseIsNil  = errors.New("header response is nil")
	errDecodingResponse     = errors.New("cannot decode response")
)

// WithUserAgent sets the User-Agent header sent on every request
func WithUserAgent(agent string) RequesterOption {
	return func(r *Requester) {
		r.userAgent = agent
	}
}

// WithMiddleware appends middleware to the send pipeline. The first
// middleware supplied is the outermost.
func WithMiddleware(m ...Middleware) RequesterOption {
	return func(r *Requester) {
		r.middleware = append(r.middleware, m...)
	}
}

// New returns a new Requester
func New(name string, httpRequester *http.Client, opts ...RequesterOption) (*Requester, error) {
	if name == "" {
		return nil, errServiceNameUnset
	}
	if httpRequester == nil {
		return nil, errHTTPClientIsNil
	}
	r := &Requester{
		HTTPClient: httpRequester,
		Name:       name,
	}
	for _, o := range opts {
		o(r)
	}

	r.send = r.HTTPClient.Do
	for i := len(r.middleware) - 1; i >= 0; i-- {
		if r.middleware[i] != nil {
			r.send = r.middleware[i](r.send)
		}
	}
	return r, nil
}

// SendPayload handles sending HTTP/HTTPS requests
func (r *Requester) SendPayload(ctx context.Context, newRequest Generate) error {
	if r == nil {
		return errRequestSystemIsNil
	}
	if newRequest == nil {
		return errRequestFunctionIsNil
	}

	p, err := newRequest()
	if err != nil {
		return err
	}

	req, err := p.validateRequest(ctx, r)
	if err != nil {
		return err
	}

	var correlationID string
	if p.Verbose {
		correlationID = newCorrelationID()
		log.Debugf(log.RequestSys, "%s [%s] request path: %s", r.Name, correlationID, p.Path)
		log.Debugf(log.RequestSys, "%s [%s] request type: %s", r.Name, correlationID, p.Method)
		for k, d := range req.Header {
			log.Debugf(log.RequestSys, "%s [%s] request header [%s]: %s", r.Name, correlationID, k, d)
		}
	}

	resp, err := r.send(req)
	if err != nil {
		return redactTransportError(err)
	}
	defer resp.Body.Close()

	contents, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if p.HeaderResponse != nil {
		for k, v := range resp.Header {
			(*p.HeaderResponse)[k] = v
		}
	}

	if p.HTTPDebugging {
		dump, dumpErr := httputil.DumpResponse(resp, false)
		if dumpErr != nil {
			log.Errorf(log.RequestSys, "DumpResponse invalid response: %v:", dumpErr)
		}
		log.Debugf(log.RequestSys, "DumpResponse Headers (%v):\n%s", p.Path, dump)
		log.Debugf(log.RequestSys, "DumpResponse Body (%v):\n %s", p.Path, contents)
	}

	if p.Verbose {
		log.Debugf(log.RequestSys, "%s [%s] HTTP status: %s, Code: %v", r.Name, correlationID, resp.Status, resp.StatusCode)
		if !p.HTTPDebugging {
			log.Debugf(log.RequestSys, "%s [%s] raw response: %s", r.Name, correlationID, contents)
		}
	}

	if resp.StatusCode == http.StatusNotFound {
		return &NotFoundError{Endpoint: endpointOf(req.URL)}
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return &HTTPError{
			Name:       r.Name,
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			Endpoint:   endpointOf(req.URL),
			Body:       contents,
			Messages:   ExtractErrorMessages(contents),
		}
	}

	if p.Result == nil || len(contents) == 0 {
		return nil
	}
	if err := json.Unmarshal(contents, p.Result); err != nil {
		return fmt.Errorf("%s %w from %s: %w", r.Name, errDecodingResponse, endpointOf(req.URL), err)
	}
	return nil
}

// validateRequest validates the requester item fields
func (i *Item) validateRequest(ctx context.Context, r *Requester) (*http.Request, error) {
	if i == nil {
		return nil, errRequestItemNil
	}
	if i.Path == "" {
		return nil, errInvalidPath
	}
	if i.HeaderResponse != nil && *i.HeaderResponse == nil {
		return nil, errHeaderResponseIsNil
	}

	req, err := http.NewRequestWithContext(ctx, i.Method, i.Path, i.Body)
	if err != nil {
		return nil, err
	}

	for k, v := range i.Headers {
		req.Header.Add(k, v)
	}
	if req.Header.Get(accept) == "" {
		req.Header.Set(accept, MIMEApplicationJSON)
	}
	if i.Body != nil && req.Header.Get(contentType) == "" {
		req.Header.Set(contentType, MIMEApplicationJSON)
	}
	if r.userAgent != "" && req.Header.Get(userAgent) == "" {
		req.Header.Set(userAgent, r.userAgent)
	}

	if i.HTTPDebugging {
		dump, dumpErr := httputil.DumpRequestOut(req, true)
		if dumpErr != nil {
			log.Errorf(log.RequestSys, "DumpRequest invalid request: %v", dumpErr)
		}
		log.Debugf(log.RequestSys, "DumpRequest:\n%s", dump)
	}
	return req, nil
}

// ExtractErrorMessages pulls human readable errors out of an exchange error
// body. Both {"errors":["..."]} and {"error":"...","error_description":"..."}
// shapes are recognised.
func ExtractErrorMessages(body []byte) []string {
	var messages []string
	_, _ = jsonparser.ArrayEach(body, func(value []byte, dataType jsonparser.ValueType, _ int, _ error) {
		if dataType == jsonparser.String {
			messages = append(messages, string(value))
		}
	}, "errors")
	for _, key := range []string{"error", "error_description"} {
		if s, err := jsonparser.GetString(body, key); err == nil && s != "" {
			messages = append(messages, s)
		}
	}
	return messages
}

// endpointOf returns the request path with credentials stripped from the
// query string
func endpointOf(u *url.URL) string {
	if u == nil {
		return ""
	}
	stripped := *u
	q := stripped.Query()
	if q.Has("access_token") {
		q.Del("access_token")
		stripped.RawQuery = q.Encode()
	}
	return stripped.String()
}

// redactTransportError strips credentials from the URL carried by a transport
// failure, middleware may have added them after the request was built
func redactTransportError(err error) error {
	var urlErr *url.Error
	if !errors.As(err, &urlErr) {
		return err
	}
	u, parseErr := url.Parse(urlErr.URL)
	if parseErr != nil {
		urlErr.URL = ""
		return err
	}
	urlErr.URL = endpointOf(u)
	return err
}

func newCorrelationID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()
}
