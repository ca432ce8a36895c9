package mock

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync"

	"github.com/thrasher-corp/coinbasev1/encoding/json"
)

var (
	errEmptyPath     = errors.New("mock file path cannot be empty")
	errNoRoutes      = errors.New("mock data contains no routes")
	errNoRecordMatch = errors.New("no recorded response matches request")
)

// VCRMock holds recorded responses keyed by path and method
type VCRMock struct {
	// AccessToken, when set, must be presented by every request as the
	// access_token query parameter or a 401 is returned
	AccessToken string                               `json:"accessToken,omitempty"`
	Routes      map[string]map[string][]HTTPResponse `json:"routes"`
}

// HTTPResponse defines a single recorded response and what the request must
// carry to receive it
type HTTPResponse struct {
	Data        json.RawMessage `json:"data"`
	QueryString string          `json:"queryString"`
	BodyParams  string          `json:"bodyParams"`
	StatusCode  int             `json:"statusCode,omitempty"`
}

// Server is a running mock server with a settable access token
type Server struct {
	*httptest.Server

	mu    sync.RWMutex
	mock  VCRMock
	hits  map[string]int
	token string
}

// LoadVCRMock reads recorded responses from a JSON file
func LoadVCRMock(path string) (VCRMock, error) {
	if path == "" {
		return VCRMock{}, errEmptyPath
	}
	contents, err := os.ReadFile(path)
	if err != nil {
		return VCRMock{}, err
	}
	var m VCRMock
	if err := json.Unmarshal(contents, &m); err != nil {
		return VCRMock{}, err
	}
	if len(m.Routes) == 0 {
		return VCRMock{}, fmt.Errorf("%s: %w", path, errNoRoutes)
	}
	return m, nil
}

// NewVCRServer starts a server replaying the recordings stored at path
func NewVCRServer(path string) (*Server, error) {
	m, err := LoadVCRMock(path)
	if err != nil {
		return nil, err
	}
	return NewServer(m), nil
}

// NewServer starts a server replaying the supplied recordings. Callers must
// Close it.
func NewServer(m VCRMock) *Server {
	s := &Server{mock: m, hits: make(map[string]int), token: m.AccessToken}
	s.Server = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// SetAccessToken changes the token requests must present, simulating a
// server side revocation
func (s *Server) SetAccessToken(token string) {
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
}

// Hits returns how many requests were made for method and path
func (s *Server) Hits(method, path string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[method+" "+path]
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.Method+" "+r.URL.Path]++
	token := s.token
	s.mu.Unlock()

	query := r.URL.Query()
	if token != "" {
		if query.Get("access_token") != token {
			writeJSON(w, http.StatusUnauthorized, json.RawMessage(`{"error":"invalid_token","error_description":"The access token is invalid"}`))
			return
		}
	}
	query.Del("access_token")

	methods, ok := s.mock.Routes[r.URL.Path]
	if !ok {
		writeJSON(w, http.StatusNotFound, json.RawMessage(`{"errors":["Not found"]}`))
		return
	}
	responses, ok := methods[r.Method]
	if !ok {
		writeJSON(w, http.StatusMethodNotAllowed, json.RawMessage(`{"errors":["Method not allowed"]}`))
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}
	bodyVals, err := bodyValues(r.Header.Get("Content-Type"), body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody(err))
		return
	}

	for i := range responses {
		want, err := url.ParseQuery(responses[i].QueryString)
		if err != nil || !MatchURLVals(want, query) {
			continue
		}
		if responses[i].BodyParams != "" {
			wantBody, err := url.ParseQuery(responses[i].BodyParams)
			if err != nil || !MatchURLVals(wantBody, bodyVals) {
				continue
			}
		}
		status := responses[i].StatusCode
		if status == 0 {
			status = http.StatusOK
		}
		writeJSON(w, status, responses[i].Data)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorBody(fmt.Errorf("%w: %s %s", errNoRecordMatch, r.Method, r.URL.RequestURI())))
}

func bodyValues(contentType string, body []byte) (url.Values, error) {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return url.Values{}, nil
	}
	if contentType == "application/x-www-form-urlencoded" {
		return url.ParseQuery(string(body))
	}
	return DeriveURLValsFromJSONMap(body)
}

func errorBody(err error) json.RawMessage {
	b, mErr := json.Marshal(map[string][]string{"errors": {err.Error()}})
	if mErr != nil {
		return json.RawMessage(`{"errors":["mock server failure"]}`)
	}
	return b
}

func writeJSON(w http.ResponseWriter, status int, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if len(data) == 0 {
		return
	}
	_, _ = w.Write(data)
}
