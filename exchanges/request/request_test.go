package request

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/coinbasev1/common"
)

var testURL string

func TestMain(m *testing.M) {
	sm := http.NewServeMux()
	sm.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if _, err := io.WriteString(w, `{"response":true}`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/error", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		if _, err := io.WriteString(w, `{"success":false,"errors":["Name can't be blank","Email is invalid"]}`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/teapot", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		if _, err := io.WriteString(w, `short and stout`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})
	sm.HandleFunc("/garbage", func(w http.ResponseWriter, _ *http.Request) {
		if _, err := io.WriteString(w, `{"response":`); err != nil {
			log.Fatal(err)
		}
	})
	sm.HandleFunc("/echo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Accept", r.Header.Get(accept))
		w.Header().Set("X-Echo-Agent", r.Header.Get(userAgent))
		w.Header().Set("X-Echo-Content-Type", r.Header.Get(contentType))
		body, err := io.ReadAll(r.Body)
		if err != nil {
			log.Fatal(err)
		}
		if _, err := w.Write(body); err != nil {
			log.Fatal(err)
		}
	})

	server := httptest.NewServer(sm)
	testURL = server.URL
	issues := m.Run()
	server.Close()
	os.Exit(issues)
}

func newTestRequester(t *testing.T, opts ...RequesterOption) *Requester {
	t.Helper()
	r, err := New("test", common.NewHTTPClientWithTimeout(0), opts...)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	t.Parallel()
	_, err := New("", new(http.Client))
	assert.ErrorIs(t, err, errServiceNameUnset)
	_, err = New("test", nil)
	assert.ErrorIs(t, err, errHTTPClientIsNil)

	r, err := New("test", new(http.Client), WithUserAgent("cbv1"))
	require.NoError(t, err)
	assert.Equal(t, "cbv1", r.userAgent)
	assert.NotNil(t, r.send)
}

func TestSendPayloadValidation(t *testing.T) {
	t.Parallel()
	var r *Requester
	assert.ErrorIs(t, r.SendPayload(context.Background(), nil), errRequestSystemIsNil)

	r = newTestRequester(t)
	assert.ErrorIs(t, r.SendPayload(context.Background(), nil), errRequestFunctionIsNil)

	errGenerate := errors.New("generate failure")
	err := r.SendPayload(context.Background(), func() (*Item, error) { return nil, errGenerate })
	assert.ErrorIs(t, err, errGenerate)

	err = r.SendPayload(context.Background(), func() (*Item, error) { return nil, nil })
	assert.ErrorIs(t, err, errRequestItemNil)

	err = r.SendPayload(context.Background(), func() (*Item, error) { return &Item{Method: http.MethodGet}, nil })
	assert.ErrorIs(t, err, errInvalidPath)

	var nilHeader http.Header
	err = r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL, HeaderResponse: &nilHeader}, nil
	})
	assert.ErrorIs(t, err, errHeaderResponseIsNil)
}

func TestSendPayload(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)
	var resp struct {
		Response bool `json:"response"`
	}
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{
			Method:        http.MethodGet,
			Path:          testURL,
			Result:        &resp,
			Verbose:       true,
			HTTPDebugging: true,
		}, nil
	})
	require.NoError(t, err)
	assert.True(t, resp.Response)
}

func TestSendPayloadHeadersAndBody(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t, WithUserAgent("cbv1-test"))
	headers := http.Header{}
	var resp struct {
		Name string `json:"name"`
	}
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{
			Method:         http.MethodPost,
			Path:           testURL + "/echo",
			Body:           bytes.NewReader([]byte(`{"name":"savings"}`)),
			Result:         &resp,
			HeaderResponse: &headers,
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "savings", resp.Name)
	assert.Equal(t, MIMEApplicationJSON, headers.Get("X-Echo-Accept"))
	assert.Equal(t, MIMEApplicationJSON, headers.Get("X-Echo-Content-Type"))
	assert.Equal(t, "cbv1-test", headers.Get("X-Echo-Agent"))
}

func TestSendPayloadNotFound(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL + "/missing?access_token=secret&page=2"}, nil
	})
	assert.ErrorIs(t, err, ErrResourceNotFound)
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Contains(t, nf.Endpoint, "/missing?page=2")
	assert.NotContains(t, nf.Error(), "secret")
}

func TestSendPayloadHTTPError(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodPost, Path: testURL + "/error"}, nil
	})
	var httpErr *HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, []string{"Name can't be blank", "Email is invalid"}, httpErr.Messages)
	assert.Contains(t, httpErr.Error(), "Email is invalid")

	err = r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL + "/teapot"}, nil
	})
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTeapot, httpErr.StatusCode)
	assert.Empty(t, httpErr.Messages)
	assert.Contains(t, httpErr.Error(), "short and stout")
}

func TestSendPayloadDecodeError(t *testing.T) {
	t.Parallel()
	r := newTestRequester(t)
	var resp struct{}
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL + "/garbage", Result: &resp}, nil
	})
	assert.ErrorIs(t, err, errDecodingResponse)
}

func TestSendPayloadTransportErrorRedactsToken(t *testing.T) {
	t.Parallel()
	closed := httptest.NewServer(http.NotFoundHandler())
	closed.Close()

	addToken := func(next Sender) Sender {
		return func(req *http.Request) (*http.Response, error) {
			q := req.URL.Query()
			q.Set("access_token", "SECRET-TOKEN")
			req.URL.RawQuery = q.Encode()
			return next(req)
		}
	}
	r := newTestRequester(t, WithMiddleware(addToken))
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: closed.URL + "/accounts?page=1"}, nil
	})
	require.Error(t, err, "SendPayload must error against a closed server")
	assert.NotContains(t, err.Error(), "SECRET-TOKEN")
	assert.Contains(t, err.Error(), "/accounts?page=1")

	var urlErr *url.Error
	require.ErrorAs(t, err, &urlErr)
	assert.False(t, strings.Contains(urlErr.URL, "access_token"), "url error must not carry the token parameter")
}

func TestMiddlewareOrder(t *testing.T) {
	t.Parallel()
	var order []string
	tag := func(name string) Middleware {
		return func(next Sender) Sender {
			return func(req *http.Request) (*http.Response, error) {
				order = append(order, name)
				return next(req)
			}
		}
	}
	r := newTestRequester(t, WithMiddleware(tag("outer"), nil, tag("inner")))
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{Method: http.MethodGet, Path: testURL}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestMiddlewareCanResend(t *testing.T) {
	t.Parallel()
	var sends int32
	resend := func(next Sender) Sender {
		return func(req *http.Request) (*http.Response, error) {
			resp, err := next(req)
			if err != nil {
				return nil, err
			}
			resp.Body.Close()
			atomic.AddInt32(&sends, 1)
			clone := req.Clone(req.Context())
			if req.GetBody != nil {
				if clone.Body, err = req.GetBody(); err != nil {
					return nil, err
				}
			}
			atomic.AddInt32(&sends, 1)
			return next(clone)
		}
	}
	r := newTestRequester(t, WithMiddleware(resend))
	var resp struct {
		Name string `json:"name"`
	}
	err := r.SendPayload(context.Background(), func() (*Item, error) {
		return &Item{
			Method: http.MethodPost,
			Path:   testURL + "/echo",
			Body:   bytes.NewReader([]byte(`{"name":"replayed"}`)),
			Result: &resp,
		}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "replayed", resp.Name)
	assert.Equal(t, int32(2), atomic.LoadInt32(&sends))
}

func TestExtractErrorMessages(t *testing.T) {
	t.Parallel()
	assert.Equal(t, []string{"invalid_grant", "The provided authorization grant is invalid"},
		ExtractErrorMessages([]byte(`{"error":"invalid_grant","error_description":"The provided authorization grant is invalid"}`)))
	assert.Nil(t, ExtractErrorMessages([]byte(`<html></html>`)))
	assert.Nil(t, ExtractErrorMessages(nil))
}
