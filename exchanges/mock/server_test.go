package mock

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thrasher-corp/coinbasev1/encoding/json"
)

func testMock() VCRMock {
	return VCRMock{
		AccessToken: "token",
		Routes: map[string]map[string][]HTTPResponse{
			"/accounts": {
				http.MethodGet: {
					{QueryString: "page=1&limit=2", Data: json.RawMessage(`{"current_page":1}`)},
					{QueryString: "page=2&limit=2", Data: json.RawMessage(`{"current_page":2}`)},
				},
				http.MethodPost: {
					{BodyParams: "account[name]=savings", Data: json.RawMessage(`{"success":true}`), StatusCode: http.StatusCreated},
				},
			},
		},
	}
}

func get(t *testing.T, rawURL string) (int, string) {
	t.Helper()
	resp, err := http.Get(rawURL) //nolint:gosec,noctx // test server url
	require.NoError(t, err, "Get must not error")
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "ReadAll must not error")
	return resp.StatusCode, string(b)
}

func TestNewServer(t *testing.T) {
	t.Parallel()
	s := NewServer(testMock())
	defer s.Close()

	code, body := get(t, s.URL+"/accounts?page=2&limit=2&access_token=token")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"current_page":2}`, body)

	code, _ = get(t, s.URL+"/accounts?page=3&limit=2&access_token=token")
	assert.Equal(t, http.StatusBadRequest, code, "unrecorded query should not match")

	code, _ = get(t, s.URL+"/missing?access_token=token")
	assert.Equal(t, http.StatusNotFound, code)

	code, body = get(t, s.URL+"/accounts?page=1&limit=2&access_token=wrong")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Contains(t, body, "invalid_token")

	resp, err := http.Post(s.URL+"/accounts?access_token=token", "application/json", strings.NewReader(`{"account":{"name":"savings"}}`)) //nolint:noctx // test server url
	require.NoError(t, err, "Post must not error")
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	assert.Equal(t, 3, s.Hits(http.MethodGet, "/accounts"))
	assert.Equal(t, 1, s.Hits(http.MethodPost, "/accounts"))
}

func TestSetAccessToken(t *testing.T) {
	t.Parallel()
	s := NewServer(testMock())
	defer s.Close()

	s.SetAccessToken("rotated")
	code, _ := get(t, s.URL+"/accounts?page=1&limit=2&access_token=token")
	assert.Equal(t, http.StatusUnauthorized, code)
	code, _ = get(t, s.URL+"/accounts?page=1&limit=2&access_token=rotated")
	assert.Equal(t, http.StatusOK, code)
}

func TestNewVCRServer(t *testing.T) {
	t.Parallel()
	_, err := NewVCRServer("")
	assert.ErrorIs(t, err, errEmptyPath)

	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.json")
	require.NoError(t, os.WriteFile(empty, []byte(`{"routes":{}}`), 0o600), "WriteFile must not error")
	_, err = NewVCRServer(empty)
	assert.ErrorIs(t, err, errNoRoutes)

	payload, err := json.Marshal(testMock())
	require.NoError(t, err, "Marshal must not error")
	path := filepath.Join(dir, "coinbase.json")
	require.NoError(t, os.WriteFile(path, payload, 0o600), "WriteFile must not error")

	s, err := NewVCRServer(path)
	require.NoError(t, err, "NewVCRServer must not error")
	defer s.Close()
	code, body := get(t, s.URL+"/accounts?page=1&limit=2&access_token=token")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"current_page":1}`, body)
}
