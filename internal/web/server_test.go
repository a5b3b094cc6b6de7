package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"envedit/internal/editor"
	"envedit/internal/settings"
)

func newTestServer(t *testing.T, content string) (*httptest.Server, string) {
	t.Helper()
	dir := t.TempDir()
	profilePath := filepath.Join(dir, ".profile")
	require.NoError(t, os.WriteFile(profilePath, []byte(content), 0644))

	store := settings.New(settings.WithFile(filepath.Join(dir, "cfg", settings.FileName)))
	require.NoError(t, store.SetProfile(profilePath))

	ed := editor.New(store, editor.WithEnviron(func() []string { return []string{"PATH=/usr/bin:/bin"} }))
	srv := httptest.NewServer(NewServer(ed, "").Handler())
	t.Cleanup(srv.Close)
	return srv, profilePath
}

func postVar(t *testing.T, url, key, value string) (*http.Response, messageResponse) {
	t.Helper()
	body, err := json.Marshal(addRequest{Key: key, Value: value})
	require.NoError(t, err)
	res, err := http.Post(url+"/api/vars", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer res.Body.Close()

	var msg messageResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&msg))
	return res, msg
}

func TestQuery(t *testing.T) {
	srv, profilePath := newTestServer(t, "export PATH=\"/opt/bin:$PATH\"\n")

	res, err := http.Get(srv.URL + "/api/vars")
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusOK, res.StatusCode)

	var body queryResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, profilePath, body.Profile)
	require.Len(t, body.Vars, 1)
	assert.Equal(t, "PATH", body.Vars[0].Name)
	assert.Equal(t, []string{"/opt/bin", "/usr/bin", "/bin"}, body.Vars[0].Values)
	assert.True(t, body.Vars[0].FromProfile)
}

func TestQuery_Failure(t *testing.T) {
	srv, _ := newTestServer(t, "export A=$NOPE\n")

	res, err := http.Get(srv.URL + "/api/vars")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)

	var body messageResponse
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Contains(t, body.Error, "refers to a variable before it is defined")
}

func TestAdd(t *testing.T) {
	srv, profilePath := newTestServer(t, "")

	res, msg := postVar(t, srv.URL, "FOO", "bar")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, msg.Message, "Variable added successfully!")

	res, msg = postVar(t, srv.URL, "FOO", "bar")
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "Variable has been added already.", msg.Message)

	data, err := os.ReadFile(profilePath)
	require.NoError(t, err)
	assert.Equal(t, "\nexport FOO=\"bar\":$FOO", string(data))
}

func TestAdd_InvalidInput(t *testing.T) {
	srv, _ := newTestServer(t, "")

	res, msg := postVar(t, srv.URL, "FOO", "")
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Equal(t, "Invalid input, contains null character or is empty.", msg.Error)

	res, err := http.Post(srv.URL+"/api/vars", "application/json", bytes.NewReader([]byte("{")))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestDefinitionsAndProfile(t *testing.T) {
	srv, profilePath := newTestServer(t, "# go\nexport GOPATH=/go\n")

	res, err := http.Get(srv.URL + "/api/vars/GOPATH/definitions")
	require.NoError(t, err)
	defer res.Body.Close()
	var defs []struct {
		Target     string
		LineNumber int
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&defs))
	require.Len(t, defs, 1)
	assert.Equal(t, 2, defs[0].LineNumber)
	assert.Equal(t, "export GOPATH=/go", defs[0].Target)

	res2, err := http.Get(srv.URL + "/api/profile")
	require.NoError(t, err)
	defer res2.Body.Close()
	var loc map[string]string
	require.NoError(t, json.NewDecoder(res2.Body).Decode(&loc))
	assert.Equal(t, profilePath, loc["shell_profile"])
}

func TestStatic(t *testing.T) {
	srv, _ := newTestServer(t, "")
	res, err := http.Get(srv.URL + "/")
	require.NoError(t, err)
	defer res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, res.Header.Get("Content-Type"), "text/html")
}
