package http

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/inkpothq/inkpot/pkg/blogsdk"

	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUploadRequiresSession(t *testing.T) {
	env := newTestEnv(t)

	body, contentType := multipartBody(t, "file", "pic.png", []byte("png-bytes"))
	resp, err := http.Post(env.Server.URL+"/upload", contentType, body)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUploadAssignsServerFilename(t *testing.T) {
	env := newTestEnv(t)
	registerAndLogin(t, env, "jack")

	body, contentType := multipartBody(t, "file", "../../etc/passwd.png", []byte("png-bytes"))

	req, err := http.NewRequest(http.MethodPost, env.Server.URL+"/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.Client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out blogsdk.UploadResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	require.NotEmpty(t, out.Filename)
	require.NotContains(t, out.Filename, "/")
	require.Contains(t, out.Filename, ".png")

	// The stored file is served back publicly.
	got, err := http.Get(env.Server.URL + "/uploads/" + out.Filename)
	require.NoError(t, err)
	defer got.Body.Close()
	require.Equal(t, http.StatusOK, got.StatusCode)

	content, err := io.ReadAll(got.Body)
	require.NoError(t, err)
	require.Equal(t, []byte("png-bytes"), content)
}

func TestUploadRejectsUnknownExtension(t *testing.T) {
	env := newTestEnv(t)
	registerAndLogin(t, env, "kate")

	body, contentType := multipartBody(t, "file", "script.sh", []byte("#!/bin/sh"))

	req, err := http.NewRequest(http.MethodPost, env.Server.URL+"/upload", body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", contentType)

	resp, err := env.Client.HTTPClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
