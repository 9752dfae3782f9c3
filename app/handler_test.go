package main

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthCheckHandler(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	status, _, body := ts.get(t, "/v1/healthcheck", nil)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "available", body["status"])
}

func TestAccountFlow(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	// register
	status, _, body := ts.post(t, "/v1/users/register", map[string]any{
		"username": "testuser",
		"email":    "testuser@example.com",
		"password": "Test_1234!",
	}, nil)
	assert.Equal(t, http.StatusCreated, status)

	activationToken, ok := body["token"].(string)
	assert.True(t, ok)

	// activate
	status, _, _ = ts.put(t, "/v1/users/activate", nil, map[string]any{"token": activationToken})
	assert.Equal(t, http.StatusOK, status)

	// login
	status, header, body := ts.post(t, "/v1/users/login", map[string]any{
		"username": "testuser",
		"password": "Test_1234!",
	}, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Contains(t, header.Get("Set-Cookie"), app.config.SessionCookieName+"=")

	tokenData, ok := body["token"].(map[string]any)
	assert.True(t, ok)
	accessToken, ok := tokenData["access_token"].(string)
	assert.True(t, ok)

	// the activated account can reach the admin surface
	status, _, _ = ts.get(t, "/v1/admin/posts", &accessToken)
	assert.Equal(t, http.StatusOK, status)

	// logout
	status, _, _ = ts.post(t, "/v1/users/logout", nil, &accessToken)
	assert.Equal(t, http.StatusOK, status)

	// the token no longer works
	status, _, _ = ts.get(t, "/v1/admin/posts", &accessToken)
	assert.Equal(t, http.StatusUnauthorized, status)
}

// A session cookie that no longer resolves to a live token (rotated by a
// login on another device, or simply expired) must not take down the public
// surface or the login endpoint.
func TestStaleSessionCookie(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	firstToken := seedAdmin(t, app, db)

	// logging in again rotates the token pair, invalidating the first one
	status, _, _ := ts.post(t, "/v1/users/login", map[string]any{
		"username": "adminuser",
		"password": "Test_1234!",
	}, nil)
	assert.Equal(t, http.StatusOK, status)

	withStaleCookie := func(method, path string, payload []byte) *http.Request {
		req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(payload))
		assert.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: app.config.SessionCookieName, Value: firstToken})
		if payload != nil {
			req.Header.Set("Content-Type", "application/json")
		}
		return req
	}

	// public reads still answer
	res, err := ts.Client().Do(withStaleCookie(http.MethodGet, "/v1/posts", nil))
	assert.NoError(t, err)
	status, _, body := readResponse(t, res)
	assert.Equal(t, http.StatusOK, status)
	assert.NotNil(t, body["posts"])

	// and the owner can log back in without clearing the cookie
	res, err = ts.Client().Do(withStaleCookie(http.MethodPost, "/v1/users/login", []byte(`{"username": "adminuser", "password": "Test_1234!"}`)))
	assert.NoError(t, err)
	status, _, _ = readResponse(t, res)
	assert.Equal(t, http.StatusOK, status)

	// the stale cookie is still not a session: admin routes reject it
	res, err = ts.Client().Do(withStaleCookie(http.MethodGet, "/v1/admin/posts", nil))
	assert.NoError(t, err)
	status, _, _ = readResponse(t, res)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterUserHandlerValidation(t *testing.T) {
	app, _ := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	status, _, body := ts.post(t, "/v1/users/register", map[string]any{
		"username": "testuser",
		"email":    "not-an-email",
		"password": "Test_1234!",
	}, nil)

	assert.Equal(t, http.StatusUnprocessableEntity, status)
	assert.NotNil(t, body["error"])
}

func TestLoginUserHandlerInvalidCredentials(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	seedAdmin(t, app, db)

	status, _, _ := ts.post(t, "/v1/users/login", map[string]any{
		"username": "adminuser",
		"password": "Wrong_1234!",
	}, nil)

	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestPostLifecycle(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := seedAdmin(t, app, db)

	// anonymous clients cannot write
	status, _, _ := ts.post(t, "/v1/admin/posts", map[string]any{
		"title":   "Nope",
		"content": "nope",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	// create a draft
	status, _, body := ts.post(t, "/v1/admin/posts", map[string]any{
		"title":   "Hello World!",
		"content": "First post.",
		"excerpt": "hello",
	}, &token)
	assert.Equal(t, http.StatusCreated, status)

	post, ok := body["post"].(map[string]any)
	assert.True(t, ok)
	assert.Equal(t, "hello-world", post["slug"])
	assert.Equal(t, false, post["published"])
	assert.Nil(t, post["published_at"])

	id := int(post["id"].(float64))

	// drafts are invisible to the public surface
	status, _, body = ts.get(t, "/v1/posts", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, body["posts"])

	status, _, _ = ts.get(t, "/v1/posts/hello-world", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// a slug that could never be stored is just another miss
	status, _, _ = ts.get(t, "/v1/posts/Hello", nil)
	assert.Equal(t, http.StatusNotFound, status)

	// but the admin surface sees them
	status, _, _ = ts.get(t, fmt.Sprintf("/v1/admin/posts/%d", id), &token)
	assert.Equal(t, http.StatusOK, status)

	// publish
	status, _, body = ts.put(t, fmt.Sprintf("/v1/admin/posts/%d", id), &token, map[string]any{
		"title":     "Hello World!",
		"slug":      "hello-world",
		"content":   "First post, now live.",
		"excerpt":   "hello",
		"published": true,
	})
	assert.Equal(t, http.StatusOK, status)

	post = body["post"].(map[string]any)
	assert.Equal(t, true, post["published"])
	assert.NotNil(t, post["published_at"])
	publishedAt := post["published_at"]

	// visible to the public now
	status, _, body = ts.get(t, "/v1/posts/hello-world", nil)
	assert.Equal(t, http.StatusOK, status)
	publicPost := body["post"].(map[string]any)
	assert.Equal(t, "Hello World!", publicPost["title"])

	status, _, body = ts.get(t, "/v1/posts", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, body["posts"], 1)

	// a second update does not move the publish time
	status, _, body = ts.put(t, fmt.Sprintf("/v1/admin/posts/%d", id), &token, map[string]any{
		"title":     "Hello World!",
		"slug":      "hello-world",
		"content":   "Edited.",
		"excerpt":   "hello",
		"published": true,
	})
	assert.Equal(t, http.StatusOK, status)
	post = body["post"].(map[string]any)
	assert.Equal(t, publishedAt, post["published_at"])

	// updating an unknown post is a 404
	status, _, _ = ts.put(t, "/v1/admin/posts/999999", &token, map[string]any{
		"title":   "Ghost",
		"slug":    "ghost",
		"content": "boo",
	})
	assert.Equal(t, http.StatusNotFound, status)

	// delete is idempotent
	status, _, _ = ts.delete(t, fmt.Sprintf("/v1/admin/posts/%d", id), &token)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.delete(t, fmt.Sprintf("/v1/admin/posts/%d", id), &token)
	assert.Equal(t, http.StatusOK, status)

	status, _, _ = ts.get(t, fmt.Sprintf("/v1/admin/posts/%d", id), &token)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCreatePostHandlerValidation(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := seedAdmin(t, app, db)

	tests := []struct {
		name       string
		payload    any
		wantStatus int
	}{
		{
			name:       "Missing Title",
			payload:    map[string]any{"content": "body"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "Missing Content",
			payload:    map[string]any{"title": "A Title"},
			wantStatus: http.StatusUnprocessableEntity,
		},
		{
			name:       "Unknown Field",
			payload:    map[string]any{"title": "A Title", "content": "body", "bogus": true},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "Valid Draft",
			payload:    map[string]any{"title": "A Title", "content": "body"},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "Duplicate Slug",
			payload:    map[string]any{"title": "A Title", "content": "body"},
			wantStatus: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _, _ := ts.post(t, "/v1/admin/posts", tt.payload, &token)
			assert.Equal(t, tt.wantStatus, status)
		})
	}
}

func TestUploadMediaHandler(t *testing.T) {
	app, db := newTestApplication(t)

	ts := newTestServer(t, app.routes())

	token := seedAdmin(t, app, db)

	upload := func(t *testing.T, fieldName, filename string, withToken bool) (int, envelope) {
		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)

		part, err := writer.CreateFormFile(fieldName, filename)
		assert.NoError(t, err)
		_, err = part.Write([]byte("fake image bytes"))
		assert.NoError(t, err)
		assert.NoError(t, writer.Close())

		req, err := http.NewRequest(http.MethodPost, ts.URL+"/v1/admin/media", &buf)
		assert.NoError(t, err)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		if withToken {
			req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
		}

		res, err := ts.Client().Do(req)
		assert.NoError(t, err)

		status, _, body := readResponse(t, res)
		return status, body
	}

	t.Run("Valid Upload", func(t *testing.T) {
		status, body := upload(t, "file", "photo.JPG", true)
		assert.Equal(t, http.StatusOK, status)

		url, ok := body["url"].(string)
		assert.True(t, ok)
		assert.True(t, strings.HasPrefix(url, "https://media.test/posts/"))
		assert.True(t, strings.HasSuffix(url, ".jpg"))
	})

	t.Run("Missing File Field", func(t *testing.T) {
		status, _ := upload(t, "attachment", "photo.jpg", true)
		assert.Equal(t, http.StatusBadRequest, status)
	})

	t.Run("Anonymous", func(t *testing.T) {
		status, _ := upload(t, "file", "photo.jpg", false)
		assert.Equal(t, http.StatusUnauthorized, status)
	})
}
