package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HadarPadael/facyBook-Server/config"
	"github.com/HadarPadael/facyBook-Server/middleware"
	"github.com/HadarPadael/facyBook-Server/models"
	"github.com/HadarPadael/facyBook-Server/routes"
	"github.com/HadarPadael/facyBook-Server/services"
)

type testServer struct {
	router *mux.Router
	store  *services.MemStore
	tokens *services.TokenService
	users  *services.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	store := services.NewMemStore()
	users := &services.UserService{Store: store}
	posts := &services.PostService{Store: store}
	tokens := services.NewTokenService(config.JWTConfig{
		Secret:     "test-secret",
		ExpireTime: time.Hour,
		Issuer:     "facybook-test",
	}, store)

	r := mux.NewRouter()
	auth := middleware.RequireAuth(tokens)
	routes.RegisterUserRoutes(r, users, auth)
	routes.RegisterPostRoutes(r, posts, auth)
	routes.RegisterTokenRoutes(r, users, tokens)

	return &testServer{router: r, store: store, tokens: tokens, users: users}
}

func (ts *testServer) seedUser(t *testing.T, nickname string) {
	t.Helper()
	_, err := ts.users.CreateUser(context.Background(), nickname, nickname+"@mail.com", "pw-"+nickname, "")
	require.NoError(t, err)
}

func (ts *testServer) tokenFor(t *testing.T, nickname string) string {
	t.Helper()
	token, err := ts.tokens.Issue(context.Background(), nickname)
	require.NoError(t, err)
	return token
}

func (ts *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestCreateUserEndpoint(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"nickname": "alice",
		"username": "alice@mail.com",
		"password": "s3cret",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.NotContains(t, rec.Body.String(), "s3cret", "credentials never leave the server")

	// Duplicate username conflicts.
	rec = ts.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"nickname": "alice2",
		"username": "alice@mail.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Missing fields are a bad request.
	rec = ts.do(t, http.MethodPost, "/api/users", "", map[string]string{"nickname": "x"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetUserDetailsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	rec := ts.do(t, http.MethodGet, "/api/users/alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var user models.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &user))
	assert.Equal(t, "alice", user.Nickname)

	rec = ts.do(t, http.MethodGet, "/api/users/nobody", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoginEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	rec := ts.do(t, http.MethodPost, "/api/tokens", "", map[string]string{
		"username": "alice@mail.com",
		"password": "pw-alice",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string      `json:"token"`
		User  models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "alice", resp.User.Nickname)

	// Wrong password and unknown username read the same.
	rec = ts.do(t, http.MethodPost, "/api/tokens", "", map[string]string{
		"username": "alice@mail.com",
		"password": "wrong",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/tokens", "", map[string]string{
		"username": "nobody@mail.com",
		"password": "pw",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	ts := newTestServer(t)

	for _, probe := range []struct{ method, path string }{
		{http.MethodGet, "/api/posts"},
		{http.MethodPost, "/api/users/alice/friends"},
		{http.MethodPatch, "/api/users/alice/friends/bob"},
		{http.MethodPost, "/api/users/alice/posts"},
	} {
		rec := ts.do(t, probe.method, probe.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, "%s %s", probe.method, probe.path)
	}
}

func TestAcceptFriendshipOnlyByReceiver(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")
	ts.seedUser(t, "carol")

	rec := ts.do(t, http.MethodPost, "/api/users/bob/friends", ts.tokenFor(t, "alice"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// A third party cannot accept on the receiver's behalf.
	rec = ts.do(t, http.MethodPatch, "/api/users/bob/friends/alice", ts.tokenFor(t, "carol"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The receiver can.
	rec = ts.do(t, http.MethodPatch, "/api/users/bob/friends/alice", ts.tokenFor(t, "bob"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	friends, err := ts.users.AreFriends(context.Background(), "alice", "bob")
	require.NoError(t, err)
	assert.True(t, friends)
}

func TestDenyRouteIsNotShadowedByAccept(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")

	rec := ts.do(t, http.MethodPost, "/api/users/bob/friends", ts.tokenFor(t, "alice"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// PATCH .../friends/deny must hit the deny handler, not accept with
	// fid == "deny".
	rec = ts.do(t, http.MethodPatch, "/api/users/alice/friends/deny", ts.tokenFor(t, "bob"), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "denied")

	bob, err := ts.users.GetUserDetails(context.Background(), "bob")
	require.NoError(t, err)
	assert.False(t, bob.HasRequestFrom("alice"))
}

func TestCreatePostOwnershipEnforced(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")

	rec := ts.do(t, http.MethodPost, "/api/users/alice/posts", ts.tokenFor(t, "bob"), map[string]string{"content": "hijack"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodPost, "/api/users/alice/posts", ts.tokenFor(t, "alice"), map[string]string{"content": "hello"})
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestDeleteFriendOwnershipEnforced(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")

	rec := ts.do(t, http.MethodDelete, "/api/users/alice/friends/bob", ts.tokenFor(t, "bob"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGetFriendsVisibility(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "carol")

	// A stranger may not list someone else's friends.
	rec := ts.do(t, http.MethodGet, "/api/users/alice/friends", ts.tokenFor(t, "carol"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// The owner always may.
	rec = ts.do(t, http.MethodGet, "/api/users/alice/friends", ts.tokenFor(t, "alice"), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetFriendPostsDegradesToEmpty(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")

	rec := ts.do(t, http.MethodPost, "/api/users/bob/posts", ts.tokenFor(t, "bob"), map[string]string{"content": "secret"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/users/bob/posts", ts.tokenFor(t, "alice"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var posts []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &posts))
	assert.Empty(t, posts, "not friends: empty list, not an error")
}

func TestDeletePostOnlyByPublisher(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")

	rec := ts.do(t, http.MethodPost, "/api/users/alice/posts", ts.tokenFor(t, "alice"), map[string]string{"content": "mine"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	rec = ts.do(t, http.MethodDelete, "/api/users/alice/posts/"+post.PostID, ts.tokenFor(t, "bob"), nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/users/alice/posts/"+post.PostID, ts.tokenFor(t, "alice"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(t, http.MethodDelete, "/api/users/alice/posts/"+post.PostID, ts.tokenFor(t, "alice"), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeedEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")
	ts.seedUser(t, "carol")

	rec := ts.do(t, http.MethodPost, "/api/users/alice/posts", ts.tokenFor(t, "alice"), map[string]string{"content": "first"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = ts.do(t, http.MethodPost, "/api/users/bob/posts", ts.tokenFor(t, "bob"), map[string]string{"content": "second"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = ts.do(t, http.MethodGet, "/api/posts", ts.tokenFor(t, "carol"), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var feed []models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &feed))
	assert.Len(t, feed, 2)
}

func TestCommentEndpoints(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")
	ts.seedUser(t, "bob")

	rec := ts.do(t, http.MethodPost, "/api/users/alice/posts", ts.tokenFor(t, "alice"), map[string]string{"content": "post"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	rec = ts.do(t, http.MethodPost, "/api/users/alice/posts/"+post.PostID+"/comments", ts.tokenFor(t, "bob"), map[string]string{"content": "nice"})
	require.Equal(t, http.StatusCreated, rec.Code)

	var comment models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comment))
	assert.Equal(t, "bob", comment.Nickname, "comments are attributed to the caller")

	// Reading the thread is public.
	rec = ts.do(t, http.MethodGet, "/api/users/alice/posts/"+post.PostID+"/comments", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var thread []models.Comment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &thread))
	require.Len(t, thread, 1)
	assert.Equal(t, "nice", thread[0].Content)
}

func TestUpdateLikesEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.seedUser(t, "alice")

	rec := ts.do(t, http.MethodPost, "/api/users/alice/posts", ts.tokenFor(t, "alice"), map[string]string{"content": "likeable"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &post))

	rec = ts.do(t, http.MethodPatch, "/api/users/alice/posts/"+post.PostID+"/likes", ts.tokenFor(t, "alice"), map[string][]string{"likes": {"bob", "carol"}})
	require.Equal(t, http.StatusOK, rec.Code)

	var updated models.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.ElementsMatch(t, []string{"bob", "carol"}, updated.Likes)

	rec = ts.do(t, http.MethodPatch, "/api/users/alice/posts/missing/likes", ts.tokenFor(t, "alice"), map[string][]string{"likes": {}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
