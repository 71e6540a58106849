package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Query  string
	Auth   string
	Body   string
}

// fakeAPI answers each "METHOD /path" with a canned status and body and
// records every request it sees.
type fakeAPI struct {
	t        *testing.T
	mu       sync.Mutex
	requests []recordedRequest
	routes   map[string]func(w http.ResponseWriter, r *http.Request)
}

func newFakeAPI(t *testing.T) (*fakeAPI, *httptest.Server) {
	api := &fakeAPI{t: t, routes: map[string]func(http.ResponseWriter, *http.Request){}}
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	return api, srv
}

func (f *fakeAPI) handle(route string, status int, body string) {
	f.routes[route] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery,
		Auth: r.Header.Get("Authorization"), Body: string(raw),
	})
	f.mu.Unlock()

	if h, ok := f.routes[r.Method+" "+r.URL.Path]; ok {
		h(w, r)
		return
	}
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, `{"success":false,"error":{"code":"RES_001","message":"Resource not found"}}`)
}

func (f *fakeAPI) calls() []recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]recordedRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

func TestBearerHeader(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /auth/me", http.StatusOK, `{"user":{"id":7,"email":"a@b.co","role":"student","full_name":"A B"}}`)

	store := NewMemoryStore()
	c := New(srv.URL+"/", WithTokenStore(store))

	_, err := c.Me(context.Background())
	require.NoError(t, err)

	require.NoError(t, store.Set(TokenKey, "abc"))
	me, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), me.ID)

	calls := api.calls()
	require.Len(t, calls, 2)
	assert.Empty(t, calls[0].Auth)
	assert.Equal(t, "Bearer abc", calls[1].Auth)
	assert.Equal(t, "/auth/me", calls[1].Path)
}

func TestAPIErrorDecoding(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /clubs/5/follow", http.StatusBadRequest,
		`{"success":false,"error":{"code":"BAD_REQUEST","message":"Zaten bu kulübü takip ediyorsunuz"},"timestamp":"2025-01-01T00:00:00Z"}`)
	api.handle("GET /weather", http.StatusBadGateway, `<html>bad gateway</html>`)

	c := New(srv.URL)

	_, err := c.FollowClub(context.Background(), 5)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "BAD_REQUEST", apiErr.Code)
	assert.Equal(t, "Zaten bu kulübü takip ediyorsunuz", ErrorMessage(err, "Hata"))

	_, err = c.Weather(context.Background(), "")
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, "Hava durumu alınamadı", ErrorMessage(err, "Hava durumu alınamadı"))
	assert.True(t, IsStatus(err, http.StatusBadGateway))
}

func TestErrorMessage_TransportError(t *testing.T) {
	assert.Equal(t, "fallback", ErrorMessage(errors.New("dial tcp: refused"), "fallback"))
	assert.Equal(t, "fallback", ErrorMessage(nil, "fallback"))
}

func TestCreateClub_SinglePost(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /clubs", http.StatusCreated,
		`{"message":"Başvuru alındı","club":{"id":12,"name":"AI Club","status":"pending"}}`)

	c := New(srv.URL)
	club, err := c.CreateClub(context.Background(), CreateClubRequest{Name: "AI Club"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), club.ID)

	calls := api.calls()
	require.Len(t, calls, 1)
	assert.Equal(t, http.MethodPost, calls[0].Method)
	assert.Equal(t, "/clubs", calls[0].Path)

	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(calls[0].Body), &sent))
	assert.Equal(t, "AI Club", sent["name"])
}

func TestCreateClub_ErrorMessage(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /clubs", http.StatusConflict,
		`{"success":false,"error":{"code":"RES_004","message":"A club with this name already exists"}}`)

	c := New(srv.URL)
	_, err := c.CreateClub(context.Background(), CreateClubRequest{Name: "AI Club"})
	require.Error(t, err)
	assert.Equal(t, "A club with this name already exists", ErrorMessage(err, "Başvuru gönderilemedi"))

	api.handle("POST /clubs", http.StatusInternalServerError, `{}`)
	_, err = c.CreateClub(context.Background(), CreateClubRequest{Name: "AI Club"})
	assert.Equal(t, "Başvuru gönderilemedi", ErrorMessage(err, "Başvuru gönderilemedi"))
}

func TestToggleFollow(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("POST /clubs/3/follow", http.StatusOK, `{"message":"Followed"}`)
	api.handle("POST /clubs/3/leave", http.StatusOK, `{"message":"Left"}`)

	c := New(srv.URL)
	card := &ClubCard{ClubListItem: ClubListItem{ID: 3, Name: "Chess"}}

	msg, err := c.ToggleFollow(context.Background(), card)
	require.NoError(t, err)
	assert.Equal(t, "Followed", msg)
	assert.True(t, card.IsFollowing)

	_, err = c.ToggleFollow(context.Background(), card)
	require.NoError(t, err)
	assert.False(t, card.IsFollowing)

	calls := api.calls()
	require.Len(t, calls, 2)
	assert.Equal(t, "/clubs/3/follow", calls[0].Path)
	assert.Equal(t, "/clubs/3/leave", calls[1].Path)
}

func TestToggleFollow_FailureKeepsState(t *testing.T) {
	_, srv := newFakeAPI(t)
	c := New(srv.URL)
	card := &ClubCard{ClubListItem: ClubListItem{ID: 9}}

	_, err := c.ToggleFollow(context.Background(), card)
	require.Error(t, err)
	assert.False(t, card.IsFollowing)
}

func TestEventsQuery(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("GET /events", http.StatusOK,
		`{"events":[{"id":1,"title":"Go"}],"pagination":{"total":1,"page":2,"limit":20,"total_pages":1,"has_more":false}}`)

	c := New(srv.URL)
	list, err := c.Events(context.Background(), EventQuery{Search: "go", Date: "2025-05-01", Page: 2})
	require.NoError(t, err)
	require.Len(t, list.Events, 1)
	assert.True(t, PagerFrom(list.Pagination).NextDisabled())

	calls := api.calls()
	assert.Equal(t, "date=2025-05-01&page=2&search=go", calls[0].Query)
}

func TestEventCalendar(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.routes["GET /events/4/calendar.ics"] = func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/calendar")
		_, _ = io.WriteString(w, "BEGIN:VCALENDAR\r\nEND:VCALENDAR\r\n")
	}

	ics, err := New(srv.URL).EventCalendar(context.Background(), 4)
	require.NoError(t, err)
	assert.Contains(t, string(ics), "BEGIN:VCALENDAR")
}

func TestAdminCalls(t *testing.T) {
	api, srv := newFakeAPI(t)
	api.handle("PUT /admin/users/8/role", http.StatusOK, `{"message":"Rol güncellendi"}`)
	api.handle("POST /admin/users/8/ban", http.StatusOK, `{"message":"ok","is_banned":true}`)
	api.handle("POST /admin/announce", http.StatusOK, `{"message":"ok","recipients":42}`)

	c := New(srv.URL)
	clubID := int64(3)
	msg, err := c.SetRole(context.Background(), 8, RoleClubAdmin, &clubID)
	require.NoError(t, err)
	assert.Equal(t, "Rol güncellendi", msg)

	banned, err := c.ToggleBan(context.Background(), 8)
	require.NoError(t, err)
	assert.True(t, banned)

	n, err := c.Announce(context.Background(), "Bahar şenliği")
	require.NoError(t, err)
	assert.Equal(t, int64(42), n)

	assert.JSONEq(t, `{"role":"club_admin","club_id":3}`, api.calls()[0].Body)
}
