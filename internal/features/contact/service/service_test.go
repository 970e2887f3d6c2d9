package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-client/internal/features/contact/repository/remote"
	"messenger-client/internal/gatewaystub"
	"messenger-client/internal/platform/gateway"
)

type callCounter struct {
	mu    sync.Mutex
	calls map[string]int
}

func (c *callCounter) count(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls[key]
}

func newService(t *testing.T) (ContactService, *gatewaystub.Store, *callCounter) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := gatewaystub.NewStore()
	router := gatewaystub.NewRouter(store, "*")
	counter := &callCounter{calls: map[string]int{}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		counter.mu.Lock()
		counter.calls[r.Method+" "+r.URL.Path]++
		counter.mu.Unlock()
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := gateway.NewClient(gatewaystub.EndpointsFor(srv.URL), 5*time.Second)
	return NewContactService(remote.NewContactRepository(client)), store, counter
}

func TestSearchAndAddRoma(t *testing.T) {
	svc, store, counter := newService(t)
	ctx := context.Background()

	me, err := store.CreateUser("+70000000001", "pw", "me")
	require.NoError(t, err)
	_, err = store.CreateUser("+79022428092", "pw", "roma")
	require.NoError(t, err)

	candidate, err := svc.Search(ctx, "+79022428092")
	require.NoError(t, err)
	assert.Equal(t, "roma", candidate.Name)

	require.NoError(t, svc.Add(ctx, me.ID, candidate))
	assert.Equal(t, 1, counter.count("POST /contacts"))

	contacts, err := svc.List(ctx, me.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.Equal(t, candidate.ID, contacts[0].ID)
	assert.Equal(t, "No messages", contacts[0].Preview())
}

func TestSearchErrorTexts(t *testing.T) {
	svc, store, counter := newService(t)
	ctx := context.Background()

	_, err := svc.Search(ctx, "+70000009999")
	assert.Equal(t, MsgUserNotFound, SearchErrorText(err))

	// профиль не заполнен, поиск его не находит
	_, err = store.Register("+70000000003", "pw")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "+70000000003")
	assert.Equal(t, MsgUserNotFound, SearchErrorText(err))

	_, err = svc.Search(ctx, "   ")
	assert.ErrorIs(t, err, ErrEmptyPhone)
	assert.Equal(t, 2, counter.count("GET /users"))

	assert.Empty(t, SearchErrorText(nil))
}

func TestSearchTransportFailure(t *testing.T) {
	srv := httptest.NewServer(nil)
	base := srv.URL
	srv.Close()

	client := gateway.NewClient(gatewaystub.EndpointsFor(base), time.Second)
	svc := NewContactService(remote.NewContactRepository(client))

	_, err := svc.Search(context.Background(), "+79022428092")
	assert.Equal(t, MsgSearchFailed, SearchErrorText(err))
}

func TestAddRejectsMissingCandidate(t *testing.T) {
	svc, _, counter := newService(t)

	assert.ErrorIs(t, svc.Add(context.Background(), 1, nil), ErrNoCandidate)
	assert.ErrorIs(t, svc.Add(context.Background(), 0, nil), ErrInvalidOwner)
	assert.Zero(t, counter.count("POST /contacts"))
}

func TestAddUnknownContactFails(t *testing.T) {
	svc, store, _ := newService(t)
	me, err := store.CreateUser("+70000000001", "pw", "me")
	require.NoError(t, err)

	candidate, err := store.CreateUser("+70000000002", "pw", "ghost")
	require.NoError(t, err)
	candidate.ID = 999

	assert.Error(t, svc.Add(context.Background(), me.ID, &candidate))
}
