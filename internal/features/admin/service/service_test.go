package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-client/internal/common/validation"
	"messenger-client/internal/features/admin/repository/remote"
	"messenger-client/internal/gatewaystub"
	"messenger-client/internal/platform/gateway"
)

func newService(t *testing.T) (AdminService, *gatewaystub.Store, *atomic.Int32) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := gatewaystub.NewStore()
	router := gatewaystub.NewRouter(store, "*")
	var puts atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPut {
			puts.Add(1)
		}
		router.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)

	client := gateway.NewClient(gatewaystub.EndpointsFor(srv.URL), 5*time.Second)
	return NewAdminService(remote.NewUserAdminRepository(client)), store, &puts
}

func TestCreateAndList(t *testing.T) {
	svc, store, _ := newService(t)
	ctx := context.Background()

	_, err := store.SeedAdmin("+70000000000", "admin", "root")
	require.NoError(t, err)

	created, err := svc.CreateUser(ctx, "+79022428092", "pw", "roma")
	require.NoError(t, err)
	assert.Equal(t, "roma", created.Name)

	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, created.ID, users[0].ID, "newest first")
	assert.True(t, users[1].IsAdmin)
	assert.NotNil(t, users[0].CreatedAt)

	_, err = svc.CreateUser(ctx, "", "pw", "x")
	assert.ErrorIs(t, err, ErrIncompleteForm)
	_, err = svc.CreateUser(ctx, "+79022428092", "pw", "dup")
	assert.Error(t, err)
}

func TestToggleBlock(t *testing.T) {
	svc, store, puts := newService(t)
	ctx := context.Background()

	target, err := store.CreateUser("+79022428092", "pw", "roma")
	require.NoError(t, err)

	require.NoError(t, svc.ToggleBlock(ctx, &target))
	users, err := svc.ListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.True(t, users[0].IsBlocked)

	require.NoError(t, svc.ToggleBlock(ctx, &users[0]))
	users, err = svc.ListUsers(ctx)
	require.NoError(t, err)
	assert.False(t, users[0].IsBlocked)
	assert.Equal(t, int32(2), puts.Load())
}

func TestAdminsCannotBeBlocked(t *testing.T) {
	svc, store, puts := newService(t)
	admin, err := store.SeedAdmin("+70000000000", "admin", "root")
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ToggleBlock(context.Background(), &admin), ErrAdminImmune)
	assert.ErrorIs(t, svc.ToggleBlock(context.Background(), nil), ErrNoTarget)
	assert.Zero(t, puts.Load())
}

func TestCreateUserRejectsOverlongPassword(t *testing.T) {
	svc, store, _ := newService(t)

	_, err := svc.CreateUser(context.Background(), "+79022428092", strings.Repeat("x", validation.MaxPasswordLen+1), "roma")
	assert.Error(t, err)
	assert.Empty(t, store.AllUsers())
}
