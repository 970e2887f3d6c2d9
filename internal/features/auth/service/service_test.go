package service

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"messenger-client/internal/common/validation"
	"messenger-client/internal/features/auth/repository/remote"
	"messenger-client/internal/features/user/models"
	"messenger-client/internal/gatewaystub"
	"messenger-client/internal/platform/gateway"
)

func newService(t *testing.T) (AuthService, *gatewaystub.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := gatewaystub.NewStore()
	srv := httptest.NewServer(gatewaystub.NewRouter(store, "*"))
	t.Cleanup(srv.Close)

	client := gateway.NewClient(gatewaystub.EndpointsFor(srv.URL), 5*time.Second)
	return NewAuthService(remote.NewAuthRepository(client)), store
}

type fakeRepo struct {
	calls      int
	completion models.ProfileCompletion
	update     models.ProfileUpdate
	user       models.User
}

func (f *fakeRepo) Login(ctx context.Context, creds models.Credentials) (*models.User, error) {
	f.calls++
	u := f.user
	return &u, nil
}

func (f *fakeRepo) Register(ctx context.Context, creds models.Credentials) (*models.User, error) {
	f.calls++
	u := f.user
	return &u, nil
}

func (f *fakeRepo) CompleteProfile(ctx context.Context, req models.ProfileCompletion) (*models.User, error) {
	f.calls++
	f.completion = req
	u := f.user
	return &u, nil
}

func (f *fakeRepo) UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.User, error) {
	f.calls++
	f.update = req
	return &models.User{ID: req.UserID, Phone: "+7", Name: req.Name, Bio: req.Bio}, nil
}

func TestLoginAgainstGateway(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	_, err := store.CreateUser("+79022428092", "secret", "roma")
	require.NoError(t, err)

	user, err := svc.Login(ctx, " +79022428092 ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "roma", user.Name)
	assert.True(t, user.IsProfileCompleted)

	_, err = svc.Login(ctx, "+79022428092", "wrong")
	require.Error(t, err)
	assert.Equal(t, gatewaystub.MsgInvalidCredentials, ErrorText(err, MsgAuthFailed))
}

func TestBlockedUserGetsServerMessage(t *testing.T) {
	svc, store := newService(t)
	u, err := store.CreateUser("+70000000002", "pw", "blocked")
	require.NoError(t, err)
	_, err = store.SetBlocked(u.ID, true)
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "+70000000002", "pw")
	assert.Equal(t, gatewaystub.MsgUserBlocked, ErrorText(err, MsgAuthFailed))
}

func TestLoginRequiresBothFields(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAuthService(repo)

	_, err := svc.Login(context.Background(), "", "pw")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	_, err = svc.Login(context.Background(), "+7", "")
	assert.ErrorIs(t, err, ErrMissingCredentials)
	assert.Zero(t, repo.calls)
	assert.Equal(t, ErrMissingCredentials.Error(), ErrorText(err, MsgAuthFailed))
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(nil)
	base := srv.URL
	srv.Close()

	client := gateway.NewClient(gatewaystub.EndpointsFor(base), time.Second)
	svc := NewAuthService(remote.NewAuthRepository(client))

	_, err := svc.Login(context.Background(), "+7", "pw")
	assert.Equal(t, MsgServerUnreachable, ErrorText(err, MsgAuthFailed))
}

func TestRegisterThenCompleteProfile(t *testing.T) {
	svc, store := newService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "+70000000005", "pw")
	require.NoError(t, err)
	assert.False(t, user.IsProfileCompleted)

	_, err = svc.CompleteProfile(ctx, user, "   ", "", "", "")
	assert.ErrorIs(t, err, ErrNameRequired)

	completed, err := svc.CompleteProfile(ctx, user, "kate", "hello", "", "")
	require.NoError(t, err)
	assert.True(t, completed.IsProfileCompleted)
	assert.Equal(t, "kate", completed.Name)

	found, err := store.Search("+70000000005")
	require.NoError(t, err)
	assert.Equal(t, "hello", found.Bio)
}

func TestCompleteProfileDefaultsPhoneContact(t *testing.T) {
	repo := &fakeRepo{user: models.User{ID: 4, Phone: "+74", IsProfileCompleted: true}}
	svc := NewAuthService(repo)

	_, err := svc.CompleteProfile(context.Background(), &models.User{ID: 4, Phone: "+74"}, "dan", "", "", "")
	require.NoError(t, err)
	assert.Equal(t, "+74", repo.completion.PhoneContact)
	assert.Equal(t, int64(4), repo.completion.UserID)

	_, err = svc.CompleteProfile(context.Background(), &models.User{ID: 4, Phone: "+74"}, "dan", "", "+75", "")
	require.NoError(t, err)
	assert.Equal(t, "+75", repo.completion.PhoneContact)
}

func TestUpdateProfileKeepsSessionFlags(t *testing.T) {
	repo := &fakeRepo{}
	svc := NewAuthService(repo)
	current := &models.User{ID: 1, Phone: "+7", IsAdmin: true, IsProfileCompleted: true}

	updated, err := svc.UpdateProfile(context.Background(), current, " boss ", "bio", "")
	require.NoError(t, err)
	assert.Equal(t, "boss", repo.update.Name)
	assert.True(t, updated.IsAdmin)
	assert.True(t, updated.IsProfileCompleted)
	assert.Equal(t, "bio", updated.Bio)

	_, err = svc.UpdateProfile(context.Background(), nil, "", "", "")
	assert.ErrorIs(t, err, ErrNoUser)
}

func TestRegisterRejectsOverlongPassword(t *testing.T) {
	repo := &fakeRepo{user: models.User{ID: 1, Phone: "+70000000005"}}
	svc := NewAuthService(repo)

	_, err := svc.Register(context.Background(), "+70000000005", strings.Repeat("x", validation.MaxPasswordLen+1))
	assert.Error(t, err)
	assert.Zero(t, repo.calls)

	_, err = svc.Register(context.Background(), "+70000000005", strings.Repeat("x", validation.MaxPasswordLen))
	assert.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
}
