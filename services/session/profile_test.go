package session

import (
	"context"
	"testing"
	"time"

	"servicehub/models"
	"servicehub/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberSincePrefersBackendDate(t *testing.T) {
	svc, store := newService(t, newBackendStub())
	svc.session = &models.Session{User: &models.User{Joined: "2024-03-02"}, Token: "t"}
	ctx := context.Background()

	assert.Equal(t, "2024-03-02", svc.MemberSince(ctx))

	_, err := store.Get(ctx, storage.KeyMemberSince)
	assert.ErrorIs(t, err, storage.ErrNotFound, "backend date never mints a local one")
}

func TestMemberSinceMintsStickyDate(t *testing.T) {
	svc, store := newService(t, newBackendStub())
	ctx := context.Background()

	first := svc.MemberSince(ctx)
	assert.Equal(t, time.Now().Format("2006-01-02"), first)
	assert.Equal(t, first, svc.MemberSince(ctx))

	value, err := store.Get(ctx, storage.KeyMemberSince)
	require.NoError(t, err)
	assert.Equal(t, first, string(value))
}

func TestUpdateRoleSwitchesClientSide(t *testing.T) {
	svc, store := newService(t, newBackendStub())
	ctx := context.Background()
	svc.session = &models.Session{User: &models.User{ID: "u1", Role: models.RoleCustomer}, Token: "tok"}

	user, err := svc.UpdateRole(ctx, models.RoleProvider)
	require.NoError(t, err)
	assert.Equal(t, models.RoleProvider, user.Role)

	cached, err := store.Get(ctx, storage.KeyUser)
	require.NoError(t, err)
	assert.Contains(t, string(cached), models.RoleProvider)
}

func TestUpdateRoleRequiresSession(t *testing.T) {
	svc, _ := newService(t, newBackendStub())
	_, err := svc.UpdateRole(context.Background(), models.RoleProvider)
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestMemberSinceReadsExistingDate(t *testing.T) {
	svc, store := newService(t, newBackendStub())
	ctx := context.Background()
	require.NoError(t, store.Set(ctx, storage.KeyMemberSince, []byte("2023-11-20")))

	assert.Equal(t, "2023-11-20", svc.MemberSince(ctx))
}
