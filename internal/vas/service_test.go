package vas_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
	"github.com/talentfuze/portal/internal/vas"
)

func ctxWith(p *authz.Principal) context.Context {
	sess := &session.Session{}
	sess.SetPrincipal(p)
	return session.ContextWithSession(context.Background(), sess)
}

func newService() *vas.Service {
	return vas.NewService(vas.NewMemoryRepository(vas.DemoRows()), nil, nil)
}

func TestListInternalSeesAll(t *testing.T) {
	p := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermViewAllVAs}}
	out, err := newService().List(ctxWith(p))
	require.NoError(t, err)
	assert.Len(t, out, 3)
}

func TestListAgencySeesOwnRoster(t *testing.T) {
	p := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1, Permissions: []authz.Permission{authz.PermViewAssignedVAs}}
	out, err := newService().List(ctxWith(p))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, int64(1), out[0].ID)
	assert.Equal(t, int64(3), out[1].ID)
}

func TestListVASeesOnlyOwnRecord(t *testing.T) {
	// VA 1 and VA 3 share agency 1. The sibling must stay invisible.
	p := &authz.Principal{ID: 20, Class: authz.ClassVA, AgencyID: 1, VirtualAssistantID: 1, Permissions: []authz.Permission{authz.PermViewOwnProfile}}
	svc := newService()

	out, err := svc.List(ctxWith(p))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(1), out[0].ID)

	_, err = svc.Get(ctxWith(p), 3)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestGetOutsideAgencyReadsAsAbsent(t *testing.T) {
	p := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 2}
	svc := newService()

	_, err := svc.Get(ctxWith(p), 1)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	va, err := svc.Get(ctxWith(p), 2)
	require.NoError(t, err)
	assert.Equal(t, "Jose Ramirez", va.Name)
}

func TestWritesRequireManagePermission(t *testing.T) {
	p := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1, Permissions: []authz.Permission{authz.PermViewAssignedVAs}}
	svc := newService()

	_, err := svc.Create(ctxWith(p), vas.CreateVAInput{Name: "New VA", AgencyID: 1})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	err = svc.Delete(ctxWith(p), 1)
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestCreateAndUpdate(t *testing.T) {
	manager := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermManageVAs}}
	ctx := ctxWith(manager)
	svc := newService()

	created, err := svc.Create(ctx, vas.CreateVAInput{Name: "Ana Dela Cruz", AgencyID: 2, RoleTitle: "Designer"})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "active", created.Status)
	assert.False(t, created.StartDate.IsZero())

	_, err = svc.Create(ctx, vas.CreateVAInput{Name: "No Agency"})
	assert.True(t, errors.Is(err, shared.ErrValidation))

	status := "offboarded"
	updated, err := svc.Update(ctx, created.ID, vas.UpdateVAInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "offboarded", updated.Status)
	assert.Equal(t, "Ana Dela Cruz", updated.Name)
}
