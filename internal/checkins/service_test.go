package checkins_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/checkins"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

func ctxWith(p *authz.Principal) context.Context {
	sess := &session.Session{}
	sess.SetPrincipal(p)
	return session.ContextWithSession(context.Background(), sess)
}

func newService() *checkins.Service {
	return checkins.NewService(checkins.NewMemoryRepository(checkins.DemoRows()), nil, nil)
}

func TestListScopedByClass(t *testing.T) {
	svc := newService()

	internal := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermViewAllCheckIns}}
	all, err := svc.List(ctxWith(internal))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	agency := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1}
	byAgency, err := svc.List(ctxWith(agency))
	require.NoError(t, err)
	require.Len(t, byAgency, 2)
	for _, c := range byAgency {
		assert.Equal(t, int64(1), c.AgencyID)
	}

	// VA 1 shares agency 1 with VA 3: only its own check-in comes back.
	va := &authz.Principal{ID: 20, Class: authz.ClassVA, AgencyID: 1, VirtualAssistantID: 1, Permissions: []authz.Permission{authz.PermViewOwnCheckIns}}
	own, err := svc.List(ctxWith(va))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, int64(1), own[0].VirtualAssistantID)
}

func TestGetOutsideScopeReadsAsAbsent(t *testing.T) {
	svc := newService()
	va := &authz.Principal{ID: 20, Class: authz.ClassVA, AgencyID: 1, VirtualAssistantID: 1}

	_, err := svc.Get(ctxWith(va), 3)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	c, err := svc.Get(ctxWith(va), 1)
	require.NoError(t, err)
	assert.Equal(t, "submitted", c.Status)
}

func TestWritesRequireManagePermission(t *testing.T) {
	svc := newService()
	agency := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1, Permissions: []authz.Permission{authz.PermViewAllCheckIns}}

	_, err := svc.Create(ctxWith(agency), checkins.CreateCheckInInput{AgencyID: 1, VirtualAssistantID: 1})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	err = svc.Delete(ctxWith(agency), 1)
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestCreateDefaultsAndValidation(t *testing.T) {
	svc := newService()
	manager := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermManageCheckIns}}
	ctx := ctxWith(manager)

	created, err := svc.Create(ctx, checkins.CreateCheckInInput{AgencyID: 2, VirtualAssistantID: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "pending", created.Status)
	assert.False(t, created.WeekOf.IsZero())

	_, err = svc.Create(ctx, checkins.CreateCheckInInput{AgencyID: 2})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateStatus(t *testing.T) {
	svc := newService()
	manager := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermManageCheckIns}}

	status := "resolved"
	updated, err := svc.Update(ctxWith(manager), 2, checkins.UpdateCheckInInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "resolved", updated.Status)
	assert.Equal(t, "Client unresponsive this week.", updated.Notes)
}
