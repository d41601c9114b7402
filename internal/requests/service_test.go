package requests_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/requests"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

func ctxWith(p *authz.Principal) context.Context {
	sess := &session.Session{}
	sess.SetPrincipal(p)
	return session.ContextWithSession(context.Background(), sess)
}

func newService() *requests.Service {
	return requests.NewService(requests.NewMemoryRepository(requests.DemoRows()), nil, nil)
}

func TestListScopedByClass(t *testing.T) {
	svc := newService()

	internal := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermViewVARequests}}
	all, err := svc.List(ctxWith(internal))
	require.NoError(t, err)
	assert.Len(t, all, 2)

	agency := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 2, Permissions: []authz.Permission{authz.PermViewVARequests}}
	own, err := svc.List(ctxWith(agency))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Video Editor", own[0].RoleTitle)

	// The request pipeline is not a VA surface, even for their own agency.
	va := &authz.Principal{ID: 20, Class: authz.ClassVA, AgencyID: 1, VirtualAssistantID: 1}
	none, err := svc.List(ctxWith(va))
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetOutsideScopeReadsAsAbsent(t *testing.T) {
	svc := newService()
	agency := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1}

	_, err := svc.Get(ctxWith(agency), 2)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}

func TestAgencyCreatesForOwnAgencyOnly(t *testing.T) {
	svc := newService()
	agency := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1, Permissions: []authz.Permission{authz.PermViewVARequests}}

	created, err := svc.Create(ctxWith(agency), requests.CreateRequestInput{AgencyID: 1, RoleTitle: "SEO Specialist"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), created.ID)
	assert.Equal(t, "open", created.Status)

	_, err = svc.Create(ctxWith(agency), requests.CreateRequestInput{AgencyID: 2, RoleTitle: "SEO Specialist"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestLifecycleUpdatesRequireManagePermission(t *testing.T) {
	svc := newService()
	agency := &authz.Principal{ID: 10, Class: authz.ClassAgency, AgencyID: 1, Permissions: []authz.Permission{authz.PermViewVARequests}}
	staff := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermManageVARequests}}

	status := "placed"
	_, err := svc.Update(ctxWith(agency), 1, requests.UpdateRequestInput{Status: &status})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	updated, err := svc.Update(ctxWith(staff), 1, requests.UpdateRequestInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "placed", updated.Status)

	require.NoError(t, svc.Delete(ctxWith(staff), 2))
	err = svc.Delete(ctxWith(agency), 1)
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestCreateValidation(t *testing.T) {
	svc := newService()
	staff := &authz.Principal{ID: 1, Class: authz.ClassInternal, Permissions: []authz.Permission{authz.PermManageVARequests}}

	_, err := svc.Create(ctxWith(staff), requests.CreateRequestInput{AgencyID: 1, RoleTitle: "   "})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}
