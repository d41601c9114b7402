package agencies_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talentfuze/portal/internal/agencies"
	"github.com/talentfuze/portal/internal/authz"
	"github.com/talentfuze/portal/internal/session"
	"github.com/talentfuze/portal/internal/shared"
)

func ctxWith(p *authz.Principal) context.Context {
	sess := &session.Session{}
	sess.SetPrincipal(p)
	return session.ContextWithSession(context.Background(), sess)
}

func newService() *agencies.Service {
	repo := agencies.NewMemoryRepository(agencies.DemoRows())
	return agencies.NewService(repo, nil, nil)
}

func internalPrincipal() *authz.Principal {
	return &authz.Principal{
		ID:    1,
		Class: authz.ClassInternal,
		Permissions: []authz.Permission{
			authz.PermViewAllAgencies,
			authz.PermManageAgencies,
		},
	}
}

func agencyPrincipal(agencyID int64) *authz.Principal {
	return &authz.Principal{
		ID:          10,
		Class:       authz.ClassAgency,
		AgencyID:    agencyID,
		Permissions: []authz.Permission{authz.PermViewOwnAgency},
	}
}

func TestListScopedByClass(t *testing.T) {
	svc := newService()

	all, err := svc.List(ctxWith(internalPrincipal()))
	require.NoError(t, err)
	assert.Len(t, all, 3)

	own, err := svc.List(ctxWith(agencyPrincipal(2)))
	require.NoError(t, err)
	require.Len(t, own, 1)
	assert.Equal(t, "Northwind Media", own[0].Name)

	va := &authz.Principal{ID: 20, Class: authz.ClassVA, AgencyID: 1, VirtualAssistantID: 1}
	viaVA, err := svc.List(ctxWith(va))
	require.NoError(t, err)
	require.Len(t, viaVA, 1)
	assert.Equal(t, int64(1), viaVA[0].ID)
}

func TestListWithoutPrincipalIsEmpty(t *testing.T) {
	svc := newService()
	out, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestGetOutsideScopeReadsAsAbsent(t *testing.T) {
	svc := newService()

	_, err := svc.Get(ctxWith(agencyPrincipal(1)), 2)
	assert.True(t, errors.Is(err, shared.ErrNotFound))

	agency, err := svc.Get(ctxWith(agencyPrincipal(1)), 1)
	require.NoError(t, err)
	assert.Equal(t, "Scale Digital", agency.Name)
}

func TestWritesRequireManagePermission(t *testing.T) {
	svc := newService()

	_, err := svc.Create(ctxWith(agencyPrincipal(1)), agencies.CreateAgencyInput{Name: "New Agency"})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	_, err = svc.Update(ctxWith(agencyPrincipal(1)), 1, agencies.UpdateAgencyInput{})
	assert.True(t, errors.Is(err, shared.ErrForbidden))

	err = svc.Delete(ctxWith(agencyPrincipal(1)), 1)
	assert.True(t, errors.Is(err, shared.ErrForbidden))
}

func TestCreateAssignsNextID(t *testing.T) {
	svc := newService()
	ctx := ctxWith(internalPrincipal())

	created, err := svc.Create(ctx, agencies.CreateAgencyInput{Name: "  Apex Talent  "})
	require.NoError(t, err)
	assert.Equal(t, int64(4), created.ID)
	assert.Equal(t, "Apex Talent", created.Name)
	assert.Equal(t, "active", created.Status)

	_, err = svc.Create(ctx, agencies.CreateAgencyInput{Name: "   "})
	assert.True(t, errors.Is(err, shared.ErrValidation))
}

func TestUpdateMergesPartialInput(t *testing.T) {
	svc := newService()
	ctx := ctxWith(internalPrincipal())

	status := "churned"
	updated, err := svc.Update(ctx, 3, agencies.UpdateAgencyInput{Status: &status})
	require.NoError(t, err)
	assert.Equal(t, "Brightside Commerce", updated.Name)
	assert.Equal(t, "churned", updated.Status)
}

func TestDeleteRemovesAgency(t *testing.T) {
	svc := newService()
	ctx := ctxWith(internalPrincipal())

	require.NoError(t, svc.Delete(ctx, 3))
	_, err := svc.Get(ctx, 3)
	assert.True(t, errors.Is(err, shared.ErrNotFound))
}
