package guard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var fullReq = Requirement{Auth: true, Tenant: true, House: true}

func TestEvaluate_UnauthenticatedRedirectsToLogin(t *testing.T) {
	d := Evaluate(Snapshot{}, fullReq, "/dashboard")

	assert.Equal(t, Redirect, d.Kind)
	assert.Equal(t, TargetLogin, d.Target)
	assert.Equal(t, "/dashboard", d.ReturnTo)
}

func TestEvaluate_LoginCheckRunsBeforeTenantCheck(t *testing.T) {
	// nothing at all is satisfied; the first check in the chain must win
	d := Evaluate(Snapshot{}, fullReq, "/documents")

	assert.Equal(t, Redirect, d.Kind)
	assert.Equal(t, TargetLogin, d.Target)
}

func TestEvaluate_NoTenantRedirectsToSelection(t *testing.T) {
	d := Evaluate(Snapshot{Authenticated: true}, fullReq, "/documents")

	assert.Equal(t, Redirect, d.Kind)
	assert.Equal(t, TargetSelectTenant, d.Target)
	assert.Equal(t, "/documents", d.ReturnTo)
}

func TestEvaluate_HouseLoadingShowsLoadingPlaceholder(t *testing.T) {
	snap := Snapshot{Authenticated: true, TenantActive: true, HouseLoading: true}

	d := Evaluate(snap, fullReq, "/documents")

	assert.Equal(t, Placeholder, d.Kind)
	assert.Equal(t, PlaceholderLoading, d.Placeholder)
}

func TestEvaluate_NoHousesShowsEmptyPlaceholder(t *testing.T) {
	snap := Snapshot{Authenticated: true, TenantActive: true}

	d := Evaluate(snap, fullReq, "/documents")

	assert.Equal(t, Placeholder, d.Kind)
	assert.Equal(t, PlaceholderNoHouses, d.Placeholder)
}

func TestEvaluate_NoSelectionShowsSelectPlaceholder(t *testing.T) {
	snap := Snapshot{Authenticated: true, TenantActive: true, HouseCount: 3}

	d := Evaluate(snap, fullReq, "/documents")

	assert.Equal(t, Placeholder, d.Kind)
	assert.Equal(t, PlaceholderSelectHouse, d.Placeholder)
}

func TestEvaluate_AllSatisfiedAllows(t *testing.T) {
	snap := Snapshot{Authenticated: true, TenantActive: true, HouseCount: 2, HouseActive: true}

	d := Evaluate(snap, fullReq, "/documents")

	assert.Equal(t, Allow, d.Kind)
}

func TestEvaluate_RequirementsNotAskedAreSkipped(t *testing.T) {
	// a public screen renders regardless of state
	d := Evaluate(Snapshot{}, Requirement{}, "/about")
	assert.Equal(t, Allow, d.Kind)

	// an auth-only screen ignores tenant and house state
	d = Evaluate(Snapshot{Authenticated: true}, Requirement{Auth: true}, "/profile")
	assert.Equal(t, Allow, d.Kind)
}

func TestEvaluate_LoadingOnlyMattersWithoutSelection(t *testing.T) {
	// an active selection renders even while a refresh is in flight
	snap := Snapshot{Authenticated: true, TenantActive: true, HouseLoading: true, HouseCount: 1, HouseActive: true}

	d := Evaluate(snap, fullReq, "/documents")

	assert.Equal(t, Allow, d.Kind)
}
