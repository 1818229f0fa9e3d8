// Package guard decides what a navigation attempt should do given the
// current session and scope state. The checks run in a fixed order and the
// first one that fails wins, so a screen never renders with a requirement
// unmet by anything earlier in the chain. An active house selection always
// satisfies the house requirement, even while a refresh is in flight; the
// loading placeholder only appears when nothing is selected yet.
package guard

// Requirement declares what a destination needs before it may render.
type Requirement struct {
	Auth   bool // an authenticated session
	Tenant bool // an active tenant scope
	House  bool // an active house scope
}

// Snapshot is the client state the guard evaluates against. Callers build
// it from the session and scope components at navigation time.
type Snapshot struct {
	Authenticated bool
	TenantActive  bool
	HouseLoading  bool
	HouseCount    int
	HouseActive   bool
}

// Kind is the category of guard decision.
type Kind int

const (
	// Allow lets the navigation proceed.
	Allow Kind = iota
	// Redirect sends the user elsewhere, remembering where they wanted
	// to go.
	Redirect
	// Placeholder renders an interstitial instead of the destination.
	Placeholder
)

// Placeholder variants.
const (
	PlaceholderLoading     = "loading"
	PlaceholderNoHouses    = "no-houses"
	PlaceholderSelectHouse = "select-house"
)

// Well-known redirect targets.
const (
	TargetLogin        = "/login"
	TargetSelectTenant = "/select-tenant"
)

// Decision is the guard's verdict for one navigation attempt.
type Decision struct {
	Kind        Kind
	Target      string // redirect destination
	ReturnTo    string // original destination, preserved across redirects
	Placeholder string // which interstitial to render
}

// Evaluate runs the chain: login redirect, then tenant redirect, then the
// house checks (loading interstitial, empty-membership interstitial,
// selection prompt), then allow. Destinations without a given requirement
// skip the corresponding checks entirely.
func Evaluate(snap Snapshot, req Requirement, location string) Decision {
	if req.Auth && !snap.Authenticated {
		return Decision{Kind: Redirect, Target: TargetLogin, ReturnTo: location}
	}
	if req.Tenant && !snap.TenantActive {
		return Decision{Kind: Redirect, Target: TargetSelectTenant, ReturnTo: location}
	}
	if req.House && !snap.HouseActive {
		if snap.HouseLoading {
			return Decision{Kind: Placeholder, Placeholder: PlaceholderLoading}
		}
		if snap.HouseCount == 0 {
			return Decision{Kind: Placeholder, Placeholder: PlaceholderNoHouses}
		}
		return Decision{Kind: Placeholder, Placeholder: PlaceholderSelectHouse}
	}
	return Decision{Kind: Allow}
}
