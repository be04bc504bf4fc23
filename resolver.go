package dashauth

import (
	"encoding/json"

	"github.com/summit-enterprise/dashauth/store"
)

// Resolve maps a store snapshot to a session [State]. It is pure, total and
// never fails: a malformed profile degrades to Profile == nil instead of
// surfacing an error.
//
// Authentication and role are computed independently of each other.
// Authenticated is true iff a token or adminToken is present; the role tier
// comes from the profile flags alone, whichever token is present. The
// separation is deliberate: a corrupt profile cannot by itself revoke
// authentication, and a missing token revokes it even when a stale profile
// remains behind.
func Resolve(snap store.Snapshot) State {
	state := State{
		Authenticated: snap.Token != "" || snap.AdminToken != "",
	}

	profile, ok := decodeProfile(snap.User)
	if !ok {
		return state
	}

	state.Profile = profile
	state.Banned = profile.IsBanned
	state.Restricted = profile.IsRestricted

	switch {
	case profile.IsSuperuser:
		state.Role = RoleSuperuser
	case profile.IsAdmin:
		state.Role = RoleAdmin
	default:
		state.Role = RoleUser
	}

	return state
}

// decodeProfile parses the persisted profile JSON. Missing boolean flags
// decode as false.
func decodeProfile(raw string) (*Profile, bool) {
	if raw == "" {
		return nil, false
	}
	var p Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, false
	}
	return &p, true
}
