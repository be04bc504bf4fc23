package dashauth

import (
	"testing"

	"github.com/summit-enterprise/dashauth/store"
)

func TestResolveEmptyStore(t *testing.T) {
	state := Resolve(store.Snapshot{})

	if state.Authenticated {
		t.Fatal("empty store must not authenticate")
	}
	if state.Role != RoleAnonymous {
		t.Fatalf("expected RoleAnonymous, got %v", state.Role)
	}
	if state.Profile != nil {
		t.Fatalf("expected nil profile, got %+v", state.Profile)
	}
}

func TestResolveTokenPresence(t *testing.T) {
	cases := []struct {
		name string
		snap store.Snapshot
		want bool
	}{
		{"no tokens", store.Snapshot{User: `{"id":"u1"}`}, false},
		{"token only", store.Snapshot{Token: "t1"}, true},
		{"admin token only", store.Snapshot{AdminToken: "t2"}, true},
		{"both tokens", store.Snapshot{Token: "t1", AdminToken: "t1"}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Resolve(tc.snap).Authenticated; got != tc.want {
				t.Fatalf("authenticated = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestResolveRolePrecedence(t *testing.T) {
	cases := []struct {
		name string
		user string
		want Role
	}{
		{"plain user", `{"id":"u1","is_admin":false,"is_superuser":false}`, RoleUser},
		{"admin", `{"id":"u1","is_admin":true}`, RoleAdmin},
		{"superuser outranks admin", `{"id":"u1","is_admin":true,"is_superuser":true}`, RoleSuperuser},
		{"superuser without admin flag", `{"id":"u1","is_admin":false,"is_superuser":true}`, RoleSuperuser},
		{"missing flags default false", `{"id":"u1"}`, RoleUser},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := Resolve(store.Snapshot{Token: "t1", User: tc.user})
			if state.Role != tc.want {
				t.Fatalf("role = %v, want %v", state.Role, tc.want)
			}
		})
	}
}

func TestResolveMalformedProfileNeverRevokesAuth(t *testing.T) {
	state := Resolve(store.Snapshot{Token: "x", User: "{bad"})

	if !state.Authenticated {
		t.Fatal("malformed profile must not revoke authentication")
	}
	if state.Profile != nil {
		t.Fatal("malformed profile must degrade to nil")
	}
	if state.Role != RoleAnonymous {
		t.Fatalf("expected anonymous-equivalent role, got %v", state.Role)
	}
}

func TestResolveMissingTokenRevokesDespiteStaleProfile(t *testing.T) {
	state := Resolve(store.Snapshot{User: `{"id":"u1","is_admin":true}`})

	if state.Authenticated {
		t.Fatal("stale profile without tokens must not authenticate")
	}
}

func TestResolveUserScenario(t *testing.T) {
	state := Resolve(store.Snapshot{
		Token: "t1",
		User:  `{"id":"u1","is_admin":false,"is_superuser":false,"is_banned":false,"is_restricted":false}`,
	})

	if !state.Authenticated {
		t.Fatal("expected authenticated")
	}
	if state.Role != RoleUser {
		t.Fatalf("role = %v, want RoleUser", state.Role)
	}
	if state.Banned {
		t.Fatal("expected banned=false")
	}
}

func TestResolveSuperuserScenario(t *testing.T) {
	state := Resolve(store.Snapshot{
		AdminToken: "t2",
		Token:      "t2",
		User:       `{"id":"u1","is_superuser":true,"is_admin":false,"is_banned":false,"is_restricted":false}`,
	})

	if !state.Authenticated {
		t.Fatal("expected authenticated")
	}
	if state.Role != RoleSuperuser {
		t.Fatalf("role = %v, want RoleSuperuser", state.Role)
	}
}

func TestResolveBannedAndRestrictedFlags(t *testing.T) {
	state := Resolve(store.Snapshot{
		Token: "t1",
		User:  `{"id":"u1","is_banned":true,"is_restricted":true}`,
	})

	if !state.Banned || !state.Restricted {
		t.Fatalf("expected banned and restricted, got %+v", state)
	}
	if !state.Authenticated {
		t.Fatal("banned accounts still authenticate")
	}
}
