package dashauth

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/summit-enterprise/dashauth/store"
)

func TestCrossTabConvergenceOverRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	api := &fakeAPI{loginFn: sessionFor("u1", nil)}

	build := func() *Client {
		c, err := New().
			WithStore(store.NewRedis(rdb, "da", "0")).
			WithAuthAPI(api).
			Build()
		if err != nil {
			t.Fatalf("build: %v", err)
		}
		t.Cleanup(func() { _ = c.Close() })
		return c
	}

	tabA := build()
	tabB := build()

	statesB, cancel := tabB.Subscribe()
	defer cancel()

	if _, err := tabA.Login(context.Background(), "u1@example.com", "pw"); err != nil {
		t.Fatalf("login in tab A: %v", err)
	}

	state := waitState(t, statesB, func(s State) bool { return s.Authenticated })
	if state.Profile == nil || state.Profile.ID != "u1" {
		t.Fatalf("tab B state = %+v", state)
	}

	// Logout in B propagates back to A.
	statesA, cancelA := tabA.Subscribe()
	defer cancelA()

	if _, err := tabB.Logout(context.Background()); err != nil {
		t.Fatalf("logout in tab B: %v", err)
	}
	waitState(t, statesA, func(s State) bool { return !s.Authenticated })

	stateA, err := tabA.State(context.Background())
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if stateA.Authenticated {
		t.Fatalf("tab A still authenticated: %+v", stateA)
	}
}
