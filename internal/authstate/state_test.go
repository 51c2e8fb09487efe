package authstate

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ZeroValue(t *testing.T) {
	var s Store
	assert.False(t, s.LoginStatus())
	assert.False(t, s.AuthStatus())
	assert.Equal(t, Flags{}, s.Snapshot())
}

func TestStore_SetLoginIdempotent(t *testing.T) {
	s := New()

	s.SetLogin()
	s.SetLogin()
	assert.True(t, s.LoginStatus())

	s.SetNotLogin()
	s.SetNotLogin()
	assert.False(t, s.LoginStatus())
}

func TestStore_FlagsAreIndependent(t *testing.T) {
	s := New()

	s.SetAuthStatus(true)
	assert.True(t, s.AuthStatus())
	assert.False(t, s.LoginStatus())

	s.SetLoginStatus(true)
	s.SetAuthStatus(false)
	assert.Equal(t, Flags{LoggedIn: true, Authorized: false}, s.Snapshot())
}

func TestStore_InstancesAreIsolated(t *testing.T) {
	a, b := New(), New()
	a.SetLogin()
	assert.True(t, a.LoginStatus())
	assert.False(t, b.LoginStatus())
}

func TestStore_Subscribe(t *testing.T) {
	s := New()

	var got []Flags
	cancel := s.Subscribe(func(f Flags) { got = append(got, f) })

	s.SetLogin()
	s.SetAuthStatus(true)
	s.SetNotLogin()

	require.Len(t, got, 3)
	assert.Equal(t, Flags{LoggedIn: true}, got[0])
	assert.Equal(t, Flags{LoggedIn: true, Authorized: true}, got[1])
	assert.Equal(t, Flags{Authorized: true}, got[2])

	cancel()
	cancel()
	s.SetLogin()
	assert.Len(t, got, 3)
}

func TestStore_SubscribeNotifiesOnRepeatedWrites(t *testing.T) {
	s := New()
	calls := 0
	s.Subscribe(func(Flags) { calls++ })

	s.SetNotLogin()
	s.SetNotLogin()
	assert.Equal(t, 2, calls)
}

func TestStore_ObserverMayReadStore(t *testing.T) {
	s := New()
	var seen bool
	s.Subscribe(func(Flags) { seen = s.LoginStatus() })

	s.SetLogin()
	assert.True(t, seen)
}

func TestStore_CancelKeepsOtherObservers(t *testing.T) {
	s := New()
	var first, second int
	cancelFirst := s.Subscribe(func(Flags) { first++ })
	s.Subscribe(func(Flags) { second++ })

	cancelFirst()
	s.SetLogin()

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
}

func TestStore_ConcurrentWrites(t *testing.T) {
	s := New()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.SetLogin()
		}()
		go func() {
			defer wg.Done()
			_ = s.Snapshot()
		}()
	}
	wg.Wait()
	assert.True(t, s.LoginStatus())
}

func TestStore_ConcurrentNotificationsFollowState(t *testing.T) {
	for round := 0; round < 20; round++ {
		s := New()
		var seen []Flags
		s.Subscribe(func(f Flags) { seen = append(seen, f) })

		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(2)
			go func() { defer wg.Done(); s.SetLogin() }()
			go func(v bool) { defer wg.Done(); s.SetAuthStatus(v) }(i%2 == 0)
			wg.Add(1)
			go func() { defer wg.Done(); s.SetNotLogin() }()
		}
		wg.Wait()

		require.Len(t, seen, 60)
		assert.Equal(t, s.Snapshot(), seen[len(seen)-1])
	}
}
