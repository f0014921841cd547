package wallet

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSync_ConnectedWritesOnce(t *testing.T) {
	t.Parallel()

	state := NewState()
	var got []string
	state.Subscribe(func(addr string) { got = append(got, addr) })

	assert.True(t, state.Sync(Connection{Connected: true, PublicKey: "0xABC"}))
	assert.False(t, state.Sync(Connection{Connected: true, PublicKey: "0xABC"}))

	assert.Equal(t, "0xABC", state.Address())
	assert.Equal(t, []string{"0xABC"}, got)
}

func TestSync_Ignored(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		conn Connection
	}{
		{"disconnected with key", Connection{Connected: false, PublicKey: "0xABC"}},
		{"connected without key", Connection{Connected: true}},
		{"zero value", Connection{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			state := NewState()
			calls := 0
			state.Subscribe(func(string) { calls++ })

			assert.False(t, state.Sync(tt.conn))
			assert.Empty(t, state.Address())
			assert.Zero(t, calls)
		})
	}
}

func TestSync_DisconnectKeepsAddress(t *testing.T) {
	t.Parallel()

	state := NewState()
	state.Sync(Connection{Connected: true, PublicKey: "first"})
	state.Sync(Connection{Connected: false})

	assert.Equal(t, "first", state.Address())
}

func TestSync_ChangeNotifiesEveryListener(t *testing.T) {
	t.Parallel()

	state := NewState()
	var a, b []string
	state.Subscribe(func(addr string) { a = append(a, addr) })
	state.Subscribe(func(addr string) { b = append(b, addr) })
	state.Subscribe(nil)

	state.Sync(Connection{Connected: true, PublicKey: "one"})
	state.Sync(Connection{Connected: true, PublicKey: "two"})

	assert.Equal(t, []string{"one", "two"}, a)
	assert.Equal(t, []string{"one", "two"}, b)
}

func TestOnSync(t *testing.T) {
	t.Parallel()

	state := NewState()
	hooks := 0
	state.OnSync(func() { hooks++ })

	state.SetAddress("x")
	state.SetAddress("x")
	state.SetAddress("y")

	assert.Equal(t, 2, hooks)
}

func TestListenerMaySubscribe(t *testing.T) {
	t.Parallel()

	state := NewState()
	state.Subscribe(func(string) {
		state.Subscribe(func(string) {})
		_ = state.Address()
	})

	require.NotPanics(t, func() { state.SetAddress("z") })
}

func TestConcurrentReaders(t *testing.T) {
	t.Parallel()

	state := NewState()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				_ = state.Address()
			}
		}()
	}
	for i := 0; i < 50; i++ {
		state.SetAddress(string(rune('a' + i%26)))
	}
	wg.Wait()

	assert.NotEmpty(t, state.Address())
}
