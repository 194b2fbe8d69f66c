package confirm

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_ParkAndTake(t *testing.T) {
	s := NewStore(time.Minute)
	fixed := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	p := s.Park(Pending{Tenant: "admin1", Resource: "dat_phong", ID: 5, RoomID: 2, Prompt: "sure?"})
	assert.NotEmpty(t, p.Token)
	assert.Equal(t, fixed.Add(time.Minute), p.ExpiresAt)

	got, err := s.Take("admin1", p.Token)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = s.Take("admin1", p.Token)
	assert.ErrorIs(t, err, ErrUnknownToken, "tokens are single use")
}

func TestStore_OtherTenantCannotUseToken(t *testing.T) {
	s := NewStore(time.Minute)
	p := s.Park(Pending{Tenant: "admin1", Resource: "tai_san", ID: 1})

	_, err := s.Take("admin2", p.Token)
	assert.ErrorIs(t, err, ErrUnknownToken)
	assert.False(t, s.Cancel("admin2", p.Token))

	_, err = s.Take("admin1", p.Token)
	assert.NoError(t, err, "a foreign attempt must not consume the token")
}

func TestStore_Expiry(t *testing.T) {
	s := NewStore(20 * time.Millisecond)
	p := s.Park(Pending{Tenant: "admin1", Resource: "tai_san", ID: 1})

	time.Sleep(40 * time.Millisecond)
	_, err := s.Take("admin1", p.Token)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestStore_Cancel(t *testing.T) {
	s := NewStore(time.Minute)
	p := s.Park(Pending{Tenant: "admin1", Resource: "phong_hop", ID: 1})

	assert.True(t, s.Cancel("admin1", p.Token))
	assert.False(t, s.Cancel("admin1", p.Token))
	_, err := s.Take("admin1", p.Token)
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestConfirmers(t *testing.T) {
	assert.True(t, Approved{}.Confirm(context.Background(), "x"))
	assert.False(t, Declined{}.Confirm(context.Background(), "x"))
}

func TestStore_ConcurrentTakeSucceedsOnce(t *testing.T) {
	s := NewStore(time.Minute)
	for round := 0; round < 200; round++ {
		p := s.Park(Pending{Tenant: "admin1", Resource: "tai_san", ID: 3})

		var wins atomic.Int32
		var wg sync.WaitGroup
		start := make(chan struct{})
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				if _, err := s.Take("admin1", p.Token); err == nil {
					wins.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()
		require.Equal(t, int32(1), wins.Load(), "round %d", round)
	}
}

func TestStore_TakeAndCancelRace(t *testing.T) {
	s := NewStore(time.Minute)
	p := s.Park(Pending{Tenant: "admin1", Resource: "tai_san", ID: 3})

	var wg sync.WaitGroup
	var taken, cancelled bool
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, err := s.Take("admin1", p.Token)
		taken = err == nil
	}()
	go func() {
		defer wg.Done()
		cancelled = s.Cancel("admin1", p.Token)
	}()
	wg.Wait()
	assert.True(t, taken != cancelled, "exactly one of take and cancel must win")
}
