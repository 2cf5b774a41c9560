package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/terraincognita07/wellnest/internal/services"
	"go.uber.org/zap"
)

func TestChangeRelay_ForwardsHubEventsToListeners(t *testing.T) {
	_, client := setupTestRedis(t)
	relay := NewChangeRelay(client, zap.NewNop())
	hub := services.NewChangeHub()
	detach := relay.Attach(hub)
	defer detach()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	received := make(chan services.ChangeEvent, 1)
	listening := make(chan error, 1)
	go func() {
		listening <- relay.Listen(ctx, func(event services.ChangeEvent) {
			select {
			case received <- event:
			default:
			}
		})
	}()

	event := services.NewChangeEvent(5, services.ChangeKindCycle, "2024-03-10")
	require.Eventually(t, func() bool {
		hub.Publish(event)
		select {
		case got := <-received:
			assert.Equal(t, event.ID, got.ID)
			assert.Equal(t, uint(5), got.OwnerID)
			assert.Equal(t, services.ChangeKindCycle, got.Kind)
			assert.Equal(t, "2024-03-10", got.Date)
			return true
		case <-time.After(50 * time.Millisecond):
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-listening:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("listener did not stop after cancel")
	}
}

func TestChangeRelay_PublishFailureDoesNotReachPublisher(t *testing.T) {
	mr, client := setupTestRedis(t)
	relay := NewChangeRelay(client, zap.NewNop())
	hub := services.NewChangeHub()
	relay.Attach(hub)
	mr.Close()

	assert.NotPanics(t, func() {
		hub.Publish(services.NewChangeEvent(1, services.ChangeKindSettings, ""))
	})
}
