package pubsub

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListenCmd_ReceivesEvent(t *testing.T) {
	broker := NewBroker[string]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch := broker.Subscribe(ctx)

	broker.Publish(CatalogReloaded, "catalog.yaml")

	msg := ListenCmd(ctx, ch)()
	event, ok := msg.(Event[string])
	require.True(t, ok, "msg should be Event[string]")
	require.Equal(t, "catalog.yaml", event.Payload)
	require.Equal(t, CatalogReloaded, event.Type)
}

func TestListenCmd_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// An open channel with nothing on it; only ctx can end the wait
	ch := make(chan Event[string])
	require.Nil(t, ListenCmd(ctx, ch)())
}

func TestListenCmd_ChannelClosed(t *testing.T) {
	ch := make(chan Event[string])
	close(ch)

	require.Nil(t, ListenCmd(context.Background(), ch)())
}

func TestListener_ReceivesInOrder(t *testing.T) {
	broker := NewBroker[int]()
	defer broker.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	listener := NewListener[int](ctx, broker)

	broker.Publish(SessionOpened, 1)
	broker.Publish(SessionUpdated, 2)
	broker.Publish(SessionClosed, 3)

	for _, want := range []EventType{SessionOpened, SessionUpdated, SessionClosed} {
		event, ok := listener.Listen()().(Event[int])
		require.True(t, ok)
		require.Equal(t, want, event.Type)
	}
}

func TestListener_Nil(t *testing.T) {
	var l *Listener[int]
	require.Nil(t, l.Listen())
}
