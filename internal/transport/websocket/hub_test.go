package websocket

import (
	"context"
	"testing"
	"time"

	"gpustat-server/internal/logger"
)

func newTestHub() *Hub {
	return NewHub(logger.New(logger.Options{Level: "error"}))
}

func TestHubReleaseUnregistersClient(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, hub.log)
	hub.register <- client
	hub.release(client)

	select {
	case _, ok := <-client.send:
		if ok {
			t.Fatal("expected a closed send channel after release")
		}
	case <-time.After(time.Second):
		t.Fatal("send channel not closed after release")
	}
}

func TestHubReleaseAfterShutdownDoesNotBlock(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())

	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()

	client := NewClient(hub, nil, hub.log)
	hub.register <- client

	cancel()
	<-stopped

	// A read pump tearing down after shutdown must return, not hang on
	// the unregister channel.
	released := make(chan struct{})
	go func() {
		hub.release(client)
		close(released)
	}()

	select {
	case <-released:
	case <-time.After(time.Second):
		t.Fatal("release blocked after hub shutdown")
	}
}

func TestHubBroadcastsToRegisteredClients(t *testing.T) {
	hub := newTestHub()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	client := NewClient(hub, nil, hub.log)
	hub.register <- client

	hub.Emit("snapshot.updated", map[string]int{"n": 1})

	select {
	case message := <-client.send:
		if string(message) != `{"event":"snapshot.updated","payload":{"n":1}}` {
			t.Errorf("message = %s", message)
		}
	case <-time.After(time.Second):
		t.Fatal("no broadcast received")
	}
}
