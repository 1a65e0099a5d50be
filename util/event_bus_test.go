// api/util/event_bus_test.go
package util_test

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	logger "github.com/cobaltsec/aegis/api/logging"
	"github.com/cobaltsec/aegis/api/util"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "aegis-util-test")
	if err != nil {
		panic(err)
	}
	logger.InitLogger(dir)
	defer logger.Sync()
	m.Run()
}

func TestEventBusDeliversToEachSubscriber(t *testing.T) {
	bus := util.NewEventBus()

	var delivered int32
	gotType := make(chan string, 2)
	handler := func(ctx context.Context, e util.Event) error {
		atomic.AddInt32(&delivered, 1)
		gotType <- e.Type
		return nil
	}
	bus.Subscribe("grant.created", handler)
	bus.Subscribe("grant.created", handler)
	bus.Subscribe("grant.revoked", handler)

	bus.Publish(context.Background(), "grant.created", "g-1")

	for i := 0; i < 2; i++ {
		select {
		case typ := <-gotType:
			assert.Equal(t, "grant.created", typ)
		case <-time.After(time.Second):
			t.Fatal("subscriber never received the event")
		}
	}
	assert.Equal(t, int32(2), atomic.LoadInt32(&delivered))
}

func TestEventBusHandlerErrorDoesNotReachPublisher(t *testing.T) {
	bus := util.NewEventBus()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	bus.Start(ctx)

	ran := make(chan struct{})
	bus.Subscribe("policy.reloaded", func(ctx context.Context, e util.Event) error {
		close(ran)
		return errors.New("cache invalidation failed")
	})

	// Publish returns immediately; the failing handler only shows up in
	// the error log.
	bus.Publish(context.Background(), "policy.reloaded", int64(2))
	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("handler never ran")
	}
}
