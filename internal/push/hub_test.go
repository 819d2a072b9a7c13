package push

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietHub(buffer int) *Hub {
	return NewHub(buffer, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHub_DeliversToSubscribersOfChannel(t *testing.T) {
	h := quietHub(4)
	ctx := context.Background()

	a, cancelA := h.Subscribe(Channel("u1"))
	defer cancelA()
	b, cancelB := h.Subscribe(Channel("u1"))
	defer cancelB()
	other, cancelOther := h.Subscribe(Channel("u2"))
	defer cancelOther()

	require.NoError(t, h.Publish(ctx, Channel("u1"), []byte(`{"id":"n1"}`)))

	assert.Equal(t, `{"id":"n1"}`, string(<-a))
	assert.Equal(t, `{"id":"n1"}`, string(<-b))
	assert.Empty(t, other)
}

func TestHub_NoSubscribersIsNotAnError(t *testing.T) {
	h := quietHub(1)
	assert.NoError(t, h.Publish(context.Background(), Channel("nobody"), []byte("x")))
}

func TestHub_FullBufferDropsInsteadOfBlocking(t *testing.T) {
	h := quietHub(1)
	ctx := context.Background()
	ch, cancel := h.Subscribe("user_u1")
	defer cancel()

	require.NoError(t, h.Publish(ctx, "user_u1", []byte("first")))
	require.NoError(t, h.Publish(ctx, "user_u1", []byte("second")))

	assert.Equal(t, "first", string(<-ch))
	assert.Empty(t, ch)
}

func TestHub_CancelUnsubscribes(t *testing.T) {
	h := quietHub(1)
	ch, cancel := h.Subscribe("user_u1")
	assert.Equal(t, 1, h.Subscribers("user_u1"))

	cancel()
	cancel()
	assert.Equal(t, 0, h.Subscribers("user_u1"))
	_, open := <-ch
	assert.False(t, open)
}

func TestHub_Close(t *testing.T) {
	h := quietHub(1)
	ch, cancel := h.Subscribe("user_u1")
	h.Close()
	cancel()

	_, open := <-ch
	assert.False(t, open)
	assert.ErrorIs(t, h.Publish(context.Background(), "user_u1", []byte("x")), ErrHubClosed)

	late, _ := h.Subscribe("user_u1")
	_, open = <-late
	assert.False(t, open)
}

func TestHub_ConcurrentPublishAndSubscribe(t *testing.T) {
	h := quietHub(64)
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, cancel := h.Subscribe("user_u1")
			cancel()
		}()
		go func() {
			defer wg.Done()
			_ = h.Publish(ctx, "user_u1", []byte("x"))
		}()
	}
	wg.Wait()
	assert.Equal(t, 0, h.Subscribers("user_u1"))
}
