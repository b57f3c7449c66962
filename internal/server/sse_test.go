package server

import (
	"errors"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/state"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingRender(calls *atomic.Int32) RenderFunc {
	return func(doc *types.Document) (string, error) {
		calls.Add(1)
		return "<p>" + doc.Summary + "</p>", nil
	}
}

func TestBroker_RendersOncePerNotification(t *testing.T) {
	store := state.New()
	var calls atomic.Int32
	b := NewBroker(store, countingRender(&calls), observability.Discard())
	defer b.Close()

	_, first, cancelFirst := b.Subscribe()
	defer cancelFirst()
	_, second, cancelSecond := b.Subscribe()
	defer cancelSecond()

	store.UpdateSummary("hello")

	assert.Equal(t, int32(1), calls.Load())
	for _, ch := range []<-chan Event{first, second} {
		ev := <-ch
		assert.Equal(t, "render", ev.Name)
		assert.Equal(t, "<p>hello</p>", ev.Data["html"])
	}
}

func TestBroker_SkipsRenderWithoutClients(t *testing.T) {
	store := state.New()
	var calls atomic.Int32
	b := NewBroker(store, countingRender(&calls), observability.Discard())
	defer b.Close()

	store.UpdateSummary("nobody watching")
	assert.Equal(t, int32(0), calls.Load())
}

func TestBroker_DropsOldestWhenClientLags(t *testing.T) {
	store := state.New()
	var calls atomic.Int32
	b := NewBroker(store, countingRender(&calls), observability.Discard())
	defer b.Close()

	_, ch, cancel := b.Subscribe()
	defer cancel()

	total := clientBuffer + 3
	for i := 0; i < total; i++ {
		store.UpdateSummary(strings.Repeat("x", i+1))
	}

	require.Len(t, ch, clientBuffer)
	first := <-ch
	assert.Equal(t, "<p>"+strings.Repeat("x", total-clientBuffer+1)+"</p>", first.Data["html"])

	var last Event
	for len(ch) > 0 {
		last = <-ch
	}
	assert.Equal(t, "<p>"+strings.Repeat("x", total)+"</p>", last.Data["html"])
}

func TestBroker_RenderErrorBecomesErrorEvent(t *testing.T) {
	store := state.New()
	b := NewBroker(store, func(*types.Document) (string, error) {
		return "", errors.New("template broke")
	}, observability.Discard())
	defer b.Close()

	_, ch, cancel := b.Subscribe()
	defer cancel()

	store.UpdateSummary("x")
	ev := <-ch
	assert.Equal(t, "error", ev.Name)
	assert.NotContains(t, ev.Data["error"], "template broke")
}

func TestBroker_CancelAndClose(t *testing.T) {
	store := state.New()
	listenersBefore := store.ListenerCount()
	b := NewBroker(store, func(*types.Document) (string, error) { return "", nil }, nil)
	assert.Equal(t, listenersBefore+1, store.ListenerCount())

	_, ch, cancel := b.Subscribe()
	assert.Equal(t, 1, b.ClientCount())
	cancel()
	cancel()
	assert.Equal(t, 0, b.ClientCount())
	_, open := <-ch
	assert.False(t, open)

	_, kept, _ := b.Subscribe()
	b.Close()
	b.Close()
	_, open = <-kept
	assert.False(t, open)
	assert.Equal(t, listenersBefore, store.ListenerCount())

	_, late, _ := b.Subscribe()
	_, open = <-late
	assert.False(t, open)
}

func TestSSEWriter_WriteEvent(t *testing.T) {
	w := httptest.NewRecorder()
	sse, err := NewSSEWriter(w)
	require.NoError(t, err)

	require.NoError(t, sse.WriteEvent("render", map[string]string{"html": "<b>\n</b>"}))
	sse.WriteError("oops")

	body := w.Body.String()
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))
	assert.Contains(t, body, "event: render\ndata: {\"html\":\"\\u003cb\\u003e\\n\\u003c/b\\u003e\"}\n\n")
	assert.Contains(t, body, "event: error\ndata: {\"error\":\"oops\"}\n\n")
}
