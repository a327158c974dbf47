package services

import (
	"sync"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
)

func TestMetricsHubConcurrentClients(t *testing.T) {
	hub := NewMetricsHub()

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conn := &websocket.Conn{}
			hub.Add(conn)
			hub.Remove(conn)
		}()
	}
	wg.Wait()

	hub.mu.Lock()
	defer hub.mu.Unlock()
	assert.Empty(t, hub.clients)
}

func TestMetricsHubBroadcastNeverBlocks(t *testing.T) {
	hub := NewMetricsHub()
	for i := 0; i < 100; i++ {
		hub.Broadcast(MetricSample{Goroutines: i})
	}
}
