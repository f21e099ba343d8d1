package intel

import (
	"context"
	"encoding/json"
	"slices"
	"sync"

	"github.com/fd1az/cap-alpha/business/trade/domain"
	"github.com/fd1az/cap-alpha/internal/logger"
	"github.com/fd1az/cap-alpha/internal/wsconn"
)

// StreamFeed keeps the latest scenarios pushed by the engine's intel stream.
type StreamFeed struct {
	client *wsconn.Client
	log    logger.LoggerInterface

	mu          sync.RWMutex
	scenarios   []domain.Scenario
	subscribers []func([]domain.Scenario)
	onState     func(connected bool)
}

// NewStreamFeed creates a feed reading from url. It does not connect.
func NewStreamFeed(url string, log logger.LoggerInterface) (*StreamFeed, error) {
	client, err := wsconn.New(wsconn.DefaultConfig(url, "intel"))
	if err != nil {
		return nil, err
	}
	f := &StreamFeed{client: client, log: log}
	client.OnMessage(f.handle)
	client.OnStateChange(func(state wsconn.State, err error) {
		if err != nil {
			log.Warn(context.Background(), "intel stream state", "state", string(state), "error", err)
		}
		f.mu.RLock()
		cb := f.onState
		f.mu.RUnlock()
		if cb != nil {
			cb(state == wsconn.StateConnected)
		}
	})
	return f, nil
}

// Subscribe registers fn to receive every scenario update. Call before Start.
func (f *StreamFeed) Subscribe(fn func([]domain.Scenario)) {
	f.mu.Lock()
	f.subscribers = append(f.subscribers, fn)
	f.mu.Unlock()
}

// OnConnection registers a connectivity callback. Call before Start.
func (f *StreamFeed) OnConnection(fn func(connected bool)) {
	f.mu.Lock()
	f.onState = fn
	f.mu.Unlock()
}

// Start connects to the stream.
func (f *StreamFeed) Start(ctx context.Context) error {
	return f.client.Connect(ctx)
}

// Connected reports whether the stream is currently up.
func (f *StreamFeed) Connected() bool {
	return f.client.IsConnected()
}

// Close disconnects.
func (f *StreamFeed) Close() error {
	return f.client.Close()
}

func (f *StreamFeed) Scenarios(context.Context) ([]domain.Scenario, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.scenarios), nil
}

func (f *StreamFeed) handle(ctx context.Context, raw []byte) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		f.log.Warn(ctx, "dropping malformed intel message", "error", err)
		return
	}
	if msg.Type != MessageTypeScenarios {
		f.log.Debug(ctx, "ignoring intel message", "type", msg.Type)
		return
	}
	SortByScore(msg.Scenarios)

	f.mu.Lock()
	f.scenarios = msg.Scenarios
	subs := slices.Clone(f.subscribers)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(slices.Clone(msg.Scenarios))
	}
}
