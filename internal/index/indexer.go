package index

import (
	"context"

	"github.com/matheus3301/mockchat/internal/bus"
	"github.com/matheus3301/mockchat/internal/store"
	"go.uber.org/zap"
)

// ChatSource resolves chats for contact names.
type ChatSource interface {
	Chat(id int64) (store.Chat, bool)
}

// Indexer keeps the index current by following message events on the bus.
type Indexer struct {
	idx    *Index
	chats  ChatSource
	bus    *bus.Bus
	logger *zap.Logger
	cancel context.CancelFunc
	done   chan struct{}
}

// NewIndexer creates a new indexer.
func NewIndexer(idx *Index, chats ChatSource, b *bus.Bus, logger *zap.Logger) *Indexer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Indexer{idx: idx, chats: chats, bus: b, logger: logger}
}

// Start subscribes to message events.
func (ix *Indexer) Start(ctx context.Context) {
	ctx, ix.cancel = context.WithCancel(ctx)
	ix.done = make(chan struct{})
	ch, unsub := ix.bus.Subscribe("message.", 256)

	go func() {
		defer close(ix.done)
		defer unsub()
		for {
			select {
			case evt := <-ch:
				ix.handleEvent(evt)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the indexer and waits for it to exit.
func (ix *Indexer) Stop() {
	if ix.cancel == nil {
		return
	}
	ix.cancel()
	<-ix.done
}

func (ix *Indexer) handleEvent(evt bus.Event) {
	if evt.Kind != bus.MessageAppended {
		return
	}
	payload, ok := evt.Payload.(store.MessageEvent)
	if !ok {
		return
	}
	var name string
	if chat, ok := ix.chats.Chat(payload.ChatID); ok {
		name = contactName(&chat)
	}
	if err := ix.idx.Put(payload.ChatID, name, &payload.Message); err != nil {
		ix.logger.Error("failed to index message", zap.Error(err), zap.Int64("msg_id", payload.Message.ID))
	}
}
