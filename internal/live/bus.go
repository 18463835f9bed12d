// Package live implements the table-change notification bus behind the
// reactive read surface. Repositories publish after every successful write;
// transactional writers publish once, after commit, so subscribers never
// observe uncommitted state. Consumers re-query current rows on each event
// rather than patching local copies, so a coalesced or dropped event can delay
// a refresh but never corrupt it.
package live

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Table names used as publication topics.
const (
	TableProducts          = "products"
	TableCategories        = "categories"
	TableWarehouses        = "warehouses"
	TableZones             = "zones"
	TableInventoryItems    = "inventory_items"
	TableStockTransactions = "stock_transactions"
)

// Change identifies the table and row ids touched by one committed write.
type Change struct {
	Table string `json:"table"`
	IDs   []uint `json:"ids"`
}

type subscriber struct {
	tables map[string]struct{} // empty = all tables
	ch     chan Change
}

func (s *subscriber) wants(table string) bool {
	if len(s.tables) == 0 {
		return true
	}
	_, ok := s.tables[table]
	return ok
}

// Bus fans committed changes out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses that event and catches up on the next
// one it receives.
type Bus struct {
	mu      sync.RWMutex
	subs    map[int]*subscriber
	next    int
	bufSize int
}

func NewBus(bufSize int) *Bus {
	if bufSize < 1 {
		bufSize = 64
	}
	return &Bus{subs: make(map[int]*subscriber), bufSize: bufSize}
}

// Subscribe registers interest in the given tables (none = all). The returned
// cancel func must be called to release the subscription; after cancel the
// channel is closed.
func (b *Bus) Subscribe(tables ...string) (<-chan Change, func()) {
	sub := &subscriber{
		tables: make(map[string]struct{}, len(tables)),
		ch:     make(chan Change, b.bufSize),
	}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = sub
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if s, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(s.ch)
		}
		b.mu.Unlock()
	}
	return sub.ch, cancel
}

// Publish notifies every subscriber interested in table. No-op when ids is
// empty.
func (b *Bus) Publish(table string, ids ...uint) {
	if len(ids) == 0 {
		return
	}
	change := Change{Table: table, IDs: ids}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, sub := range b.subs {
		if !sub.wants(table) {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			log.Warn().Str("table", table).Msg("live bus subscriber buffer full, change dropped")
		}
	}
}

// SubscriberCount reports active subscriptions (used by the health endpoint).
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
