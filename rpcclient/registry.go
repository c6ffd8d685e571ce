package rpcclient

import (
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/opd-ai/securerpc/transport"
)

// ErrRegistryClosed is returned by Insert, Remove, and Count once the
// registry task has exited. It carries the same fatal-instance semantics
// as rpcerr.AioContextChannelClosed for Insert; callers removing or
// counting against a closed registry should log and continue.
var ErrRegistryClosed = errors.New("rpcclient: registry task has exited")

type contextEntry struct {
	aio *transport.Aio
	ctx transport.Context
}

type regOp int

const (
	regInsert regOp = iota
	regRemove
	regCount
	regStop
)

type regMsg struct {
	op         regOp
	id         ContextId
	entry      contextEntry
	countReply chan int
}

// registry is the single owner of the in-flight context map. All access
// is serialized through ch, so the map itself needs no lock.
type registry struct {
	ch   chan regMsg
	done chan struct{}
	grp  *errgroup.Group
}

// newRegistry starts the registry task with a channel buffer of bufSize,
// conventionally 2x the ticket capacity so Insert/Remove never contend
// with Count under normal load.
func newRegistry(bufSize int) *registry {
	r := &registry{
		ch:   make(chan regMsg, bufSize),
		done: make(chan struct{}),
	}
	r.grp = &errgroup.Group{}
	r.grp.Go(func() error {
		r.run()
		return nil
	})
	return r
}

func (r *registry) run() {
	entries := make(map[ContextId]contextEntry)
	for msg := range r.ch {
		switch msg.op {
		case regInsert:
			entries[msg.id] = msg.entry
		case regRemove:
			delete(entries, msg.id)
		case regCount:
			msg.countReply <- len(entries)
		case regStop:
			close(r.done)
			return
		}
	}
}

// Insert registers a newly allocated aio context under id.
func (r *registry) Insert(id ContextId, entry contextEntry) error {
	select {
	case r.ch <- regMsg{op: regInsert, id: id, entry: entry}:
		return nil
	case <-r.done:
		return ErrRegistryClosed
	}
}

// Remove unregisters id. It is always paired with exactly one prior
// Insert for a given request.
func (r *registry) Remove(id ContextId) error {
	select {
	case r.ch <- regMsg{op: regRemove, id: id}:
		return nil
	case <-r.done:
		return ErrRegistryClosed
	}
}

// Count returns the number of currently registered contexts.
func (r *registry) Count() (int, error) {
	reply := make(chan int, 1)
	select {
	case r.ch <- regMsg{op: regCount, countReply: reply}:
	case <-r.done:
		return 0, ErrRegistryClosed
	}
	select {
	case n := <-reply:
		return n, nil
	case <-r.done:
		return 0, ErrRegistryClosed
	}
}

// Stop requests the registry task to exit and waits for it to do so.
// Safe to call more than once.
func (r *registry) Stop() {
	select {
	case r.ch <- regMsg{op: regStop}:
	case <-r.done:
		return
	}
	r.grp.Wait()
}
