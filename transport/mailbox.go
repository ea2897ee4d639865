// Package transport provides the bulk-synchronous exchange primitive the
// spec assumes the host pipeline supplies (§6): barrier-gated all-to-all
// enqueue/dequeue, and point-to-point enqueue/dequeue along a link map.
// The in-process implementation here is a goroutine-per-peer simulation
// of that primitive, adapted from the mailbox/channel pattern used for
// cross-partition messaging in the teacher's DG solver
// (utils/parallel_utils.go's MailBox/NeighborNotifier).
package transport

import "fmt"

// buffer is a growable slice of posted messages. One is allocated per
// (sender, target) pair and handed across a channel as a unit, so the
// receiver never needs to lock against the sender appending to it.
type buffer[T any] struct {
	elems []T
}

func newBuffer[T any]() *buffer[T] { return &buffer[T]{} }

func (b *buffer[T]) Add(v T)    { b.elems = append(b.elems, v) }
func (b *buffer[T]) Cells() []T { return b.elems }
func (b *buffer[T]) Reset()     { b.elems = b.elems[:0] }

// MailBox is a fixed set of NP per-peer outboxes/inboxes. PostMessage from
// peer myPeer targeting peer target is local (no synchronization); the
// posted buffers only become visible to the target after DeliverMyMessages
// is called for myPeer and the caller has ensured (by whatever barrier it
// uses, typically a sync.WaitGroup) that every peer's Deliver has run
// before any peer's Receive.
type MailBox[T any] struct {
	NP           int
	MessageChans []chan *buffer[T]
	PostMsgQs    []map[int]*buffer[T]
	ReceiveMsgQs []*buffer[T]
	MailFlag     []bool
}

// NewMailBox allocates a mailbox for NP peers.
func NewMailBox[T any](NP int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan *buffer[T], NP),
		PostMsgQs:    make([]map[int]*buffer[T], NP),
		ReceiveMsgQs: make([]*buffer[T], NP),
		MailFlag:     make([]bool, NP),
	}
	for n := 0; n < NP; n++ {
		mb.MessageChans[n] = make(chan *buffer[T], NP) // worst case all-to-all
		mb.PostMsgQs[n] = make(map[int]*buffer[T])
		mb.ReceiveMsgQs[n] = newBuffer[T]()
	}
	return mb
}

// PostMessage queues msg from myPeer to targetPeer. Never call this for a
// peer posting to itself; the spec is explicit that a peer never enqueues
// to itself (§4.3).
func (mb *MailBox[T]) PostMessage(myPeer, targetPeer int, msg T) {
	if myPeer == targetPeer {
		panic("transport: a peer may not post a message to itself")
	}
	tgt, exists := mb.PostMsgQs[myPeer][targetPeer]
	if !exists {
		tgt = newBuffer[T]()
		mb.PostMsgQs[myPeer][targetPeer] = tgt
	}
	tgt.Add(msg)
	mb.MailFlag[myPeer] = true
}

// PostMessageToAll queues msg from myPeer to every other peer (the
// all-to-all round of §4.3).
func (mb *MailBox[T]) PostMessageToAll(myPeer int, msg T) {
	for k := 0; k < mb.NP; k++ {
		if k != myPeer {
			mb.PostMessage(myPeer, k, msg)
		}
	}
}

// DeliverMyMessages pushes everything myPeer has queued onto the target
// peers' channels. Must be called by every peer before any peer calls
// ReceiveMyMessages.
func (mb *MailBox[T]) DeliverMyMessages(myPeer int) {
	if !mb.MailFlag[myPeer] {
		return
	}
	for targetPeer, msgBuffer := range mb.PostMsgQs[myPeer] {
		if targetPeer < 0 || targetPeer > mb.NP-1 {
			panic(fmt.Sprintf("transport: target peer %d out of bounds", targetPeer))
		}
		mb.MessageChans[targetPeer] <- msgBuffer
	}
	mb.MailFlag[myPeer] = false
}

// ReceiveMyMessages drains everything currently queued on myPeer's
// channel into its ReceiveMsgQs buffer. Call only after every peer's
// DeliverMyMessages has returned.
func (mb *MailBox[T]) ReceiveMyMessages(myPeer int) {
	for {
		select {
		case msgBuffer := <-mb.MessageChans[myPeer]:
			for _, msg := range msgBuffer.Cells() {
				mb.ReceiveMsgQs[myPeer].Add(msg)
			}
			msgBuffer.Reset()
		default:
			return
		}
	}
}

// Received returns everything myPeer has received so far.
func (mb *MailBox[T]) Received(myPeer int) []T {
	return mb.ReceiveMsgQs[myPeer].Cells()
}

// ResetReceived clears myPeer's received buffer, e.g. between the
// descriptor round and the field round if the same mailbox type were
// reused (in practice each round uses its own MailBox instance).
func (mb *MailBox[T]) ResetReceived(myPeer int) {
	mb.ReceiveMsgQs[myPeer].Reset()
}
