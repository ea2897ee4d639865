package transport

import "sync"

// Exchange runs one bulk-synchronous round (§5): every peer's post
// callback runs concurrently and queues whatever it wants to send, then a
// barrier ensures every peer has finished posting and delivering before
// any peer begins receiving. The same primitive serves both the
// descriptor all-to-all (§4.3, post to every other peer) and the
// point-to-point field exchange (§4.6, post via mb.PostMessage to
// specific link-map targets) — the spec's external-interface section (§6)
// describes them as two instances of one enqueue/barrier/dequeue
// primitive, not two different mechanisms.
func Exchange[T any](numPeers int, post func(peer int, mb *MailBox[T])) [][]T {
	mb := NewMailBox[T](numPeers)

	var postWG sync.WaitGroup
	for p := 0; p < numPeers; p++ {
		postWG.Add(1)
		go func(peer int) {
			defer postWG.Done()
			post(peer, mb)
			mb.DeliverMyMessages(peer)
		}(p)
	}
	postWG.Wait()

	results := make([][]T, numPeers)
	var recvWG sync.WaitGroup
	for p := 0; p < numPeers; p++ {
		recvWG.Add(1)
		go func(peer int) {
			defer recvWG.Done()
			mb.ReceiveMyMessages(peer)
			results[peer] = mb.Received(peer)
		}(p)
	}
	recvWG.Wait()

	return results
}
