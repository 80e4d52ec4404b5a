package matchcore

import decimal "github.com/geseq/udecimal"

// orderQueue holds the resting orders at a single price level in strict
// arrival order. The head of the queue always has the oldest arrival
// sequence at that price, so walking from head to tail is exactly price-time
// priority for this level.
type orderQueue struct {
	size  uint64
	head  *Order
	tail  *Order

	totalQty uint64
	price    decimal.Decimal
}

func newOrderQueue(price decimal.Decimal) *orderQueue {
	return &orderQueue{price: price}
}

// Len returns the number of orders resting at this level.
func (oq *orderQueue) Len() uint64 { return oq.size }

// Price returns the level's price.
func (oq *orderQueue) Price() decimal.Decimal { return oq.price }

// TotalQty returns the sum of RemainingQuantity across every order resting
// at this level.
func (oq *orderQueue) TotalQty() uint64 { return oq.totalQty }

// Head returns the order at the front of the queue, or nil if empty.
func (oq *orderQueue) Head() *Order { return oq.head }

// Empty reports whether the level has no resting orders.
func (oq *orderQueue) Empty() bool { return oq.size == 0 }

// Append adds an order to the back of the queue, i.e. it becomes the
// lowest-priority order at this price.
func (oq *orderQueue) Append(o *Order) {
	oq.totalQty += o.RemainingQuantity
	tail := oq.tail
	oq.tail = o
	if tail != nil {
		tail.next = o
		o.prev = tail
	}
	if oq.head == nil {
		oq.head = o
	}
	oq.size++
}

// Remove unlinks o from the queue. o must currently be a member of this
// queue; removing an order that has already been fully drained of quantity
// still requires an explicit Remove call, since the queue tracks membership
// independently of RemainingQuantity.
func (oq *orderQueue) Remove(o *Order) {
	prev := o.prev
	next := o.next
	if prev != nil {
		prev.next = next
	}
	if next != nil {
		next.prev = prev
	}
	o.next = nil
	o.prev = nil

	oq.size--
	if oq.head == o {
		oq.head = next
	}
	if oq.tail == o {
		oq.tail = prev
	}
}

// reduceQty records that qty was just filled off the head order without
// removing it from the queue. It runs for every fill against the head,
// partial or full; Remove does not adjust totalQty.
func (oq *orderQueue) reduceQty(qty uint64) {
	oq.totalQty -= qty
}
