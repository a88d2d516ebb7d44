// Package list implements a generic doubly-linked list. The buffer pool
// uses it to track free, unpinned, and pinned pages without an eviction
// policy baked into the list itself: callers move links between lists
// by calling PopSelf then PushTail/PushHead on the destination.
package list

// List is a doubly-linked list of values of type T.
type List[T any] struct {
	head *Link[T]
	tail *Link[T]
}

// New constructs an empty list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// PeekHead returns the list's head link, or nil if the list is empty.
func (l *List[T]) PeekHead() *Link[T] {
	return l.head
}

// PeekTail returns the list's tail link, or nil if the list is empty.
func (l *List[T]) PeekTail() *Link[T] {
	return l.tail
}

// PushHead inserts value at the front of the list and returns its link.
func (l *List[T]) PushHead(value T) *Link[T] {
	link := &Link[T]{list: l, next: l.head, value: value}
	if l.head != nil {
		l.head.prev = link
	}
	l.head = link
	if l.tail == nil {
		l.tail = link
	}
	return link
}

// PushTail inserts value at the back of the list and returns its link.
func (l *List[T]) PushTail(value T) *Link[T] {
	link := &Link[T]{list: l, prev: l.tail, value: value}
	if l.tail != nil {
		l.tail.next = link
	}
	l.tail = link
	if l.head == nil {
		l.head = link
	}
	return link
}

// Find returns the first link for which f reports true, walking head to
// tail, or nil if none does.
func (l *List[T]) Find(f func(*Link[T]) bool) *Link[T] {
	for link := l.head; link != nil; link = link.next {
		if f(link) {
			return link
		}
	}
	return nil
}

// Map applies f to every link in the list, head to tail. f may mutate
// the link's value but must not unlink it from the list mid-traversal.
func (l *List[T]) Map(f func(*Link[T])) {
	for link := l.head; link != nil; link = link.next {
		f(link)
	}
}

// Link is a single node of a List.
type Link[T any] struct {
	list  *List[T]
	prev  *Link[T]
	next  *Link[T]
	value T
}

// GetList returns the list this link currently belongs to, or nil if it
// has been popped.
func (link *Link[T]) GetList() *List[T] {
	return link.list
}

// GetValue returns the link's value.
func (link *Link[T]) GetValue() T {
	return link.value
}

// SetValue replaces the link's value.
func (link *Link[T]) SetValue(value T) {
	link.value = value
}

// GetPrev returns the previous link, or nil if link is the head.
func (link *Link[T]) GetPrev() *Link[T] {
	return link.prev
}

// GetNext returns the next link, or nil if link is the tail.
func (link *Link[T]) GetNext() *Link[T] {
	return link.next
}

// PopSelf unlinks link from its list, patching up the neighbors and, if
// link was the head or tail, the list's own pointers.
func (link *Link[T]) PopSelf() {
	if link.prev == nil {
		link.list.head = link.next
	} else {
		link.prev.next = link.next
	}
	if link.next == nil {
		link.list.tail = link.prev
	} else {
		link.next.prev = link.prev
	}
	link.list = nil
	link.prev = nil
	link.next = nil
}
