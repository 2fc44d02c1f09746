// Package client implements the doubly-linked client list that backs
// one workspace's managed windows.
package client

import "github.com/nireo/stupidwm/internal/display"

// Node is one managed window in a List. The previous/next pointers are
// weak siblings; neither Node owns the other. The owning List holds the
// spine via Head.
type Node struct {
	Window display.WindowID
	prev   *Node
	next   *Node
}

// Prev returns the preceding node, or nil if n is the head.
func (n *Node) Prev() *Node { return n.prev }

// Next returns the following node, or nil if n is the tail.
func (n *Node) Next() *Node { return n.next }

// List is an ordered sequence of Nodes plus a focus cursor. Head is the
// master; subsequent nodes are the stack in insertion order.
//
// Invariant: Focused is either a member of the list or nil, and is nil
// iff the list is empty.
type List struct {
	Head    *Node
	Focused *Node
}

// Append allocates a node at the tail and focuses it.
//
// Go's runtime has no recoverable allocation-failure path the caller
// could act on (unlike the source's malloc-returns-NULL OutOfMemory
// case); an allocation failure here surfaces as a runtime-fatal panic
// the process cannot sensibly continue past, so Append has no error
// return.
func (l *List) Append(w display.WindowID) *Node {
	n := &Node{Window: w}
	if l.Head == nil {
		l.Head = n
	} else {
		tail := l.Head
		for tail.next != nil {
			tail = tail.next
		}
		tail.next = n
		n.prev = tail
	}
	l.Focused = n
	return n
}

// Remove unlinks the first node whose Window matches w, if any. If the
// removed node was focused, the new focus becomes its previous sibling,
// or else its next sibling, or else nil.
//
// The source this is grounded on dereferences cl->next->prev after
// already establishing cl->next is nil in the tail-removal branch, a
// use-after-null-check. Unlinking here goes through the ordinary
// prev/next rewire below and never dereferences a nil sibling.
func (l *List) Remove(w display.WindowID) {
	n := l.Find(w)
	if n == nil {
		return
	}

	if n.prev != nil {
		n.prev.next = n.next
	} else {
		l.Head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	}

	if l.Focused == n {
		switch {
		case n.prev != nil:
			l.Focused = n.prev
		case n.next != nil:
			l.Focused = n.next
		default:
			l.Focused = nil
		}
	}

	n.prev, n.next = nil, nil
}

// Find returns the first node carrying window w, or nil.
func (l *List) Find(w display.WindowID) *Node {
	for n := l.Head; n != nil; n = n.next {
		if n.Window == w {
			return n
		}
	}
	return nil
}

// Len returns the number of nodes in the list.
func (l *List) Len() int {
	n := 0
	for c := l.Head; c != nil; c = c.next {
		n++
	}
	return n
}
