// Package trie implements a prefix tree over the uppercase letters A to Z.
package trie

import (
	"iter"
	"strings"
)

const (
	minLetter = 'A'
	maxLetter = 'Z'
	alphabet  = maxLetter - minLetter + 1
)

// Node is one letter position in the tree.
type Node struct {
	letter   rune
	children [alphabet]*Node
	// word is set when the path from the root to this node spells a known word.
	word string
}

// Child returns the child for r, or nil.
func (n *Node) Child(r rune) *Node {
	if r < minLetter || r > maxLetter {
		return nil
	}
	return n.children[r-minLetter]
}

// Children yields the existing children in alphabetical order.
func (n *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.children {
			if c == nil {
				continue
			}
			if !yield(c) {
				return
			}
		}
	}
}

// Letter returns the letter this node represents. The root returns 0.
func (n *Node) Letter() rune {
	return n.letter
}

// Word returns the word completed at this node, or "".
func (n *Node) Word() string {
	return n.word
}

// IsWord reports whether the node terminates a known word.
func (n *Node) IsWord() bool {
	return n.word != ""
}

// Trie is a prefix tree of known words. It is safe for concurrent reads once
// all insertions are done.
type Trie struct {
	root  *Node
	count int
}

// New returns a trie holding words.
func New(words ...string) *Trie {
	t := &Trie{root: &Node{}}
	for _, w := range words {
		t.Insert(w)
	}
	return t
}

// Root returns the node for the empty prefix.
func (t *Trie) Root() *Node {
	return t.root
}

// Len returns the number of distinct words.
func (t *Trie) Len() int {
	return t.count
}

// Insert adds word, upper-casing it first. Words containing anything other
// than letters are ignored. It reports whether the word was new.
func (t *Trie) Insert(word string) bool {
	word = strings.ToUpper(strings.TrimSpace(word))
	if !isLetters(word) {
		return false
	}

	node := t.root
	for _, r := range word {
		i := r - minLetter
		if node.children[i] == nil {
			node.children[i] = &Node{letter: r}
		}
		node = node.children[i]
	}
	if node.word != "" {
		return false
	}
	node.word = word
	t.count++
	return true
}

// Find returns the node reached by prefix, or nil.
func (t *Trie) Find(prefix string) *Node {
	node := t.root
	for _, r := range strings.ToUpper(prefix) {
		if node = node.Child(r); node == nil {
			return nil
		}
	}
	return node
}

// Contains reports whether word was inserted.
func (t *Trie) Contains(word string) bool {
	n := t.Find(word)
	return n != nil && n.IsWord()
}

// HasPrefix reports whether any inserted word starts with prefix.
func (t *Trie) HasPrefix(prefix string) bool {
	return t.Find(prefix) != nil
}

func isLetters(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < minLetter || r > maxLetter {
			return false
		}
	}
	return true
}
