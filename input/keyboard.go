// Package input tracks held keys for the input system and adapts the
// ebiten and terminal front-ends to it.
package input

import (
	"slices"
	"time"
)

// Keyboard is the set of currently held keys, named like "ArrowLeft" or
// "r". A key is held until released, or until its expiry time when pressed
// with PressFor.
type Keyboard struct {
	held map[string]time.Time
}

// NewKeyboard returns a keyboard with no keys held.
func NewKeyboard() *Keyboard {
	return &Keyboard{held: make(map[string]time.Time)}
}

// Press holds key until Release.
func (k *Keyboard) Press(key string) {
	k.held[key] = time.Time{}
}

// PressFor holds key until the given time unless pressed again. Front-ends
// that never see key-up events use it with a short hold window.
func (k *Keyboard) PressFor(key string, until time.Time) {
	if exp, ok := k.held[key]; ok && exp.IsZero() {
		return
	}
	k.held[key] = until
}

// Release lets go of key whether it was pressed with Press or PressFor.
func (k *Keyboard) Release(key string) {
	delete(k.held, key)
}

// ReleaseAll lets go of every held key.
func (k *Keyboard) ReleaseAll() {
	clear(k.held)
}

// Expire releases every timed key whose hold ended at or before now.
func (k *Keyboard) Expire(now time.Time) {
	for key, until := range k.held {
		if !until.IsZero() && !until.After(now) {
			delete(k.held, key)
		}
	}
}

// IsKeyPressed reports whether key is held. Timed keys count until Expire
// removes them.
func (k *Keyboard) IsKeyPressed(key string) bool {
	_, ok := k.held[key]
	return ok
}

// Held returns the held keys in sorted order.
func (k *Keyboard) Held() []string {
	keys := make([]string, 0, len(k.held))
	for key := range k.held {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	return keys
}
