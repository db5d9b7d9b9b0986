package register

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Write describes a single software store into a File.
type Write struct {
	Register int
	Old      uint32
	New      uint32
}

// Observer is notified after every software store.
type Observer func(w Write)

type Option func(f *File)

// WithLock configures the write-protection register. Unlock stores keys into
// word in order, Lock stores zero.
func WithLock(word int, keys ...uint32) Option {
	return func(f *File) {
		f.lockWord = word
		f.lockKeys = keys
	}
}

// WithProtected marks words that can only be written between Unlock and Lock.
func WithProtected(words ...int) Option {
	return func(f *File) {
		for _, w := range words {
			f.protected[w] = true
		}
	}
}

// File is an explicit register array. Software stores go through Set and
// Write, which honour write protection and notify observers. Poke models the
// hardware side and bypasses both.
//
// File is not safe for concurrent use.
type File struct {
	words     []uint32
	protected map[int]bool
	lockWord  int
	lockKeys  []uint32
	unlocked  bool
	observers []*Observer
}

func NewFile(n int, options ...Option) *File {
	f := &File{
		words:     make([]uint32, n),
		protected: map[int]bool{},
		lockWord:  -1,
	}
	for _, option := range options {
		option(f)
	}

	// Without a lock register there is nothing to protect against.
	f.unlocked = f.lockWord < 0
	return f
}

func (f *File) Len() int {
	return len(f.words)
}

func (f *File) Read(index int) uint32 {
	return f.words[index]
}

func (f *File) Get(field Field) uint32 {
	return Get(field, f.words)
}

// Set performs a checked read-modify-write of field.
func (f *File) Set(field Field, v uint32) error {
	if err := f.writable(field.Register); err != nil {
		return err
	}

	old := f.words[field.Register]
	if err := Set(field, v, f.words); err != nil {
		return err
	}

	f.notify(Write{Register: field.Register, Old: old, New: f.words[field.Register]})
	return nil
}

// Write stores a whole word.
func (f *File) Write(index int, v uint32) error {
	if err := f.writable(index); err != nil {
		return err
	}

	old := f.words[index]
	f.words[index] = v
	f.notify(Write{Register: index, Old: old, New: v})
	return nil
}

// Poke stores a word from the hardware side.
func (f *File) Poke(index int, v uint32) {
	f.words[index] = v
}

// PokeField stores a field from the hardware side.
func (f *File) PokeField(field Field, v uint32) {
	// Hardware never produces values wider than its own fields.
	_ = Set(field, v&field.Max(), f.words)
}

// Snapshot returns a copy of every word.
func (f *File) Snapshot() []uint32 {
	return slices.Clone(f.words)
}

// Observe registers o and returns a function removing it again.
func (f *File) Observe(o Observer) (cancel func()) {
	p := &o
	f.observers = append(f.observers, p)
	return func() {
		if i := slices.Index(f.observers, p); i >= 0 {
			f.observers = slices.Delete(f.observers, i, i+1)
		}
	}
}

func (f *File) Locked() bool {
	return !f.unlocked
}

func (f *File) Unlock() {
	if f.lockWord < 0 {
		return
	}

	for _, key := range f.lockKeys {
		f.store(f.lockWord, key)
	}

	// The lock register reads back 1 while writes are enabled.
	f.words[f.lockWord] = 1
	f.unlocked = true
}

func (f *File) Lock() {
	if f.lockWord < 0 {
		return
	}

	f.store(f.lockWord, 0)
	f.unlocked = false
}

// Protected runs fn with write protection lifted and restores it afterwards,
// whether or not fn fails. Protected sections do not nest.
func (f *File) Protected(fn func() error) error {
	if f.lockWord < 0 {
		return fn()
	}

	if f.unlocked {
		return ErrNotReentrant
	}

	f.Unlock()
	defer f.Lock()
	return fn()
}

func (f *File) writable(index int) error {
	if index < 0 || index >= len(f.words) {
		return fmt.Errorf("%w: %d", ErrNoRegister, index)
	}

	if f.protected[index] && !f.unlocked {
		return fmt.Errorf("%w: r%d", ErrLocked, index)
	}
	return nil
}

func (f *File) store(index int, v uint32) {
	old := f.words[index]
	f.words[index] = v
	f.notify(Write{Register: index, Old: old, New: v})
}

func (f *File) notify(w Write) {
	for _, o := range f.observers {
		(*o)(w)
	}
}
