package section

import (
	"sort"
	"sync"

	"github.com/goliatone/go-scholarform/pkg/model"
)

// Listener receives the new state of a section after every accepted change.
// Listeners run synchronously on the goroutine that applied the change, in
// the order the changes were applied. A listener must not change the section
// that notified it.
type Listener func(name Name, state model.State)

// Controller is the type-erased view of a section used by sessions and
// renderers.
type Controller interface {
	Name() Name
	State() model.State
	Apply(p Patch) error
	Reset()
	Subscribe(l Listener) (unsubscribe func())
}

type listeners struct {
	mu     sync.Mutex
	nextID int
	items  map[int]Listener
}

func (l *listeners) add(fn Listener) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.items == nil {
		l.items = make(map[int]Listener)
	}
	id := l.nextID
	l.nextID++
	l.items[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.items, id)
		l.mu.Unlock()
	}
}

func (l *listeners) notify(name Name, state model.State) {
	l.mu.Lock()
	ids := make([]int, 0, len(l.items))
	for id := range l.items {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fns := make([]Listener, 0, len(ids))
	for _, id := range ids {
		fns = append(fns, l.items[id])
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(name, state)
	}
}

// Record controls a scalar section such as personal info or essays.
type Record[T RecordState[T]] struct {
	name    Name
	initial T
	limits  Limits

	// writing serialises a change with its notification.
	writing sync.Mutex
	mu      sync.RWMutex
	current T
	subs    listeners
}

// NewRecord returns a controller seeded with initial. Reset restores it.
func NewRecord[T RecordState[T]](name Name, initial T, limits Limits) *Record[T] {
	return &Record[T]{
		name:    name,
		initial: initial,
		limits:  limits,
		current: initial,
	}
}

func (r *Record[T]) Name() Name { return r.name }

// Current returns the current value.
func (r *Record[T]) Current() T {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.current
}

func (r *Record[T]) State() model.State { return r.Current() }

// Update applies p and returns the resulting value. Rejected patches leave
// the value untouched and notify nobody.
func (r *Record[T]) Update(p Patch) (T, error) {
	r.writing.Lock()
	defer r.writing.Unlock()

	r.mu.Lock()
	next, err := ReduceRecord(r.current, p, r.limits)
	if err != nil {
		current := r.current
		r.mu.Unlock()
		return current, err
	}
	r.current = next
	r.mu.Unlock()

	r.subs.notify(r.name, next)
	return next, nil
}

func (r *Record[T]) Apply(p Patch) error {
	_, err := r.Update(p)
	return err
}

// Reset restores the initial value and notifies subscribers.
func (r *Record[T]) Reset() {
	r.writing.Lock()
	defer r.writing.Unlock()

	r.mu.Lock()
	r.current = r.initial
	r.mu.Unlock()
	r.subs.notify(r.name, r.initial)
}

func (r *Record[T]) Subscribe(l Listener) func() { return r.subs.add(l) }

// List controls a repeated section such as academic history.
type List[E EntryState[E]] struct {
	name     Name
	initial  model.Entries[E]
	newEntry func() E
	limits   Limits

	writing sync.Mutex
	mu      sync.RWMutex
	current model.Entries[E]
	subs    listeners
}

// NewList returns a controller seeded with a copy of initial. newEntry builds
// entries appended by Add.
func NewList[E EntryState[E]](name Name, initial model.Entries[E], newEntry func() E, limits Limits) *List[E] {
	return &List[E]{
		name:     name,
		initial:  initial.Clone(),
		newEntry: newEntry,
		limits:   limits,
		current:  initial.Clone(),
	}
}

func (l *List[E]) Name() Name { return l.name }

// Current returns a copy of the current entries.
func (l *List[E]) Current() model.Entries[E] {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.current.Clone()
}

func (l *List[E]) State() model.State { return l.Current() }

// Len reports the number of entries.
func (l *List[E]) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.current)
}

// Update applies p and returns a copy of the resulting entries.
func (l *List[E]) Update(p Patch) (model.Entries[E], error) {
	l.writing.Lock()
	defer l.writing.Unlock()

	l.mu.Lock()
	next, err := ReduceList(l.current, p, l.newEntry, l.limits)
	if err != nil {
		current := l.current.Clone()
		l.mu.Unlock()
		return current, err
	}
	l.current = next
	l.mu.Unlock()

	l.subs.notify(l.name, next.Clone())
	return next.Clone(), nil
}

func (l *List[E]) Apply(p Patch) error {
	_, err := l.Update(p)
	return err
}

// Reset restores the initial entries and notifies subscribers.
func (l *List[E]) Reset() {
	l.writing.Lock()
	defer l.writing.Unlock()

	l.mu.Lock()
	l.current = l.initial.Clone()
	l.mu.Unlock()
	l.subs.notify(l.name, l.initial.Clone())
}

func (l *List[E]) Subscribe(fn Listener) func() { return l.subs.add(fn) }

var (
	_ Controller = (*Record[model.PersonalInfo])(nil)
	_ Controller = (*List[model.AcademicEntry])(nil)
)
