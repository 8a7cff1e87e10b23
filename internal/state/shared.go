package state

import "sync"

// Shared guards a Scene for collaborators that run on several goroutines,
// such as the viewer and the websocket transport.
type Shared struct {
	mu    sync.Mutex
	scene *Scene
	subs  []func()
}

func NewShared(s *Scene) *Shared {
	return &Shared{scene: s}
}

// Do runs fn with exclusive access to the scene. fn must not keep the
// scene or call back into the Shared.
func (sh *Shared) Do(fn func(s *Scene)) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	fn(sh.scene)
}

// Update is Do followed by a change notification to every subscriber.
func (sh *Shared) Update(fn func(s *Scene)) {
	sh.mu.Lock()
	fn(sh.scene)
	subs := append([]func(){}, sh.subs...)
	sh.mu.Unlock()

	for _, notify := range subs {
		notify()
	}
}

// OnChange registers fn to run, outside the lock, after every Update.
func (sh *Shared) OnChange(fn func()) {
	sh.mu.Lock()
	defer sh.mu.Unlock()
	sh.subs = append(sh.subs, fn)
}
