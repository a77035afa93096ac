package export

import "sync"

// stream broadcasts values to any number of subscribers.
// Publishing never blocks: a subscriber that does not drain its channel
// misses values once its buffer is full.
type stream[T any] struct {
	mu   sync.Mutex
	subs map[int]chan T
	next int
}

const streamBuffer = 64

func (s *stream[T]) subscribe() (<-chan T, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs == nil {
		s.subs = make(map[int]chan T)
	}
	id := s.next
	s.next++
	ch := make(chan T, streamBuffer)
	s.subs[id] = ch

	unsubscribe := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if sub, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (s *stream[T]) publish(value T) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, sub := range s.subs {
		select {
		case sub <- value:
		default:
		}
	}
}

// State is the observable generation state of one pipeline:
// whether a generation is running and its progress in [0,1].
//
// Only the owning pipeline mutates a State. Any number of concurrent
// readers may poll IsLoading/Progress or subscribe to the Watch streams.
type State struct {
	mu       sync.RWMutex
	loading  bool
	progress float64

	loadingStream  stream[bool]
	progressStream stream[float64]
}

// NewState returns a State in the reset position (not loading, progress 0).
func NewState() *State {
	return new(State)
}

// IsLoading reports whether a generation is currently running.
func (s *State) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Progress returns the progress of the current or last generation in [0,1].
func (s *State) Progress() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.progress
}

// WatchLoading subscribes to loading changes.
// The returned func unsubscribes and closes the channel.
func (s *State) WatchLoading() (<-chan bool, func()) {
	return s.loadingStream.subscribe()
}

// WatchProgress subscribes to progress updates.
// Within one generation the received values are monotonically
// non-decreasing and end at exactly 1 on success.
// The returned func unsubscribes and closes the channel.
func (s *State) WatchProgress() (<-chan float64, func()) {
	return s.progressStream.subscribe()
}

// begin transitions to (loading, progress 0) if no generation is running.
// It reports false if one is.
func (s *State) begin() bool {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	s.progress = 0
	s.mu.Unlock()

	s.loadingStream.publish(true)
	s.progressStream.publish(0)
	return true
}

// setProgress updates progress, clamped to [0,1] and never decreasing
// within the running generation.
func (s *State) setProgress(progress float64) {
	switch {
	case progress < 0:
		progress = 0
	case progress > 1:
		progress = 1
	}

	s.mu.Lock()
	if progress <= s.progress {
		s.mu.Unlock()
		return
	}
	s.progress = progress
	s.mu.Unlock()

	s.progressStream.publish(progress)
}

// end resets loading to false. Called on every generation exit path.
func (s *State) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()

	s.loadingStream.publish(false)
}
