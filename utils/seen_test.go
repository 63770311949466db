package utils

import (
	"fmt"
	"sync"
	"testing"
)

func TestSeenSetAddAndContains(t *testing.T) {
	s := NewSeenSet()

	if !s.Add("https://example.test/items/1") {
		t.Error("first Add should return true")
	}
	if s.Add("https://example.test/items/1") {
		t.Error("second Add of same URL should return false")
	}
	if !s.Contains("https://example.test/items/1") {
		t.Error("Contains should report the added URL")
	}
	if s.Size() != 1 {
		t.Errorf("Size() = %d; want 1", s.Size())
	}
}

func TestSeenSetExactKeys(t *testing.T) {
	s := NewSeenSet()
	s.Add("https://example.test/items/1")

	// Links are not normalized: differing query params are distinct.
	if s.Contains("https://example.test/items/1?ref=feed") {
		t.Error("query-param variant should be a distinct entry")
	}
}

func TestSeenSetReset(t *testing.T) {
	s := NewSeenSet()
	s.Add("https://example.test/items/1")
	s.Add("https://example.test/items/2")

	s.Reset()

	if s.Size() != 0 {
		t.Errorf("Size() after Reset = %d; want 0", s.Size())
	}
	if !s.Add("https://example.test/items/1") {
		t.Error("URL should count as new again after Reset")
	}
}

func TestSeenSetConcurrentAdd(t *testing.T) {
	s := NewSeenSet()
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.Add(fmt.Sprintf("https://example.test/items/%d", n%10))
		}(i)
	}
	wg.Wait()

	if s.Size() != 10 {
		t.Errorf("Size() = %d; want 10", s.Size())
	}
}

func TestWorkerPoolSequentialWithOneWorker(t *testing.T) {
	pool := NewWorkerPool(1, 0)

	var mu sync.Mutex
	active, maxActive := 0, 0

	for i := 0; i < 8; i++ {
		pool.Submit(func() {
			mu.Lock()
			active++
			if active > maxActive {
				maxActive = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		})
	}
	pool.Wait()

	if maxActive != 1 {
		t.Errorf("max concurrent jobs = %d; want 1", maxActive)
	}
}
