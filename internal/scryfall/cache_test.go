package scryfall

import (
	"fmt"
	"sync"
	"testing"
)

func TestCache_GetPut(t *testing.T) {
	c := NewCache(10)

	if got := c.Get("Island"); got != nil {
		t.Errorf("Get on empty cache = %v, want nil", got)
	}

	card := &Card{Name: "Island", TypeLine: "Basic Land — Island"}
	c.Put("Island", card)

	if got := c.Get("Island"); got != card {
		t.Errorf("Get returned %v, want stored card", got)
	}
}

func TestCache_Bounded(t *testing.T) {
	c := NewCache(2)
	c.Put("a", &Card{Name: "a"})
	c.Put("b", &Card{Name: "b"})
	c.Put("c", &Card{Name: "c"})

	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if c.Get("c") != nil {
		t.Error("Insert beyond capacity should be dropped")
	}

	// Updating an existing key still works at capacity.
	updated := &Card{Name: "a", TypeLine: "Instant"}
	c.Put("a", updated)
	if got := c.Get("a"); got != updated {
		t.Error("Update of existing key was dropped")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache(10)
	c.Put("Island", &Card{Name: "Island"})
	c.Invalidate("Island")

	if c.Get("Island") != nil {
		t.Error("Expected nil after Invalidate")
	}
}

func TestCache_Clear(t *testing.T) {
	c := NewCache(10)
	c.Put("a", &Card{Name: "a"})
	c.Put("b", &Card{Name: "b"})
	c.Clear()

	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
}

func TestCache_ConcurrentAccess(t *testing.T) {
	c := NewCache(100)
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			name := fmt.Sprintf("card-%d", n)
			c.Put(name, &Card{Name: name})
			c.Get(name)
		}(i)
	}
	wg.Wait()

	if c.Len() != 10 {
		t.Errorf("Len() = %d, want 10", c.Len())
	}
}
