package kvstore

import (
	"container/list"
	"context"
	"sync"
	"time"
)

// Memory is an in-process LRU with per-entry expiry
type Memory struct {
	mu   sync.Mutex
	cap  int
	lst  *list.List
	dict map[string]*list.Element
	now  func() time.Time
}

type entry struct {
	k   string
	v   []byte
	exp time.Time // zero = never
}

// NewMemory returns an LRU holding at most capacity entries
func NewMemory(capacity int) *Memory {
	if capacity < 1 {
		capacity = 1
	}
	return &Memory{cap: capacity, lst: list.New(), dict: make(map[string]*list.Element), now: time.Now}
}

func (c *Memory) Get(_ context.Context, k string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.dict[k]
	if !ok {
		return nil, ErrMiss
	}
	it := e.Value.(entry)
	if !it.exp.IsZero() && !c.now().Before(it.exp) {
		c.lst.Remove(e)
		delete(c.dict, k)
		return nil, ErrMiss
	}
	c.lst.MoveToFront(e)
	out := make([]byte, len(it.v))
	copy(out, it.v)
	return out, nil
}

func (c *Memory) Set(_ context.Context, k string, v []byte, ttl time.Duration) error {
	var exp time.Time
	if ttl > 0 {
		exp = c.now().Add(ttl)
	}
	val := make([]byte, len(v))
	copy(val, v)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		e.Value = entry{k: k, v: val, exp: exp}
		c.lst.MoveToFront(e)
		return nil
	}
	c.dict[k] = c.lst.PushFront(entry{k: k, v: val, exp: exp})
	for c.lst.Len() > c.cap {
		back := c.lst.Back()
		delete(c.dict, back.Value.(entry).k)
		c.lst.Remove(back)
	}
	return nil
}

func (c *Memory) Remove(_ context.Context, k string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.dict[k]; ok {
		c.lst.Remove(e)
		delete(c.dict, k)
	}
	return nil
}

// Len reports the number of entries, expired ones included
func (c *Memory) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lst.Len()
}
