package testbackend

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type collection struct {
	mu      sync.Mutex
	order   []string
	records map[string]map[string]any
}

func newCollection() *collection {
	return &collection{records: make(map[string]map[string]any)}
}

func (c *collection) insert(fields map[string]any) map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now().UTC().Format(time.RFC3339)
	rec := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		rec[k] = v
	}
	id, _ := rec["id"].(string)
	if id == "" {
		id = uuid.NewString()
	}
	rec["id"] = id
	if _, ok := rec["createdAt"]; !ok {
		rec["createdAt"] = now
	}
	rec["updatedAt"] = now

	c.records[id] = rec
	c.order = append(c.order, id)
	return copyRecord(rec)
}

func (c *collection) get(id string) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[id]
	if !ok {
		return nil, false
	}
	return copyRecord(rec), true
}

func (c *collection) update(id string, fields map[string]any) (map[string]any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	rec, ok := c.records[id]
	if !ok {
		return nil, false
	}
	for k, v := range fields {
		if k == "id" || k == "createdAt" {
			continue
		}
		rec[k] = v
	}
	rec["updatedAt"] = time.Now().UTC().Format(time.RFC3339)
	return copyRecord(rec), true
}

func (c *collection) remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.records[id]; !ok {
		return false
	}
	delete(c.records, id)
	for i, oid := range c.order {
		if oid == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

func (c *collection) all() []map[string]any {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]map[string]any, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyRecord(c.records[id]))
	}
	return out
}

func copyRecord(rec map[string]any) map[string]any {
	out := make(map[string]any, len(rec))
	for k, v := range rec {
		out[k] = v
	}
	return out
}
