package render

import (
	"sync"
	"testing"
)

func TestPoolGetAndPut(t *testing.T) {
	p := newRendererPool()

	opts := DefaultOptions()
	r1, err := p.get(opts)
	if err != nil || r1 == nil {
		t.Fatalf("get() = %v, %v", r1, err)
	}
	p.put(opts, r1)

	opts2 := DefaultOptions().WithWidth(100)
	r2, err := p.get(opts2)
	if err != nil || r2 == nil {
		t.Fatalf("get() = %v, %v", r2, err)
	}
	p.put(opts2, r2)

	if p.size() != 2 {
		t.Errorf("expected pool count 2, got %d", p.size())
	}

	// Same options share a pool
	r3, _ := p.get(DefaultOptions())
	p.put(DefaultOptions(), r3)
	if p.size() != 2 {
		t.Errorf("expected pool count 2 after reuse, got %d", p.size())
	}

	p.reset()
	if p.size() != 0 {
		t.Errorf("expected pool count 0 after reset, got %d", p.size())
	}
}

func TestPoolBoundedByResizes(t *testing.T) {
	p := newRendererPool()

	for w := MinWidth; w < MinWidth+maxPools*2; w++ {
		p.poolFor(DefaultOptions().WithWidth(w))
		if p.size() > maxPools {
			t.Fatalf("pool count %d exceeds %d", p.size(), maxPools)
		}
	}
}

func TestPutNil(t *testing.T) {
	p := newRendererPool()
	p.put(DefaultOptions(), nil)
	if p.size() != 0 {
		t.Error("put(nil) should not create a pool")
	}
}

func TestPoolConcurrency(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions()
	var wg sync.WaitGroup
	errs := make(chan error, 50)

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := Markdown("# Dishwasher rack wheel", opts); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent render error: %v", err)
	}
	if CacheSize() != 1 {
		t.Errorf("expected pool count 1 after concurrent access, got %d", CacheSize())
	}
}
