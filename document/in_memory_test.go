package document

import (
	"fmt"
	"sync"
	"testing"

	"github.com/hupe1980/deepagent/core"
)

// Interface compliance (compile-time assertion)
var _ core.DocumentStore = (*InMemoryStore)(nil)

func TestInMemoryStore_SaveLoadIsolation(t *testing.T) {
	store := NewInMemoryStore()
	docs := core.Documents{"plans/a/plan.json": "v1"}
	if err := store.Save("s1", docs); err != nil {
		t.Fatalf("save: %v", err)
	}
	// mutate original map
	docs["plans/a/plan.json"] = "mutated"
	out, err := store.Load("s1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if out["plans/a/plan.json"] != "v1" { // should not reflect mutation
		t.Fatalf("expected 'v1', got %q", out["plans/a/plan.json"])
	}
	// mutate returned map
	out["plans/a/plan.json"] = "x"
	out2, _ := store.Load("s1")
	if out2["plans/a/plan.json"] != "v1" {
		t.Fatalf("expected isolation, got %q", out2["plans/a/plan.json"])
	}
}

func TestInMemoryStore_UnknownSessionIsEmpty(t *testing.T) {
	store := NewInMemoryStore()
	docs, err := store.Load("nope")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if docs == nil || len(docs) != 0 {
		t.Fatalf("expected empty non-nil documents, got %v", docs)
	}
}

func TestInMemoryStore_Concurrency(t *testing.T) {
	store := NewInMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			session := fmt.Sprintf("s%d", i%10)
			if err := store.Save(session, core.Documents{"doc": "data"}); err != nil {
				t.Errorf("save err: %v", err)
			}
			_, _ = store.Load(session)
		}()
	}
	wg.Wait()
	docs, err := store.Load("s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(docs) == 0 {
		t.Fatalf("expected documents, got 0")
	}
}
