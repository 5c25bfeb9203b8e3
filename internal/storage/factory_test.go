package storage

import "testing"

func TestNewStoreMemory(t *testing.T) {
	for _, kind := range []string{"", "memory"} {
		store, err := NewStore(kind, "")
		if err != nil {
			t.Fatalf("new store %q: %v", kind, err)
		}
		if _, ok := store.(*MemoryStore); !ok {
			t.Fatalf("expected memory store for %q, got %T", kind, store)
		}
	}
}

func TestNewStoreUnknownKind(t *testing.T) {
	if _, err := NewStore("bolt", ""); err == nil {
		t.Fatal("expected unsupported backend error")
	}
}

func TestCloseIfSupportedOnMemoryStore(t *testing.T) {
	if err := CloseIfSupported(NewMemoryStore()); err != nil {
		t.Fatalf("close: %v", err)
	}
}
