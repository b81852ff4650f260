package factory

import (
	"github.com/mcoot/upmpoly/internal/storage/memory"
	"github.com/mcoot/upmpoly/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MemoryStorage is the concrete store behind App.Storage
	MemoryStorage *memory.Storage
}

// NewTestApp creates an App backed by in-memory storage with logging discarded
func NewTestApp() *TestApp {
	store := memory.New()
	app := newWithDependencies(store, testutil.NopLogger())

	return &TestApp{
		App:           app,
		MemoryStorage: store,
	}
}
