// Package service defines the backend-agnostic interface for shopping list operations.
package service

import (
	"context"

	"ezshop/internal/settings"
)

// Service defines the operations the CLI and the TUI perform.
// Commands never touch the key-value store directly.
type Service interface {
	// ListLists returns all lists in creation order, each with its item
	// summaries derived from the list's items.
	ListLists(ctx context.Context) ([]List, error)

	// ResolveList finds a list by name (case-insensitive, trimmed).
	// Returns ErrNotFound or ErrAmbiguous.
	ResolveList(ctx context.Context, name string) (List, error)

	// GetList returns the list with the given id or ErrNotFound.
	GetList(ctx context.Context, listID string) (List, error)

	// CreateList validates name and creates a list with a fresh id.
	// Returns ErrExists if another list already has the name.
	CreateList(ctx context.Context, name string) (List, error)

	// RenameList changes the name of a list.
	RenameList(ctx context.Context, listID, name string) error

	// DeleteList removes a list together with its items.
	DeleteList(ctx context.Context, listID string) error

	// ListItems returns the items of a list in insertion order.
	ListItems(ctx context.Context, listID string) ([]Item, error)

	// AddItem validates item, assigns an id when it has none and appends it.
	AddItem(ctx context.Context, listID string, item Item) (Item, error)

	// UpdateItem replaces the item with the same id. Returns ErrNotFound if
	// the list or the item does not exist.
	UpdateItem(ctx context.Context, listID string, item Item) error

	// DeleteItem removes an item. Returns ErrNotFound if it does not exist.
	DeleteItem(ctx context.Context, listID, itemID string) error

	// SaveItems replaces the items of a list. Once it returns, the list's
	// summaries as seen by ListLists and GetList equal Summarize(items).
	SaveItems(ctx context.Context, listID string, items []Item) error

	// LoadSettings returns the stored settings, defaulting missing values.
	LoadSettings(ctx context.Context) (settings.Settings, error)

	// SaveSettings stores s.
	SaveSettings(ctx context.Context, s settings.Settings) error

	// OrphanedLedgers returns the ids of item sets whose list no longer exists.
	OrphanedLedgers(ctx context.Context) ([]string, error)

	// DropLedger removes the orphaned items of listID.
	DropLedger(ctx context.Context, listID string) error
}
