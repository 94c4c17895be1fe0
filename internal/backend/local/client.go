// Package local implements service.Service on top of a kv.Store on this machine.
package local

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ezshop/internal/kv"
	"ezshop/internal/service"
	"ezshop/internal/settings"
)

// Client implements service.Service using a local key-value store.
type Client struct {
	store    kv.Store
	log      *zap.Logger
	lists    listIndex
	items    ledger
	settings *settings.Store
	newID    func() string
}

// New creates a client over store. The client owns store and closes it in Close.
func New(store kv.Store, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		store:    store,
		log:      log,
		lists:    newListIndex(store, log),
		items:    newLedger(store, log),
		settings: settings.NewStore(store, log),
		newID:    uuid.NewString,
	}
}

// SetIDGenerator replaces the id generator (for testing).
func (c *Client) SetIDGenerator(f func() string) {
	c.newID = f
}

// Close closes the underlying store.
func (c *Client) Close() error {
	return c.store.Close()
}

// ListLists returns all lists in creation order with derived item summaries.
func (c *Client) ListLists(ctx context.Context) ([]service.List, error) {
	recs, err := c.lists.all(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]service.List, 0, len(recs))
	for _, r := range recs {
		l, err := c.view(ctx, r)
		if err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, nil
}

// ResolveList finds a list by name (case-insensitive, trimmed).
func (c *Client) ResolveList(ctx context.Context, name string) (service.List, error) {
	name = strings.TrimSpace(name)
	recs, err := c.lists.all(ctx)
	if err != nil {
		return service.List{}, err
	}

	var matches []listRecord
	for _, r := range recs {
		if sameName(r.Name, name) {
			matches = append(matches, r)
		}
	}

	switch len(matches) {
	case 0:
		return service.List{}, fmt.Errorf("list %w: %s", service.ErrNotFound, name)
	case 1:
		return c.view(ctx, matches[0])
	default:
		return service.List{}, fmt.Errorf("%w list name: %s", service.ErrAmbiguous, name)
	}
}

// GetList returns a list by id.
func (c *Client) GetList(ctx context.Context, listID string) (service.List, error) {
	r, err := c.lists.get(ctx, listID)
	if err != nil {
		return service.List{}, err
	}
	return c.view(ctx, r)
}

// CreateList creates a list with a fresh id.
func (c *Client) CreateList(ctx context.Context, name string) (service.List, error) {
	name, err := service.ValidateListName(name)
	if err != nil {
		return service.List{}, err
	}
	if err := c.checkNameFree(ctx, name, ""); err != nil {
		return service.List{}, err
	}

	r := listRecord{ID: c.newID(), Name: name}
	if err := c.lists.add(ctx, r); err != nil {
		return service.List{}, err
	}
	c.log.Debug("list created", zap.String("list", r.ID), zap.String("name", name))
	return service.List{ID: r.ID, Name: r.Name, Items: []service.ItemSummary{}}, nil
}

// RenameList changes the name of a list.
func (c *Client) RenameList(ctx context.Context, listID, name string) error {
	name, err := service.ValidateListName(name)
	if err != nil {
		return err
	}
	r, err := c.lists.get(ctx, listID)
	if err != nil {
		return err
	}
	if err := c.checkNameFree(ctx, name, listID); err != nil {
		return err
	}
	r.Name = name
	return c.lists.update(ctx, r)
}

// DeleteList removes the list and then its items. If removing the items
// fails they are left orphaned for OrphanedLedgers to report.
func (c *Client) DeleteList(ctx context.Context, listID string) error {
	if _, err := c.lists.get(ctx, listID); err != nil {
		return err
	}
	if err := c.lists.remove(ctx, listID); err != nil {
		return err
	}
	if err := c.items.drop(ctx, listID); err != nil {
		c.log.Warn("list deleted but its items were not", zap.String("list", listID), zap.Error(err))
		return err
	}
	c.log.Debug("list deleted", zap.String("list", listID))
	return nil
}

// ListItems returns the items of a list.
func (c *Client) ListItems(ctx context.Context, listID string) ([]service.Item, error) {
	return c.items.items(ctx, listID)
}

// AddItem appends an item to an existing list.
func (c *Client) AddItem(ctx context.Context, listID string, item service.Item) (service.Item, error) {
	item, err := service.ValidateItem(item)
	if err != nil {
		return service.Item{}, err
	}
	if _, err := c.lists.get(ctx, listID); err != nil {
		return service.Item{}, err
	}
	if item.ID == "" {
		item.ID = c.newID()
	}
	if err := c.items.add(ctx, listID, item); err != nil {
		return service.Item{}, err
	}
	c.log.Debug("item added", zap.String("list", listID), zap.String("item", item.ID))
	return item, nil
}

// UpdateItem replaces an existing item.
func (c *Client) UpdateItem(ctx context.Context, listID string, item service.Item) error {
	item, err := service.ValidateItem(item)
	if err != nil {
		return err
	}
	if err := c.requireItem(ctx, listID, item.ID); err != nil {
		return err
	}
	return c.items.update(ctx, listID, item)
}

// DeleteItem removes an existing item.
func (c *Client) DeleteItem(ctx context.Context, listID, itemID string) error {
	if err := c.requireItem(ctx, listID, itemID); err != nil {
		return err
	}
	return c.items.remove(ctx, listID, itemID)
}

// SaveItems overwrites the items of a list. List views derive their
// summaries from the stored items, so no second write is needed.
func (c *Client) SaveItems(ctx context.Context, listID string, items []service.Item) error {
	if _, err := c.lists.get(ctx, listID); err != nil {
		return err
	}
	if err := c.items.replace(ctx, listID, items); err != nil {
		return err
	}
	c.log.Debug("items saved", zap.String("list", listID), zap.Int("count", len(items)))
	return nil
}

// LoadSettings returns the stored settings.
func (c *Client) LoadSettings(ctx context.Context) (settings.Settings, error) {
	return c.settings.Load(ctx)
}

// SaveSettings stores s.
func (c *Client) SaveSettings(ctx context.Context, s settings.Settings) error {
	return c.settings.Save(ctx, s)
}

// OrphanedLedgers returns list ids that have stored items but no list.
func (c *Client) OrphanedLedgers(ctx context.Context) ([]string, error) {
	recs, err := c.lists.all(ctx)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(recs))
	for _, r := range recs {
		known[r.ID] = true
	}

	ids, err := c.items.listIDs(ctx)
	if err != nil {
		return nil, err
	}
	orphans := []string{}
	for _, id := range ids {
		if !known[id] {
			orphans = append(orphans, id)
		}
	}
	return orphans, nil
}

// DropLedger removes the items of a list that no longer exists.
func (c *Client) DropLedger(ctx context.Context, listID string) error {
	_, err := c.lists.get(ctx, listID)
	if err == nil {
		return fmt.Errorf("%w: list %s", service.ErrExists, listID)
	}
	if !errors.Is(err, service.ErrNotFound) {
		return err
	}
	return c.items.drop(ctx, listID)
}

// view builds the List for r, deriving summaries from the stored items.
func (c *Client) view(ctx context.Context, r listRecord) (service.List, error) {
	items, err := c.items.items(ctx, r.ID)
	if err != nil {
		return service.List{}, err
	}
	return service.List{ID: r.ID, Name: r.Name, Items: service.Summarize(items)}, nil
}

// checkNameFree returns ErrExists if a list other than exceptID has name.
func (c *Client) checkNameFree(ctx context.Context, name, exceptID string) error {
	recs, err := c.lists.all(ctx)
	if err != nil {
		return err
	}
	for _, r := range recs {
		if r.ID != exceptID && sameName(r.Name, name) {
			return fmt.Errorf("list %w: %s", service.ErrExists, name)
		}
	}
	return nil
}

func (c *Client) requireItem(ctx context.Context, listID, itemID string) error {
	if _, err := c.lists.get(ctx, listID); err != nil {
		return err
	}
	items, err := c.items.items(ctx, listID)
	if err != nil {
		return err
	}
	for _, it := range items {
		if it.ID == itemID {
			return nil
		}
	}
	return fmt.Errorf("item %w: %s", service.ErrNotFound, itemID)
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

var _ service.Service = (*Client)(nil)
