// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"ezshop/internal/service"
	"ezshop/internal/settings"
)

// FakeService is an in-memory implementation of service.Service for testing.
type FakeService struct {
	mu       sync.RWMutex
	lists    []service.List
	items    map[string][]service.Item // listID -> items
	orphans  map[string][]service.Item
	settings settings.Settings
	nextID   int

	// Error injection for testing
	ListListsErr    error
	ResolveListErr  error
	CreateListErr   error
	RenameListErr   error
	DeleteListErr   error
	ListItemsErr    map[string]error // listID -> error
	AddItemErr      error
	UpdateItemErr   error
	DeleteItemErr   error
	SaveItemsErr    error
	LoadSettingsErr error
	SaveSettingsErr error
	OrphansErr      error
}

// NewFakeService creates an empty FakeService with default settings.
func NewFakeService() *FakeService {
	return &FakeService{
		items:        make(map[string][]service.Item),
		orphans:      make(map[string][]service.Item),
		ListItemsErr: make(map[string]error),
		settings:     settings.Settings{Theme: settings.Light, Language: settings.DefaultLanguage},
	}
}

// AddList adds a list to the fake service.
func (f *FakeService) AddList(id, name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lists = append(f.lists, service.List{ID: id, Name: name})
	if f.items[id] == nil {
		f.items[id] = nil
	}
}

// AddItemTo adds an item to a list without validation.
func (f *FakeService) AddItemTo(listID string, item service.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[listID] = append(f.items[listID], item)
}

// AddOrphan adds items whose list does not exist.
func (f *FakeService) AddOrphan(listID string, items ...service.Item) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orphans[listID] = append(f.orphans[listID], items...)
}

// Items returns a copy of the items of a list.
func (f *FakeService) Items(listID string) []service.Item {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]service.Item(nil), f.items[listID]...)
}

// Settings returns the stored settings.
func (f *FakeService) Settings() settings.Settings {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.settings
}

// SetSettings replaces the stored settings.
func (f *FakeService) SetSettings(s settings.Settings) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = s
}

func (f *FakeService) genID(prefix string) string {
	f.nextID++
	return fmt.Sprintf("%s%d", prefix, f.nextID)
}

func (f *FakeService) view(l service.List) service.List {
	l.Items = service.Summarize(f.items[l.ID])
	return l
}

func (f *FakeService) indexOf(listID string) int {
	for i, l := range f.lists {
		if l.ID == listID {
			return i
		}
	}
	return -1
}

// ListLists implements service.Service.
func (f *FakeService) ListLists(ctx context.Context) ([]service.List, error) {
	if f.ListListsErr != nil {
		return nil, f.ListListsErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	result := make([]service.List, len(f.lists))
	for i, l := range f.lists {
		result[i] = f.view(l)
	}
	return result, nil
}

// ResolveList implements service.Service.
func (f *FakeService) ResolveList(ctx context.Context, name string) (service.List, error) {
	if f.ResolveListErr != nil {
		return service.List{}, f.ResolveListErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	nameLower := strings.ToLower(strings.TrimSpace(name))
	var matches []service.List
	for _, l := range f.lists {
		if strings.ToLower(strings.TrimSpace(l.Name)) == nameLower {
			matches = append(matches, l)
		}
	}

	switch len(matches) {
	case 0:
		return service.List{}, fmt.Errorf("list %w: %s", service.ErrNotFound, name)
	case 1:
		return f.view(matches[0]), nil
	default:
		return service.List{}, fmt.Errorf("%w list name: %s", service.ErrAmbiguous, name)
	}
}

// GetList implements service.Service.
func (f *FakeService) GetList(ctx context.Context, listID string) (service.List, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	i := f.indexOf(listID)
	if i < 0 {
		return service.List{}, service.ErrNotFound
	}
	return f.view(f.lists[i]), nil
}

// CreateList implements service.Service.
func (f *FakeService) CreateList(ctx context.Context, name string) (service.List, error) {
	if f.CreateListErr != nil {
		return service.List{}, f.CreateListErr
	}
	name, err := service.ValidateListName(name)
	if err != nil {
		return service.List{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.lists {
		if strings.EqualFold(l.Name, name) {
			return service.List{}, fmt.Errorf("list %w: %s", service.ErrExists, name)
		}
	}
	l := service.List{ID: f.genID("list-"), Name: name, Items: []service.ItemSummary{}}
	f.lists = append(f.lists, service.List{ID: l.ID, Name: l.Name})
	return l, nil
}

// RenameList implements service.Service.
func (f *FakeService) RenameList(ctx context.Context, listID, name string) error {
	if f.RenameListErr != nil {
		return f.RenameListErr
	}
	name, err := service.ValidateListName(name)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(listID)
	if i < 0 {
		return service.ErrNotFound
	}
	f.lists[i].Name = name
	return nil
}

// DeleteList implements service.Service.
func (f *FakeService) DeleteList(ctx context.Context, listID string) error {
	if f.DeleteListErr != nil {
		return f.DeleteListErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(listID)
	if i < 0 {
		return service.ErrNotFound
	}
	f.lists = append(f.lists[:i], f.lists[i+1:]...)
	delete(f.items, listID)
	return nil
}

// ListItems implements service.Service.
func (f *FakeService) ListItems(ctx context.Context, listID string) ([]service.Item, error) {
	if err, ok := f.ListItemsErr[listID]; ok && err != nil {
		return nil, err
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.indexOf(listID) < 0 {
		return append([]service.Item{}, f.orphans[listID]...), nil
	}
	return append([]service.Item{}, f.items[listID]...), nil
}

// AddItem implements service.Service.
func (f *FakeService) AddItem(ctx context.Context, listID string, item service.Item) (service.Item, error) {
	if f.AddItemErr != nil {
		return service.Item{}, f.AddItemErr
	}
	item, err := service.ValidateItem(item)
	if err != nil {
		return service.Item{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexOf(listID) < 0 {
		return service.Item{}, service.ErrNotFound
	}
	if item.ID == "" {
		item.ID = f.genID("item-")
	}
	f.items[listID] = append(f.items[listID], item)
	return item, nil
}

// UpdateItem implements service.Service.
func (f *FakeService) UpdateItem(ctx context.Context, listID string, item service.Item) error {
	if f.UpdateItemErr != nil {
		return f.UpdateItemErr
	}
	item, err := service.ValidateItem(item)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, it := range f.items[listID] {
		if it.ID == item.ID {
			f.items[listID][i] = item
			return nil
		}
	}
	return service.ErrNotFound
}

// DeleteItem implements service.Service.
func (f *FakeService) DeleteItem(ctx context.Context, listID, itemID string) error {
	if f.DeleteItemErr != nil {
		return f.DeleteItemErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items[listID]
	for i, it := range items {
		if it.ID == itemID {
			f.items[listID] = append(items[:i:i], items[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// SaveItems implements service.Service.
func (f *FakeService) SaveItems(ctx context.Context, listID string, items []service.Item) error {
	if f.SaveItemsErr != nil {
		return f.SaveItemsErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexOf(listID) < 0 {
		return service.ErrNotFound
	}
	f.items[listID] = append([]service.Item{}, items...)
	return nil
}

// LoadSettings implements service.Service.
func (f *FakeService) LoadSettings(ctx context.Context) (settings.Settings, error) {
	if f.LoadSettingsErr != nil {
		return settings.Settings{}, f.LoadSettingsErr
	}
	return f.Settings(), nil
}

// SaveSettings implements service.Service.
func (f *FakeService) SaveSettings(ctx context.Context, s settings.Settings) error {
	if f.SaveSettingsErr != nil {
		return f.SaveSettingsErr
	}
	f.SetSettings(s)
	return nil
}

// OrphanedLedgers implements service.Service.
func (f *FakeService) OrphanedLedgers(ctx context.Context) ([]string, error) {
	if f.OrphansErr != nil {
		return nil, f.OrphansErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()
	var ids []string
	for id := range f.orphans {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids, nil
}

// DropLedger implements service.Service.
func (f *FakeService) DropLedger(ctx context.Context, listID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexOf(listID) >= 0 {
		return fmt.Errorf("%w: list %s", service.ErrExists, listID)
	}
	delete(f.orphans, listID)
	return nil
}

var _ service.Service = (*FakeService)(nil)
