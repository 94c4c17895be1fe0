package local

import (
	"context"

	"go.uber.org/zap"

	"ezshop/internal/kv"
	"ezshop/internal/records"
	"ezshop/internal/service"
)

// ledger holds the items of every list, one array per list under
// service.ItemsKey. It is the only place items are stored.
type ledger struct {
	store kv.Store
	repo  *records.Repository[service.Item]
}

func newLedger(store kv.Store, log *zap.Logger) ledger {
	return ledger{store: store, repo: records.New[service.Item](store, log)}
}

func (l ledger) items(ctx context.Context, listID string) ([]service.Item, error) {
	return l.repo.Read(ctx, service.ItemsKey(listID))
}

func (l ledger) add(ctx context.Context, listID string, it service.Item) error {
	return l.repo.Create(ctx, service.ItemsKey(listID), it)
}

func (l ledger) update(ctx context.Context, listID string, it service.Item) error {
	return l.repo.Update(ctx, service.ItemsKey(listID), it, idField)
}

func (l ledger) remove(ctx context.Context, listID, itemID string) error {
	return l.repo.Delete(ctx, service.ItemsKey(listID), itemID, idField)
}

func (l ledger) replace(ctx context.Context, listID string, items []service.Item) error {
	return l.repo.Replace(ctx, service.ItemsKey(listID), items)
}

func (l ledger) drop(ctx context.Context, listID string) error {
	return l.store.Remove(ctx, service.ItemsKey(listID))
}

// listIDs returns the ids of every list that has an items key.
func (l ledger) listIDs(ctx context.Context) ([]string, error) {
	keys, err := l.store.Keys(ctx)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, k := range keys {
		if id, ok := service.ListIDFromKey(k); ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}
