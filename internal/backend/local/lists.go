package local

import (
	"context"

	"go.uber.org/zap"

	"ezshop/internal/kv"
	"ezshop/internal/records"
	"ezshop/internal/service"
)

const idField = "id"

// listRecord is the stored form of a list. Item summaries are not stored;
// an "items" field left by older versions is ignored on read.
type listRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// listIndex is the set of lists under service.ListsKey.
type listIndex struct {
	repo *records.Repository[listRecord]
}

func newListIndex(store kv.Store, log *zap.Logger) listIndex {
	return listIndex{repo: records.New[listRecord](store, log)}
}

func (x listIndex) all(ctx context.Context) ([]listRecord, error) {
	return x.repo.Read(ctx, service.ListsKey)
}

func (x listIndex) get(ctx context.Context, id string) (listRecord, error) {
	lists, err := x.all(ctx)
	if err != nil {
		return listRecord{}, err
	}
	for _, l := range lists {
		if l.ID == id {
			return l, nil
		}
	}
	return listRecord{}, service.ErrNotFound
}

func (x listIndex) add(ctx context.Context, l listRecord) error {
	return x.repo.Create(ctx, service.ListsKey, l)
}

func (x listIndex) update(ctx context.Context, l listRecord) error {
	return x.repo.Update(ctx, service.ListsKey, l, idField)
}

func (x listIndex) remove(ctx context.Context, id string) error {
	return x.repo.Delete(ctx, service.ListsKey, id, idField)
}
