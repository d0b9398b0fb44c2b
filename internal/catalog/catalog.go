// Package catalog holds the template list shown in the UI: loading it from a
// registry, filtering it and formatting template details.
package catalog

import (
	"context"
	"sort"

	"github.com/steipete/memegrep/internal/model"
)

type Registry interface {
	List(ctx context.Context) ([]model.Template, error)
	Get(ctx context.Context, key string) (model.Template, error)
}

type Renderer interface {
	Render(ctx context.Context, key string, req model.Request) ([]byte, error)
}

// Load lists the registry and returns a view over the templates sorted by key.
func Load(ctx context.Context, reg Registry) (*View, error) {
	tpls, err := reg.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewView(tpls), nil
}

func sortByKey(tpls []model.Template) {
	sort.SliceStable(tpls, func(i, j int) bool {
		return tpls[i].Key < tpls[j].Key
	})
}
