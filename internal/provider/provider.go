package provider

import (
	"context"

	"github.com/wordstash/api/internal/model"
)

// DefaultMaxResults caps related-word lists when the caller does not say.
const DefaultMaxResults = 10

// Adapter is one upstream dictionary integration. Query never fails across
// this boundary: network, parse and validation problems are logged inside the
// adapter and collapse to nil, which the aggregator reads as "this provider
// has nothing for that word". Adapters do not touch the cache.
type Adapter interface {
	ID() model.ProviderID
	Query(ctx context.Context, word string, maxResults int) *model.WordResult
}

// Suggester is implemented by adapters whose upstream offers a lightweight
// autocomplete query. A failing Suggest contributes nothing but must not
// abort sibling providers, so errors are surfaced for logging only.
type Suggester interface {
	Suggest(ctx context.Context, word string, maxResults int) ([]string, error)
}
