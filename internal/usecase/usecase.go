package usecase

import "context"

type CatalogUC interface {
	Browse(ctx context.Context, req *BrowseReq) (*BrowseRes, error)
	Search(ctx context.Context, req *SearchReq) (*SearchRes, error)
	Product(ctx context.Context, req *ProductReq) (*ProductRes, error)
	Facets(ctx context.Context) (*FacetsRes, error)
	Categories(ctx context.Context) ([]CategoryInfo, error)
	RecentSearches(ctx context.Context, clientID string) ([]string, error)
	RecentViewed(ctx context.Context, clientID string) ([]string, error)
	InvalidateCatalog()
}
