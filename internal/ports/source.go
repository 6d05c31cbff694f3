package ports

import "context"

// CategorySource answers questions about one category of the remote index
type CategorySource interface {
	// Subcategories returns the names of all direct subcategories,
	// following continuation until the listing is exhausted.
	// Names carry no "Category:" prefix.
	Subcategories(ctx context.Context, name string) ([]string, error)

	// FileCount returns the number of files directly in the category
	FileCount(ctx context.Context, name string) (int, error)
}
