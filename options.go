package catalogo

import "context"

// FilterOptions holds the choices for the cascading category filters.
type FilterOptions struct {
	Groups   []string `json:"groups"`
	Classes  []string `json:"classes"`
	Families []string `json:"families"`
}

// OptionResolver derives the distinct values of the category hierarchy.
// Every list is sorted ascending and free of duplicates.
type OptionResolver interface {
	// TopLevelGroups returns every group name.
	TopLevelGroups(ctx context.Context) ([]string, error)

	// ClassesForGroup returns the class names observed under group.
	ClassesForGroup(ctx context.Context, group string) ([]string, error)

	// FamiliesForGroupAndClass returns the family names observed under
	// group and class.
	FamiliesForGroupAndClass(ctx context.Context, group, class string) ([]string, error)

	// Options returns the lists scoped to the selection. Classes are empty
	// without a group and families are empty without a group and class.
	Options(ctx context.Context, sel Selection) (*FilterOptions, error)
}

// QueryEngine resolves one page of results for a set of criteria.
type QueryEngine interface {
	Resolve(ctx context.Context, c Criteria) (*Page, error)
}
