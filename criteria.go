package catalogo

import "strings"

// PageSize is the number of records in a result page.
const PageSize = 24

// TypeFilter restricts a query to one category.
type TypeFilter string

// TypeFilter constants.
const (
	TypeAll     TypeFilter = "ALL"
	TypeGood    TypeFilter = TypeFilter(CategoryGood)
	TypeService TypeFilter = TypeFilter(CategoryService)
	TypeWork    TypeFilter = TypeFilter(CategoryWork)
)

// ParseTypeFilter parses a type filter. Matching is case-insensitive and an
// empty string or "TODOS" means TypeAll.
func ParseTypeFilter(s string) (TypeFilter, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "", "ALL", "TODOS":
		return TypeAll, nil
	case "B":
		return TypeGood, nil
	case "S":
		return TypeService, nil
	case "O":
		return TypeWork, nil
	}
	return "", Errorf(EINVALID, "unknown type filter %q", s)
}

// Matches reports whether a record of the given category passes the filter.
func (f TypeFilter) Matches(c Category) bool {
	if f == TypeAll || f == "" {
		return true
	}
	return Category(f) == c
}

// Selection holds the hierarchical category filters. Group is the coarsest
// level and Family the finest; a value is only meaningful below its parents.
type Selection struct {
	Group  string `json:"group"`
	Class  string `json:"class"`
	Family string `json:"family"`
}

// WithGroup returns the selection scoped to group. Class and family are
// cleared because they belong to the previous group.
func (s Selection) WithGroup(group string) Selection {
	return Selection{Group: group}
}

// WithClass returns the selection scoped to class within the current group.
// Family is cleared. Without a group the class is dropped.
func (s Selection) WithClass(class string) Selection {
	if s.Group == "" {
		return Selection{}
	}
	return Selection{Group: s.Group, Class: class}
}

// WithFamily returns the selection scoped to family within the current
// group and class. Without a class the family is dropped.
func (s Selection) WithFamily(family string) Selection {
	if s.Group == "" || s.Class == "" {
		return Selection{Group: s.Group, Class: s.Class}
	}
	return Selection{Group: s.Group, Class: s.Class, Family: family}
}

// Criteria is a request for one page of records.
type Criteria struct {
	SearchTerm string     `json:"searchTerm"`
	Type       TypeFilter `json:"type"`
	Selection
	Page int `json:"page"`
}

// Validate returns an error if the criteria contains invalid fields.
func (c *Criteria) Validate() error {
	if c.Page < 1 {
		return Errorf(EINVALID, "page must be a positive integer")
	}
	switch c.Type {
	case "", TypeAll, TypeGood, TypeService, TypeWork:
	default:
		return Errorf(EINVALID, "unknown type filter %q", c.Type)
	}
	return nil
}

// Term returns the search term with surrounding whitespace removed.
func (c *Criteria) Term() string {
	return strings.TrimSpace(c.SearchTerm)
}

// Offset returns the number of matches preceding the requested page.
func (c *Criteria) Offset() int {
	return (c.Page - 1) * PageSize
}

// Page is one page of query results.
type Page struct {
	Number  int       `json:"number"`
	Records []*Record `json:"records"`
}

// HasNext reports whether another page may follow. A page shorter than
// PageSize is the last one.
func (p *Page) HasNext() bool {
	return len(p.Records) == PageSize
}
