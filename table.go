package assets

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrInvalidRoute   = errors.New("invalid route")
	ErrDuplicateRoute = errors.New("duplicate route")
)

// Table is an immutable set of files keyed by route.
// It is safe for concurrent use without locking since nothing mutates it
// after NewTable returns.
type Table struct {
	files   []File
	byRoute map[string]int
}

// NewTable validates the files and returns them as a table ordered by route.
// Files without a content hash get one computed, and files without a MIME
// type get DefaultMimeType.
func NewTable(files ...File) (*Table, error) {
	t := &Table{
		files:   make([]File, len(files)),
		byRoute: make(map[string]int, len(files)),
	}
	copy(t.files, files)
	sort.SliceStable(t.files, func(i, j int) bool {
		return t.files[i].Route < t.files[j].Route
	})
	for i := range t.files {
		f := &t.files[i]
		if err := validateRoute(f.Route); err != nil {
			return nil, err
		}
		if _, ok := t.byRoute[f.Route]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateRoute, f.Route)
		}
		if f.ContentHash == "" {
			f.ContentHash = ContentHash(f.Content)
		}
		if f.MimeType == "" {
			f.MimeType = DefaultMimeType
		}
		t.byRoute[f.Route] = i
	}
	return t, nil
}

// MustTable is like NewTable but panics on error.
// It is meant for tables declared in generated code.
func MustTable(files ...File) *Table {
	t, err := NewTable(files...)
	if err != nil {
		panic(err)
	}
	return t
}

// validateRoute checks that a route can be registered as a static router path.
func validateRoute(route string) error {
	if !strings.HasPrefix(route, "/") {
		return fmt.Errorf("%w: %q does not start with a slash", ErrInvalidRoute, route)
	}
	if route == "/" {
		return fmt.Errorf("%w: %q has no file name", ErrInvalidRoute, route)
	}
	// these would be interpreted as URL parameters or wildcards by the router
	if strings.ContainsAny(route, "{}*") {
		return fmt.Errorf("%w: %q contains a pattern character", ErrInvalidRoute, route)
	}
	return nil
}

// Get returns the file for the given route, e.g. `/index.html`.
func (t *Table) Get(route string) (File, bool) {
	i, ok := t.byRoute[route]
	if !ok {
		return File{}, false
	}
	return t.files[i], true
}

// Routes returns all routes in order.
func (t *Table) Routes() []string {
	routes := make([]string, len(t.files))
	for i, f := range t.files {
		routes[i] = f.Route
	}
	return routes
}

// Files returns a copy of all files in route order.
func (t *Table) Files() []File {
	files := make([]File, len(t.files))
	copy(files, t.files)
	return files
}

// Each calls the given callback for each file in route order.
func (t *Table) Each(cb func(File)) {
	for _, f := range t.files {
		cb(f)
	}
}

// Len returns the number of files.
func (t *Table) Len() int {
	return len(t.files)
}

// IsEmpty reports whether the table has no files.
func (t *Table) IsEmpty() bool {
	return t.Len() == 0
}
