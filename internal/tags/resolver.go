package tags

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jonathan/craft-cover/internal/schemas"
	"github.com/tidwall/gjson"
)

// Resolver expands tags found in a directory of tag documents (a data pack's
// tags/item folder). Every tag is read and expanded at most once; results
// are memoized for the resolver's lifetime.
type Resolver struct {
	dir    string
	strict bool

	mu       sync.RWMutex
	resolved map[string][]string
	reads    int
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithStrict validates every tag document against the tag schema before use.
func WithStrict(strict bool) Option {
	return func(r *Resolver) {
		r.strict = strict
	}
}

// NewResolver creates a resolver over the tag documents in dir.
func NewResolver(dir string, opts ...Option) *Resolver {
	r := &Resolver{
		dir:      dir,
		resolved: make(map[string][]string),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Reads returns how many tag documents have been read from disk.
func (r *Resolver) Reads() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reads
}

// Resolve returns the items a tag stands for, in document order with
// duplicates removed. A leading '#' on name is accepted.
func (r *Resolver) Resolve(name string) ([]string, error) {
	name = strings.TrimPrefix(name, "#")

	r.mu.RLock()
	items, ok := r.resolved[r.Path(name)]
	r.mu.RUnlock()
	if ok {
		return items, nil
	}

	// A resolution walks the graph depth first under the write lock, so
	// concurrent callers never expand the same tag twice.
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolve(name, nil)
}

// resolve expands name. stack holds the tags currently being expanded.
// Callers must hold r.mu.
func (r *Resolver) resolve(name string, stack []string) ([]string, error) {
	key := r.Path(name)
	if items, ok := r.resolved[key]; ok {
		return items, nil
	}
	for i, onStack := range stack {
		if r.Path(onStack) == key {
			path := append(append([]string{}, stack[i:]...), name)
			return nil, &CycleError{Path: path}
		}
	}
	stack = append(stack, name)

	values, err := r.readValues(name)
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	add := func(item string) {
		if _, dup := seen[item]; dup {
			return
		}
		seen[item] = struct{}{}
		items = append(items, item)
	}

	for _, v := range values {
		if !strings.HasPrefix(v, "#") {
			add(v)
			continue
		}
		nested, err := r.resolve(v[1:], stack)
		if err != nil {
			return nil, err
		}
		for _, item := range nested {
			add(item)
		}
	}

	r.resolved[key] = items
	return items, nil
}

// Path returns the document path for a tag, which is also its memo key.
// The namespace is ignored:
// "minecraft:planks" and "planks" both map to <dir>/planks.json.
func (r *Resolver) Path(name string) string {
	if i := strings.Index(name, ":"); i >= 0 {
		name = name[i+1:]
	}
	return filepath.Join(r.dir, filepath.FromSlash(name)+".json")
}

// readValues reads the "values" list of a tag document. Entries may be plain
// strings or objects with an "id" field.
func (r *Resolver) readValues(name string) ([]string, error) {
	path := r.Path(name)
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, &TagNotFoundError{Tag: name, Path: path}
	}
	if err != nil {
		return nil, &ResolveError{Tag: name, Message: "failed to read tag file", Cause: err}
	}
	r.reads++

	if !gjson.ValidBytes(content) {
		return nil, &ResolveError{Tag: name, Message: fmt.Sprintf("invalid JSON in %s", path)}
	}
	if r.strict {
		if err := schemas.ValidateDocument(schemas.KindTag, path, content); err != nil {
			return nil, &ResolveError{Tag: name, Message: "schema validation failed", Cause: err}
		}
	}

	list := gjson.GetBytes(content, "values")
	if !list.IsArray() {
		return nil, &ResolveError{Tag: name, Message: "could not find JSON array at path 'values'"}
	}

	var values []string
	for _, v := range list.Array() {
		switch {
		case v.Type == gjson.String:
			values = append(values, v.String())
		case v.IsObject() && v.Get("id").Type == gjson.String:
			values = append(values, v.Get("id").String())
		default:
			return nil, &ResolveError{Tag: name, Message: fmt.Sprintf("unexpected value %s in 'values'", v.Raw)}
		}
	}
	return values, nil
}
