package store

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/hupe1980/respool/resource"
)

// Ext is the file extension of resource records.
const Ext = ".res"

// RecordPath returns the blob name of the record for id.
func RecordPath(id resource.ID) string {
	return poolPrefix(id.Pool) + url.PathEscape(id.Name) + Ext
}

// ParsePath is the inverse of RecordPath.
func ParsePath(p string) (resource.ID, bool) {
	pool, file, ok := strings.Cut(p, "/")
	if !ok || strings.Contains(file, "/") {
		return resource.ID{}, false
	}
	file, ok = strings.CutSuffix(file, Ext)
	if !ok {
		return resource.ID{}, false
	}
	pool, err := url.PathUnescape(pool)
	if err != nil || validPool(pool) != nil {
		return resource.ID{}, false
	}
	name, err := url.PathUnescape(file)
	if err != nil || name == "" {
		return resource.ID{}, false
	}
	return resource.NewID(pool, name), true
}

// validPool rejects pool names that would not map to a single directory
// below the storage root.
func validPool(pool string) error {
	switch pool {
	case "":
		return fmt.Errorf("%w: empty pool name", ErrInvalidName)
	case ".", "..":
		return fmt.Errorf("%w: pool name %q", ErrInvalidName, pool)
	}
	return nil
}

func poolPrefix(pool string) string {
	return url.PathEscape(pool) + "/"
}
