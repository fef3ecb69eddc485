package method

import (
	"errors"
	"log/slog"
	"slices"
)

var errNilRecord = errors.New("nil record")

// Groups returns implementations of callable grouped by defining location. Records are
// restricted to module and, when exact is set, to signatures present in class with the
// leading slot stripped. Empty groups are dropped; groups are ordered by location.
func Groups(src Source, callable string, class Class, module string, exact bool) ([]*Group, error) {
	records, err := Collect(src, callable, class)
	if err != nil {
		return nil, err
	}
	groupings, err := GroupBy(records, recordLocation, CompareLocations)
	if err != nil {
		return nil, err
	}
	result := make([]*Group, 0, len(groupings))
	for _, grouping := range groupings {
		var members []*Record
		for _, record := range grouping.Items {
			if record.Module != module {
				continue
			}
			if !class.Matches(record.Signature.Arguments(), exact) {
				continue
			}
			members = append(members, record)
		}
		if len(members) == 0 {
			continue
		}
		result = append(result, &Group{Location: members[0].Location(), Records: members})
	}
	slices.SortStableFunc(result, func(a, b *Group) int {
		return CompareLocations(a.First().Location(), b.First().Location())
	})
	return result, nil
}

func recordLocation(record *Record) (Location, error) {
	if record == nil {
		return Location{}, errNilRecord
	}
	return record.Location(), nil
}

// Catalog groups implementations read from a Source
type Catalog struct {
	source Source
	logger *slog.Logger
}

// Option configures a Catalog
type Option func(c *Catalog)

// WithLogger sets the catalog logger
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog creates a catalog over source
func NewCatalog(source Source, opts ...Option) *Catalog {
	ret := &Catalog{source: source, logger: slog.Default()}
	for _, opt := range opts {
		opt(ret)
	}
	return ret
}

// Groups returns the location groups of callable, see Groups
func (c *Catalog) Groups(callable string, class Class, module string, exact bool) ([]*Group, error) {
	groups, err := Groups(c.source, callable, class, module, exact)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("grouped implementations",
		"callable", callable,
		"class", class.String(),
		"module", module,
		"exact", exact,
		"groups", len(groups))
	return groups, nil
}
