package domain

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// interestSeparator is the storage delimiter for interest tags
const interestSeparator = ","

// Interests is a set of interest tags such as "Science" or "Math".
//
// Tags are trimmed, empty tags are dropped and duplicates collapse to their
// first occurrence. Comparison is exact and case-sensitive. The slice form
// keeps first-seen order so that responses are stable.
type Interests []string

// NewInterests normalizes the given tags into a set. A tag holding the
// separator is split, so the set reads back unchanged from storage.
func NewInterests(tags ...string) Interests {
	set := make(Interests, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))

	for _, raw := range tags {
		for _, tag := range strings.Split(raw, interestSeparator) {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if _, dup := seen[tag]; dup {
				continue
			}
			seen[tag] = struct{}{}
			set = append(set, tag)
		}
	}

	return set
}

// ParseInterests splits a comma-joined tag list
func ParseInterests(raw string) Interests {
	return NewInterests(raw)
}

// IsEmpty reports whether the set holds no tags
func (in Interests) IsEmpty() bool {
	return len(in) == 0
}

// Contains reports whether tag is a member of the set
func (in Interests) Contains(tag string) bool {
	for _, t := range in {
		if t == tag {
			return true
		}
	}
	return false
}

// Overlaps reports whether the two sets share at least one tag.
// An empty set overlaps nothing.
func (in Interests) Overlaps(other Interests) bool {
	if len(in) == 0 || len(other) == 0 {
		return false
	}

	small, large := in, other
	if len(small) > len(large) {
		small, large = large, small
	}

	index := make(map[string]struct{}, len(large))
	for _, tag := range large {
		index[tag] = struct{}{}
	}
	for _, tag := range small {
		if _, ok := index[tag]; ok {
			return true
		}
	}
	return false
}

// String returns the comma-joined storage form
func (in Interests) String() string {
	return strings.Join(in, interestSeparator)
}

// Value implements driver.Valuer
func (in Interests) Value() (driver.Value, error) {
	return in.String(), nil
}

// Scan implements sql.Scanner. NULL scans to the empty set.
func (in *Interests) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*in = Interests{}
	case string:
		*in = ParseInterests(v)
	case []byte:
		*in = ParseInterests(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Interests", src)
	}
	return nil
}
