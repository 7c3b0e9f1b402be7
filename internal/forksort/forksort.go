// internal/forksort/forksort.go

// Package forksort orders fork records by a column key and tracks the
// toggling sort direction.
package forksort

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"forkfinder/internal/model"
)

// Key names a sortable field of model.ForkRecord.
type Key string

const (
	KeyNone        Key = ""
	KeyName        Key = "name"
	KeyStars       Key = "stars"
	KeyForks       Key = "forks"
	KeyLastUpdated Key = "lastUpdated"
	KeyURL         Key = "url"
	KeyDescription Key = "description"
	KeyOpenIssues  Key = "openIssues"
	KeyWatchers    Key = "watchers"
	KeyCreatedAt   Key = "createdAt"
	KeySize        Key = "size"
	KeyLanguage    Key = "language"
)

// Direction is the order applied by a sort.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

func (d Direction) String() string {
	if d == Descending {
		return "descending"
	}
	return "ascending"
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection accepts "ascending"/"asc" and "descending"/"desc".
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "", "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return Ascending, fmt.Errorf("invalid sort direction %q", s)
}

// State is the active sort. The zero value is {none, ascending}.
type State struct {
	Key       Key       `json:"key"`
	Direction Direction `json:"direction"`
}

// Toggle returns the state after the user selects key: descending when key is
// already active in ascending order, ascending otherwise.
func (s State) Toggle(key Key) State {
	if s.Key == key && s.Direction == Ascending {
		return State{Key: key, Direction: Descending}
	}
	return State{Key: key, Direction: Ascending}
}

// field compares one column. absent is nil for columns that always hold a value.
type field struct {
	absent  func(r *model.ForkRecord) bool
	compare func(a, b *model.ForkRecord) int
}

func stringField(get func(r *model.ForkRecord) string) field {
	return field{compare: func(a, b *model.ForkRecord) int { return strings.Compare(get(a), get(b)) }}
}

func optionalStringField(get func(r *model.ForkRecord) *string) field {
	return field{
		absent:  func(r *model.ForkRecord) bool { return get(r) == nil },
		compare: func(a, b *model.ForkRecord) int { return strings.Compare(*get(a), *get(b)) },
	}
}

func intField(get func(r *model.ForkRecord) int) field {
	return field{compare: func(a, b *model.ForkRecord) int { return cmp.Compare(get(a), get(b)) }}
}

func timeField(get func(r *model.ForkRecord) time.Time) field {
	return field{
		absent:  func(r *model.ForkRecord) bool { return get(r).IsZero() },
		compare: func(a, b *model.ForkRecord) int { return get(a).Compare(get(b)) },
	}
}

var fields = map[Key]field{
	KeyName:        stringField(func(r *model.ForkRecord) string { return r.Name }),
	KeyStars:       intField(func(r *model.ForkRecord) int { return r.Stars }),
	KeyForks:       intField(func(r *model.ForkRecord) int { return r.Forks }),
	KeyLastUpdated: timeField(func(r *model.ForkRecord) time.Time { return r.LastUpdated }),
	KeyURL:         stringField(func(r *model.ForkRecord) string { return r.URL }),
	KeyDescription: optionalStringField(func(r *model.ForkRecord) *string { return r.Description }),
	KeyOpenIssues:  intField(func(r *model.ForkRecord) int { return r.OpenIssues }),
	KeyWatchers:    intField(func(r *model.ForkRecord) int { return r.Watchers }),
	KeyCreatedAt:   timeField(func(r *model.ForkRecord) time.Time { return r.CreatedAt }),
	KeySize:        intField(func(r *model.ForkRecord) int { return r.Size }),
	KeyLanguage:    optionalStringField(func(r *model.ForkRecord) *string { return r.Language }),
}

// ParseKey returns the Key named s.
func ParseKey(s string) (Key, error) {
	k := Key(s)
	if _, ok := fields[k]; !ok {
		return KeyNone, fmt.Errorf("unknown sort key %q", s)
	}
	return k, nil
}

// Keys lists every sortable key in column order.
func Keys() []Key {
	return []Key{
		KeyName, KeyStars, KeyForks, KeyLastUpdated, KeyURL, KeyDescription,
		KeyOpenIssues, KeyWatchers, KeyCreatedAt, KeySize, KeyLanguage,
	}
}

// Apply returns a copy of records stably sorted by s. Absent values sort after
// present ones in either direction. With KeyNone the copy keeps input order.
func Apply(records []model.ForkRecord, s State) []model.ForkRecord {
	out := slices.Clone(records)
	f, ok := fields[s.Key]
	if !ok {
		return out
	}

	slices.SortStableFunc(out, func(a, b model.ForkRecord) int {
		if f.absent != nil {
			aAbsent, bAbsent := f.absent(&a), f.absent(&b)
			switch {
			case aAbsent && bAbsent:
				return 0
			case aAbsent:
				return 1
			case bAbsent:
				return -1
			}
		}
		c := f.compare(&a, &b)
		if s.Direction == Descending {
			return -c
		}
		return c
	})
	return out
}
