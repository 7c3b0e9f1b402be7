// internal/forksort/forksort_test.go
package forksort

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"forkfinder/internal/model"
)

func names(records []model.ForkRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func strPtr(s string) *string { return &s }

func sampleForks() []model.ForkRecord {
	return []model.ForkRecord{
		{Name: "a/r", Stars: 5, LastUpdated: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), Description: strPtr("beta")},
		{Name: "b/r", Stars: 1, LastUpdated: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{Name: "c/r", Stars: 9, LastUpdated: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), Description: strPtr("alpha")},
	}
}

func TestState_Toggle(t *testing.T) {
	var s State
	assert.Equal(t, State{Key: KeyNone, Direction: Ascending}, s)

	s = s.Toggle(KeyStars)
	assert.Equal(t, State{Key: KeyStars, Direction: Ascending}, s)

	s = s.Toggle(KeyStars)
	assert.Equal(t, State{Key: KeyStars, Direction: Descending}, s)

	s = s.Toggle(KeyStars)
	assert.Equal(t, State{Key: KeyStars, Direction: Ascending}, s, "descending resets to ascending")

	s = s.Toggle(KeyStars).Toggle(KeyName)
	assert.Equal(t, State{Key: KeyName, Direction: Ascending}, s, "a new key always starts ascending")
}

func TestApply(t *testing.T) {
	forks := sampleForks()

	t.Run("stars toggles ascending then descending", func(t *testing.T) {
		s := State{}.Toggle(KeyStars)
		asc := Apply(forks, s)
		assert.Equal(t, []string{"b/r", "a/r", "c/r"}, names(asc))

		s = s.Toggle(KeyStars)
		desc := Apply(asc, s)
		assert.Equal(t, []string{"c/r", "a/r", "b/r"}, names(desc))
	})

	t.Run("switching key sorts ascending by the new key", func(t *testing.T) {
		s := State{}.Toggle(KeyStars).Toggle(KeyLastUpdated)
		got := Apply(forks, s)
		assert.Equal(t, []string{"c/r", "a/r", "b/r"}, names(got))
	})

	t.Run("does not modify the input", func(t *testing.T) {
		before := names(forks)
		_ = Apply(forks, State{Key: KeyStars, Direction: Descending})
		assert.Equal(t, before, names(forks))
	})

	t.Run("reapplying the same state keeps the order", func(t *testing.T) {
		s := State{Key: KeyName}
		once := Apply(forks, s)
		twice := Apply(once, s)
		assert.Equal(t, names(once), names(twice))
	})

	t.Run("ties keep their relative order", func(t *testing.T) {
		tied := []model.ForkRecord{{Name: "x/1", Forks: 2}, {Name: "x/2", Forks: 1}, {Name: "x/3", Forks: 2}}
		got := Apply(tied, State{Key: KeyForks, Direction: Descending})
		assert.Equal(t, []string{"x/1", "x/3", "x/2"}, names(got))
	})

	t.Run("absent values sort last in both directions", func(t *testing.T) {
		asc := Apply(forks, State{Key: KeyDescription})
		assert.Equal(t, []string{"c/r", "a/r", "b/r"}, names(asc))

		desc := Apply(forks, State{Key: KeyDescription, Direction: Descending})
		assert.Equal(t, []string{"a/r", "c/r", "b/r"}, names(desc))
	})

	t.Run("zero timestamps count as absent", func(t *testing.T) {
		withZero := append(sampleForks(), model.ForkRecord{Name: "d/r"})
		got := Apply(withZero, State{Key: KeyLastUpdated, Direction: Descending})
		assert.Equal(t, []string{"b/r", "a/r", "c/r", "d/r"}, names(got))
	})

	t.Run("no key keeps input order", func(t *testing.T) {
		got := Apply(forks, State{})
		assert.Equal(t, names(forks), names(got))
	})
}

func TestParseKey(t *testing.T) {
	for _, k := range Keys() {
		got, err := ParseKey(string(k))
		require.NoError(t, err)
		assert.Equal(t, k, got)
	}

	_, err := ParseKey("Stars")
	assert.Error(t, err)
	_, err = ParseKey("")
	assert.Error(t, err)
}

func TestParseDirection(t *testing.T) {
	d, err := ParseDirection("desc")
	require.NoError(t, err)
	assert.Equal(t, Descending, d)

	d, err = ParseDirection("")
	require.NoError(t, err)
	assert.Equal(t, Ascending, d)

	_, err = ParseDirection("sideways")
	assert.Error(t, err)
}
