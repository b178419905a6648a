package params

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeMultiplexer serves canned variants per identifier prefix.
type fakeMultiplexer struct {
	variants map[string][]*Set
	order    []string
}

func (m *fakeMultiplexer) DictsFor(identifier string) []*Set {
	return m.variants[Prefix(identifier)]
}

func (m *fakeMultiplexer) Dicts() []*Set {
	var all []*Set
	for _, key := range m.order {
		all = append(all, m.variants[key]...)
	}
	return all
}

func variant(shortname, key, value string) *Set {
	return FromPairs([]Pair{
		{Key: ShortnameKey, Value: shortname},
		{Key: key, Value: value},
	})
}

func TestBuild_NoMultiplexer_OneBareSetPerIdentifierInOrder(t *testing.T) {
	t.Parallel()

	ids := []string{"foo", "bar", "baz"}
	sets := Build(ids, nil)

	require.Len(t, sets, len(ids))
	for i, id := range ids {
		assert.Equal(t, id, sets[i].Shortname())
		assert.Equal(t, 1, sets[i].Len())
	}
}

func TestBuild_NoInputs_Empty(t *testing.T) {
	t.Parallel()

	assert.Empty(t, Build(nil, nil))
}

func TestBuild_MultiplexerExpandsButNeverDropsIdentifiers(t *testing.T) {
	t.Parallel()

	m := &fakeMultiplexer{
		variants: map[string][]*Set{
			"sleeptest": {
				variant("sleeptest.short", "sleep_length", "0.5"),
				variant("sleeptest.long", "sleep_length", "5"),
			},
		},
		order: []string{"sleeptest"},
	}

	// failtest has no variants, so it must fall back to a bare set while
	// keeping its place in identifier order.
	sets := Build([]string{"failtest", "sleeptest"}, m)

	require.Len(t, sets, 3)
	assert.Equal(t, "failtest", sets[0].Shortname())
	assert.Equal(t, 1, sets[0].Len())
	assert.Equal(t, "sleeptest.short", sets[1].Shortname())
	assert.Equal(t, "sleeptest.long", sets[2].Shortname())
}

func TestBuild_MultiplexerAlone_GlobalVariantsInNativeOrder(t *testing.T) {
	t.Parallel()

	m := &fakeMultiplexer{
		variants: map[string][]*Set{
			"b": {variant("b.one", "k", "1")},
			"a": {variant("a.one", "k", "2")},
		},
		order: []string{"b", "a"},
	}

	sets := Build(nil, m)

	require.Len(t, sets, 2)
	assert.Equal(t, "b.one", sets[0].Shortname())
	assert.Equal(t, "a.one", sets[1].Shortname())
}
