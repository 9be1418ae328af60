package overlay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTable_Apply(t *testing.T) {
	tests := []struct {
		name     string
		pairs    []Pair
		input    string
		expected string
	}{
		{
			name:     "single replacement",
			pairs:    []Pair{{From: "huge", To: "sweet"}},
			input:    "It's huge!",
			expected: "It's sweet!",
		},
		{
			name:     "every occurrence replaced",
			pairs:    []Pair{{From: "blah", To: "yum"}},
			input:    "...blah, blah, blah!",
			expected: "...yum, yum, yum!",
		},
		{
			name:     "replacement text is not rescanned",
			pairs:    []Pair{{From: "cat", To: "dog"}, {From: "dog", To: "bird"}},
			input:    "cat and dog",
			expected: "dog and bird",
		},
		{
			name:     "replacement containing its own key",
			pairs:    []Pair{{From: "a", To: "aa"}},
			input:    "banana",
			expected: "baanaanaa",
		},
		{
			name:     "keys apply in table order",
			pairs:    []Pair{{From: "Rivers", To: "Sweetheart"}, {From: "Alex Rivers", To: "Honey Bun"}},
			input:    "They say their name is Alex Rivers.",
			expected: "They say their name is Alex Sweetheart.",
		},
		{
			name:     "longer key first when listed first",
			pairs:    []Pair{{From: "Alex Rivers", To: "Honey Bun"}, {From: "Rivers", To: "Sweetheart"}},
			input:    "Alex Rivers, or just Rivers.",
			expected: "Honey Bun, or just Sweetheart.",
		},
		{
			name:     "later key cannot reach into a replacement",
			pairs:    []Pair{{From: "huge", To: "big tower"}, {From: "tower", To: "spire"}},
			input:    "a huge tower",
			expected: "a big tower spire",
		},
		{
			name:     "earlier key wins at the same position",
			pairs:    []Pair{{From: "CN", To: "Candy"}, {From: "CN Tower", To: "Sugar Spire"}},
			input:    "the CN Tower",
			expected: "the Candy Tower",
		},
		{
			name:     "no match",
			pairs:    []Pair{{From: "zzz", To: "x"}},
			input:    "plain text",
			expected: "plain text",
		},
		{
			name:     "empty keys are ignored",
			pairs:    []Pair{{From: "", To: "!"}, {From: "a", To: "b"}},
			input:    "aa",
			expected: "bb",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := NewTable(map[string][]Pair{"base": tt.pairs})
			assert.Equal(t, tt.expected, table.Apply("base", tt.input))
		})
	}
}

func TestTable_ApplyOtherLocation(t *testing.T) {
	table := NewTable(map[string][]Pair{"base": {{From: "huge", To: "tiny"}}})
	assert.Equal(t, "It's huge!", table.Apply("lookout", "It's huge!"))
}

func TestTable_NilAndEmpty(t *testing.T) {
	var nilTable *Table
	assert.Equal(t, "x", nilTable.Apply("base", "x"))
	assert.Zero(t, nilTable.Len())
	assert.Nil(t, nilTable.Pairs("base"))
	assert.Nil(t, nilTable.Locations())

	empty := Empty()
	assert.Equal(t, "x", empty.Apply("base", "x"))
	assert.Zero(t, empty.Len())
}

func TestTable_PairsIsCopy(t *testing.T) {
	table := NewTable(map[string][]Pair{"base": {{From: "a", To: "b"}}})
	pairs := table.Pairs("base")
	pairs[0].To = "changed"
	assert.Equal(t, "b", table.Apply("base", "a"))
}

func TestRender(t *testing.T) {
	table := NewTable(map[string][]Pair{"base": {{From: "huge", To: "tiny"}}})

	assert.Equal(t, "It's huge!", Render(table, false, "base", "It's huge!"))
	assert.Equal(t, "It's tiny!", Render(table, true, "base", "It's huge!"))
	assert.Equal(t, "It's huge!", Render(nil, true, "base", "It's huge!"))
}

func TestParseJSON(t *testing.T) {
	data := []byte(`{
		"base": {"huge": "sweet", "CN Tower": "Candy Tower", "Candy": "Sugar"},
		"Patrick": {"quadrobics": "knitting"},
		"broken": "not an object"
	}`)

	table, err := ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []Pair{
		{From: "huge", To: "sweet"},
		{From: "CN Tower", To: "Candy Tower"},
		{From: "Candy", To: "Sugar"},
	}, table.Pairs("base"))
	assert.Equal(t, "Join our knitting club?", table.Apply("Patrick", "Join our quadrobics club?"))
	assert.Empty(t, table.Pairs("broken"))
	assert.Equal(t, []string{"Patrick", "base"}, table.Locations())
}

func TestParseJSON_Malformed(t *testing.T) {
	for _, in := range []string{``, `{`, `[1,2]`, `"text"`} {
		_, err := ParseJSON([]byte(in))
		require.ErrorIs(t, err, ErrMalformed, "input %q", in)
	}
}

func TestParseYAML(t *testing.T) {
	data := []byte(`
base:
  huge: sweet
  CN Tower: Candy Tower
lookout:
  Niagara Falls: a chocolate fountain
skipped: [1, 2]
`)
	table, err := ParseYAML(data)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, []Pair{
		{From: "huge", To: "sweet"},
		{From: "CN Tower", To: "Candy Tower"},
	}, table.Pairs("base"))

	empty, err := ParseYAML(nil)
	require.NoError(t, err)
	assert.Zero(t, empty.Len())

	_, err = ParseYAML([]byte("- a\n- b\n"))
	require.ErrorIs(t, err, ErrMalformed)
}

func TestParse_ByExtension(t *testing.T) {
	table, err := Parse("dialogue.yml", []byte("base:\n  a: b\n"))
	require.NoError(t, err)
	assert.Equal(t, "b", table.Apply("base", "a"))

	table, err = Parse("dialogue.json", []byte(`{"base":{"a":"c"}}`))
	require.NoError(t, err)
	assert.Equal(t, "c", table.Apply("base", "a"))

	_, err = Parse("dialogue.json", []byte("base:\n  a: b\n"))
	require.ErrorIs(t, err, ErrMalformed)
}
