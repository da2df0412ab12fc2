package sidebar

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func sampleGroup() Group {
	return Group{
		Label:     "Petstore",
		Collapsed: true,
		Entries: []Entry{
			Link{Label: "Overview", Href: "api/petstore"},
			Group{
				Label:   "pets",
				Entries: []Entry{Link{Label: "getPets", Href: "api/petstore/get-pets"}},
			},
		},
	}
}

func TestGroupJSON(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		data, err := json.Marshal(sampleGroup())
		require.NoError(t, err)

		assert.JSONEq(t, `{
			"type": "group",
			"label": "Petstore",
			"collapsed": true,
			"entries": [
				{"type": "link", "label": "Overview", "href": "api/petstore"},
				{"type": "group", "label": "pets", "collapsed": false, "entries": [
					{"type": "link", "label": "getPets", "href": "api/petstore/get-pets"}
				]}
			]
		}`, string(data))
	})

	t.Run("empty group has an entries array", func(t *testing.T) {
		data, err := json.Marshal(Group{Label: "Empty"})
		require.NoError(t, err)
		assert.JSONEq(t, `{"type":"group","label":"Empty","collapsed":false,"entries":[]}`, string(data))
	})

	t.Run("round trip", func(t *testing.T) {
		data, err := json.Marshal(sampleGroup())
		require.NoError(t, err)

		var got Group
		require.NoError(t, json.Unmarshal(data, &got))
		assert.Equal(t, sampleGroup(), got)
	})

	t.Run("unknown entry type", func(t *testing.T) {
		var g Group
		err := json.Unmarshal([]byte(`{"type":"group","label":"x","entries":[{"type":"separator"}]}`), &g)
		assert.ErrorContains(t, err, "unknown entry type")
	})

	t.Run("top level must be a group", func(t *testing.T) {
		var g Group
		err := json.Unmarshal([]byte(`{"type":"link","label":"x","href":"y"}`), &g)
		assert.Error(t, err)
	})
}

func TestGroupYAML(t *testing.T) {
	data, err := yaml.Marshal(sampleGroup())
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal(data, &got))

	assert.Equal(t, map[string]any{
		"type":      "group",
		"label":     "Petstore",
		"collapsed": true,
		"entries": []any{
			map[string]any{"type": "link", "label": "Overview", "href": "api/petstore"},
			map[string]any{
				"type":      "group",
				"label":     "pets",
				"collapsed": false,
				"entries": []any{
					map[string]any{"type": "link", "label": "getPets", "href": "api/petstore/get-pets"},
				},
			},
		},
	}, got)
}

func TestGroupLinks(t *testing.T) {
	assert.Equal(t, []Link{
		{Label: "Overview", Href: "api/petstore"},
		{Label: "getPets", Href: "api/petstore/get-pets"},
	}, sampleGroup().Links())

	assert.Empty(t, Group{}.Links())
}
