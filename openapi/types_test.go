package openapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestSchemaType(t *testing.T) {
	t.Run("marshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    SchemaType
			expected string
		}{
			{"single type marshals as string", TypeString("string"), `"string"`},
			{"multiple types marshal as array", TypeArray("string", "null"), `["string","null"]`},
			{"empty type marshals as null", SchemaType{}, "null"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				data, err := json.Marshal(tt.input)
				require.NoError(t, err)
				assert.JSONEq(t, tt.expected, string(data))
			})
		}
	})

	t.Run("unmarshal", func(t *testing.T) {
		tests := []struct {
			name     string
			input    string
			expected []string
			wantErr  bool
		}{
			{"yaml scalar", `integer`, []string{"integer"}, false},
			{"yaml sequence", "- string\n- \"null\"", []string{"string", "null"}, false},
			{"json string", `"integer"`, []string{"integer"}, false},
			{"json array", `["string","null"]`, []string{"string", "null"}, false},
			{"mapping is rejected", `{a: b}`, nil, true},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				var st SchemaType
				err := yaml.Unmarshal([]byte(tt.input), &st)
				if tt.wantErr {
					assert.Error(t, err)
				} else {
					require.NoError(t, err)
					assert.Equal(t, tt.expected, st.Values())
				}
			})
		}
	})

	t.Run("IsZero", func(t *testing.T) {
		assert.True(t, SchemaType{}.IsZero())
		assert.False(t, TypeString("string").IsZero())
	})
}

func TestSchemaTypeName(t *testing.T) {
	tests := []struct {
		name     string
		schema   *Schema
		expected string
	}{
		{"nil schema", nil, ""},
		{"reference", &Schema{Ref: "#/components/schemas/Pet"}, "Pet"},
		{"swagger reference", &Schema{Ref: "#/definitions/Error"}, "Error"},
		{"plain type", &Schema{Type: TypeString("integer")}, "integer"},
		{"type with format", &Schema{Type: TypeString("string"), Format: "uuid"}, "string (uuid)"},
		{"nullable", &Schema{Type: TypeArray("string", "null")}, "string | null"},
		{
			"array of references",
			&Schema{Type: TypeString("array"), Items: &Schema{Ref: "#/components/schemas/Pet"}},
			"array of Pet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.schema.TypeName())
		})
	}
}

func TestDocumentVersion(t *testing.T) {
	t.Run("openapi", func(t *testing.T) {
		doc := &Document{OpenAPI: "3.1.0"}
		assert.Equal(t, "3.1.0", doc.Version())
		assert.False(t, doc.IsSwagger())
	})

	t.Run("swagger", func(t *testing.T) {
		doc := &Document{Swagger: "2.0"}
		assert.Equal(t, "2.0", doc.Version())
		assert.True(t, doc.IsSwagger())
	})
}
