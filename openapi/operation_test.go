package openapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathItemOperation(t *testing.T) {
	methods := []string{"get", "put", "post", "delete", "options", "head", "patch", "trace"}

	for _, method := range methods {
		t.Run(method, func(t *testing.T) {
			item := &PathItem{}
			op := &Operation{OperationID: method + "Op"}

			item.SetOperation(method, op)
			assert.Same(t, op, item.Operation(method))
		})
	}

	t.Run("unknown method", func(t *testing.T) {
		item := &PathItem{}
		item.SetOperation("connect", &Operation{})
		assert.Nil(t, item.Operation("connect"))
		assert.Equal(t, &PathItem{}, item)
	})
}

func TestDocumentOperations(t *testing.T) {
	doc := &Document{}

	users := &PathItem{
		Post: &Operation{OperationID: "createUser"},
		Get:  &Operation{OperationID: "listUsers"},
	}
	health := &PathItem{Trace: &Operation{}, Head: &Operation{}}

	doc.Paths.Set("/users", users)
	doc.Paths.Set("/empty", nil)
	doc.Paths.Set("/health", health)
	doc.Webhooks.Set("userCreated", &PathItem{Post: &Operation{Summary: "User created"}})

	ops := doc.Operations()
	require.Len(t, ops, 4)

	got := make([]string, len(ops))
	for i, op := range ops {
		got[i] = op.Method + " " + op.Path
		assert.False(t, op.Webhook)
	}
	assert.Equal(t, []string{"get /users", "post /users", "head /health", "trace /health"}, got)
	assert.Same(t, users, ops[0].PathItem)

	webhooks := doc.WebhookOperations()
	require.Len(t, webhooks, 1)
	assert.True(t, webhooks[0].Webhook)
	assert.Equal(t, "userCreated", webhooks[0].Path)
	assert.Equal(t, "post", webhooks[0].Method)
}

func TestPathItemOperationTitle(t *testing.T) {
	tests := []struct {
		name  string
		op    PathItemOperation
		title string
		id    string
	}{
		{
			name:  "summary wins",
			op:    PathItemOperation{Method: "get", Path: "/pets", Operation: &Operation{Summary: "List pets", OperationID: "listPets"}},
			title: "List pets",
			id:    "listPets",
		},
		{
			name:  "operation id fallback",
			op:    PathItemOperation{Method: "get", Path: "/pets", Operation: &Operation{OperationID: "listPets"}},
			title: "listPets",
			id:    "listPets",
		},
		{
			name:  "method and path fallback",
			op:    PathItemOperation{Method: "delete", Path: "/pets/{id}", Operation: &Operation{}},
			title: "DELETE /pets/{id}",
			id:    "/pets/{id}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.title, tt.op.Title())
			assert.Equal(t, tt.id, tt.op.ID())
		})
	}
}

func TestPathItemOperationParameters(t *testing.T) {
	item := &PathItem{
		Parameters: []*Parameter{
			{Name: "id", In: "path", Description: "path level"},
			{Name: "trace", In: "header"},
			nil,
		},
	}
	op := &Operation{
		Parameters: []*Parameter{
			{Name: "id", In: "path", Description: "operation level"},
			{Name: "id", In: "query"},
		},
	}

	params := PathItemOperation{PathItem: item, Operation: op}.Parameters()
	require.Len(t, params, 3)

	assert.Equal(t, "trace", params[0].Name)
	assert.Equal(t, "operation level", params[1].Description)
	assert.Equal(t, "query", params[2].In)
}
