package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKnowledgeGraph_AddNodeInsertIfAbsent(t *testing.T) {
	kg := NewKnowledgeGraph("example", "https://x.com")

	first := &PageNode{Title: "First", Depth: 1}
	assert.True(t, kg.AddNode("https://x.com/docs/a", first))

	// A second insert for the same URL is rejected: first visit wins.
	second := &PageNode{Title: "Second", Depth: 2}
	assert.False(t, kg.AddNode("https://x.com/docs/a", second))

	node := kg.GetNode("https://x.com/docs/a")
	require.NotNil(t, node)
	assert.Equal(t, "First", node.Title)
	assert.Equal(t, 1, node.Depth)
}

func TestKnowledgeGraph_GetNodeReturnsCopy(t *testing.T) {
	kg := NewKnowledgeGraph("example", "https://x.com")
	kg.AddNode("https://x.com/docs/a", &PageNode{Title: "Original"})

	node := kg.GetNode("https://x.com/docs/a")
	require.NotNil(t, node)
	node.Title = "Mutated"

	assert.Equal(t, "Original", kg.GetNode("https://x.com/docs/a").Title)
	assert.Nil(t, kg.GetNode("https://x.com/docs/missing"))
}

func TestKnowledgeGraph_EdgesKeepDuplicates(t *testing.T) {
	kg := NewKnowledgeGraph("example", "https://x.com")

	edge := Edge{From: "https://x.com", To: "https://x.com/docs/a", Type: EdgeTypeReferences}
	kg.AddEdge(edge)
	kg.AddEdge(edge)

	assert.Len(t, kg.Relationships, 2, "duplicate edges are preserved (multigraph)")

	nodes, edges := kg.Stats()
	assert.Equal(t, 0, nodes)
	assert.Equal(t, 2, edges)
}

func TestKnowledgeGraph_JSONShape(t *testing.T) {
	kg := NewKnowledgeGraph("fastapi", "https://fastapi.tiangolo.com")
	kg.AddNode("https://fastapi.tiangolo.com", &PageNode{
		Title:    "FastAPI",
		Concepts: []string{"routing", "dependency injection"},
		APIs:     []map[string]any{{"name": "FastAPI", "signature": "FastAPI()"}},
		Depth:    0,
	})
	kg.AddEdge(Edge{
		From: "https://fastapi.tiangolo.com",
		To:   "https://fastapi.tiangolo.com/tutorial/",
		Type: EdgeTypeReferences,
	})

	payload, err := kg.JSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(payload), &decoded))

	assert.Equal(t, "fastapi", decoded["framework"])
	assert.Equal(t, "https://fastapi.tiangolo.com", decoded["base_url"])

	nodes, ok := decoded["nodes"].(map[string]any)
	require.True(t, ok)
	root, ok := nodes["https://fastapi.tiangolo.com"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "FastAPI", root["title"])
	assert.Equal(t, float64(0), root["depth"])

	relationships, ok := decoded["relationships"].([]any)
	require.True(t, ok)
	require.Len(t, relationships, 1)
	rel := relationships[0].(map[string]any)
	assert.Equal(t, "references", rel["type"])
}
