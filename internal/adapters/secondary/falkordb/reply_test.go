package falkordb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
)

func verboseNode(id int64, label, name string, extra ...interface{}) []interface{} {
	props := []interface{}{
		[]interface{}{"name", name},
	}
	for i := 0; i+1 < len(extra); i += 2 {
		props = append(props, []interface{}{extra[i], extra[i+1]})
	}
	return []interface{}{
		[]interface{}{"id", id},
		[]interface{}{"labels", []interface{}{label}},
		[]interface{}{"properties", props},
	}
}

func verboseEdge(id, src, dst int64, typ string) []interface{} {
	return []interface{}{
		[]interface{}{"id", id},
		[]interface{}{"type", typ},
		[]interface{}{"src_node", src},
		[]interface{}{"dest_node", dst},
		[]interface{}{"properties", []interface{}{}},
	}
}

func TestResultRows_SkipsStatisticsOnlyReply(t *testing.T) {
	writeReply := []interface{}{
		[]interface{}{"Nodes created: 1"},
	}

	assert.Empty(t, resultRows(writeReply))
}

func TestParseNode_ReadsIdLabelsAndProps(t *testing.T) {
	raw := verboseNode(7, "Skill", "Python", "relevance_score", "0.9", "degree", int64(3))

	node, ok := parseNode(raw)

	require.True(t, ok)
	assert.Equal(t, int64(7), node.id)
	assert.Equal(t, []string{"Skill"}, node.labels)
	assert.Equal(t, "Python", propString(node.props, "name"))
	assert.InDelta(t, 0.9, propFloat(node.props, "relevance_score"), 1e-9)
	assert.Equal(t, 3, propInt(node.props, "degree"))
}

func TestParseNode_RejectsNonEntityValues(t *testing.T) {
	_, ok := parseNode("not a node")
	assert.False(t, ok)

	_, ok = parseNode(nil)
	assert.False(t, ok)
}

func TestCollectEdges_SingleRelationship(t *testing.T) {
	edges := collectEdges(verboseEdge(1, 10, 20, "HAS_SKILL"))

	require.Len(t, edges, 1)
	assert.Equal(t, "HAS_SKILL", edges[0].typ)
	assert.Equal(t, int64(10), edges[0].src)
	assert.Equal(t, int64(20), edges[0].dst)
}

func TestCollectEdges_VariableLengthPath(t *testing.T) {
	path := []interface{}{
		verboseEdge(1, 10, 20, "FROM_DOCUMENT"),
		verboseEdge(2, 20, 30, "AT_COMPANY"),
	}

	edges := collectEdges(path)

	require.Len(t, edges, 2)
	assert.Equal(t, "FROM_DOCUMENT", edges[0].typ)
	assert.Equal(t, "AT_COMPANY", edges[1].typ)
}

func TestCollectEdges_NilForMissingOptionalMatch(t *testing.T) {
	assert.Nil(t, collectEdges(nil))
}

func TestRenderNode_FallsBackToCanonicalName(t *testing.T) {
	raw, ok := parseNode([]interface{}{
		[]interface{}{"id", int64(4)},
		[]interface{}{"labels", []interface{}{"Company"}},
		[]interface{}{"properties", []interface{}{
			[]interface{}{"canonical_name", "Meta"},
		}},
	})
	require.True(t, ok)

	node := renderNode(raw)

	assert.Equal(t, "4", node.ID)
	assert.Equal(t, "Meta", node.Label)
	assert.Equal(t, domain.NodeCompany, node.Type)
}

func TestRenderNode_UnknownLabelWhenNoNames(t *testing.T) {
	raw, ok := parseNode(verboseNode(1, "Skill", ""))
	require.True(t, ok)

	node := renderNode(raw)

	assert.Equal(t, "Unknown", node.Label)
}

func TestBuildSubgraphQuery_DocumentScoped(t *testing.T) {
	docID := "doc-1"
	depth := 2
	q := &domain.GraphQuery{
		UserID:     "user-1",
		DocumentID: &docID,
		NodeTypes:  []domain.NodeType{domain.NodeSkill, domain.NodeCompany},
		MaxNodes:   100,
		MaxDepth:   &depth,
	}

	cypher := buildSubgraphQuery(q)

	assert.Contains(t, cypher, `MATCH (d:Document {document_id: "doc-1"})`)
	assert.Contains(t, cypher, "OPTIONAL MATCH (d)-[r*0..2]->(n)")
	assert.Contains(t, cypher, "n:Skill OR n:Company")
	assert.Contains(t, cypher, "OR n:Document")
	assert.Contains(t, cypher, "RETURN DISTINCT n, r")
}

func TestBuildSubgraphQuery_UserLevel(t *testing.T) {
	q := &domain.GraphQuery{UserID: "user-1", MaxNodes: 100}

	cypher := buildSubgraphQuery(q)

	assert.Equal(t, "MATCH (n) OPTIONAL MATCH (n)-[r]->(m) RETURN n, r", cypher)
}

func TestBuildSubgraphQuery_DefaultDepth(t *testing.T) {
	docID := "doc-1"
	q := &domain.GraphQuery{UserID: "user-1", DocumentID: &docID, MaxNodes: 100}

	cypher := buildSubgraphQuery(q)

	assert.Contains(t, cypher, "[r*0..5]")
}

func TestQuote_EscapesQuotesAndBackslashes(t *testing.T) {
	assert.Equal(t, `"plain"`, quote("plain"))
	assert.Equal(t, `"say \"hi\""`, quote(`say "hi"`))
	assert.Equal(t, `"back\\slash"`, quote(`back\slash`))
}

func TestSafeIdent(t *testing.T) {
	assert.True(t, safeIdent("level"))
	assert.True(t, safeIdent("start_date"))
	assert.False(t, safeIdent("drop table"))
	assert.False(t, safeIdent("1abc"))
	assert.False(t, safeIdent(""))
}
