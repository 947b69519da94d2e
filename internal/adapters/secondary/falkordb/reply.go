package falkordb

import (
	"strconv"
)

// GRAPH.QUERY verbose replies arrive as nested arrays. A result carries
// [header, rows, statistics]; write-only queries reply with statistics alone.
// Nodes and edges are arrays of [key, value] pairs keyed by "id", "labels",
// "properties" and "id", "type", "src_node", "dest_node", "properties".

type rawNode struct {
	id     int64
	labels []string
	props  map[string]interface{}
}

type rawEdge struct {
	typ string
	src int64
	dst int64
}

func resultRows(reply interface{}) [][]interface{} {
	top, ok := reply.([]interface{})
	if !ok || len(top) < 3 {
		return nil
	}
	rawRows, ok := top[1].([]interface{})
	if !ok {
		return nil
	}

	rows := make([][]interface{}, 0, len(rawRows))
	for _, r := range rawRows {
		if cols, ok := r.([]interface{}); ok {
			rows = append(rows, cols)
		}
	}
	return rows
}

func parseNode(v interface{}) (rawNode, bool) {
	pairs, ok := entityPairs(v)
	if !ok {
		return rawNode{}, false
	}

	node := rawNode{props: map[string]interface{}{}}
	found := false
	for key, val := range pairs {
		switch key {
		case "id":
			node.id = asInt64(val)
			found = true
		case "labels":
			if labels, ok := val.([]interface{}); ok {
				for _, l := range labels {
					node.labels = append(node.labels, asString(l))
				}
			}
		case "properties":
			node.props = parseProps(val)
		}
	}
	return node, found
}

// collectEdges handles both a single relationship and the edge list a
// variable-length path produces.
func collectEdges(v interface{}) []rawEdge {
	if v == nil {
		return nil
	}
	if e, ok := parseEdge(v); ok {
		return []rawEdge{e}
	}

	arr, ok := v.([]interface{})
	if !ok {
		return nil
	}
	var edges []rawEdge
	for _, item := range arr {
		if e, ok := parseEdge(item); ok {
			edges = append(edges, e)
		}
	}
	return edges
}

func parseEdge(v interface{}) (rawEdge, bool) {
	pairs, ok := entityPairs(v)
	if !ok {
		return rawEdge{}, false
	}

	edge := rawEdge{}
	hasType := false
	hasEnds := false
	for key, val := range pairs {
		switch key {
		case "type":
			edge.typ = asString(val)
			hasType = true
		case "src_node":
			edge.src = asInt64(val)
			hasEnds = true
		case "dest_node":
			edge.dst = asInt64(val)
		}
	}
	return edge, hasType && hasEnds
}

func entityPairs(v interface{}) (map[string]interface{}, bool) {
	arr, ok := v.([]interface{})
	if !ok || len(arr) == 0 {
		return nil, false
	}

	pairs := make(map[string]interface{}, len(arr))
	for _, item := range arr {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			return nil, false
		}
		key, ok := pair[0].(string)
		if !ok {
			return nil, false
		}
		pairs[key] = pair[1]
	}
	return pairs, true
}

func parseProps(v interface{}) map[string]interface{} {
	props := map[string]interface{}{}
	arr, ok := v.([]interface{})
	if !ok {
		return props
	}
	for _, item := range arr {
		pair, ok := item.([]interface{})
		if !ok || len(pair) != 2 {
			continue
		}
		if key, ok := pair[0].(string); ok {
			props[key] = pair[1]
		}
	}
	return props
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	default:
		return ""
	}
}

func asInt64(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case string:
		i, _ := strconv.ParseInt(n, 10, 64)
		return i
	default:
		return 0
	}
}

// asFloat covers RESP2 doubles, which arrive as strings.
func asFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	case string:
		f, _ := strconv.ParseFloat(n, 64)
		return f
	default:
		return 0
	}
}

func propString(props map[string]interface{}, key string) string {
	if v, ok := props[key]; ok {
		return asString(v)
	}
	return ""
}

func propFloat(props map[string]interface{}, key string) float64 {
	if v, ok := props[key]; ok {
		return asFloat(v)
	}
	return 0
}

func propInt(props map[string]interface{}, key string) int {
	if v, ok := props[key]; ok {
		return int(asInt64(v))
	}
	return 0
}
