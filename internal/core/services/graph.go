package services

import (
	"context"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Shrijeeth/ResumeMindAI-BE/internal/core/domain"
	ports "github.com/Shrijeeth/ResumeMindAI-BE/internal/core/ports/output"
	"github.com/Shrijeeth/ResumeMindAI-BE/internal/metrics"
)

type GraphService struct {
	store ports.GraphStore
}

func NewGraphService(store ports.GraphStore) *GraphService {
	return &GraphService{store: store}
}

// GetGraphData reads the user's knowledge graph, downsamples it to the node
// cap and fills in rendering colors.
func (s *GraphService) GetGraphData(ctx context.Context, q *domain.GraphQuery) (*domain.GraphData, error) {
	start := time.Now()
	metrics.GraphRequests.Inc()

	raw, err := s.store.FetchSubgraph(ctx, q)
	if err != nil {
		metrics.GraphErrors.WithLabelValues("fetch").Inc()
		return nil, err
	}

	nodes, downsampled := downsampleNodes(raw.Nodes, q.MaxNodes)
	if downsampled {
		metrics.GraphDownsampled.Inc()
		log.WithFields(log.Fields{
			"user_id":  q.UserID,
			"fetched":  len(raw.Nodes),
			"returned": len(nodes),
		}).Debug("graph response downsampled")
	}

	keep := make(map[string]struct{}, len(nodes))
	data := &domain.GraphData{
		Nodes: make([]domain.GraphNode, 0, len(nodes)),
		Links: make([]domain.GraphLink, 0, len(raw.Links)),
	}
	for _, n := range nodes {
		n.Color = n.Type.Color()
		keep[n.ID] = struct{}{}
		data.Nodes = append(data.Nodes, n)
	}

	// Links survive only when both endpoints did.
	for _, l := range raw.Links {
		if _, ok := keep[l.Source]; !ok {
			continue
		}
		if _, ok := keep[l.Target]; !ok {
			continue
		}
		l.Color = domain.LinkColor
		data.Links = append(data.Links, l)
	}

	metrics.GraphRequestDuration.Observe(time.Since(start).Seconds())
	metrics.GraphNodesReturned.Observe(float64(len(data.Nodes)))
	return data, nil
}

// downsampleNodes clamps the node set to max. Document anchor nodes always
// survive; the rest are ranked by relevance, then connectivity, then recency,
// with the node id as the deterministic tie breaker.
func downsampleNodes(nodes []domain.GraphNode, max int) ([]domain.GraphNode, bool) {
	if len(nodes) <= max {
		return nodes, false
	}

	var anchors, rest []domain.GraphNode
	for _, n := range nodes {
		if n.Type == domain.NodeDocument {
			anchors = append(anchors, n)
		} else {
			rest = append(rest, n)
		}
	}

	sort.SliceStable(rest, func(i, j int) bool {
		a, b := rest[i], rest[j]
		if a.RelevanceScore != b.RelevanceScore {
			return a.RelevanceScore > b.RelevanceScore
		}
		if a.Degree != b.Degree {
			return a.Degree > b.Degree
		}
		if a.Date != b.Date {
			return a.Date > b.Date
		}
		return a.ID < b.ID
	})

	out := anchors
	if len(out) > max {
		out = out[:max]
	}
	room := max - len(out)
	if room > len(rest) {
		room = len(rest)
	}
	out = append(out, rest[:room]...)
	return out, true
}
