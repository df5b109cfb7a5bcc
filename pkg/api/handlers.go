package api

import (
	"encoding/json"
	"fmt"
	"mime"
	"net/http"
	"runtime"
	"sort"
	"strings"
	"time"

	"gonum.org/v1/gonum/stat"

	"hypercoarsen/pkg/coarsen"
	"hypercoarsen/pkg/communityfile"
	"hypercoarsen/pkg/hmetis"
	"hypercoarsen/pkg/hypergraph"
	"hypercoarsen/pkg/workerpool"
)

const maxRequestBytes = 64 << 20

// Handlers holds the HTTP handlers and their dependencies.
type Handlers struct {
	preloaded *hypergraph.Hypergraph // nil if the server started with no snapshot
}

// NewHandlers creates handlers, optionally reporting stats for a
// preloaded hypergraph snapshot.
func NewHandlers(preloaded *hypergraph.Hypergraph) *Handlers {
	return &Handlers{preloaded: preloaded}
}

// HandleCoarsen handles POST /api/v1/coarsen: run the full extract,
// coarsen, merge-back pipeline on a posted hypergraph and return summary
// statistics.
func (h *Handlers) HandleCoarsen(w http.ResponseWriter, r *http.Request) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType != "application/json" {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	var req CoarsenRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request")
		return
	}

	start := time.Now()

	parsed, err := hmetis.Parse(strings.NewReader(req.Hypergraph))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_hypergraph")
		return
	}
	communities, err := communityfile.Read(strings.NewReader(req.Communities), parsed.NumHypernodes)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_communities")
		return
	}

	hg := hypergraph.Build(hypergraph.BuildInput{
		NumNodes:    parsed.NumHypernodes,
		Hyperedges:  parsed.Hyperedges,
		NodeWeights: parsed.NodeWeights,
		Communities: communities,
	})

	resp, err := runPipeline(hg, req.RespectOrder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "pipeline_failed")
		return
	}
	resp.ElapsedMillis = float64(time.Since(start)) / float64(time.Millisecond)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// runPipeline extracts every community present in hg, runs the identity
// coarsener over each section, merges the results back, and summarizes
// the outcome. Used by HandleCoarsen; cmd/coarsen runs the same stages
// itself.
func runPipeline(hg *hypergraph.Hypergraph, respectOrder bool) (*CoarsenResponse, error) {
	ids := distinctCommunities(hg)

	pool := workerpool.New(runtime.NumCPU())
	subs := make([]*coarsen.CommunitySubhypergraph, len(ids))
	var coarsener coarsen.NoOpCoarsener

	fns := make([]func() error, len(ids))
	for i, id := range ids {
		i, id := i, id
		fns[i] = func() error {
			s, err := coarsen.Extract(hg, id, respectOrder)
			if err != nil {
				return fmt.Errorf("extract community %d: %w", id, err)
			}
			if err := coarsener.Coarsen(s.Child); err != nil {
				return fmt.Errorf("coarsen community %d: %w", id, err)
			}
			subs[i] = s
			return nil
		}
	}
	if err := pool.Phase(fns...); err != nil {
		return nil, err
	}

	if err := coarsen.Merge(hg, pool, subs, nil); err != nil {
		return nil, fmt.Errorf("merge: %w", err)
	}

	communityStats := make([]CommunityStats, len(ids))
	sizes := make([]float64, len(ids))
	for i, id := range ids {
		s := subs[i]
		communityStats[i] = CommunityStats{
			CommunityID:           id,
			NumHypernodes:         len(s.LocalToGlobalHN),
			NumHyperedges:         len(s.LocalToGlobalHE),
			NumHNNotInCommunity:   s.NumHNNotInCommunity,
			NumPinsNotInCommunity: s.NumPinsNotInCommunity,
		}
		sizes[i] = float64(len(s.LocalToGlobalHN))
	}

	var mean, stdDev float64
	if len(sizes) > 0 {
		mean, stdDev = stat.MeanStdDev(sizes, nil)
	}

	return &CoarsenResponse{
		NumHypernodes:        hg.InitialNumNodes(),
		NumHyperedges:        hg.InitialNumEdges(),
		NumCommunities:       len(ids),
		CurrentNumHypernodes: hg.CurrentNumHypernodes(),
		CurrentNumPins:       hg.CurrentNumPins(),
		CurrentNumHyperedges: hg.CurrentNumHyperedges(),
		CommunitySizeMean:    mean,
		CommunitySizeStdDev:  stdDev,
		Communities:          communityStats,
	}, nil
}

// distinctCommunities returns every community id present in hg, sorted
// ascending, excluding unassigned (-1) hypernodes.
func distinctCommunities(hg *hypergraph.Hypergraph) []hypergraph.PartitionID {
	seen := make(map[hypergraph.PartitionID]bool)
	for _, v := range hg.Nodes() {
		if c := hg.CommunityID(v); c >= 0 {
			seen[c] = true
		}
	}
	ids := make([]hypergraph.PartitionID, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// HandleHealth handles GET /api/v1/health.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(HealthResponse{Status: "ok"})
}

// HandleStats handles GET /api/v1/stats.
func (h *Handlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if h.preloaded == nil {
		json.NewEncoder(w).Encode(StatsResponse{Loaded: false})
		return
	}
	json.NewEncoder(w).Encode(StatsResponse{
		Loaded:        true,
		NumHypernodes: h.preloaded.InitialNumNodes(),
		NumHyperedges: h.preloaded.InitialNumEdges(),
	})
}

func writeError(w http.ResponseWriter, status int, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(ErrorResponse{Error: code})
}
