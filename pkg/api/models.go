package api

// CoarsenRequest is the JSON body for POST /api/v1/coarsen. Hypergraph is
// an hMETIS ".hgr" text document; Communities is a "hypernode_id
// community_id" per-line text document.
type CoarsenRequest struct {
	Hypergraph   string `json:"hypergraph"`
	Communities  string `json:"communities"`
	RespectOrder bool   `json:"respect_order"`
}

// CommunityStats summarizes one community's extracted section.
type CommunityStats struct {
	CommunityID           int32 `json:"community_id"`
	NumHypernodes         int   `json:"num_hypernodes"`
	NumHyperedges         int   `json:"num_hyperedges"`
	NumHNNotInCommunity   int   `json:"num_hn_not_in_community"`
	NumPinsNotInCommunity int   `json:"num_pins_not_in_community"`
}

// CoarsenResponse is the JSON response for a successful coarsening run.
type CoarsenResponse struct {
	NumHypernodes        uint32           `json:"num_hypernodes"`
	NumHyperedges        uint32           `json:"num_hyperedges"`
	NumCommunities       int              `json:"num_communities"`
	CurrentNumHypernodes int64            `json:"current_num_hypernodes"`
	CurrentNumPins       int64            `json:"current_num_pins"`
	CurrentNumHyperedges int64            `json:"current_num_hyperedges"`
	CommunitySizeMean    float64          `json:"community_size_mean"`
	CommunitySizeStdDev  float64          `json:"community_size_stddev"`
	Communities          []CommunityStats `json:"communities"`
	ElapsedMillis        float64          `json:"elapsed_millis"`
}

// ErrorResponse is the JSON response for errors.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatsResponse is the JSON response for GET /api/v1/stats, describing
// whatever hypergraph snapshot the server was started with.
type StatsResponse struct {
	Loaded        bool   `json:"loaded"`
	NumHypernodes uint32 `json:"num_hypernodes,omitempty"`
	NumHyperedges uint32 `json:"num_hyperedges,omitempty"`
}

// HealthResponse is the JSON response for GET /api/v1/health.
type HealthResponse struct {
	Status string `json:"status"`
}
