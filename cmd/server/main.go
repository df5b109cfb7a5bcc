package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"hypercoarsen/pkg/api"
	"hypercoarsen/pkg/hypergraph"
)

func main() {
	snapshotPath := flag.String("snapshot", "", "Path to a binary hypergraph snapshot to report stats for (optional)")
	port := flag.Int("port", 8080, "HTTP port")
	flag.Parse()

	var preloaded *hypergraph.Hypergraph
	if *snapshotPath != "" {
		log.Printf("Loading snapshot from %s...", *snapshotPath)
		h, err := hypergraph.ReadBinary(*snapshotPath)
		if err != nil {
			log.Fatalf("Failed to load snapshot: %v", err)
		}
		log.Printf("Loaded: %d hypernodes, %d hyperedges", h.InitialNumNodes(), h.InitialNumEdges())
		preloaded = h
	}

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	handlers := api.NewHandlers(preloaded)
	srv := api.NewServer(cfg, handlers)

	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
