package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"hypercoarsen/pkg/coarsen"
	"hypercoarsen/pkg/communityfile"
	"hypercoarsen/pkg/hmetis"
	"hypercoarsen/pkg/hypergraph"
	"hypercoarsen/pkg/workerpool"
)

func main() {
	hgrPath := flag.String("hgr", "", "Path to an hMETIS .hgr hypergraph file")
	communityPath := flag.String("communities", "", "Path to a community assignment file")
	output := flag.String("output", "", "Output binary snapshot path (optional)")
	respectOrder := flag.Bool("respect-order", true, "Renumber each community section in ascending global-id order")
	workers := flag.Int("workers", 0, "Worker pool size (0 = number of CPUs)")
	flag.Parse()

	if *hgrPath == "" || *communityPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: coarsen --hgr <file.hgr> --communities <file.txt> [--output snapshot.bin]")
		os.Exit(1)
	}

	start := time.Now()

	log.Println("Parsing hypergraph...")
	hgrFile, err := os.Open(*hgrPath)
	if err != nil {
		log.Fatalf("Failed to open hgr file: %v", err)
	}
	parsed, err := hmetis.Parse(hgrFile)
	hgrFile.Close()
	if err != nil {
		log.Fatalf("Failed to parse hypergraph: %v", err)
	}
	log.Printf("Parsed %d hyperedges, %d hypernodes", len(parsed.Hyperedges), parsed.NumHypernodes)

	log.Println("Parsing community assignments...")
	communityFile, err := os.Open(*communityPath)
	if err != nil {
		log.Fatalf("Failed to open community file: %v", err)
	}
	communities, err := communityfile.Read(communityFile, parsed.NumHypernodes)
	communityFile.Close()
	if err != nil {
		log.Fatalf("Failed to parse community assignments: %v", err)
	}

	log.Println("Building hypergraph...")
	h := hypergraph.Build(hypergraph.BuildInput{
		NumNodes:    parsed.NumHypernodes,
		Hyperedges:  parsed.Hyperedges,
		NodeWeights: parsed.NodeWeights,
		Communities: communities,
	})
	log.Printf("Built: %d hypernodes, %d hyperedges, %d pins",
		h.InitialNumNodes(), h.InitialNumEdges(), len(h.IncidenceArray))

	ids := distinctCommunityIDs(communities)
	numWorkers := *workers
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	pool := workerpool.New(numWorkers)

	log.Printf("Extracting %d community sections...", len(ids))
	subs := make([]*coarsen.CommunitySubhypergraph, len(ids))
	var runner coarsen.NoOpCoarsener
	fns := make([]func() error, len(ids))
	for i, id := range ids {
		i, id := i, id
		fns[i] = func() error {
			s, err := coarsen.Extract(h, id, *respectOrder)
			if err != nil {
				return fmt.Errorf("extract community %d: %w", id, err)
			}
			if err := runner.Coarsen(s.Child); err != nil {
				return fmt.Errorf("coarsen community %d: %w", id, err)
			}
			subs[i] = s
			return nil
		}
	}
	if err := pool.Phase(fns...); err != nil {
		log.Fatalf("Extraction/coarsening failed: %v", err)
	}

	sizes := make([]float64, len(subs))
	for i, s := range subs {
		sizes[i] = float64(len(s.LocalToGlobalHN))
	}
	if len(sizes) > 0 {
		mean, stdDev := stat.MeanStdDev(sizes, nil)
		log.Printf("Community section sizes: mean=%.1f stddev=%.1f", mean, stdDev)
	}

	log.Println("Merging community results back...")
	if err := coarsen.Merge(h, pool, subs, nil); err != nil {
		log.Fatalf("Merge failed: %v", err)
	}
	log.Printf("Merged: %d live hypernodes, %d live pins, %d live hyperedges",
		h.CurrentNumHypernodes(), h.CurrentNumPins(), h.CurrentNumHyperedges())

	if *output != "" {
		log.Printf("Writing binary snapshot to %s...", *output)
		if err := hypergraph.WriteBinary(*output, h); err != nil {
			log.Fatalf("Failed to write snapshot: %v", err)
		}
	}

	log.Printf("Done in %s", time.Since(start).Round(time.Millisecond))
}

func distinctCommunityIDs(communities []hypergraph.PartitionID) []hypergraph.PartitionID {
	seen := make(map[hypergraph.PartitionID]bool)
	for _, c := range communities {
		if c >= 0 {
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
