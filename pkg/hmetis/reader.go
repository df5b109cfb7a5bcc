// Package hmetis reads the hMETIS ".hgr" hypergraph text format: a small,
// self-contained line parser kept separate from the core coarsening
// algorithm it feeds.
package hmetis

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hypercoarsen/pkg/hypergraph"
)

// ParseResult is the output of Parse: raw hyperedges plus optional
// hypernode weights, ready for hypergraph.Build.
type ParseResult struct {
	NumHypernodes uint32
	Hyperedges    []hypergraph.RawHyperedge
	NodeWeights   []uint32 // nil if the file carries no hypernode weights
}

// decodeType decodes the hypergraph_type bit flags from the header line: bit 0 = edge weights present, bit 1 (the tens
// digit) = node weights present. Matches
// the hMETIS format's reference reader exactly.
func decodeType(t int) (edgeWeights, nodeWeights bool, err error) {
	switch t {
	case 0:
		return false, false, nil
	case 1:
		return true, false, nil
	case 10:
		return false, true, nil
	case 11:
		return true, true, nil
	default:
		return false, false, fmt.Errorf("hmetis: hypergraph type %d not in {0,1,10,11}", t)
	}
}

// Parse reads an hMETIS ".hgr" file from r.
//
// Grammar: optional "%"-prefixed comment lines, then a header line
// "num_hyperedges num_hypernodes [hypergraph_type]", then one line per
// hyperedge (an optional weight prefix followed by 1-based pin ids), then
// optionally one hypernode-weight line per hypernode.
func Parse(r io.Reader) (*ParseResult, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, ok := nextNonComment(scanner)
	if !ok {
		return nil, fmt.Errorf("hmetis: empty file, expected header line")
	}

	fields := strings.Fields(header)
	if len(fields) < 2 {
		return nil, fmt.Errorf("hmetis: malformed header %q", header)
	}
	numHyperedges, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("hmetis: bad num_hyperedges in header %q: %w", header, err)
	}
	numHypernodes, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return nil, fmt.Errorf("hmetis: bad num_hypernodes in header %q: %w", header, err)
	}
	hgType := 0
	if len(fields) >= 3 {
		hgType, err = strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("hmetis: bad hypergraph_type in header %q: %w", header, err)
		}
	}
	hasEdgeWeights, hasNodeWeights, err := decodeType(hgType)
	if err != nil {
		return nil, err
	}

	result := &ParseResult{NumHypernodes: uint32(numHypernodes)}
	result.Hyperedges = make([]hypergraph.RawHyperedge, 0, numHyperedges)

	for i := uint64(0); i < numHyperedges; i++ {
		if !scanner.Scan() {
			return nil, fmt.Errorf("hmetis: expected %d hyperedge lines, got %d", numHyperedges, i)
		}
		fields := strings.Fields(scanner.Text())
		weight := uint32(1)
		if hasEdgeWeights {
			if len(fields) == 0 {
				return nil, fmt.Errorf("hmetis: hyperedge %d missing weight prefix", i)
			}
			w, err := strconv.ParseUint(fields[0], 10, 32)
			if err != nil {
				return nil, fmt.Errorf("hmetis: hyperedge %d bad weight: %w", i, err)
			}
			weight = uint32(w)
			fields = fields[1:]
		}

		pins := make([]uint32, 0, len(fields))
		for _, f := range fields {
			pin1Based, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("hmetis: hyperedge %d bad pin id %q: %w", i, f, err)
			}
			if pin1Based == 0 {
				return nil, fmt.Errorf("hmetis: hyperedge %d pin id 0 is invalid (pins are 1-based)", i)
			}
			pin := uint32(pin1Based - 1)
			if uint64(pin) >= numHypernodes {
				return nil, fmt.Errorf("hmetis: hyperedge %d pin id %d >= num_hypernodes %d", i, pin1Based, numHypernodes)
			}
			pins = append(pins, pin)
		}
		result.Hyperedges = append(result.Hyperedges, hypergraph.RawHyperedge{Pins: pins, Weight: weight})
	}

	if hasNodeWeights {
		weights := make([]uint32, numHypernodes)
		for i := uint64(0); i < numHypernodes; i++ {
			if !scanner.Scan() {
				return nil, fmt.Errorf("hmetis: expected %d hypernode weight lines, got %d", numHypernodes, i)
			}
			w, err := strconv.ParseUint(strings.TrimSpace(scanner.Text()), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("hmetis: bad hypernode weight on line %d: %w", i, err)
			}
			weights[i] = uint32(w)
		}
		result.NodeWeights = weights
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("hmetis: scan error: %w", err)
	}

	return result, nil
}

// nextNonComment returns the next scanned line that isn't a "%" comment.
func nextNonComment(scanner *bufio.Scanner) (string, bool) {
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "%") {
			continue
		}
		return line, true
	}
	return "", false
}
