// Package communityfile reads the per-hypernode community assignment file
// that supplies the communityID(v) labels the coarsening pipeline takes
// as given (community detection itself runs upstream). One
// "hypernode_id community_id" pair per line, 0-based.
//
// A dense output array sized by node count, filled from
// whitespace-separated "id value" lines, tolerant of blank lines.
package communityfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"hypercoarsen/pkg/hypergraph"
)

// Read parses community assignments for n hypernodes from r. Any
// hypernode not mentioned in the file keeps PartitionID -1 (unassigned).
func Read(r io.Reader, n uint32) ([]hypergraph.PartitionID, error) {
	communities := make([]hypergraph.PartitionID, n)
	for i := range communities {
		communities[i] = -1
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("communityfile: line %d: expected \"hypernode_id community_id\", got %q", lineNo, line)
		}
		nodeID, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("communityfile: line %d: bad hypernode id: %w", lineNo, err)
		}
		commID, err := strconv.ParseInt(fields[1], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("communityfile: line %d: bad community id: %w", lineNo, err)
		}
		if nodeID >= uint64(n) {
			return nil, fmt.Errorf("communityfile: line %d: hypernode id %d >= %d", lineNo, nodeID, n)
		}
		communities[nodeID] = hypergraph.PartitionID(commID)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("communityfile: scan error: %w", err)
	}
	return communities, nil
}
