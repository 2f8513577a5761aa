package callgraph

import (
	"encoding/json"
	"os"
)

// LoadEdgesJSON reads a flat []Edge JSON array from path, the format the
// CLI's `slice` command expects as input.
func LoadEdgesJSON(path string) ([]Edge, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var edges []Edge
	if err := json.Unmarshal(data, &edges); err != nil {
		return nil, err
	}
	return edges, nil
}
