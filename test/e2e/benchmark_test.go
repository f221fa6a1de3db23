package e2e_test

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// generateNestedJSON creates a deeply nested JSON structure for benchmarking
func generateNestedJSON(depth int, width int) map[string]interface{} {
	if depth <= 0 {
		return map[string]interface{}{
			"leaf_value": "data",
			"count":      rand.Intn(100),
			"enabled":    rand.Intn(2) == 1,
		}
	}

	result := make(map[string]interface{})
	for i := 0; i < width; i++ {
		key := fmt.Sprintf("nested_%d_%d", depth, i)
		result[key] = generateNestedJSON(depth-1, width)
	}
	return result
}

// deepestPath is the property path to the leaf string of generateNestedJSON
func deepestPath(depth int) string {
	parts := []string{"res"}
	for d := depth; d > 0; d-- {
		parts = append(parts, fmt.Sprintf("nested_%d_0", d))
	}
	parts = append(parts, "leaf_value")
	return strings.Join(parts, ".")
}

// BenchmarkDeepNesting benchmarks resolving the deepest leaf of nested documents
func BenchmarkDeepNesting(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	depths := []struct {
		name  string
		depth int
		width int
	}{
		{"Depth3Width3", 3, 3},   // Moderate nesting
		{"Depth5Width2", 5, 2},   // Deep nesting
		{"Depth2Width10", 2, 10}, // Wide but shallow
	}

	for _, depth := range depths {
		b.Run(depth.name, func(b *testing.B) {
			jsonData, err := json.MarshalIndent(generateNestedJSON(depth.depth, depth.width), "", "  ")
			require.NoError(b, err)

			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", depth.name))
			require.NoError(b, os.WriteFile(jsonFile, jsonData, 0644))

			path := deepestPath(depth.depth)
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../..", "resolve", "-i", jsonFile, path)
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))
				require.Equal(b, "data", strings.TrimSpace(string(output)))
			}
		})
	}
}

// BenchmarkArrayRendering benchmarks rendering the tree of large arrays
func BenchmarkArrayRendering(b *testing.B) {
	// Skip in short mode
	if testing.Short() {
		b.Skip("skipping benchmark in short mode")
	}

	tempDir := b.TempDir()

	sizes := []struct {
		name      string
		arraySize int
	}{
		{"Array100", 100},
		{"Array1000", 1000},
		{"Array5000", 5000},
	}

	for _, size := range sizes {
		b.Run(size.name, func(b *testing.B) {
			array := make([]map[string]interface{}, size.arraySize)
			for i := 0; i < size.arraySize; i++ {
				array[i] = map[string]interface{}{
					"id":       i,
					"name":     fmt.Sprintf("Item %d", i),
					"value":    rand.Float64() * 100,
					"active":   i%2 == 0,
					"category": fmt.Sprintf("Category %d", i%5),
				}
			}

			jsonData, err := json.Marshal(array)
			require.NoError(b, err)

			jsonFile := filepath.Join(tempDir, fmt.Sprintf("%s.json", size.name))
			require.NoError(b, os.WriteFile(jsonFile, jsonData, 0644))

			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				cmd := exec.Command("go", "run", "../..", "-i", jsonFile, "render", "--targets")
				output, err := cmd.CombinedOutput()
				require.NoError(b, err, "CLI command failed: %s", string(output))
			}
		})
	}
}
