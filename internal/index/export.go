// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package index

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/MJy1023/PaperPostman/pkg/types"
)

const exportLimit = 100000

// ExportYAML writes every indexed paper to <dataDir>/index/export.yaml.
func (s *Store) ExportYAML(ctx context.Context) error {
	results, err := s.Query(ctx, "", QueryOptions{MaxResults: exportLimit})
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}

	papers := make([]types.Paper, len(results))
	for i, r := range results {
		papers[i] = r.Paper
	}

	data, err := yaml.Marshal(papers)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}

	path := filepath.Join(s.dataDir, indexDir, "export.yaml")
	return os.WriteFile(path, data, 0o644)
}
