// internal/export/writer.go
package export

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"sla-tracker/internal/common/logger"
	"sla-tracker/internal/license"
)

// Writer saves search matches as JSON files when a request asks for it.
type Writer struct {
	dir    string
	logger logger.Logger
}

func NewWriter(dir string, log logger.Logger) *Writer {
	return &Writer{
		dir: dir,
		logger: log.With(map[string]interface{}{
			"component": "export",
		}),
	}
}

// Save writes the matches for a geography to a timestamped file and returns
// its path. The geography is "ny" for statewide searches.
func (w *Writer) Save(geography string, matches []license.Record) (string, error) {
	if geography == "" {
		geography = "ny"
	}
	name := fmt.Sprintf("%s_japanese_restaurants_%s_%s.json",
		slug(geography),
		time.Now().Format("20060102_150405"),
		uuid.NewString()[:8],
	)
	path := filepath.Join(w.dir, name)

	data, err := json.MarshalIndent(matches, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write export: %w", err)
	}

	w.logger.Info("saved search export", map[string]interface{}{
		"file":    path,
		"records": len(matches),
	})
	return path, nil
}

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, s)
}
