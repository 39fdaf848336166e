package testtools

import (
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/ucitools/ucitest/pkg/toolbox"
)

func (s *Suite) listTestFilesTool() toolbox.Tool {
	return toolbox.Tool{
		Name:        "list_test_files",
		Description: "List available test files",
		InputSchema: json.RawMessage(`{"type":"object","properties":{}}`),
		Handler:     s.handleListTestFiles,
	}
}

func (s *Suite) handleListTestFiles(_ context.Context, _ json.RawMessage) (string, error) {
	names := s.testFiles()

	if len(names) == 0 {
		return "No test files found in test/ directory", nil
	}

	var b strings.Builder
	b.WriteString("Available test files:")
	for _, name := range names {
		b.WriteString("\n  - ")
		b.WriteString(name)
	}

	return b.String(), nil
}

// testFiles returns the sorted test file names under the test directory.
// A missing directory is the same as an empty one.
func (s *Suite) testFiles() []string {
	entries, err := os.ReadDir(s.cfg.TestDir)
	if err != nil {
		return nil
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "test_") && strings.HasSuffix(name, s.cfg.TestExt) {
			names = append(names, name)
		}
	}

	sort.Strings(names)

	return names
}
