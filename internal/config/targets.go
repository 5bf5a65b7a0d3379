package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadTargets reads target items from a text file, one per line. Blank
// lines and lines starting with '#' are ignored; so is anything after a
// '#' further along a line.
func LoadTargets(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open targets file %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	var targets []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.Index(line, "#"); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		targets = append(targets, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read targets file %s: %w", path, err)
	}
	if len(targets) == 0 {
		return nil, fmt.Errorf("targets file %s lists no items", path)
	}
	return targets, nil
}
