// Package instance reads, writes, and generates knapsack problem instances
// in the OR-Library text format: an "n capacity" header followed by one
// "value weight" line per item, optionally preceded by comment lines that
// may carry the known optimal value and an instance name.
package instance

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"hyperknap/internal/knapsack"
)

var optimalPattern = regexp.MustCompile(`(?i)optimal[:\s]+(\d+)`)

// Read parses one instance from r. name is used when no "# instance:"
// comment overrides it.
func Read(r io.Reader, name string) (*knapsack.Instance, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lines := make([]string, 0, 64)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	optimal := 0
	start := 0
	for i, line := range lines {
		if !strings.HasPrefix(line, "#") {
			start = i
			break
		}
		if m := optimalPattern.FindStringSubmatch(line); m != nil {
			optimal, _ = strconv.Atoi(m[1])
		}
		if rest, ok := strings.CutPrefix(line, "# instance:"); ok {
			name = strings.TrimSpace(rest)
		}
		start = i + 1
	}
	if start >= len(lines) {
		return nil, fmt.Errorf("%w: empty instance file", knapsack.ErrInvalidInstance)
	}

	header := strings.Fields(lines[start])
	if len(header) < 2 {
		return nil, fmt.Errorf("%w: malformed header %q", knapsack.ErrInvalidInstance, lines[start])
	}
	n, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("%w: item count %q", knapsack.ErrInvalidInstance, header[0])
	}
	capacity, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("%w: capacity %q", knapsack.ErrInvalidInstance, header[1])
	}

	values := make([]int, 0, n)
	weights := make([]int, 0, n)
	for i := start + 1; i < start+1+n; i++ {
		if i >= len(lines) {
			return nil, fmt.Errorf("%w: expected %d items, found %d", knapsack.ErrInvalidInstance, n, len(values))
		}
		fields := strings.Fields(lines[i])
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: malformed item line %q", knapsack.ErrInvalidInstance, lines[i])
		}
		v, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%w: item value %q", knapsack.ErrInvalidInstance, fields[0])
		}
		w, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%w: item weight %q", knapsack.ErrInvalidInstance, fields[1])
		}
		values = append(values, v)
		weights = append(weights, w)
	}

	inst := &knapsack.Instance{
		Name:     name,
		Capacity: capacity,
		Values:   values,
		Weights:  weights,
		Optimal:  optimal,
	}
	if err := inst.Validate(); err != nil {
		return nil, err
	}
	return inst, nil
}

// ReadFile parses the instance at path, deriving the default name from the
// file name.
func ReadFile(path string) (*knapsack.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	inst, err := Read(f, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return inst, nil
}

// Write emits inst in the same format Read accepts, including the optimal
// and name comments when present.
func Write(w io.Writer, inst *knapsack.Instance) error {
	if inst.Optimal > 0 {
		if _, err := fmt.Fprintf(w, "# optimal: %d\n", inst.Optimal); err != nil {
			return err
		}
	}
	if inst.Name != "" {
		if _, err := fmt.Fprintf(w, "# instance: %s\n", inst.Name); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%d %d\n", inst.N(), inst.Capacity); err != nil {
		return err
	}
	for i := 0; i < inst.N(); i++ {
		if _, err := fmt.Fprintf(w, "%d %d\n", inst.Values[i], inst.Weights[i]); err != nil {
			return err
		}
	}
	return nil
}

func WriteFile(path string, inst *knapsack.Instance) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := Write(f, inst); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// LoadDir reads every .txt instance under dir, sorted by file name.
func LoadDir(dir string) ([]*knapsack.Instance, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)

	instances := make([]*knapsack.Instance, 0, len(names))
	for _, name := range names {
		inst, err := ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		instances = append(instances, inst)
	}
	return instances, nil
}
