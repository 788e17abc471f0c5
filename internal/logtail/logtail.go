package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap/zapcore"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file. A missing file yields no
// lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one line of the console-encoded log file.
type Entry struct {
	Time    string
	Level   zapcore.Level
	Caller  string
	Message string
	Fields  string // JSON object, empty when the entry has no fields
	Raw     string
	Parsed  bool // false for continuation lines such as stack traces
}

// ParseLine splits a tab-separated zap console line. Lines that do not carry
// a known level are returned unparsed.
func ParseLine(line string) Entry {
	entry := Entry{Raw: line}
	parts := strings.SplitN(line, "\t", 5)
	if len(parts) < 4 {
		return entry
	}
	level, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(parts[1])))
	if err != nil {
		return entry
	}
	entry.Time = parts[0]
	entry.Level = level
	entry.Caller = parts[2]
	entry.Message = parts[3]
	if len(parts) == 5 {
		entry.Fields = parts[4]
	}
	entry.Parsed = true
	return entry
}

// FilterLevel keeps entries at or above min. Unparsed lines follow the
// entry before them.
func FilterLevel(lines []string, min zapcore.Level) []Entry {
	out := make([]Entry, 0, len(lines))
	keep := false
	for _, line := range lines {
		entry := ParseLine(line)
		if entry.Parsed {
			keep = entry.Level >= min
		}
		if keep {
			out = append(out, entry)
		}
	}
	return out
}
