package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/tidwall/gjson"
)

// Read returns at most maxLines from the end of the file at path. A maxLines
// of zero or less returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

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

var (
	tsStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	fieldStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#87AFFF"))
	levelStyle = map[string]lipgloss.Style{
		"DEBUG": lipgloss.NewStyle().Foreground(lipgloss.Color("#87CEEB")).Bold(true),
		"INFO":  lipgloss.NewStyle().Foreground(lipgloss.Color("#5FD75F")).Bold(true),
		"WARN":  lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700")).Bold(true),
		"ERROR": lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
	}
)

// reserved keys are rendered positionally, not as key=value fields.
var reserved = map[string]bool{"ts": true, "level": true, "msg": true, "logger": true, "caller": true}

// FormatLine turns a zap JSON entry into "ts LEVEL msg key=value ...". Lines
// that are not JSON objects are returned unchanged.
func FormatLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "{") || !gjson.Valid(trimmed) {
		return line
	}
	entry := gjson.Parse(trimmed)

	level := strings.ToUpper(entry.Get("level").String())
	style, ok := levelStyle[level]
	if !ok {
		style = lipgloss.NewStyle().Bold(true)
	}

	var fields []string
	entry.ForEach(func(key, value gjson.Result) bool {
		if reserved[key.String()] {
			return true
		}
		fields = append(fields, fieldStyle.Render(key.String())+"="+value.String())
		return true
	})

	parts := []string{
		tsStyle.Render(entry.Get("ts").String()),
		style.Render(fmt.Sprintf("%-5s", level)),
		entry.Get("msg").String(),
	}
	parts = append(parts, fields...)
	return strings.Join(parts, " ")
}

// FormatLines applies FormatLine to each line.
func FormatLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = FormatLine(line)
	}
	return out
}

// Levels counts entries per level, for the logs summary.
func Levels(lines []string) []string {
	counts := map[string]int{}
	for _, line := range lines {
		if lvl := gjson.Get(line, "level").String(); lvl != "" {
			counts[strings.ToUpper(lvl)]++
		}
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]string, len(keys))
	for i, k := range keys {
		out[i] = fmt.Sprintf("%s=%d", k, counts[k])
	}
	return out
}
