package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// Summary aggregates a session log.
type Summary struct {
	LogEntries int `json:"log_entries"`
	Lines      int `json:"lines"`
	Children   int `json:"children"`
	// Failures counts abnormal terminations by "exit N" or signal name.
	Failures map[string]int `json:"failures"`
	// Errors counts diagnostics by kind.
	Errors map[string]int `json:"errors"`
	// Sessions holds every distinct session ID seen.
	Sessions []string `json:"sessions"`

	seen map[string]bool
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{
		Failures: make(map[string]int),
		Errors:   make(map[string]int),
		seen:     make(map[string]bool),
	}
}

// Update adds an entry to the summary.
func (s *Summary) Update(le *LogEntry) {
	s.LogEntries++
	if le.SessionID != "" && !s.seen[le.SessionID] {
		s.seen[le.SessionID] = true
		s.Sessions = append(s.Sessions, le.SessionID)
	}

	switch {
	case le.Line != nil:
		s.Lines++
	case le.Termination != nil:
		s.Children++
		t := le.Termination
		switch {
		case t.SignalName != "":
			s.Failures[t.SignalName]++
		case t.ExitStatus != 0:
			s.Failures[fmt.Sprintf("exit %d", t.ExitStatus)]++
		}
	case le.Error != nil:
		s.Errors[le.Error.Kind]++
	}
}

// WriteText prints the summary as aligned columns.
func (s *Summary) WriteText(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 8, 8, 2, ' ', 0)
	fmt.Fprintf(tw, "entries\t%d\n", s.LogEntries)
	fmt.Fprintf(tw, "sessions\t%d\n", len(s.Sessions))
	fmt.Fprintf(tw, "lines\t%d\n", s.Lines)
	fmt.Fprintf(tw, "children\t%d\n", s.Children)
	for _, k := range sortedKeys(s.Failures) {
		fmt.Fprintf(tw, "failure\t%s\t%d\n", k, s.Failures[k])
	}
	for _, k := range sortedKeys(s.Errors) {
		fmt.Fprintf(tw, "error\t%s\t%d\n", k, s.Errors[k])
	}
	return tw.Flush()
}

// WriteJSON prints the summary as an indented JSON object.
func (s *Summary) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}

func sortedKeys(m map[string]int) []string {
	var keys []string
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
