package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/pharmadesk/internal/backoffice"
	"github.com/mesh-intelligence/pharmadesk/internal/storage"
	"github.com/mesh-intelligence/pharmadesk/internal/store"
)

const dateLayout = "2006-01-02"

// session is an attached backend with the back-office stores on top of it.
type session struct {
	settings settings
	backend  *storage.Backend
	office   *backoffice.Backoffice
}

// openSession loads settings and attaches the configured backend. The caller
// must defer s.Close().
func openSession(flags *rootFlags, opts ...store.Option) (*session, error) {
	cfg, err := loadSettings(flags)
	if err != nil {
		return nil, err
	}

	backend := storage.NewBackend()
	if err := backend.Attach(cfg.Storage); err != nil {
		return nil, fmt.Errorf("attach backend: %w", err)
	}

	return &session{
		settings: cfg,
		backend:  backend,
		office:   backoffice.New(backend, opts...),
	}, nil
}

// Close detaches the backend.
func (s *session) Close() error {
	return s.backend.Detach()
}

// withSession opens a session, runs fn and closes the session.
func withSession(flags *rootFlags, fn func(s *session) error) error {
	s, err := openSession(flags)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}

// printJSON writes v as indented JSON.
func printJSON(out io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	fmt.Fprintln(out, string(data))
	return nil
}

// printTable prints rows in a human-readable table format with a header
// underline, trimming trailing whitespace from each line.
func printTable(out io.Writer, headers []string, rows [][]string) {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(w, strings.Join(headers, "\t"))
	underline := make([]string, len(headers))
	for i, h := range headers {
		underline[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(w, strings.Join(underline, "\t"))
	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	w.Flush()

	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(out, strings.TrimRight(line, " "))
	}
}

// output prints v as JSON in --json mode and as a table otherwise. An empty
// table prints the empty message instead.
func output(cmd *cobra.Command, flags *rootFlags, v any, empty string, headers []string, rows [][]string) error {
	out := cmd.OutOrStdout()
	if flags.jsonMode {
		return printJSON(out, v)
	}
	if len(rows) == 0 {
		fmt.Fprintln(out, empty)
		return nil
	}
	printTable(out, headers, rows)
	return nil
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return ""
}

// parseDate parses a YYYY-MM-DD flag value. When endOfDay is set the result
// is the last instant of that day so ranges stay inclusive. An empty value
// yields nil.
func parseDate(name, value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return nil, userErrorf("invalid --%s %q (expected YYYY-MM-DD)", name, value)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// splitList splits a comma-separated flag value, dropping blanks.
func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// parsePair parses "<a>:<b>" flag values such as line items and cash counts.
func parsePair(flag, value string, parts int) ([]string, error) {
	fields := strings.Split(value, ":")
	if len(fields) != parts {
		return nil, userErrorf("invalid --%s %q", flag, value)
	}
	return fields, nil
}
