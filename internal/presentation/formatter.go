package presentation

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#1D4ED8", Dark: "#60A5FA"})
	idStyle     = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	emptyStyle  = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
)

// Formatter handles output formatting
type Formatter struct {
	writer io.Writer
	json   bool
}

// NewFormatter creates a formatter writing styled text, or indented JSON
// when asJSON is set.
func NewFormatter(writer io.Writer, asJSON bool) *Formatter {
	return &Formatter{writer: writer, json: asJSON}
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// FormatSearchResults prints one section per collection.
func (f *Formatter) FormatSearchResults(results []SearchResultDTO) error {
	if f.json {
		return f.encode(results)
	}
	var b strings.Builder
	for _, r := range results {
		fmt.Fprintf(&b, "%s %s\n", headerStyle.Render(r.VerboseName), idStyle.Render(fmt.Sprintf("(%d)", len(r.Matches))))
		if len(r.Matches) == 0 {
			fmt.Fprintf(&b, "  %s\n", emptyStyle.Render("no matches"))
		}
		for _, m := range r.Matches {
			fmt.Fprintf(&b, "  %s %s\n", idStyle.Render(fmt.Sprintf("%4d", m.ID)), m.Label)
		}
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatModels prints the search catalog.
func (f *Formatter) FormatModels(models []ModelDTO) error {
	if f.json {
		return f.encode(models)
	}
	var b strings.Builder
	for _, m := range models {
		fmt.Fprintf(&b, "%s %-24s %s / %s\n",
			idStyle.Render(fmt.Sprintf("%3d", m.DisplayOrder)), m.Collection, m.Singular, m.Plural)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatView prints a view with its relations in name order.
func (f *Formatter) FormatView(v ViewDTO) error {
	if f.json {
		return f.encode(v)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", headerStyle.Render(v.VerboseName), idStyle.Render(fmt.Sprintf("%s/%d", v.Collection, v.ID)))
	fmt.Fprintf(&b, "  %s\n", v.Label)

	for _, name := range sortedKeys(v.Relations) {
		rel := v.Relations[name]
		if len(rel) == 0 {
			fmt.Fprintf(&b, "  %s: %s\n", name, emptyStyle.Render("none"))
			continue
		}
		labels := make([]string, len(rel))
		for i, r := range rel {
			labels[i] = r.Label
		}
		fmt.Fprintf(&b, "  %s: %s\n", name, strings.Join(labels, ", "))
	}
	if v.Settings != nil {
		fmt.Fprintf(&b, "  %s %s, %d ballot papers (%s)\n", idStyle.Render("pdf:"),
			v.Settings.PDFTitle, v.Settings.BallotPapersNumber, v.Settings.BallotPapersSelection)
	}
	_, err := io.WriteString(f.writer, b.String())
	return err
}

// FormatStatus prints the replica summary with collections in name order.
func (f *Formatter) FormatStatus(st StatusDTO) error {
	if f.json {
		return f.encode(st)
	}
	var b strings.Builder
	snapshot := st.SnapshotPath
	if snapshot == "" {
		snapshot = emptyStyle.Render("in memory")
	}
	fmt.Fprintf(&b, "%s %s\n", headerStyle.Render("Snapshot"), snapshot)
	if st.SavedAt != nil {
		fmt.Fprintf(&b, "  saved: %s\n", st.SavedAt.Format(time.RFC3339))
	} else {
		fmt.Fprintf(&b, "  saved: %s\n", emptyStyle.Render("never"))
	}

	fmt.Fprintf(&b, "%s\n", headerStyle.Render("Records"))
	for _, c := range sortedKeys(st.Records) {
		fmt.Fprintf(&b, "  %-24s %d\n", c, st.Records[c])
	}

	fmt.Fprintf(&b, "%s\n", headerStyle.Render("Dependencies"))
	for _, c := range sortedKeys(st.Dependencies) {
		deps := st.Dependencies[c]
		if len(deps) == 0 {
			fmt.Fprintf(&b, "  %-24s %s\n", c, emptyStyle.Render("none"))
			continue
		}
		fmt.Fprintf(&b, "  %-24s %s\n", c, strings.Join(deps, ", "))
	}

	fmt.Fprintf(&b, "%s %d cached, %d hits, %d misses\n",
		headerStyle.Render("View cache"), st.CachedViews, st.CacheHits, st.CacheMisses)
	_, err := io.WriteString(f.writer, b.String())
	return err
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// FormatResult prints any other command result as JSON.
func (f *Formatter) FormatResult(result any) error {
	return f.encode(result)
}
