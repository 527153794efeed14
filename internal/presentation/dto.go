package presentation

import (
	"fmt"
	"time"

	"github.com/zjrosen/plenum/internal/app"
	"github.com/zjrosen/plenum/internal/models"
	"github.com/zjrosen/plenum/internal/search"
	"github.com/zjrosen/plenum/internal/viewmodel"
	"github.com/zjrosen/plenum/internal/views"
)

// RecordDTO is one matched record.
type RecordDTO struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

// SearchResultDTO is the matches of one collection.
type SearchResultDTO struct {
	Collection  string      `json:"collection"`
	VerboseName string      `json:"verbose_name"`
	Matches     []RecordDTO `json:"matches"`
}

// ModelDTO is one entry of the search catalog.
type ModelDTO struct {
	Collection   string `json:"collection"`
	Singular     string `json:"singular"`
	Plural       string `json:"plural"`
	DisplayOrder int    `json:"display_order"`
}

// RelatedDTO is a resolved relation of a view.
type RelatedDTO struct {
	Collection string `json:"collection"`
	ID         int    `json:"id"`
	Label      string `json:"label"`
}

// ViewDTO is a view object with its resolved relations.
type ViewDTO struct {
	Collection  string                  `json:"collection"`
	ID          int                     `json:"id"`
	VerboseName string                  `json:"verbose_name"`
	Label       string                  `json:"label"`
	Relations   map[string][]RelatedDTO `json:"relations,omitempty"`
	// Settings holds the election settings shared by all assignments.
	Settings *models.AssignmentConfig `json:"settings,omitempty"`
}

// FromSearchResults converts search results to DTOs.
func FromSearchResults(results []search.Result) []SearchResultDTO {
	dtos := make([]SearchResultDTO, len(results))
	for i, r := range results {
		matches := make([]RecordDTO, len(r.Models))
		for j, m := range r.Models {
			matches[j] = RecordDTO{ID: m.GetID(), Label: recordLabel(m)}
		}
		dtos[i] = SearchResultDTO{Collection: r.Collection, VerboseName: r.VerboseName, Matches: matches}
	}
	return dtos
}

// recordLabel is the first non-empty search fragment, or the id.
func recordLabel(s models.Searchable) string {
	for _, f := range s.FormatForSearch() {
		if f != "" {
			return f
		}
	}
	return fmt.Sprintf("#%d", s.GetID())
}

// FromModels converts the search catalog to DTOs.
func FromModels(catalog []search.Model) []ModelDTO {
	dtos := make([]ModelDTO, len(catalog))
	for i, m := range catalog {
		dtos[i] = ModelDTO{
			Collection:   m.Collection,
			Singular:     m.VerboseNameSingular,
			Plural:       m.VerboseNamePlural,
			DisplayOrder: m.DisplayOrder,
		}
	}
	return dtos
}

// FromView converts a view object, listing the relations of the view types
// that have them.
func FromView(v viewmodel.ViewModel) ViewDTO {
	dto := ViewDTO{
		Collection:  v.Collection(),
		ID:          v.ID(),
		VerboseName: v.VerboseName(false),
		Label:       viewLabel(v),
	}

	switch view := v.(type) {
	case *views.Assignment:
		dto.Relations = map[string][]RelatedDTO{
			"candidates":  related(view.Candidates()),
			"tags":        related(view.Tags()),
			"agenda_item": optional(view.AgendaItem()),
		}
		settings := models.AssignmentConfigDefaults()
		dto.Settings = &settings
	case *views.Motion:
		dto.Relations = map[string][]RelatedDTO{
			"submitters":  related(view.Submitters()),
			"supporters":  related(view.Supporters()),
			"tags":        related(view.Tags()),
			"category":    optional(view.Category()),
			"agenda_item": optional(view.AgendaItem()),
		}
	}
	return dto
}

func viewLabel(v viewmodel.ViewModel) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	return fmt.Sprintf("#%d", v.ID())
}

func related[V viewmodel.ViewModel](vs []V) []RelatedDTO {
	out := make([]RelatedDTO, len(vs))
	for i, v := range vs {
		out[i] = RelatedDTO{Collection: v.Collection(), ID: v.ID(), Label: viewLabel(v)}
	}
	return out
}

// optional converts a zero-or-one relation. A nil pointer inside the
// interface counts as unset.
func optional[V interface {
	viewmodel.ViewModel
	comparable
}](v V) []RelatedDTO {
	var zero V
	if v == zero {
		return []RelatedDTO{}
	}
	return related([]V{v})
}

// StatusDTO describes the replica.
type StatusDTO struct {
	SnapshotPath string              `json:"snapshot_path,omitempty"`
	SavedAt      *time.Time          `json:"saved_at,omitempty"`
	Records      map[string]int      `json:"records"`
	Dependencies map[string][]string `json:"dependencies"`
	CacheHits    int64               `json:"cache_hits"`
	CacheMisses  int64               `json:"cache_misses"`
	CachedViews  int                 `json:"cached_views"`
}

// FromStatus converts an app status to a DTO.
func FromStatus(st app.Status) StatusDTO {
	dto := StatusDTO{
		SnapshotPath: st.SnapshotPath,
		Records:      st.Records,
		Dependencies: st.Dependencies,
		CacheHits:    st.Cache.Hits,
		CacheMisses:  st.Cache.Misses,
		CachedViews:  st.CachedViews,
	}
	if !st.SavedAt.IsZero() {
		at := st.SavedAt.UTC()
		dto.SavedAt = &at
	}
	return dto
}
