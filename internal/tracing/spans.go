package tracing

// Span attribute keys.
const (
	AttrCollection    = "record.collection"
	AttrRecordID      = "record.id"
	AttrSearchQuery   = "search.query"
	AttrSearchIn      = "search.collections"
	AttrSearchResults = "search.results"
	AttrSearchMatches = "search.matches"
	AttrRecordCount   = "snapshot.records"

	AttrErrorMessage = "error.message"
)

// Span names.
const (
	SpanSearch   = "search.query"
	SpanView     = "viewmodel.get"
	SpanReload   = "snapshot.reload"
	SpanImport   = "snapshot.import"
	SpanRemove   = "snapshot.remove"
	SpanSnapshot = "snapshot.save"
)
