package testutil

// WithAssemblyData adds a small annual general meeting.
//
// Structure:
//
//	item 1 "Elections"        <- assignment 1 "Board election" (candidates 1, 2, 99)
//	item 2 "Motions"          <- motion 1 "A1" in category 1, tag 1
//	users 1 Alice Smith, 2 Bob Smithers, 3 Carol Jones
//	tags 1 budget, 2 statutes
//
// Candidate 99 does not exist, so the election resolves two candidates.
func (b *Builder) WithAssemblyData() *Builder {
	return b.
		WithUser(1, "Alice", "Smith", Username("asmith"), StructureLevel("Berlin")).
		WithUser(2, "Bob", "Smithers", Username("bob")).
		WithUser(3, "Carol", "Jones", Username("cjones"), StructureLevel("Hamburg")).
		WithTag(1, "budget").
		WithTag(2, "statutes").
		WithItem(1, "Elections", ItemNumber("TOP 1")).
		WithItem(2, "Motions", ItemNumber("TOP 2")).
		WithAssignment(1, "Board election",
			Description("Elect the new board"), Candidates(2, 99, 1), AgendaItem(1), Tags(2)).
		WithAssignment(2, "Auditor election", Candidates(3)).
		WithCategory(1, "Finance", "A").
		WithMotion(1, "A1", "Budget 2026",
			Text("The assembly approves the budget."), InCategory(1), Submitters(1),
			Supporters(3, 2), Tags(1), AgendaItem(2))
}
