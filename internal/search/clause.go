package search

// Clause is a backend query clause. The set is closed: backends translate
// each variant with a type switch. A nil Clause matches every document.
type Clause interface {
	clause()
}

// Term matches an exact keyword value.
type Term struct {
	Field string
	Value string
}

// Terms matches any of the exact keyword values. No values matches nothing.
type Terms struct {
	Field  string
	Values []string
}

// Nested scopes a clause to objects under Path.
type Nested struct {
	Path  string
	Query Clause
}

// MatchPhrase matches analyzed text as a phrase.
type MatchPhrase struct {
	Field string
	Text  string
}

// QueryString is a full-text query over a set of fields.
type QueryString struct {
	Query  string
	Fields []string
}

// AnyOf matches documents matching at least one clause.
type AnyOf []Clause

func (Term) clause()        {}
func (Terms) clause()       {}
func (Nested) clause()      {}
func (MatchPhrase) clause() {}
func (QueryString) clause() {}
func (AnyOf) clause()       {}
