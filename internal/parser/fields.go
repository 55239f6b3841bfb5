package parser

// Scope says which record a field is written to.
type Scope int

const (
	ScopeChannel Scope = iota
	ScopeArticle
)

type Field int

const (
	FieldTitle Field = iota
	FieldLink
	FieldDescription
	FieldPubDate
)

// FieldRef names a semantic field together with the element that opened it.
type FieldRef struct {
	Path  string
	Tag   string
	Scope Scope
	Field Field
}

func (r FieldRef) String() string {
	return r.Path
}

const (
	itemTag    = "item"
	itemPrefix = "item > "
)

var fieldTable = []FieldRef{
	{Path: "title", Tag: "title", Scope: ScopeChannel, Field: FieldTitle},
	{Path: "link", Tag: "link", Scope: ScopeChannel, Field: FieldLink},
	{Path: "description", Tag: "description", Scope: ScopeChannel, Field: FieldDescription},
	{Path: itemPrefix + "title", Tag: "title", Scope: ScopeArticle, Field: FieldTitle},
	{Path: itemPrefix + "link", Tag: "link", Scope: ScopeArticle, Field: FieldLink},
	{Path: itemPrefix + "description", Tag: "description", Scope: ScopeArticle, Field: FieldDescription},
	{Path: itemPrefix + "pubDate", Tag: "pubDate", Scope: ScopeArticle, Field: FieldPubDate},
}

var fieldsByPath = func() map[string]FieldRef {
	m := make(map[string]FieldRef, len(fieldTable))
	for _, ref := range fieldTable {
		m[ref.Path] = ref
	}
	return m
}()

// Resolve maps a hierarchical tag path such as "item > pubDate" to the field it
// feeds. Unknown paths report false.
func Resolve(path string) (FieldRef, bool) {
	ref, ok := fieldsByPath[path]
	return ref, ok
}
