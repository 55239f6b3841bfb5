package parser

import "testing"

func TestResolve(t *testing.T) {
	cases := []struct {
		path  string
		ok    bool
		scope Scope
		field Field
		tag   string
	}{
		{path: "title", ok: true, scope: ScopeChannel, field: FieldTitle, tag: "title"},
		{path: "link", ok: true, scope: ScopeChannel, field: FieldLink, tag: "link"},
		{path: "description", ok: true, scope: ScopeChannel, field: FieldDescription, tag: "description"},
		{path: "item > title", ok: true, scope: ScopeArticle, field: FieldTitle, tag: "title"},
		{path: "item > link", ok: true, scope: ScopeArticle, field: FieldLink, tag: "link"},
		{path: "item > description", ok: true, scope: ScopeArticle, field: FieldDescription, tag: "description"},
		{path: "item > pubDate", ok: true, scope: ScopeArticle, field: FieldPubDate, tag: "pubDate"},
		{path: "pubDate"},
		{path: "item > guid"},
		{path: "item"},
		{path: ""},
	}

	for _, tc := range cases {
		ref, ok := Resolve(tc.path)
		if ok != tc.ok {
			t.Fatalf("Resolve(%q) ok = %v, want %v", tc.path, ok, tc.ok)
		}
		if !ok {
			continue
		}
		if ref.Scope != tc.scope || ref.Field != tc.field || ref.Tag != tc.tag {
			t.Fatalf("Resolve(%q) = %+v, want scope=%v field=%v tag=%q", tc.path, ref, tc.scope, tc.field, tc.tag)
		}
		if ref.String() != tc.path {
			t.Fatalf("String() = %q, want %q", ref.String(), tc.path)
		}
	}
}
