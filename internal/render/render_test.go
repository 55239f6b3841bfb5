package render

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestSanitizeHTML_RemovesDangerousTagsAndAttrs(t *testing.T) {
	in := `<div onclick="alert(1)"><script>alert(1)</script><a href="javascript:alert(1)" style="color:red">x</a><img src="data:image/png;base64,abcd" onerror="x"><iframe src="https://evil"></iframe></div>`
	out := SanitizeHTML(in)

	for _, bad := range []string{"<script", "onclick=", "onerror=", "style=", "<iframe", "javascript:"} {
		if strings.Contains(strings.ToLower(out), bad) {
			t.Fatalf("expected %q to be removed, got: %s", bad, out)
		}
	}
	if !strings.Contains(out, `data:image/png`) {
		t.Fatalf("expected safe data:image src to be preserved: %s", out)
	}
}

func TestSanitizeHTML_PreservesSafeMarkup(t *testing.T) {
	in := `<p>Hello <a href="https://example.com">world</a></p>`
	out := SanitizeHTML(in)
	if !strings.Contains(out, `<a href="https://example.com">world</a>`) {
		t.Fatalf("safe link should be preserved, got: %s", out)
	}
}

func TestHTMLToMarkdown(t *testing.T) {
	r := NewRenderer(StyleNoTTY)
	md := r.HTMLToMarkdown(`<p>This is <strong>post</strong> number 28.</p><script>x()</script>`)
	if md != "This is **post** number 28." {
		t.Fatalf("markdown = %q", md)
	}
	if r.HTMLToMarkdown("   ") != "" {
		t.Fatalf("expected empty markdown for blank input")
	}
}

func TestSummaryCompactsAndTruncates(t *testing.T) {
	r := NewRenderer(StyleNoTTY)
	if got := r.Summary("<p>one\n\n two</p>"); got != "one two" {
		t.Fatalf("summary = %q", got)
	}
	long := "<p>" + strings.Repeat("word ", 200) + "</p>"
	got := r.Summary(long)
	if len(got) != summaryMax || !strings.HasSuffix(got, "...") {
		t.Fatalf("summary len = %d (%q...)", len(got), got[:10])
	}
}

func TestTerminalRendersAndCaches(t *testing.T) {
	r := NewRenderer(StyleNoTTY)
	out := r.Terminal(`<p>Hello <em>there</em></p>`, 40)
	if !strings.Contains(out, "Hello") || !strings.Contains(out, "there") {
		t.Fatalf("terminal output = %q", out)
	}
	if r.cache.Len() != 1 {
		t.Fatalf("cache len = %d, want 1", r.cache.Len())
	}
	again := r.Terminal(`<p>Hello <em>there</em></p>`, 40)
	if again != out {
		t.Fatalf("cached output differs")
	}
	if r.cache.Len() != 1 {
		t.Fatalf("cache len = %d after repeat, want 1", r.cache.Len())
	}
	_ = r.Terminal(`<p>Hello <em>there</em></p>`, 60)
	if r.cache.Len() != 2 {
		t.Fatalf("width must be part of the cache key")
	}
	if r.Terminal("", 40) != "" {
		t.Fatalf("blank description should render empty")
	}
}

func TestCompactTextCutsOnCharacterBoundaries(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{in: "  a \n\t b  ", max: 0, want: "a b"},
		{in: "abcdefghij", max: 6, want: "abc..."},
		{in: "short", max: 10, want: "short"},
		{in: strings.Repeat("日本語", 20), max: 30, want: strings.Repeat("日本語", 4) + "日..."},
		{in: "café au lait", max: 8, want: "café ..."},
	}
	for _, tt := range tests {
		got := CompactText(tt.in, tt.max)
		if !utf8.ValidString(got) {
			t.Fatalf("CompactText(%q, %d) = %q is not valid UTF-8", tt.in, tt.max, got)
		}
		if got != tt.want {
			t.Fatalf("CompactText(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
		}
	}
}

func TestSummaryOfMultibyteDescription(t *testing.T) {
	r := NewRenderer(StyleNoTTY)
	got := r.Summary("<p>" + strings.Repeat("Größenänderung ", 40) + "</p>")
	if !utf8.ValidString(got) || !strings.HasSuffix(got, "...") {
		t.Fatalf("summary = %q", got)
	}
}
