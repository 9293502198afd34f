package claudemd

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const projectDoc = `# CLAUDE.md

Intro paragraph.

## About You

@old/prompt.md
Some notes about me.

## About the Repository

This is my awesome project.
`

func TestUpsertSectionReplacesExisting(t *testing.T) {
	got := UpsertSection(projectDoc, AboutYouHeader, []string{"@.ai/prompts/new/new.md"})

	want := `# CLAUDE.md

Intro paragraph.

## About You

@.ai/prompts/new/new.md

## About the Repository

This is my awesome project.
`
	if got != want {
		t.Fatalf("unexpected document:\n%s", got)
	}
}

func TestUpsertSectionAppendsWhenAbsent(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "trailing newline",
			doc:  "# Title\n\nText.\n",
			want: "# Title\n\nText.\n\n## About You\n\n@a.md\n",
		},
		{
			name: "no trailing newline",
			doc:  "# Title",
			want: "# Title\n\n## About You\n\n@a.md\n",
		},
		{
			name: "already blank line",
			doc:  "# Title\n\n",
			want: "# Title\n\n## About You\n\n@a.md\n",
		},
		{
			name: "empty document",
			doc:  "",
			want: "## About You\n\n@a.md\n",
		},
		{
			name: "header without blank line is not a section",
			doc:  "## About You\n@x.md\n",
			want: "## About You\n@x.md\n\n## About You\n\n@a.md\n",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := UpsertSection(tc.doc, AboutYouHeader, []string{"@a.md"})
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUpsertSectionIdempotent(t *testing.T) {
	docs := []string{
		projectDoc,
		"",
		"# Title",
		"## About You\n\n## Next\n",
		"## About You\n\n@a.md\n\n\n\n## Next\nkeep\n",
		"intro\n## About You\n\nfree text without end",
		"## About You\n\n```\n## not a heading\n```\n# Top\n",
		"# CLAUDE.md\n\n## About You\n",
		"# CLAUDE.md\n\n## About You",
		"## About You\n\n",
	}
	lineSets := [][]string{
		{"@.ai/prompts/max/MAX.md"},
		{"@a.md", "@b.md", "@c.md"},
		{},
	}

	for _, doc := range docs {
		for _, lines := range lineSets {
			once := UpsertSection(doc, AboutYouHeader, lines)
			twice := UpsertSection(once, AboutYouHeader, lines)
			if once != twice {
				t.Fatalf("not idempotent for doc %q lines %v:\nonce:  %q\ntwice: %q", doc, lines, once, twice)
			}
		}
	}
}

func TestUpsertSectionHeaderOnLastLine(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{name: "trailing newline", doc: "# CLAUDE.md\n\n## About You\n"},
		{name: "no trailing newline", doc: "# CLAUDE.md\n\n## About You"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := UpsertSection(tt.doc, AboutYouHeader, []string{"@.ai/prompts/max/MAX.md"})
			want := "# CLAUDE.md\n\n## About You\n\n@.ai/prompts/max/MAX.md\n"
			if got != want {
				t.Fatalf("UpsertSection() = %q, want %q", got, want)
			}
			if strings.Count(got, AboutYouHeader) != 1 {
				t.Errorf("header duplicated: %q", got)
			}
		})
	}
}

func TestUpsertSectionPreservesOtherSections(t *testing.T) {
	doc := "# Top\n\n## Before\n\nkeep  me\n\n\n## About You\n\n@x.md\n\n### Sub heading inside\n\nstuff\n\n## After\n\n  indented\n\n"
	got := UpsertSection(doc, AboutYouHeader, []string{"@y.md"})

	if !strings.HasPrefix(got, "# Top\n\n## Before\n\nkeep  me\n\n\n## About You\n\n") {
		t.Errorf("prefix changed: %q", got)
	}
	if !strings.HasSuffix(got, "## After\n\n  indented\n\n") {
		t.Errorf("suffix changed: %q", got)
	}
	if strings.Contains(got, "### Sub heading inside") {
		t.Errorf("level 3 heading belongs to the managed section: %q", got)
	}
	if strings.Count(got, "@y.md") != 1 {
		t.Errorf("expected one reference: %q", got)
	}
}

func TestUpsertSectionRunsToEOF(t *testing.T) {
	doc := "intro\n\n## About You\n\n@old.md\ntrailing text"
	got := UpsertSection(doc, AboutYouHeader, []string{"@new.md"})
	if got != "intro\n\n## About You\n\n@new.md\n" {
		t.Fatalf("got %q", got)
	}
}

func TestUpsertSectionOrder(t *testing.T) {
	got := UpsertSection(Preamble, AboutYouHeader, []string{"@.ai/prompts/a.md", "@.ai/prompts/b.md", "@.ai/prompts/c.md"})
	lines := strings.Split(got, "\n")
	idx := -1
	for i, l := range lines {
		if l == AboutYouHeader {
			idx = i
		}
	}
	if idx < 0 {
		t.Fatalf("header missing: %q", got)
	}
	want := []string{"@.ai/prompts/a.md", "@.ai/prompts/b.md", "@.ai/prompts/c.md"}
	if !reflect.DeepEqual(lines[idx+2:idx+5], want) {
		t.Fatalf("lines = %v", lines[idx+2:idx+5])
	}
}

func TestNewDocument(t *testing.T) {
	got := NewDocument(AboutYouHeader, []string{"@.ai/prompts/max/MAX.md"})
	want := Preamble + "## About You\n\n@.ai/prompts/max/MAX.md\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestExtractSectionReferences(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "mixed references",
			doc:  "## About You\n\n@a/b.md\nsome text @c/d.md end\n@e.json\n",
			want: []string{"a/b.md", "c/d.md"},
		},
		{
			name: "only inside the section",
			doc:  "@outside.md\n\n## About You\n\n@in.md\n\n## Other\n\n@other.md\n",
			want: []string{"in.md"},
		},
		{
			name: "duplicates kept",
			doc:  "## About You\n\n@a.md @a.md\n@./b.md\n",
			want: []string{"a.md", "a.md", "./b.md"},
		},
		{
			name: "email is not a reference",
			doc:  "## About You\n\nmail me@example.md\n",
			want: []string{},
		},
		{
			name: "section absent",
			doc:  "# Title\n\n@a.md\n",
			want: []string{},
		},
		{
			name: "empty document",
			doc:  "",
			want: []string{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ExtractSectionReferences(tc.doc, AboutYouHeader)
			if !reflect.DeepEqual(got, tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestReferenceLines(t *testing.T) {
	got := ReferenceLines([]string{".ai/prompts/max/MAX.md", `custom\dir\A.md`})
	want := []string{"@.ai/prompts/max/MAX.md", "@custom/dir/A.md"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestUpdateFileAndReadReferences(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)

	refs, err := ReadReferences(path, AboutYouHeader)
	if err != nil || len(refs) != 0 {
		t.Fatalf("missing file: refs=%v err=%v", refs, err)
	}

	changed, err := UpdateFile(path, AboutYouHeader, []string{"@.ai/prompts/max/MAX.md"})
	if err != nil || !changed {
		t.Fatalf("create: changed=%v err=%v", changed, err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.HasPrefix(string(data), "# CLAUDE.md\n") {
		t.Errorf("preamble missing: %q", data)
	}

	changed, err = UpdateFile(path, AboutYouHeader, []string{"@.ai/prompts/max/MAX.md"})
	if err != nil || changed {
		t.Fatalf("second update should be a no-op: changed=%v err=%v", changed, err)
	}

	refs, err = ReadReferences(path, AboutYouHeader)
	if err != nil {
		t.Fatalf("ReadReferences() error = %v", err)
	}
	if !reflect.DeepEqual(refs, []string{".ai/prompts/max/MAX.md"}) {
		t.Fatalf("refs = %v", refs)
	}
}
