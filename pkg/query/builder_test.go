package query_test

import (
	"testing"

	"github.com/parley-labs/parley/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("public", "clauses", "cl").
		Project("id", "id").
		Project("clause_type", "clauseType").
		Project("ingested_at", "ingestedAt")
}

func ptr(s string) *string { return &s }

func TestProjectionMapTable(t *testing.T) {
	p := testProjection()
	got := p.Table()
	want := "public.clauses cl"
	if got != want {
		t.Errorf("Table() = %q, want %q", got, want)
	}
}

func TestProjectionMapAlias(t *testing.T) {
	p := testProjection()
	if got := p.Alias(); got != "cl" {
		t.Errorf("Alias() = %q, want %q", got, "cl")
	}
}

func TestProjectionMapColumns(t *testing.T) {
	p := testProjection()
	got := p.Columns()
	want := "cl.id, cl.clause_type, cl.ingested_at"
	if got != want {
		t.Errorf("Columns() = %q, want %q", got, want)
	}
}

func TestProjectionMapColumnList(t *testing.T) {
	p := testProjection()
	got := p.ColumnList()
	if len(got) != 3 {
		t.Fatalf("ColumnList() length = %d, want 3", len(got))
	}
	want := []string{"cl.id", "cl.clause_type", "cl.ingested_at"}
	for i, col := range got {
		if col != want[i] {
			t.Errorf("ColumnList()[%d] = %q, want %q", i, col, want[i])
		}
	}
}

func TestProjectionMapColumnLookup(t *testing.T) {
	p := testProjection()

	tests := []struct {
		name     string
		viewName string
		want     string
	}{
		{"mapped field", "clauseType", "cl.clause_type"},
		{"mapped camel", "ingestedAt", "cl.ingested_at"},
		{"unmapped passthrough", "unknown", "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Column(tt.viewName); got != tt.want {
				t.Errorf("Column(%q) = %q, want %q", tt.viewName, got, tt.want)
			}
		})
	}
}

func TestParseSortFields(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.SortField
	}{
		{
			name:  "empty string",
			input: "",
			want:  nil,
		},
		{
			name:  "single ascending",
			input: "clauseType",
			want:  []query.SortField{{Field: "clauseType", Descending: false}},
		},
		{
			name:  "single descending",
			input: "-ingestedAt",
			want:  []query.SortField{{Field: "ingestedAt", Descending: true}},
		},
		{
			name:  "multiple mixed",
			input: "clauseType,-ingestedAt",
			want: []query.SortField{
				{Field: "clauseType", Descending: false},
				{Field: "ingestedAt", Descending: true},
			},
		},
		{
			name:  "with spaces",
			input: " clauseType , -ingestedAt ",
			want: []query.SortField{
				{Field: "clauseType", Descending: false},
				{Field: "ingestedAt", Descending: true},
			},
		},
		{
			name:  "empty parts skipped",
			input: "clauseType,,ingestedAt",
			want: []query.SortField{
				{Field: "clauseType", Descending: false},
				{Field: "ingestedAt", Descending: false},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := query.ParseSortFields(tt.input)
			if tt.want == nil {
				if got != nil {
					t.Errorf("ParseSortFields(%q) = %v, want nil", tt.input, got)
				}
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseSortFields(%q) length = %d, want %d", tt.input, len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("ParseSortFields(%q)[%d] = %v, want %v", tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestBuilderBuild(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl"
	if sql != wantSQL {
		t.Errorf("Build() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("Build() args = %v, want empty", args)
	}
}

func TestBuilderBuildCount(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.clauses cl"
	if sql != wantSQL {
		t.Errorf("BuildCount() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildCount() args = %v, want empty", args)
	}
}

func TestBuilderBuildPage(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "ingestedAt", Descending: true})
	sql, args := b.BuildPage(2, 10)

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl ORDER BY cl.ingested_at DESC LIMIT 10 OFFSET 10"
	if sql != wantSQL {
		t.Errorf("BuildPage() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("BuildPage() args = %v, want empty", args)
	}
}

func TestBuilderBuildSingle(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	sql, args := b.BuildSingle("id", "abc-123")

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.id = $1"
	if sql != wantSQL {
		t.Errorf("BuildSingle() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "abc-123" {
		t.Errorf("BuildSingle() args = %v, want [abc-123]", args)
	}
}

func TestBuilderBuildSingleOrNull(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("clauseType", "indemnity")
	sql, args := b.BuildSingleOrNull()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type = $1 LIMIT 1"
	if sql != wantSQL {
		t.Errorf("BuildSingleOrNull() sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "indemnity" {
		t.Errorf("BuildSingleOrNull() args = %v, want [test.pdf]", args)
	}
}

func TestBuilderWhereEquals(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("clauseType", "indemnity")
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type = $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "indemnity" {
		t.Errorf("args = %v, want [test.pdf]", args)
	}
}

func TestBuilderWhereEqualsNilSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("clauseType", nil)
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereContains(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereContains("clauseType", ptr("indem"))
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type ILIKE $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%indem%" {
		t.Errorf("args = %v, want [%%indem%%]", args)
	}
}

func TestBuilderWhereContainsNilSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereContains("clauseType", nil)
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereContainsEmptySkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereContains("clauseType", ptr(""))
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereIn(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereIn("id", []any{"a", "b", "c"})
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.id IN ($1, $2, $3)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 3 {
		t.Errorf("args length = %d, want 3", len(args))
	}
}

func TestBuilderWhereInEmptySkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereIn("id", []any{})
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderWhereNullable(t *testing.T) {
	t.Run("nil value generates IS NULL", func(t *testing.T) {
		p := testProjection()
		b := query.NewBuilder(p)
		b.WhereNullable("clauseType", nil)
		sql, args := b.Build()

		wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type IS NULL"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 0 {
			t.Errorf("args = %v, want empty", args)
		}
	})

	t.Run("non-nil value generates equals", func(t *testing.T) {
		p := testProjection()
		b := query.NewBuilder(p)
		b.WhereNullable("clauseType", "indemnity")
		sql, args := b.Build()

		wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type = $1"
		if sql != wantSQL {
			t.Errorf("sql = %q, want %q", sql, wantSQL)
		}
		if len(args) != 1 || args[0] != "indemnity" {
			t.Errorf("args = %v, want [test.pdf]", args)
		}
	})
}

func TestBuilderWhereSearch(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereSearch(ptr("indem"), "clauseType", "id")
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE (cl.clause_type ILIKE $1 OR cl.id ILIKE $2)"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 || args[0] != "%indem%" || args[1] != "%indem%" {
		t.Errorf("args = %v, want [%%indem%% %%indem%%]", args)
	}
}

func TestBuilderWhereSearchNilSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereSearch(nil, "clauseType")
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}

func TestBuilderMultipleConditions(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("clauseType", "indemnity")
	b.WhereContains("id", ptr("abc"))
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type = $1 AND cl.id ILIKE $2"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 2 {
		t.Errorf("args length = %d, want 2", len(args))
	}
	if args[0] != "indemnity" {
		t.Errorf("args[0] = %v, want test.pdf", args[0])
	}
	if args[1] != "%abc%" {
		t.Errorf("args[1] = %v, want %%abc%%", args[1])
	}
}

func TestBuilderOrderByFields(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "id", Descending: false})
	b.OrderByFields([]query.SortField{
		{Field: "ingestedAt", Descending: true},
		{Field: "clauseType", Descending: false},
	})
	sql, _ := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl ORDER BY cl.ingested_at DESC, cl.clause_type ASC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderDefaultSort(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "ingestedAt", Descending: true})
	sql, _ := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl ORDER BY cl.ingested_at DESC"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
}

func TestBuilderBuildCountWithConditions(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereEquals("clauseType", "indemnity")
	sql, args := b.BuildCount()

	wantSQL := "SELECT COUNT(*) FROM public.clauses cl WHERE cl.clause_type = $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "indemnity" {
		t.Errorf("args = %v, want [test.pdf]", args)
	}
}

func TestBuilderBuildPageWithConditions(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p, query.SortField{Field: "id"})
	b.WhereContains("clauseType", ptr("liab"))
	sql, args := b.BuildPage(3, 25)

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE cl.clause_type ILIKE $1 ORDER BY cl.id ASC LIMIT 25 OFFSET 50"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != "%liab%" {
		t.Errorf("args = %v, want [%%liab%%]", args)
	}
}

func TestBuilderWhereAtLeast(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	min := 0.8
	b.WhereAtLeast("confidence", &min)
	sql, args := b.Build()

	wantSQL := "SELECT cl.id, cl.clause_type, cl.ingested_at FROM public.clauses cl WHERE confidence >= $1"
	if sql != wantSQL {
		t.Errorf("sql = %q, want %q", sql, wantSQL)
	}
	if len(args) != 1 || args[0] != &min {
		t.Errorf("args = %v, want [&min]", args)
	}
}

func TestBuilderWhereAtLeastNilSkipped(t *testing.T) {
	p := testProjection()
	b := query.NewBuilder(p)
	b.WhereAtLeast("confidence", nil)
	_, args := b.Build()

	if len(args) != 0 {
		t.Errorf("args = %v, want empty", args)
	}
}
