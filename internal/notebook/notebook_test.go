package notebook

import (
	"testing"

	"qalctxt.net/qalc/internal/value"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		text string
		want Class
	}{
		{"2 + 3", Numeric},
		{"@1*4", Numeric},
		{"x**2 - 5*x + 6 = 0", Equation},
		{"[1, 2] + [3, 4]", Array},
		{"solve(x**2 = 4, x)", Symbolic},
		{"diff(x**2)", Symbolic},
		{"integrate(cos(x), x)", Symbolic},
		{"x, y: x + y = 3", System},
		{"solver(1)", Numeric},
	}
	for _, c := range cases {
		if got := Classify(c.text); got != c.want {
			t.Errorf("Classify(%q): expected %s, got %s", c.text, c.want, got)
		}
	}
}

func evalAll(t *testing.T, lines ...string) *Document {
	t.Helper()
	d := New(nil)
	for _, l := range lines {
		d.Append(l)
	}
	d.RecomputeAll()
	return d
}

func expectDisplay(t *testing.T, d *Document, idx int, want string) {
	t.Helper()
	if got := d.Display(idx); got != want {
		t.Errorf("line %d: expected '%s', got '%s'", idx, want, got)
	}
}

func TestBasicNotebook(t *testing.T) {
	d := evalAll(t,
		"2 + 3",
		"@1*4",
	)
	expectDisplay(t, d, 1, "5")
	expectDisplay(t, d, 2, "20")
}

func TestEquationSolutionsAddressable(t *testing.T) {
	d := evalAll(t,
		"1 + 1",
		"# setup",
		"x**2 - 5*x + 6 = 0",
		"@3.0 + @3.1",
		"@3",
	)
	expectDisplay(t, d, 3, "x[0] = 2, x[1] = 3")
	expectDisplay(t, d, 4, "5")
	expectDisplay(t, d, 5, "2") // bare reference takes solution 0
}

func TestCommentLinesProduceNoRecord(t *testing.T) {
	d := evalAll(t,
		"# whole-line comment",
		"",
		"2 + 3 # trailing comment",
		"@1 + 1",
	)
	if _, ok := d.Record(1); ok {
		t.Errorf("expected no record for a comment line")
	}
	if _, ok := d.Record(2); ok {
		t.Errorf("expected no record for a blank line")
	}
	expectDisplay(t, d, 3, "5")

	// a reference to the comment line fails but does not crash the pass
	rec, ok := d.Record(4)
	if !ok || rec.Kind != value.Error {
		t.Fatalf("expected an error record for line 4, got %v", rec)
	}
	if rec.Err.Kind != value.ErrUnresolvedReference {
		t.Errorf("expected unresolved reference, got %s", rec.Err.Kind)
	}
}

func TestForwardReferenceFails(t *testing.T) {
	d := evalAll(t,
		"@2 + 1",
		"7",
	)
	rec, ok := d.Record(1)
	if !ok || rec.Kind != value.Error {
		t.Fatalf("expected an error record, got %v", rec)
	}
	if rec.Err.Kind != value.ErrUnresolvedReference {
		t.Errorf("expected unresolved reference, got %s", rec.Err.Kind)
	}
	expectDisplay(t, d, 2, "7")
}

func TestErrorsAreLocal(t *testing.T) {
	d := evalAll(t,
		"1/0",
		"2 + 2",
		"@1 + 1",
	)
	rec, _ := d.Record(1)
	if rec.Err.Kind != value.ErrMathDomain {
		t.Errorf("expected math domain error, got %s", rec.Err.Kind)
	}
	expectDisplay(t, d, 2, "4")
	rec, _ = d.Record(3)
	if rec.Err.Kind != value.ErrUnresolvedReference {
		t.Errorf("expected unresolved reference, got %s", rec.Err.Kind)
	}
}

func TestEquationSystemsRejected(t *testing.T) {
	d := evalAll(t, "x, y: x + y = 3")
	rec, _ := d.Record(1)
	if rec == nil || rec.Err == nil || rec.Err.Kind != value.ErrSyntax {
		t.Fatalf("expected a syntax error record, got %v", rec)
	}
}

func TestRecomputeOneDoesNotCascade(t *testing.T) {
	d := evalAll(t,
		"2 + 3",
		"@1*4",
	)
	expectDisplay(t, d, 2, "20")

	d.SetLine(1, "10")
	d.RecomputeOne(1)
	expectDisplay(t, d, 1, "10")
	// line 2 keeps its stale record until its own recompute
	expectDisplay(t, d, 2, "20")

	d.RecomputeOne(2)
	expectDisplay(t, d, 2, "40")
}

func TestRecomputeAllDeterministic(t *testing.T) {
	lines := []string{
		"2 + 3",
		"@1*4",
		"x**2 - 5*x + 6 = 0",
		"@3.1 - @3.0",
	}
	d := evalAll(t, lines...)
	first := make([]string, len(lines))
	for i := range lines {
		first[i] = d.Display(i + 1)
	}
	for run := 0; run < 3; run++ {
		d.RecomputeAll()
		for i := range lines {
			if got := d.Display(i + 1); got != first[i] {
				t.Fatalf("run %d line %d: expected '%s', got '%s'", run, i+1, first[i], got)
			}
		}
	}
}

func TestInsertInvalidatesFollowingLines(t *testing.T) {
	d := evalAll(t,
		"2 + 3",
		"@1*4",
	)
	d.Insert(1, "100")
	if d.State() != Dirty {
		t.Fatalf("expected dirty state after insert, got %s", d.State())
	}
	d.RecomputeAll()
	expectDisplay(t, d, 1, "100")
	expectDisplay(t, d, 2, "5")
	expectDisplay(t, d, 3, "400") // @1 now points at the inserted line
}

func TestRemoveShiftsLines(t *testing.T) {
	d := evalAll(t,
		"100",
		"2 + 3",
		"@2*4",
	)
	d.Remove(1)
	d.RecomputeAll()
	if d.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", d.Len())
	}
	expectDisplay(t, d, 1, "5")
	// @2 is now a self reference on line 2
	rec, _ := d.Record(2)
	if rec == nil || rec.Kind != value.Error {
		t.Fatalf("expected an error record after shift, got %v", rec)
	}
}

func TestStateLifecycle(t *testing.T) {
	d := New(nil)
	if d.State() != Clean {
		t.Fatalf("expected clean, got %s", d.State())
	}
	d.Append("1 + 1")
	if d.State() != Dirty {
		t.Fatalf("expected dirty after append, got %s", d.State())
	}
	d.RecomputeAll()
	if d.State() != Clean {
		t.Fatalf("expected clean after recompute, got %s", d.State())
	}
}

func TestSnapshotRestore(t *testing.T) {
	d := evalAll(t,
		"2 + 3",
		"@1*4",
	)
	snap := d.Snapshot()
	if len(snap) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(snap))
	}

	d2 := New(nil)
	d2.Restore(snap)
	expectDisplay(t, d2, 1, "5")
	expectDisplay(t, d2, 2, "20")
	if d2.State() != Clean {
		t.Errorf("expected clean after restore, got %s", d2.State())
	}
}

func TestSymbolicLines(t *testing.T) {
	d := evalAll(t,
		"solve(x**2 = 4, x)",
		"@1.1",
		"diff(x**2 + 1)",
	)
	expectDisplay(t, d, 1, "x[0] = -2, x[1] = 2")
	expectDisplay(t, d, 2, "2")
	expectDisplay(t, d, 3, "2*x")
}
