package qalc

import (
	"strings"
	"testing"
)

const sampleDoc = `# monthly budget
1200 + 340
@2*12
x**2 - 5*x + 6 = 0
@4.0 + @4.1`

func TestEvalDocument(t *testing.T) {
	nb := New()
	defer nb.Close()

	results := nb.Eval(sampleDoc)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	if results[0].Output != "" || results[0].Kind != "" {
		t.Errorf("expected no output for the comment line, got %+v", results[0])
	}
	if results[1].Output != "1540" {
		t.Errorf("expected '1540', got '%s'", results[1].Output)
	}
	if results[2].Output != "18480" {
		t.Errorf("expected '18480', got '%s'", results[2].Output)
	}
	if results[3].Output != "x[0] = 2, x[1] = 3" || results[3].Kind != "multiple" {
		t.Errorf("unexpected equation result %+v", results[3])
	}
	if results[4].Output != "5" {
		t.Errorf("expected '5', got '%s'", results[4].Output)
	}
}

func TestEvalLine(t *testing.T) {
	nb := New()
	defer nb.Close()

	r := nb.EvalLine("6*7")
	if r.Index != 1 || r.Output != "42" {
		t.Errorf("expected line 1 = 42, got %+v", r)
	}

	r = nb.EvalLine("@1 + 8")
	if r.Output != "50" {
		t.Errorf("expected '50', got '%s'", r.Output)
	}

	r = nb.EvalLine("@9")
	if !r.IsError || r.Kind != "error" {
		t.Errorf("expected an error result, got %+v", r)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	nb := New(WithMemoryStore())
	nb.Eval("2 + 3\n@1*4")
	if err := nb.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	// mutate, then load the saved snapshot back
	nb.Eval("999")
	if err := nb.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if nb.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", nb.Len())
	}
	if got := nb.Line(2).Output; got != "20" {
		t.Errorf("expected '20', got '%s'", got)
	}
}

func TestSaveWithoutStore(t *testing.T) {
	nb := New()
	if err := nb.Save(); err == nil {
		t.Errorf("expected error without a configured store")
	}
}

func TestWriteToAnnotates(t *testing.T) {
	nb := New()
	nb.Eval("# note\n2 + 3")

	var sb strings.Builder
	if _, err := nb.WriteTo(&sb); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	want := "# note\n2 + 3  # = 5\n"
	if sb.String() != want {
		t.Errorf("expected %q, got %q", want, sb.String())
	}
}

func TestStats(t *testing.T) {
	nb := New()
	nb.Eval("2 + 3\n1/0\nx**2 = 4")
	st := nb.Stats()
	if st.Total != 3 || st.Succeeded != 2 || st.Errors != 1 || st.Equations != 1 {
		t.Errorf("unexpected stats %+v", st)
	}
}
