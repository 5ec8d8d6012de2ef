package scanner

import (
	"testing"

	"qalctxt.net/qalc/internal/token"
)

func tokens(t *testing.T, text string) []Item {
	t.Helper()
	s := New(text)
	var out []Item
	for {
		item, err := s.Next()
		if err != nil {
			t.Fatalf("Next failed on %q: %v", text, err)
		}
		out = append(out, *item)
		if item.Token == token.EOF {
			return out
		}
	}
}

func TestScanArithmetic(t *testing.T) {
	got := tokens(t, "2 + 3*4")
	want := []token.Token{token.NUMBER, token.PLUS, token.NUMBER, token.STAR, token.NUMBER, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %d", len(want), len(got))
	}
	for i, w := range want {
		if got[i].Token != w {
			t.Errorf("token %d: expected %s, got %s", i, w, got[i].Token)
		}
	}
	if got[2].Text != "3" {
		t.Errorf("expected '3', got '%s'", got[2].Text)
	}
}

func TestScanPowerForms(t *testing.T) {
	for _, text := range []string{"2**3", "2^3"} {
		got := tokens(t, text)
		if len(got) != 4 || got[1].Token != token.POW {
			t.Errorf("%q: expected NUMBER POW NUMBER EOF, got %v", text, got)
		}
	}
}

func TestScanUnicodeOperators(t *testing.T) {
	got := tokens(t, "6×7÷2")
	want := []token.Token{token.NUMBER, token.STAR, token.NUMBER, token.SLASH, token.NUMBER, token.EOF}
	for i, w := range want {
		if got[i].Token != w {
			t.Errorf("token %d: expected %s, got %s", i, w, got[i].Token)
		}
	}
}

func TestScanNumbers(t *testing.T) {
	cases := []string{"42", "3.14", "1e6", "2.5e-3", ".5"}
	for _, text := range cases {
		got := tokens(t, text)
		if len(got) != 2 {
			t.Fatalf("%q: expected one number token, got %v", text, got)
		}
		if got[0].Token != token.NUMBER || got[0].Text != text {
			t.Errorf("%q: got token %s text '%s'", text, got[0].Token, got[0].Text)
		}
	}
}

func TestScanEquals(t *testing.T) {
	for _, text := range []string{"x = 1", "x == 1"} {
		got := tokens(t, text)
		if len(got) != 4 || got[1].Token != token.EQUALS {
			t.Errorf("%q: expected IDENT EQUALS NUMBER EOF, got %v", text, got)
		}
	}
}

func TestScanVector(t *testing.T) {
	got := tokens(t, "[1, 2]")
	want := []token.Token{token.LBRACKET, token.NUMBER, token.COMMA, token.NUMBER, token.RBRACKET, token.EOF}
	for i, w := range want {
		if got[i].Token != w {
			t.Errorf("token %d: expected %s, got %s", i, w, got[i].Token)
		}
	}
}

func TestScanBadRune(t *testing.T) {
	s := New("2 $ 3")
	s.Next()
	if _, err := s.Next(); err == nil {
		t.Errorf("expected error for '$', got none")
	}
}

func TestStripComment(t *testing.T) {
	cases := []struct {
		raw       string
		text      string
		wholeLine bool
	}{
		{"2 + 3", "2 + 3", false},
		{"2 + 3 # sum", "2 + 3 ", false},
		{"# just a note", "", true},
		{"   # indented note", "   ", true},
		{"", "", true},
		{"   ", "   ", true},
		{"1 # a # b", "1 ", false},
	}
	for _, c := range cases {
		text, wholeLine := StripComment(c.raw)
		if text != c.text || wholeLine != c.wholeLine {
			t.Errorf("StripComment(%q): expected (%q, %v), got (%q, %v)",
				c.raw, c.text, c.wholeLine, text, wholeLine)
		}
	}
}
