package scanner

import "testing"

func kinds(tokens []Token) []Kind {
	out := make([]Kind, len(tokens))
	for i, tok := range tokens {
		out[i] = tok.Kind
	}
	return out
}

func TestScanSingleLineSignature(t *testing.T) {
	t.Parallel()

	tokens := Scan("def add(x, y):\n")
	want := []Kind{Name, Name, Op, Name, Op, Name, Op, Colon, Newline, EOF}
	got := kinds(tokens)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d = %v, want %v (all: %v)", i, got[i], want[i], got)
		}
	}
}

func TestScanNewlineFlavors(t *testing.T) {
	t.Parallel()

	// Newlines inside brackets and on blank or comment-only lines are NL;
	// the newline after the closing colon terminates the logical line.
	src := "def f(\n    x,\n):\n\n# note\n"
	var nl, logical int
	for _, tok := range Scan(src) {
		switch tok.Kind {
		case NL:
			nl++
		case Newline:
			logical++
		}
	}
	if nl != 4 {
		t.Fatalf("NL count = %d, want 4 (two bracketed, one blank, one comment-only)", nl)
	}
	if logical != 1 {
		t.Fatalf("Newline count = %d, want 1", logical)
	}
}

func TestScanCommentDoesNotCountAsCode(t *testing.T) {
	t.Parallel()

	tokens := Scan("# just a comment\n")
	if tokens[0].Kind != Comment {
		t.Fatalf("first token = %v, want Comment", tokens[0].Kind)
	}
	if tokens[1].Kind != NL {
		t.Fatalf("newline after comment-only line = %v, want NL", tokens[1].Kind)
	}
}

func TestScanTripleQuotedString(t *testing.T) {
	t.Parallel()

	src := "\"\"\"one\ntwo\nthree\"\"\"\n"
	tokens := Scan(src)
	if tokens[0].Kind != String {
		t.Fatalf("first token = %v, want String", tokens[0].Kind)
	}
	if got := tokens[0].PhysicalLines(); got != 3 {
		t.Fatalf("PhysicalLines = %d, want 3", got)
	}
	if tokens[1].Kind != Newline {
		t.Fatalf("token after string = %v, want Newline", tokens[1].Kind)
	}
}

func TestScanPrefixedString(t *testing.T) {
	t.Parallel()

	tokens := Scan("f\"hello {x}\"\n")
	if tokens[0].Kind != String {
		t.Fatalf("first token = %v, want String", tokens[0].Kind)
	}
	if tokens[0].Text != "f\"hello {x}\"" {
		t.Fatalf("string text = %q", tokens[0].Text)
	}
}

func TestScanArrowAndColonLines(t *testing.T) {
	t.Parallel()

	tokens := Scan("def f(x: int) -> bool:\n")
	var colons int
	var arrow bool
	for _, tok := range Scan("def f(x: int) -> bool:\n") {
		if tok.Kind == Colon {
			colons++
		}
		if tok.Kind == Op && tok.Text == "->" {
			arrow = true
		}
	}
	if colons != 2 {
		t.Fatalf("colon count = %d, want 2 (annotation and terminator)", colons)
	}
	if !arrow {
		t.Fatalf("arrow token not found in %v", kinds(tokens))
	}

	last := tokens[len(tokens)-1]
	if last.Kind != EOF {
		t.Fatalf("last token = %v, want EOF", last.Kind)
	}
}

func TestScanLineContinuation(t *testing.T) {
	t.Parallel()

	tokens := Scan("x = 1 + \\\n    2\n")
	for _, tok := range tokens {
		if tok.Kind == NL {
			t.Fatalf("continuation produced an NL token: %v", tokens)
		}
	}
	if last := tokens[len(tokens)-2]; last.Kind != Newline || last.Line != 2 {
		t.Fatalf("logical newline = %+v, want Newline on line 2", last)
	}
}
