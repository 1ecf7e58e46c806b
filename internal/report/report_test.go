package report

import (
	"testing"

	"autotyper/internal/analyzer"
	"autotyper/internal/parser"
)

func rangeFor(t *testing.T, source string) analyzer.SignatureRange {
	t.Helper()
	tree, err := parser.Parse([]byte(source))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	t.Cleanup(tree.Close)
	ranges, _ := analyzer.ScanTree(tree)
	if len(ranges) != 1 {
		t.Fatalf("got %d ranges, want 1", len(ranges))
	}
	return ranges[0]
}

func TestFormatSignatureFullyTyped(t *testing.T) {
	t.Parallel()

	sig := rangeFor(t, "def mul(x: float, y: float) -> float:\n    return x * y\n")
	want := "def mul(x: float, y: float) -> float"
	if got := FormatSignature(sig); got != want {
		t.Fatalf("FormatSignature = %q, want %q", got, want)
	}
}

func TestFormatSignatureMissingArgs(t *testing.T) {
	t.Parallel()

	// A missing-args function shows MISSING per parameter but no spurious
	// return arrow.
	sig := rangeFor(t, "def add(x, y: int):\n    return x + y\n")
	want := "def add(x: MISSING, y: int)"
	if got := FormatSignature(sig); got != want {
		t.Fatalf("FormatSignature = %q, want %q", got, want)
	}
}

func TestFormatSignatureMissingReturn(t *testing.T) {
	t.Parallel()

	sig := rangeFor(t, "def add(x: int, y: int):\n    return x + y\n")
	want := "def add(x: int, y: int) -> MISSING"
	if got := FormatSignature(sig); got != want {
		t.Fatalf("FormatSignature = %q, want %q", got, want)
	}
}

func TestFormatSignatureAnnotatedReturnWithMissingArgs(t *testing.T) {
	t.Parallel()

	// The declared return annotation is still rendered even when the
	// classification is missing-args.
	sig := rangeFor(t, "def add(x, y) -> int:\n    return x + y\n")
	want := "def add(x: MISSING, y: MISSING) -> int"
	if got := FormatSignature(sig); got != want {
		t.Fatalf("FormatSignature = %q, want %q", got, want)
	}
}

func TestFormatSignatureNoReturnConcern(t *testing.T) {
	t.Parallel()

	sig := rangeFor(t, "def log(msg: str):\n    print(msg)\n")
	want := "def log(msg: str)"
	if got := FormatSignature(sig); got != want {
		t.Fatalf("FormatSignature = %q, want %q", got, want)
	}
}
