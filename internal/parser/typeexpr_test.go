package parser

import "testing"

func TestRenderTypeRoundTrips(t *testing.T) {
	t.Parallel()

	cases := []struct {
		annotation string
		want       string
	}{
		{"int", "int"},
		{"None", "None"},
		{"typing.Optional", "typing.Optional"},
		{"Optional[int]", "Optional[int]"},
		{"dict[str, int]", "dict[str, int]"},
		{"Callable[..., int]", "Callable[..., int]"},
		{"int | None", "int | None"},
		{`"User"`, `"User"`},
		{"list[dict[str, int]]", "list[dict[str, int]]"},
	}

	for _, tc := range cases {
		source := "def f(x: " + tc.annotation + "):\n    pass\n"
		tree := mustParse(t, source)
		fns := tree.TopLevelFunctions()
		if len(fns) != 1 || len(fns[0].Params) != 1 {
			t.Fatalf("%s: unexpected parse shape", tc.annotation)
		}
		anno := fns[0].Params[0].Annotation
		if anno == nil {
			t.Fatalf("%s: annotation missing", tc.annotation)
		}
		if got := RenderType(anno); got != tc.want {
			t.Errorf("RenderType(%s) = %q, want %q", tc.annotation, got, tc.want)
		}
	}
}

func TestRenderTypeReturnAnnotation(t *testing.T) {
	t.Parallel()

	tree := mustParse(t, "def f() -> Optional[list[int]]:\n    return None\n")
	fn := tree.TopLevelFunctions()[0]
	if fn.Returns == nil {
		t.Fatal("return annotation missing")
	}
	if got := RenderType(fn.Returns); got != "Optional[list[int]]" {
		t.Fatalf("RenderType = %q, want Optional[list[int]]", got)
	}
}
