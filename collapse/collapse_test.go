package collapse

import (
	"testing"

	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/grammar"
	"github.com/wavelang/wfc/pattern"
	"github.com/wavelang/wfc/token"
)

type tokenSample struct {
	typ  token.Type
	text string
}

func makeTokens(samples []tokenSample) []*token.Token {
	result := make([]*token.Token, len(samples))
	col := 1
	for i, s := range samples {
		result[i] = token.New(s.typ, s.text, "sample", 1, col)
		col += len(s.text) + 1
	}
	return result
}

func checkResolved(t *testing.T, name string, input []tokenSample, expected []tokenSample) {
	lib := grammar.BuildLanguagePatterns()
	output, errs := Resolve(lib, makeTokens(input))
	if errs != nil {
		t.Errorf("%s: got %d errors, first: %s", name, len(errs), errs[0].Error())
		return
	}

	if len(output) != len(expected) {
		t.Errorf("%s: expecting %d output tokens, got %d", name, len(expected), len(output))
		return
	}
	for i, s := range expected {
		tok := output[i]
		if tok.Type() != s.typ || tok.Text() != s.text {
			t.Errorf("%s, token #%d: expecting %s %q, got %s %q",
				name, i, s.typ, s.text, tok.Type(), tok.Text())
		}
	}
}

func firstErrors(t *testing.T, name string, input []tokenSample) []*wfc.Error {
	lib := grammar.BuildLanguagePatterns()
	output, errs := Resolve(lib, makeTokens(input))
	if errs == nil {
		t.Errorf("%s: expecting failure, got %d output tokens", name, len(output))
		return nil
	}
	if output != nil {
		t.Errorf("%s: failed run must not expose output", name)
	}
	return errs
}

func TestFuncDeclCollapse(t *testing.T) {
	input := []tokenSample{
		{token.Keyword, "func"},
		{token.Identifier, "main"},
		{token.Punct, "("},
		{token.Punct, ")"},
		{token.Punct, "{"},
		{token.Punct, "}"},
	}
	checkResolved(t, "func decl", input, input)
}

func TestOptionalOmitted(t *testing.T) {
	// var declaration without type and initializer
	input := []tokenSample{
		{token.Keyword, "var"},
		{token.Identifier, "x"},
		{token.Punct, ";"},
	}
	checkResolved(t, "var decl", input, input)
}

func TestMissingNameFails(t *testing.T) {
	input := []tokenSample{
		{token.Keyword, "func"},
		{token.Punct, "("},
	}
	errs := firstErrors(t, "missing name", input)
	if errs == nil {
		return
	}

	e := errs[0]
	if e.Category != wfc.Propagation && e.Category != wfc.Syntax {
		t.Errorf("expecting propagation or syntax category, got %s", e.Category)
	}
	// diagnostic references the position of the offending "(" token
	if e.Line != 1 || e.Col != 6 {
		t.Errorf("expecting position 1:6, got %d:%d", e.Line, e.Col)
	}
	if e.Detail == "" {
		t.Errorf("diagnostic must carry the matching engine's cause")
	}
}

func TestUnresolvedReference(t *testing.T) {
	lib := pattern.NewLibrary("root")
	root, e := pattern.NewSequence("root", lib.Add(pattern.NewReference("missing_ref", "missing")))
	if e != nil {
		t.Fatalf("got error: %s", e.Error())
	}
	lib.Add(root)

	p := New(lib)
	if ie := p.InitField(makeTokens([]tokenSample{{token.Identifier, "x"}})); ie != nil {
		t.Fatalf("got error: %s", ie.Error())
	}

	ce := p.CreateConstraints()
	if ce == nil {
		t.Fatalf("expecting unresolved reference error, got success")
	}
	we, f := ce.(*wfc.Error)
	if !f || we.Code != UnresolvedReferenceError {
		t.Fatalf("expecting error code %d, got %v", UnresolvedReferenceError, ce)
	}
	if we.Category != wfc.Constraint {
		t.Errorf("expecting constraint category, got %s", we.Category)
	}
	if len(p.Errors()) == 0 {
		t.Errorf("derivation failure must be recorded in the collector")
	}
}

func TestRegimeModeSuperposition(t *testing.T) {
	input := []tokenSample{
		{token.Keyword, "regime"},
		{token.Identifier, "ring"},
		{token.Keyword, "seq"},
		{token.Punct, ";"},
	}
	// the contextual keyword stays a keyword in regime-mode position
	checkResolved(t, "regime decl", input, input)
}

func TestContextualKeywordAsIdentifier(t *testing.T) {
	input := []tokenSample{
		{token.Keyword, "var"},
		{token.Keyword, "seq"},
		{token.Punct, ";"},
	}
	expected := []tokenSample{
		{token.Keyword, "var"},
		{token.Identifier, "seq"},
		{token.Punct, ";"},
	}
	checkResolved(t, "keyword as identifier", input, expected)
}

func TestOpenPrefixNotPruned(t *testing.T) {
	lib := pattern.NewLibrary("root")
	add := func(p *pattern.Pattern, e error) *pattern.Pattern {
		if e != nil {
			t.Fatalf("got error: %s", e.Error())
		}
		return lib.Add(p)
	}

	kwSeq := lib.Add(pattern.NewToken("kw_seq", token.Keyword, "seq"))
	semicolon := lib.Add(pattern.NewToken("semicolon", token.Punct, ";"))
	ident := lib.Add(pattern.NewToken("identifier", token.Identifier, ""))
	comma := lib.Add(pattern.NewToken("comma", token.Punct, ","))
	add(pattern.NewSuperposition("root",
		add(pattern.NewSequence("kw_branch", kwSeq, semicolon)),
		add(pattern.NewSequence("id_branch", ident, comma))))

	// "seq" lifts to a keyword and an identifier reading and either one
	// begins a branch, so the "," cell must survive propagation while its
	// prefix is still open.
	input := makeTokens([]tokenSample{
		{token.Keyword, "seq"},
		{token.Punct, ","},
	})

	p := New(lib)
	if e := p.InitField(input); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}
	if e := p.CreateConstraints(); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}
	if e := p.Run(); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}

	output := p.Output()
	if len(output) != 2 {
		t.Fatalf("expecting 2 output tokens, got %d", len(output))
	}
	// only the identifier reading completes; the preferred keyword
	// commitment contradicts the "," and must be rewound
	if output[0].Type() != token.Identifier || output[0].Text() != "seq" {
		t.Errorf(`expecting identifier "seq", got %s %q`, output[0].Type(), output[0].Text())
	}
	if output[1].Type() != token.Punct || output[1].Text() != "," {
		t.Errorf(`expecting punct ",", got %s %q`, output[1].Type(), output[1].Text())
	}
}

func TestBacktrackExhausted(t *testing.T) {
	lib := pattern.NewLibrary("root")
	add := func(p *pattern.Pattern, e error) *pattern.Pattern {
		if e != nil {
			t.Fatalf("got error: %s", e.Error())
		}
		return lib.Add(p)
	}

	kwSeq := lib.Add(pattern.NewToken("kw_seq", token.Keyword, "seq"))
	ident := lib.Add(pattern.NewToken("identifier", token.Identifier, ""))
	comma := lib.Add(pattern.NewToken("comma", token.Punct, ","))
	semicolon := lib.Add(pattern.NewToken("semicolon", token.Punct, ";"))
	add(pattern.NewSuperposition("root",
		add(pattern.NewSequence("kw_branch", kwSeq, comma)),
		add(pattern.NewSequence("id_branch", ident, comma)),
		semicolon))

	// both readings of "seq" begin a branch but neither continues into
	// ";", so every committed choice must be tried and rewound before
	// the run fails
	input := []tokenSample{
		{token.Keyword, "seq"},
		{token.Punct, ";"},
	}

	output, errs := Resolve(lib, makeTokens(input))
	if errs == nil {
		t.Fatalf("expecting failure, got %d output tokens", len(output))
	}
	for _, e := range errs {
		if e.Category != wfc.Propagation && e.Category != wfc.Syntax {
			t.Errorf("expecting propagation or syntax category, got %s", e.Category)
		}
	}
}

func TestTriviaExcluded(t *testing.T) {
	input := []tokenSample{
		{token.Keyword, "var"},
		{token.Whitespace, " "},
		{token.Identifier, "x"},
		{token.Comment, "// head index"},
		{token.Punct, ";"},
	}
	expected := []tokenSample{
		{token.Keyword, "var"},
		{token.Identifier, "x"},
		{token.Punct, ";"},
	}
	checkResolved(t, "trivia", input, expected)
}

func TestEmptyInput(t *testing.T) {
	checkResolved(t, "empty", nil, nil)
}

func TestDeterminism(t *testing.T) {
	input := makeTokens([]tokenSample{
		{token.Keyword, "var"},
		{token.Keyword, "seq"},
		{token.Operator, "="},
		{token.IntLiteral, "1"},
		{token.Punct, ";"},
	})

	lib := grammar.BuildLanguagePatterns()
	first, errs := Resolve(lib, input)
	if errs != nil {
		t.Fatalf("got errors, first: %s", errs[0].Error())
	}
	second, errs := Resolve(grammar.BuildLanguagePatterns(), input)
	if errs != nil {
		t.Fatalf("second run got errors, first: %s", errs[0].Error())
	}

	if len(first) != len(second) {
		t.Fatalf("runs disagree on output length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Type() != second[i].Type() || first[i].Text() != second[i].Text() {
			t.Errorf("token #%d differs between runs: %s %q vs %s %q",
				i, first[i].Type(), first[i].Text(), second[i].Type(), second[i].Text())
		}
	}
}

func TestInadmissibleToken(t *testing.T) {
	input := []tokenSample{
		{token.Invalid, "@"},
	}
	errs := firstErrors(t, "inadmissible", input)
	if errs == nil {
		return
	}
	if errs[0].Category != wfc.Propagation {
		t.Errorf("expecting propagation category, got %s", errs[0].Category)
	}
}

func TestPipelineMisuse(t *testing.T) {
	lib := grammar.BuildLanguagePatterns()

	p := New(lib)
	if e := p.Run(); e == nil {
		t.Errorf("Run before InitField must fail")
	} else if we, f := e.(*wfc.Error); !f || we.Code != NotInitializedError {
		t.Errorf("expecting error code %d, got %v", NotInitializedError, e)
	}

	p = New(lib)
	if e := p.InitField(nil); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}
	if e := p.Run(); e == nil {
		t.Errorf("Run before CreateConstraints must fail")
	} else if we, f := e.(*wfc.Error); !f || we.Code != NotDerivedError {
		t.Errorf("expecting error code %d, got %v", NotDerivedError, e)
	}
}

func TestStartPatternMissing(t *testing.T) {
	lib := pattern.NewLibrary("absent")
	p := New(lib)
	if e := p.InitField(nil); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}
	if e := p.CreateConstraints(); e == nil {
		t.Errorf("expecting start-pattern error")
	} else if we, f := e.(*wfc.Error); !f || we.Code != StartNotFoundError {
		t.Errorf("expecting error code %d, got %v", StartNotFoundError, e)
	}
}

func TestPickPolicyOverride(t *testing.T) {
	input := makeTokens([]tokenSample{
		{token.Keyword, "var"},
		{token.Identifier, "x"},
		{token.Punct, ";"},
	})

	// rightmost-first picking must not change the outcome of an unambiguous run
	rightmost := func(a, b *Cell) bool {
		if a.Entropy() != b.Entropy() {
			return a.Entropy() < b.Entropy()
		}
		return a.Index() > b.Index()
	}

	lib := grammar.BuildLanguagePatterns()
	output, errs := Resolve(lib, input, WithPickPolicy(rightmost))
	if errs != nil {
		t.Fatalf("got errors, first: %s", errs[0].Error())
	}
	if len(output) != 3 {
		t.Errorf("expecting 3 output tokens, got %d", len(output))
	}
}

func TestChoiceWeightBias(t *testing.T) {
	lib := grammar.BuildLanguagePatterns()
	p := New(lib)
	if e := p.InitField(makeTokens([]tokenSample{{token.Keyword, "seq"}})); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}
	if e := p.CreateConstraints(); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}

	kw := p.cells[0].states[0]
	ident := p.cells[0].states[1]
	if kw.Type() != token.Keyword || ident.Type() != token.Identifier {
		t.Fatalf("unexpected candidate expansion order")
	}
	// regime_mode_bias raises the keyword reading above its base confidence
	if p.weight(kw) <= float64(kw.Confidence()) {
		t.Errorf("expecting biased keyword weight above %d, got %v", kw.Confidence(), p.weight(kw))
	}
	if p.weight(ident) != float64(ident.Confidence()) {
		t.Errorf("identifier reading must keep its base weight, got %v", p.weight(ident))
	}
}

func TestCellAccessors(t *testing.T) {
	lib := grammar.BuildLanguagePatterns()
	p := New(lib)
	if e := p.InitField(makeTokens([]tokenSample{{token.Keyword, "seq"}})); e != nil {
		t.Fatalf("got error: %s", e.Error())
	}

	cells := p.Cells()
	if len(cells) != 1 {
		t.Fatalf("expecting 1 cell, got %d", len(cells))
	}
	c := cells[0]
	if c.Entropy() != 2 {
		t.Errorf("contextual keyword cell must hold 2 candidates, got %d", c.Entropy())
	}
	if c.Collapsed() {
		t.Errorf("fresh cell must not be collapsed")
	}
	if c.Token().Text() != "seq" || c.Index() != 0 {
		t.Errorf("cell token accessors broken")
	}
}
