// Package grammar defines the fixed Wave language grammar as a constraint
// pattern library.
//
// Every superposition in the grammar keeps its alternatives disjoint on
// their first token, so the matching engine's first-content-match commitment
// is exact for this grammar.
package grammar

import (
	"github.com/wavelang/wfc/pattern"
	"github.com/wavelang/wfc/token"
)

// StartPattern is the name of the grammar's start pattern.
const StartPattern = "program"

func must(p *pattern.Pattern, e error) *pattern.Pattern {
	if e != nil {
		panic(e)
	}
	return p
}

// BuildLanguagePatterns constructs the Wave grammar: program structure,
// declarations, statements, expressions, region and regime declarations,
// and the quantum-flavored statements (collapse, superpose, periscope).
// The returned library owns every pattern of the grammar; the caller passes
// it into each compilation explicitly, there is no shared default instance.
func BuildLanguagePatterns() *pattern.Library {
	lib := pattern.NewLibrary(StartPattern)

	kw := func(text string) *pattern.Pattern {
		return lib.Add(pattern.NewToken("kw_"+text, token.Keyword, text))
	}
	punct := func(name, text string) *pattern.Pattern {
		return lib.Add(pattern.NewToken(name, token.Punct, text))
	}
	op := func(name, text string) *pattern.Pattern {
		return lib.Add(pattern.NewToken(name, token.Operator, text))
	}
	ref := func(target string) *pattern.Pattern {
		return lib.Add(pattern.NewReference(target+"_ref", target))
	}
	seq := func(name string, subs ...*pattern.Pattern) *pattern.Pattern {
		return lib.Add(must(pattern.NewSequence(name, subs...)))
	}
	sup := func(name string, subs ...*pattern.Pattern) *pattern.Pattern {
		return lib.Add(must(pattern.NewSuperposition(name, subs...)))
	}
	rep := func(name string, sub *pattern.Pattern) *pattern.Pattern {
		return lib.Add(must(pattern.NewRepetition(name, sub)))
	}
	opt := func(name string, sub *pattern.Pattern) *pattern.Pattern {
		return lib.Add(must(pattern.NewOptional(name, sub)))
	}

	ident := lib.Add(pattern.NewToken("identifier", token.Identifier, ""))
	intLit := lib.Add(pattern.NewToken("int_literal", token.IntLiteral, ""))
	floatLit := lib.Add(pattern.NewToken("float_literal", token.FloatLiteral, ""))
	strLit := lib.Add(pattern.NewToken("string_literal", token.StringLiteral, ""))
	anyOp := lib.Add(pattern.NewToken("any_operator", token.Operator, ""))
	eof := lib.Add(pattern.NewToken("eof", token.EOF, ""))

	lparen := punct("lparen", "(")
	rparen := punct("rparen", ")")
	lbrace := punct("lbrace", "{")
	rbrace := punct("rbrace", "}")
	comma := punct("comma", ",")
	semicolon := punct("semicolon", ";")
	colon := punct("colon", ":")
	assign := op("assign", "=")
	pipe := op("pipe", "|")

	kwFunc := kw("func")
	kwVar := kw("var")
	kwReturn := kw("return")
	kwIf := kw("if")
	kwElse := kw("else")
	kwWhile := kw("while")
	kwRegion := kw("region")
	kwRegime := kw("regime")
	kwCollapse := kw("collapse")
	kwSuperpose := kw("superpose")
	kwPeriscope := kw("periscope")
	kwFifo := kw("fifo")
	kwFilo := kw("filo")
	kwSeq := kw("seq")
	kwRand := kw("rand")

	// expressions
	seq("paren_expr", lparen, ref("expr"), rparen)
	seq("call_args",
		lparen,
		opt("call_args_opt", seq("call_args_list", ref("expr"), rep("call_args_rest", seq("call_args_more", comma, ref("expr"))))),
		rparen)
	seq("primary",
		sup("primary_core", intLit, floatLit, strLit, ident, ref("paren_expr")),
		rep("call_suffix", ref("call_args")))
	seq("expr", ref("primary"), rep("expr_rest", seq("expr_more", anyOp, ref("primary"))))

	// statements
	seq("block", lbrace, rep("block_body", ref("statement")), rbrace)
	seq("var_decl",
		kwVar, ident,
		opt("var_type", ident),
		opt("var_init", seq("var_init_expr", assign, ref("expr"))),
		semicolon)
	seq("return_stmt", kwReturn, opt("return_value", ref("expr")), semicolon)
	seq("if_stmt", kwIf, ref("expr"), ref("block"), opt("else_clause", seq("else_branch", kwElse, ref("block"))))
	seq("while_stmt", kwWhile, ref("expr"), ref("block"))
	seq("collapse_stmt", kwCollapse, ident, semicolon)
	seq("superpose_stmt",
		kwSuperpose, ident, assign,
		ref("expr"), rep("superpose_arms", seq("superpose_arm", pipe, ref("expr"))),
		semicolon)
	seq("regime_clause", colon, ident)
	seq("periscope_stmt", kwPeriscope, ident, ref("regime_clause"), semicolon)
	seq("expr_stmt", ref("expr"), semicolon)
	sup("statement",
		ref("var_decl"), ref("return_stmt"), ref("if_stmt"), ref("while_stmt"),
		ref("collapse_stmt"), ref("superpose_stmt"), ref("periscope_stmt"),
		ref("block"), ref("expr_stmt"))

	// declarations
	seq("param", ident, ident)
	seq("param_list", ref("param"), rep("param_rest", seq("param_more", comma, ref("param"))))
	seq("func_decl",
		kwFunc, ident,
		lparen, opt("func_params", ref("param_list")), rparen,
		opt("func_result", ident),
		ref("block"))
	sup("regime_mode", kwFifo, kwFilo, kwSeq, kwRand)
	seq("regime_decl", kwRegime, ident, ref("regime_mode"), semicolon)
	seq("region_decl", kwRegion, ident, opt("region_regime", ref("regime_clause")), ref("block"))
	sup("declaration", ref("func_decl"), ref("var_decl"), ref("region_decl"), ref("regime_decl"))

	seq("program", rep("program_body", ref("declaration")), opt("program_end", eof))

	// propagation metadata: regime-mode keywords read structurally when a
	// keyword and an identifier interpretation both survive propagation
	lib.Add(must(pattern.NewConstraint("regime_mode_bias", pattern.RoleConstraint, 1.1,
		kwFifo, kwFilo, kwSeq, kwRand)))
	lib.Add(must(pattern.NewGroup("quantum_statements",
		ref("collapse_stmt"), ref("superpose_stmt"), ref("periscope_stmt"))))

	return lib
}
