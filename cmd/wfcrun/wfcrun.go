package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/xyproto/env/v2"

	"github.com/wavelang/wfc"
	"github.com/wavelang/wfc/collapse"
	"github.com/wavelang/wfc/grammar"
	"github.com/wavelang/wfc/token"
)

var (
	generateJson bool
	outFileName  string
	errorLimit   int
)

func main() {
	flag.Usage = func() {
		fmt.Fprintln(flag.CommandLine.Output(), "Usage is  wfcrun [-j] [-o <name>] [-e <limit>] <file>")
		flag.PrintDefaults()
		fmt.Fprintln(flag.CommandLine.Output(), "  <file>")
		fmt.Fprintln(flag.CommandLine.Output(), "\tWave source file name")
	}

	flag.BoolVar(&generateJson, "j", false, "output JSON instead of text")
	flag.StringVar(&outFileName, "o", "", "output file name, default is standard output")
	flag.IntVar(&errorLimit, "e", env.Int("WFCRUN_ERROR_LIMIT", wfc.DefaultErrorLimit), "diagnostic limit")
	flag.Parse()
	inFileName := flag.Arg(0)
	if inFileName == "" {
		flag.Usage()
		os.Exit(2)
	}

	src, e := os.ReadFile(inFileName)
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}

	tokens, e := token.Lex(inFileName, string(src))
	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}

	lib := grammar.BuildLanguagePatterns()
	resolved, errs := collapse.Resolve(lib, tokens, collapse.WithErrorLimit(errorLimit))
	if errs != nil {
		for _, de := range errs {
			fmt.Fprintf(os.Stderr, "%s: %s\n", de.Category, de.Message)
			if de.Detail != "" {
				fmt.Fprintf(os.Stderr, "\t%s\n", de.Detail)
			}
		}
		os.Exit(3)
	}

	var content []byte
	if generateJson {
		content, e = makeJson(resolved)
	} else {
		content = makeText(resolved)
	}
	if e == nil {
		if outFileName == "" {
			_, e = os.Stdout.Write(content)
		} else {
			e = os.WriteFile(outFileName, content, 0o666)
		}
	}

	if e != nil {
		fmt.Fprintln(os.Stderr, e.Error())
		os.Exit(3)
	}
}

type tokenRec struct {
	Type string `json:"type"`
	Text string `json:"text"`
	Line int    `json:"line"`
	Col  int    `json:"col"`
}

func makeJson(tokens []*token.Token) ([]byte, error) {
	recs := make([]tokenRec, len(tokens))
	for i, t := range tokens {
		recs[i] = tokenRec{t.TypeName(), t.Text(), t.Line(), t.Col()}
	}
	return json.MarshalIndent(recs, "", "  ")
}

func makeText(tokens []*token.Token) []byte {
	var buf []byte
	for _, t := range tokens {
		buf = fmt.Appendf(buf, "%d:%d\t%s\t%q\n", t.Line(), t.Col(), t.TypeName(), t.Text())
	}
	return buf
}
