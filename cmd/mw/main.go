// Command mw parses an MW document and prints its value tree as JSON.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/google/renameio"
	"github.com/petbrain/myaw/internal/lines"
	"github.com/petbrain/myaw/internal/socutil"
	"github.com/petbrain/myaw/mw"
	"github.com/petbrain/myaw/pkg/value"
)

const defaultFileName = "doc.mw"

func main() {
	var (
		jsonMode bool
		markdown bool
		filename string
		outfile  string
	)

	_, wdFile, wdFileErr := socutil.FindWDFile(defaultFileName)

	flag.BoolVar(&jsonMode, "json", false, "parse input as pure JSON instead of MW")
	flag.BoolVar(&markdown, "markdown", false, "register a :markdown: conversion specifier rendering to HTML")
	flag.StringVar(&filename, "file", wdFile, "path to the document to parse, or - for stdin")
	flag.StringVar(&outfile, "out", "", "write rendered JSON atomically to this file instead of stdout")
	flag.Parse()

	in := os.Stdin
	if filename != "" && filename != "-" {
		f, err := os.Open(filename)
		if err != nil {
			log.Fatalf("unable to open %s: %v", filename, err)
		}
		defer f.Close()
		in = f
	} else if filename == "" {
		if wdFileErr != nil {
			log.Printf("no %s found in working directory tree: %v", defaultFileName, wdFileErr)
		}
		log.Printf("no input file given; reading stdin")
	}

	src := lines.NewReader(in)

	result, err := parseDocument(src, jsonMode, markdown)
	if err != nil {
		log.Fatalf("parse error: %v", err)
	}

	if outfile != "" {
		if err := writeJSONAtomic(outfile, result); err != nil {
			log.Fatalf("unable to write %s: %v", outfile, err)
		}
		return
	}

	out := &socutil.WriteBuffer{To: os.Stdout}
	if err := writeJSON(out, result); err != nil {
		log.Fatalf("unable to render result: %v", err)
	}
	out.WriteByte('\n')
	if err := out.Flush(); err != nil {
		log.Fatalf("unable to write output: %v", err)
	}
}

// writeJSONAtomic renders result to path without ever leaving a partially
// written file behind on error or interruption. Grounded on
// cmd/poc/main.go's streamStore.save, which wraps the same
// renameio.TempFile/CloseAtomicallyReplace pair around its own Markdown
// rewrite.
func writeJSONAtomic(path string, result value.Value) (rerr error) {
	pf, err := renameio.TempFile("", path)
	if err != nil {
		return err
	}
	defer func() {
		if rerr == nil {
			rerr = pf.CloseAtomicallyReplace()
		}
		pf.Cleanup()
	}()

	out := &socutil.WriteBuffer{To: pf}
	if err := writeJSON(out, result); err != nil {
		return err
	}
	out.WriteByte('\n')
	return out.Flush()
}

func parseDocument(src *lines.Reader, jsonMode, markdown bool) (value.Value, error) {
	if jsonMode {
		return mw.ParseJSON(src)
	}
	p := mw.NewParser(src)
	if markdown {
		registerMarkdown(p)
	}
	return p.ParseDocument()
}
