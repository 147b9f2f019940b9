// Command wlgen generates the interface names, versions, opcodes and
// enums for a Wayland protocol description.
//
// The protocol objects themselves are written by hand. wlgen keeps
// the numbers that they depend on in sync with the XML.
package main

import (
	"bytes"
	_ "embed"
	"flag"
	"fmt"
	"go/format"
	"io"
	"log"
	"os"
	"text/template"

	"deedles.dev/wlgl/protocol"
)

//go:embed protocol.tmpl
var tmplSource string

type Config struct {
	// Package is the name of the package to generate.
	Package string

	// Prefix is stripped from interface names, such as "wl_".
	Prefix string
}

type Context struct {
	Config   Config
	Protocol protocol.Protocol
	T        *template.Template
}

func newContext(config Config, proto protocol.Protocol) (*Context, error) {
	ctx := Context{
		Config:   config,
		Protocol: proto,
	}

	tmpl, err := template.New("protocol").Funcs(template.FuncMap{
		"ident":    ctx.ident,
		"camel":    ctx.camel,
		"export":   ctx.export,
		"unexport": ctx.unexport,
		"comment":  ctx.comment,
		"enumType": ctx.enumType,
	}).Parse(tmplSource)
	if err != nil {
		return nil, fmt.Errorf("parse template: %w", err)
	}
	ctx.T = tmpl

	return &ctx, nil
}

func generate(w io.Writer, config Config, proto protocol.Protocol) error {
	ctx, err := newContext(config, proto)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	err = ctx.T.Execute(&buf, ctx)
	if err != nil {
		return fmt.Errorf("execute template: %w", err)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return fmt.Errorf("format output: %w\n%s", err, buf.Bytes())
	}

	_, err = w.Write(src)
	return err
}

func main() {
	xmlfile := flag.String("xml", "", "protocol XML file")
	out := flag.String("out", "", "output file (default stdout)")
	pkg := flag.String("pkg", "wl", "output package name")
	prefix := flag.String("prefix", "wl_", "interface prefix name to strip")
	flag.Parse()

	proto, err := protocol.LoadFile(*xmlfile)
	if err != nil {
		log.Fatalf("load XML: %v", err)
	}

	var w io.Writer = os.Stdout
	if *out != "" {
		file, err := os.Create(*out)
		if err != nil {
			log.Fatalf("create output: %v", err)
		}
		defer file.Close()
		w = file
	}

	err = generate(w, Config{Package: *pkg, Prefix: *prefix}, proto)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}
}
