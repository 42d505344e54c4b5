// Command avsc parses Avro schema source files and reports their issues.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/avsc"
	"github.com/reoring/avsc/i18n"
	"github.com/reoring/avsc/model"
)

// Exit codes.
const (
	exitOK     = 0 // every file produced a schema
	exitFailed = 1 // a file produced no schema, or failOnIssues tripped
	exitUsage  = 2 // bad flags or configuration
)

const usage = `avsc - Avro schema (avsc) parser

Usage:
  avsc parse [options] FILE...
  avsc names [options] FILE...

Options:
  -format text|json   output format (default text)
  -config FILE        YAML or JSON configuration file
  -lang en|ja         message language
  -yaml               read sources as YAML (implied for .yaml/.yml files)
  -decode-defaults    decode forward-referenced field defaults after resolution
  -v, -vv             debug / trace logging to stderr
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}
	switch args[0] {
	case "parse":
		return parseCmd(args[1:], stdout, stderr)
	case "names":
		return namesCmd(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitOK
	}
	fmt.Fprintf(stderr, "unknown command: %s\n\n", args[0])
	fmt.Fprint(stderr, usage)
	return exitUsage
}

type cli struct {
	cfg    *config
	logger *slog.Logger
	files  []string
}

// setup parses flags, loads the config file and applies flag overrides.
func setup(name string, args []string, stderr io.Writer) (*cli, bool) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	format := fs.String("format", "", "output format")
	configPath := fs.String("config", "", "configuration file")
	lang := fs.String("lang", "", "message language")
	asYAML := fs.Bool("yaml", false, "read sources as YAML")
	decode := fs.Bool("decode-defaults", false, "decode deferred defaults")
	verbose := fs.Bool("v", false, "debug logging")
	trace := fs.Bool("vv", false, "trace logging")
	if err := fs.Parse(args); err != nil {
		return nil, false
	}

	cfg := defaultConfig()
	if *configPath != "" {
		if err := cfg.LoadFile(*configPath); err != nil {
			fmt.Fprintf(stderr, "avsc: %v\n", err)
			return nil, false
		}
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "lang":
			cfg.Language = *lang
		case "yaml":
			cfg.YAML = *asYAML
		case "decode-defaults":
			cfg.DecodeDefaults = *decode
		}
	})
	if err := cfg.validate(); err != nil {
		fmt.Fprintf(stderr, "avsc: %v\n", err)
		return nil, false
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(stderr, "avsc: no input files")
		return nil, false
	}

	c := &cli{cfg: cfg, files: fs.Args()}
	if *verbose || *trace {
		level := slog.LevelDebug
		if *trace {
			level = avsc.LevelTrace
		}
		c.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	}
	return c, true
}

func (c *cli) parser() *avsc.Parser {
	return avsc.NewParser(avsc.WithParseOpt(c.cfg.parseOpt()), avsc.WithLogger(c.logger))
}

func (c *cli) parseFile(p *avsc.Parser, path string) *avsc.Result {
	if c.cfg.YAML || isYAMLPath(path) {
		return p.ParseYAMLFile(path)
	}
	return p.ParseFile(path)
}

func isYAMLPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

type issueReport struct {
	Code     string `json:"code"`
	Message  string `json:"message"`
	Location string `json:"location"`
	Line     int    `json:"line,omitempty"`
	Column   int    `json:"column,omitempty"`
}

type fileReport struct {
	File   string        `json:"file"`
	URI    string        `json:"uri"`
	OK     bool          `json:"ok"`
	Type   string        `json:"type,omitempty"`
	Name   string        `json:"name,omitempty"`
	Named  []string      `json:"named,omitempty"`
	Issues []issueReport `json:"issues"`
}

func (c *cli) report(path string, res *avsc.Result) fileReport {
	fr := fileReport{File: path, URI: res.URI, OK: res.OK(), Issues: []issueReport{}}
	if s := res.TopLevel(); s != nil {
		fr.Type = s.Type().String()
		if ns, ok := s.(model.NamedSchema); ok {
			fr.Name = ns.Name().FullName()
		}
	} else if res.Schema != nil && res.Schema.IsReference() {
		fr.Type = "reference"
		fr.Name = res.Schema.FullRefName()
	}
	for _, ns := range res.Named() {
		fr.Named = append(fr.Named, ns.Name().FullName())
	}
	for _, is := range res.Issues {
		if c.cfg.ignored(is.Code) {
			continue
		}
		fr.Issues = append(fr.Issues, issueReport{
			Code:     is.Code,
			Message:  is.Message,
			Location: is.Location.String(),
			Line:     is.Location.Start.Line,
			Column:   is.Location.Start.Column,
		})
	}
	return fr
}

func parseCmd(args []string, stdout, stderr io.Writer) int {
	c, ok := setup("parse", args, stderr)
	if !ok {
		return exitUsage
	}
	i18n.SetLanguage(c.cfg.Language)
	p := c.parser()

	code := exitOK
	reports := make([]fileReport, 0, len(c.files))
	for _, path := range c.files {
		fr := c.report(path, c.parseFile(p, path))
		if !fr.OK || (c.cfg.FailOnIssues && len(fr.Issues) > 0) {
			code = exitFailed
		}
		reports = append(reports, fr)
	}

	if c.cfg.Format == "json" {
		out, err := gojson.MarshalIndent(reports, "", "  ")
		if err != nil {
			fmt.Fprintf(stderr, "avsc: encoding report: %v\n", err)
			return exitFailed
		}
		fmt.Fprintln(stdout, string(out))
		return code
	}
	for _, fr := range reports {
		for _, is := range fr.Issues {
			fmt.Fprintf(stdout, "%s: [%s] %s\n", is.Location, is.Code, is.Message)
		}
		fmt.Fprintln(stdout, summary(fr))
	}
	return code
}

func summary(fr fileReport) string {
	if !fr.OK {
		return fmt.Sprintf("%s: no schema", fr.File)
	}
	what := fr.Type
	if fr.Name != "" {
		what += " " + fr.Name
	}
	return fmt.Sprintf("%s: %s (%d issues)", fr.File, what, len(fr.Issues))
}

func namesCmd(args []string, stdout, stderr io.Writer) int {
	c, ok := setup("names", args, stderr)
	if !ok {
		return exitUsage
	}
	i18n.SetLanguage(c.cfg.Language)
	p := c.parser()
	code := exitOK
	for _, path := range c.files {
		res := c.parseFile(p, path)
		if !res.OK() {
			for _, is := range res.Issues {
				fmt.Fprintf(stderr, "%s\n", is)
			}
			code = exitFailed
			continue
		}
		for _, ns := range res.Named() {
			fmt.Fprintln(stdout, ns.Name().FullName())
		}
	}
	return code
}
