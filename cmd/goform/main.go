package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"

	"github.com/fatih/color"
	json "github.com/goccy/go-json"
	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/i18n"
	"github.com/reoring/goform/internal/graph"
	"github.com/reoring/goform/rule"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	sub := os.Args[1]
	switch sub {
	case "validate":
		validateCmd(os.Args[2:])
	case "inspect":
		inspectCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "goform CLI\n\nUsage:\n  goform validate -form form.yaml -in doc.json [-lang en|ja] [-messages catalog.yaml] [-color auto|always|never]\n  goform inspect -form form.yaml\n\nNotes:\n  - form.yaml declares initial values and a rule chain per field path.\n  - doc.json is the submitted document; \"-\" reads it from stdin.")
}

// formDef is the YAML form declaration: initial values plus a rule chain per
// field path.
type formDef struct {
	Initial map[string]any      `yaml:"initial"`
	Fields  map[string]fieldDef `yaml:"fields"`
}

type fieldDef struct {
	Rules []ruleDef `yaml:"rules"`
}

// ruleDef is one entry of a rule chain. The scalar form names an argument-less
// rule ("required"); the mapping form carries exactly one rule with its
// argument:
//
//	rules:
//	  - required
//	  - min_length: 3
//	  - pattern: "^[a-z]+$"
//	  - one_of: [free, pro, enterprise]
//	  - expr:
//	      when: 'value != "pro" || values.age >= 18'
//	      message: pro plan requires age 18+
type ruleDef struct {
	name string
	num  float64
	str  string
	list []any
	when string
	msg  string
}

func (r *ruleDef) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return node.Decode(&r.name)
	case yaml.MappingNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("rule mapping must have exactly one key")
		}
		r.name = node.Content[0].Value
		val := node.Content[1]
		switch r.name {
		case "min_length", "max_length", "min", "max":
			return val.Decode(&r.num)
		case "pattern":
			return val.Decode(&r.str)
		case "one_of":
			return val.Decode(&r.list)
		case "expr":
			var e struct {
				When    string `yaml:"when"`
				Message string `yaml:"message"`
			}
			if err := val.Decode(&e); err != nil {
				return err
			}
			r.when, r.msg = e.When, e.Message
			return nil
		}
		return fmt.Errorf("unknown rule %q", r.name)
	}
	return fmt.Errorf("rule must be a scalar or a single-key mapping")
}

func (r ruleDef) build() (goform.Validator, error) {
	switch r.name {
	case "required":
		return rule.Required(), nil
	case "min_length":
		return rule.MinLength(int(r.num)), nil
	case "max_length":
		return rule.MaxLength(int(r.num)), nil
	case "min":
		return rule.Min(r.num), nil
	case "max":
		return rule.Max(r.num), nil
	case "pattern":
		re, err := regexp.Compile(r.str)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", r.str, err)
		}
		return rule.Match(re), nil
	case "one_of":
		allowed := make([]any, len(r.list))
		for i, v := range r.list {
			allowed[i] = normalizeNumber(v)
		}
		return rule.OneOf(allowed...), nil
	case "expr":
		v, err := rule.Expr(r.when, r.msg)
		if err != nil {
			return nil, fmt.Errorf("expr %q: %w", r.when, err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown rule %q", r.name)
}

// normalizeNumber widens YAML numbers to float64 so they compare equal to
// JSON document numbers, which always decode as float64.
func normalizeNumber(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}

func loadForm(path string) formDef {
	data, err := os.ReadFile(path)
	if err != nil {
		fatalf("reading form: %v", err)
	}
	var def formDef
	if err := yaml.Unmarshal(data, &def); err != nil {
		fatalf("parsing form: %v", err)
	}
	return def
}

func buildForm(def formDef) *goform.Form {
	form := goform.New(goform.WithInitialValue(goform.Values(def.Initial)))
	paths := make([]string, 0, len(def.Fields))
	for p := range def.Fields {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		chain := make([]goform.Validator, 0, len(def.Fields[p].Rules))
		for _, rd := range def.Fields[p].Rules {
			v, err := rd.build()
			if err != nil {
				fatalf("field %s: %v", p, err)
			}
			chain = append(chain, v)
		}
		form.Register(p, goform.WithValidators(chain...))
	}
	return form
}

func loadDocument(path string) goform.Values {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		fatalf("reading document: %v", err)
	}
	doc, err := goform.ValuesFromJSON(data)
	if err != nil {
		fatalf("parsing document: %v", err)
	}
	return doc
}

func setupColor(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	case "auto":
		color.NoColor = !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd())
	default:
		fatalf("invalid -color %q (want auto, always or never)", mode)
	}
}

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	ngMark   = color.New(color.FgRed).SprintFunc()
	pathTint = color.New(color.FgCyan).SprintFunc()
)

func validateCmd(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	var formPath, inPath, lang, messages, colorMode string
	fs.StringVar(&formPath, "form", "", "form definition (YAML)")
	fs.StringVar(&inPath, "in", "", "document to validate (JSON, - for stdin)")
	fs.StringVar(&lang, "lang", "", "message language (en/ja)")
	fs.StringVar(&messages, "messages", "", "message catalog overrides (YAML)")
	fs.StringVar(&colorMode, "color", "auto", "colorize output: auto, always or never")
	_ = fs.Parse(args)
	if formPath == "" || inPath == "" {
		fs.Usage()
		os.Exit(2)
	}
	setupColor(colorMode)
	if messages != "" {
		data, err := os.ReadFile(messages)
		if err != nil {
			fatalf("reading messages: %v", err)
		}
		if err := i18n.LoadCatalog(data); err != nil {
			fatalf("loading messages: %v", err)
		}
	}
	if lang != "" {
		i18n.SetLanguage(lang)
	}

	form := buildForm(loadForm(formPath))
	doc := loadDocument(inPath)

	ctx := context.Background()
	form.SetValues(ctx, doc)

	errs := form.Validate(ctx)
	if len(errs) == 0 {
		fmt.Printf("%s all fields valid\n", okMark("OK"))
		return
	}
	paths := make([]string, 0, len(errs))
	for p := range errs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	for _, p := range paths {
		fmt.Printf("%s %s: %s\n", ngMark("NG"), pathTint(p), errs[p])
	}
	fmt.Printf("%d problem(s)\n", len(errs))
	os.Exit(1)
}

func inspectCmd(args []string) {
	fs := flag.NewFlagSet("inspect", flag.ExitOnError)
	var formPath string
	fs.StringVar(&formPath, "form", "", "form definition (YAML)")
	_ = fs.Parse(args)
	if formPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	def := loadForm(formPath)

	ruled := make(map[string]int, len(def.Fields))
	paths := make([]string, 0, len(def.Fields))
	for p, fd := range def.Fields {
		ruled[p] = len(fd.Rules)
		paths = append(paths, p)
	}
	// initial-value leaves without declared rules still belong to the form
	for _, p := range graph.Leaves(def.Initial) {
		if p == "" {
			continue
		}
		if _, ok := ruled[p]; !ok {
			ruled[p] = 0
			paths = append(paths, p)
		}
	}
	sort.Strings(paths)

	for _, p := range paths {
		initial, ok := goform.Values(def.Initial).At(p)
		if !ok {
			fmt.Printf("%s  rules=%d\n", pathTint(p), ruled[p])
			continue
		}
		rendered, err := json.Marshal(initial)
		if err != nil {
			fatalf("rendering initial value at %s: %v", p, err)
		}
		fmt.Printf("%s  rules=%d  initial=%s\n", pathTint(p), ruled[p], rendered)
	}
	fmt.Printf("%d field(s)\n", len(paths))
}

func fatalf(format string, a ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", a...)
	os.Exit(1)
}
