// Command cssdump parses a CSS file and prints its rule and error summary.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/lukehoban/csscore/css"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: cssdump <css-file>")
		os.Exit(1)
	}

	filename := os.Args[1]
	content, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Error reading file: %v\n", err)
		os.Exit(1)
	}

	var errs []css.ErrorEvent
	cfg := css.NewConfig()
	cfg.AddListener(css.ErrorListenerFunc(func(e css.ErrorEvent) {
		errs = append(errs, e)
	}))

	fmt.Println("=== Parsing CSS ===")
	sheet := css.ParseStylesheet(string(content), cfg)
	fmt.Printf("Found %d top-level rules.\n", len(sheet.Rules))

	fmt.Println("\n=== Rules ===")
	for _, r := range sheet.Rules {
		printRule(r, 0)
	}

	fmt.Println("\n=== Errors ===")
	if len(errs) == 0 {
		fmt.Println("None.")
	}
	for _, e := range errs {
		fmt.Printf("%s (line %d, col %d)\n", e.Code, e.Pos.Line, e.Pos.Col)
	}

	fmt.Println("\n=== Done ===")
}

// printRule prints a rule tree with indentation.
func printRule(r css.Rule, indent int) {
	prefix := strings.Repeat("  ", indent)

	switch rule := r.(type) {
	case *css.StyleRule:
		fmt.Printf("%sStyleRule [%d declarations]\n", prefix, rule.Style.Len())
	case *css.CharsetRule:
		fmt.Printf("%s@charset %q\n", prefix, rule.Encoding)
	case *css.ImportRule:
		fmt.Printf("%s@import %q [%d mediums]\n", prefix, rule.URL, len(rule.Mediums))
	case *css.NamespaceRule:
		fmt.Printf("%s@namespace %s %q\n", prefix, rule.Prefix, rule.URI)
	case *css.MediaRule:
		fmt.Printf("%s@media [%d mediums] {\n", prefix, len(rule.Mediums))
		for _, child := range rule.Rules {
			printRule(child, indent+1)
		}
		fmt.Printf("%s}\n", prefix)
	case *css.SupportsRule:
		fmt.Printf("%s@supports {\n", prefix)
		for _, child := range rule.Rules {
			printRule(child, indent+1)
		}
		fmt.Printf("%s}\n", prefix)
	case *css.DocumentRule:
		fmt.Printf("%s@document [%d functions] {\n", prefix, len(rule.Functions))
		for _, child := range rule.Rules {
			printRule(child, indent+1)
		}
		fmt.Printf("%s}\n", prefix)
	case *css.PageRule:
		fmt.Printf("%s@page [%d declarations]\n", prefix, rule.Style.Len())
	case *css.FontFaceRule:
		fmt.Printf("%s@font-face [%d declarations]\n", prefix, rule.Style.Len())
	case *css.KeyframesRule:
		fmt.Printf("%s@keyframes %s {\n", prefix, rule.Name)
		for _, child := range rule.Rules {
			printRule(child, indent+1)
		}
		fmt.Printf("%s}\n", prefix)
	case *css.KeyframeRule:
		fmt.Printf("%sKeyframeRule %v [%d declarations]\n", prefix, rule.Selector.Percentages, rule.Style.Len())
	case *css.UnknownAtRule:
		fmt.Printf("%s@%s (unknown) %q\n", prefix, rule.Name, rule.Prelude)
	default:
		fmt.Printf("%s<unknown rule>\n", prefix)
	}
}
