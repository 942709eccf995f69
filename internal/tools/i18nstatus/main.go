// Command i18nstatus reports translation coverage of the embedded catalogs.
//
// With -check it exits non-zero when any locale is missing keys, carries
// keys the base locale lacks, or changes a message's format verbs.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/louisbranch/abacus/internal/platform/config"
	"github.com/louisbranch/abacus/internal/platform/i18n/catalog"
)

func main() {
	baseLocale := flag.String("base-locale", catalog.BaseLocale, "locale used as the translation source of truth")
	markdownOut := flag.String("out", "", "markdown output path (stdout when empty)")
	jsonOut := flag.String("json-out", "", "optional json output path")
	check := flag.Bool("check", false, "fail when any locale has gaps")
	flag.Parse()

	bundle, err := catalog.LoadEmbedded()
	if err != nil {
		config.Exitf("load catalogs: %v", err)
	}
	rep, err := buildReport(bundle, *baseLocale)
	if err != nil {
		config.Exitf("%v", err)
	}

	if *check {
		problems := rep.problems()
		for _, problem := range problems {
			fmt.Fprintln(os.Stderr, problem)
		}
		if len(problems) > 0 {
			config.Exitf("%d translation problems", len(problems))
		}
		return
	}

	if *jsonOut != "" {
		if err := writeJSONFile(*jsonOut, rep); err != nil {
			config.Exitf("write json report: %v", err)
		}
	}
	if *markdownOut == "" {
		if err := writeMarkdown(os.Stdout, rep); err != nil {
			config.Exitf("write markdown report: %v", err)
		}
		return
	}
	if err := os.MkdirAll(filepath.Dir(*markdownOut), 0o755); err != nil {
		config.Exitf("mkdir: %v", err)
	}
	f, err := os.Create(*markdownOut)
	if err != nil {
		config.Exitf("create %s: %v", *markdownOut, err)
	}
	defer f.Close()
	if err := writeMarkdown(f, rep); err != nil {
		config.Exitf("write markdown report: %v", err)
	}
}

func writeJSONFile(path string, rep report) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
