package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/baditaflorin/go_palindrome"
	"github.com/baditaflorin/go_palindrome/internal/adapters/logger"
	"github.com/baditaflorin/go_palindrome/internal/adapters/stream"
	"github.com/baditaflorin/go_palindrome/internal/ports"
)

type checkOptions struct {
	strategy   string
	normalizer string
	file       string
	parallel   bool
	json       bool
}

func newCheckCmd(global *globalOptions) *cobra.Command {
	opts := &checkOptions{}

	cmd := &cobra.Command{
		Use:   "check [text...]",
		Short: "Check each argument, or each line of a file, for a palindrome",
		Example: `  palindrome check "A man a plan a canal Panama"
  palindrome check --strategy deque madam "Hello World"
  palindrome check --file phrases.txt --json
  cat phrases.txt | palindrome check --file -`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 && opts.file == "" {
				return errors.New("nothing to check: pass text arguments or --file")
			}
			return runCheck(cmd, global, opts, args)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&opts.strategy, "strategy", "s", "", "strategy name (default from config, else twopointer)")
	f.StringVarP(&opts.normalizer, "normalizer", "n", "", "normalizer: default, optimized or folding")
	f.StringVarP(&opts.file, "file", "f", "", "check every non-blank line of this file (- for stdin)")
	f.BoolVar(&opts.parallel, "parallel", false, "evaluate file lines concurrently")
	f.BoolVar(&opts.json, "json", false, "print one JSON object per input")
	return cmd
}

func runCheck(cmd *cobra.Command, global *globalOptions, opts *checkOptions, args []string) error {
	cfg, lg, err := global.load(cmd)
	if err != nil {
		return err
	}
	if opts.strategy != "" {
		cfg.Evaluator.Strategy = opts.strategy
	}
	if opts.normalizer != "" {
		cfg.Evaluator.Normalizer = opts.normalizer
	}

	log := ports.Logger(logger.NewNopLogger())
	checkerOpts := []palindrome.Option{
		palindrome.WithStrategyName(cfg.Evaluator.Strategy),
		palindrome.WithNormalizerType(cfg.Evaluator.Normalizer),
		palindrome.WithCache(cfg.Evaluator.CacheSize),
		palindrome.WithWarmUp(cfg.Evaluator.WarmUp),
	}
	if lg != nil {
		checkerOpts = append(checkerOpts, palindrome.WithLogger(lg))
		log = logger.FromExisting(lg)
		defer log.Close()
	} else {
		checkerOpts = append(checkerOpts, palindrome.WithoutLogging())
	}

	checker, err := palindrome.New(checkerOpts...)
	if err != nil {
		return err
	}
	defer checker.Close()

	out := newPrinter(cmd.OutOrStdout(), opts.json)
	for _, arg := range args {
		if err := out.print(0, checker.Check(arg)); err != nil {
			return err
		}
	}

	if opts.file == "" {
		return nil
	}

	var r io.Reader = cmd.InOrStdin()
	if opts.file != "-" {
		file, err := os.Open(opts.file)
		if err != nil {
			return fmt.Errorf("open %s: %w", opts.file, err)
		}
		defer file.Close()
		r = file
	}

	le := stream.NewLineEvaluator(log, checker, stream.Config{UseParallel: opts.parallel})
	_, err = le.EvaluateLines(cmd.Context(), r, func(res stream.LineResult) error {
		return out.print(res.Line, res.EvaluationResult)
	})
	return err
}

type printer struct {
	w    io.Writer
	enc  *json.Encoder
	mark map[bool]string
}

func newPrinter(w io.Writer, asJSON bool) *printer {
	p := &printer{w: w, mark: map[bool]string{true: "yes", false: "no"}}
	if asJSON {
		p.enc = json.NewEncoder(w)
	}
	return p
}

// print writes one result. Line is 0 for command-line arguments.
func (p *printer) print(line int, r palindrome.Result) error {
	if p.enc != nil {
		if line == 0 {
			return p.enc.Encode(r)
		}
		return p.enc.Encode(stream.LineResult{Line: line, EvaluationResult: r})
	}

	prefix := ""
	if line > 0 {
		prefix = fmt.Sprintf("%d: ", line)
	}
	_, err := fmt.Fprintf(p.w, "%s%-3s %q (normalized %q, %s)\n", prefix, p.mark[r.IsPalindrome], r.Raw, r.Normalized, r.Strategy)
	return err
}
