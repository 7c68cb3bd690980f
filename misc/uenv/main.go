package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
	"golang.org/x/sync/errgroup"

	unum "github.com/shabbyrobe/go-unum"
)

// uenv is a small tool for poking at a unum environment: it shows the
// constants of the environment and, for each value given, the ubound it
// decodes to along with its bit layout and packed bytes.

const usage = `Unum environment explorer

Usage: uenv [-color] [-round] [-v] <ess> <fss> [value ...]

Values use the bound syntax: 1.5, -Inf, (1,2], [0,Inf) or NaN.
`

type result struct {
	in    string
	bound unum.Ubound
	guess unum.Unum
	bytes []byte
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(err)
	}
}

func run(argv []string) error {
	var (
		color   bool
		round   bool
		verbose bool
	)

	fs := flag.NewFlagSet("uenv", flag.ContinueOnError)
	fs.BoolVar(&color, "color", false, "Colorise the bit view")
	fs.BoolVar(&round, "round", false, "Round inexact results to nearest-even instead of enclosing them")
	fs.BoolVar(&verbose, "v", false, "Log progress to stderr")
	fs.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	if err := fs.Parse(argv); errors.Is(err, flag.ErrHelp) {
		return nil
	} else if err != nil {
		return err
	}

	args := fs.Args()
	if len(args) < 2 {
		fs.Usage()
		return fmt.Errorf("missing args")
	}

	ess, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("uenv: bad esizesize %q: %w", args[0], err)
	}
	fss, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("uenv: bad fsizesize %q: %w", args[1], err)
	}

	level := logiface.LevelWarning
	if verbose {
		level = logiface.LevelDebug
	}
	logger := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(os.Stderr)),
		stumpy.L.WithLevel(level),
	)

	var opts []unum.Option
	if round {
		opts = append(opts, unum.WithRounding(unum.RoundNearestEven))
	}
	env, err := unum.NewEnv(ess, fss, opts...)
	if err != nil {
		return err
	}

	logger.Info().
		Int(`esizesize`, ess).
		Int(`fsizesize`, fss).
		Str(`rounding`, env.Rounding().String()).
		Log(`env created`)

	printEnv(env)

	values := args[2:]
	if len(values) == 0 {
		return nil
	}

	// Decoding is independent per value; results are printed in input order.
	results := make([]result, len(values))
	var eg errgroup.Group
	for i, in := range values {
		eg.Go(func() error {
			b := env.ParseBound(in)
			if env.IsNaN(b.Left()) && !strings.Contains(in, "NaN") {
				return fmt.Errorf("uenv: could not parse %q", in)
			}
			results[i] = result{
				in:    in,
				bound: b,
				guess: env.Guess(b),
				bytes: env.BoundBytes(b),
			}
			logger.Debug().
				Str(`in`, in).
				Str(`bound`, b.String()).
				Log(`decoded`)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Err().Err(err).Log(`decode failed`)
		return err
	}

	for _, r := range results {
		fmt.Println()
		fmt.Printf("%s\n", r.in)
		fmt.Printf("  bound: %s\n", env.FormatBound(r.bound))
		fmt.Printf("  raw:   %s\n", r.bound)
		fmt.Printf("  view:  %s\n", env.ViewBound(r.bound, color))
		fmt.Printf("  guess: %s\n", env.FormatUnum(r.guess))
		fmt.Printf("  bytes: % x\n", r.bytes)
	}

	return nil
}

func printEnv(env *unum.Env) {
	fmt.Printf("env %s\n", env)
	fmt.Printf("  utagsize:       %d\n", env.UTagSize())
	fmt.Printf("  maxubits:       %d\n", env.MaxUBits())
	fmt.Printf("  maxreal:        %s\n", env.FormatUnum(env.MaxRealU()))
	fmt.Printf("  smallsubnormal: %s\n", env.FormatUnum(env.SmallSubnormalU()))
	fmt.Printf("  nan rule:       %s\n", env.NaNRule())

	cfg := spew.ConfigState{Indent: "  ", DisableMethods: true}
	cfg.Printf("  masks: %+v\n", struct {
		UBit, FSize, ESize, UTag unum.Unum
	}{env.UBitMask(), env.FSizeMask(), env.ESizeMask(), env.UTagMask()})
}
