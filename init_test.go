package unum

import (
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"
	"unicode"
)

var (
	fuzzIterations = fuzzDefaultIterations
	fuzzOpsActive  = allFuzzOps
	fuzzEnvsActive = allFuzzEnvs
	fuzzSeed       int64

	globalRNG *rand.Rand
)

func TestMain(m *testing.M) {
	var ops StringList
	var envs StringList

	flag.IntVar(&fuzzIterations, "unum.fuzziter", fuzzIterations, "Number of iterations to fuzz each op")
	flag.Int64Var(&fuzzSeed, "unum.fuzzseed", fuzzSeed, "Seed the RNG (0 == current nanotime)")
	flag.Var(&ops, "unum.fuzzop", "Fuzz op to run (can pass multiple times, or a comma separated list)")
	flag.Var(&envs, "unum.fuzzenv", "Fuzz environment as 'ess:fss' (can pass multiple)")
	flag.Parse()

	if fuzzSeed == 0 {
		fuzzSeed = time.Now().UnixNano()
	}
	globalRNG = rand.New(rand.NewSource(fuzzSeed))

	if len(ops) > 0 {
		fuzzOpsActive = nil
		for _, op := range ops {
			fuzzOpsActive = append(fuzzOpsActive, fuzzOp(op))
		}
	}

	if len(envs) > 0 {
		fuzzEnvsActive = nil
		for _, s := range envs {
			ess, fss, err := parseEnvFlag(s)
			if err != nil {
				log.Fatal(err)
			}
			fuzzEnvsActive = append(fuzzEnvsActive, [2]int{ess, fss})
		}
	}

	log.Println("rando seed:", fuzzSeed) // classic rando!
	log.Println("active ops:", fuzzOpsActive)
	log.Println("active env:", fuzzEnvsActive)
	log.Println("iterations:", fuzzIterations)

	code := m.Run()
	os.Exit(code)
}

func parseEnvFlag(s string) (ess, fss int, err error) {
	es, fs, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("unum: fuzz env %q should be 'ess:fss'", s)
	}
	if ess, err = strconv.Atoi(es); err != nil {
		return 0, 0, err
	}
	if fss, err = strconv.Atoi(fs); err != nil {
		return 0, 0, err
	}
	return ess, fss, nil
}

type StringList []string

func (s StringList) Strings() []string { return s }

func (s *StringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *StringList) Set(v string) error {
	vs := strings.Split(v, ",")
	for _, vi := range vs {
		vi = strings.TrimSpace(vi)
		if vi != "" {
			*s = append(*s, vi)
		}
	}
	return nil
}

var (
	env34 = MustEnv(3, 4)
	env27 = MustEnv(2, 7)
)

// digitsSame compares two numerals up to the first n mantissa digits, plus
// any exponent.
func digitsSame(a, b string, n int) bool {
	ai, bi := 0, 0
	for ai < len(a) && bi < len(b) && n > 0 {
		if a[ai] != b[bi] {
			return false
		}
		if unicode.IsDigit(rune(a[ai])) {
			n--
		}
		ai, bi = ai+1, bi+1
	}
	if n > 0 && (ai < len(a)) != (bi < len(b)) {
		return false
	}
	_, ae, aok := strings.Cut(a, "e")
	_, be, bok := strings.Cut(b, "e")
	return aok == bok && ae == be
}

// textSame compares two printed values, bounds end by end, to n digits.
func textSame(a, b string, n int) bool {
	aL, bL := strings.IndexAny(a, "(["), strings.IndexAny(b, "([")
	aC, bC := strings.IndexByte(a, ','), strings.IndexByte(b, ',')
	aR, bR := strings.IndexAny(a, ")]"), strings.IndexAny(b, ")]")
	if aL < 0 || aC < 0 || aR < 0 {
		if bL >= 0 && bC >= 0 && bR >= 0 {
			return false
		}
		return digitsSame(a, b, n)
	}
	if bL < 0 || bC < 0 || bR < 0 || a[aL] != b[bL] || a[aR] != b[bR] {
		return false
	}
	return digitsSame(a[aL+1:aC], b[bL+1:bC], n) &&
		digitsSame(a[aC+1:aR], b[bC+1:bR], n)
}
