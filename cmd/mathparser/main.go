package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/zephyrtronium/mathparser"
)

func main() {
	log.SetFlags(0)
	var (
		inname, verb string
		prec         int
		tokens, wide bool
	)
	flag.StringVar(&inname, "in", "", "input file, one expression per line (default stdin if no args given)")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string")
	flag.IntVar(&prec, "p", 0, "precision of calculations in bits (0 for float64)")
	flag.BoolVar(&tokens, "tokens", false, "print token streams")
	flag.BoolVar(&wide, "wide", false, "accept full-width characters")
	flag.Parse()
	if prec < 0 {
		log.Fatalf("precision (%d) must not be negative", prec)
	}

	var exprs []string
	f, err := infile(inname, flag.NArg() == 0)
	if err != nil {
		log.Fatal(err)
	}
	if f != nil {
		defer f.Close()
		lines, err := readLines(f)
		if err != nil {
			log.Fatal(err)
		}
		exprs = append(exprs, lines...)
	}
	exprs = append(exprs, flag.Args()...)

	opts := []mathparser.Option{mathparser.Prec(uint(prec))}
	if wide {
		opts = append(opts, mathparser.FoldWidth())
	}
	opt := mathparser.Preset(opts...)

	verb += "\n"
	for _, src := range exprs {
		if tokens {
			toks, err := mathparser.Tokenize(src, opt)
			if err != nil {
				fmt.Println(err)
				continue
			}
			fmt.Printf("%v : ", toks)
		}
		var r interface{}
		if prec == 0 {
			r, err = mathparser.Parse(src, opt)
		} else {
			r, err = mathparser.ParseBig(src, opt)
		}
		if err != nil {
			fmt.Println(err)
			continue
		}
		fmt.Printf(verb, r)
	}
}

func infile(inname string, std bool) (*os.File, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return os.Stdin, nil
	}
	return nil, nil
}

// readLines reads the non-blank lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	s := bufio.NewScanner(r)
	for s.Scan() {
		if line := s.Text(); strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, s.Err()
}
