package mathparser

import "golang.org/x/text/width"

// Option is an option for tokenizing and evaluating expressions.
type Option interface {
	option(config) config
}

type (
	foldopt struct{}
	precopt uint
)

// config holds the options for a single call. It is also an Option.
type config struct {
	// fold indicates that full-width characters are narrowed before scanning.
	fold bool
	// prec is the precision of arbitrary-precision evaluation. Zero means
	// defaultPrec.
	prec uint
}

// defaultPrec is the precision ParseBig uses when none is given.
const defaultPrec = 64

func configure(opts []Option) config {
	var c config
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		c = opt.option(c)
	}
	return c
}

// FoldWidth tells the tokenizer to treat full-width characters as their
// ASCII equivalents, so that e.g. "３＊（４＋２）" is the same as "3*(4+2)".
func FoldWidth() Option {
	return foldopt{}
}

func (foldopt) option(c config) config {
	c.fold = true
	return c
}

// Prec sets the precision in bits of arbitrary-precision evaluation with
// ParseBig. A precision of 0 selects the default of 64. Prec has no effect on
// Parse.
func Prec(prec uint) Option {
	return precopt(prec)
}

func (o precopt) option(c config) config {
	c.prec = uint(o)
	return c
}

// Preset combines options into one that may be more efficient when using the
// same options for many calls. A preset panics when it would change any option
// from the default, but it is safe to apply other options after a preset.
func Preset(opts ...Option) Option {
	c := configure(opts)
	return &c
}

func (o *config) option(c config) config {
	if c != (config{}) {
		panic("mathparser: preset applied to non-default config")
	}
	return *o
}

func foldWidth(s string) string {
	return width.Narrow.String(s)
}
