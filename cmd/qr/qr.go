// Copyright 2011 The Go Authors.  All rights reserved.
// Copyright 2024 Vadim Vygonets.  All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command qr encodes text as a QR code.
package main

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"syscall"

	"github.com/caarlos0/env/v11"
	"github.com/mattn/go-isatty"
	"github.com/pborman/getopt/v2"

	"github.com/unixdj/qrsym"
	"github.com/unixdj/qrsym/coding"
)

// config holds defaults taken from the environment.
type config struct {
	Level  string `env:"QR_LEVEL" envDefault:"l"`
	Scale  int    `env:"QR_SCALE" envDefault:"8"`
	Margin int    `env:"QR_MARGIN" envDefault:"4"`
	Format string `env:"QR_FORMAT"`
}

var g = struct {
	scale    int             // scale
	border   int             // quiet zone
	palette  *[2]color.Color // palette
	rev      bool            // reverse colours
	fn       string          // filename
	lev      qr.Level        // QR correction level
	minVer   coding.Version  // minimum QR version
	maxVer   coding.Version  // maximum QR version
	mask     coding.Mask     // QR mask or coding.AutoMask
	format   int             // output file format
	eci      int             // ECI segment value
	bg, fg   rgba            // colour
	colSet   bool            // colour set
	eciflag  bool            // ECI flag
	latin1   bool            // Latin-1 byte mode
	byteOnly bool            // byte mode only
	upper    bool            // uppercase
	noBoost  bool            // keep the requested level
	debug    bool            // debug log
	log      *slog.Logger    // debug logger
}{
	bg: rgba{0xff, 0xff, 0xff, 0xff},
	fg: rgba{0x00, 0x00, 0x00, 0xff},
}

func printUsage(w io.Writer) {
	cl := getopt.CommandLine
	prog := cl.Program()
	ul := make([]string, 1, 4)
	ul[0] = cl.UsageLine() + " [string ...]"
	ml := max(70-len("Usage: ")-1-len(prog), 0)
	for i := 0; len(ul[i]) > ml; i++ {
		s := ul[i]
		n := ml - 1
		for n > 0 && (s[n] != ' ' || s[n+1] != '[') {
			n--
		}
		ul = append(ul, s[n+1:])
		ul[i] = s[:max(n, 0)]
		ml = 60
	}
	fmt.Fprint(w, "QR code generator\nUsage: ", prog, " ",
		strings.Join(ul, "\n          "), `
If no string is given, data is read from standard input and the final
newline is stripped.  Defaults: UTF-8 input, byte mode data encoded as
is, no ECI segment.  QR_LEVEL, QR_SCALE, QR_MARGIN and QR_FORMAT set
the defaults of -l, -s, -m and -t.

`)
	var b bytes.Buffer
	cl.PrintOptions(&b)
	w.Write(bytes.ReplaceAll(b.Bytes(), []byte(" [-1]"), nil))
}

type opt func()

func (opt) String() string                    { return "" }
func (o opt) Set(string, getopt.Option) error { o(); return nil }

func usage() {
	printUsage(os.Stderr)
	os.Exit(2)
}

func help() {
	printUsage(os.Stdout)
	os.Exit(0)
}

func version() {
	fmt.Println(`qr version 0.9.0
Copyright (c) 2011 The Go Authors
Copyright (c) 2024 Vadim Vygonets`)
	os.Exit(0)
}

type rgba struct {
	R, G, B, A uint8
}

func (c *rgba) String() string {
	for name, v := range rgb {
		if *c == v {
			return name
		}
	}
	if c.A == 0xff {
		return fmt.Sprintf("%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

func (c *rgba) Set(s string, _ getopt.Option) error {
	g.colSet = true
	v, err := parseColour(s)
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var formats = []string{
	"png", "pngi", "pbm", "pbmi", "svg", "svgi",
	"utf8", "utf8i", "ascii", "asciii",
}

var encoders = [...]func(*qr.Code, io.Writer) error{
	(*qr.Code).EncodePNG,
	(*qr.Code).EncodePBM,
	(*qr.Code).EncodeSVG,
	func(c *qr.Code, w io.Writer) error {
		_, err := fmt.Fprint(w, c)
		return err
	},
	ascii,
}

// formatIndex returns the index of format name in formats, or -1.
func formatIndex(name string) int {
	for i, v := range formats {
		if name == v {
			return i
		}
	}
	return -1
}

func parseFlags(cfg *config) {
	getopt.SetUsage(usage)
	getopt.Flag(opt(help), 'h', "show this help").SetFlag()
	getopt.Flag(opt(version), 'V', "print version and copyright").SetFlag()
	getopt.FlagLong(&g.bg, "background", 'b', `background colour; see -F`,
		"RGB[A]|name")
	getopt.FlagLong(&g.fg, "foreground", 'F', `foreground colour `+
		`as 3, 4, 6 or 8 hex digits or a colour name; `+
		`only for types png[i] and svg[i]`, "RGB[A]|name")
	getopt.Flag(&g.latin1, '1',
		"convert byte mode segments to Latin-1")
	getopt.Flag(&g.byteOnly, '8', "encode entire data in byte mode")
	getopt.Flag(&g.upper, 'i', `ignore case, convert input to uppercase`)
	getopt.Flag(&g.noBoost, 'B', "do not raise the error correction "+
		"level when the data fits at a higher one")
	getopt.Flag(&g.debug, 'd', "log encoding details to standard error")
	border := getopt.Unsigned('m', uint64(max(cfg.Margin, 0)),
		&getopt.UnsignedLimit{Base: 0, Bits: 16, Min: 0, Max: 1 << 12},
		`quiet zone pixels`, "margin")
	fno := getopt.Flag(&g.fn, 'o', `output file, or "-" for `+
		`standard output`, "file")
	getopt.Flag(&g.eciflag, 'e', "encode ECI segment setting "+
		"character encoding according to -1 flag")
	eci := getopt.Signed('E', -1, &getopt.SignedLimit{Base: 0, Bits: 21, Min: 0, Max: 999999},
		"encode ECI segment with the given value; overrides -e", "eci")
	minVer := getopt.Unsigned('v', 1, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"minimum QR code version", "ver")
	maxVer := getopt.Unsigned('x', 40, &getopt.UnsignedLimit{Base: 0, Bits: 8, Min: 1, Max: 40},
		"maximum QR code version", "ver")
	mask := getopt.Signed('k', -1, &getopt.SignedLimit{Base: 0, Bits: 8, Min: 0, Max: 7},
		"QR mask pattern; default: lowest penalty", "mask")
	lev := getopt.Enum('l',
		[]string{"l", "m", "q", "h", "L", "M", "Q", "H"}, cfg.Level,
		"error correction level, lowest to highest", "l|m|q|h")
	scale := getopt.Unsigned('s', uint64(max(cfg.Scale, 1)),
		&(getopt.UnsignedLimit{Base: 0, Bits: 28, Min: 1, Max: 1 << 15}),
		`image pixels (type svg[i]: units) per QR module ("pixel"); `+
			`ignored for types utf8[i] and ascii[i]`, "scale")
	ff := getopt.Enum('t', formats, cfg.Format, `output format, one of: `+
		strings.Join(formats, ", ")+
		`; types with "i" appended have colours inverted; `+
		`if no -o is given and standard output is a TTY, `+
		`default is utf8, otherwise png`, "type")

	getopt.Parse()
	if *minVer > *maxVer {
		fmt.Fprintf(os.Stderr, "-v %d exceeds -x %d\n", *minVer, *maxVer)
		usage()
	}
	g.scale = int(*scale)
	g.border = int(*border)
	g.minVer = coding.Version(*minVer)
	g.maxVer = coding.Version(*maxVer)
	g.mask = coding.Mask(*mask)
	g.eci = int(*eci)
	l, err := coding.ParseLevel(*lev)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
	}
	g.lev = l
	if *ff == "" {
		if !fno.Seen() && isatty.IsTerminal(uintptr(syscall.Stdout)) {
			*ff = "utf8"
		} else {
			*ff = "png"
		}
	}
	i := formatIndex(*ff)
	if i < 0 {
		fmt.Fprintf(os.Stderr, "%q: unknown output type\n", *ff)
		usage()
	}
	g.format = i >> 1
	g.rev = i&1 != 0
	if g.fn == "-" {
		g.fn = ""
	}
	if g.eciflag && !getopt.IsSet('E') {
		if g.latin1 {
			g.eci = coding.Latin1ECI
		} else {
			g.eci = coding.UTF8ECI
		}
	}
	if g.colSet {
		g.palette = &[2]color.Color{color.RGBA(g.bg), color.RGBA(g.fg)}
	}
}

// newLogger returns the debug logger, discarding records below Warn
// unless debugging is enabled.
func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr,
		&slog.HandlerOptions{Level: level}))
}

func main() {
	log.SetFlags(0)
	var cfg config
	if err := env.Parse(&cfg); err != nil {
		log.Fatalln(err)
	}
	if cfg.Format != "" && formatIndex(cfg.Format) < 0 {
		log.Fatalf("QR_FORMAT=%q: unknown output type\n", cfg.Format)
	}
	parseFlags(&cfg)
	g.log = newLogger(g.debug)

	var s string
	if args := getopt.Args(); len(args) != 0 {
		s = strings.Join(args, " ")
	} else {
		var b strings.Builder
		if _, err := io.Copy(&b, os.Stdin); err != nil {
			log.Fatalln(err)
		}
		s, _ = strings.CutSuffix(
			strings.ReplaceAll(b.String(), "\r\n", "\n"), "\n")
	}
	if g.upper {
		s = strings.ToUpper(s)
	}

	segs, err := segments(s)
	if err != nil {
		log.Fatalln(err)
	}
	for _, seg := range segs {
		g.log.Debug("segment",
			slog.String("mode", seg.Mode().String()),
			slog.Int("chars", seg.NumChars()),
			slog.Int("bits", seg.Len()))
	}
	c, err := qr.EncodeSegmentsAdvanced(segs, g.lev, g.minVer, g.maxVer,
		g.mask, !g.noBoost)
	if err != nil {
		log.Fatalln(err)
	}
	g.log.Debug("encoded",
		slog.Int("version", int(c.Version())),
		slog.String("level", c.Level().String()),
		slog.Int("mask", int(c.Mask())),
		slog.Int("size", c.Size()),
		slog.Int("penalty", c.Penalty()))
	write(c)
}

// segments returns the segments encoding s according to the flags.
func segments(s string) ([]coding.Segment, error) {
	var segs []coding.Segment
	if g.eci >= 0 {
		e, err := coding.MakeECI(g.eci)
		if err != nil {
			return nil, err
		}
		segs = append(segs, e)
	}
	switch {
	case s == "":
	case !g.byteOnly && (!g.latin1 || coding.IsAlphanumeric(s)):
		segs = append(segs, coding.MakeSegments(s)...)
	case g.latin1:
		seg, err := coding.MakeLatin1(s)
		if err != nil {
			return nil, err
		}
		segs = append(segs, seg)
	default:
		segs = append(segs, coding.MakeBytes([]byte(s)))
	}
	return segs, nil
}

func write(c *qr.Code) {
	open := g.fn != ""
	var w = os.Stdout
	if open {
		var err error
		if w, err = os.OpenFile(g.fn, os.O_WRONLY|os.O_CREATE|os.O_TRUNC,
			0666); err != nil {
			log.Fatalln(err)
		}
	}
	c.Scale = g.scale
	c.Border = g.border
	c.Palette = g.palette
	c.Reverse = g.rev
	g.log.Debug("write",
		slog.String("type", formats[g.format<<1]),
		slog.Bool("reverse", g.rev),
		slog.Int("scale", g.scale),
		slog.Int("margin", g.border))
	err := encoders[g.format](c, w)
	if open && err == nil {
		err = w.Close()
	}
	if err != nil {
		log.Fatalln(err)
	}
}

func ascii(c *qr.Code, w io.Writer) error {
	siz := c.Size()
	bord := c.Border
	pix := siz + 2*bord
	b := make([]byte, (pix*2+1)*pix)
	i := 0
	for y := -bord; y < siz+bord; y++ {
		for x := -bord; x < siz+bord; x++ {
			var p byte = ' '
			if c.Black(x, y) != c.Reverse {
				p = '#'
			}
			_ = b[i+1]
			b[i], b[i+1] = p, p
			i += 2
		}
		b[i] = '\n'
		i++
	}
	_, err := w.Write(b)
	return err
}
