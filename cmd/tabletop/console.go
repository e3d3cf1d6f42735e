package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
)

// console reads one command per line
type console struct {
	in  *bufio.Scanner
	out io.Writer
}

func newConsole(in io.Reader, out io.Writer) *console {
	return &console{in: bufio.NewScanner(in), out: out}
}

func (c *console) printf(format string, args ...interface{}) {
	fmt.Fprintf(c.out, format, args...)
}

// ask prints prompt and returns the trimmed reply. io.EOF means the input
// was closed.
func (c *console) ask(prompt string) (string, error) {
	c.printf("%s", prompt)
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(c.in.Text()), nil
}

// report prints a domain error the way the screens present it
func (c *console) report(err error) {
	msg := errors.GetMessage(err)
	switch errors.GetCategory(err) {
	case errors.CategoryResource:
		c.printf("! %s (try again)\n", msg)
	default:
		c.printf("! %s\n", msg)
	}
}

// ignoreEOF treats closed input as a normal exit
func ignoreEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
