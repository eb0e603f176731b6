// Package prompt подтверждения разрушающих действий.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer задаёт вопрос да/нет.
type Confirmer interface {
	Confirm(question string) bool
}

// Func адаптер функции к Confirmer.
type Func func(question string) bool

func (f Func) Confirm(q string) bool { return f(q) }

// Yes подтверждает всё без вопросов (флаг --yes).
var Yes Confirmer = Func(func(string) bool { return true })

// ReaderConfirmer спрашивает в Out и читает ответ из In. Согласие — только "y" или "yes".
type ReaderConfirmer struct {
	In  io.Reader
	Out io.Writer

	r *bufio.Reader
}

func (c *ReaderConfirmer) Confirm(question string) bool {
	if c.r == nil {
		c.r = bufio.NewReader(c.In)
	}
	fmt.Fprintf(c.Out, "%s [y/N]: ", question)
	line, err := c.r.ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}
