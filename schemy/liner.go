package schemy

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

var historyFile = filepath.Join(os.Getenv("HOME"), ".schemyhist")

var completionKeywords = []string{`(`, `(+ `, `(- `, `(* `, `(/ `,
	`(< `, `(<= `, `(= `, `(> `, `(>= `, `(acos `, `(and `, `(append `,
	`(asin `, `(atan `, `(begin `, `(blake2b `, `(car `, `(cdr `,
	`(cons `, `(cos `, `(define `, `(empty? `, `(equal? `, `(exp `,
	`(expt `, `(if `, `(json `, `(lambda `, `(length `, `(list `,
	`(log `, `(log10 `, `(map `, `(msgpack `, `(not `, `(null? `,
	`(or `, `(pow `, `(quote `, `(set! `, `(sin `, `(sqrt `, `(tan `,
	`(unjson `, `(unmsgpack `}

type Prompter struct {
	prompt   string
	prompter *liner.State
	origMode liner.ModeApplier
	rawMode  liner.ModeApplier
}

func NewPrompter(prompt string) *Prompter {
	origMode, err := liner.TerminalMode()
	if err != nil {
		panic(err)
	}

	p := &Prompter{
		prompt:   prompt,
		prompter: liner.NewLiner(),
		origMode: origMode,
	}

	rawMode, err := liner.TerminalMode()
	if err != nil {
		panic(err)
	}
	p.rawMode = rawMode

	p.prompter.SetCtrlCAborts(false)

	p.prompter.SetCompleter(func(line string) (c []string) {
		for _, n := range completionKeywords {
			if strings.HasPrefix(n, strings.ToLower(line)) {
				c = append(c, n)
			}
		}
		return
	})

	if f, err := os.Open(historyFile); err == nil {
		p.prompter.ReadHistory(f)
		f.Close()
	}

	return p
}

func (p *Prompter) Close() {
	defer p.prompter.Close()
	if f, err := os.Create(historyFile); err != nil {
		log.Print("Error writing history file: ", err)
	} else {
		p.prompter.WriteHistory(f)
		f.Close()
	}
}

func (p *Prompter) Getline(prompt *string) (line string, err error) {
	applyErr := p.rawMode.ApplyMode()
	if applyErr != nil {
		panic(applyErr)
	}
	defer func() {
		applyErr := p.origMode.ApplyMode()
		if applyErr != nil {
			panic(applyErr)
		}
	}()

	if prompt == nil {
		line, err = p.prompter.Prompt(p.prompt)
	} else {
		line, err = p.prompter.Prompt(*prompt)
	}
	if err == nil {
		p.prompter.AppendHistory(line)
		return line, nil
	}
	return "", err
}
