package io

import (
	"io"
	"math/rand"
	"strings"

	"github.com/opencog/cogexp/server/strcoll"
)

// ANSI color codes
const (
	Red     = "\x1b[31m"
	Green   = "\x1b[32m"
	Yellow  = "\x1b[33m"
	Magenta = "\x1b[35m"
	Cyan    = "\x1b[36m"
	Grey    = "\x1b[37m"
)

// Colors lists every color used in replies.
var Colors = []string{Red, Green, Yellow, Magenta, Cyan, Grey}

func Reply(w io.Writer, msg ...string) bool {
	if strcoll.Nth(0, msg) != "" {
		w.Write([]byte(strings.Join(msg, "\n")))
		return true
	}
	return false
}

func ReplyNL(w io.Writer, msg ...string) bool {
	if Reply(w, msg...) {
		return Reply(w, "\n")
	}
	return false
}

// ReplyEither writes the error in red if there is one, or the messages otherwise.
// Elasticsearch health statuses and CogServer process states are highlighted.
func ReplyEither(w io.Writer, err error, msg ...string) bool {
	if err != nil {
		return Reply(w, Red+strings.TrimSpace(err.Error()))
	}
	for i, line := range msg {
		words := strings.Split(line, " ")
		for j, word := range words {
			var color string
			switch word {
			case "yellow":
				color = Yellow
			case "green", "running":
				color = Green
			case "red", "stopped":
				color = Red
			}
			if color != "" {
				words[j] = color + word + Grey
				msg[i] = strings.Join(words, " ")
			}
		}
	}
	return Reply(w, msg...)
}

func ReplyEitherNL(w io.Writer, err error, msg ...string) {
	if ReplyEither(w, err, msg...) {
		Reply(w, "\n")
	}
}

func Prompt(w io.Writer) {
	Reply(w, Cyan+"cog> ")
}

// provides a visual cue to commands executed in the system
func ReplyWithDots(w io.Writer, args ...string) {
	dots := make([]byte, rand.Intn(32)+4)
	for i := range dots {
		dots[i] = '.'
	}
	ReplyNL(w, Magenta+string(dots)+strings.Join(args, " ")+Grey)
}
