package interpreter

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"time"
)

// defineBuiltins installs the natives available to every Lox program in i's global environment.
func defineBuiltins(i *Interpreter) {
	natives := []*loxNative{
		{name: "clock", n: 0, fn: builtinClock},
		{name: "char", n: 0, fn: builtinChar},
		{name: "string", n: 0, fn: builtinString},
		{name: "number", n: 0, fn: builtinNumber},
	}
	for _, n := range natives {
		i.globals.define(n.name, n)
	}
}

func builtinClock(i *Interpreter, args []loxObject) loxObject {
	return loxNumber(float64(time.Now().UnixNano()) / float64(time.Second))
}

func builtinChar(i *Interpreter, args []loxObject) loxObject {
	r, _, err := i.stdin.ReadRune()
	if err != nil {
		return loxNil{}
	}
	return loxString(r)
}

func builtinString(i *Interpreter, args []loxObject) loxObject {
	line, err := i.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return loxNil{}
	}
	if line == "" && errors.Is(err, io.EOF) {
		return loxNil{}
	}
	return loxString(strings.TrimRight(line, "\r\n"))
}

func builtinNumber(i *Interpreter, args []loxObject) loxObject {
	line, err := i.stdin.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return loxNil{}
	}
	if line == "" && errors.Is(err, io.EOF) {
		return loxNil{}
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(line), 64)
	if err != nil {
		return loxNil{}
	}
	return loxNumber(n)
}
