package keyframe

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokNumber tokenKind = iota
	tokIdent
	tokOperator
	tokLParen
	tokRParen
)

type token struct {
	kind  tokenKind
	text  string
	value float64
}

var precedence = map[string]int{"+": 1, "-": 1, "*": 2, "/": 2}

func tokenize(expr string) ([]token, error) {
	var tokens []token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c == ' ' || c == '\t':
			i++
		case c >= '0' && c <= '9':
			j := i
			for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
				j++
			}
			v, err := strconv.ParseFloat(expr[i:j], 64)
			if err != nil {
				return nil, newError(ExpressionInvalid, expr, err.Error())
			}
			tokens = append(tokens, token{kind: tokNumber, text: expr[i:j], value: v})
			i = j
		case c >= 'a' && c <= 'z':
			j := i
			for j < len(expr) && expr[j] >= 'a' && expr[j] <= 'z' {
				j++
			}
			tokens = append(tokens, token{kind: tokIdent, text: expr[i:j]})
			i = j
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, token{kind: tokOperator, text: string(c)})
			i++
		case c == '(':
			tokens = append(tokens, token{kind: tokLParen, text: "("})
			i++
		case c == ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")"})
			i++
		default:
			return nil, newError(ExpressionInvalid, expr, fmt.Sprintf("unexpected character %q", c))
		}
	}
	if len(tokens) == 0 {
		return nil, newError(ExpressionInvalid, expr, "empty expression")
	}
	return tokens, nil
}

// Program is a compiled expression in postfix order.
type Program struct {
	source  string
	postfix []token
}

// Compile converts an infix expression to postfix with the shunting-yard
// algorithm. Identifiers are checked here; their values are bound by Eval.
func Compile(expr string) (Program, error) {
	expr = strings.ToLower(strings.TrimSpace(expr))
	tokens, err := tokenize(expr)
	if err != nil {
		return Program{}, err
	}

	var out, ops []token
	for _, tok := range tokens {
		switch tok.kind {
		case tokNumber:
			out = append(out, tok)
		case tokIdent:
			if _, ok := identifiers[tok.text]; !ok {
				return Program{}, newError(ExpressionInvalid, expr, "unknown identifier "+tok.text)
			}
			out = append(out, tok)
		case tokOperator:
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				if top.kind != tokOperator || precedence[top.text] < precedence[tok.text] {
					break
				}
				out = append(out, top)
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		case tokLParen:
			ops = append(ops, tok)
		case tokRParen:
			matched := false
			for len(ops) > 0 {
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.kind == tokLParen {
					matched = true
					break
				}
				out = append(out, top)
			}
			if !matched {
				return Program{}, newError(ExpressionInvalid, expr, "unbalanced parentheses")
			}
		}
	}
	for len(ops) > 0 {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		if top.kind == tokLParen {
			return Program{}, newError(ExpressionInvalid, expr, "unbalanced parentheses")
		}
		out = append(out, top)
	}

	prog := Program{source: expr, postfix: out}
	if err := prog.checkArity(); err != nil {
		return Program{}, err
	}
	return prog, nil
}

func (p Program) checkArity() error {
	depth := 0
	for _, tok := range p.postfix {
		if tok.kind == tokOperator {
			if depth < 2 {
				return newError(ExpressionInvalid, p.source, "operator "+tok.text+" is missing an operand")
			}
			depth--
			continue
		}
		depth++
	}
	if depth != 1 {
		return newError(ExpressionInvalid, p.source, "operands without an operator")
	}
	return nil
}

// References reports whether the program reads a previous record.
func (p Program) References() bool {
	for _, tok := range p.postfix {
		if tok.kind == tokIdent && tok.text != "original" {
			return true
		}
	}
	return false
}

// Env binds identifier values for one evaluation.
type Env struct {
	Original   int
	Last       int
	LastWidth  int
	LastHeight int
	// HasPrevious is false for the first record of a file.
	HasPrevious bool
}

var identifiers = map[string]func(Env) int{
	"original":   func(e Env) int { return e.Original },
	"last":       func(e Env) int { return e.Last },
	"lastwidth":  func(e Env) int { return e.LastWidth },
	"lastheight": func(e Env) int { return e.LastHeight },
}

// Eval runs the program on a float stack and floors the result. Intermediate
// division keeps its fraction.
func (p Program) Eval(env Env) (int, error) {
	if len(p.postfix) == 0 {
		return 0, newError(ExpressionInvalid, p.source, "empty expression")
	}
	if p.References() && !env.HasPrevious {
		return 0, newError(InvalidKeyframeReference, p.source, "the first keyframe has no previous record")
	}

	stack := make([]float64, 0, len(p.postfix))
	for _, tok := range p.postfix {
		switch tok.kind {
		case tokNumber:
			stack = append(stack, tok.value)
		case tokIdent:
			stack = append(stack, float64(identifiers[tok.text](env)))
		case tokOperator:
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-2]
			var v float64
			switch tok.text {
			case "+":
				v = a + b
			case "-":
				v = a - b
			case "*":
				v = a * b
			case "/":
				if b == 0 {
					return 0, newError(ExpressionInvalid, p.source, "division by zero")
				}
				v = a / b
			}
			stack = append(stack, v)
		}
	}
	return int(math.Floor(stack[0])), nil
}
