// Package eval implements the expression engine: a lexer, a
// precedence-climbing parser and a big.Float evaluator with typed,
// column-bearing errors. Engines are stateless with respect to
// variables; callers pass the scope on every evaluation.
package eval

import (
	"errors"
	"math/big"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
)

// Engine evaluates expressions at a fixed binary precision. It is safe
// for concurrent use; all mutable state lives in the parse cache,
// which locks internally.
type Engine struct {
	prec   uint
	consts map[string]*big.Float
	cache  *parseCache
}

var _ ports.Evaluator = (*Engine)(nil)

// New builds an engine. The precision is in mantissa bits, as for
// big.Float; domain.Config clamps it to a sane range before we get
// here.
func New(precision uint) *Engine {
	return &Engine{
		prec:   precision,
		consts: computeConstants(precision),
		cache:  newParseCache(maxCachedStatements),
	}
}

// Evaluate parses and evaluates one statement. The scope maps variable
// names to their values and is read, never written; an assignment is
// reported through the returned Evaluation and left to the caller to
// store. Errors are one of the types in this package and carry the
// offending column where known.
func (e *Engine) Evaluate(expression string, scope map[string]domain.Value) (result domain.Evaluation, rerr error) {
	if len(expression) > maxExpressionBytes {
		return domain.Evaluation{}, &SyntaxError{Msg: "expression too long"}
	}

	stmt, err := e.parse(expression)
	if err != nil {
		return domain.Evaluation{}, err
	}

	// big.Float panics with ErrNaN instead of returning an error for
	// operations like Inf-Inf. Individual operations guard the known
	// cases; this net catches the rest.
	defer func() {
		p := recover()
		if p == nil {
			return
		}
		perr, ok := p.(error)
		if !ok {
			panic(p)
		}
		var nan big.ErrNaN
		if !errors.As(perr, &nan) {
			panic(p)
		}
		result = domain.Evaluation{}
		rerr = &DomainError{Msg: "result is not a number"}
	}()

	ev := &evaluator{engine: e, scope: scope}
	val, err := ev.eval(stmt.expr)
	if err != nil {
		return domain.Evaluation{}, err
	}

	return domain.Evaluation{
		Value:      domain.NewValue(val),
		Assignment: stmt.assign,
		Name:       stmt.name,
	}, nil
}

func (e *Engine) parse(expression string) (*statement, error) {
	if stmt, ok := e.cache.get(expression); ok {
		return stmt, nil
	}
	toks, err := lex(expression)
	if err != nil {
		return nil, err
	}
	stmt, err := parse(toks)
	if err != nil {
		return nil, err
	}
	e.cache.put(expression, stmt)
	return stmt, nil
}
