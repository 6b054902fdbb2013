// Package calc implements the calculator session: live preview and
// commit of expressions, colon commands, the visible result window and
// the variable scope.
package calc

import (
	"errors"
	"sort"
	"strings"

	"github.com/freand76/kalkon/internal/domain"
	"github.com/freand76/kalkon/internal/ports"
)

// Deps carries the collaborators and settings for one session.
// SessionLog may be nil when persistence is disabled.
type Deps struct {
	Engine     ports.Evaluator
	History    ports.HistoryStore
	SessionLog ports.SessionLog
	Logger     ports.Logger
	StackDepth int
	Digits     int
}

// Service holds the state of one interactive session. Front-ends call
// Evaluate for every input line and redraw from Window and Vars.
type Service struct {
	engine  ports.Evaluator
	history ports.HistoryStore
	log     ports.SessionLog
	logger  ports.Logger
	depth   int
	digits  int

	system domain.ValueSystem
	vtype  domain.ValueType
	scope  map[string]domain.Value
}

var _ domain.CalcService = (*Service)(nil)

// NewService builds a session with decimal float display.
func NewService(deps Deps) (*Service, error) {
	if deps.Engine == nil || deps.History == nil || deps.Logger == nil {
		return nil, errors.New("calc.Service dependencies not satisfied")
	}
	depth := deps.StackDepth
	if depth < 1 {
		depth = domain.DefaultStackDepth
	}
	digits := deps.Digits
	if digits < 1 {
		digits = domain.DefaultDisplayDigits
	}
	return &Service{
		engine:  deps.Engine,
		history: deps.History,
		log:     deps.SessionLog,
		logger:  deps.Logger,
		depth:   depth,
		digits:  digits,
		system:  domain.SystemDecimal,
		vtype:   domain.TypeFloat,
		scope:   make(map[string]domain.Value),
	}, nil
}

var systemNames = map[string]domain.ValueSystem{
	"dec": domain.SystemDecimal,
	"hex": domain.SystemHexadecimal,
	"bin": domain.SystemBinary,
}

var typeNames = map[string]domain.ValueType{
	"float": domain.TypeFloat,
	"int":   domain.TypeInt,
	"i8":    domain.TypeInt8,
	"i16":   domain.TypeInt16,
	"i32":   domain.TypeInt32,
	"i64":   domain.TypeInt64,
	"u8":    domain.TypeUint8,
	"u16":   domain.TypeUint16,
	"u32":   domain.TypeUint32,
	"u64":   domain.TypeUint64,
}

// Evaluate processes one input line. Input mistakes come back in the
// response with IsError set; the error return is reserved for
// infrastructure trouble.
func (s *Service) Evaluate(req domain.CalcRequest) (domain.CalcResponse, error) {
	line := strings.TrimSpace(req.Expression)

	if line == "" {
		return domain.CalcResponse{ClearInput: req.Commit}, nil
	}
	if strings.HasPrefix(line, ":") {
		return s.command(line, req.Commit), nil
	}
	return s.expression(line, req.Commit), nil
}

func (s *Service) expression(line string, commit bool) domain.CalcResponse {
	ev, err := s.engine.Evaluate(line, s.scope)
	if err != nil {
		return domain.CalcResponse{
			Status:      err.Error(),
			IsError:     true,
			ErrorColumn: errorColumn(err),
		}
	}

	text, reason := s.render(ev.Value)
	if ev.Assignment {
		if !commit {
			return domain.CalcResponse{Status: "Set " + line, Result: text}
		}
		s.scope[ev.Name] = ev.Value
		s.record(line, text)
		s.logger.Debug("variable assigned", map[string]interface{}{"name": ev.Name})
		return domain.CalcResponse{
			Status:     "Set " + line,
			Result:     text,
			ClearInput: true,
		}
	}
	if !commit {
		return domain.CalcResponse{Result: text, Status: reason}
	}

	s.history.Append(domain.HistoryEntry{Expression: line, Value: ev.Value})
	s.record(line, text)
	return domain.CalcResponse{
		Status:       reason,
		Result:       text,
		ClearInput:   true,
		StackUpdated: true,
	}
}

// command handles one colon command. Recognition runs before the
// preview gate; an unknown name is an error in both phases.
func (s *Service) command(line string, commit bool) domain.CalcResponse {
	name := strings.TrimPrefix(line, ":")
	system, isSystem := systemNames[name]
	vtype, isType := typeNames[name]
	if !isSystem && !isType && name != "clear" {
		return domain.CalcResponse{
			Status:  "Unknown command '" + line + "'",
			IsError: true,
		}
	}
	if !commit {
		return domain.CalcResponse{Status: "CMD: " + line}
	}

	switch {
	case isSystem:
		s.system = system
		return domain.CalcResponse{
			Status:       "Output base: " + name,
			ClearInput:   true,
			StackUpdated: true,
		}
	case isType:
		s.vtype = vtype
		return domain.CalcResponse{
			Status:       "Result type: " + name,
			ClearInput:   true,
			StackUpdated: true,
		}
	default:
		s.history.Clear()
		return domain.CalcResponse{
			Status:       "History cleared",
			ClearInput:   true,
			StackUpdated: true,
		}
	}
}

// record mirrors a committed line to the session log when enabled.
// The computation stands either way, so failures are logged and
// swallowed.
func (s *Service) record(expression, result string) {
	if s.log == nil {
		return
	}
	if err := s.log.Record(expression, result); err != nil {
		s.logger.Error("session log write failed", err, map[string]interface{}{
			"path": s.log.Path(),
		})
	}
}

// Window returns the newest history entries rendered under the current
// display mode, oldest first, at most the configured depth.
func (s *Service) Window() []domain.StackRow {
	entries := s.history.List()
	if len(entries) > s.depth {
		entries = entries[len(entries)-s.depth:]
	}
	rows := make([]domain.StackRow, len(entries))
	for i, entry := range entries {
		text, _ := s.render(entry.Value)
		rows[i] = domain.StackRow{Expression: entry.Expression, Result: text}
	}
	return rows
}

// Vars lists the variable scope sorted by name, rendered under the
// current display mode.
func (s *Service) Vars() []domain.VarBinding {
	names := make([]string, 0, len(s.scope))
	for name := range s.scope {
		names = append(names, name)
	}
	sort.Strings(names)

	vars := make([]domain.VarBinding, len(names))
	for i, name := range names {
		text, _ := s.render(s.scope[name])
		vars[i] = domain.VarBinding{Name: name, Value: text}
	}
	return vars
}

// System returns the active output base.
func (s *Service) System() domain.ValueSystem {
	return s.system
}

// Type returns the active result type.
func (s *Service) Type() domain.ValueType {
	return s.vtype
}

// Clear drops the history. Variables survive; only the end of the
// process resets them.
func (s *Service) Clear() {
	s.history.Clear()
}

// render formats a value under the current display mode. When the mode
// cannot show the value it returns the placeholder and the reason.
func (s *Service) render(v domain.Value) (string, string) {
	text, err := v.Render(s.system, s.vtype, s.digits)
	if err == nil {
		return text, ""
	}
	var re *domain.RenderError
	if errors.As(err, &re) {
		return re.Placeholder, re.Reason
	}
	return "[error]", err.Error()
}

// errorColumn pulls the 1-based column out of engine errors that carry
// one, without caring about their concrete types.
func errorColumn(err error) int {
	var positioned interface{ Pos() int }
	if errors.As(err, &positioned) {
		return positioned.Pos()
	}
	return 0
}
