package domain

// CalcRequest captures one line of user input headed for the session.
// Commit distinguishes the enter keystroke from live preview: a commit
// pushes results and applies side effects, a preview only reports what
// the line would do.
type CalcRequest struct {
	Expression string
	Commit     bool
}

// CalcResponse is the canonical response propagated back to the
// front-ends. The session never fails on user input; mistakes travel in
// Status with IsError set, and the error return of the service is
// reserved for infrastructure trouble.
type CalcResponse struct {
	Status       string
	IsError      bool
	ErrorColumn  int
	ClearInput   bool
	StackUpdated bool
	Result       string
}

// StackRow is one rendered line of the visible result window.
type StackRow struct {
	Expression string
	Result     string
}

// VarBinding is one variable rendered under the current display mode.
type VarBinding struct {
	Name  string
	Value string
}

// Evaluation is the engine's verdict on a single statement. For an
// assignment, Name carries the target variable and Value the computed
// right side; the engine itself never touches the scope.
type Evaluation struct {
	Value      Value
	Assignment bool
	Name       string
}

// CalcService exposes the use-case boundary for the calculator session.
type CalcService interface {
	Evaluate(CalcRequest) (CalcResponse, error)
	Window() []StackRow
	Vars() []VarBinding
	System() ValueSystem
	Type() ValueType
	Clear()
}
