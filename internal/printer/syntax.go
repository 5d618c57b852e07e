package printer

// Syntax is everything the renderer needs to know about a target language.
// Arguments are target source text; results are target source text.
// Every closure the renderer emits takes its environment as Param.
//
// A target plugs in by implementing all of it: the renderer's
// structural recursion never looks at target-specific syntax.
type Syntax interface {
	// Extension is the file extension, dot included, for emitted programs.
	Extension() string

	// Param is the name of the environment parameter.
	Param() string

	// Function wraps an expression of Param into a one-argument closure.
	Function(body string) string
	// Apply calls a closure with a single argument.
	Apply(fn, arg string) string

	Integer(n int64) string
	Boolean(b bool) string

	Add(left, right string) string
	Multiply(left, right string) string
	LessThan(left, right string) string

	// Lookup reads a variable out of an environment.
	Lookup(env, name string) string
	// Replace is a new environment equal to env but with name bound to value.
	// The original environment is left untouched.
	Replace(env, name, value string) string

	// Conditional is a closure evaluating exactly one of the branches.
	// All three arguments are already applied to Param.
	Conditional(condition, consequence, alternative string) string
	// Loop is a closure that keeps replacing its environment with body
	// while condition holds, then returns it. Both arguments are
	// already applied to Param, and are re-evaluated against the
	// current environment on every round.
	Loop(condition, body string) string
}
