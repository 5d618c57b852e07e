package runner

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/fuale/meaning/internal/printer"
)

var ErrNoInterpreter = errors.New("interpreter not found")

// Each interpreter gets the environment as JSON on stdin and prints
// the result as JSON on stdout. %s is the program.
var preludes = map[printer.Target]struct {
	command []string
	script  string
}{
	printer.JavaScript: {
		command: []string{"node", "-e"},
		script: `const env = JSON.parse(require("fs").readFileSync(0, "utf8"));
const result = (%s)(env);
process.stdout.write(JSON.stringify(result));
`,
	},
	printer.Ruby: {
		command: []string{"ruby", "-e"},
		script: `require "json"
env = JSON.parse($stdin.read)
result = (%s).call(env)
print JSON.generate(result)
`,
	},
	printer.Python: {
		command: []string{"python3", "-c"},
		script: `import json, sys
env = json.load(sys.stdin)
result = (%s)(env)
sys.stdout.write(json.dumps(result))
`,
	},
}

// Subprocess runs a rendering with the target's own interpreter.
type Subprocess struct {
	Target printer.Target
	// Command replaces the interpreter binary, e.g. "nodejs".
	Command string
}

// Available reports whether the interpreter can be found on PATH.
func (s *Subprocess) Available() bool {
	_, err := s.lookPath()
	return err == nil
}

func (s *Subprocess) lookPath() (string, error) {
	p, ok := preludes[s.Target]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrNoExecutor, string(s.Target))
	}
	name := p.command[0]
	if s.Command != "" {
		name = s.Command
	}
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrNoInterpreter, name)
	}
	return path, nil
}

func (s *Subprocess) Run(ctx context.Context, program string, env Env) (Value, error) {
	path, err := s.lookPath()
	if err != nil {
		return nil, err
	}
	p := preludes[s.Target]

	input, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding environment: %v", ErrExecution, err)
	}
	if env == nil {
		input = []byte("{}")
	}

	args := append([]string{}, p.command[1:]...)
	args = append(args, fmt.Sprintf(p.script, program))

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrExecution, s.Target, err, strings.TrimSpace(stderr.String()))
	}

	return decode(stdout.Bytes())
}

func decode(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: decoding result %q: %v", ErrExecution, data, err)
	}
	return normalize(raw)
}

// normalize turns decoded JSON into the same shapes the Evaluator returns.
func normalize(raw any) (Value, error) {
	switch v := raw.(type) {
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not an integer", ErrExecution, v)
		}
		return n, nil
	case map[string]any:
		env := make(Env, len(v))
		for k, item := range v {
			n, err := normalize(item)
			if err != nil {
				return nil, err
			}
			env[k] = n
		}
		return env, nil
	}
	return raw, nil
}
