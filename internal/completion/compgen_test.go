package completion

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		expected Request
	}{
		{
			name:     "word list",
			args:     []string{"-W", "add commit push", "co"},
			expected: Request{WordList: "add commit push", Word: "co"},
		},
		{
			name:     "combined action letters",
			args:     []string{"-df", "src/"},
			expected: Request{Actions: []Action{ActionDirectory, ActionFile}, Word: "src/"},
		},
		{
			name: "every option",
			args: []string{"-c", "-A", "hostname", "-G", "*.go", "-P", "pre", "-S", "suf", "-X", "!*.md", "w"},
			expected: Request{
				Actions:       []Action{ActionCommand, ActionHostname},
				GlobPattern:   "*.go",
				Prefix:        "pre",
				Suffix:        "suf",
				FilterPattern: "!*.md",
				Word:          "w",
			},
		},
		{
			name:     "double dash ends options",
			args:     []string{"-u", "--", "-weird"},
			expected: Request{Actions: []Action{ActionUser}, Word: "-weird"},
		},
		{
			name:     "repeated actions are listed once",
			args:     []string{"-c", "-A", "command", "-dc"},
			expected: Request{Actions: []Action{ActionCommand, ActionDirectory}},
		},
		{
			name:     "no word",
			args:     []string{"-e"},
			expected: Request{Actions: []Action{ActionExport}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := ParseArgs(tt.args)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, req)
		})
	}
}

func TestParseArgsErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing word list", args: []string{"-W"}, want: "option -W requires an argument"},
		{name: "unknown letter", args: []string{"-cz"}, want: "unknown option: -z"},
		{name: "unknown action", args: []string{"-A", "alias"}, want: "unknown action: alias"},
		{name: "two words", args: []string{"-c", "a", "b"}, want: "too many arguments"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseArgs(tt.args)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

// runShell runs script in an interpreter with the compgen builtin installed.
func runShell(t *testing.T, dir string, environ []string, script string) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer

	runner, err := interp.New(
		interp.Env(expand.ListEnviron(environ...)),
		interp.Dir(dir),
		interp.StdIO(nil, &stdout, &stderr),
		interp.ExecHandlers(NewCompgenCommandHandler(HandlerConfig{
			FS:      afero.NewOsFs(),
			Records: newFakeRecords(),
		})),
	)
	require.NoError(t, err)

	file, err := syntax.NewParser().Parse(strings.NewReader(script), "")
	require.NoError(t, err)
	require.NoError(t, runner.Run(context.Background(), file))

	return stdout.String(), stderr.String()
}

func lines(s string) []string {
	return strings.Fields(strings.TrimSpace(s))
}

func TestCompgenBuiltin(t *testing.T) {
	work, bin := setupWorkspace(t)
	environ := []string{"PATH=" + bin, "HOME=/home/tester"}

	t.Run("word list", func(t *testing.T) {
		out, errOut := runShell(t, work, environ, `compgen -W "add commit push" -- c; echo "status=$?"`)
		assert.Equal(t, "commit\nstatus=0\n", out)
		assert.Empty(t, errOut)
	})

	t.Run("commands use the shell PATH", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `compgen -c go`)
		assert.ElementsMatch(t, []string{"go", "gofmt"}, lines(out))
	})

	t.Run("repeated actions do not repeat candidates", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `compgen -c -A command gof`)
		assert.Equal(t, "gofmt\n", out)
	})

	t.Run("PATH changes inside the shell are seen", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `PATH=/nonexistent; compgen -c go; echo done`)
		assert.Equal(t, "done\n", out)
	})

	t.Run("files relative to the shell directory", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `cd docs/..; compgen -f a`)
		assert.Equal(t, "alpha.txt\n", out)
	})

	t.Run("exported versus all variables", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `LOCALVAR=1; export EXPORTED=1; compgen -e -- EX; compgen -v -- LOCAL; compgen -e -- LOCAL`)
		assert.Equal(t, "EXPORTED\nLOCALVAR\n", out)
	})

	t.Run("decoration and filter", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `compgen -P "<" -S ">" -X "!*.txt" -f`)
		assert.ElementsMatch(t, []string{"<alpha.txt>", "<beta.txt>"}, lines(out))
	})

	t.Run("names from records", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `compgen -A hostname -- local`)
		assert.Equal(t, "localhost\n", out)
	})

	t.Run("zero matches exit zero", func(t *testing.T) {
		out, _ := runShell(t, work, environ, `compgen -W "a b" zzz; echo "status=$?"`)
		assert.Equal(t, "status=0\n", out)
	})

	t.Run("malformed pattern", func(t *testing.T) {
		out, errOut := runShell(t, work, environ, `compgen -W "a b" -X "[unterminated"; echo "status=$?"`)
		assert.Equal(t, "status=1\n", out)
		assert.Contains(t, errOut, "compgen: invalid pattern")
		assert.Contains(t, errOut, "[unterminated")
	})

	t.Run("usage error", func(t *testing.T) {
		out, errOut := runShell(t, work, environ, `compgen -Q; echo "status=$?"`)
		assert.Equal(t, "status=2\n", out)
		assert.Contains(t, errOut, "compgen: unknown option: -Q")
	})

	t.Run("no completion type", func(t *testing.T) {
		out, errOut := runShell(t, work, environ, `compgen word; echo "status=$?"`)
		assert.Equal(t, "status=1\n", out)
		assert.Contains(t, errOut, ErrNoAction.Error())
	})
}

func TestCompgenHandlerPassesOtherCommandsThrough(t *testing.T) {
	handler := NewCompgenCommandHandler(HandlerConfig{})

	var forwarded []string
	next := func(ctx context.Context, args []string) error {
		forwarded = args
		return nil
	}

	require.NoError(t, handler(next)(context.Background(), []string{"ls", "-l"}))
	assert.Equal(t, []string{"ls", "-l"}, forwarded)
}
