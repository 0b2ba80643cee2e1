// Package progtest provides a framework for testing subprograms.
//
// A test runs a [prog.Program] with some arguments and checks its exit
// status and output:
//
//	progtest.Test(t, p,
//		progtest.ThatArbor("-bad-flag").ExitsWith(2).
//			WritesStderrContaining("flag provided but not defined"))
package progtest

import (
	"io"
	"os"
	"strings"
	"testing"

	"src.arbor.sh/pkg/prog"
)

// Case is a test case that can be used in Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exit        int
	out, err    output
	checkOut    bool
	checkErrOut bool
}

type output struct {
	exact    string
	contains []string
}

// ThatArbor returns a Case that runs the program with the given arguments.
// By default, the program is expected to exit with 0 and write nothing.
func ThatArbor(args ...string) Case {
	return Case{args: append([]string{"arbor"}, args...)}
}

// WithStdin returns an altered Case that feeds the given text to stdin.
func (c Case) WithStdin(s string) Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise
// don't have any expectations, for example:
//
//	ThatArbor("-cpuprofile", "x").DoesNothing()
func (c Case) DoesNothing() Case { return c }

// ExitsWith returns an altered Case that requires the program to exit with
// the given status.
func (c Case) ExitsWith(code int) Case {
	c.want.exit = code
	return c
}

// WritesStdout returns an altered Case that requires the program to write
// exactly the given text to stdout.
func (c Case) WritesStdout(s string) Case {
	c.want.out.exact = s
	c.want.checkOut = true
	return c
}

// WritesStdoutContaining returns an altered Case that requires the stdout of
// the program to contain the given text.
func (c Case) WritesStdoutContaining(s string) Case {
	c.want.out.contains = append(c.want.out.contains, s)
	c.want.checkOut = true
	return c
}

// WritesStderr returns an altered Case that requires the program to write
// exactly the given text to stderr.
func (c Case) WritesStderr(s string) Case {
	c.want.err.exact = s
	c.want.checkErrOut = true
	return c
}

// WritesStderrContaining returns an altered Case that requires the stderr of
// the program to contain the given text.
func (c Case) WritesStderrContaining(s string) Case {
	c.want.err.contains = append(c.want.err.contains, s)
	c.want.checkErrOut = true
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args[1:], " "), func(t *testing.T) {
			t.Helper()
			exit, stdout, stderr := Run(p, c.stdin, c.args...)
			if exit != c.want.exit {
				t.Errorf("got exit %v, want %v (stderr %q)", exit, c.want.exit, stderr)
			}
			checkOutput(t, "stdout", stdout, c.want.out, c.want.checkOut)
			checkOutput(t, "stderr", stderr, c.want.err, c.want.checkErrOut)
		})
	}
}

func checkOutput(t *testing.T, name, got string, want output, check bool) {
	t.Helper()
	if !check {
		if got != "" {
			t.Errorf("got %s %q, want empty", name, got)
		}
		return
	}
	if len(want.contains) == 0 && got != want.exact {
		t.Errorf("got %s %q, want %q", name, got, want.exact)
	}
	for _, s := range want.contains {
		if !strings.Contains(got, s) {
			t.Errorf("got %s %q, want string containing %q", name, got, s)
		}
	}
}

// Run runs a Program with the given stdin and arguments, and returns its exit
// status and output.
func Run(p prog.Program, stdin string, args ...string) (exit int, stdout, stderr string) {
	r0, w0 := mustPipe()
	r1, w1 := mustPipe()
	r2, w2 := mustPipe()
	go func() {
		io.WriteString(w0, stdin)
		w0.Close()
	}()
	// Drain the outputs concurrently so that a program writing more than a
	// pipe can buffer doesn't block.
	outCh, errCh := readAll(r1), readAll(r2)
	exit = prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	r0.Close()
	return exit, <-outCh, <-errCh
}

func readAll(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		data, _ := io.ReadAll(r)
		r.Close()
		ch <- string(data)
	}()
	return ch
}

func mustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}
