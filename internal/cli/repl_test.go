package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// stubExec records every dispatched command with its arguments.
type stubExec struct {
	loggedIn bool
	owner    bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool { return s.loggedIn }
func (s *stubExec) isOwner() bool    { return s.owner }

func (s *stubExec) record(name string, args []string) error {
	s.calls = append(s.calls, strings.TrimSpace(name+" "+strings.Join(args, " ")))
	return nil
}

func (s *stubExec) Home(ctx context.Context, args []string) error     { return s.record("home", args) }
func (s *stubExec) Products(ctx context.Context, args []string) error { return s.record("products", args) }
func (s *stubExec) Search(ctx context.Context, args []string) error   { return s.record("search", args) }
func (s *stubExec) Login(ctx context.Context, args []string) error    { return s.record("login", args) }
func (s *stubExec) Register(ctx context.Context, args []string) error { return s.record("register", args) }
func (s *stubExec) Logout(ctx context.Context, args []string) error   { return s.record("logout", args) }
func (s *stubExec) AddToCart(ctx context.Context, args []string) error {
	return s.record("add", args)
}
func (s *stubExec) ShowCart(ctx context.Context, args []string) error { return s.record("cart", args) }
func (s *stubExec) Increase(ctx context.Context, args []string) error { return s.record("inc", args) }
func (s *stubExec) Decrease(ctx context.Context, args []string) error { return s.record("dec", args) }
func (s *stubExec) Remove(ctx context.Context, args []string) error   { return s.record("rm", args) }
func (s *stubExec) Checkout(ctx context.Context, args []string) error { return s.record("checkout", args) }
func (s *stubExec) Orders(ctx context.Context, args []string) error   { return s.record("orders", args) }
func (s *stubExec) Dashboard(ctx context.Context, args []string) error {
	return s.record("dashboard", args)
}
func (s *stubExec) Categories(ctx context.Context, args []string) error {
	return s.record("categories", args)
}
func (s *stubExec) AddCategory(ctx context.Context, args []string) error {
	return s.record("addcat", args)
}
func (s *stubExec) EditCategory(ctx context.Context, args []string) error {
	return s.record("editcat", args)
}
func (s *stubExec) DeleteCategory(ctx context.Context, args []string) error {
	return s.record("delcat", args)
}
func (s *stubExec) Catalog(ctx context.Context, args []string) error { return s.record("catalog", args) }
func (s *stubExec) AddProduct(ctx context.Context, args []string) error {
	return s.record("addproduct", args)
}
func (s *stubExec) EditProduct(ctx context.Context, args []string) error {
	return s.record("editproduct", args)
}
func (s *stubExec) DeleteProduct(ctx context.Context, args []string) error {
	return s.record("delproduct", args)
}
func (s *stubExec) Sales(ctx context.Context, args []string) error   { return s.record("sales", args) }
func (s *stubExec) Approve(ctx context.Context, args []string) error { return s.record("approve", args) }

func runScript(t *testing.T, exec *stubExec, script string) []string {
	t.Helper()

	var printed []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		printed = append(printed, fmt.Sprintln(a...))
		return 0, nil
	}
	defer func() { printlnFn = orig }()

	scanner := bufio.NewScanner(strings.NewReader(script))
	runREPL(context.Background(), exec, func() string { return "(guest)" }, scanner)
	return printed
}

func TestREPLDispatch(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "home\nsearch obat batuk\nadd 3 2\nrm 3\nexit\n")

	assert.Equal(t, []string{"home", "search obat batuk", "add 3 2", "rm 3"}, exec.calls)
}

func TestREPLUnknownCommand(t *testing.T) {
	exec := &stubExec{}
	printed := runScript(t, exec, "frobnicate\nexit\n")

	assert.Empty(t, exec.calls)
	var found bool
	for _, line := range printed {
		if strings.Contains(line, "Unknown command: frobnicate") {
			found = true
		}
	}
	assert.True(t, found)
}

func TestREPLBlankLinesSkipped(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "\n   \nhome\nquit\n")
	assert.Equal(t, []string{"home"}, exec.calls)
}

func TestREPLExitsOnEOF(t *testing.T) {
	exec := &stubExec{}
	runScript(t, exec, "home\n") // no exit; scanner runs dry
	assert.Equal(t, []string{"home"}, exec.calls)
}

func TestPrintHelpVariants(t *testing.T) {
	tests := []struct {
		name     string
		exec     *stubExec
		contains string
		excludes string
	}{
		{"guest sees login", &stubExec{}, "login, register", "logout"},
		{"buyer sees cart", &stubExec{loggedIn: true}, "checkout", "dashboard"},
		{"owner sees dashboard", &stubExec{loggedIn: true, owner: true}, "dashboard", "checkout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			printed := runScript(t, tt.exec, "help\nexit\n")
			all := strings.Join(printed, "")
			assert.Contains(t, all, tt.contains)
			assert.NotContains(t, all, tt.excludes)
		})
	}
}
