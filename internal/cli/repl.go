package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL-level output. In tests, replace it with
// a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate. The real
// App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isOwner() bool

	Home(ctx context.Context, args []string) error
	Products(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error

	Login(ctx context.Context, args []string) error
	Register(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error

	AddToCart(ctx context.Context, args []string) error
	ShowCart(ctx context.Context, args []string) error
	Increase(ctx context.Context, args []string) error
	Decrease(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Checkout(ctx context.Context, args []string) error
	Orders(ctx context.Context, args []string) error

	Dashboard(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	AddCategory(ctx context.Context, args []string) error
	EditCategory(ctx context.Context, args []string) error
	DeleteCategory(ctx context.Context, args []string) error
	Catalog(ctx context.Context, args []string) error
	AddProduct(ctx context.Context, args []string) error
	EditProduct(ctx context.Context, args []string) error
	DeleteProduct(ctx context.Context, args []string) error
	Sales(ctx context.Context, args []string) error
	Approve(ctx context.Context, args []string) error
}

// runREPL starts a read–eval–print loop for the storefront CLI.
//
// It reads a line from the scanner, parses the first token as the command,
// and dispatches to methods on 'a' with the remaining tokens as arguments.
// Unknown commands are reported back to the user. The loop exits on scanner
// EOF or when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// their own failures to the user. This keeps the loop focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("apotek> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "home":
			_ = a.Home(ctx, args)
		case "products":
			_ = a.Products(ctx, args)
		case "search":
			_ = a.Search(ctx, args)

		case "login":
			_ = a.Login(ctx, args)
		case "register":
			_ = a.Register(ctx, args)
		case "logout":
			_ = a.Logout(ctx, args)

		case "add":
			_ = a.AddToCart(ctx, args)
		case "cart":
			_ = a.ShowCart(ctx, args)
		case "inc":
			_ = a.Increase(ctx, args)
		case "dec":
			_ = a.Decrease(ctx, args)
		case "rm":
			_ = a.Remove(ctx, args)
		case "checkout":
			_ = a.Checkout(ctx, args)
		case "orders":
			_ = a.Orders(ctx, args)

		case "dashboard":
			_ = a.Dashboard(ctx, args)
		case "categories":
			_ = a.Categories(ctx, args)
		case "addcat":
			_ = a.AddCategory(ctx, args)
		case "editcat":
			_ = a.EditCategory(ctx, args)
		case "delcat":
			_ = a.DeleteCategory(ctx, args)
		case "catalog":
			_ = a.Catalog(ctx, args)
		case "addproduct":
			_ = a.AddProduct(ctx, args)
		case "editproduct":
			_ = a.EditProduct(ctx, args)
		case "delproduct":
			_ = a.DeleteProduct(ctx, args)
		case "sales":
			_ = a.Sales(ctx, args)
		case "approve":
			_ = a.Approve(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	printlnFn("Browse: home, products [page], search <text>")
	switch {
	case !a.isLoggedIn():
		printlnFn("Account: login, register")
	case a.isOwner():
		printlnFn("Shop: dashboard, categories [page], addcat, editcat <id>, delcat <id>")
		printlnFn("      catalog [page], addproduct, editproduct <id>, delproduct <id>")
		printlnFn("      sales [page], approve <id>")
		printlnFn("Account: logout")
	default:
		printlnFn("Cart: add <product> [qty], cart, inc <product>, dec <product>, rm <product>, checkout, orders")
		printlnFn("Account: logout")
	}
	printlnFn("Other: help, exit")
}
