package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"tickify/config"
	"tickify/internal/client"
	"tickify/internal/guard"
	"tickify/internal/model"
	"tickify/internal/session"
)

const usage = `tickifyctl - Tickify command line client

Usage:
  tickifyctl login -email <email> -password <password>
  tickifyctl logout
  tickifyctl whoami
  tickifyctl events
  tickifyctl tickets -event <uuid>
  tickifyctl quote -event <id> -items <ticketID:qty,...> [-promo <code>]
  tickifyctl checkout -event <id> -items <ticketID:qty,...> [-promo <code>]
  tickifyctl orders
  tickifyctl goto -path <path>
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	cfg := config.LoadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	sessionFile := cfg.Client.SessionFile
	if sessionFile == "" {
		path, err := session.DefaultSessionFile()
		if err != nil {
			fatalf("resolve session file: %v", err)
		}
		sessionFile = path
	}

	store := session.NewStore(session.NewFilePersister(sessionFile))
	// 等同瀏覽器端的 loading gate：先還原 session 再處理指令
	if err := store.Restore(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not restore session: %v\n", err)
	}

	exec := client.NewExecutor(cfg.Client.BaseURL, store, func(path string) {
		fmt.Fprintf(os.Stderr, "session expired, please log in again (%s)\n", path)
	})
	api := client.New(exec, store)

	cmd, args := os.Args[1], os.Args[2:]
	switch cmd {
	case "login":
		runLogin(ctx, api, args)
	case "logout":
		api.Logout(ctx)
		fmt.Println("logged out")
	case "whoami":
		runWhoami(ctx, api, store)
	case "events":
		runEvents(ctx, api)
	case "tickets":
		runTickets(ctx, api, args)
	case "quote":
		runQuote(ctx, api, args)
	case "checkout":
		runCheckout(ctx, api, args)
	case "orders":
		runOrders(ctx, api)
	case "goto":
		runGoto(store, args)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}
}

func runLogin(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	fs.Parse(args)
	if *email == "" || *password == "" {
		fatalf("login requires -email and -password")
	}

	resp, err := api.Login(ctx, *email, *password)
	if err != nil {
		fatalf("login failed: %v", err)
	}
	fmt.Printf("logged in as %s %s <%s>\n", resp.User.FirstName, resp.User.LastName, resp.User.Email)

	// 登入後的導向沿用路由守衛規則
	decision := guard.Decide(guard.UserHome, true, resp.User.IsAdmin)
	if decision.Action != guard.Allow {
		fmt.Printf("landing page: %s\n", decision.Redirect)
	}
}

func runWhoami(ctx context.Context, api *client.Client, store *session.Store) {
	if !store.IsAuthenticated() {
		fmt.Println("not logged in")
		return
	}
	user, err := api.Me(ctx)
	if err != nil {
		fatalf("whoami failed: %v", err)
	}
	role := "user"
	if user.IsAdmin {
		role = "admin"
	}
	fmt.Printf("%s %s <%s> (%s)\n", user.FirstName, user.LastName, user.Email, role)
}

func runEvents(ctx context.Context, api *client.Client) {
	events, err := api.ListEvents(ctx)
	if err != nil {
		fatalf("list events failed: %v", err)
	}
	for _, e := range events {
		venue := ""
		if e.Venue != nil {
			venue = " @ " + *e.Venue
		}
		fmt.Printf("%s  %s%s\n", e.EventID, e.Name, venue)
	}
}

func runTickets(ctx context.Context, api *client.Client, args []string) {
	fs := flag.NewFlagSet("tickets", flag.ExitOnError)
	event := fs.String("event", "", "event uuid")
	fs.Parse(args)
	if *event == "" {
		fatalf("tickets requires -event")
	}

	tickets, err := api.EventTickets(ctx, *event)
	if err != nil {
		fatalf("list tickets failed: %v", err)
	}
	for _, t := range tickets {
		fee := ""
		if t.TransferFee {
			fee = " (+fee)"
		}
		fmt.Printf("#%d  %s  %.2f%s  stock=%d\n", t.ID, t.Name, t.Price, fee, t.RemainingStock)
	}
}

func runQuote(ctx context.Context, api *client.Client, args []string) {
	req := parseCheckoutArgs("quote", args)
	summary, err := api.Quote(ctx, req)
	if err != nil {
		fatalf("quote failed: %v", err)
	}
	fmt.Printf("subtotal: %.2f\n", summary.Subtotal)
	fmt.Printf("discount: %.2f\n", summary.Discount)
	fmt.Printf("fee:      %.2f\n", summary.Fee)
	fmt.Printf("total:    %.2f\n", summary.Total)
}

func runCheckout(ctx context.Context, api *client.Client, args []string) {
	req := parseCheckoutArgs("checkout", args)
	order, err := api.Checkout(ctx, req)
	if err != nil {
		fatalf("checkout failed: %v", err)
	}
	fmt.Printf("order accepted: request_id=%s total=%.2f status=%s\n", order.RequestID, order.Total, order.Status)
}

func runOrders(ctx context.Context, api *client.Client) {
	orders, err := api.MyOrders(ctx)
	if err != nil {
		fatalf("list orders failed: %v", err)
	}
	for _, o := range orders {
		fmt.Printf("#%d  event=%d total=%.2f status=%s\n", o.ID, o.EventID, o.Total, o.Status)
	}
}

// runGoto 模擬導航：套用路由守衛規則，印出放行或導向結果
func runGoto(store *session.Store, args []string) {
	fs := flag.NewFlagSet("goto", flag.ExitOnError)
	path := fs.String("path", "/", "target path")
	fs.Parse(args)

	isAdmin := false
	if u := store.User(); u != nil {
		isAdmin = u.IsAdmin
	}

	decision := guard.Decide(*path, store.IsAuthenticated(), isAdmin)
	if decision.Action == guard.Allow {
		fmt.Printf("allow %s\n", *path)
		return
	}
	fmt.Printf("redirect %s -> %s\n", *path, decision.Redirect)
}

// parseCheckoutArgs 解析 -event/-items/-promo 為結帳請求，
// items 格式為 ticketID:qty 逗號分隔
func parseCheckoutArgs(name string, args []string) model.CheckoutRequest {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	event := fs.Int("event", 0, "event id")
	items := fs.String("items", "", "ticketID:qty,...")
	promo := fs.String("promo", "", "promo code")
	fs.Parse(args)
	if *event == 0 || *items == "" {
		fatalf("%s requires -event and -items", name)
	}

	req := model.CheckoutRequest{EventID: *event}
	for _, part := range strings.Split(*items, ",") {
		fields := strings.SplitN(part, ":", 2)
		if len(fields) != 2 {
			fatalf("invalid item %q, expected ticketID:qty", part)
		}
		ticketID, err := strconv.Atoi(fields[0])
		if err != nil {
			fatalf("invalid ticket id %q", fields[0])
		}
		qty, err := strconv.Atoi(fields[1])
		if err != nil || qty < 1 {
			fatalf("invalid quantity %q", fields[1])
		}
		req.Items = append(req.Items, model.CheckoutItem{TicketID: ticketID, Quantity: qty})
	}
	if *promo != "" {
		req.PromoCode = promo
	}
	return req
}

func fatalf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
