package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"servicehub/api"
	"servicehub/config"
	"servicehub/guard"
	"servicehub/models"
	"servicehub/services/booking"
	"servicehub/services/dashboard"
	"servicehub/services/history"
	"servicehub/services/session"
	"servicehub/storage"
	"servicehub/utils"
)

const usage = `Usage: servicehub <command> [flags]

Commands:
  login        authenticate with email and password
  oauth-login  authenticate through the Google redirect flow
  register     create a customer or provider account
  whoami       show the restored session
  profile      edit the cached profile or switch the active role
  book         walk the booking wizard and submit
  history      list bookings with filters and stats
  review       rate a completed booking
  dashboard    show the dashboard for the session's role
  advance      move an assigned booking to its next status
  theme        show or set the UI theme preference
  logout       clear the stored session
`

// app bundles the wired services every subcommand works against.
type app struct {
	store   storage.Store
	client  *api.Client
	nav     *guard.Navigator
	session session.SessionService
	history history.HistoryService
	boards  dashboard.DashboardService
}

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer logger.Sync()

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	store, err := storage.Open()
	if err != nil {
		logger.Sugar().Fatalf("failed to open client storage: %v", err)
	}
	defer store.Close()

	nav := guard.NewNavigator(guard.LoginPath)
	nav.OnRedirect = func(to, from string) {
		fmt.Fprintf(os.Stderr, "Session expired. Please log in again. (was on %s)\n", from)
	}

	client := api.New(config.AppConfig.APIBaseURL, store)
	client.SetUnauthorizedHook(nav.UnauthorizedHook())

	sess := &session.DefaultSessionService{Store: store, API: client}
	a := &app{
		store:   store,
		client:  client,
		nav:     nav,
		session: sess,
		history: &history.DefaultHistoryService{Store: store, API: client},
		boards:  &dashboard.DefaultDashboardService{API: client},
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cmd, args := os.Args[1], os.Args[2:]
	if err := a.run(ctx, cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", api.ErrorMessage(err, "something went wrong, please try again"))
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "login":
		return a.login(ctx, args)
	case "oauth-login":
		return a.oauthLogin(ctx)
	case "register":
		return a.register(ctx, args)
	case "whoami":
		return a.whoami(ctx)
	case "profile":
		return a.profile(ctx, args)
	case "book":
		return a.book(ctx, args)
	case "history":
		return a.listHistory(ctx, args)
	case "review":
		return a.review(ctx, args)
	case "dashboard":
		return a.dashboard(ctx)
	case "advance":
		return a.advance(ctx, args)
	case "theme":
		return a.theme(ctx, args)
	case "logout":
		return a.logout(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password")
	role := fs.String("role", "", "expected role, customer or provider (optional)")
	fs.Parse(args)

	user, err := a.session.Login(ctx, *email, *password, *role)
	if err != nil {
		return err
	}
	a.nav.Visit(guard.DashboardPath(user.Role))
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) oauthLogin(ctx context.Context) error {
	fmt.Println("Open this URL in your browser to continue:")
	fmt.Println("  " + a.client.GoogleLoginURL())
	fmt.Println("Waiting for the callback...")

	sess, ok := a.session.(*session.DefaultSessionService)
	if !ok {
		return fmt.Errorf("oauth login is not available")
	}
	user, err := sess.AwaitOAuthCallback(ctx)
	if err != nil {
		return err
	}
	a.nav.Visit(guard.DashboardPath(user.Role))
	fmt.Printf("Logged in as %s (%s)\n", user.Name, user.Role)
	return nil
}

func (a *app) register(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	input := session.RegistrationInput{}
	fs.StringVar(&input.Name, "name", "", "full name")
	fs.StringVar(&input.Email, "email", "", "account email")
	fs.StringVar(&input.Password, "password", "", "account password")
	fs.StringVar(&input.Phone, "phone", "", "phone number (optional)")
	fs.StringVar(&input.Address, "address", "", "home address (optional)")
	fs.StringVar(&input.UserType, "role", models.RoleCustomer, "customer or provider")
	fs.StringVar(&input.Profession, "profession", "", "profession (providers only)")
	fs.Parse(args)

	user, err := a.session.Register(ctx, input)
	if err != nil {
		return err
	}
	fmt.Printf("Account created for %s. Log in to continue.\n", user.Email)
	return nil
}

func (a *app) whoami(ctx context.Context) error {
	user, err := a.restore(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("%s <%s>\nRole: %s\n", user.Name, user.Email, user.Role)
	if user.Profession != "" {
		fmt.Printf("Profession: %s\n", user.Profession)
	}
	if sess, ok := a.session.(*session.DefaultSessionService); ok {
		fmt.Printf("Member since: %s\n", sess.MemberSince(ctx))
	}
	return nil
}

func (a *app) profile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	updates := models.ProfileUpdate{}
	fs.StringVar(&updates.Name, "name", "", "new display name")
	fs.StringVar(&updates.Phone, "phone", "", "new phone number")
	fs.StringVar(&updates.Address, "address", "", "new address")
	fs.StringVar(&updates.Profession, "profession", "", "new profession (providers)")
	role := fs.String("role", "", "switch the active role, customer or provider")
	fs.Parse(args)

	if _, err := a.restore(ctx); err != nil {
		return err
	}

	if *role != "" {
		user, err := a.session.UpdateRole(ctx, *role)
		if err != nil {
			return err
		}
		a.nav.Visit(guard.DashboardPath(user.Role))
		fmt.Println("Active role is now", user.Role)
		return nil
	}

	if (updates == models.ProfileUpdate{}) {
		return a.whoami(ctx)
	}
	user, err := a.session.UpdateProfile(ctx, updates)
	if err != nil {
		return err
	}
	fmt.Printf("Profile updated: %s <%s>\n", user.Name, user.Email)
	return nil
}

func (a *app) book(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("book", flag.ExitOnError)
	serviceID := fs.Int("service", 0, "service id (see list below)")
	date := fs.String("date", "", "service date, YYYY-MM-DD")
	slot := fs.String("time", "", `time slot, e.g. "10:00 AM"`)
	address := fs.String("address", "", "service address")
	notes := fs.String("notes", "", "special instructions (optional)")
	fs.Parse(args)

	if _, err := a.restore(ctx); err != nil {
		return err
	}

	if *serviceID == 0 {
		fmt.Println("Available services:")
		for _, svc := range booking.Services() {
			fmt.Printf("  %d. %s ($%.0f)\n", svc.ID, svc.Name, svc.Price)
		}
		fmt.Println("\nAvailable time slots:")
		fmt.Println("  " + strings.Join(booking.TimeSlots(), ", "))
		return nil
	}

	w := booking.NewWizard(a.client)
	if err := w.SelectService(*serviceID); err != nil {
		return err
	}
	w.SetDate(*date)
	w.SetAddress(*address)
	w.SetSpecialInstructions(*notes)
	if err := w.Next(); err != nil {
		return err
	}
	if err := w.SelectTime(*slot); err != nil {
		return err
	}

	created, err := w.Submit(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Booking confirmed: %s with %s on %s\n", created.ServiceType, created.ProviderName, created.Date)
	return nil
}

func (a *app) listHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	status := fs.String("status", "all", "all, upcoming, in progress or completed")
	search := fs.String("search", "", "match service or provider name")
	fs.Parse(args)

	if _, err := a.restore(ctx); err != nil {
		return err
	}
	entries, err := a.history.Load(ctx)
	if err != nil {
		return err
	}
	filtered := a.history.Filter(entries, *status, *search)
	if len(filtered) == 0 {
		fmt.Println("No bookings match.")
		return nil
	}
	for _, e := range filtered {
		line := fmt.Sprintf("%s  %-12s %-14s %s", e.ID, e.UIStatus, e.ServiceType, e.Date)
		if e.Rating > 0 {
			line += fmt.Sprintf("  [%d/5]", e.Rating)
		}
		fmt.Println(line)
	}
	stats := a.history.Stats(entries)
	fmt.Printf("\n%d bookings, %d completed, average rating %s\n", stats.Total, stats.Completed, stats.AverageRating)
	return nil
}

func (a *app) review(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review", flag.ExitOnError)
	id := fs.String("id", "", "booking id")
	rating := fs.Int("rating", history.DefaultRating, "rating, 1 to 5")
	text := fs.String("text", "", "review text")
	fs.Parse(args)

	if _, err := a.restore(ctx); err != nil {
		return err
	}
	entries, err := a.history.Load(ctx)
	if err != nil {
		return err
	}
	for _, e := range entries {
		if e.ID != *id {
			continue
		}
		updated, err := a.history.SaveReview(ctx, e, *rating, *text)
		if err != nil {
			return err
		}
		fmt.Printf("Saved %d/5 for %s\n", updated.Rating, updated.ServiceType)
		return nil
	}
	return fmt.Errorf("no booking with id %q", *id)
}

func (a *app) dashboard(ctx context.Context) error {
	user, err := a.restore(ctx)
	if err != nil {
		return err
	}
	decision := guard.Resolve(false, user, "", guard.DashboardPath(user.Role))
	if decision.State != guard.StateAuthorized {
		return fmt.Errorf("not authorized")
	}

	switch user.Role {
	case models.RoleProvider:
		view, err := a.boards.Provider(ctx)
		if err != nil {
			return err
		}
		printProviderDashboard(view)
	case models.RoleAdmin:
		view, err := a.boards.Admin(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Users: %d\nActive providers: %d\nBookings: %d\nRevenue: $%d\n",
			view.TotalUsers, view.ActiveProviders, view.TotalBookings, view.TotalRevenue)
	default:
		view, err := a.boards.Customer(ctx)
		if err != nil {
			return err
		}
		printCustomerDashboard(user, view)
	}
	return nil
}

func printCustomerDashboard(user *models.User, view *dashboard.CustomerDashboard) {
	fmt.Printf("Welcome back, %s!\n\n", user.Name)
	fmt.Printf("Pending: %d  In Progress: %d  Completed: %d\n\n", view.Pending, view.InProgress, view.Completed)
	if len(view.Recent) > 0 {
		fmt.Println("Recent bookings:")
		for _, b := range view.Recent {
			fmt.Printf("  %s  %-12s %s\n", b.ID, b.Status, b.ServiceType)
		}
		fmt.Println()
	}
	fmt.Println("Recommended for you:")
	for _, r := range view.Recommendations {
		fmt.Printf("  %s (%s) $%d, rated %.1f\n", r.Name, r.Category, r.Price, r.Rating)
	}
}

func printProviderDashboard(view *dashboard.ProviderDashboard) {
	if len(view.Jobs) == 0 {
		fmt.Println("No assigned bookings.")
		return
	}
	fmt.Println("Assigned bookings, newest first:")
	for _, b := range view.Jobs {
		fmt.Printf("  %s  %-12s %-14s %s\n", b.ID, b.Status, b.ServiceType, b.Date)
	}
}

func (a *app) advance(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("advance", flag.ExitOnError)
	id := fs.String("id", "", "booking id to advance")
	fs.Parse(args)

	user, err := a.restore(ctx)
	if err != nil {
		return err
	}
	if user.Role != models.RoleProvider {
		return fmt.Errorf("only providers can advance bookings")
	}

	view, err := a.boards.Provider(ctx)
	if err != nil {
		return err
	}
	for _, job := range view.Jobs {
		if job.ID != *id {
			continue
		}
		after, err := a.boards.AdvanceStatus(ctx, job)
		if after != nil {
			printProviderDashboard(after)
		}
		return err
	}
	return fmt.Errorf("no assigned booking with id %q", *id)
}

func (a *app) theme(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("theme", flag.ExitOnError)
	set := fs.String("set", "", `set the theme, "light" or "dark"`)
	fs.Parse(args)

	if *set != "" {
		if *set != "light" && *set != "dark" {
			return fmt.Errorf("unknown theme %q", *set)
		}
		if err := a.store.Set(ctx, storage.KeyTheme, []byte(*set)); err != nil {
			return err
		}
		fmt.Println("Theme set to", *set)
		return nil
	}

	value, err := a.store.Get(ctx, storage.KeyTheme)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Println("light (default)")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Println(string(value))
	return nil
}

func (a *app) logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.nav.Visit(guard.LoginPath)
	fmt.Println("Logged out.")
	return nil
}

// restore rebuilds the session from storage and fails with a login prompt
// when there is none.
func (a *app) restore(ctx context.Context) (*models.User, error) {
	user, err := a.session.Restore(ctx)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("not logged in, run: servicehub login")
	}
	a.nav.Visit(guard.DashboardPath(user.Role))
	return user, nil
}
