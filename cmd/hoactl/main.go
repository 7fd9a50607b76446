package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/config"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/amenity"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/availability"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/checkin"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/reservation"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/domain/session"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/hoaapi"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/keyring"
	"github.com/itsGenreee/HOA-Montana-Homeowners/internal/pkg/logger"
)

type app struct {
	in           *bufio.Scanner
	sessions     *session.Service
	store        *session.Store
	resolver     *availability.Resolver
	catalog      *amenity.Catalog
	reservations *reservation.Service
}

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		fmt.Fprintln(os.Stderr, "failed to initialize logger:", err)
		os.Exit(1)
	}

	ring, err := keyring.New(cfg.CredentialFile, cfg.KeyringKey)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open credential storage")
	}

	store := session.NewStore(ring)
	client := hoaapi.NewClient(cfg.BaseURL, cfg.Timeout, cfg.UserAgent)
	client.SetTokenSource(store)
	// Session expiry wipes the persisted credential and the in-memory
	// identity together, routing the user back to login.
	client.SetUnauthorizedHook(store.Clear)

	a := &app{
		in:           bufio.NewScanner(os.Stdin),
		sessions:     session.NewService(client, store),
		store:        store,
		resolver:     availability.NewResolver(client),
		catalog:      amenity.NewCatalog(client),
		reservations: reservation.NewService(client, store),
	}

	ctx := context.Background()
	if user, err := a.sessions.Restore(ctx); err == nil {
		fmt.Printf("Welcome back, %s!\n", user.FullName())
	} else if !errors.Is(err, session.ErrNoStoredSession) {
		fmt.Println("Stored session is no longer valid, please log in again.")
	}

	a.run(ctx)
}

func (a *app) run(ctx context.Context) {
	for {
		if !a.store.Authenticated() {
			if !a.authMenu(ctx) {
				return
			}
			continue
		}

		fmt.Println()
		fmt.Println("1) New reservation")
		fmt.Println("2) My reservations")
		fmt.Println("3) Log out")
		fmt.Println("q) Quit")

		switch a.prompt("> ") {
		case "1":
			a.runWizard(ctx)
		case "2":
			a.listReservations(ctx)
		case "3":
			if err := a.sessions.Logout(ctx); err != nil {
				fmt.Println("Logged out locally;", err)
			} else {
				fmt.Println("Logged out.")
			}
		case "q":
			return
		}
	}
}

// authMenu returns false when the user quits.
func (a *app) authMenu(ctx context.Context) bool {
	fmt.Println()
	fmt.Println("1) Log in")
	fmt.Println("2) Register")
	fmt.Println("3) Forgot password")
	fmt.Println("q) Quit")

	switch a.prompt("> ") {
	case "1":
		email := a.prompt("Email: ")
		password := a.prompt("Password: ")
		user, err := a.sessions.Login(ctx, email, password)
		if err != nil {
			fmt.Println("Login failed:", err)
			return true
		}
		fmt.Printf("Welcome, %s!\n", user.FullName())
	case "2":
		a.register(ctx)
	case "3":
		a.forgotPassword(ctx)
	case "q":
		return false
	}
	return true
}

func (a *app) register(ctx context.Context) {
	req := hoaapi.RegisterRequest{
		FirstName:            a.prompt("First name: "),
		LastName:             a.prompt("Last name: "),
		Address:              a.prompt("Address: "),
		Email:                a.prompt("Email: "),
		Password:             a.prompt("Password: "),
		PasswordConfirmation: a.prompt("Confirm password: "),
	}
	user, err := a.sessions.Register(ctx, req)
	if err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Printf("Welcome, %s!\n", user.FullName())
}

func (a *app) forgotPassword(ctx context.Context) {
	email := a.prompt("Email: ")
	resp, err := a.sessions.SendResetLink(ctx, email)
	if err != nil {
		fmt.Println("Could not start password recovery:", err)
		return
	}
	fmt.Println(resp.Message)
	if !resp.Succeeded() {
		return
	}

	otp := a.prompt("OTP from your email: ")
	verify, err := a.sessions.VerifyOTP(ctx, email, otp)
	if err != nil {
		fmt.Println("Verification failed:", err)
		return
	}
	fmt.Println(verify.Message)
	if !verify.Succeeded() {
		return
	}

	reset, err := a.sessions.ResetPassword(ctx, hoaapi.ResetPasswordRequest{
		Token:                a.prompt("Reset token: "),
		Email:                email,
		Password:             a.prompt("New password: "),
		PasswordConfirmation: a.prompt("Confirm new password: "),
	})
	if err != nil {
		fmt.Println("Reset failed:", err)
		return
	}
	fmt.Println(reset.Message)
}

func (a *app) runWizard(ctx context.Context) {
	w := reservation.NewWizard()

	// Facility
	fmt.Println("\nSelect a facility:")
	facilities := reservation.Facilities()
	for i, f := range facilities {
		fmt.Printf("%d) %s\n", i+1, f)
	}
	idx, err := strconv.Atoi(a.prompt("> "))
	if err != nil || idx < 1 || idx > len(facilities) {
		fmt.Println("Invalid selection.")
		return
	}
	if err := w.ChooseFacility(facilities[idx-1]); err != nil {
		fmt.Println(err)
		return
	}

	// Date
	date, err := time.ParseInLocation("2006-01-02", a.prompt("Date (YYYY-MM-DD): "), time.Local)
	if err != nil {
		fmt.Println("Invalid date.")
		return
	}
	if err := w.ChooseDate(date); err != nil {
		fmt.Println(err)
		return
	}

	// Time slot
	user := a.store.User()
	slots, err := a.resolver.Resolve(ctx, int(w.Draft().Facility), w.Draft().Date, user.Verified())
	if err != nil {
		fmt.Println("Could not load availability:", err)
		return
	}
	if user.Verified() {
		fmt.Println("Verified homeowner discount applies.")
	}
	selectable := make([]availability.Slot, 0, len(slots))
	fmt.Println("Available time slots:")
	for _, s := range slots {
		if !s.Available {
			fmt.Printf("   %s  (reserved)\n", s.Label())
			continue
		}
		selectable = append(selectable, s)
		marker := ""
		if s.Discounted {
			marker = fmt.Sprintf("  (discounted from %.2f)", s.BaseFee)
		}
		fmt.Printf("%d) %s  %.2f%s\n", len(selectable), s.Label(), s.DisplayFee, marker)
	}
	if len(selectable) == 0 {
		fmt.Println("No open slots on that date.")
		return
	}
	idx, err = strconv.Atoi(a.prompt("> "))
	if err != nil || idx < 1 || idx > len(selectable) {
		fmt.Println("Invalid selection.")
		return
	}
	if err := w.ChooseSlot(selectable[idx-1]); err != nil {
		fmt.Println(err)
		return
	}

	// Amenities, event venue only
	var options []amenity.Option
	if w.Draft().Facility.EventVenue() {
		options, err = a.configureAmenities(ctx, w)
		if err != nil {
			return
		}
	}

	a.summary(ctx, w, options)
}

func (a *app) configureAmenities(ctx context.Context, w *reservation.Wizard) ([]amenity.Option, error) {
	options, err := a.catalog.Fetch(ctx)
	if err != nil {
		fmt.Println("Could not load amenities:", err)
		return nil, err
	}

	form := reservation.AmenitiesForm{
		EventType:  a.prompt("Event type (Birthday/Wedding/Anniversary/Reunion/Others): "),
		Quantities: make(map[int]int),
	}
	if form.EventType == reservation.EventTypeOthers {
		form.CustomEventType = a.prompt("Describe your event: ")
	}
	form.GuestCount, _ = strconv.Atoi(a.prompt("Number of guests: "))

	for _, opt := range options {
		if opt.Toggle() {
			answer := strings.ToLower(a.prompt(fmt.Sprintf("Include %s at %.2f? (y/n): ", opt.Name, opt.Price)))
			if answer == "y" || answer == "yes" {
				form.Quantities[opt.ID] = 1
			}
			continue
		}
		qty, _ := strconv.Atoi(a.prompt(fmt.Sprintf("%s at %.2f each, quantity (max %d): ", opt.Name, opt.Price, opt.MaxQuantity)))
		form.Quantities[opt.ID] = qty
	}

	if err := w.ConfigureAmenities(form, options); err != nil {
		fmt.Println(err)
		return nil, err
	}
	return options, nil
}

func (a *app) summary(ctx context.Context, w *reservation.Wizard, options []amenity.Option) {
	d := w.Draft()
	fmt.Println("\nReservation summary")
	fmt.Println("Name:    ", a.store.User().FullName())
	fmt.Println("Facility:", d.Facility)
	fmt.Println("Date:    ", d.Date.Format("January 2, 2006"))
	fmt.Printf("Time:     %s - %s\n", d.Start.Format("3:04 PM"), d.End.Format("3:04 PM"))
	if d.Facility.EventVenue() {
		fmt.Printf("Event:    %s, %d guests\n", d.EventType, d.GuestCount)
		for _, opt := range options {
			sel, ok := d.Amenities[opt.ID]
			if !ok || sel.Quantity == 0 {
				continue
			}
			fmt.Printf("  %s x%d  %.2f\n", opt.Name, sel.Quantity, float64(sel.Quantity)*sel.UnitPrice)
		}
		fmt.Printf("Amenities total: %.2f\n", reservation.AmenitiesTotal(d))
	}
	if d.WasDiscounted {
		fmt.Printf("Facility fee: %.2f (discounted)\n", d.ChargedFee)
	} else {
		fmt.Printf("Facility fee: %.2f\n", d.ChargedFee)
	}
	fmt.Printf("Estimated total: %.2f (final amount is confirmed by the office)\n", reservation.EstimatedTotal(d))

	if strings.ToLower(a.prompt("Confirm? (y/n): ")) != "y" {
		fmt.Println("Reservation not submitted.")
		return
	}

	confirmed, err := a.reservations.Submit(ctx, w)
	if err != nil {
		fmt.Println("Failed to create reservation:", err)
		return
	}
	fmt.Printf("Reservation confirmed! Reference #%d, status: %s\n", confirmed.ID, confirmed.Status)
}

func (a *app) listReservations(ctx context.Context) {
	reservations, err := a.reservations.List(ctx)
	if err != nil {
		fmt.Println("Could not load reservations:", err)
		return
	}
	if len(reservations) == 0 {
		fmt.Println("No reservations yet.")
		return
	}

	for i, r := range reservations {
		fmt.Printf("%d) #%d %s on %s %s-%s  [%s]\n",
			i+1, r.ID, r.Facility, r.Date, r.StartTime, r.EndTime, r.Status)
	}

	choice := a.prompt("Show check-in code for # (or Enter to skip): ")
	if choice == "" {
		return
	}
	idx, err := strconv.Atoi(choice)
	if err != nil || idx < 1 || idx > len(reservations) {
		fmt.Println("Invalid selection.")
		return
	}

	blob, err := checkin.Encode(reservations[idx-1])
	if err != nil {
		fmt.Println("No check-in code available:", err)
		return
	}
	fmt.Println("Scan this payload at the gate:")
	fmt.Println(string(blob))
}

func (a *app) prompt(label string) string {
	fmt.Print(label)
	if !a.in.Scan() {
		return ""
	}
	return strings.TrimSpace(a.in.Text())
}
