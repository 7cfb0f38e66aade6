// Command bookcli walks through the booking wizard in a terminal and submits
// the request to a running API server.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/Kariaki58/favfareclinic/internal/catalog"
	"github.com/Kariaki58/favfareclinic/internal/forms"
	"github.com/Kariaki58/favfareclinic/internal/wizard"
)

const backCommand = "back"

var (
	flagAPI      string
	flagTimezone string
	flagTimeout  time.Duration
)

func main() {
	_ = godotenv.Load()

	flag.StringVar(&flagAPI, "api", envOr("BOOKING_API_URL", "http://localhost:8080"), "API base URL")
	flag.StringVar(&flagTimezone, "tz", envOr("CLINIC_TIMEZONE", "Africa/Lagos"), "Clinic timezone")
	flag.DurationVar(&flagTimeout, "timeout", 30*time.Second, "Submission timeout")
	flag.Parse()

	loc, err := time.LoadLocation(flagTimezone)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid timezone %q: %v\n", flagTimezone, err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	endpoint := strings.TrimRight(flagAPI, "/") + "/api/bookings"
	sub := wizard.NewHTTPSubmitter(endpoint, &http.Client{Timeout: flagTimeout})
	wz := wizard.New(uuid.NewString(), forms.NewSchema(forms.WithLocation(loc)))

	if err := run(ctx, os.Stdin, os.Stdout, wz, sub); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, context.Canceled) {
			fmt.Println("\nBooking cancelled.")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "booking failed: %v\n", err)
		os.Exit(1)
	}
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// prompter reads one trimmed line per question.
type prompter struct {
	in  *bufio.Scanner
	out io.Writer
}

func (p *prompter) ask(label, current string) (string, error) {
	if current != "" {
		fmt.Fprintf(p.out, "%s [%s]: ", label, current)
	} else {
		fmt.Fprintf(p.out, "%s: ", label)
	}
	if !p.in.Scan() {
		if err := p.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	answer := strings.TrimSpace(p.in.Text())
	if answer == "" {
		return current, nil
	}
	return answer, nil
}

// choose lists options and accepts either a 1-based index or the option text.
func (p *prompter) choose(label string, options []string, current string) (string, error) {
	for i, opt := range options {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, opt)
	}
	answer, err := p.ask(label, current)
	if err != nil || answer == backCommand {
		return answer, err
	}
	if n, convErr := strconv.Atoi(answer); convErr == nil && n >= 1 && n <= len(options) {
		return options[n-1], nil
	}
	return answer, nil
}

func run(ctx context.Context, in io.Reader, out io.Writer, wz *wizard.Wizard, sub wizard.Submitter) error {
	p := &prompter{in: bufio.NewScanner(in), out: out}
	fmt.Fprintln(out, "Fav Fare Dental Clinic: book an appointment")
	fmt.Fprintf(out, "Type %q at any prompt to return to the previous step.\n", backCommand)

	for wz.Step() != wizard.StepSubmitted {
		if err := ctx.Err(); err != nil {
			return err
		}
		step := wz.Step()
		info := step.Info()
		fmt.Fprintf(out, "\n== %s ==\n%s\n", info.Title, info.Description)

		back, err := fillStep(p, wz, step)
		if err != nil {
			return err
		}
		if back {
			if err := wz.Retreat(); err != nil {
				return err
			}
			continue
		}

		if step != wizard.StepContactDetails {
			errs, err := wz.Advance()
			if err != nil {
				return err
			}
			printErrors(out, errs)
			continue
		}

		confirm, err := p.ask("Submit booking request? (y/n)", "")
		if err != nil {
			return err
		}
		switch strings.ToLower(confirm) {
		case backCommand:
			if err := wz.Retreat(); err != nil {
				return err
			}
			continue
		case "y", "yes":
		default:
			continue
		}

		result, err := wz.Submit(ctx, sub)
		if err != nil {
			fmt.Fprintln(out, forms.GenericFailureMessage)
			if errors.Is(err, context.Canceled) {
				return err
			}
			continue
		}
		if !result.OK() {
			fmt.Fprintln(out, result.Message)
			printErrors(out, result.Errors)
		}
	}

	printConfirmation(out, wz.State().Confirmation)
	return nil
}

// fillStep prompts for every field the step owns. It reports true when the
// user asked to go back.
func fillStep(p *prompter, wz *wizard.Wizard, step wizard.Step) (bool, error) {
	fields := step.Fields()
	if step == wizard.StepContactDetails {
		fields = append(fields, forms.FieldNotes)
	}
	for _, field := range fields {
		answer, err := promptField(p, wz, field)
		if err != nil {
			return false, err
		}
		if answer == backCommand {
			return true, nil
		}
		if err := wz.Set(field, answer); err != nil {
			return false, err
		}
		if field == forms.FieldService {
			if svc, ok := wz.Selected(); ok {
				fmt.Fprintf(p.out, "  %s, %s (%s)\n  %s\n", svc.Title, svc.Price, svc.Duration, svc.LongDescription)
			}
		}
	}
	return false, nil
}

func promptField(p *prompter, wz *wizard.Wizard, field string) (string, error) {
	draft := wz.State().Draft
	switch field {
	case forms.FieldService:
		var titles []string
		for _, svc := range catalog.Services() {
			titles = append(titles, svc.Title)
		}
		return p.choose("Service", titles, draft.Service)
	case forms.FieldDate:
		current := ""
		if !draft.Date.IsZero() {
			current = draft.Date.Format(time.DateOnly)
		}
		return p.ask("Date (YYYY-MM-DD)", current)
	case forms.FieldTime:
		return p.choose("Time", catalog.TimeSlots(), draft.Time)
	case forms.FieldName:
		return p.ask("Full name", draft.Name)
	case forms.FieldEmail:
		return p.ask("Email (optional)", draft.Email)
	case forms.FieldPhone:
		return p.ask("Phone", draft.Phone)
	case forms.FieldPaymentOption:
		var labels []string
		for _, opt := range catalog.PaymentOptions() {
			labels = append(labels, opt.Label)
		}
		answer, err := p.choose("Payment", labels, catalog.PaymentLabel(draft.PaymentOption))
		if err != nil {
			return "", err
		}
		for _, opt := range catalog.PaymentOptions() {
			if answer == opt.Label {
				return opt.Value, nil
			}
		}
		return answer, nil
	case forms.FieldNotes:
		return p.ask("Notes (optional)", draft.Notes)
	default:
		return p.ask(field, "")
	}
}

func printErrors(out io.Writer, errs forms.FieldErrors) {
	for _, field := range errs.Fields() {
		for _, msg := range errs[field] {
			fmt.Fprintf(out, "  ! %s: %s\n", field, msg)
		}
	}
}

func printConfirmation(out io.Writer, c *wizard.Confirmation) {
	info := wizard.StepSubmitted.Info()
	fmt.Fprintf(out, "\n== %s ==\n%s\n", info.Title, info.Description)
	if c == nil {
		return
	}
	fmt.Fprintf(out, "  %s on %s at %s for %s\n", c.Service, c.Date, c.Time, c.Name)
	fmt.Fprintln(out, "What's next:")
	for _, step := range c.NextSteps {
		fmt.Fprintf(out, "  - %s\n", step)
	}
}
