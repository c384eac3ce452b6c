package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"nextstep/internal/client"
	"nextstep/internal/domain/application"
	"nextstep/internal/swipe"
)

// swiper is a terminal surface over the swipe core: it renders one card at
// a time and maps commands onto the same gesture state machine the
// graphical surfaces drive with pointer events.
func main() {
	var (
		baseURL = flag.String("server", "http://localhost:8080", "API server base URL")
		token   = flag.String("token", os.Getenv("NEXTSTEP_TOKEN"), "bearer token")
		query   = flag.String("q", "", "optional feed query")
	)
	flag.Parse()

	if strings.TrimSpace(*token) == "" {
		log.Fatal("missing token: pass -token or set NEXTSTEP_TOKEN")
	}

	session := swipe.NewSession(*token)
	queue := swipe.NewQueue()
	api := client.NewAPIClient(*baseURL, session)
	submitter := client.NewSubmitter(api, session, queue, log.Default())

	ctx := context.Background()
	if err := submitter.Refresh(ctx, *query); err != nil {
		log.Fatalf("failed to load feed: %v", err)
	}

	fmt.Println("commands: right (apply) | left (reject) | up (skip) | save | open | refresh | quit")

	interp := swipe.NewInterpreter()
	scanner := bufio.NewScanner(os.Stdin)

	for {
		current, ok := queue.Current()
		if !ok {
			if queue.State() == swipe.QueueExhausted {
				fmt.Println("no more jobs to show - type refresh or quit")
			}
		} else {
			fmt.Printf("\n%s @ %s [%s]\n> ", current.Title, current.CompanyName, current.PrimaryLocation())
		}

		if !scanner.Scan() {
			return
		}
		cmd := strings.ToLower(strings.TrimSpace(scanner.Text()))

		switch cmd {
		case "quit", "q":
			return
		case "refresh", "r":
			if err := submitter.Refresh(ctx, *query); err != nil {
				fmt.Printf("refresh failed: %v\n", err)
			}
			continue
		case "open", "o":
			if ok {
				fmt.Printf("\n%s\n\nSkills: %s\nBenefits: %s\nSalary: %s\n",
					current.Description,
					strings.Join(current.Skills, ", "),
					strings.Join(current.Benefits, ", "),
					current.SalaryRange)
			}
			continue
		}

		if !ok {
			continue
		}

		decision, decided := simulateGesture(interp, cmd)
		if !decided {
			continue
		}
		interp.Reset()

		// The card leaves the queue before SubmitAsync returns; only the
		// network call runs in the background.
		submitter.SubmitAsync(ctx, current.ID, decision, func(res client.Result) {
			switch res {
			case client.ResultSuccess:
				if decision == application.DecisionApply {
					fmt.Println("applied successfully")
				}
			case client.ResultConflict:
				// Already decided elsewhere; nothing to do.
			case client.ResultAuthExpired:
				fmt.Println("session expired - please sign in again")
			default:
				fmt.Printf("decision not saved (%s)\n", res)
			}
		})
	}
}

// simulateGesture drives the interpreter the way a pointer adapter would:
// down at the origin, a move past the threshold on one axis, release.
func simulateGesture(interp *swipe.Interpreter, cmd string) (application.Decision, bool) {
	const distance = swipe.DefaultThreshold + 50

	interp.Begin(0, 0)
	switch cmd {
	case "right":
		interp.Move(distance, 0)
	case "left":
		interp.Move(-distance, 0)
	case "up", "skip":
		interp.Move(0, -distance)
	case "save":
		interp.Cancel()
		return application.DecisionSave, true
	default:
		interp.Cancel()
		fmt.Println("unknown command")
		return 0, false
	}
	return interp.Release()
}
