package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"campusbook/internal/frontdesk"
	"campusbook/pkg/client"
	"campusbook/pkg/logger"
	"campusbook/pkg/model"
	"campusbook/pkg/slotgrid"
)

const ServiceName = "frontdesk"

func main() {
	log := logger.New(logger.Config{
		Level:   envOr("LOG_LEVEL", "warn"),
		Format:  "text",
		Output:  os.Stderr,
		Service: ServiceName,
	})

	baseURL := envOr("API_BASE_URL", "http://localhost:8080")

	if err := client.NewHttpClient(baseURL).WaitForHealthy(30 * time.Second); err != nil {
		log.Fatal("Reservation server is not reachable", "base_url", baseURL, "error", err)
	}

	session := frontdesk.NewSession(frontdesk.NewAPI(baseURL), log)
	userID := envOr("FRONTDESK_USER_ID", "")

	fmt.Printf("Connected to %s\n", baseURL)
	fmt.Println(`Type "help" for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		runCommand(session, userID, line)
	}
}

func runCommand(session *frontdesk.Session, userID, line string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "help":
		printHelp()
	case "facilities":
		listFacilities(ctx, session)
	case "use":
		if len(args) != 1 {
			fmt.Println("usage: use <facility-id>")
			return
		}
		if err := session.SetFacility(ctx, args[0]); err != nil {
			fmt.Println("error:", err)
			return
		}
		printGrid(session)
	case "date":
		if len(args) != 1 {
			fmt.Println("usage: date <YYYY-MM-DD>")
			return
		}
		date, err := model.ParseDate(args[0])
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if err := session.SetDate(ctx, date); err != nil {
			fmt.Println("error:", err)
			return
		}
		printGrid(session)
	case "grid", "refresh":
		if cmd == "refresh" {
			if err := session.Refresh(ctx); err != nil {
				fmt.Println("error:", err)
				return
			}
		}
		printGrid(session)
	case "select":
		if len(args) != 1 {
			fmt.Println("usage: select <HH:MM>")
			return
		}
		if err := session.Select(args[0]); err != nil {
			fmt.Println("error:", err)
			return
		}
		printGrid(session)
	case "clear":
		session.Clear()
		printGrid(session)
	case "book":
		bookingUser := userID
		if len(args) == 1 {
			bookingUser = args[0]
		}
		if bookingUser == "" {
			fmt.Println("usage: book <user-id> (or set FRONTDESK_USER_ID)")
			return
		}
		booking, err := session.Submit(ctx, bookingUser)
		if err != nil {
			if errors.Is(err, frontdesk.ErrConflict) {
				fmt.Println("Slot was taken by another booking. Pick a new slot:")
				printGrid(session)
				return
			}
			fmt.Println("error:", err)
			return
		}
		fmt.Printf("Booked %s %s-%s (id %s)\n",
			booking.Date, booking.StartTime.Short(), booking.EndTime.Short(), booking.ID)
		printGrid(session)
	case "cancel":
		if len(args) != 1 {
			fmt.Println("usage: cancel <booking-id>")
			return
		}
		if err := session.Cancel(ctx, args[0]); err != nil {
			fmt.Println("error:", err)
			return
		}
		fmt.Println("Booking cancelled.")
		printGrid(session)
	default:
		fmt.Printf("unknown command %q; type \"help\"\n", cmd)
	}
}

func listFacilities(ctx context.Context, session *frontdesk.Session) {
	facilities, err := session.Facilities(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if len(facilities) == 0 {
		fmt.Println("No facilities found. Run the migration job with SEED_DEMO_DATA=true.")
		return
	}
	for _, f := range facilities {
		fmt.Printf("  %s  %s (%s)\n", f.ID, f.Name, f.Location)
	}
}

func printGrid(session *frontdesk.Session) {
	grid := session.Grid()
	if grid == nil {
		fmt.Println("Pick a facility and date first (use <id>, date <YYYY-MM-DD>).")
		return
	}
	for _, slot := range grid {
		fmt.Printf("  %s %-8s %s\n", statusMark(slot.Status), slot.Label, slot.Status)
	}
}

func statusMark(status slotgrid.Status) string {
	switch status {
	case slotgrid.StatusSelected:
		return ">"
	case slotgrid.StatusAvailable:
		return "."
	default:
		return "x"
	}
}

func printHelp() {
	fmt.Println(`commands:
  facilities            list facilities
  use <facility-id>     work on a facility
  date <YYYY-MM-DD>     set the day
  grid                  show the slot grid
  refresh               reload bookings and show the grid
  select <HH:MM>        select an available slot
  clear                 clear the selection
  book [user-id]        submit the selected slot
  cancel <booking-id>   cancel a booking
  quit`)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
