package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/shenikar/jack_navigator/internal/dispatch"
	"github.com/shenikar/jack_navigator/internal/intent"
	"github.com/shenikar/jack_navigator/internal/models"
)

const timeLayout = "2006-01-02 15:04:05"

// Assistant - то, что REPL требует от диспетчера
type Assistant interface {
	HandleTranscript(ctx context.Context, transcript string) (intent.Command, string, bool)
	Session() *dispatch.Session
}

// IncidentReader - чтение трекера для служебных команд
type IncidentReader interface {
	ListActive(ctx context.Context) ([]*models.Incident, error)
	ListHistory(ctx context.Context) ([]*models.HistoryEntry, error)
}

// consoleSpeaker печатает ответы ассистента вместо синтеза речи
type consoleSpeaker struct {
	out io.Writer
}

func (s consoleSpeaker) Speak(_ context.Context, text, locale string) {
	fmt.Fprintf(s.out, "jack [%s]: %s\n", locale, text)
}

type repl struct {
	assistant Assistant
	incidents IncidentReader
	out       io.Writer
}

// Run читает фразы построчно; строки с ":" - служебные команды
func (r *repl) Run(ctx context.Context, in io.Reader) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(r.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(r.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ":") {
			if quit := r.meta(ctx, line); quit {
				return nil
			}
			continue
		}
		if _, _, ok := r.assistant.HandleTranscript(ctx, line); !ok {
			fmt.Fprintln(r.out, "(ignored: no wake word)")
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}

func (r *repl) meta(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":pos":
		r.setPosition(fields[1:])
	case ":lang":
		fmt.Fprintf(r.out, "locale: %s\n", r.assistant.Session().ToggleLocale())
	case ":incidents":
		r.printIncidents(ctx)
	case ":history":
		r.printHistory(ctx)
	default:
		fmt.Fprintln(r.out, "commands: :pos <lat> <lng>, :lang, :incidents, :history, :quit")
	}
	return false
}

func (r *repl) setPosition(args []string) {
	if len(args) != 2 {
		fmt.Fprintln(r.out, "usage: :pos <lat> <lng>")
		return
	}
	lat, errLat := strconv.ParseFloat(args[0], 64)
	lng, errLng := strconv.ParseFloat(args[1], 64)
	location := models.Coordinates{Lat: lat, Lng: lng}
	if errLat != nil || errLng != nil || !location.Valid() {
		fmt.Fprintln(r.out, "invalid coordinates")
		return
	}
	r.assistant.Session().SetPosition(location)
	fmt.Fprintf(r.out, "position set to %g, %g\n", lat, lng)
}

func (r *repl) printIncidents(ctx context.Context) {
	active, err := r.incidents.ListActive(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "could not list incidents: %v\n", err)
		return
	}
	rows := make([][]string, 0, len(active))
	for _, inc := range active {
		rows = append(rows, []string{
			strconv.FormatInt(inc.ID, 10),
			string(inc.Status),
			fmt.Sprintf("%.5f, %.5f", inc.Location.Lat, inc.Location.Lng),
			inc.StationName(),
			inc.Timestamp.Local().Format(timeLayout),
		})
	}
	writeTable(r.out, []string{"ID", "STATUS", "LOCATION", "STATION", "RAISED"}, rows)
}

func (r *repl) printHistory(ctx context.Context) {
	history, err := r.incidents.ListHistory(ctx)
	if err != nil {
		fmt.Fprintf(r.out, "could not list history: %v\n", err)
		return
	}
	rows := make([][]string, 0, len(history))
	for _, entry := range history {
		rows = append(rows, []string{
			strconv.FormatInt(entry.Incident.ID, 10),
			entry.Action,
			entry.ActionTime.Local().Format(timeLayout),
		})
	}
	writeTable(r.out, []string{"ID", "ACTION", "AT"}, rows)
}
