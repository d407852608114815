// eventtail polls a meeting's event log and prints new entries, for
// eyeballing floor-control behavior during a live demo.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"lingocall/client/internal/types"
)

func main() {
	_ = godotenv.Load()

	base := flag.String("base", "http://127.0.0.1:8080", "server base URL")
	interval := flag.Duration("interval", 2*time.Second, "poll interval")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: eventtail [-base URL] [-interval D] <meeting-id>")
		os.Exit(2)
	}
	meetingID := flag.Arg(0)

	seen := 0
	for {
		events, err := fetchEvents(*base, meetingID)
		if err != nil {
			log.Printf("fetch events: %v", err)
		} else {
			for _, e := range events[min(seen, len(events)):] {
				line := e.Ts.Format(time.RFC3339) + " " + e.Type
				if len(e.Payload) > 0 {
					b, _ := json.Marshal(e.Payload)
					line += " " + string(b)
				}
				fmt.Println(line)
			}
			seen = len(events)
		}
		time.Sleep(*interval)
	}
}

func fetchEvents(base, meetingID string) ([]types.Event, error) {
	resp, err := http.Get(base + "/meetings/" + meetingID + "/events")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %s", resp.Status)
	}
	var body struct {
		Events []types.Event `json:"events"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, err
	}
	return body.Events, nil
}
