package main

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

func newRegistry() *Registry {
	r := NewRegistry()
	r.Register(&WaitForDBCommand{})
	r.Register(&MigrateCommand{})
	r.Register(&HealthCheckCommand{})
	r.Register(&LeaderboardCommand{})
	r.Register(&WatchEventsCommand{})
	return r
}

func main() {
	_ = godotenv.Load()

	if err := newRegistry().Dispatch(os.Args[1:]); err != nil {
		if !errors.Is(err, errUsage) {
			PrintError("%v", err)
		}
		os.Exit(1)
	}
}
