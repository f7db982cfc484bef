package main

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
)

const (
	defaultAPIURL = "http://localhost:8080"
	envAPIURL     = "API_URL"
	envAPIKey     = "ADMIN_API_KEY"
)

// errUsage is returned by Dispatch when no known command was named
var errUsage = errors.New("usage")

// Command is one devtool subcommand
type Command interface {
	Name() string
	Description() string
	Run(args []string) error
}

// Registry holds the subcommands by name
type Registry struct {
	commands map[string]Command
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{commands: make(map[string]Command)}
}

// Register adds cmd, replacing any command of the same name
func (r *Registry) Register(cmd Command) {
	r.commands[cmd.Name()] = cmd
}

// Get looks a command up by name
func (r *Registry) Get(name string) (Command, bool) {
	cmd, ok := r.commands[name]
	return cmd, ok
}

// List returns the commands sorted by name
func (r *Registry) List() []Command {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)

	cmds := make([]Command, len(names))
	for i, name := range names {
		cmds[i] = r.commands[name]
	}
	return cmds
}

// PrintHelp writes the usage text to output
func (r *Registry) PrintHelp() {
	fmt.Fprintln(output, "Usage: devtool <command> [args...]")
	fmt.Fprintln(output, "\nAvailable Commands:")

	tw := tabwriter.NewWriter(output, 0, 0, 2, ' ', 0)
	for _, cmd := range r.List() {
		fmt.Fprintf(tw, "  %s\t%s\n", cmd.Name(), cmd.Description())
	}
	_ = tw.Flush()
}

// Dispatch runs the command named by args[0] with the remaining args
func (r *Registry) Dispatch(args []string) error {
	if len(args) == 0 {
		r.PrintHelp()
		return errUsage
	}
	cmd, ok := r.Get(args[0])
	if !ok {
		PrintError("Unknown command: %s", args[0])
		r.PrintHelp()
		return errUsage
	}
	return cmd.Run(args[1:])
}

// apiURL returns the first argument, API_URL, or the local default
func apiURL(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if v := os.Getenv(envAPIURL); v != "" {
		return v
	}
	return defaultAPIURL
}
