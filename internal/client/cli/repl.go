package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/couplediaries/couplediaries/internal/client/navigation"
)

// command is one REPL command. run gets the words after the command name.
type command struct {
	name  string
	usage string
	help  string
	run   func(a *App, ctx context.Context, args []string) error
}

// commandsFor lists what a screen group offers, in display order. help and
// exit are available everywhere.
func commandsFor(g navigation.Group) []command {
	switch g {
	case navigation.Public:
		return []command{
			{name: "signup", help: "create an account", run: (*App).SignUp},
			{name: "signin", help: "sign in", run: (*App).SignIn},
		}
	case navigation.EmailVerification:
		return []command{
			{name: "check", help: "check whether the email was verified", run: (*App).CheckVerified},
			{name: "resend", help: "send the verification email again", run: (*App).ResendVerification},
			{name: "signout", help: "sign out", run: (*App).SignOut},
		}
	case navigation.Onboarding:
		return []command{
			{name: "setup", help: "continue the get-started wizard", run: (*App).Setup},
			{name: "back", help: "go back one wizard step", run: (*App).WizardBack},
			{name: "signout", help: "sign out", run: (*App).SignOut},
		}
	case navigation.Home:
		return []command{
			{name: "home", help: "show the anniversary countdown", run: (*App).ShowHome},
			{name: "tab", usage: "<default|cards|chat|profile>", help: "switch the home tab", run: (*App).SwitchTab},
			{name: "cards", help: "list diary cards", run: (*App).ListCards},
			{name: "card", usage: "<id>", help: "show one diary card", run: (*App).ShowCard},
			{name: "addcard", help: "add a diary card", run: (*App).AddCard},
			{name: "sync", help: "sync cards with the server", run: (*App).SyncCards},
			{name: "send", usage: "<message>", help: "send a message to your partner", run: (*App).SendMessage},
			{name: "messages", help: "show sent messages", run: (*App).ListMessages},
			{name: "profile", help: "show your profile", run: (*App).ShowProfile},
			{name: "edit", usage: "<field> <value>", help: "change a profile field", run: (*App).EditProfile},
			{name: "fields", usage: "<name>...", help: "print raw profile fields", run: (*App).ShowFields},
			{name: "weather", usage: "<city>", help: "current temperature in a city", run: (*App).Weather},
			{name: "signout", help: "sign out", run: (*App).SignOut},
		}
	}
	return nil
}

func screenTitle(g navigation.Group) string {
	switch g {
	case navigation.Public:
		return "Welcome"
	case navigation.EmailVerification:
		return "Verify your email"
	case navigation.Onboarding:
		return "Get started"
	case navigation.Home:
		return "Home"
	}
	return g.String()
}

func findCommand(g navigation.Group, name string) (command, bool) {
	for _, c := range commandsFor(g) {
		if c.name == name {
			return c, true
		}
	}
	return command{}, false
}

func printHelp(w io.Writer, g navigation.Group) {
	fmt.Fprintln(w, "Available commands:")
	for _, c := range commandsFor(g) {
		name := c.name
		if c.usage != "" {
			name += " " + c.usage
		}
		fmt.Fprintf(w, "  %-32s %s\n", name, c.help)
	}
	fmt.Fprintf(w, "  %-32s %s\n", "help", "show this list")
	fmt.Fprintf(w, "  %-32s %s\n", "exit", "leave the program")
}

// runREPL reads commands from in until EOF, "exit" or "quit". The command
// set is looked up per line, so a redirect between lines takes effect on
// the next command. Command errors are shown as alerts and never stop the
// loop.
func runREPL(ctx context.Context, a *App, out io.Writer, in *bufio.Reader) {
	printHelp(out, a.Group())

	for {
		if ctx.Err() != nil {
			return
		}
		fmt.Fprintf(out, "cd (%s)> ", a.status())

		line, err := in.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(out)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		name, args := parts[0], parts[1:]

		switch name {
		case "help":
			printHelp(out, a.Group())
			continue
		case "exit", "quit":
			fmt.Fprintln(out, "Bye!")
			return
		}

		cmd, ok := findCommand(a.Group(), name)
		if !ok {
			fmt.Fprintln(out, "Unknown command:", name)
			continue
		}
		if err := cmd.run(a, ctx, args); err != nil {
			a.alert(cmd.name+" failed", err)
		}
	}
}
