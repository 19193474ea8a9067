// Command notifyhub runs the notification dispatch core: the worker pool with
// its janitor, one-shot maintenance tasks, schema migrations and a CLI ingress.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/DavidGamba/go-getoptions"
)

const usage = `commands:
  worker   run the worker pool, janitor, probe server and AMQP consumer
  drain    process pending notifications until the queue is empty
  sweep    delete terminal queue items older than the retention horizon
  reap     release queue items stuck in processing
  migrate  apply database migrations
  send     create and enqueue a notification (--user, --type, --title, --content)
  health   check database, redis and broker connectivity
`

// commandLineOptionValues represents the values of the command-line options that were passed on the command line when
// this service was invoked.
type commandLineOptionValues struct {
	EnvFile     string
	Concurrency int
	UserID      string
	Type        string
	Title       string
	Content     string
}

func parseCommandLine() (*commandLineOptionValues, string) {
	optionValues := &commandLineOptionValues{}
	opt := getoptions.New()

	// Define the command-line options.
	opt.Bool("help", false, opt.Alias("h", "?"))
	opt.StringVar(&optionValues.EnvFile, "env-file", "",
		opt.Alias("e"),
		opt.Description("an additional .env file to load before the environment is parsed"))
	opt.IntVar(&optionValues.Concurrency, "concurrency", 0,
		opt.Alias("c"),
		opt.Description("number of parallel dispatch slots, overrides WORKER_CONCURRENCY"))
	opt.StringVar(&optionValues.UserID, "user", "", opt.Description("recipient user id for send"))
	opt.StringVar(&optionValues.Type, "type", "email", opt.Description("notification type for send: email, sms or in_app"))
	opt.StringVar(&optionValues.Title, "title", "", opt.Description("notification title for send"))
	opt.StringVar(&optionValues.Content, "content", "", opt.Description("notification body for send"))

	// Parse the command line, handling requests for help and usage errors.
	remaining, err := opt.Parse(os.Args[1:])
	if opt.Called("help") {
		fmt.Fprint(os.Stderr, opt.Help())
		fmt.Fprint(os.Stderr, usage)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n\n", err)
		fmt.Fprint(os.Stderr, opt.Help(getoptions.HelpSynopsis))
		os.Exit(2)
	}
	if len(remaining) != 1 {
		fmt.Fprint(os.Stderr, opt.Help(getoptions.HelpSynopsis))
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	return optionValues, remaining[0]
}

func main() {
	optionValues, command := parseCommandLine()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, optionValues, command); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}
