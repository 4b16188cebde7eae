// Command rentalctl lists and edits rental records through the record service.
//
//	rentalctl [flags] list <collection> [query]
//	rentalctl [flags] add <collection> field=value...
//	rentalctl [flags] edit <collection> <key> field=value...
//	rentalctl [flags] delete <collection> <key>     (asks first unless -yes)
//	rentalctl [flags] dashboard
//	rentalctl [flags] watch [collection...]
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"os/signal"
	"scaffold-rental/internal/config"
	"scaffold-rental/internal/domain/customer"
	"scaffold-rental/internal/domain/dashboard"
	"scaffold-rental/internal/domain/inventory"
	"scaffold-rental/internal/domain/rental"
	"scaffold-rental/internal/domain/vendors"
	"scaffold-rental/internal/event"
	"scaffold-rental/internal/infrastructure/cache"
	"scaffold-rental/internal/infrastructure/logging"
	"scaffold-rental/internal/pkg/apperrors"
	"scaffold-rental/internal/storeclient"
	"slices"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("rentalctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configDir := fs.String("config", ".", "directory holding config.yml and .env")
	baseURL := fs.String("url", "", "record service URL (overrides client.baseURL)")
	token := fs.String("token", "", "bearer token (overrides client.token)")
	cacheBackend := fs.String("cache", "", "list cache: memory, redis or none (overrides client.cache)")
	verbose := fs.Bool("v", false, "log client activity to stderr")
	assumeYes := fs.Bool("yes", false, "delete without asking for confirmation")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: rentalctl [flags] list|add|edit|delete|dashboard|watch ...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errUsage
	}

	cfg, err := config.LoadConfig(*configDir)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}
	if *baseURL != "" {
		cfg.Client.BaseURL = *baseURL
	}
	if *token != "" {
		cfg.Client.Token = *token
	}
	if *cacheBackend != "" {
		cfg.Client.Cache = *cacheBackend
	}
	if !*verbose {
		cfg.Logger.Level = "warn"
	}
	logger := logging.New(cfg.Logger, stderr)

	if fs.Arg(0) == "watch" {
		return watch(ctx, stdout, cfg.RabbitMQ, fs.Args()[1:], logger)
	}

	session, closeSession, err := connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeSession()

	colls := map[string]commands{
		customer.Collection:  newCollection(session, customer.Collection, customer.FormSchema, customer.ListSchema),
		vendors.Collection:   newCollection(session, vendors.Collection, vendors.FormSchema, vendors.ListSchema),
		inventory.Collection: newCollection(session, inventory.Collection, inventory.FormSchema, inventory.ListSchema),
		rental.Collection:    newCollection(session, rental.Collection, rental.FormSchema, rental.ListSchema),
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]
	if cmd == "dashboard" {
		return printDashboard(ctx, stdout, session)
	}
	if len(rest) == 0 {
		fs.Usage()
		return errUsage
	}
	c, ok := colls[rest[0]]
	if !ok {
		return fmt.Errorf("unknown collection %q (want one of %s)", rest[0], strings.Join(slices.Sorted(maps.Keys(colls)), ", "))
	}
	rest = rest[1:]

	switch cmd {
	case "list":
		return c.list(ctx, stdout, strings.Join(rest, " "))
	case "add":
		return c.add(ctx, stdout, rest)
	case "edit":
		if len(rest) == 0 {
			fs.Usage()
			return errUsage
		}
		return c.edit(ctx, stdout, rest[0], rest[1:])
	case "delete":
		if len(rest) != 1 {
			fs.Usage()
			return errUsage
		}
		confirm := func(string) bool { return true }
		if !*assumeYes {
			confirm = prompter(stdin, stdout)
		}
		return c.remove(ctx, stdout, rest[0], confirm)
	default:
		fs.Usage()
		return errUsage
	}
}

// prompter asks on w and reads one answer line from r. Only y, ya and yes
// confirm.
func prompter(r io.Reader, w io.Writer) func(key string) bool {
	in := bufio.NewReader(r)
	return func(key string) bool {
		fmt.Fprintf(w, "Hapus %s? [y/N] ", key)
		answer, _ := in.ReadString('\n')
		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "ya", "yes":
			return true
		default:
			return false
		}
	}
}

// connect builds the list cache and session and checks the record service.
func connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storeclient.Session, func(), error) {
	var rdb *redis.Client
	if cfg.Client.Cache == cache.BackendRedis && cfg.Redis.Addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	closeRedis := func() {
		if rdb != nil {
			_ = rdb.Close()
		}
	}

	store, err := cache.New(cfg.Client, rdb, logger)
	if err != nil {
		closeRedis()
		return nil, nil, err
	}
	session, err := storeclient.NewSession(cfg.Client, store, logger)
	if err != nil {
		closeRedis()
		return nil, nil, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := session.Connect(connectCtx); err != nil {
		closeRedis()
		return nil, nil, err
	}
	return session, func() {
		session.Close()
		closeRedis()
	}, nil
}

func printDashboard(ctx context.Context, w io.Writer, s *storeclient.Session) error {
	svc := dashboard.NewService(
		storeclient.NewClient[customer.Customer](s, customer.Collection, nil),
		storeclient.NewClient[inventory.Item](s, inventory.Collection, nil),
		storeclient.NewClient[rental.Order](s, rental.Collection, nil),
	)
	summary, err := svc.Summary(ctx)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, kpi := range summary.KPIs() {
		fmt.Fprintf(tw, "%s\t%s\n", kpi.Title, kpi.Value)
	}
	return tw.Flush()
}

// watch prints record events until ctx is cancelled. Each argument is a
// collection name or a raw routing key pattern.
func watch(ctx context.Context, w io.Writer, cfg config.RabbitMQConfig, patterns []string, logger *slog.Logger) error {
	uri, err := cfg.URI()
	if err != nil {
		return err
	}
	conn, err := amqp.Dial(uri)
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConnectionUnavailable, err)
	}
	defer conn.Close()

	keys := make([]string, len(patterns))
	for i, p := range patterns {
		if !strings.ContainsAny(p, ".*#") {
			p += ".*"
		}
		keys[i] = p
	}

	printEvent := func(_ context.Context, ev event.RecordEvent) error {
		_, err := fmt.Fprintf(w, "%s\t%s\t%s\n", ev.Timestamp.Local().Format(time.DateTime), ev.RoutingKey(), ev.Key)
		return err
	}
	consumer, err := event.NewConsumer(conn, cfg.ExchangeName, "", "rentalctl", keys, printEvent, logger)
	if err != nil {
		return err
	}
	if err := consumer.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	consumer.Stop()
	return nil
}
