package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/hrygo/chronoparse/internal/profile"
	"github.com/hrygo/chronoparse/plugin/datetime"
	"github.com/hrygo/chronoparse/plugin/datetime/dateutil"
	"github.com/hrygo/chronoparse/plugin/recognizer"
	"github.com/hrygo/chronoparse/server"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

type output struct {
	Query   string                   `json:"query" yaml:"query"`
	Results []recognizer.ModelResult `json:"results" yaml:"results"`
}

func newRootCmd(v *viper.Viper) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chronoparse [text...]",
		Short: "Recognize dates, times, durations and recurrences in text",
		Long: "chronoparse extracts temporal expressions from text and resolves them against a reference instant.\n" +
			"Without arguments every line of stdin is recognized on its own.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRecognize(cmd, v, args)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("mode", "demo", `mode of the process, can be "prod" or "dev" or "demo"`)
	flags.String("culture", recognizer.DefaultCulture, "culture of the input, for example en-us, en-gb or zh-cn")
	flags.String("options", "None", `recognizer options, for example "SkipFromToMerge|CalendarMode"`)
	flags.String("timezone", "", "IANA timezone of the reference instant (default UTC)")
	flags.Bool("lazy", false, "build culture models on first use")
	flags.Bool("verbose", false, "log at debug level")
	bindFlags(v, flags, "mode", "culture", "options", "timezone", "lazy", "verbose")

	local := rootCmd.Flags()
	local.String("reference", "", "reference instant, RFC 3339 or 2006-01-02 15:04:05 (default now)")
	local.String("format", "json", "output format: json, yaml or text")
	local.Bool("stats", false, "print recognizer metrics to stderr when done")
	bindFlags(v, local, "reference", "format", "stats")

	rootCmd.AddCommand(newServeCmd(v))
	return rootCmd
}

func newServeCmd(v *viper.Viper) *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the recognizer over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := loadProfile(v)
			if err != nil {
				return err
			}
			r, err := newRecognizer(p)
			if err != nil {
				return err
			}
			s, err := server.NewServer(p, r)
			if err != nil {
				return errors.Wrap(err, "failed to create server")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			slog.Info("starting chronoparse", "profile", p.String())
			return s.Start(ctx)
		},
	}

	flags := serveCmd.Flags()
	flags.String("addr", "", "address of server")
	flags.Int("port", 8081, "port of server")
	flags.Float64("rate-limit", 10, "requests per second allowed per client")
	flags.Int("rate-burst", 20, "burst of requests allowed per client")
	flags.Int("max-query-length", 8192, "longest query in bytes the server accepts")
	bindFlags(v, flags, "addr", "port", "rate-limit", "rate-burst", "max-query-length")
	return serveCmd
}

func bindFlags(v *viper.Viper, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		if err := v.BindPFlag(name, flags.Lookup(name)); err != nil {
			panic(err)
		}
	}
}

func loadProfile(v *viper.Viper) (*profile.Profile, error) {
	level := slog.LevelInfo
	if v.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	p := &profile.Profile{
		Mode:      v.GetString("mode"),
		Addr:      v.GetString("addr"),
		Port:      v.GetInt("port"),
		Culture:   v.GetString("culture"),
		Options:   v.GetString("options"),
		Timezone:  v.GetString("timezone"),
		Lazy:      v.GetBool("lazy"),
		RateLimit: v.GetFloat64("rate-limit"),
		RateBurst: v.GetInt("rate-burst"),

		MaxQueryLength: v.GetInt("max-query-length"),
	}
	if err := p.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	p.Version = version
	return p, nil
}

func newRecognizer(p *profile.Profile) (*datetime.Recognizer, error) {
	options, err := p.RecognizerOptions()
	if err != nil {
		return nil, err
	}
	opts := []datetime.Option{datetime.WithLogger(slog.Default())}
	if p.Lazy {
		opts = append(opts, datetime.WithLazyInitialization())
	}
	r, err := datetime.NewRecognizer(p.Culture, options, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create recognizer")
	}
	return r, nil
}

func runRecognize(cmd *cobra.Command, v *viper.Viper, args []string) error {
	p, err := loadProfile(v)
	if err != nil {
		return err
	}
	loc, err := p.Location()
	if err != nil {
		return err
	}
	ref, err := dateutil.ParseReference(v.GetString("reference"), loc)
	if err != nil {
		return errors.Wrap(err, "invalid --reference")
	}
	if ref.IsZero() {
		ref = time.Now().In(loc)
	}
	format := strings.ToLower(v.GetString("format"))
	if format != "json" && format != "yaml" && format != "text" {
		return errors.Errorf("unknown output format %q", format)
	}

	r, err := newRecognizer(p)
	if err != nil {
		return err
	}

	var queries []string
	if len(args) > 0 {
		queries = []string{strings.Join(args, " ")}
	} else {
		if queries, err = readLines(cmd.InOrStdin()); err != nil {
			return errors.Wrap(err, "failed to read stdin")
		}
	}

	outputs := make([]output, 0, len(queries))
	for _, q := range queries {
		results, err := r.Recognize(q, p.Culture, ref, false)
		if err != nil {
			return err
		}
		outputs = append(outputs, output{Query: q, Results: results})
	}

	if err := render(cmd.OutOrStdout(), format, outputs); err != nil {
		return err
	}
	if v.GetBool("stats") {
		enc := yaml.NewEncoder(cmd.ErrOrStderr())
		if err := enc.Encode(r.Metrics().Snapshot()); err != nil {
			return errors.Wrap(err, "failed to encode stats")
		}
		return enc.Close()
	}
	return nil
}

func readLines(in io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

func render(w io.Writer, format string, outputs []output) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(outputs); err != nil {
			return errors.Wrap(err, "failed to encode yaml")
		}
		return enc.Close()
	case "text":
		for _, o := range outputs {
			for _, res := range o.Results {
				values, _ := json.Marshal(res.Resolution)
				fmt.Fprintf(w, "%d-%d\t%s\t%s\t%s\n", res.Start, res.End, res.TypeName, res.Text, values)
			}
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(outputs), "failed to encode json")
	}
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("chronoparse")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

func main() {
	if err := newRootCmd(newViper()).ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
