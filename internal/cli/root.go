// Package cli implements the httpreq command line.
package cli

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/adamwoolhether/httpreq/client"
	"github.com/spf13/cobra"
)

var version = "dev"

type flags struct {
	method     string
	headers    []string
	data       string
	json       []string
	form       []string
	query      []string
	insecure   bool
	timeout    time.Duration
	decode     string
	output     string
	include    bool
	selectPath string
	profile    string
	userAgent  string
	noColor    bool
	verbose    bool
}

// NewRootCommand returns the httpreq command.
func NewRootCommand() *cobra.Command {
	var f flags

	cmd := &cobra.Command{
		Use:   "httpreq [flags] URL",
		Short: "Send one HTTP request and print the response",
		Long: `httpreq sends a single HTTP(S) request and prints the decoded response.
Any status code is printed as a result; only transport failures, timeouts
and invalid input exit non-zero. With --output, the body is streamed to a
file and non-2xx statuses fail before anything is written.

Examples:
  httpreq https://jsonplaceholder.typicode.com/todos/1
  httpreq -q postId=1 https://jsonplaceholder.typicode.com/comments
  httpreq -X POST --json title=foo --json userId=1 https://jsonplaceholder.typicode.com/posts
  httpreq --select title https://jsonplaceholder.typicode.com/todos/1
  httpreq -o photo.png https://via.placeholder.com/600/92c952`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0], &f)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.method, "method", "X", "", "HTTP method (default GET, or POST with a body)")
	fs.StringArrayVarP(&f.headers, "header", "H", nil, `Request header "Name: value" (repeatable)`)
	fs.StringVarP(&f.data, "data", "d", "", "Raw request body, or @file to read it from a file")
	fs.StringArrayVar(&f.json, "json", nil, "JSON body field key=value (repeatable)")
	fs.StringArrayVar(&f.form, "form", nil, "Form body field key=value (repeatable)")
	fs.StringArrayVarP(&f.query, "query", "q", nil, "Query parameter key=value (repeatable)")
	fs.BoolVarP(&f.insecure, "insecure", "k", false, "Skip TLS certificate verification")
	fs.DurationVar(&f.timeout, "timeout", client.DefaultTimeout, "Timeout for the whole request")
	fs.StringVar(&f.decode, "decode", string(client.DecodeAuto), "Body decoding: auto, text or buffer")
	fs.StringVarP(&f.output, "output", "o", "", "Stream the response body to a file")
	fs.BoolVarP(&f.include, "include", "i", false, "Print the status line and headers")
	fs.StringVar(&f.selectPath, "select", "", "Print only the value at a JSON path (gjson syntax)")
	fs.StringVar(&f.profile, "profile", "", "YAML file with default headers, timeout, insecure and user_agent")
	fs.StringVarP(&f.userAgent, "user-agent", "A", "", "User-Agent header")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "Log request details to stderr")
	cmd.PersistentFlags().BoolVar(&f.noColor, "no-color", false, "Disable colored output")

	cmd.MarkFlagsMutuallyExclusive("data", "json", "form")
	cmd.MarkFlagsMutuallyExclusive("output", "select")
	cmd.MarkFlagsMutuallyExclusive("output", "include")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "httpreq version %s\n", version)
		},
	}
}

func run(cmd *cobra.Command, target string, f *flags) error {
	prof := &Profile{}
	if f.profile != "" {
		var err error
		if prof, err = LoadProfile(f.profile); err != nil {
			return err
		}
	}

	opts, err := f.options(cmd, prof)
	if err != nil {
		return err
	}

	level := slog.LevelWarn
	if f.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	userAgent := f.userAgent
	if userAgent == "" {
		userAgent = prof.UserAgent
	}
	if userAgent == "" {
		userAgent = "httpreq/" + version
	}

	c, err := client.Build(client.WithLogger(logger), client.WithUserAgent(userAgent))
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	if f.output != "" {
		if f.verbose {
			opts.Download = append(opts.Download, client.WithProgress())
		}

		res, err := c.RequestStream(ctx, client.URL(target), opts)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "saved %s\n", res.Path)
		return nil
	}

	env, err := c.Request(ctx, client.URL(target), opts)
	if err != nil {
		return err
	}

	return newPrinter(cmd.OutOrStdout(), f.noColor).envelope(env, f.include, f.selectPath)
}

// options merges the profile and the flags into call options. Flags win.
func (f *flags) options(cmd *cobra.Command, prof *Profile) (client.Options, error) {
	headers := make(http.Header, len(prof.Headers))
	for k, v := range prof.Headers {
		headers.Set(k, v)
	}

	flagHeaders, err := parseHeaders(f.headers)
	if err != nil {
		return client.Options{}, err
	}
	for k, vs := range flagHeaders {
		headers[k] = vs
	}

	opts := client.Options{
		Method:             f.method,
		Headers:            headers,
		InsecureSkipVerify: f.insecure || prof.Insecure,
		Timeout:            f.timeout,
		Decode:             client.DecodeMode(f.decode),
		UseNumber:          true,
		OutputFile:         f.output,
	}
	if prof.Timeout > 0 && !cmd.Flags().Changed("timeout") {
		opts.Timeout = prof.Timeout
	}

	if len(f.query) > 0 {
		if opts.Query, err = parseValues("query", f.query); err != nil {
			return client.Options{}, err
		}
	}

	if opts.Body, err = f.body(headers); err != nil {
		return client.Options{}, err
	}
	if opts.Method == "" && !opts.Body.IsZero() {
		opts.Method = http.MethodPost
	}

	return opts, nil
}

// body builds the request body from --data, --json or --form, adding a
// matching Content-Type unless one was given.
func (f *flags) body(headers http.Header) (client.Body, error) {
	switch {
	case strings.HasPrefix(f.data, "@"):
		data, err := os.ReadFile(f.data[1:])
		if err != nil {
			return client.Body{}, fmt.Errorf("reading body: %w", err)
		}
		return client.RawBody(data), nil

	case f.data != "":
		return client.TextBody(f.data), nil

	case len(f.json) > 0:
		fields, err := parseJSONFields(f.json)
		if err != nil {
			return client.Body{}, err
		}
		if headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", "application/json")
		}
		return client.ValueBody(fields), nil

	case len(f.form) > 0:
		values, err := parseValues("form", f.form)
		if err != nil {
			return client.Body{}, err
		}
		if headers.Get("Content-Type") == "" {
			headers.Set("Content-Type", "application/x-www-form-urlencoded")
		}
		return client.ValueBody(values), nil
	}

	return client.Body{}, nil
}
