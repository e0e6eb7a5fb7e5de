// Copyright Open Responses Gateway Authors
// SPDX-License-Identifier: Apache-2.0

// Package cli holds the command-line surface of openresponses: option
// parsing and validation, and the plain, markdown and JSON presenters.
package cli

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/leseb/openresponses-cli/pkg/core/schema"
)

// ErrNoPrompt is returned when the interactive prompt reads an empty line.
var ErrNoPrompt = errors.New("No prompt provided")

// DisplayMode selects how a response is printed.
type DisplayMode int

const (
	DisplayMarkdown DisplayMode = iota
	DisplayPlain
	DisplayJSON
)

func (m DisplayMode) String() string {
	switch m {
	case DisplayPlain:
		return "plain"
	case DisplayJSON:
		return "json"
	default:
		return "markdown"
	}
}

// Options is the parsed command line for the ask command. Pointer fields are
// nil when the flag was not given.
type Options struct {
	Prompt  string
	Model   string
	Verbose bool

	JSON     bool
	Plain    bool
	Markdown bool

	Temperature        *float32
	MaxOutputTokens    *uint32
	Instructions       *string
	Stream             bool
	Background         bool
	ServiceTier        *string
	User               *string
	PreviousResponseID *string
	TopP               *float32
	TopLogprobs        *uint32
	Truncation         string
	Store              *bool
	ParallelToolCalls  *bool

	Files      []string
	ConfigPath string
	LogLevel   string
}

// NewFlagSet returns a flag set bound to opts. Short aliases share the
// destination of their long form.
func NewFlagSet(name string, opts *Options) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	opts.Truncation = string(schema.TruncationDisabled)

	fs.StringVar(&opts.Model, "model", "", "Model to use (defaults to the configured model)")
	fs.StringVar(&opts.Model, "m", "", "Shorthand for --model")
	fs.BoolVar(&opts.Verbose, "verbose", false, "Show usage statistics and response metadata")
	fs.BoolVar(&opts.Verbose, "v", false, "Shorthand for --verbose")
	fs.Var(float32Value{&opts.Temperature}, "temperature", "Temperature for response randomness (0.0 to 2.0)")
	fs.Var(float32Value{&opts.Temperature}, "t", "Shorthand for --temperature")
	fs.BoolVar(&opts.JSON, "json", false, "Output response in JSON format")
	fs.BoolVar(&opts.JSON, "j", false, "Shorthand for --json")
	fs.BoolVar(&opts.Markdown, "markdown", false, "Render response as markdown (default)")
	fs.BoolVar(&opts.Markdown, "md", false, "Shorthand for --markdown")
	fs.BoolVar(&opts.Plain, "plain", false, "Output response as plain text")

	fs.Var(uint32Value{&opts.MaxOutputTokens}, "max-output-tokens", "Maximum number of output tokens")
	fs.Var(stringValue{&opts.Instructions}, "instructions", "System instructions for the model")
	fs.BoolVar(&opts.Stream, "stream", false, "Enable streaming response")
	fs.BoolVar(&opts.Background, "background", false, "Run in background")
	fs.Var(stringValue{&opts.ServiceTier}, "service-tier", "Service tier (auto, default, flex, priority)")
	fs.Var(stringValue{&opts.User}, "user", "User identifier for tracking")
	fs.Var(stringValue{&opts.PreviousResponseID}, "previous-response-id", "Previous response ID for multi-turn conversations")
	fs.Var(float32Value{&opts.TopP}, "top-p", "Top-p nucleus sampling parameter")
	fs.Var(uint32Value{&opts.TopLogprobs}, "top-logprobs", "Number of top log probabilities to return (0-20)")
	fs.StringVar(&opts.Truncation, "truncation", string(schema.TruncationDisabled), "Truncation strategy (auto, disabled)")
	fs.Var(boolValue{&opts.Store}, "store", "Whether to store the response")
	fs.Var(boolValue{&opts.ParallelToolCalls}, "parallel-tool-calls", "Whether to allow parallel tool calls")

	fs.Func("file", "Attach a document: path, file://path or s3://bucket/key (repeatable)", func(s string) error {
		opts.Files = append(opts.Files, s)
		return nil
	})
	fs.StringVar(&opts.ConfigPath, "config", "", "Path to configuration file")
	fs.StringVar(&opts.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	return fs
}

// Parse parses args into opts. Flags and positional words may be mixed; the
// positional words are joined with spaces to form the prompt.
func Parse(fs *flag.FlagSet, opts *Options, args []string) error {
	var words []string
	for {
		if err := fs.Parse(args); err != nil {
			return err
		}
		rest := fs.Args()
		if len(rest) == 0 {
			break
		}
		words = append(words, rest[0])
		args = rest[1:]
	}
	opts.Prompt = strings.Join(words, " ")
	return nil
}

// Validate checks ranges, enums and flag combinations.
func (o *Options) Validate() error {
	if o.Temperature != nil && (*o.Temperature < 0 || *o.Temperature > 2) {
		return errors.New("Temperature must be between 0.0 and 2.0")
	}
	if o.TopP != nil && (*o.TopP < 0 || *o.TopP > 1) {
		return errors.New("Top-p must be between 0.0 and 1.0")
	}
	if o.TopLogprobs != nil && *o.TopLogprobs > 20 {
		return errors.New("Top logprobs must be between 0 and 20")
	}
	if o.ServiceTier != nil && !slices.Contains(schema.ServiceTiers, schema.ServiceTier(*o.ServiceTier)) {
		return errors.New("Service tier must be one of: auto, default, flex, priority")
	}
	if !slices.Contains(schema.Truncations, schema.Truncation(o.Truncation)) {
		return errors.New("Truncation must be either 'auto' or 'disabled'")
	}
	if o.JSON && o.Plain {
		return errors.New("--json and --plain cannot be used together")
	}
	return nil
}

// DisplayMode resolves the output flags: json wins over plain, plain over
// markdown.
func (o *Options) DisplayMode() DisplayMode {
	switch {
	case o.JSON:
		return DisplayJSON
	case o.Plain:
		return DisplayPlain
	default:
		return DisplayMarkdown
	}
}

// ReadPrompt returns the positional prompt, or asks for one on in.
func (o *Options) ReadPrompt(in io.Reader, out io.Writer) (string, error) {
	if o.Prompt != "" {
		return o.Prompt, nil
	}

	fmt.Fprint(out, "Enter your question: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read prompt: %w", err)
	}
	line = strings.TrimSpace(line)
	if line == "" {
		return "", ErrNoPrompt
	}
	return line, nil
}

// ToBuilder maps the options onto a request builder. input is either a
// string or a []any of structured input items.
func (o *Options) ToBuilder(defaultModel string, input any) *schema.RequestBuilder {
	model := o.Model
	if model == "" {
		model = defaultModel
	}
	b := schema.NewRequestBuilder().Model(model)

	switch v := input.(type) {
	case []any:
		b.InputArray(v)
	case string:
		b.InputText(v)
	}

	if o.Temperature != nil {
		b.Temperature(*o.Temperature)
	}
	if o.MaxOutputTokens != nil {
		b.MaxOutputTokens(*o.MaxOutputTokens)
	}
	if o.Instructions != nil {
		b.Instructions(*o.Instructions)
	}
	if o.Stream {
		b.Stream(true)
	}
	if o.Background {
		b.Background(true)
	}
	if o.ServiceTier != nil {
		b.ServiceTier(schema.ServiceTier(*o.ServiceTier))
	}
	if o.User != nil {
		b.User(*o.User)
	}
	if o.PreviousResponseID != nil {
		b.PreviousResponseID(*o.PreviousResponseID)
	}
	if o.TopP != nil {
		b.TopP(*o.TopP)
	}
	if o.TopLogprobs != nil {
		b.TopLogprobs(*o.TopLogprobs)
	}
	b.Truncation(schema.Truncation(o.Truncation))
	if o.Store != nil {
		b.Store(*o.Store)
	}
	if o.ParallelToolCalls != nil {
		b.ParallelToolCalls(*o.ParallelToolCalls)
	}
	return b
}

// Optional flag values. Each leaves its destination nil until Set is called.

type float32Value struct{ p **float32 }

func (v float32Value) Set(s string) error {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	f32 := float32(f)
	*v.p = &f32
	return nil
}

func (v float32Value) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return strconv.FormatFloat(float64(**v.p), 'g', -1, 32)
}

type uint32Value struct{ p **uint32 }

func (v uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	u := uint32(n)
	*v.p = &u
	return nil
}

func (v uint32Value) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return strconv.FormatUint(uint64(**v.p), 10)
}

type stringValue struct{ p **string }

func (v stringValue) Set(s string) error {
	*v.p = &s
	return nil
}

func (v stringValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return **v.p
}

// boolValue accepts both "--store" and "--store=false".
type boolValue struct{ p **bool }

func (v boolValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*v.p = &b
	return nil
}

func (v boolValue) String() string {
	if v.p == nil || *v.p == nil {
		return ""
	}
	return strconv.FormatBool(**v.p)
}

func (v boolValue) IsBoolFlag() bool { return true }
