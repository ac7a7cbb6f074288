// Package soap is a small document/literal SOAP 1.1 client driven by a WSDL.
package soap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"azlegapi/lib/restyutil"
	"azlegapi/lib/telemetry"
	"azlegapi/lib/timezone"
	"azlegapi/lib/wsdlcache"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/antzucaro/matchr"
	"github.com/beevik/etree"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"
)

const (
	report_client_fetch_wsdl = "client.fetch-wsdl"
	report_client_cache_wsdl = "client.cache-wsdl"
	report_client_call       = "client.call"
)

const (
	DefaultWSDL      = "https://www.azleg.gov/xml/legservice.asmx?WSDL"
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "azlegapi/1.0 (+https://www.azleg.gov/xml/legservice.asmx)"
)

var tracer = otel.Tracer("lib/soap")
var meter = otel.Meter("lib/soap")

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrUnknownOperation   = errors.New("unknown operation")
)

// Caller dispatches a named remote operation with positional arguments and
// returns the payload element of the response.
type Caller interface {
	Call(ctx context.Context, operation string, args ...any) (*etree.Element, error)
}

// Cache stores fetched WSDL documents by url.
type Cache interface {
	Get(ctx context.Context, url string) ([]byte, error)
	Set(ctx context.Context, url string, contents []byte) error
}

type Options struct {
	// WSDL defaults to DefaultWSDL.
	WSDL     string
	Security Security
	// AllowAnonymous permits an empty Security.
	AllowAnonymous bool
	Timeout        time.Duration
	// RateLimit is in requests per second, zero disables limiting.
	RateLimit        float64
	Burst            int
	UserAgent        string
	CloudflareBypass bool
	Cache            Cache
	// DumpDir receives a copy of every exchange, credentials redacted.
	DumpDir   string
	Telemetry telemetry.API
}

type Client struct {
	http     *resty.Client
	def      *Definition
	security Security
	tel      telemetry.API

	calls    metric.Int64Counter
	duration metric.Float64Histogram
	now      func() time.Time
}

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if (opts.Security.Username == "" || opts.Security.Password == "") && !opts.AllowAnonymous {
		return nil, ErrMissingCredentials
	}
	if opts.WSDL == "" {
		opts.WSDL = DefaultWSDL
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	tel := opts.Telemetry
	if tel == nil {
		tel = telemetry.SlogAPI{}
	}
	tel = telemetry.NewScopedAPI("soap", tel)

	httpClient := resty.New()
	httpClient.SetHeader("user-agent", opts.UserAgent)
	httpClient.SetTimeout(opts.Timeout)
	if opts.CloudflareBypass {
		httpClient.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(httpClient.GetClient().Transport)
	}

	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		rateLimiter := rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
		httpClient.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return rateLimiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(httpClient, "lib/soap/http")
	if opts.DumpDir != "" {
		output, err := restyutil.NewFilesystemOutput(opts.DumpDir)
		if err != nil {
			return nil, err
		}
		restyutil.InstrumentClient(httpClient, output)
	}

	calls, err := meter.Int64Counter(
		"soap.calls",
		metric.WithDescription("Number of SOAP operations dispatched."),
	)
	if err != nil {
		return nil, err
	}
	duration, err := meter.Float64Histogram(
		"soap.call.duration",
		metric.WithDescription("Duration of SOAP operations."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	c := &Client{
		http:     httpClient,
		security: opts.Security,
		tel:      tel,
		calls:    calls,
		duration: duration,
		now:      timezone.Now,
	}

	contents, err := c.fetchWSDL(ctx, opts.WSDL, opts.Cache)
	if err != nil {
		return nil, err
	}
	c.def, err = ParseWSDL(contents)
	if err != nil {
		return nil, fmt.Errorf("wsdl parse: %w", err)
	}
	return c, nil
}

func (c *Client) fetchWSDL(ctx context.Context, url string, cache Cache) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "fetchWSDL")
	defer span.End()
	span.SetAttributes(semconv.URLFull(url))

	if cache != nil {
		contents, err := cache.Get(ctx, url)
		if err == nil {
			span.SetAttributes(attribute.Bool("cached", true))
			return contents, nil
		}
		if !errors.Is(err, wsdlcache.ErrNotFound) {
			c.tel.ReportWarning(report_client_cache_wsdl, fmt.Errorf("read cached wsdl: %w", err))
		}
	}

	res, err := c.http.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("wsdl fetch: %w", err)
	}
	if res.IsError() {
		err := &HTTPError{
			Operation:  "wsdl fetch",
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       res.String(),
		}
		c.tel.ReportBroken(report_client_fetch_wsdl, err, url)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	contents := res.Body()
	if cache != nil {
		err = cache.Set(ctx, url, contents)
		if err != nil {
			c.tel.ReportWarning(report_client_cache_wsdl, fmt.Errorf("store wsdl: %w", err))
		}
	}
	return contents, nil
}

func (c *Client) Definition() *Definition {
	return c.def
}

func (c *Client) Operations() []string {
	return c.def.Operations()
}

func (c *Client) Operation(name string) (Operation, bool) {
	return c.def.Operation(name)
}

func (c *Client) unknownOperation(name string) error {
	var suggestion string
	var best float64
	for _, candidate := range c.def.Operations() {
		similarity := matchr.JaroWinkler(name, candidate, false)
		if similarity > best {
			best = similarity
			suggestion = candidate
		}
	}
	if best < 0.8 {
		return fmt.Errorf("%w %q", ErrUnknownOperation, name)
	}
	return fmt.Errorf("%w %q, did you mean %q?", ErrUnknownOperation, name, suggestion)
}

// Call dispatches `operation` with positional arguments bound to the input
// parameters in WSDL order. Nil arguments are left out of the request.
func (c *Client) Call(ctx context.Context, operation string, args ...any) (*etree.Element, error) {
	ctx, span := tracer.Start(
		ctx, fmt.Sprintf("soap %s", operation),
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			semconv.RPCSystemKey.String("soap"),
			semconv.RPCService(c.def.Service),
			semconv.RPCMethod(operation),
		),
	)
	defer span.End()

	start := time.Now()
	payload, err := c.call(ctx, operation, args)

	attrs := metric.WithAttributes(
		semconv.RPCMethod(operation),
		attribute.Bool("error", err != nil),
	)
	c.calls.Add(ctx, 1, attrs)
	c.duration.Record(ctx, time.Since(start).Seconds(), attrs)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.tel.ReportDebug("call failed", operation, err)
		return nil, err
	}
	return payload, nil
}

func (c *Client) call(ctx context.Context, operation string, args []any) (*etree.Element, error) {
	op, ok := c.def.Operation(operation)
	if !ok {
		return nil, c.unknownOperation(operation)
	}

	envelope, err := buildEnvelope(c.def, op, args, c.security, c.now())
	if err != nil {
		return nil, err
	}
	body, err := envelope.WriteToBytes()
	if err != nil {
		return nil, err
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetHeader("SOAPAction", fmt.Sprintf(`"%s"`, op.Action)).
		SetBody(body).
		Post(c.def.Address)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	payload, fault, err := readEnvelope(op, res.Body())
	if fault != nil {
		return nil, fault
	}
	if res.IsError() {
		return nil, &HTTPError{
			Operation:  operation,
			StatusCode: res.StatusCode(),
			Status:     res.Status(),
			Body:       res.String(),
		}
	}
	if err != nil {
		c.tel.ReportBroken(report_client_call, err, operation)
		return nil, err
	}
	return payload, nil
}
