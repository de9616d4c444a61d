package sidearm

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"rostergraph/internal/roster"
	"rostergraph/lib/restyutil"
	"strconv"
	"strings"
	"time"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("rostergraph.lib.scrapers.sidearm")

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36"

type ClientOptions struct {
	// BaseUrl is the roster url without the year, ex. https://gopsusports.com/sports/football/roster
	BaseUrl       string
	TableSelector string
	UserAgent     string
	Timeout       time.Duration
	// DumpOutput receives every request/response pair when set.
	DumpOutput restyutil.InstrumentOutput
}

// Client fetches roster pages from a sidearm hosted athletics site.
type Client struct {
	BaseUrl  *url.URL
	Http     *resty.Client
	selector string
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(strings.TrimSuffix(opts.BaseUrl, "/"))
	if err != nil {
		return nil, err
	}
	if baseUrl.Scheme == "" || baseUrl.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", opts.BaseUrl)
	}

	selector := opts.TableSelector
	if selector == "" {
		selector = DefaultTableSelector
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = time.Second * 30
	}

	client := resty.New()
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	client.SetHeader("user-agent", userAgent)
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(timeout)
	restyutil.InstrumentClient(client, tracer, opts.DumpOutput)

	return &Client{
		BaseUrl:  baseUrl,
		Http:     client,
		selector: selector,
	}, nil
}

// RosterUrl is the page of a roster year.
func (c *Client) RosterUrl(year int) string {
	return c.BaseUrl.JoinPath(strconv.Itoa(year)).String()
}

// Fetch downloads and parses the roster page of a year. Transport failures,
// non 2xx statuses and a missing roster table are all errors.
func (c *Client) Fetch(ctx context.Context, year int) (roster.Page, error) {
	ctx, span := tracer.Start(ctx, "client:Fetch")
	defer span.End()

	link := c.RosterUrl(year)
	span.SetAttributes(attribute.Int("year", year), attribute.String("url", link))

	res, err := c.Http.R().
		SetContext(ctx).
		Get(link)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch roster page")
		return roster.Page{}, err
	}
	if res.IsError() {
		err := fmt.Errorf("get %s: unexpected status %s", link, res.Status())
		span.RecordError(err)
		span.SetStatus(codes.Error, "unexpected status")
		return roster.Page{}, err
	}

	return ParsePage(ctx, link, bytes.NewReader(res.Body()), c.selector)
}
