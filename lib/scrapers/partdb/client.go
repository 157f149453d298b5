package partdb

import (
	"bytes"
	"context"
	"fmt"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"partdb-tools/lib/restyutil"
	"partdb-tools/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/PuerkitoBio/goquery"
	"github.com/dgraph-io/badger/v4"
	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

var tracer = otel.Tracer("scrapers/partdb")

var ErrLoginFailed = fmt.Errorf("Failed to login to the catalog.")
var ErrSessionExpired = fmt.Errorf("Session expired, redirected to the login page.")

// Client talks to a Part-DB instance over plain HTTP, standing in for
// the interactive browser session the web UI assumes.
type Client struct {
	BaseUrl *url.URL
	Http    *resty.Client
	cache   pageCache
}

type ClientOptions struct {
	BaseUrl string
	// catalog requests per second, 0 means unlimited
	RequestsPerSecond float64
	// optional raw HTTP message dump, nil disables it
	DebugOutput restyutil.InstrumentOutput
	// optional part info page cache, nil disables it
	Cache *badger.DB
}

func NewClient(ctx context.Context, opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}

	client := resty.New()
	client.SetBaseURL(opts.BaseUrl)
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, err
	}
	client.SetCookieJar(jar)
	client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)

	client.SetHeader("user-agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/123.0.0.0 Safari/537.36")
	client.SetRedirectPolicy(resty.DomainCheckRedirectPolicy(baseUrl.Hostname()))
	client.SetTimeout(time.Second * 30)

	if opts.RequestsPerSecond > 0 {
		limiter := rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
		client.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
			return limiter.Wait(req.Context())
		})
	}

	telemetry.InstrumentResty(client, "scrapers/partdb/http")
	restyutil.InstrumentClient(client, opts.DebugOutput)

	c := &Client{
		BaseUrl: baseUrl,
		Http:    client,
		cache:   pageCache{db: opts.Cache, baseUrl: baseUrl},
	}
	return c, nil
}

// LoginUsernamePassword performs the login form flow: lift the CSRF
// token off the form, post the credentials, then verify the session
// actually took by loading the account page.
func (c *Client) LoginUsernamePassword(ctx context.Context, username, password string) error {
	ctx, span := tracer.Start(ctx, "client:LoginUsernamePassword")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/en/login")
	if err != nil {
		span.SetStatus(codes.Error, "failed to fetch login page")
		return err
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewBuffer(res.Body()))
	if err != nil {
		span.SetStatus(codes.Error, "failed to parse login page html")
		return err
	}

	csrfToken := doc.Find("input[name=_csrf_token]").AttrOr("value", "")
	if csrfToken == "" {
		span.SetStatus(codes.Error, "failed to find csrf token")
		return fmt.Errorf("could not find csrf token on login page")
	}

	_, err = c.Http.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"_csrf_token":  csrfToken,
			"_username":    username,
			"_password":    password,
			"_target_path": "/",
		}).
		Post("/en/login")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to make login request")
		return err
	}

	err = c.CheckSession(ctx)
	if err != nil {
		span.SetStatus(codes.Error, ErrLoginFailed.Error())
		return ErrLoginFailed
	}
	return nil
}

// CheckSession verifies the cookie jar still holds a live session.
func (c *Client) CheckSession(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "client:CheckSession")
	defer span.End()

	res, err := c.Http.R().
		SetContext(ctx).
		Get("/en/user/info")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch account page")
		return err
	}
	if redirectedToLogin(res) {
		span.SetStatus(codes.Error, ErrSessionExpired.Error())
		return ErrSessionExpired
	}
	return nil
}

func redirectedToLogin(res *resty.Response) bool {
	finalUrl := res.Request.URL
	if res.RawResponse != nil {
		if loc, err := res.RawResponse.Location(); err == nil {
			finalUrl = loc.String()
		} else if res.RawResponse.Request != nil {
			finalUrl = res.RawResponse.Request.URL.String()
		}
	}
	return strings.Contains(finalUrl, "/login")
}
