package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	DefaultServer = "https://api.day.app"
	DefaultGroup  = "AssetMaster"
)

// ErrNotSent marks a push that never left this process (rate limiter or request build).
// Anything else returned by Send happened after the request went out.
var ErrNotSent = errors.New("bark 요청 미전송")

type BarkConfig struct {
	Server  string
	Group   string
	Rps     float64
	Burst   int
	Timeout time.Duration
}

type Bark struct {
	server  string
	group   string
	client  *http.Client
	limiter *rate.Limiter
	lg      zerolog.Logger
}

type barkResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func NewBark(conf *BarkConfig) *Bark {

	server := strings.TrimRight(conf.Server, "/")
	if server == "" {
		server = DefaultServer
	}
	group := conf.Group
	if group == "" {
		group = DefaultGroup
	}

	limit := rate.Limit(conf.Rps)
	if conf.Rps <= 0 {
		limit = rate.Inf
	}
	burst := conf.Burst
	if burst <= 0 {
		burst = 1
	}
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Bark{
		server:  server,
		group:   group,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, burst),
		lg:      zerolog.New(os.Stdout).With().Str("Module", "Bark").Timestamp().Logger(),
	}
}

// Send pushes GET {server}/{key}/{title}/{body}?group={group}.
func (b *Bark) Send(ctx context.Context, key, title, body string) error {

	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w. rate limiter 대기 시 오류 발생. %w", ErrNotSent, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.pushUrl(key, title, body), nil)
	if err != nil {
		return fmt.Errorf("%w. error making request\n%w", ErrNotSent, err)
	}

	res, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending request\n%w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf("bark 응답 상태 오류. status: %d", res.StatusCode)
	}

	var rtn barkResponse
	if err := json.NewDecoder(res.Body).Decode(&rtn); err != nil {
		return fmt.Errorf("bark 응답 디코딩 시 오류 발생. %w", err)
	}
	if rtn.Code != http.StatusOK {
		return fmt.Errorf("bark 전송 실패. code: %d, message: %s", rtn.Code, rtn.Message)
	}

	b.lg.Info().Str("title", title).Msg("Notification sent")
	return nil
}

func (b *Bark) pushUrl(key, title, body string) string {
	return fmt.Sprintf("%s/%s/%s/%s?group=%s", b.server,
		url.PathEscape(key), url.PathEscape(title), url.PathEscape(body), url.QueryEscape(b.group))
}
