package slog_test

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/fwojciec/webread"
	"github.com/fwojciec/webread/mock"
	webslog "github.com/fwojciec/webread/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTier_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("logs tier, url and character count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TierFetcher{
			TierValue: webread.TierRemoteRender,
			FetchFn: func(_ context.Context, _ webread.Request) (string, error) {
				return "naïve text", nil
			},
		}

		tier := webslog.NewLoggingTier(inner, logger)
		text, err := tier.Fetch(context.Background(), webread.NewRequest("https://spa.example.com/"))

		require.NoError(t, err)
		assert.Equal(t, "naïve text", text)
		assert.Equal(t, webread.TierRemoteRender, tier.Tier())
		output := buf.String()
		assert.Contains(t, output, `msg="tier attempt"`)
		assert.Contains(t, output, "tier=tier2")
		assert.Contains(t, output, "url=https://spa.example.com/")
		assert.Contains(t, output, "chars=10")
		assert.NotContains(t, output, "err=")
	})

	t.Run("logs error code on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TierFetcher{
			TierValue: webread.TierLocalBrowser,
			FetchFn: func(_ context.Context, _ webread.Request) (string, error) {
				return "", webread.Errorf(webread.EBLOCKED, "bot challenge page")
			},
		}

		_, err := webslog.NewLoggingTier(inner, logger).Fetch(context.Background(), webread.NewRequest("https://cf.example.com/"))

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "tier=tier3")
		assert.Contains(t, output, "code=blocked")
		assert.Contains(t, output, "err=")
	})
}
