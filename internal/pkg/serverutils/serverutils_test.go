package serverutils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"survey-dashboard-be/internal/pkg/logger"
	"survey-dashboard-be/pkg/charts"
	"survey-dashboard-be/pkg/cleaning"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandlerStatusCodes(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "coercion", err: fmt.Errorf("clean: %w", &cleaning.CoercionError{Column: "Time spent on TV", Row: 1, Value: "abc"}), want: 422},
		{name: "unknown tab", err: charts.ErrUnknownTab, want: 400},
		{name: "validation", err: ValidateRequest(payload{}), want: 400},
		{name: "fiber error", err: fiber.NewError(fiber.StatusNotFound, "gone"), want: 404},
		{name: "other", err: io.ErrUnexpectedEOF, want: 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Use(ErrorHandlerMiddleware(logger.NewNopLogger()))
			app.Get("/", func(ctx *fiber.Ctx) error { return tt.err })

			resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, resp.StatusCode)

			var body BaseResponse[json.RawMessage]
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.False(t, body.Success)
			assert.Equal(t, tt.want, body.Code)
		})
	}
}

func TestSessionMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(SessionMiddleware(time.Hour))
	app.Get("/", func(ctx *fiber.Ctx) error { return ctx.SendString(SessionID(ctx)) })

	// new session
	resp, err := app.Test(httptest.NewRequest("GET", "/", nil))
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_, err = uuid.Parse(string(body))
	require.NoError(t, err)
	assert.Equal(t, string(body), resp.Header.Get(SessionHeader))

	// header round-trip
	id := uuid.NewString()
	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(SessionHeader, id)
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.Equal(t, id, string(body))

	// an invalid cookie gets a fresh id
	req = httptest.NewRequest("GET", "/", nil)
	req.Header.Set("Cookie", SessionCookie+"=not-a-uuid")
	resp, err = app.Test(req)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	assert.NotEqual(t, "not-a-uuid", string(body))
}

func TestSessionIDSurvivesLaterRequests(t *testing.T) {
	app := fiber.New()
	app.Use(SessionMiddleware(time.Hour))

	seen := map[string]string{}
	app.Get("/", func(ctx *fiber.Ctx) error {
		id := SessionID(ctx)
		seen[id] = id
		return ctx.SendStatus(fiber.StatusNoContent)
	})

	first := "11111111-1111-4111-8111-111111111111"
	second := "22222222-2222-4222-8222-222222222222"
	for _, id := range []string{first, second, second, second, second, second} {
		req := httptest.NewRequest("GET", "/", nil)
		req.Header.Set(SessionHeader, id)
		_, err := app.Test(req)
		require.NoError(t, err)
	}

	require.Len(t, seen, 2)
	assert.Equal(t, first, seen[first])
	assert.Equal(t, second, seen[second])
}
