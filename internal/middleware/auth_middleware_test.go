package middleware

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-pos-inventory/internal/model"
)

type fakeTokens map[string]*model.Staff

func (f fakeTokens) ValidateToken(token string) (*model.Staff, error) {
	if m, ok := f[token]; ok {
		return m, nil
	}
	return nil, errors.New("invalid or expired token")
}

func newApp() *fiber.App {
	tokens := fakeTokens{"good": {BaseModel: model.BaseModel{ID: "staff_1"}, Name: "Ana", Email: "ana@pos.local", Role: model.RoleCashier}}
	app := fiber.New()
	app.Get("/dashboard", RequireAuth(tokens), func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("staff_id").(string) + "|" + c.Locals("staff_role").(string))
	})
	return app
}

func TestRequireAuth(t *testing.T) {
	app := newApp()

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", 401},
		{"wrong scheme", "Basic good", 401},
		{"bad token", "Bearer nope", 401},
		{"valid", "Bearer good", 200},
		{"lowercase scheme", "bearer good", 200},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/dashboard", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req, -1)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireAuthSetsLocals(t *testing.T) {
	req := httptest.NewRequest("GET", "/dashboard", nil)
	req.Header.Set("Authorization", "Bearer good")
	resp, err := newApp().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "staff_1|cashier", string(body))
}
