package config

import (
	"Donation-Hub/domain"
	"Donation-Hub/internal/testutil"
	"Donation-Hub/internal/utils/mailing"
	"Donation-Hub/pkg/jwt"
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDescriber struct {
	calls    int
	mimeType string
	err      error
}

func (f *fakeDescriber) Describe(ctx context.Context, image []byte, mimeType string) (string, error) {
	f.calls++
	f.mimeType = mimeType
	if f.err != nil {
		return "", f.err
	}
	return "a sturdy wooden chair", nil
}

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

type testApp struct {
	t         *testing.T
	app       *fiber.App
	describer *fakeDescriber
}

func newTestApp(t *testing.T) *testApp {
	db := testutil.SetupSQLiteTestDB(t)
	mailer, err := mailing.NewMailer(mailing.MailConfig{})
	require.NoError(t, err)

	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	describer := &fakeDescriber{}
	app, err := NewAppWithOptions(db, Options{
		JWTService:  jwt.NewJWTServiceWithKey("test-secret"),
		Describer:   describer,
		Mailer:      mailer,
		LogOutput:   io.Discard,
		RateLimit:   10000,
		SkipStorage: true,
		Clock: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
	})
	require.NoError(t, err)
	return &testApp{t: t, app: app, describer: describer}
}

func (a *testApp) do(req *http.Request) (*http.Response, envelope) {
	a.t.Helper()
	resp, err := a.app.Test(req, -1)
	require.NoError(a.t, err)

	var env envelope
	body, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	if len(body) > 0 && resp.Header.Get(fiber.HeaderContentType) == fiber.MIMEApplicationJSON {
		require.NoError(a.t, json.Unmarshal(body, &env), string(body))
	}
	return resp, env
}

func (a *testApp) request(method, path string, body any, token string, cookies ...*http.Cookie) (*http.Response, envelope) {
	a.t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return a.do(req)
}

// signup registers and logs in, returning the account id, bearer token and
// session cookies.
func (a *testApp) signup(email, userType string) (string, string, []*http.Cookie) {
	a.t.Helper()
	creds := map[string]string{"email": email, "password": "s3cret", "user_type": userType}

	resp, env := a.request(http.MethodPost, "/api/v1/auth/register", creds, "")
	require.Equal(a.t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, env = a.request(http.MethodPost, "/api/v1/auth/login", creds, "")
	require.Equal(a.t, fiber.StatusOK, resp.StatusCode, env.Error)

	var login domain.LoginResponse
	require.NoError(a.t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(a.t, login.Token)
	return login.AccountID, login.Token, resp.Cookies()
}

func decode[T any](t *testing.T, env envelope) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(env.Data, &v), string(env.Data))
	return v
}

func TestPing(t *testing.T) {
	a := newTestApp(t)
	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/api/ping", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestAuthFlow(t *testing.T) {
	a := newTestApp(t)

	resp, env := a.request(http.MethodPost, "/api/v1/auth/register", map[string]string{"email": "x@example.com"}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Status)

	id, _, cookies := a.signup("ada@example.com", domain.RoleDonor)
	require.NotEmpty(t, cookies)

	resp, env = a.request(http.MethodPost, "/api/v1/auth/register",
		map[string]string{"email": "ada@example.com", "password": "x", "user_type": domain.RoleDonor}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "duplicate is a conflict")

	resp, _ = a.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "ada@example.com", "password": "wrong", "user_type": domain.RoleDonor}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env = a.request(http.MethodGet, "/api/v1/auth/me", nil, "", cookies...)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	me := decode[domain.Identity](t, env)
	assert.Equal(t, id, me.AccountID)
	assert.Equal(t, domain.RoleDonor, me.UserType)

	resp, _ = a.request(http.MethodPost, "/api/v1/auth/logout", nil, "", cookies...)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = a.request(http.MethodGet, "/api/v1/auth/me", nil, "", cookies...)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = a.request(http.MethodPost, "/api/v1/auth/logout", nil, "")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "logout is idempotent")

	resp, _ = a.request(http.MethodGet, "/api/v1/auth/me", nil, "garbage")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutRevokesBearerToken(t *testing.T) {
	a := newTestApp(t)
	_, token, _ := a.signup("grace@example.com", domain.RoleOrganization)

	resp, env := a.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)

	resp, _ = a.request(http.MethodPost, "/api/v1/auth/logout", nil, token)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, _ = a.request(http.MethodGet, "/api/v1/auth/me", nil, token)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, _ = a.request(http.MethodPost, "/api/v1/auth/logout", nil, "garbage")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "logout with a bad token still succeeds")
}

func TestDonationLifecycle(t *testing.T) {
	a := newTestApp(t)
	donorID, donorToken, donorCookies := a.signup("donor@example.com", domain.RoleDonor)
	orgID, orgToken, _ := a.signup("org@example.com", domain.RoleOrganization)

	// profiles default their owner id to the caller
	resp, env := a.request(http.MethodPost, "/api/v1/donors/profile", map[string]string{
		"full_name":            "Ada Donor",
		"phone_number":         "555-0100",
		"address":              "1 Main St",
		"donation_preferences": "furniture",
	}, "", donorCookies...)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)
	created := decode[domain.CreateProfileResponse](t, env)
	assert.Equal(t, donorID, created.OwnerID)

	resp, _ = a.request(http.MethodPost, "/api/v1/donors/profile", map[string]string{
		"full_name": "Ada Donor", "phone_number": "1", "address": "2", "donation_preferences": "3",
	}, donorToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode, "second donor profile conflicts")

	resp, env = a.request(http.MethodPost, "/api/v1/organizations/profile", map[string]string{
		"name":                "Helping Hands",
		"registration_number": "REG-9",
		"address":             "9 Charity Rd",
		"head_name":           "Grace",
	}, orgToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)

	resp, env = a.request(http.MethodPost, "/api/v1/auth/login",
		map[string]string{"email": "donor@example.com", "password": "s3cret", "user_type": domain.RoleDonor}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, decode[domain.LoginResponse](t, env).DetailsComplete)

	resp, env = a.request(http.MethodPost, "/api/v1/donations", map[string]any{
		"condition":  "good",
		"item_count": "3",
		"date":       "2024-01-05T10:00:00Z",
		"item_name":  "chair",
	}, donorToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)
	submitted := decode[domain.Donation](t, env)
	assert.Equal(t, donorID, submitted.DonorID)
	assert.Equal(t, 3, submitted.ItemCount)
	assert.Equal(t, domain.StatusPending, submitted.Status)

	resp, _ = a.request(http.MethodPost, "/api/v1/donations", map[string]any{"condition": "good"}, donorToken)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.request(http.MethodPost, "/api/v1/donations", map[string]any{"condition": "good", "date": "2024-01-01"}, "")
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp, env = a.request(http.MethodGet, "/api/v1/organizations/pickups/pending", nil, orgToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	pending := decode[domain.PendingPickupsResponse](t, env)
	assert.Equal(t, 1, pending.Total)

	resp, env = a.request(http.MethodGet, "/api/v1/organizations/"+orgID+"/stats", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	assert.Equal(t, 1, decode[domain.OrganizationStats](t, env).PendingPickups)

	resp, env = a.request(http.MethodPost, "/api/v1/organizations/requests/accept", map[string]string{"donor_id": donorID}, orgToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	assert.Equal(t, domain.StatusAccepted, decode[domain.Donation](t, env).Status)

	resp, _ = a.request(http.MethodPost, "/api/v1/organizations/requests/decline", map[string]string{"donor_id": donorID}, orgToken)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = a.request(http.MethodGet, "/api/v1/organizations/requests/accepted?organization_id="+orgID, nil, orgToken)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	accepted := decode[[]domain.Donation](t, env)
	require.Len(t, accepted, 1)
	assert.Equal(t, submitted.ID, accepted[0].ID)

	resp, env = a.request(http.MethodGet, "/api/v1/organizations/"+orgID+"/stats", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, decode[domain.OrganizationStats](t, env).TotalPickups)

	resp, env = a.request(http.MethodPost, "/api/v1/organizations/pickups/schedule", map[string]string{
		"donor_id":    donorID,
		"pickup_date": "2024-01-10",
		"pickup_time": "09:30",
	}, orgToken)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode, env.Error)
	assert.Equal(t, orgID, decode[domain.PickupSchedule](t, env).OrganizationID)

	resp, env = a.request(http.MethodGet, "/api/v1/donors/details?donor_id="+donorID, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	stats := decode[domain.DonorStats](t, env)
	assert.Equal(t, "Ada Donor", stats.FullName)
	assert.Equal(t, 1, stats.TotalDonations)
	assert.Equal(t, 3, stats.ItemsDonated)

	resp, env = a.request(http.MethodGet, "/api/v1/donors/"+donorID+"/monthly-chart", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.MonthlyItems{{Month: "January", Items: 3}}, decode[[]domain.MonthlyItems](t, env))

	resp, env = a.request(http.MethodGet, "/api/v1/donors/"+donorID+"/donations", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	history := decode[[]domain.Donation](t, env)
	require.Len(t, history, 1)
	assert.Equal(t, domain.StatusAccepted, history[0].Status)

	resp, env = a.request(http.MethodGet, "/api/v1/donors/leaderboard", nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []domain.LeaderboardEntry{{DonorID: donorID, FullName: "Ada Donor", ItemsDonated: 3}},
		decode[[]domain.LeaderboardEntry](t, env))

	resp, env = a.request(http.MethodPost, "/api/v1/donors/bulk", map[string]any{"donor_ids": []string{donorID, "nobody"}}, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]domain.DonorProfile](t, env), 1)

	resp, _ = a.request(http.MethodPost, "/api/v1/donors/bulk", map[string]any{"donor_ids": []string{}}, "")
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp, _ = a.request(http.MethodGet, "/api/v1/donors/nobody/stats", nil, "")
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, env = a.request(http.MethodGet, "/api/v1/donors/"+donorID, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1 Main St", decode[domain.DonorProfile](t, env).Address)

	resp, env = a.request(http.MethodGet, "/api/v1/organizations/"+orgID, nil, "")
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Helping Hands", decode[domain.OrganizationProfile](t, env).Name)
}

func TestDescribeImage(t *testing.T) {
	a := newTestApp(t)
	_, token, _ := a.signup("donor@example.com", domain.RoleDonor)
	png := []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

	resp, env := a.request(http.MethodPost, "/api/v1/donations/describe",
		map[string]string{"image": base64.StdEncoding.EncodeToString(png)}, token)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	assert.Equal(t, "a sturdy wooden chair", decode[domain.DescribeImageResponse](t, env).Description)
	assert.Equal(t, "image/png", a.describer.mimeType)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("image", "chair.png")
	require.NoError(t, err)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/donations/describe", &body)
	req.Header.Set(fiber.HeaderContentType, writer.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	resp, env = a.do(req)
	require.Equal(t, fiber.StatusOK, resp.StatusCode, env.Error)
	assert.Equal(t, 2, a.describer.calls)

	resp, _ = a.request(http.MethodPost, "/api/v1/donations/describe", map[string]string{}, token)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	a.describer.err = domain.ErrGeminiFailed
	resp, env = a.request(http.MethodPost, "/api/v1/donations/describe",
		map[string]string{"image": base64.StdEncoding.EncodeToString(png)}, token)
	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Contains(t, env.Error, "gemini")
}

func TestMetricsEndpoint(t *testing.T) {
	a := newTestApp(t)
	a.request(http.MethodGet, "/api/ping", nil, "")

	resp, err := a.app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `http_requests_total{method="GET",route="/api/ping",status="200"} 1`)
}
