package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"coastwatch/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeUsers is an in-test UserStore. Unset function fields panic when
// reached, which surfaces as a test failure.
type fakeUsers struct {
	registerFn func(req models.RegisterRequest) (*models.User, error)
	authFn     func(email, password string) (*models.User, error)
	getFn      func(id string) (*models.User, error)
	listFn     func() ([]*models.User, error)
	updateFn   func(id string, req models.UpdateUserRequest) (*models.User, error)
	toggleFn   func(id string) (*models.User, error)
}

func (f *fakeUsers) Register(_ context.Context, req models.RegisterRequest) (*models.User, error) {
	return f.registerFn(req)
}

func (f *fakeUsers) Authenticate(_ context.Context, email, password string) (*models.User, error) {
	return f.authFn(email, password)
}

func (f *fakeUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	return f.getFn(id)
}

func (f *fakeUsers) List(_ context.Context) ([]*models.User, error) {
	return f.listFn()
}

func (f *fakeUsers) Update(_ context.Context, id string, req models.UpdateUserRequest) (*models.User, error) {
	return f.updateFn(id, req)
}

func (f *fakeUsers) ToggleActive(_ context.Context, id string) (*models.User, error) {
	return f.toggleFn(id)
}

func (f *fakeUsers) GenerateToken(string) (string, error) {
	return "test-token", nil
}

type fakeHazards struct {
	created []*models.HazardReport

	getFn   func(id string) (*models.HazardReport, error)
	listFn  func() ([]*models.HazardReport, error)
	statsFn func() (*models.HazardStats, error)
}

func (f *fakeHazards) Create(_ context.Context, report *models.HazardReport) (*models.HazardReport, error) {
	report.ID = primitive.NewObjectID()
	report.CreatedAt = time.Now().UTC()
	if report.Media == nil {
		report.Media = []models.Media{}
	}
	f.created = append(f.created, report)
	return report, nil
}

func (f *fakeHazards) GetByID(_ context.Context, id string) (*models.HazardReport, error) {
	return f.getFn(id)
}

func (f *fakeHazards) List(_ context.Context) ([]*models.HazardReport, error) {
	return f.listFn()
}

func (f *fakeHazards) Stats(_ context.Context) (*models.HazardStats, error) {
	return f.statsFn()
}

type fakeAlerts struct {
	createFn func(message, hazardID string, recipients []string) (*models.AlertResponse, error)
	listFn   func() ([]*models.AlertResponse, error)
	byTypeFn func(hazardType string) ([]*models.AlertResponse, error)
	markFn   func(id string) (*models.AlertResponse, error)
}

func (f *fakeAlerts) Create(_ context.Context, message, hazardID string, recipients []string) (*models.AlertResponse, error) {
	return f.createFn(message, hazardID, recipients)
}

func (f *fakeAlerts) List(_ context.Context) ([]*models.AlertResponse, error) {
	return f.listFn()
}

func (f *fakeAlerts) ListByType(_ context.Context, hazardType string) ([]*models.AlertResponse, error) {
	return f.byTypeFn(hazardType)
}

func (f *fakeAlerts) MarkRead(_ context.Context, id string) (*models.AlertResponse, error) {
	return f.markFn(id)
}

// fakeRequests keeps resource and service requests in memory.
type fakeRequests struct {
	resources []*models.AidRequest
	services  []*models.AidRequest
}

func (f *fakeRequests) CreateResource(_ context.Context, input models.AidRequestInput) (*models.AidRequest, error) {
	req := newAidRequest(input)
	f.resources = append(f.resources, req)
	return req, nil
}

func (f *fakeRequests) CreateService(_ context.Context, input models.AidRequestInput) (*models.AidRequest, error) {
	req := newAidRequest(input)
	f.services = append(f.services, req)
	return req, nil
}

func (f *fakeRequests) ListResources(_ context.Context) ([]*models.AidRequest, error) {
	return f.resources, nil
}

func (f *fakeRequests) ListServices(_ context.Context) ([]*models.AidRequest, error) {
	return f.services, nil
}

func (f *fakeRequests) ListAll(_ context.Context) ([]models.TaggedAidRequest, error) {
	merged := make([]models.TaggedAidRequest, 0, len(f.resources)+len(f.services))
	for _, r := range f.resources {
		merged = append(merged, models.TaggedAidRequest{AidRequest: *r, Type: models.AidResource})
	}
	for _, s := range f.services {
		merged = append(merged, models.TaggedAidRequest{AidRequest: *s, Type: models.AidService})
	}
	return merged, nil
}

func newAidRequest(input models.AidRequestInput) *models.AidRequest {
	return &models.AidRequest{
		ID:             primitive.NewObjectID(),
		Name:           input.Name,
		Location:       input.Location,
		RequestDetails: input.RequestDetails,
		CreatedAt:      time.Now().UTC(),
	}
}

type storedOTP struct {
	contact     string
	contactType string
	otp         string
	expiresAt   time.Time
}

type fakeVerifications struct {
	created  []storedOTP
	verifyFn func(contact, otp string) error
}

func (f *fakeVerifications) Create(_ context.Context, contact, contactType, otp string, expiresAt time.Time) error {
	f.created = append(f.created, storedOTP{contact, contactType, otp, expiresAt})
	return nil
}

func (f *fakeVerifications) Verify(_ context.Context, contact, otp string) error {
	return f.verifyFn(contact, otp)
}

type fakeLocations struct {
	locations []*models.Location
	nearbyFn  func(lat, lng, radiusKm float64) ([]*models.Location, error)
}

func (f *fakeLocations) List(_ context.Context) ([]*models.Location, error) {
	return f.locations, nil
}

func (f *fakeLocations) Nearby(_ context.Context, lat, lng, radiusKm float64) ([]*models.Location, error) {
	return f.nearbyFn(lat, lng, radiusKm)
}

// fakeSender records OTP sends, optionally failing them.
type fakeSender struct {
	mu   sync.Mutex
	sent []string // "to code"
	err  error
}

func (f *fakeSender) SendOTP(to, code string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to+" "+code)
	return nil
}

// fakeNotifier records alert emails and signals each send so tests can
// wait for the dispatch goroutines.
type fakeNotifier struct {
	mu   sync.Mutex
	sent []string
	done chan string
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{done: make(chan string, 16)}
}

func (f *fakeNotifier) SendAlert(to, message, hazardType string) error {
	f.mu.Lock()
	f.sent = append(f.sent, to)
	f.mu.Unlock()
	f.done <- to
	return nil
}

// env bundles a Handlers instance with its fakes.
type env struct {
	users         *fakeUsers
	hazards       *fakeHazards
	alerts        *fakeAlerts
	requests      *fakeRequests
	verifications *fakeVerifications
	locations     *fakeLocations
	h             *Handlers
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{
		users:         &fakeUsers{},
		hazards:       &fakeHazards{},
		alerts:        &fakeAlerts{},
		requests:      &fakeRequests{},
		verifications: &fakeVerifications{},
		locations:     &fakeLocations{},
	}
	e.h = NewHandlers(e.users, e.hazards, e.alerts, e.requests, e.verifications, e.locations, t.TempDir())
	return e
}

func performJSON(handler gin.HandlerFunc, method, path string, body any) *httptest.ResponseRecorder {
	return performJSONWith(handler, method, path, body, nil)
}

// performJSONWith runs one handler with optional preceding middleware.
func performJSONWith(handler gin.HandlerFunc, method, path string, body any, middleware []gin.HandlerFunc) *httptest.ResponseRecorder {
	router := gin.New()
	chain := append(append([]gin.HandlerFunc{}, middleware...), handler)
	router.Handle(method, pathPattern(path), chain...)

	var reader io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// performOnRouter is for tests that need path params, where the route
// pattern differs from the request path.
func performOnRouter(router *gin.Engine, method, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// pathPattern strips the query string so the path can double as the
// route pattern in tests without params.
func pathPattern(path string) string {
	if i := bytes.IndexByte([]byte(path), '?'); i >= 0 {
		return path[:i]
	}
	return path
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), out); err != nil {
		t.Fatalf("failed to decode response %q: %v", w.Body.String(), err)
	}
}

func setUser(user *models.User) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user", user)
		c.Next()
	}
}
