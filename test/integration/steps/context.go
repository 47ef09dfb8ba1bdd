// Package steps provides step definitions for BDD integration tests.
package steps

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	"github.com/cucumber/godog"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/carbon-tracker/backend/config"
	"github.com/carbon-tracker/backend/internal/infra/dependency"
	"github.com/carbon-tracker/backend/internal/integration/persistence/model"
	"github.com/carbon-tracker/backend/test/integration/mock"
)

const (
	testJWTSecret = "test-jwt-secret-key-for-testing-purposes"

	// Login attempts allowed per window before the limiter answers 429.
	testLoginAttempts = 5
)

// Parents first; mock.Db clears in reverse.
var tables = []string{"users", "refresh_tokens", "emission_factors", "user_inputs", "reports", "email_queue"}

type testContext struct {
	uri      string
	headers  map[string]string
	client   *http.Client
	response *response

	db       *mock.Db
	injector *dependency.Injector
	emailAPI *mock.ApiMock

	accessToken   string
	refreshToken  string
	currentUserID uuid.UUID
	factorIDs     map[string]uuid.UUID
	lastID        string
}

type response struct {
	status  int
	headers http.Header
	body    any
}

var (
	serverInit sync.Once
	server     *httptest.Server
	injector   *dependency.Injector
	emailAPI   *mock.ApiMock
	testDB     *mock.Db
)

// InitializeTestSuite sets up resources shared by every scenario.
func InitializeTestSuite(ctx *godog.TestSuiteContext) {
	ctx.BeforeSuite(func() {
		gin.SetMode(gin.TestMode)
	})

	ctx.AfterSuite(func() {
		if server != nil {
			server.Close()
		}
		if emailAPI != nil {
			emailAPI.Close()
		}
	})
}

// InitializeScenario registers all step definitions.
func InitializeScenario(ctx *godog.ScenarioContext) {
	test := &testContext{
		client: &http.Client{Timeout: 10 * time.Second},
	}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		return ctx, test.before()
	})

	// Background steps
	ctx.Given(`^the API server is running$`, test.theAPIServerIsRunning)

	// User setup steps
	ctx.Given(`^a user exists with email "([^"]*)" and password "([^"]*)"$`, test.aUserExistsWithEmailAndPassword)
	ctx.Given(`^I am logged in as "([^"]*)"$`, test.iAmLoggedInAs)

	// Catalogue setup steps
	ctx.Given(`^the emission factor "([^"]*)" exists for scope (\d) with (\S+) kg CO2e per "([^"]*)"$`, test.theEmissionFactorExists)
	ctx.Given(`^I recorded (\S+) "([^"]*)" of "([^"]*)" on "([^"]*)"$`, test.iRecordedActivity)

	// Email provider steps
	ctx.Given(`^the email provider accepts messages$`, test.theEmailProviderAcceptsMessages)
	ctx.Given(`^the email provider rejects messages with status (\d+)$`, test.theEmailProviderRejectsMessages)
	ctx.When(`^the email worker runs$`, test.theEmailWorkerRuns)
	ctx.Then(`^the email provider should have received (\d+) emails?$`, test.theEmailProviderShouldHaveReceived)
	ctx.Then(`^the last email should be addressed to "([^"]*)"$`, test.theLastEmailShouldBeAddressedTo)
	ctx.Then(`^the last email subject should contain "([^"]*)"$`, test.theLastEmailSubjectShouldContain)

	// Header steps
	ctx.Given(`^the header is empty$`, test.theHeaderIsEmpty)
	ctx.Given(`^the header contains the key "([^"]*)" with "([^"]*)"$`, test.theHeaderContainsTheKeyWith)

	// Request steps
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)"$`, test.iSendARequestTo)
	ctx.When(`^I send a "([^"]*)" request to "([^"]*)" with body:$`, test.iSendARequestToWithBody)
	ctx.When(`^I send (\d+) "([^"]*)" requests to "([^"]*)" with body:$`, test.iSendRequestsToWithBody)

	// Response assertion steps
	ctx.Then(`^the response status should be (\d+)$`, test.theResponseStatusShouldBe)
	ctx.Then(`^the response should be JSON$`, test.theResponseShouldBeJSON)
	ctx.Then(`^the response should contain "([^"]*)"$`, test.theResponseShouldContain)
	ctx.Then(`^the response field "([^"]*)" should be "([^"]*)"$`, test.theResponseFieldShouldBe)
	ctx.Then(`^the response field "([^"]*)" should exist$`, test.theResponseFieldShouldExist)
	ctx.Then(`^the response field "([^"]*)" should have (\d+) items?$`, test.theResponseFieldShouldHaveItems)
	ctx.Then(`^the response header "([^"]*)" should exist$`, test.theResponseHeaderShouldExist)

	// Database assertion steps
	ctx.Then(`^the db should contain (\d+) objects in the "([^"]*)" table$`, test.theDbShouldContainObjectsInTheTable)
	ctx.Then(`^the db should contain (\d+) objects in "([^"]*)" with the values$`, test.theDbShouldContainObjectsInWithTheValues)
}

func (t *testContext) before() error {
	t.headers = make(map[string]string)
	t.response = nil
	t.accessToken = ""
	t.refreshToken = ""
	t.currentUserID = uuid.Nil
	t.factorIDs = make(map[string]uuid.UUID)
	t.lastID = ""

	// Scenarios share the server; state from the previous one is wiped here.
	if testDB != nil {
		if err := testDB.ClearDB(); err != nil {
			return err
		}
	}
	if emailAPI != nil {
		emailAPI.Reset()
	}
	return mock.ClearRedis(mock.NewRedis())
}

// startServer builds the application once through the production injector,
// backed by SQLite, miniredis and a stubbed email provider.
func (t *testContext) startServer() error {
	var err error
	serverInit.Do(func() {
		testDB = mock.NewDb(tables, map[string]any{
			"users":            &model.UserModel{},
			"refresh_tokens":   &model.RefreshTokenModel{},
			"emission_factors": &model.EmissionFactorModel{},
			"user_inputs":      &model.UserInputModel{},
			"reports":          &model.ReportModel{},
			"email_queue":      &model.EmailQueueModel{},
		})

		emailAPI = mock.NewApiServer()
		emailAPI.Start()

		cfg := testConfig(emailAPI.GetUrl())
		injector, err = dependency.NewInjector(cfg, testDB.DbConn, mock.NewRedis())
		if err != nil {
			return
		}

		server = httptest.NewServer(injector.Router.Setup(cfg.Server.Environment))
	})
	if err != nil {
		return err
	}
	if server == nil {
		return errors.New("test server failed to start in an earlier scenario")
	}

	t.db = testDB
	t.injector = injector
	t.emailAPI = emailAPI
	t.uri = server.URL
	return nil
}

func testConfig(emailBaseURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Environment: "test"},
		JWT: config.JWTConfig{
			Secret:             testJWTSecret,
			AccessTokenExpiry:  15 * time.Minute,
			RefreshTokenExpiry: 7 * 24 * time.Hour,
		},
		Security: config.SecurityConfig{BcryptCost: 4},
		RateLimit: config.RateLimitConfig{
			Enabled:     true,
			MaxAttempts: testLoginAttempts,
			Window:      15 * time.Minute,
		},
		Email: config.EmailConfig{
			ResendAPIKey:  "re_test",
			ResendBaseURL: emailBaseURL,
			FromName:      "Carbon Tracker",
			FromEmail:     "reports@carbon-tracker.test",
			AppBaseURL:    "http://app.carbon-tracker.test",
			WorkerEnabled: true,
			PollInterval:  time.Second,
			BatchSize:     10,
			RetentionDays: 30,
		},
	}
}

func (t *testContext) theAPIServerIsRunning() error {
	return t.startServer()
}
