//go:build integration

package integration

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/fivetwenty-io/dwolla-client/internal/logger"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwolla"
	"github.com/fivetwenty-io/dwolla-client/pkg/dwollaclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// SandboxTestSuite runs the client against the Dwolla sandbox.
type SandboxTestSuite struct {
	suite.Suite

	config *TestConfig
	client dwolla.Client
	ctx    context.Context
	cancel context.CancelFunc
}

func (s *SandboxTestSuite) SetupSuite() {
	s.config = LoadTestConfig()
	if !s.config.IsConfigured() {
		s.T().Skip("DWOLLA_CLIENT_ID and DWOLLA_CLIENT_SECRET are required")
	}

	s.ctx, s.cancel = context.WithTimeout(context.Background(), 5*time.Minute)

	clientConfig := &dwolla.Config{
		APIEndpoint:  s.config.APIEndpoint,
		ClientID:     s.config.ClientID,
		ClientSecret: s.config.ClientSecret,
	}

	if s.config.Verbose {
		clientConfig.Debug = true
		clientConfig.Logger = logger.NewAdapter(logger.New(os.Stderr, "debug", logger.FormatConsole))
	}

	client, err := dwollaclient.New(s.ctx, clientConfig)
	require.NoError(s.T(), err)

	s.client = client
}

func (s *SandboxTestSuite) TearDownSuite() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *SandboxTestSuite) TestTokenLifecycle() {
	first, err := s.client.Token(s.ctx)
	s.Require().NoError(err)
	s.True(first.ExpiresAt.After(time.Now()))

	again, err := s.client.Token(s.ctx)
	s.Require().NoError(err)
	s.Equal(first.AccessToken, again.AccessToken)

	refreshed, err := s.client.RefreshToken(s.ctx)
	s.Require().NoError(err)
	s.NotEmpty(refreshed.AccessToken)
}

func (s *SandboxTestSuite) TestRoot() {
	root, err := s.client.GetRoot(s.ctx)
	s.Require().NoError(err)
	s.True(root.Links.Has("customers"))
}

func (s *SandboxTestSuite) TestCustomerWorkflow() {
	location, err := s.client.Customers().Create(s.ctx, &dwolla.CreateCustomerRequest{
		FirstName: "Integration",
		LastName:  "Test",
		Email:     "integration+" + dwolla.NewIdempotencyKey()[:8] + "@example.com",
		Type:      dwolla.CustomerTypeReceiveOnly,
	})
	s.Require().NoError(err)

	customerID, err := dwolla.ParseID(location)
	s.Require().NoError(err)

	customer, err := s.client.Customers().Get(s.ctx, customerID)
	s.Require().NoError(err)
	s.Equal("Integration", customer.FirstName)

	_, err = s.client.Customers().CreateFundingSource(s.ctx, customerID, &dwolla.CreateFundingSourceRequest{
		RoutingNumber:   "222222226",
		AccountNumber:   "123456789",
		BankAccountType: dwolla.BankAccountTypeChecking,
		Name:            "Integration Checking",
	})
	s.Require().NoError(err)

	sources, err := s.client.Customers().ListFundingSources(s.ctx, customerID, false)
	s.Require().NoError(err)
	s.NotEmpty(sources.Items())

	removed, err := s.client.FundingSources().Remove(s.ctx, sources.Items()[0].ID)
	s.Require().NoError(err)
	s.True(removed.Removed)
}

func (s *SandboxTestSuite) TestNotFound() {
	_, err := s.client.Transfers().Get(s.ctx, "00000000-0000-0000-0000-000000000000")
	s.Require().Error(err)
	assert.True(s.T(), dwolla.IsNotFound(err))
	assert.NotEmpty(s.T(), dwolla.RequestID(err))
}

func (s *SandboxTestSuite) TestBusinessClassifications() {
	classifications, err := s.client.BusinessClassifications().List(s.ctx)
	s.Require().NoError(err)
	s.Require().NotEmpty(classifications.Items())

	first := classifications.Items()[0]

	classification, err := s.client.BusinessClassifications().Get(s.ctx, first.ID)
	s.Require().NoError(err)
	s.Equal(first.Name, classification.Name)
}

func TestSandboxTestSuite(t *testing.T) {
	suite.Run(t, new(SandboxTestSuite))
}
