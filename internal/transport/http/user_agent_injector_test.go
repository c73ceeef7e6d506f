package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/oshokin/lyrics-grabber/internal/utils"
	mock_utils "github.com/oshokin/lyrics-grabber/internal/utils/mocks"
)

// TestNewUserAgentInjector tests the NewUserAgentInjector function.
func TestNewUserAgentInjector(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)

	injector := NewUserAgentInjector(http.DefaultTransport, mockProvider)

	assert.NotNil(t, injector)
	assert.Implements(t, (*http.RoundTripper)(nil), injector)
}

// TestUserAgentInjector_RoundTrip tests header injection for different request shapes.
func TestUserAgentInjector_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		requestHeaders   map[string]string
		providerCalls    int
		expectedAgent    string
		expectedAccept   string
		expectUnmodified bool
	}{
		{
			name:           "no headers",
			providerCalls:  1,
			expectedAgent:  "TestAgent/1.0",
			expectedAccept: "application/json",
		},
		{
			name:           "existing user agent",
			requestHeaders: map[string]string{"User-Agent": "ExistingAgent/1.0"},
			expectedAgent:  "ExistingAgent/1.0",
			expectedAccept: "application/json",
		},
		{
			name:           "empty user agent is replaced",
			requestHeaders: map[string]string{"User-Agent": ""},
			providerCalls:  1,
			expectedAgent:  "TestAgent/1.0",
			expectedAccept: "application/json",
		},
		{
			name: "both headers present",
			requestHeaders: map[string]string{
				"User-Agent": "ExistingAgent/1.0",
				"Accept":     "text/plain",
			},
			expectedAgent:  "ExistingAgent/1.0",
			expectedAccept: "text/plain",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctrl := gomock.NewController(t)
			mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
			mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").Times(tt.providerCalls)

			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, tt.expectedAgent, r.Header.Get("User-Agent"))
				assert.Equal(t, tt.expectedAccept, r.Header.Get("Accept"))
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			injector := NewUserAgentInjector(http.DefaultTransport, mockProvider)

			req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
			require.NoError(t, err)

			for k, v := range tt.requestHeaders {
				req.Header.Set(k, v)
			}

			resp, err := injector.RoundTrip(req)
			require.NoError(t, err)

			defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tt.requestHeaders["Accept"], req.Header.Get("Accept"), "original request must not be modified")
		})
	}
}

// TestUserAgentInjector_RoundTrip_ErrorHandling tests error handling in RoundTrip.
func TestUserAgentInjector_RoundTrip_ErrorHandling(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	mockProvider := mock_utils.NewMockUserAgentProvider(ctrl)
	mockProvider.EXPECT().GetUserAgent().Return("TestAgent/1.0").AnyTimes()

	injector := NewUserAgentInjector(http.DefaultTransport, mockProvider)

	req, err := http.NewRequest(http.MethodGet, "http://[::1]:0", nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req) //nolint:bodyclose // Body is empty on error.
	require.Error(t, err)
	assert.Nil(t, resp)
}

// TestUserAgentInjector_IntegrationWithSimpleUserAgentProvider tests integration with SimpleUserAgentProvider.
func TestUserAgentInjector_IntegrationWithSimpleUserAgentProvider(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	injector := NewUserAgentInjector(http.DefaultTransport, utils.NewSimpleUserAgentProvider(DefaultUserAgent))

	req, err := http.NewRequest(http.MethodGet, server.URL, nil) //nolint:noctx // Test code, context not needed.
	require.NoError(t, err)

	resp, err := injector.RoundTrip(req)
	require.NoError(t, err)

	defer resp.Body.Close() //nolint:errcheck // Test cleanup, error is not critical.

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
