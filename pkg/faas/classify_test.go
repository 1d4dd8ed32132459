package faas_test

import (
	"errors"
	"testing"

	"github.com/fivetwenty-io/faas-client/pkg/faas"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

//nolint:funlen // Test functions can be longer for comprehensive testing
func TestClassify_ErrorStatuses(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		status   int
		body     string
		expected []string
	}{
		{
			name:     "unauthorized",
			status:   401,
			body:     `{"error":"invalid credentials"}`,
			expected: []string{"(401) Unauthorized - invalid credentials"},
		},
		{
			name:     "not found",
			status:   404,
			body:     `{"error":"workspace not found"}`,
			expected: []string{"(404) Not Found - workspace not found"},
		},
		{
			name:     "conflict",
			status:   409,
			body:     `{"error":"name taken"}`,
			expected: []string{"(409) Conflict - name taken"},
		},
		{
			name:     "server error with JSON body",
			status:   500,
			body:     `{"error":"boom"}`,
			expected: []string{"(500) Error"},
		},
		{
			name:     "request timeout",
			status:   408,
			body:     ``,
			expected: []string{"(408) Request Timeout"},
		},
		{
			name:     "limit exceeded",
			status:   402,
			body:     `{"error":"upgrade your plan"}`,
			expected: []string{"(402) Limit Exceeded - upgrade your plan"},
		},
		{
			name:     "error field missing",
			status:   404,
			body:     `{}`,
			expected: []string{"(404) Not Found - "},
		},
		{
			name:     "empty body",
			status:   401,
			body:     ``,
			expected: []string{"(401) Unauthorized - "},
		},
	}

	for _, testCase := range tests {
		testCase := testCase
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			result, err := faas.Classify(testCase.status, []byte(testCase.body))
			require.NoError(t, err)

			failure := faas.AsFailure(result)
			require.NotNil(t, failure)
			assert.Equal(t, testCase.expected, failure.Messages)
			assert.Equal(t, testCase.status, result.StatusCode())
			assert.True(t, result.Failed())
			assert.Nil(t, faas.AsSuccess(result))
		})
	}
}

func TestClassify_ServerErrorSkipsParsing(t *testing.T) {
	t.Parallel()

	for _, body := range []string{"", "<html>Internal Server Error</html>", "{not json"} {
		result, err := faas.Classify(500, []byte(body))
		require.NoError(t, err)
		assert.Equal(t, []string{"(500) Error"}, result.ErrorMessages())
		assert.Equal(t, 500, result.StatusCode())
	}

	result, err := faas.Classify(408, []byte("gateway gave up"))
	require.NoError(t, err)
	assert.Equal(t, []string{"(408) Request Timeout"}, result.ErrorMessages())
}

func TestClassify_UnprocessableEntity(t *testing.T) {
	t.Parallel()

	t.Run("error and errors", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(422, []byte(`{"error":"bad field","errors":["a","b"]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"(422) Unprocessable Entity", "bad field", "a", "b"}, result.ErrorMessages())
		assert.Equal(t, 422, result.StatusCode())
	})

	t.Run("empty object", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(422, []byte(`{}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"(422) Unprocessable Entity"}, result.ErrorMessages())
	})

	t.Run("only errors", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(422, []byte(`{"errors":["name is too short"]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"(422) Unprocessable Entity", "name is too short"}, result.ErrorMessages())
	})

	t.Run("null error is ignored", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(422, []byte(`{"error":null,"errors":[]}`))
		require.NoError(t, err)
		assert.Equal(t, []string{"(422) Unprocessable Entity"}, result.ErrorMessages())
	})
}

func TestClassify_Success(t *testing.T) {
	t.Parallel()

	t.Run("soft errors are surfaced", func(t *testing.T) {
		t.Parallel()

		raw := []byte(`{"errors":["x"]}`)

		result, err := faas.Classify(200, raw)
		require.NoError(t, err)

		success := faas.AsSuccess(result)
		require.NotNil(t, success)
		assert.Equal(t, []string{"x"}, success.Errors)
		assert.Equal(t, map[string]any{"errors": []any{"x"}}, success.Body)
		assert.Equal(t, raw, success.Raw)
		assert.Equal(t, 200, success.Code)
		assert.True(t, success.Failed())
	})

	t.Run("no errors key", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(200, []byte(`{}`))
		require.NoError(t, err)

		success := faas.AsSuccess(result)
		require.NotNil(t, success)
		assert.Equal(t, []string{}, success.Errors)
		assert.Equal(t, map[string]any{}, success.Body)
		assert.False(t, result.Failed())
	})

	t.Run("unlisted error status is passed through", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(403, []byte(`{"error":"forbidden"}`))
		require.NoError(t, err)

		success := faas.AsSuccess(result)
		require.NotNil(t, success)
		assert.Equal(t, 403, success.Code)
		assert.Empty(t, success.Errors)
	})

	t.Run("empty body", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(204, nil)
		require.NoError(t, err)

		success := faas.AsSuccess(result)
		require.NotNil(t, success)
		assert.Nil(t, success.Body)
		assert.Equal(t, []string{}, success.Errors)
	})

	t.Run("redirect status without follow is a success", func(t *testing.T) {
		t.Parallel()

		result, err := faas.Classify(302, []byte(`{}`))
		require.NoError(t, err)
		assert.NotNil(t, faas.AsSuccess(result))
	})
}

func TestClassify_ProtocolError(t *testing.T) {
	t.Parallel()

	raw := []byte("<html>Bad Gateway</html>")

	result, err := faas.Classify(502, raw)
	require.Error(t, err)
	assert.Nil(t, result)
	assert.True(t, faas.IsProtocolError(err))

	protoErr := &faas.ProtocolError{}
	require.True(t, errors.As(err, &protoErr))
	assert.Equal(t, 502, protoErr.StatusCode)
	assert.Equal(t, raw, protoErr.Body)
	assert.Contains(t, err.Error(), "status 502")
}
