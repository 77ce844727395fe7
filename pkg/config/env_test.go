package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("CM_TEST_STRING", "  value\n")
	assert.Equal(t, "value", GetEnvString("CM_TEST_STRING", "default"))

	t.Setenv("CM_TEST_STRING", "   ")
	assert.Equal(t, "default", GetEnvString("CM_TEST_STRING", "default"))

	assert.Equal(t, "default", GetEnvString("CM_TEST_STRING_UNSET", "default"))
}

func TestGetEnvInt(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  int
	}{
		{name: "valid", value: "8080", want: 8080},
		{name: "padded", value: " 42 ", want: 42},
		{name: "invalid", value: "abc", want: 5000},
		{name: "trailing junk", value: "12abc", want: 5000},
		{name: "empty", value: "", want: 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CM_TEST_INT", tt.value)
			assert.Equal(t, tt.want, GetEnvInt("CM_TEST_INT", 5000))
		})
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("CM_TEST_BOOL", "true")
	assert.True(t, GetEnvBool("CM_TEST_BOOL", false))

	t.Setenv("CM_TEST_BOOL", "0")
	assert.False(t, GetEnvBool("CM_TEST_BOOL", true))

	t.Setenv("CM_TEST_BOOL", "yes")
	assert.True(t, GetEnvBool("CM_TEST_BOOL", true), "invalid value falls back")
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("CM_TEST_DURATION", "90s")
	assert.Equal(t, 90*time.Second, GetEnvDuration("CM_TEST_DURATION", time.Minute))

	t.Setenv("CM_TEST_DURATION", "ninety")
	assert.Equal(t, time.Minute, GetEnvDuration("CM_TEST_DURATION", time.Minute))
}

func TestGetEnvFloat(t *testing.T) {
	t.Setenv("CM_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, GetEnvFloat("CM_TEST_FLOAT", 1))

	t.Setenv("CM_TEST_FLOAT", "fast")
	assert.Equal(t, 1.0, GetEnvFloat("CM_TEST_FLOAT", 1))
}

func TestGetEnvStringList(t *testing.T) {
	t.Setenv("CM_TEST_LIST", "https://a.example/rss, ,https://b.example/feed ")
	assert.Equal(t, []string{"https://a.example/rss", "https://b.example/feed"}, GetEnvStringList("CM_TEST_LIST", nil))

	t.Setenv("CM_TEST_LIST", " , ")
	assert.Equal(t, []string{"x"}, GetEnvStringList("CM_TEST_LIST", []string{"x"}))
}

func TestValidateDurationRange(t *testing.T) {
	assert.NoError(t, ValidateDurationRange(5*time.Minute, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(0, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(2*time.Hour, time.Second, time.Hour))
	assert.Error(t, ValidateDurationRange(time.Minute, time.Hour, time.Second))
	assert.Error(t, ValidatePositiveDuration(0))
	assert.NoError(t, ValidateNonNegativeDuration(0))
}
