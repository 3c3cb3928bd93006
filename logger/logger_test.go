package logger

import (
	"bytes"
	"testing"

	"github.com/Scalingo/sclng-profile-readme/config"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestStringToLogrusLogType(t *testing.T) {
	tests := []struct {
		input    string
		expected logrus.Level
	}{
		{input: "error", expected: logrus.ErrorLevel},
		{input: "WARN", expected: logrus.WarnLevel},
		{input: "warning", expected: logrus.WarnLevel},
		{input: "Info", expected: logrus.InfoLevel},
		{input: " debug ", expected: logrus.DebugLevel},
		{input: "verbose", expected: logrus.ErrorLevel},
		{input: "", expected: logrus.ErrorLevel},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, StringToLogrusLogType(tt.input))
		})
	}
}

func TestSetupJSONOutput(t *testing.T) {
	var out bytes.Buffer
	defer logrus.SetOutput(logrus.StandardLogger().Out)

	Setup(config.LogsConfig{Level: "info", OutputLogsAsJSON: true}, &out)
	logrus.WithField("repository", "alice/dotfiles").Info("repository skipped")

	assert.Contains(t, out.String(), `"repository":"alice/dotfiles"`)
	assert.Contains(t, out.String(), `"msg":"repository skipped"`)
	assert.Equal(t, logrus.InfoLevel, logrus.GetLevel())
}
