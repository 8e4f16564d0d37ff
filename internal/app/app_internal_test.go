package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricsNamespace(t *testing.T) {
	cases := map[string]string{
		"chatapp-backend": "chatapp_backend",
		"1chat":           "_1chat",
		"9":               "_9",
		"chat.app v2":     "chat_app_v2",
		"":                "",
	}
	for in, want := range cases {
		assert.Equal(t, want, metricsNamespace(in), in)
	}
}
