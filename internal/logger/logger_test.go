package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("warn", &buf)

	log.Debugf("dropped %s", "debug")
	log.Infof("dropped %s", "info")
	log.Warnf("kept %s", "warn")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept warn")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("nonsense", &buf)

	log.Debugf("hidden")
	log.Infof("visible")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "visible")
}

func TestWithFieldCarriesKey(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("info", &buf)

	log.WithField("requestId", "abc-123").Infof("handled")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "abc-123", line["requestId"])
	assert.Equal(t, "handled", line["msg"])
}
