package logger

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitWithConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "filmorate.log")
	t.Cleanup(func() { Init(false) })

	require.NoError(t, InitWithConfig("debug", "json", "file", path))
	Debug("film %d liked by user %d", 3, 7)

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(string(raw))), &entry))
	assert.Equal(t, "film 3 liked by user 7", entry["msg"])
	assert.Equal(t, "debug", entry["level"])
}

func TestInitWithConfig_Invalid(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	assert.Error(t, InitWithConfig("loud", "json", "stdout", ""))
	assert.Error(t, InitWithConfig("info", "xml", "stdout", ""))
	assert.Error(t, InitWithConfig("info", "json", "syslog", ""))
	assert.Error(t, InitWithConfig("info", "json", "file", ""))
}

func TestInit_Verbose(t *testing.T) {
	t.Cleanup(func() { Init(false) })

	Init(true)
	assert.Equal(t, logrus.DebugLevel, GetLogger().GetLevel())

	Init(false)
	assert.Equal(t, logrus.InfoLevel, GetLogger().GetLevel())
}
