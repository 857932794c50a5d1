package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadTestConfig_Validate(t *testing.T) {
	valid := LoadTestConfig{
		BaseURL:         "http://localhost:8080",
		NumUsers:        2,
		NumFilms:        1,
		ConcurrentUsers: 1,
		RequestsPerUser: 1,
	}
	assert.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *LoadTestConfig)
	}{
		{"single user", func(c *LoadTestConfig) { c.NumUsers = 1 }},
		{"no films", func(c *LoadTestConfig) { c.NumFilms = 0 }},
		{"negative concurrency", func(c *LoadTestConfig) { c.ConcurrentUsers = -3 }},
		{"zero concurrency", func(c *LoadTestConfig) { c.ConcurrentUsers = 0 }},
		{"zero requests", func(c *LoadTestConfig) { c.RequestsPerUser = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
