package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := newRootCmd(newViper())
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	err := cmd.ExecuteContext(t.Context())
	return stdout.String(), stderr.String(), err
}

type cliOutput struct {
	Query   string `json:"query" yaml:"query"`
	Results []struct {
		Text       string `json:"text" yaml:"text"`
		TypeName   string `json:"typeName" yaml:"typeName"`
		Resolution struct {
			Values []map[string]string `json:"values" yaml:"values"`
		} `json:"resolution" yaml:"resolution"`
	} `json:"results" yaml:"results"`
}

func TestRecognizeArgs(t *testing.T) {
	stdout, _, err := execute(t, "", "--reference", "2024-06-10T09:00:00Z", "call", "me", "tomorrow", "at", "5pm")
	require.NoError(t, err)

	var out []cliOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out), stdout)
	require.Len(t, out, 1)
	assert.Equal(t, "call me tomorrow at 5pm", out[0].Query)
	require.Len(t, out[0].Results, 1)
	assert.Equal(t, "tomorrow at 5pm", out[0].Results[0].Text)
	assert.Equal(t, "2024-06-11 17:00:00", out[0].Results[0].Resolution.Values[0]["value"])
}

func TestRecognizeStdinYAML(t *testing.T) {
	stdin := "I'm off next week\n\n明天下午3点开会\n"
	stdout, _, err := execute(t, stdin, "--format", "yaml", "--culture", "zh-CN", "--reference", "2024-06-10 09:00")
	require.NoError(t, err)

	var out []cliOutput
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out), stdout)
	require.Len(t, out, 2)
	// English text finds nothing in the Chinese model.
	assert.Empty(t, out[0].Results)
	require.Len(t, out[1].Results, 1)
	assert.Equal(t, "明天下午3点", out[1].Results[0].Text)
	assert.Equal(t, "2024-06-11T15", out[1].Results[0].Resolution.Values[0]["timex"])
}

func TestRecognizeText(t *testing.T) {
	stdout, stderr, err := execute(t, "", "--format", "text", "--stats", "--reference", "2024-06-10", "next", "week")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "0-8\tdaterange\tnext week\t"), stdout)
	assert.Contains(t, stdout, `"timex":"2024-W25"`)
	assert.Contains(t, stderr, "request_total:")
}

func TestRecognizeEnv(t *testing.T) {
	t.Setenv("CHRONOPARSE_CULTURE", "en-gb")
	stdout, _, err := execute(t, "", "--reference", "2024-06-10", "13/5/2024")
	require.NoError(t, err)
	assert.Contains(t, stdout, `"value": "2024-05-13"`)
}

func TestRecognizeErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"format", []string{"--format", "xml", "today"}, "unknown output format"},
		{"reference", []string{"--reference", "soon", "today"}, "invalid --reference"},
		{"culture", []string{"--culture", "fr-fr", "today"}, "unsupported culture"},
		{"options", []string{"--options", "Everything", "today"}, "invalid recognizer options"},
		{"timezone", []string{"--timezone", "Mars/Olympus", "today"}, "timezone"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, "", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
