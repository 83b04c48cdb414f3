package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/gcsim/internal/app"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		args           []string
		expectExit     bool
		expectErr      string
		expectedConfig *app.Config
		expectedOutput string
	}{
		{
			name: "Happy path with all flags",
			args: []string{
				"-scenario", "/test/heap",
				"--strategy=MarkBits",
				"--log-level=debug",
				"--log-format=json",
			},
			expectedConfig: &app.Config{
				ScenarioPath: "/test/heap",
				Strategy:     "markbits",
				LogLevel:     "debug",
				LogFormat:    "json",
			},
		},
		{
			name: "Shorthand flag and defaults",
			args: []string{"-s", "/short/path"},
			expectedConfig: &app.Config{
				ScenarioPath: "/short/path",
				Strategy:     "markset",
				LogLevel:     "info",
				LogFormat:    "text",
			},
		},
		{
			name: "Positional argument for path",
			args: []string{"/positional/path.hcl"},
			expectedConfig: &app.Config{
				ScenarioPath: "/positional/path.hcl",
				Strategy:     "markset",
				LogLevel:     "info",
				LogFormat:    "text",
			},
		},
		{
			name: "Demo flag",
			args: []string{"-demo"},
			expectedConfig: &app.Config{
				Demo:      true,
				Strategy:  "markset",
				LogLevel:  "info",
				LogFormat: "text",
			},
		},
		{
			name:           "Help flag triggers clean exit",
			args:           []string{"-h"},
			expectExit:     true,
			expectedOutput: "Usage:",
		},
		{
			name:           "No scenario prints usage",
			args:           []string{},
			expectExit:     true,
			expectedOutput: "gcsim -demo [options]",
		},
		{
			name:      "Unknown flag",
			args:      []string{"--workers=4"},
			expectErr: "flag provided but not defined: -workers",
		},
		{
			name:      "Invalid log format",
			args:      []string{"--log-format=xml", "x.hcl"},
			expectErr: "invalid log-format",
		},
		{
			name:      "Invalid log level",
			args:      []string{"--log-level=trace", "x.hcl"},
			expectErr: "invalid log-level",
		},
		{
			name:      "Invalid strategy",
			args:      []string{"--strategy=refcount", "x.hcl"},
			expectErr: "unknown mark strategy",
		},
		{
			name:      "Demo and path together",
			args:      []string{"-demo", "x.hcl"},
			expectErr: "mutually exclusive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			out := &bytes.Buffer{}

			cfg, shouldExit, err := Parse(tc.args, out)

			if tc.expectErr != "" {
				require.Error(t, err)
				var exitErr *ExitError
				require.True(t, errors.As(err, &exitErr), "error should be an *ExitError")
				require.Equal(t, 2, exitErr.Code)
				require.Contains(t, err.Error(), tc.expectErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.expectExit, shouldExit)
			if tc.expectedOutput != "" {
				require.Contains(t, out.String(), tc.expectedOutput)
			}
			if diff := cmp.Diff(tc.expectedConfig, cfg); diff != "" {
				t.Errorf("config mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
