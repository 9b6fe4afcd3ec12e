// Copyright 2022 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// 	https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/empijei/caserun"
)

func TestMain(m *testing.M) {
	newLogger = func(bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	goleak.VerifyTestMain(m)
}

func TestOutputPath(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input, ext, want string
	}{
		{"A-small.in", ".out", "A-small.out"},
		{"dir.v2/A-large.txt", ".out", "dir.v2/A-large.out"},
		{"noext", ".out", "noext.out"},
		{"done.out", ".out", "done.out.out"},
		{"A.in", ".ans", "A.ans"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.input, tt.ext), "input %q", tt.input)
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func readInt(src *caserun.LineSource) (int, error) { return caserun.ReadInt[int](src) }

func double(_ context.Context, n int) (string, error) { return caserun.Answer(2 * n), nil }

// execute runs the command with args and returns the engine it built.
func execute(t *testing.T, args ...string) (*caserun.Engine, error) {
	t.Helper()
	var got *caserun.Engine
	cmd := NewCommand("solve", func(ctx context.Context, e *caserun.Engine) error {
		got = e
		return caserun.Run(ctx, e, readInt, double)
	})
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return got, cmd.Execute()
}

func TestCommandDerivesOutput(t *testing.T) {
	t.Parallel()
	in := writeFile(t, "A.in", "2\n1\n2\n")
	e, err := execute(t, in)
	require.NoError(t, err)
	assert.Equal(t, caserun.Sequential, e.Mode())

	b, err := os.ReadFile(filepath.Join(filepath.Dir(in), "A.out"))
	require.NoError(t, err)
	assert.Equal(t, "Case #1: 2\nCase #2: 4\n", string(b))
}

func TestCommandExplicitOutput(t *testing.T) {
	t.Parallel()
	in := writeFile(t, "A.in", "1\n21\n")
	out := filepath.Join(t.TempDir(), "answers.txt")
	_, err := execute(t, "--parallel", "--workers", "3", in, out)
	require.NoError(t, err)

	b, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Case #1: 42\n", string(b))
}

func TestCommandFlags(t *testing.T) {
	t.Parallel()
	config := writeFile(t, "caserun.yaml", "mode: streaming\nworkers: 7\noutput_ext: .ans\n")
	tests := []struct {
		name        string
		args        []string
		wantMode    caserun.Mode
		wantWorkers int
		wantOutput  string
	}{
		{
			name:        "parallel shorthand",
			args:        []string{"-p", "--workers=2"},
			wantMode:    caserun.Parallel,
			wantWorkers: 2,
			wantOutput:  "A.out",
		},
		{
			name:        "config",
			args:        []string{"--config", config},
			wantMode:    caserun.Streaming,
			wantWorkers: 7,
			wantOutput:  "A.ans",
		},
		{
			name:        "flags override config",
			args:        []string{"--config", config, "--mode=sequential", "--workers=1", "--ext=.res"},
			wantMode:    caserun.Sequential,
			wantWorkers: 1,
			wantOutput:  "A.res",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := writeFile(t, "A.in", "1\n5\n")
			e, err := execute(t, append(tt.args, in)...)
			require.NoError(t, err)
			assert.Equal(t, tt.wantMode, e.Mode())
			assert.Equal(t, tt.wantWorkers, e.Workers())
			assert.FileExists(t, filepath.Join(filepath.Dir(in), tt.wantOutput))
		})
	}
}

func TestCommandErrors(t *testing.T) {
	t.Parallel()
	in := writeFile(t, "A.in", "x\n")
	tests := []struct {
		name string
		args []string
		is   error
	}{
		{name: "no args"},
		{name: "too many args", args: []string{"a", "b", "c"}},
		{name: "unknown mode", args: []string{"--mode=turbo", in}},
		{name: "conflicting modes", args: []string{"--mode=streaming", "--parallel", in}},
		{name: "missing config", args: []string{"--config", in + ".yaml", in}},
		{name: "malformed input", args: []string{in}, is: caserun.ErrFormat},
		{name: "missing input", args: []string{in + ".missing"}, is: caserun.ErrIO},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
