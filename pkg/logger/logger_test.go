// SPDX-FileCopyrightText: Copyright 2025 Stacklok, Inc.
// SPDX-License-Identifier: Apache-2.0

package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/stacklok/toolhive-core/env/mocks"
	"github.com/stacklok/toolhive-core/logging"
)

func TestUnstructuredLogsCheck(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		envValue string
		expected bool
	}{
		{"Default Case", "", true},
		{"Explicitly True", "true", true},
		{"Explicitly False", "false", false},
		{"Invalid Value", "not-a-bool", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctrl := gomock.NewController(t)

			mockEnv := mocks.NewMockReader(ctrl)
			mockEnv.EXPECT().Getenv(UnstructuredLogsEnv).Return(tt.envValue)

			assert.Equal(t, tt.expected, unstructuredLogsWithEnv(mockEnv))
		})
	}
}

func captureForTest(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := singleton.Load()
	singleton.Store(logging.New(
		logging.WithOutput(&buf),
		logging.WithLevel(slog.LevelDebug),
	))
	t.Cleanup(func() { singleton.Store(prev) })
	return &buf
}

func TestLogLevels(t *testing.T) { //nolint:paralleltest // mutates singleton
	tests := []struct {
		name     string
		logFn    func()
		contains string
	}{
		{"Debugw", func() { Debugw("debug kv", "key", "val") }, "debug kv"},
		{"Debugf", func() { Debugf("debug %s", "formatted") }, "debug formatted"},
		{"Info", func() { Info("info msg") }, "info msg"},
		{"Infow", func() { Infow("info kv", "key", "val") }, "info kv"},
		{"Infof", func() { Infof("info %s", "formatted") }, "info formatted"},
		{"Warn", func() { Warn("warn msg") }, "warn msg"},
		{"Warnw", func() { Warnw("warn kv", "key", "val") }, "warn kv"},
		{"Error", func() { Error("error msg") }, "error msg"},
		{"Errorw", func() { Errorw("error kv", "key", "val") }, "error kv"},
		{"Errorf", func() { Errorf("error %s", "formatted") }, "error formatted"},
	}

	for _, tc := range tests { //nolint:paralleltest // mutates singleton
		t.Run(tc.name, func(t *testing.T) {
			buf := captureForTest(t)

			tc.logFn()

			assert.Contains(t, buf.String(), tc.contains)
		})
	}
}

func TestNewLogr(t *testing.T) { //nolint:paralleltest // mutates singleton
	buf := captureForTest(t)

	NewLogr().Info("logr test message")

	assert.Contains(t, buf.String(), "logr test message")
}

func TestGetAndSet(t *testing.T) { //nolint:paralleltest // mutates singleton
	buf := captureForTest(t)

	got := Get()
	require.NotNil(t, got)
	got.Info("get test")
	assert.Contains(t, buf.String(), "get test")

	var other bytes.Buffer
	Set(logging.New(logging.WithOutput(&other)))
	Info("after set")
	assert.Contains(t, other.String(), "after set")
	assert.NotContains(t, buf.String(), "after set")
}

func TestInitializeWithEnv(t *testing.T) { //nolint:paralleltest // mutates singleton
	for _, value := range []string{"", "true", "false"} { //nolint:paralleltest // mutates singleton
		t.Run("UNSTRUCTURED_LOGS="+value, func(t *testing.T) {
			prev := singleton.Load()
			t.Cleanup(func() { singleton.Store(prev) })

			ctrl := gomock.NewController(t)
			mockEnv := mocks.NewMockReader(ctrl)
			mockEnv.EXPECT().Getenv(UnstructuredLogsEnv).Return(value)

			InitializeWithEnv(mockEnv)

			require.NotNil(t, singleton.Load())
			singleton.Load().Info("test after initialize")
		})
	}
}
