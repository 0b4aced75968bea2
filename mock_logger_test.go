package libemit

import (
	"github.com/stretchr/testify/mock"
)

type mockLogger struct {
	mock.Mock
}

func newMockLogger() *mockLogger {
	m := &mockLogger{}
	m.On("WithField", mock.Anything, mock.Anything).Return(m).Maybe()
	m.On("Debug", mock.Anything).Maybe()
	m.On("Debugf", mock.Anything, mock.Anything).Maybe()
	return m
}

func (m *mockLogger) WithField(key string, value any) Logger {
	args := m.Called(key, value)
	return args.Get(0).(Logger)
}

func (m *mockLogger) Debug(args ...any)                 { m.Called(args) }
func (m *mockLogger) Debugf(format string, args ...any) { m.Called(format, args) }
func (m *mockLogger) Info(args ...any)                  { m.Called(args) }
func (m *mockLogger) Infof(format string, args ...any)  { m.Called(format, args) }
func (m *mockLogger) Warn(args ...any)                  { m.Called(args) }
func (m *mockLogger) Warnf(format string, args ...any)  { m.Called(format, args) }
func (m *mockLogger) Error(args ...any)                 { m.Called(args) }
func (m *mockLogger) Errorf(format string, args ...any) { m.Called(format, args) }
