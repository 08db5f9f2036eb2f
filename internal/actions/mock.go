package actions

import "sync"

// MockPlatform implements Platform for testing.
type MockPlatform struct {
	mu sync.Mutex

	// Env is the step environment. ExportVariable writes here too.
	Env map[string]string

	// Paths records AddPath calls in order.
	Paths []string

	// Outputs records the latest value of each step output.
	Outputs map[string]string

	// Exported records ExportVariable calls in order.
	Exported []Variable

	// Failures records Fail messages.
	Failures []string

	Debug bool
}

// Variable is one exported name/value pair.
type Variable struct {
	Name  string
	Value string
}

// NewMockPlatform creates an empty MockPlatform.
func NewMockPlatform() *MockPlatform {
	return &MockPlatform{
		Env:     make(map[string]string),
		Outputs: make(map[string]string),
	}
}

func (m *MockPlatform) Getenv(key string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Env[key]
}

func (m *MockPlatform) AddPath(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Paths = append(m.Paths, dir)
}

func (m *MockPlatform) SetOutput(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Outputs[name] = value
}

func (m *MockPlatform) ExportVariable(name, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Env[name] = value
	m.Exported = append(m.Exported, Variable{Name: name, Value: value})
}

func (m *MockPlatform) IsDebug() bool {
	return m.Debug
}

func (m *MockPlatform) Fail(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Failures = append(m.Failures, msg)
}
