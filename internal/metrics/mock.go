package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	commands         map[string]int
	rejected         map[string]int
	durations        []float64
	deliveries       map[string]int
	wickets          int
	undos            int
	matchesCompleted int
	notifSent        int
	notifFailed      int
	startupTime      float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		commands:   map[string]int{},
		rejected:   map[string]int{},
		deliveries: map[string]int{},
	}
}

func (m *Mock) IncCommands(command string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.commands[command]++
}

func (m *Mock) IncCommandsRejected(command, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[command+"/"+reason]++
}

func (m *Mock) ObserveCommandDuration(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations = append(m.durations, duration)
}

func (m *Mock) IncDeliveries(kind string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deliveries[kind]++
}

func (m *Mock) IncWickets() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.wickets++
}

func (m *Mock) IncUndos() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.undos++
}

func (m *Mock) IncMatchesCompleted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.matchesCompleted++
}

func (m *Mock) IncNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifSent++
}

func (m *Mock) IncNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// Commands returns how often IncCommands was called for command.
func (m *Mock) Commands(command string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.commands[command]
}

// Rejected returns how often IncCommandsRejected was called with command and reason.
func (m *Mock) Rejected(command, reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejected[command+"/"+reason]
}

// Durations returns every observed command duration.
func (m *Mock) Durations() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.durations...)
}

// Deliveries returns how often IncDeliveries was called for kind.
func (m *Mock) Deliveries(kind string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.deliveries[kind]
}

func (m *Mock) Wickets() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.wickets
}

func (m *Mock) Undos() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.undos
}

func (m *Mock) MatchesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.matchesCompleted
}

// NotifSent returns the number of times IncNotifSent was called.
func (m *Mock) NotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifSent
}

// NotifFailed returns the number of times IncNotifFailed was called.
func (m *Mock) NotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notifFailed
}
