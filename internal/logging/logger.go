package logging

import (
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"
)

// Logger writes structured JSON lines, one entry per call.
type Logger struct {
	service  string
	hostname string
	out      io.Writer
	mu       sync.Mutex
}

type entry struct {
	Timestamp string         `json:"timestamp"`
	Level     string         `json:"level"`
	Service   string         `json:"service"`
	Hostname  string         `json:"hostname"`
	RequestID string         `json:"request_id,omitempty"`
	Action    string         `json:"action"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Error     string         `json:"error,omitempty"`
}

func New(service string) *Logger {
	return NewWithOutput(service, os.Stdout)
}

// NewWithOutput writes entries to the given sink instead of stdout.
func NewWithOutput(service string, out io.Writer) *Logger {
	hostname, _ := os.Hostname()
	return &Logger{service: service, hostname: hostname, out: out}
}

func (l *Logger) Info(action, message string, details map[string]any) {
	l.log("INFO", action, message, "", details, nil)
}

func (l *Logger) Error(action, message string, details map[string]any, err error) {
	l.log("ERROR", action, message, "", details, err)
}

// InfoReq logs with an associated request ID.
func (l *Logger) InfoReq(action, message, requestID string, details map[string]any) {
	l.log("INFO", action, message, requestID, details, nil)
}

func (l *Logger) ErrorReq(action, message, requestID string, details map[string]any, err error) {
	l.log("ERROR", action, message, requestID, details, err)
}

func (l *Logger) log(level, action, message, requestID string, details map[string]any, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e := entry{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Level:     level,
		Service:   l.service,
		Hostname:  l.hostname,
		RequestID: requestID,
		Action:    action,
		Message:   message,
		Details:   details,
	}
	if err != nil {
		e.Error = err.Error()
	}

	_ = json.NewEncoder(l.out).Encode(e)
}
