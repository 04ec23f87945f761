// Package errors provides the structured error type used across planwriter
// and a collector for per-target failures during a generation run.
package errors

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// TargetError records a failure while generating one target's output.
type TargetError struct {
	Target    string
	Path      string
	Err       error
	Timestamp time.Time
}

// Error implements the error interface
func (te *TargetError) Error() string {
	if te.Path != "" {
		return fmt.Sprintf("%s (%s): %v", te.Target, te.Path, te.Err)
	}
	return fmt.Sprintf("%s: %v", te.Target, te.Err)
}

// Unwrap returns the underlying error
func (te *TargetError) Unwrap() error {
	return te.Err
}

// Collector gathers target failures from concurrent generators
type Collector struct {
	targetErrors []TargetError
	mutex        sync.RWMutex
}

// NewCollector creates a new error collector
func NewCollector() *Collector {
	return &Collector{
		targetErrors: make([]TargetError, 0),
	}
}

// Add records a failure for target. Nil errors are ignored.
func (c *Collector) Add(target, path string, err error) {
	if err == nil {
		return
	}
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.targetErrors = append(c.targetErrors, TargetError{
		Target:    target,
		Path:      path,
		Err:       err,
		Timestamp: time.Now(),
	})
}

// Errors returns the collected failures sorted by target name
func (c *Collector) Errors() []TargetError {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	result := make([]TargetError, len(c.targetErrors))
	copy(result, c.targetErrors)
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Target < result[j].Target
	})
	return result
}

// HasErrors returns true if any failure was recorded
func (c *Collector) HasErrors() bool {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.targetErrors) > 0
}

// Len returns the number of recorded failures
func (c *Collector) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.targetErrors)
}

// Err folds the collected failures into a single error, or nil.
func (c *Collector) Err() error {
	errs := c.Errors()
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return &errs[0]
	}

	msgs := make([]string, len(errs))
	for i := range errs {
		msgs[i] = errs[i].Error()
	}
	return fmt.Errorf("%d targets failed:\n  %s", len(errs), strings.Join(msgs, "\n  "))
}
