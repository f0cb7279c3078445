package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"noter/internal/logs"
	"noter/internal/storage"
)

// MaxSwimlanes is the largest divider count; n dividers make n+1 lanes
const MaxSwimlanes = 5

var defaultLabels = map[int][]string{
	1: {"In Progress", "Ready"},
	2: {"Backlog", "In Progress", "Ready"},
	3: {"Backlog", "To Do", "In Progress", "Ready"},
	4: {"Backlog", "To Do", "In Progress", "Review", "Ready"},
	5: {"Backlog", "To Do", "In Progress", "Review", "Testing", "Ready"},
}

// Prefs are the board's display preferences
type Prefs struct {
	DarkMode       bool
	SwimlanesCount int
	Labels         map[int][]string // custom labels keyed by swimlane count
}

// LaneLabels returns the labels of the current lane layout, custom ones
// first, then the defaults
func (p Prefs) LaneLabels() []string {
	if p.SwimlanesCount == 0 {
		return nil
	}
	if labels, ok := p.Labels[p.SwimlanesCount]; ok {
		return append([]string(nil), labels...)
	}
	return append([]string(nil), defaultLabels[p.SwimlanesCount]...)
}

func (p Prefs) clone() Prefs {
	out := p
	out.Labels = make(map[int][]string, len(p.Labels))
	for k, v := range p.Labels {
		out.Labels[k] = append([]string(nil), v...)
	}
	return out
}

// Observer is called with the new preferences after every change
type Observer func(Prefs)

// Manager loads, saves and broadcasts preferences
type Manager struct {
	store     storage.Store
	prefs     Prefs
	observers map[int]Observer
	nextID    int
}

// Load reads preferences from s. Unreadable values fall back to defaults.
func Load(ctx context.Context, s storage.Store) (*Manager, error) {
	m := &Manager{
		store:     s,
		prefs:     Prefs{Labels: map[int][]string{}},
		observers: make(map[int]Observer),
	}

	if v, ok, err := s.Get(ctx, storage.KeyDarkMode); err != nil {
		return nil, err
	} else if ok {
		m.prefs.DarkMode = v == "true"
	}

	if v, ok, err := s.Get(ctx, storage.KeySwimlanesCount); err != nil {
		return nil, err
	} else if ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err == nil && n >= 0 && n <= MaxSwimlanes {
			m.prefs.SwimlanesCount = n
		}
	}

	if v, ok, err := s.Get(ctx, storage.KeySwimlaneLabels); err != nil {
		return nil, err
	} else if ok {
		labels, err := decodeLabels(v)
		if err != nil {
			logs.Logger.Printf("Ignoring saved swimlane labels: %v", err)
		} else {
			m.prefs.Labels = labels
		}
	}

	return m, nil
}

// Get returns a copy of the current preferences
func (m *Manager) Get() Prefs {
	return m.prefs.clone()
}

// Subscribe registers fn and returns a function that removes it
func (m *Manager) Subscribe(fn Observer) func() {
	m.nextID++
	id := m.nextID
	m.observers[id] = fn
	return func() { delete(m.observers, id) }
}

// SetDarkMode switches the theme
func (m *Manager) SetDarkMode(ctx context.Context, dark bool) error {
	m.prefs.DarkMode = dark
	if err := m.store.Set(ctx, storage.KeyDarkMode, strconv.FormatBool(dark)); err != nil {
		return err
	}
	m.notify()
	return nil
}

// SetSwimlanesCount sets how many lane dividers the board shows
func (m *Manager) SetSwimlanesCount(ctx context.Context, n int) error {
	if n < 0 || n > MaxSwimlanes {
		return fmt.Errorf("swimlanes count %d out of range 0-%d", n, MaxSwimlanes)
	}
	m.prefs.SwimlanesCount = n
	if err := m.store.Set(ctx, storage.KeySwimlanesCount, strconv.Itoa(n)); err != nil {
		return err
	}
	m.notify()
	return nil
}

// CycleSwimlanes steps the divider count 0, 1, ... MaxSwimlanes, 0
func (m *Manager) CycleSwimlanes(ctx context.Context) error {
	return m.SetSwimlanesCount(ctx, (m.prefs.SwimlanesCount+1)%(MaxSwimlanes+1))
}

// SetLaneLabel renames one lane of the current layout. Blank labels are ignored.
func (m *Manager) SetLaneLabel(ctx context.Context, index int, label string) error {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil
	}

	labels := m.prefs.LaneLabels()
	if index < 0 || index >= len(labels) {
		return fmt.Errorf("lane %d out of range", index)
	}
	labels[index] = label
	m.prefs.Labels[m.prefs.SwimlanesCount] = labels

	data, err := encodeLabels(m.prefs.Labels)
	if err != nil {
		return err
	}
	if err := m.store.Set(ctx, storage.KeySwimlaneLabels, data); err != nil {
		return err
	}
	m.notify()
	return nil
}

func (m *Manager) notify() {
	snapshot := m.prefs.clone()
	for _, fn := range m.observers {
		fn(snapshot)
	}
}

// labels are stored as a JSON object keyed by the count as a string
func decodeLabels(raw string) (map[int][]string, error) {
	var byKey map[string][]string
	if err := json.Unmarshal([]byte(raw), &byKey); err != nil {
		return nil, err
	}
	out := make(map[int][]string, len(byKey))
	for k, v := range byKey {
		n, err := strconv.Atoi(k)
		if err != nil {
			return nil, fmt.Errorf("bad swimlane key %q", k)
		}
		out[n] = v
	}
	return out, nil
}

func encodeLabels(labels map[int][]string) (string, error) {
	byKey := make(map[string][]string, len(labels))
	for k, v := range labels {
		byKey[strconv.Itoa(k)] = v
	}
	data, err := json.Marshal(byKey)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
