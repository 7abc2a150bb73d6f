package registry

import (
	"strings"
	"sync"
	"unicode"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Command is a voice command registered by a client screen. Action runs
// server-side on dispatch; the matched command itself is returned to the
// client so it can execute the navigation/scroll directive.
type Command struct {
	ID          string
	Screen      string
	Patterns    []string
	Action      func()
	Description string
}

type IRegistry interface {
	Register(cmd Command)
	Unregister(id string)
	UnregisterScreen(screen string)
	Match(utterance string) (Command, bool)
	Dispatch(utterance string) (Command, bool)
	Commands() []Command
	LastExecuted() string
}

type entry struct {
	cmd      Command
	patterns []string // normalized once at registration
}

type commandRegistry struct {
	mu      sync.Mutex
	entries []*entry // registration order, most recent last
	byID    map[string]*entry
	last    string
	log     *logrus.Logger
}

func New(log *logrus.Logger) IRegistry {
	return &commandRegistry{
		byID: make(map[string]*entry),
		log:  log,
	}
}

// Register stores the command keyed by its ID. Re-registering an ID replaces
// the prior entry and makes it the most recent registration, so it wins
// pattern ties from then on.
func (r *commandRegistry) Register(cmd Command) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[cmd.ID]; exists {
		r.removeLocked(cmd.ID)
	}

	normalized := make([]string, 0, len(cmd.Patterns))
	for _, p := range cmd.Patterns {
		if n := Normalize(p); n != "" {
			normalized = append(normalized, n)
		}
	}

	e := &entry{cmd: cmd, patterns: normalized}
	r.entries = append(r.entries, e)
	r.byID[cmd.ID] = e
}

func (r *commandRegistry) Unregister(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.removeLocked(id)
}

func (r *commandRegistry) UnregisterScreen(screen string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.cmd.Screen == screen {
			delete(r.byID, e.cmd.ID)
			continue
		}
		kept = append(kept, e)
	}
	r.entries = kept
}

func (r *commandRegistry) removeLocked(id string) {
	e, ok := r.byID[id]
	if !ok {
		return
	}
	delete(r.byID, id)
	for i, candidate := range r.entries {
		if candidate == e {
			r.entries = append(r.entries[:i], r.entries[i+1:]...)
			return
		}
	}
}

// Match returns the most recently registered command one of whose patterns is
// contained in (or equal to) the normalized utterance. The reverse walk over
// registration order is the tie-break: when screens register overlapping
// patterns, the newest registration wins.
func (r *commandRegistry) Match(utterance string) (Command, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matchLocked(utterance)
}

func (r *commandRegistry) matchLocked(utterance string) (Command, bool) {
	normalized := Normalize(utterance)
	if normalized == "" {
		return Command{}, false
	}

	for i := len(r.entries) - 1; i >= 0; i-- {
		for _, pattern := range r.entries[i].patterns {
			if strings.Contains(normalized, pattern) {
				return r.entries[i].cmd, true
			}
		}
	}

	return Command{}, false
}

// Dispatch matches the utterance and invokes the command's action exactly
// once. A panicking action is recovered and logged; the last-executed
// description still reflects the attempted execution.
func (r *commandRegistry) Dispatch(utterance string) (Command, bool) {
	r.mu.Lock()
	cmd, ok := r.matchLocked(utterance)
	if ok {
		r.last = cmd.Description
	}
	r.mu.Unlock()

	if !ok {
		return Command{}, false
	}

	if cmd.Action != nil {
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					r.log.WithFields(logrus.Fields{
						"command_id": cmd.ID,
						"panic":      rec,
					}).Error("Voice command action panicked")
				}
			}()
			cmd.Action()
		}()
	}

	return cmd, true
}

func (r *commandRegistry) Commands() []Command {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Command, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.cmd)
	}
	return out
}

func (r *commandRegistry) LastExecuted() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

var stripDiacritics = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases, trims, and folds diacritics so "catálogo" and
// "catalogo" match the same pattern.
func Normalize(text string) string {
	lowered := strings.ToLower(strings.TrimSpace(text))
	folded, _, err := transform.String(stripDiacritics, lowered)
	if err != nil {
		return lowered
	}
	return folded
}
