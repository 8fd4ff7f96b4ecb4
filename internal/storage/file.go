package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/yourname/afresh/internal"
)

type FileStorage struct {
	entries      map[string]*internal.LogEntry   // id -> LogEntry
	userLogIndex map[string][]*internal.LogEntry // userID -> entries sorted by date descending
	goals        map[string]*internal.Goal       // userID -> active Goal
	pricing      map[string]*internal.Pricing    // userID -> Pricing
	mu           sync.RWMutex
	logsFile     string
	goalsFile    string
	pricingFile  string
	saveLogs     chan struct{}
	saveGoals    chan struct{}
	savePricing  chan struct{}
	shutdownChan chan struct{}
	wg           sync.WaitGroup
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileStorage(logsFile, goalsFile, pricingFile string, logger internal.Logger) (*FileStorage, error) {
	s := &FileStorage{
		entries:      make(map[string]*internal.LogEntry),
		userLogIndex: make(map[string][]*internal.LogEntry),
		goals:        make(map[string]*internal.Goal),
		pricing:      make(map[string]*internal.Pricing),
		logsFile:     logsFile,
		goalsFile:    goalsFile,
		pricingFile:  pricingFile,
		saveLogs:     make(chan struct{}, 1),
		saveGoals:    make(chan struct{}, 1),
		savePricing:  make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}

	if err := s.loadLogEntries(); err != nil {
		logger.Errorf("storage: failed to load log entries: %v", err)
		return nil, err
	}
	if err := s.loadGoals(); err != nil {
		logger.Errorf("storage: failed to load goals: %v", err)
		return nil, err
	}
	if err := s.loadPricing(); err != nil {
		logger.Errorf("storage: failed to load pricing: %v", err)
		return nil, err
	}

	s.startWorker(s.saveLogs, "log entries", s.saveLogEntries)
	s.startWorker(s.saveGoals, "goals", s.saveGoalsFile)
	s.startWorker(s.savePricing, "pricing", s.savePricingFile)

	return s, nil
}

// readJSONFile decodes path into v. A missing or empty file leaves v untouched.
func readJSONFile(path string, v any) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (s *FileStorage) loadLogEntries() error {
	var entries []*internal.LogEntry
	if err := readJSONFile(s.logsFile, &entries); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range entries {
		s.entries[e.ID] = e
		s.userLogIndex[e.UserID] = append(s.userLogIndex[e.UserID], e)
	}
	for userID := range s.userLogIndex {
		idx := s.userLogIndex[userID]
		sort.SliceStable(idx, func(i, j int) bool { return idx[i].Date > idx[j].Date })
	}
	return nil
}

func (s *FileStorage) loadGoals() error {
	var goals []*internal.Goal
	if err := readJSONFile(s.goalsFile, &goals); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, g := range goals {
		if cur, ok := s.goals[g.UserID]; !ok || g.CreatedAt.After(cur.CreatedAt) {
			s.goals[g.UserID] = g
		}
	}
	return nil
}

func (s *FileStorage) loadPricing() error {
	var prices []*internal.Pricing
	if err := readJSONFile(s.pricingFile, &prices); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range prices {
		s.pricing[p.UserID] = p
	}
	return nil
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

func (s *FileStorage) saveLogEntries() error {
	s.mu.RLock()
	entries := make([]*internal.LogEntry, 0, len(s.entries))
	for _, e := range s.entries {
		entries = append(entries, e)
	}
	s.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return atomicWriteFileJSON(s.logsFile, entries)
}

func (s *FileStorage) saveGoalsFile() error {
	s.mu.RLock()
	goals := make([]*internal.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		goals = append(goals, g)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.goalsFile, goals)
}

func (s *FileStorage) savePricingFile() error {
	s.mu.RLock()
	prices := make([]*internal.Pricing, 0, len(s.pricing))
	for _, p := range s.pricing {
		prices = append(prices, p)
	}
	s.mu.RUnlock()

	return atomicWriteFileJSON(s.pricingFile, prices)
}

// startWorker debounces save signals on ch: a write happens saveDelay after
// the last signal.
func (s *FileStorage) startWorker(ch <-chan struct{}, what string, save func() error) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		timer := time.NewTimer(s.saveDelay)
		timer.Stop()
		for {
			select {
			case <-ch:
				timer.Reset(s.saveDelay)
			case <-timer.C:
				if err := save(); err != nil {
					s.logger.Errorf("storage: error saving %s: %v", what, err)
				}
			case <-s.shutdownChan:
				timer.Stop()
				return
			}
		}
	}()
}

func signal(ch chan struct{}) {
	select {
	case ch <- struct{}{}:
	default:
	}
}

// Close stops the workers and flushes everything synchronously.
func (s *FileStorage) Close() error {
	close(s.shutdownChan)
	s.wg.Wait()

	if err := s.saveLogEntries(); err != nil {
		return err
	}
	if err := s.saveGoalsFile(); err != nil {
		return err
	}
	return s.savePricingFile()
}

// --- LogRepository ---
func (s *FileStorage) SaveLogEntry(ctx context.Context, entry *internal.LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[entry.ID] = entry
	logs := s.userLogIndex[entry.UserID]
	i := sort.Search(len(logs), func(i int) bool { return logs[i].Date < entry.Date })
	logs = append(logs, nil)
	copy(logs[i+1:], logs[i:])
	logs[i] = entry
	s.userLogIndex[entry.UserID] = logs

	signal(s.saveLogs)
	return nil
}

func (s *FileStorage) ListLogEntries(ctx context.Context, userID, since string) ([]internal.LogEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.userLogIndex[userID]
	out := make([]internal.LogEntry, 0, len(idx))
	for _, e := range idx {
		if e.Date < since {
			break
		}
		out = append(out, *e)
	}
	return out, nil
}

// --- GoalRepository ---
func (s *FileStorage) SetGoal(ctx context.Context, goal *internal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[goal.UserID] = goal
	signal(s.saveGoals)
	return nil
}

func (s *FileStorage) GetGoal(ctx context.Context, userID string) (*internal.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[userID]
	if !ok {
		return nil, fmt.Errorf("storage: goal for %s: %w", userID, internal.ErrNotFound)
	}
	cp := *g
	return &cp, nil
}

// --- PricingRepository ---
func (s *FileStorage) SetPricing(ctx context.Context, pricing *internal.Pricing) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pricing[pricing.UserID] = pricing
	signal(s.savePricing)
	return nil
}

func (s *FileStorage) GetPricing(ctx context.Context, userID string) (*internal.Pricing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pricing[userID]
	if !ok {
		return nil, fmt.Errorf("storage: pricing for %s: %w", userID, internal.ErrNotFound)
	}
	cp := *p
	cp.Costs = maps.Clone(p.Costs)
	return &cp, nil
}

// --- Compile-time assertions ---
var _ LogRepository = (*FileStorage)(nil)
var _ GoalRepository = (*FileStorage)(nil)
var _ PricingRepository = (*FileStorage)(nil)
