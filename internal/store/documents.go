package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/nhle/leetcode-tracker/internal/model"
)

// DocumentStore implements Store on top of any Backend. It validates every
// document it reads: invalid records are dropped and unparseable documents
// read as empty, each with a warning.
type DocumentStore struct {
	backend Backend
	logger  *zap.Logger
}

// New wraps a backend.
func New(backend Backend, logger *zap.Logger) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DocumentStore{backend: backend, logger: logger.Named("store")}
}

// Close releases the backend.
func (s *DocumentStore) Close() error {
	return s.backend.Close()
}

// solvedDoc is the on-disk shape of a ledger entry before validation.
type solvedDoc struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Slug       string     `json:"slug"`
	Difficulty string     `json:"difficulty"`
	SolvedAt   *time.Time `json:"solved_at"`
}

// LoadSolved reads the ledger. Duplicate ids keep their first occurrence.
func (s *DocumentStore) LoadSolved(ctx context.Context) ([]model.SolvedRecord, error) {
	var raw []json.RawMessage
	ok, err := s.readDocument(ctx, DocSolved, &raw)
	if err != nil || !ok {
		return []model.SolvedRecord{}, err
	}

	records := make([]model.SolvedRecord, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, item := range raw {
		var d solvedDoc
		if err := json.Unmarshal(item, &d); err != nil {
			s.dropRecord(DocSolved, i, err.Error())
			continue
		}
		rec, reason := d.toRecord()
		if reason != "" {
			s.dropRecord(DocSolved, i, reason)
			continue
		}
		if seen[rec.ID] {
			s.dropRecord(DocSolved, i, "duplicate id "+rec.ID)
			continue
		}
		seen[rec.ID] = true
		records = append(records, rec)
	}
	return records, nil
}

func (d solvedDoc) toRecord() (model.SolvedRecord, string) {
	id := strings.TrimSpace(d.ID)
	if id == "" {
		return model.SolvedRecord{}, "missing id"
	}
	diff, err := model.ParseDifficulty(d.Difficulty)
	if err != nil {
		return model.SolvedRecord{}, err.Error()
	}
	rec := model.SolvedRecord{
		ID:         id,
		Title:      d.Title,
		Slug:       d.Slug,
		Difficulty: diff,
	}
	if d.SolvedAt != nil {
		rec.SolvedAt = d.SolvedAt.UTC()
	}
	return rec, ""
}

// SaveSolved replaces the ledger.
func (s *DocumentStore) SaveSolved(ctx context.Context, records []model.SolvedRecord) error {
	if records == nil {
		records = []model.SolvedRecord{}
	}
	return s.writeDocument(ctx, DocSolved, records)
}

// goalDoc is the on-disk shape of a goal before validation.
type goalDoc struct {
	ID         int        `json:"id"`
	Name       string     `json:"name"`
	Type       string     `json:"type"`
	Target     int        `json:"target"`
	Current    int        `json:"current"`
	Difficulty string     `json:"difficulty"`
	CreatedAt  model.Date `json:"created_at"`
	Deadline   model.Date `json:"deadline"`
	Status     string     `json:"status"`
}

// LoadGoals reads the goal store. Goals with duplicate ids keep their
// first occurrence.
func (s *DocumentStore) LoadGoals(ctx context.Context) ([]model.Goal, error) {
	var raw []json.RawMessage
	ok, err := s.readDocument(ctx, DocGoals, &raw)
	if err != nil || !ok {
		return []model.Goal{}, err
	}

	goals := make([]model.Goal, 0, len(raw))
	seen := make(map[int]bool, len(raw))
	for i, item := range raw {
		var d goalDoc
		if err := json.Unmarshal(item, &d); err != nil {
			s.dropRecord(DocGoals, i, err.Error())
			continue
		}
		g, reason := d.toGoal()
		if reason != "" {
			s.dropRecord(DocGoals, i, reason)
			continue
		}
		if seen[g.ID] {
			s.dropRecord(DocGoals, i, fmt.Sprintf("duplicate id %d", g.ID))
			continue
		}
		seen[g.ID] = true
		goals = append(goals, g)
	}
	return goals, nil
}

func (d goalDoc) toGoal() (model.Goal, string) {
	if d.ID <= 0 {
		return model.Goal{}, "missing id"
	}
	gt := model.GoalType(d.Type)
	if !gt.Valid() {
		return model.Goal{}, fmt.Sprintf("unknown type %q", d.Type)
	}
	if d.Target <= 0 {
		return model.Goal{}, "target must be positive"
	}
	if d.Deadline.IsZero() {
		return model.Goal{}, "missing deadline"
	}

	status := model.GoalStatus(d.Status)
	if d.Status == "" {
		status = model.GoalActive
	}
	if !status.Valid() {
		return model.Goal{}, fmt.Sprintf("unknown status %q", d.Status)
	}

	var diff model.Difficulty
	if d.Difficulty != "" {
		parsed, err := model.ParseDifficulty(d.Difficulty)
		if err != nil {
			return model.Goal{}, err.Error()
		}
		diff = parsed
	}

	name := strings.TrimSpace(d.Name)
	if name == "" {
		name = fmt.Sprintf("%d %s", d.Target, gt.Label())
	}

	current := d.Current
	if current < 0 {
		current = 0
	}

	return model.Goal{
		ID:         d.ID,
		Name:       name,
		Type:       gt,
		Target:     d.Target,
		Current:    current,
		Difficulty: diff,
		CreatedAt:  d.CreatedAt,
		Deadline:   d.Deadline,
		Status:     status,
	}, ""
}

// SaveGoals replaces the goal store.
func (s *DocumentStore) SaveGoals(ctx context.Context, goals []model.Goal) error {
	if goals == nil {
		goals = []model.Goal{}
	}
	return s.writeDocument(ctx, DocGoals, goals)
}

// catalogDoc is the on-disk catalog envelope.
type catalogDoc struct {
	Date     model.Date                 `json:"date"`
	Problems map[string]json.RawMessage `json:"problems"`
}

// LoadCatalog reads the cached catalog, or nil when none is usable.
func (s *DocumentStore) LoadCatalog(ctx context.Context) (*model.CatalogCache, error) {
	var doc catalogDoc
	ok, err := s.readDocument(ctx, DocCatalog, &doc)
	if err != nil || !ok {
		return nil, err
	}
	if doc.Date.IsZero() {
		s.logger.Warn("discarding catalog cache without a date stamp")
		return nil, nil
	}

	cache := &model.CatalogCache{
		FetchedOn: doc.Date,
		Problems:  make(map[string]model.Problem, len(doc.Problems)),
	}
	for key, item := range doc.Problems {
		var p model.Problem
		if err := json.Unmarshal(item, &p); err != nil {
			s.logger.Debug("dropping catalog entry", zap.String("id", key), zap.Error(err))
			continue
		}
		if p.ID == "" {
			p.ID = key
		}
		if !validProblem(p) || p.ID != key {
			s.logger.Debug("dropping invalid catalog entry", zap.String("id", key))
			continue
		}
		cache.Problems[key] = clampAcceptance(p)
	}
	return cache, nil
}

// SaveCatalog replaces the catalog cache.
func (s *DocumentStore) SaveCatalog(ctx context.Context, cache model.CatalogCache) error {
	if cache.Problems == nil {
		cache.Problems = map[string]model.Problem{}
	}
	return s.writeDocument(ctx, DocCatalog, cache)
}

// LoadDaily reads the per-date selection cache. Entries whose key is not a
// date or whose picks do not match their tier are dropped.
func (s *DocumentStore) LoadDaily(ctx context.Context) (model.DailyCache, error) {
	var raw map[string]json.RawMessage
	ok, err := s.readDocument(ctx, DocDaily, &raw)
	if err != nil || !ok {
		return model.DailyCache{}, err
	}

	cache := make(model.DailyCache, len(raw))
	for key, item := range raw {
		date, err := model.ParseDate(key)
		if err != nil {
			s.logger.Warn("dropping daily entry", zap.String("key", key), zap.Error(err))
			continue
		}
		var sel model.DailySelection
		if err := json.Unmarshal(item, &sel); err != nil {
			s.logger.Warn("dropping daily entry", zap.String("key", key), zap.Error(err))
			continue
		}
		if sel.Date.IsZero() {
			sel.Date = date
		}
		if !sel.Date.Equal(date) || !validSelection(sel) {
			s.logger.Warn("dropping inconsistent daily entry", zap.String("key", key))
			continue
		}
		cache[key] = sel
	}
	return cache, nil
}

// SaveDaily replaces the per-date selection cache.
func (s *DocumentStore) SaveDaily(ctx context.Context, cache model.DailyCache) error {
	if cache == nil {
		cache = model.DailyCache{}
	}
	return s.writeDocument(ctx, DocDaily, cache)
}

func validProblem(p model.Problem) bool {
	return strings.TrimSpace(p.ID) != "" && p.Difficulty.Valid()
}

func clampAcceptance(p model.Problem) model.Problem {
	switch {
	case p.AcceptanceRate < 0:
		p.AcceptanceRate = 0
	case p.AcceptanceRate > 100:
		p.AcceptanceRate = 100
	}
	return p
}

func validSelection(sel model.DailySelection) bool {
	for _, d := range model.Difficulties {
		p := sel.Pick(d)
		if p == nil {
			continue
		}
		if !validProblem(*p) || p.Difficulty != d {
			return false
		}
	}
	return true
}

// readDocument loads and decodes a document into v. It reports false when
// the document is absent or corrupt; only backend failures are errors.
func (s *DocumentStore) readDocument(ctx context.Context, doc Document, v any) (bool, error) {
	body, err := s.backend.Read(ctx, doc)
	if err != nil {
		return false, fmt.Errorf("reading %s document: %w", doc, err)
	}
	if len(body) == 0 {
		return false, nil
	}
	if err := json.Unmarshal(body, v); err != nil {
		s.logger.Warn(
			"document is corrupt, starting from empty; its contents will be replaced on next save",
			zap.String("document", string(doc)),
			zap.Error(err),
		)
		return false, nil
	}
	return true, nil
}

func (s *DocumentStore) writeDocument(ctx context.Context, doc Document, v any) error {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding %s document: %w", doc, err)
	}
	if err := s.backend.Write(ctx, doc, body); err != nil {
		return fmt.Errorf("writing %s document: %w", doc, err)
	}
	return nil
}

func (s *DocumentStore) dropRecord(doc Document, index int, reason string) {
	s.logger.Warn(
		"dropping invalid record",
		zap.String("document", string(doc)),
		zap.Int("index", index),
		zap.String("reason", reason),
	)
}
