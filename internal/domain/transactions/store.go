package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/finsight/finsight/pkg/storage"
)

// Categorizer re-derives a category after edits change the description.
type Categorizer interface {
	Categorize(t Type, description string) string
}

var ErrNotFound = errors.New("transaction not found")

const persistedDateLayout = "2006-01-02"

// Store holds the full transaction collection in memory and persists it as
// one JSON document through a storage backend. All mutations run under a
// single mutex and persist before returning.
type Store struct {
	mu      sync.Mutex
	txs     []Transaction
	balance *float64

	backend     storage.DocumentStore
	categorizer Categorizer
	logger      *slog.Logger
	search      *searchIndex

	subscribers map[int]chan struct{}
	nextSubID   int
}

// NewStore builds a store over a storage backend and loads any persisted
// document. A missing document starts the store empty.
func NewStore(ctx context.Context, backend storage.DocumentStore, categorizer Categorizer, logger *slog.Logger) (*Store, error) {
	s := &Store{
		backend:     backend,
		categorizer: categorizer,
		logger:      logger,
		subscribers: make(map[int]chan struct{}),
	}
	idx, err := newSearchIndex()
	if err != nil {
		return nil, fmt.Errorf("creating search index: %w", err)
	}
	s.search = idx
	if err := s.load(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

type persistedTransaction struct {
	ID             uuid.UUID `json:"id"`
	Date           string    `json:"date"`
	Description    string    `json:"description"`
	Amount         float64   `json:"amount"`
	Type           Type      `json:"type"`
	Category       string    `json:"category"`
	Source         Source    `json:"source"`
	OriginalAmount *float64  `json:"originalAmount,omitempty"`
	Confidence     *float64  `json:"confidence,omitempty"`
}

type persistedDocument struct {
	Transactions     []persistedTransaction `json:"transactions"`
	DebitCardBalance *float64               `json:"debitCardBalance,omitempty"`
}

func (s *Store) load(ctx context.Context) error {
	data, err := s.backend.Load(ctx)
	if err != nil {
		return fmt.Errorf("loading transaction document: %w", err)
	}
	if data == nil {
		s.logger.Info("no persisted transactions, starting empty")
		return nil
	}
	var doc persistedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decoding transaction document: %w", err)
	}
	for _, pt := range doc.Transactions {
		date, err := time.Parse(persistedDateLayout, pt.Date)
		if err != nil {
			s.logger.Warn("skipping transaction with bad persisted date", "id", pt.ID, "date", pt.Date)
			continue
		}
		tx := Transaction{
			ID:             pt.ID,
			Date:           date,
			Description:    pt.Description,
			Amount:         pt.Amount,
			Type:           pt.Type,
			Category:       pt.Category,
			Source:         pt.Source,
			OriginalAmount: pt.OriginalAmount,
			Confidence:     pt.Confidence,
		}
		s.txs = append(s.txs, tx)
		if err := s.search.index(tx); err != nil {
			s.logger.Warn("indexing persisted transaction", "id", tx.ID, "error", err)
		}
	}
	s.balance = doc.DebitCardBalance
	s.logger.Info("loaded transactions", "count", len(s.txs))
	return nil
}

// persist writes the current collection. Callers must hold the mutex.
func (s *Store) persist(ctx context.Context) error {
	doc := persistedDocument{
		Transactions:     make([]persistedTransaction, 0, len(s.txs)),
		DebitCardBalance: s.balance,
	}
	for _, tx := range s.txs {
		doc.Transactions = append(doc.Transactions, persistedTransaction{
			ID:             tx.ID,
			Date:           tx.Date.Format(persistedDateLayout),
			Description:    tx.Description,
			Amount:         tx.Amount,
			Type:           tx.Type,
			Category:       tx.Category,
			Source:         tx.Source,
			OriginalAmount: tx.OriginalAmount,
			Confidence:     tx.Confidence,
		})
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding transaction document: %w", err)
	}
	if err := s.backend.Save(ctx, data); err != nil {
		return fmt.Errorf("saving transaction document: %w", err)
	}
	return nil
}

// AddTransactions ingests parsed transactions, dropping relaxed duplicates
// of what the store already holds. It returns how many were added and how
// many were dropped as duplicates.
func (s *Store) AddTransactions(ctx context.Context, incoming []Transaction) (added, duplicates int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, cand := range incoming {
		dup := false
		for _, existing := range s.txs {
			if IsIngestDuplicate(cand, existing) {
				dup = true
				break
			}
		}
		if dup {
			duplicates++
			continue
		}
		s.txs = append(s.txs, cand)
		if err := s.search.index(cand); err != nil {
			s.logger.Warn("indexing transaction", "id", cand.ID, "error", err)
		}
		added++
	}
	if added > 0 {
		if err := s.persist(ctx); err != nil {
			return added, duplicates, err
		}
		s.notify()
	}
	s.logger.Info("ingested transactions", "added", added, "duplicates", duplicates)
	return added, duplicates, nil
}

// AddManual stores a user-entered transaction without duplicate screening.
func (s *Store) AddManual(ctx context.Context, tx Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.txs = append(s.txs, tx)
	if err := s.search.index(tx); err != nil {
		s.logger.Warn("indexing transaction", "id", tx.ID, "error", err)
	}
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// Update describes a partial edit. Nil fields are left unchanged.
type Update struct {
	Date        *time.Time
	Description *string
	Amount      *float64
	Type        *Type
	Category    *string
}

// UpdateTransaction applies a partial edit. When the description or type
// changes without an explicit category, the category is re-derived.
func (s *Store) UpdateTransaction(ctx context.Context, id uuid.UUID, upd Update) (Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.txs {
		if s.txs[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return Transaction{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}

	tx := s.txs[idx]
	recategorize := false
	if upd.Date != nil {
		if upd.Date.IsZero() {
			return Transaction{}, ErrInvalidDate
		}
		tx.Date = *upd.Date
	}
	if upd.Description != nil {
		tx.Description = *upd.Description
		recategorize = true
	}
	if upd.Amount != nil {
		if *upd.Amount <= 0 {
			return Transaction{}, ErrZeroAmount
		}
		tx.Amount = *upd.Amount
		if tx.OriginalAmount != nil {
			// Keep the source sign convention, swap in the new magnitude.
			orig := math.Copysign(*upd.Amount, *tx.OriginalAmount)
			tx.OriginalAmount = &orig
		}
	}
	if upd.Type != nil {
		if *upd.Type != TypeIncome && *upd.Type != TypeExpense {
			return Transaction{}, ErrInvalidType
		}
		tx.Type = *upd.Type
		recategorize = true
	}
	if upd.Category != nil {
		if !ValidCategory(tx.Type, *upd.Category) {
			return Transaction{}, fmt.Errorf("%w: %q is not a %s category", ErrInvalidCategory, *upd.Category, tx.Type)
		}
		tx.Category = *upd.Category
		recategorize = false
	} else if recategorize || !ValidCategory(tx.Type, tx.Category) {
		tx.Category = s.categorizer.Categorize(tx.Type, tx.Description)
	}

	s.txs[idx] = tx
	if err := s.search.index(tx); err != nil {
		s.logger.Warn("re-indexing transaction", "id", tx.ID, "error", err)
	}
	if err := s.persist(ctx); err != nil {
		return Transaction{}, err
	}
	s.notify()
	return tx, nil
}

// DeleteTransaction removes a transaction by id.
func (s *Store) DeleteTransaction(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.txs {
		if s.txs[i].ID == id {
			s.txs = append(s.txs[:i], s.txs[i+1:]...)
			if err := s.search.remove(id); err != nil {
				s.logger.Warn("removing transaction from index", "id", id, "error", err)
			}
			if err := s.persist(ctx); err != nil {
				return err
			}
			s.notify()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrNotFound, id)
}

// All returns the collection ordered newest first.
func (s *Store) All() []Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Transaction, len(s.txs))
	copy(out, s.txs)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// SetDebitCardBalance records the user's reported checking balance.
func (s *Store) SetDebitCardBalance(ctx context.Context, balance float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.balance = &balance
	if err := s.persist(ctx); err != nil {
		return err
	}
	s.notify()
	return nil
}

// DebitCardBalance returns the reported balance, or nil when never set.
func (s *Store) DebitCardBalance() *float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.balance
}

// Subscribe returns a channel that receives a signal after every mutation
// and a function that cancels the subscription.
func (s *Store) Subscribe() (<-chan struct{}, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	ch := make(chan struct{}, 1)
	s.subscribers[id] = ch

	cancel := func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
	return ch, cancel
}

// notify signals all subscribers without blocking. Callers hold the mutex.
func (s *Store) notify() {
	for _, ch := range s.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
