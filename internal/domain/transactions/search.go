package transactions

import (
	"fmt"

	"github.com/blevesearch/bleve/v2"
	"github.com/google/uuid"
)

// searchIndex wraps an in-memory full-text index over descriptions so users
// can find transactions without remembering a merchant's exact OCR spelling.
type searchIndex struct {
	idx bleve.Index
}

type indexedTransaction struct {
	Description string `json:"description"`
	Category    string `json:"category"`
}

func newSearchIndex() (*searchIndex, error) {
	mapping := bleve.NewIndexMapping()
	idx, err := bleve.NewMemOnly(mapping)
	if err != nil {
		return nil, err
	}
	return &searchIndex{idx: idx}, nil
}

func (s *searchIndex) index(tx Transaction) error {
	return s.idx.Index(tx.ID.String(), indexedTransaction{
		Description: tx.Description,
		Category:    tx.Category,
	})
}

func (s *searchIndex) remove(id uuid.UUID) error {
	return s.idx.Delete(id.String())
}

func (s *searchIndex) query(q string, limit int) ([]uuid.UUID, error) {
	match := bleve.NewMatchQuery(q)
	match.SetFuzziness(1)
	req := bleve.NewSearchRequestOptions(match, limit, 0, false)
	res, err := s.idx.Search(req)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := uuid.Parse(hit.ID)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Search finds transactions whose description or category matches the query,
// tolerating one character of fuzziness, ranked by relevance.
func (s *Store) Search(query string, limit int) ([]Transaction, error) {
	if limit <= 0 {
		limit = 50
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	ids, err := s.search.query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("searching transactions: %w", err)
	}
	byID := make(map[uuid.UUID]Transaction, len(s.txs))
	for _, tx := range s.txs {
		byID[tx.ID] = tx
	}
	out := make([]Transaction, 0, len(ids))
	for _, id := range ids {
		if tx, ok := byID[id]; ok {
			out = append(out, tx)
		}
	}
	return out, nil
}
