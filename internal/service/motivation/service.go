// Package motivation picks the deterministic motivational phrase of the day.
package motivation

import (
	"errors"
	"hash/fnv"
	"strings"

	"go.uber.org/zap"

	"github.com/seu-repo/gastro-bi/internal/adapter/storage/csvstore"
	"github.com/seu-repo/gastro-bi/internal/domain"
	"github.com/seu-repo/gastro-bi/internal/ports"
)

// DefaultPhrase is served when no phrase table is available at all.
const DefaultPhrase = "¡Ánimo! Hoy es un gran día para intentarlo."

// ErrNoPhrases means the phrase table exists but holds no rows.
var ErrNoPhrases = errors.New("no phrases available")

type Service struct {
	store ports.DatasetStore
	log   *zap.Logger
}

func NewService(store ports.DatasetStore, log *zap.Logger) *Service {
	return &Service{store: store, log: log}
}

// PhraseOfTheDay picks one phrase row for the given date. Rows are first
// narrowed by lang and tone (case-insensitive); when nothing matches, the
// whole table is eligible. The pick is a stable hash of (date, lang, tone),
// so the same inputs always yield the same phrase.
func (s *Service) PhraseOfTheDay(date, lang, tone string) (domain.Row, error) {
	t, err := s.store.LoadRaw(csvstore.TableMotivation)
	if err != nil {
		return nil, err
	}

	subset := csvstore.Filter(t.Rows,
		csvstore.EqFold("lang", lang),
		csvstore.EqFold("tone", tone),
	)
	if len(subset) == 0 {
		subset = t.Rows
	}
	if len(subset) == 0 {
		return nil, ErrNoPhrases
	}

	idx := phraseIndex(date, lang, tone, len(subset))
	return subset[idx], nil
}

// phraseIndex maps (date, lang, tone) to a stable index in [0, n). FNV-1a
// keeps the pick identical across processes and restarts.
func phraseIndex(date, lang, tone string, n int) int {
	h := fnv.New32a()
	h.Write([]byte(date))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(lang)))
	h.Write([]byte("|"))
	h.Write([]byte(strings.ToLower(tone)))
	return int(h.Sum32() % uint32(n))
}
