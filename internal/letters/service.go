package letters

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/taiwoajasa245/memories-api/internal/collection"
	"github.com/taiwoajasa245/memories-api/pkg/date"
)

var (
	ErrUnknownParticipant = errors.New("unknown participant")
	ErrEmptyMessage       = errors.New("message is required")
	ErrRevealDateRequired = errors.New("revealDate is required unless revealImmediately is set")
	ErrDuplicateID        = errors.New("duplicate letter id")
	ErrMissingID          = errors.New("letter id is required")
)

type Service struct {
	repo         Repository
	participants []string
	loc          *time.Location
	notifier     Notifier
	log          zerolog.Logger
	now          func() time.Time
	mu           sync.Mutex
}

// NewService builds the letters service. loc decides which calendar day is
// "today"; notifier may be nil.
func NewService(repo Repository, participants []string, loc *time.Location, notifier Notifier, log zerolog.Logger) *Service {
	if loc == nil {
		loc = time.UTC
	}
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{
		repo:         repo,
		participants: participants,
		loc:          loc,
		notifier:     notifier,
		log:          log.With().Str("service", "letters").Logger(),
		now:          time.Now,
	}
}

func (s *Service) today() date.Date {
	return date.Of(s.now(), s.loc)
}

// List loads the letters and reveals the due ones. The collection is only
// written back when something opened.
func (s *Service) List(ctx context.Context) ([]Letter, error) {
	letters, _, err := s.revealPending(ctx)
	return letters, err
}

func (s *Service) Board(ctx context.Context) (Board, error) {
	letters, err := s.List(ctx)
	if err != nil {
		return Board{}, err
	}
	return Arrange(letters), nil
}

// RevealPending reveals due letters and reports how many opened.
func (s *Service) RevealPending(ctx context.Context) (int, error) {
	_, opened, err := s.revealPending(ctx)
	return opened, err
}

func (s *Service) revealPending(ctx context.Context) ([]Letter, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, 0, err
	}
	next, opened := RevealDue(current, s.today())
	if len(opened) == 0 {
		return current, 0, nil
	}
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return nil, 0, err
	}
	s.announce(ctx, opened)
	return next, len(opened), nil
}

// Create seals (or immediately reveals) a new letter.
func (s *Service) Create(ctx context.Context, req LetterRequest) ([]Letter, Letter, error) {
	letter, err := s.newLetter(req)
	if err != nil {
		return nil, Letter{}, err
	}

	var created Letter
	letters, err := s.mutate(ctx, func(ls []Letter) ([]Letter, error) {
		out, l := collection.Create(ls, s.now(), func(id string) Letter {
			letter.ID = id
			return letter
		})
		created = l
		return out, nil
	})
	if err != nil {
		return nil, Letter{}, err
	}
	if found, ok := collection.Find(letters, created.ID); ok {
		created = found
	}
	s.log.Info().Str("id", created.ID).Bool("revealed", created.Revealed).Msg("letter written")
	return letters, created, nil
}

// Update applies patch to one letter. Turning on revealImmediately opens
// the letter and drops its date; turning it off needs a reveal date but
// never seals an opened letter again.
func (s *Service) Update(ctx context.Context, id string, patch LetterPatch) ([]Letter, error) {
	return s.mutate(ctx, func(ls []Letter) ([]Letter, error) {
		existing, ok := collection.Find(ls, id)
		if !ok {
			return ls, nil
		}
		updated, err := s.applyPatch(existing, patch)
		if err != nil {
			return nil, err
		}
		return collection.Update(ls, id, func(Letter) Letter { return updated }), nil
	})
}

func (s *Service) RevealNow(ctx context.Context, id string) ([]Letter, error) {
	return s.mutate(ctx, func(ls []Letter) ([]Letter, error) {
		return RevealNow(ls, id), nil
	})
}

func (s *Service) Delete(ctx context.Context, id string) ([]Letter, error) {
	return s.mutate(ctx, func(ls []Letter) ([]Letter, error) {
		return collection.Delete(ls, id), nil
	})
}

// Replace overwrites the whole collection. Letters written with
// revealImmediately are forced open.
func (s *Service) Replace(ctx context.Context, letters []Letter) ([]Letter, error) {
	next := make([]Letter, 0, len(letters))
	for _, l := range letters {
		if strings.TrimSpace(l.ID) == "" {
			return nil, ErrMissingID
		}
		if !hasDate(l.RevealDate) {
			l.RevealDate = nil
		}
		if l.RevealImmediately {
			l.Revealed = true
			l.RevealDate = nil
		}
		if err := s.validate(l); err != nil {
			return nil, fmt.Errorf("letter %s: %w", l.ID, err)
		}
		next = append(next, l)
	}
	if id, dup := collection.Duplicate(next); dup {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateID, id)
	}
	return s.mutate(ctx, func([]Letter) ([]Letter, error) { return next, nil })
}

// mutate runs fn under the lock, applies the reveal rule to its result and
// saves the whole collection.
func (s *Service) mutate(ctx context.Context, fn func([]Letter) ([]Letter, error)) ([]Letter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}
	next, err := fn(current)
	if err != nil {
		return nil, err
	}
	next, opened := RevealDue(next, s.today())
	if err := s.repo.Save(ctx, next); err != nil {
		s.log.Error().Err(err).Msg("save failed")
		return nil, err
	}
	s.announce(ctx, opened)
	return next, nil
}

func (s *Service) announce(ctx context.Context, opened []Letter) {
	for _, l := range opened {
		s.log.Info().Str("id", l.ID).Str("to", l.To).Msg("letter revealed")
		s.notifier.LetterRevealed(ctx, l)
	}
}

func (s *Service) newLetter(req LetterRequest) (Letter, error) {
	immediately := true
	if req.RevealImmediately != nil {
		immediately = *req.RevealImmediately
	}

	l := Letter{
		From:              strings.TrimSpace(req.From),
		To:                strings.TrimSpace(req.To),
		Message:           req.Message,
		DateWritten:       s.today(),
		RevealImmediately: immediately,
	}
	if hasDate(req.DateWritten) {
		l.DateWritten = *req.DateWritten
	}
	if immediately {
		l.Revealed = true
	} else if hasDate(req.RevealDate) {
		d := *req.RevealDate
		l.RevealDate = &d
	}
	return l, s.validate(l)
}

func (s *Service) applyPatch(l Letter, patch LetterPatch) (Letter, error) {
	if patch.From != nil {
		l.From = strings.TrimSpace(*patch.From)
	}
	if patch.To != nil {
		l.To = strings.TrimSpace(*patch.To)
	}
	if patch.Message != nil {
		l.Message = *patch.Message
	}
	if hasDate(patch.DateWritten) {
		l.DateWritten = *patch.DateWritten
	}
	if patch.RevealImmediately != nil {
		l.RevealImmediately = *patch.RevealImmediately
	}

	if l.RevealImmediately {
		l.RevealDate = nil
		l.Revealed = true
	} else if patch.RevealDate != nil {
		l.RevealDate = nil
		if hasDate(patch.RevealDate) {
			d := *patch.RevealDate
			l.RevealDate = &d
		}
	}
	return l, s.validate(l)
}

func (s *Service) validate(l Letter) error {
	if !slices.Contains(s.participants, l.From) {
		return fmt.Errorf("%w: from %q", ErrUnknownParticipant, l.From)
	}
	if !slices.Contains(s.participants, l.To) {
		return fmt.Errorf("%w: to %q", ErrUnknownParticipant, l.To)
	}
	if collection.Blank(l.Message) {
		return ErrEmptyMessage
	}
	if !l.RevealImmediately && !hasDate(l.RevealDate) {
		return ErrRevealDateRequired
	}
	return nil
}
