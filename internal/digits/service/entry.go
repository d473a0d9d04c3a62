package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/digits/internal/digits/domain"
	"github.com/aussiebroadwan/digits/internal/digits/store"
	"github.com/aussiebroadwan/digits/pkg/cryptox"
	"github.com/aussiebroadwan/digits/pkg/jwtx"
	"github.com/aussiebroadwan/digits/pkg/slogx"
	"github.com/google/uuid"
)

const (
	// ListLimit is how many entries List returns.
	ListLimit = 50

	// ChallengeTTL is how long a reveal challenge can be answered.
	ChallengeTTL = 10 * time.Minute

	// CommitDelay is how long the caller should display the pair before committing.
	CommitDelay = 10 * time.Second

	// CommitURL is where the signed payload is posted after the delay.
	CommitURL = "/commit"
)

// CommitSigner issues and checks the token carried between start and commit.
type CommitSigner interface {
	Sign(userNumber, randomNumber string) (string, error)
	Verify(token string) (jwtx.CommitClaims, error)
}

type EntryService struct {
	Store  store.Store
	Signer CommitSigner

	// Now defaults to time.Now.
	Now func() time.Time
}

func (s *EntryService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func requireActor(actor domain.Actor) error {
	if actor.IsZero() {
		return ErrUnauthorized
	}
	return nil
}

// StartDisplay validates the user's number, draws a random partner for it and
// signs both into a short lived commit token. Nothing is stored.
func (s *EntryService) StartDisplay(ctx context.Context, actor domain.Actor, in domain.StartInput) (domain.Display, error) {
	if err := requireActor(actor); err != nil {
		return domain.Display{}, err
	}

	in, err := ValidateStart(in)
	if err != nil {
		return domain.Display{}, err
	}

	random, err := cryptox.RandomString(numberLength, cryptox.Digits)
	if err != nil {
		return domain.Display{}, fmt.Errorf("generate random number: %w", err)
	}

	token, err := s.Signer.Sign(in.UserNumber, random)
	if err != nil {
		return domain.Display{}, fmt.Errorf("sign commit token: %w", err)
	}

	return domain.Display{
		UserNumber:    in.UserNumber,
		RandomNumber:  random,
		SignedPayload: token,
		CommitURL:     CommitURL,
		CommitDelay:   CommitDelay,
	}, nil
}

// Commit verifies the token from StartDisplay and stores a new entry with a
// fresh security string. It returns the new entry id.
func (s *EntryService) Commit(ctx context.Context, actor domain.Actor, signedPayload string) (string, error) {
	if err := requireActor(actor); err != nil {
		return "", err
	}
	if signedPayload == "" {
		return "", ErrMissingToken
	}

	log := slogx.FromContext(ctx)

	claims, err := s.Signer.Verify(signedPayload)
	switch {
	case errors.Is(err, jwtx.ErrExpired):
		log.Info("commit token expired")
		return "", ErrExpiredToken
	case err != nil:
		log.Warn("commit token rejected", slog.Any("error", err))
		return "", ErrInvalidToken
	}

	secret, err := cryptox.RandomString(securityStringLength, cryptox.Alphanumeric)
	if err != nil {
		return "", fmt.Errorf("generate security string: %w", err)
	}

	entry := domain.Entry{
		ID:             uuid.NewString(),
		UserNumber:     claims.UserNumber,
		RandomNumber:   claims.RandomNumber,
		SecurityString: secret,
		CreatedAt:      s.now(),
	}
	if err := s.Store.Entries().CreateEntry(ctx, entry); err != nil {
		return "", fmt.Errorf("create entry: %w", err)
	}

	log.Info("entry committed",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", actor.UserID),
	)
	return entry.ID, nil
}

// List returns the most recent entries, newest first.
func (s *EntryService) List(ctx context.Context, actor domain.Actor) ([]domain.Entry, error) {
	if err := requireActor(actor); err != nil {
		return nil, err
	}
	return s.Store.Entries().ListRecentEntries(ctx, ListLimit)
}

func (s *EntryService) getEntry(ctx context.Context, id string) (domain.Entry, error) {
	e, err := s.Store.Entries().GetEntry(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Entry{}, ErrNotFound
	}
	return e, err
}

// RequestReveal issues a new challenge for an unrevealed entry, replacing any
// pending one. Revealed entries are returned as they are.
func (s *EntryService) RequestReveal(ctx context.Context, actor domain.Actor, id string) (domain.RevealChallenge, error) {
	if err := requireActor(actor); err != nil {
		return domain.RevealChallenge{}, err
	}

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return domain.RevealChallenge{}, err
	}
	if entry.Revealed {
		return domain.RevealChallenge{EntryID: entry.ID, AlreadyRevealed: true, Entry: entry}, nil
	}

	positions, err := newChallenge(securityStringLength)
	if err != nil {
		return domain.RevealChallenge{}, fmt.Errorf("draw challenge: %w", err)
	}

	at := s.now()
	err = s.Store.Entries().UpdateEntryFields(ctx, entry.ID, domain.EntryUpdate{
		Challenge: &domain.ChallengeState{Indices: positions, CreatedAt: &at},
	})
	if errors.Is(err, store.ErrNotFound) {
		return domain.RevealChallenge{}, ErrNotFound
	}
	if err != nil {
		return domain.RevealChallenge{}, fmt.Errorf("store challenge: %w", err)
	}

	slogx.FromContext(ctx).Info("challenge issued",
		slog.String("entry_id", entry.ID),
		slog.String("user_id", actor.UserID),
	)
	return domain.RevealChallenge{EntryID: entry.ID, Positions: positions}, nil
}

// VerifyChallenge checks the answers to the pending challenge. A full match
// marks the entry revealed and returns it; a mismatch leaves everything as it
// was and offers the same positions again.
func (s *EntryService) VerifyChallenge(ctx context.Context, actor domain.Actor, id string, in domain.VerifyInput) (domain.VerifyResult, error) {
	if err := requireActor(actor); err != nil {
		return domain.VerifyResult{}, err
	}

	log := slogx.FromContext(ctx).With(slog.String("entry_id", id))

	entry, err := s.getEntry(ctx, id)
	if err != nil {
		return domain.VerifyResult{}, err
	}
	if !entry.HasChallenge() {
		return domain.VerifyResult{}, ErrNoChallenge
	}

	if entry.ChallengeCreatedAt != nil && s.now().Sub(*entry.ChallengeCreatedAt) > ChallengeTTL {
		err := s.Store.Entries().UpdateEntryFields(ctx, entry.ID, domain.EntryUpdate{
			Challenge: &domain.ChallengeState{},
		})
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return domain.VerifyResult{}, fmt.Errorf("clear challenge: %w", err)
		}
		log.Info("challenge expired")
		return domain.VerifyResult{}, ErrChallengeExpired
	}

	if err := ValidateAnswers(in, len(entry.ChallengeIndices)); err != nil {
		return domain.VerifyResult{}, err
	}

	ok, err := matchChallenge(entry.SecurityString, entry.ChallengeIndices, in.Chars)
	if err != nil {
		log.Error("stored challenge is out of range", slog.Any("positions", entry.ChallengeIndices))
		return domain.VerifyResult{}, err
	}
	if !ok {
		return domain.VerifyResult{Positions: entry.ChallengeIndices}, nil
	}

	revealed := true
	err = s.Store.Entries().UpdateEntryFields(ctx, entry.ID, domain.EntryUpdate{Revealed: &revealed})
	if errors.Is(err, store.ErrNotFound) {
		return domain.VerifyResult{}, ErrNotFound
	}
	if err != nil {
		return domain.VerifyResult{}, fmt.Errorf("mark revealed: %w", err)
	}

	entry.Revealed = true
	log.Info("entry revealed", slog.String("user_id", actor.UserID))
	return domain.VerifyResult{Revealed: true, Entry: entry, Positions: entry.ChallengeIndices}, nil
}

// Delete removes an entry.
func (s *EntryService) Delete(ctx context.Context, actor domain.Actor, id string) error {
	if err := requireActor(actor); err != nil {
		return err
	}

	err := s.Store.Entries().DeleteEntry(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}

	slogx.FromContext(ctx).Info("entry deleted",
		slog.String("entry_id", id),
		slog.String("user_id", actor.UserID),
	)
	return nil
}
