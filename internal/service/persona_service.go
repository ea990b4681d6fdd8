// Package service orchestrates the wallet persona pipeline: fetch, analyze,
// score, and assemble.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/wallet-persona/internal/adapter"
	"github.com/wallet-persona/internal/analysis"
	"github.com/wallet-persona/internal/errors"
	"github.com/wallet-persona/internal/logging"
	"github.com/wallet-persona/internal/models"
	"github.com/wallet-persona/internal/persona"
	"github.com/wallet-persona/internal/storage"
)

// ChainDataFetcher supplies the raw wallet data for an address.
type ChainDataFetcher interface {
	FetchWalletDetails(ctx context.Context, address string) (*models.WalletDetails, error)
}

// ReferencePricer supplies the best-effort native/USD conversion rate.
type ReferencePricer interface {
	GetReferencePrice(ctx context.Context) float64
}

// PersonaInput carries a persona request.
type PersonaInput struct {
	Address   string
	StartDate *time.Time
	EndDate   *time.Time
}

// PersonaResult is the combined wallet-details + persona response document.
type PersonaResult struct {
	Details  *models.WalletDetails    `json:"details"`
	Analysis *analysis.AnalysisResult `json:"analysis"`
	Persona  *models.WalletPersona    `json:"persona"`
}

// PersonaService runs the full pipeline for one address per request. Each
// invocation operates on its own in-memory data; there is no shared mutable
// state across concurrent requests.
type PersonaService struct {
	chainData  ChainDataFetcher
	pricer     ReferencePricer
	assembler  *persona.Assembler
	cache      *storage.CacheService
	personaTTL time.Duration
	logger     *logging.Logger
}

// NewPersonaService creates a persona service. The cache may be nil.
func NewPersonaService(
	chainData ChainDataFetcher,
	pricer ReferencePricer,
	assembler *persona.Assembler,
	cache *storage.CacheService,
	personaTTL time.Duration,
	logger *logging.Logger,
) *PersonaService {
	if logger == nil {
		logger = logging.GetGlobalLogger()
	}
	return &PersonaService{
		chainData:  chainData,
		pricer:     pricer,
		assembler:  assembler,
		cache:      cache,
		personaTTL: personaTTL,
		logger:     logger,
	}
}

// BuildPersona fetches the wallet data, runs the analytics pass, and
// assembles the persona. The chain data fetch failing is the only hard
// failure; every other collaborator degrades to defaults.
func (s *PersonaService) BuildPersona(ctx context.Context, input *PersonaInput) (*PersonaResult, error) {
	if !adapter.ValidateAddress(input.Address) {
		return nil, errors.NewInvalidAddressError(input.Address)
	}
	address := strings.ToLower(input.Address)

	if cached := s.cachedResult(ctx, address, input); cached != nil {
		return cached, nil
	}

	details, err := s.chainData.FetchWalletDetails(ctx, address)
	if err != nil {
		return nil, err
	}

	referencePrice := s.pricer.GetReferencePrice(ctx)

	result := &PersonaResult{
		Details:  details,
		Analysis: analysis.Analyze(details.Transactions, address, referencePrice, input.StartDate, input.EndDate),
		Persona:  s.assembler.Assemble(ctx, details),
	}

	s.cacheResult(ctx, address, input, result)
	return result, nil
}

// AnalyzeTransactions runs the analytics pass alone, without persona
// assembly or the narrative collaborator.
func (s *PersonaService) AnalyzeTransactions(ctx context.Context, input *PersonaInput) (*analysis.AnalysisResult, error) {
	if !adapter.ValidateAddress(input.Address) {
		return nil, errors.NewInvalidAddressError(input.Address)
	}
	address := strings.ToLower(input.Address)

	details, err := s.chainData.FetchWalletDetails(ctx, address)
	if err != nil {
		return nil, err
	}

	referencePrice := s.pricer.GetReferencePrice(ctx)
	return analysis.Analyze(details.Transactions, address, referencePrice, input.StartDate, input.EndDate), nil
}

// cacheKey builds the persona cache key, including the date bounds so that
// differently-ranged requests never collide.
func cacheKey(address string, input *PersonaInput) string {
	from, to := "-", "-"
	if input.StartDate != nil {
		from = input.StartDate.UTC().Format("2006-01-02")
	}
	if input.EndDate != nil {
		to = input.EndDate.UTC().Format("2006-01-02")
	}
	return storage.Key(storage.CacheKeyPersona, address, from, to)
}

func (s *PersonaService) cachedResult(ctx context.Context, address string, input *PersonaInput) *PersonaResult {
	if s.cache == nil {
		return nil
	}
	var cached PersonaResult
	hit, err := s.cache.Get(ctx, cacheKey(address, input), &cached)
	if err != nil {
		s.logger.WithError(err).Warn("Persona cache read failed")
		return nil
	}
	if !hit {
		return nil
	}
	return &cached
}

func (s *PersonaService) cacheResult(ctx context.Context, address string, input *PersonaInput, result *PersonaResult) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(address, input), result, s.personaTTL); err != nil {
		s.logger.WithError(err).Warn("Persona cache write failed")
	}
}
