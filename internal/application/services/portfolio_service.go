package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/aiportfolioboard/internal/domain/entities"
	"github.com/zatekoja/aiportfolioboard/internal/domain/providers"
	"github.com/zatekoja/aiportfolioboard/internal/infrastructure/observability"
	"github.com/zatekoja/aiportfolioboard/pkg/config"
	apperrors "github.com/zatekoja/aiportfolioboard/pkg/errors"
	"github.com/zatekoja/aiportfolioboard/pkg/utils"
)

// PayloadProvider returns the encoded live sheet payload
type PayloadProvider interface {
	GetPayload(ctx context.Context) (*ProxyResult, error)
}

// PortfolioService runs the full pipeline (rows, normalize, parse, aggregate) for one data source
type PortfolioService struct {
	mode       config.DataSource
	local      providers.LocalSource
	live       PayloadProvider
	columns    entities.ColumnMap
	parser     *utils.ImpactParser
	aggregator *PortfolioAggregator
}

// NewLocalPortfolioService reads initiatives from the bundled data file on every load
func NewLocalPortfolioService(source providers.LocalSource, aggregator *PortfolioAggregator) *PortfolioService {
	return &PortfolioService{
		mode:       config.DataSourceLocal,
		local:      source,
		columns:    entities.LocalColumnMap,
		parser:     utils.NewImpactParser(nil, nil),
		aggregator: aggregator,
	}
}

// NewLivePortfolioService reads initiatives through the freshness-cached sheet proxy
func NewLivePortfolioService(live PayloadProvider, columns entities.ColumnMap, aggregator *PortfolioAggregator) *PortfolioService {
	return &PortfolioService{
		mode:       config.DataSourceLive,
		live:       live,
		columns:    columns,
		parser:     utils.NewImpactParser(nil, nil),
		aggregator: aggregator,
	}
}

// Mode returns the data source this service was built for
func (s *PortfolioService) Mode() config.DataSource {
	return s.mode
}

// Load produces a fresh portfolio. Nothing derived is cached between calls.
func (s *PortfolioService) Load(ctx context.Context) (*entities.Portfolio, error) {
	ctx, span := observability.StartSpan(ctx, "PortfolioService.Load")
	defer span.End()

	rows, metadata, err := s.rows(ctx)
	if err != nil {
		observability.RecordError(span, err)
		return nil, err
	}

	initiatives := AttachImpact(NormalizeRows(rows, s.columns), s.parser)
	if dropped := len(rows) - len(initiatives); dropped > 0 {
		log.Debug().Int("dropped", dropped).Str("mode", string(s.mode)).Msg("skipped rows without a name")
	}

	return &entities.Portfolio{
		Metadata: entities.PortfolioMetadata{
			Title:       metadata.Title,
			Source:      metadata.Source,
			LastUpdated: metadata.LastUpdated,
		},
		Initiatives: initiatives,
		Summary:     s.aggregator.Aggregate(initiatives),
	}, nil
}

func (s *PortfolioService) rows(ctx context.Context) ([]entities.RawRow, entities.SheetMetadata, error) {
	if s.mode == config.DataSourceLocal {
		return s.local.ReadRows(ctx)
	}

	result, err := s.live.GetPayload(ctx)
	if err != nil {
		return nil, entities.SheetMetadata{}, err
	}

	var payload entities.SheetPayload
	if err := json.Unmarshal(result.Body, &payload); err != nil {
		return nil, entities.SheetMetadata{}, apperrors.NewInternalError("failed to decode sheet payload", err)
	}
	if !payload.FetchedAt.IsZero() {
		payload.Metadata.LastUpdated = payload.FetchedAt.UTC().Format(time.RFC3339)
	}
	return payload.Rows, payload.Metadata, nil
}
